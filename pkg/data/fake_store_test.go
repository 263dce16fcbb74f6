/*
 * Copyright 2025 Onyx Labs.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package data

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/models"
)

// fakeStore is an in-memory Store implementation with Mongo-like
// semantics: it assigns identities on insert, enforces serial uniqueness,
// and evaluates the filters and sorts the query builder produces. Field
// access goes through an accessor function so the same fake serves both
// record families.
type fakeStore[T any, PT record[T]] struct {
	mu    sync.Mutex
	docs  []T
	field func(rec *T, path string) any
}

func newFakeStore[T any, PT record[T]](field func(rec *T, path string) any) *fakeStore[T, PT] {
	return &fakeStore[T, PT]{field: field}
}

func (s *fakeStore[T, PT]) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.docs)
}

func (s *fakeStore[T, PT]) matches(rec *T, filter bson.D) bool {
	for _, e := range filter {
		if e.Key == "$and" {
			preds, ok := e.Value.([]bson.D)
			if !ok {
				return false
			}

			for _, p := range preds {
				if !s.matches(rec, p) {
					return false
				}
			}

			continue
		}

		if _, ok := e.Value.(bson.D); ok {
			// Operator predicates (date ranges) are covered by the query
			// builder tests; the fake treats them as always matching.
			continue
		}

		if !reflect.DeepEqual(s.field(rec, e.Key), e.Value) {
			return false
		}
	}

	return true
}

func (s *fakeStore[T, PT]) Find(_ context.Context, filter, sortSpec bson.D, skip, limit int64) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]T, 0)

	for i := range s.docs {
		if s.matches(&s.docs[i], filter) {
			matched = append(matched, s.docs[i])
		}
	}

	if len(sortSpec) == 1 {
		key := sortSpec[0].Key

		dir, _ := sortSpec[0].Value.(int)
		if dir == 0 {
			dir = 1
		}

		sort.SliceStable(matched, func(i, j int) bool {
			a, _ := s.field(&matched[i], key).(string)
			b, _ := s.field(&matched[j], key).(string)

			if dir < 0 {
				return a > b
			}

			return a < b
		})
	}

	if skip >= int64(len(matched)) {
		return []T{}, nil
	}

	matched = matched[skip:]
	if limit < int64(len(matched)) {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *fakeStore[T, PT]) FindOne(_ context.Context, filter bson.D) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.matches(&s.docs[i], filter) {
			found := s.docs[i]
			return &found, nil
		}
	}

	return nil, db.ErrNotFound
}

func (s *fakeStore[T, PT]) InsertOne(_ context.Context, doc *T) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	serial := PT(doc).Serial()

	for i := range s.docs {
		if PT(&s.docs[i]).Serial() == serial {
			return bson.ObjectID{}, db.ErrDuplicateKey
		}
	}

	id := bson.NewObjectID()
	stored := *doc
	PT(&stored).SetRecordID(id)
	s.docs = append(s.docs, stored)

	return id, nil
}

func (s *fakeStore[T, PT]) ReplaceOne(_ context.Context, filter bson.D, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if !s.matches(&s.docs[i], filter) {
			continue
		}

		serial := PT(doc).Serial()

		for j := range s.docs {
			if j != i && PT(&s.docs[j]).Serial() == serial {
				return db.ErrDuplicateKey
			}
		}

		stored := *doc
		PT(&stored).SetRecordID(PT(&s.docs[i]).RecordID())
		s.docs[i] = stored

		return nil
	}

	return db.ErrNotFound
}

func (s *fakeStore[T, PT]) FindOneAndDelete(_ context.Context, filter bson.D) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.docs {
		if s.matches(&s.docs[i], filter) {
			deleted := s.docs[i]
			s.docs = append(s.docs[:i], s.docs[i+1:]...)

			return &deleted, nil
		}
	}

	return nil, db.ErrNotFound
}

func processField(rec *models.ProcessRecord, path string) any {
	switch path {
	case "_id":
		return rec.ID
	case "DUT.serial_nr":
		return rec.DUT.SerialNr
	case "DUT.type_id":
		return rec.DUT.TypeID
	case "DUT.machine_id":
		return rec.DUT.Line
	case "DUT.country_code":
		return rec.DUT.CountryCode
	default:
		return nil
	}
}

func acousticField(rec *models.AcousticRecord, path string) any {
	switch path {
	case "_id":
		return rec.ID
	case "DUT.serialnr":
		return rec.DUT.SerialNr
	case "DUT.typeid":
		return rec.DUT.TypeID
	case "DUT.system":
		return rec.DUT.TestSystem
	default:
		return nil
	}
}
