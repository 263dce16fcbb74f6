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

// Package data implements the per-family record repositories. One generic
// core serves both record families; each family binds it to its collection
// and its natural-key and timestamp fields.
package data

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

// Repository provides duplicate-safe creates and dual-key lookups for one
// record family. Business-level misses come back as typed results
// (db.ErrNotFound, ConflictError), never as panics; infrastructure faults
// pass through for the boundary layer to handle.
type Repository[T any, PT record[T]] struct {
	store       Store[T]
	queries     db.QueryBuilder
	serialField string
	notifier    Notifier
	log         logger.Logger
}

func newRepository[T any, PT record[T]](
	store Store[T],
	queries db.QueryBuilder,
	serialField string,
	notifier Notifier,
	log logger.Logger,
) *Repository[T, PT] {
	return &Repository[T, PT]{
		store:       store,
		queries:     queries,
		serialField: serialField,
		notifier:    notifier,
		log:         log,
	}
}

// FindMany returns the page of records selected by params, in query order.
// No matches is an empty slice, never an error.
func (r *Repository[T, PT]) FindMany(ctx context.Context, params *models.QueryParams) ([]T, error) {
	built, err := r.queries.Build(params)
	if err != nil {
		return nil, err
	}

	return r.store.Find(ctx, built.Filter, built.Sort, built.Skip, built.Limit)
}

// FindOne resolves idOrSerial and returns the matching record or
// db.ErrNotFound. Resolution is an explicit two-step: if the input parses
// as a store identity it is looked up by identity, and only by identity —
// a serial that happens to be a valid identity representation still
// resolves as an identity. Inputs that do not parse fall back to a
// natural-key lookup.
func (r *Repository[T, PT]) FindOne(ctx context.Context, idOrSerial string) (*T, error) {
	return r.store.FindOne(ctx, r.keyFilter(idOrSerial))
}

// Create inserts the record, relying on the store's unique serial index to
// reject duplicates atomically. On success the store-assigned identity is
// populated on the returned record and the notifier, if any, is told about
// the new record. A duplicate serial comes back as *ConflictError with the
// store left unchanged.
func (r *Repository[T, PT]) Create(ctx context.Context, rec *T) (*T, error) {
	p := PT(rec)

	id, err := r.store.InsertOne(ctx, rec)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, &ConflictError{Serial: p.Serial()}
		}

		return nil, err
	}

	p.SetRecordID(id)

	r.log.Debug().
		Str("serial", p.Serial()).
		Str("type_id", p.DeviceType()).
		Msg("Record created")

	if r.notifier != nil {
		r.notifier.NotifyRecordCreated(p.DeviceType(), rec)
	}

	return rec, nil
}

// Update replaces the record resolved from idOrSerial with rec, keeping
// the stored identity stable. A no-match is db.ErrNotFound, never silent
// success; an empty identifier is a caller error.
func (r *Repository[T, PT]) Update(ctx context.Context, idOrSerial string, rec *T) (*T, error) {
	if idOrSerial == "" {
		return nil, fmt.Errorf("%w: record identifier required for update", db.ErrInvalidQuery)
	}

	p := PT(rec)

	id, err := bson.ObjectIDFromHex(idOrSerial)
	if err != nil {
		existing, findErr := r.store.FindOne(ctx, r.keyFilter(idOrSerial))
		if findErr != nil {
			return nil, findErr
		}

		id = PT(existing).RecordID()
	}

	p.SetRecordID(id)

	err = r.store.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, rec)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, &ConflictError{Serial: p.Serial()}
		}

		return nil, err
	}

	return rec, nil
}

// Delete removes the record resolved from idOrSerial and returns it.
// Deleting a record that does not exist reports db.ErrNotFound.
func (r *Repository[T, PT]) Delete(ctx context.Context, idOrSerial string) (*T, error) {
	return r.store.FindOneAndDelete(ctx, r.keyFilter(idOrSerial))
}

// keyFilter builds the lookup filter for an opaque id-or-serial input.
// Identity takes precedence over the natural key.
func (r *Repository[T, PT]) keyFilter(idOrSerial string) bson.D {
	if id, err := bson.ObjectIDFromHex(idOrSerial); err == nil {
		return bson.D{{Key: "_id", Value: id}}
	}

	return bson.D{{Key: r.serialField, Value: idOrSerial}}
}
