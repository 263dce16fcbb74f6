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

package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection is generic typed access to one MongoDB collection. The same
// adapter serves both record families; the type parameter binds it to a
// concrete document shape at compile time.
//
// Business-level misses surface as ErrNotFound and ErrDuplicateKey so that
// callers can tell them apart from infrastructure faults, which pass
// through wrapped.
type Collection[T any] struct {
	coll *mongo.Collection
}

// NewCollection binds a typed adapter to the named collection.
func NewCollection[T any](store *Store, name string) *Collection[T] {
	return &Collection[T]{coll: store.Collection(name)}
}

// Find executes a filter/sort/page query and returns the matching page of
// documents. No matches is an empty slice, not an error.
func (c *Collection[T]) Find(ctx context.Context, filter, sort bson.D, skip, limit int64) ([]T, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)

	cursor, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find failed: %w", err)
	}

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %w", err)
	}

	return results, nil
}

// FindOne returns the first document matching the filter, or ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.D) (*T, error) {
	var result T

	err := c.coll.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find one failed: %w", err)
	}

	return &result, nil
}

// InsertOne inserts a document and returns the identity the store assigned
// to it. A unique-index violation surfaces as ErrDuplicateKey; the store
// rejects the second of two racing inserts without any partial write.
func (c *Collection[T]) InsertOne(ctx context.Context, doc *T) (bson.ObjectID, error) {
	result, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.ObjectID{}, ErrDuplicateKey
		}

		return bson.ObjectID{}, fmt.Errorf("insert failed: %w", err)
	}

	id, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.ObjectID{}, fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}

	return id, nil
}

// ReplaceOne replaces the document matching the filter. Zero matched
// documents is reported as ErrNotFound, never as silent success.
func (c *Collection[T]) ReplaceOne(ctx context.Context, filter bson.D, doc *T) error {
	result, err := c.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}

		return fmt.Errorf("replace failed: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// FindOneAndDelete removes the document matching the filter and returns it,
// or ErrNotFound if nothing matched.
func (c *Collection[T]) FindOneAndDelete(ctx context.Context, filter bson.D) (*T, error) {
	var result T

	err := c.coll.FindOneAndDelete(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("find and delete failed: %w", err)
	}

	return &result, nil
}

// CountDocuments counts documents matching the filter.
func (c *Collection[T]) CountDocuments(ctx context.Context, filter bson.D) (int64, error) {
	count, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}

	return count, nil
}
