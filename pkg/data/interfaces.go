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

	"go.mongodb.org/mongo-driver/v2/bson"
)

//go:generate mockgen -destination=mock_data.go -package=data github.com/onyxlabs/onyx/pkg/data Notifier

// Notifier receives a notification for every successfully created record.
// Implementations must not block and must never fail the originating
// create; delivery is best effort.
type Notifier interface {
	NotifyRecordCreated(typeID string, record any)
}

// Store is the slice of the document store a repository needs. The db
// package implements it once per concrete record type via Collection.
type Store[T any] interface {
	Find(ctx context.Context, filter, sort bson.D, skip, limit int64) ([]T, error)
	FindOne(ctx context.Context, filter bson.D) (*T, error)
	InsertOne(ctx context.Context, doc *T) (bson.ObjectID, error)
	ReplaceOne(ctx context.Context, filter bson.D, doc *T) error
	FindOneAndDelete(ctx context.Context, filter bson.D) (*T, error)
}

// record constrains a repository to pointer types that expose identity,
// natural key, and device type.
type record[T any] interface {
	*T
	RecordID() bson.ObjectID
	SetRecordID(bson.ObjectID)
	Serial() string
	DeviceType() string
}
