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

package api

import (
	"context"
	"net/http"

	"github.com/onyxlabs/onyx/pkg/models"
)

// RecordService is the data-layer surface the API needs for one record
// family. The repositories in pkg/data satisfy it.
type RecordService[T any] interface {
	FindMany(ctx context.Context, params *models.QueryParams) ([]T, error)
	FindOne(ctx context.Context, idOrSerial string) (*T, error)
	Create(ctx context.Context, record *T) (*T, error)
	Update(ctx context.Context, idOrSerial string, record *T) (*T, error)
	Delete(ctx context.Context, idOrSerial string) (*T, error)
}

// StreamHandler upgrades a request to a live notification stream.
type StreamHandler interface {
	HandleConnection(w http.ResponseWriter, r *http.Request)
}

// Service is the API server lifecycle contract used by pkg/lifecycle.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
