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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/onyxlabs/onyx/pkg/data"
	"github.com/onyxlabs/onyx/pkg/db"
)

// recordHandlers serves the CRUD routes of one record family.
type recordHandlers[T any] struct {
	server  *APIServer
	service RecordService[T]
}

func (h *recordHandlers[T]) list(w http.ResponseWriter, r *http.Request) {
	params, err := parseQueryParams(r.URL.Query())
	if err != nil {
		h.server.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.service.FindMany(r.Context(), params)
	if err != nil {
		h.writeServiceError(w, "", err)
		return
	}

	h.server.writeJSON(w, http.StatusOK, records)
}

func (h *recordHandlers[T]) get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.service.FindOne(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, id, err)
		return
	}

	h.server.writeJSON(w, http.StatusOK, record)
}

func (h *recordHandlers[T]) create(w http.ResponseWriter, r *http.Request) {
	var record T

	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.server.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), &record)
	if err != nil {
		h.writeServiceError(w, "", err)
		return
	}

	h.server.writeJSON(w, http.StatusCreated, created)
}

func (h *recordHandlers[T]) update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var record T

	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.server.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.Update(r.Context(), id, &record)
	if err != nil {
		h.writeServiceError(w, id, err)
		return
	}

	h.server.writeJSON(w, http.StatusOK, updated)
}

func (h *recordHandlers[T]) remove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, id, err)
		return
	}

	h.server.writeJSON(w, http.StatusOK, deleted)
}

// writeServiceError maps data-layer failures onto HTTP statuses. The id is
// the identifier from the route, used for miss messages; pass "" when the
// operation has none.
func (h *recordHandlers[T]) writeServiceError(w http.ResponseWriter, id string, err error) {
	var conflict *data.ConflictError

	switch {
	case errors.As(err, &conflict):
		h.server.writeError(w, conflict.Error(), http.StatusConflict)
	case errors.Is(err, db.ErrNotFound):
		h.server.writeError(w, fmt.Sprintf("Unit [%s] does not exist.", id), http.StatusNotFound)
	case errors.Is(err, db.ErrInvalidQuery):
		h.server.writeError(w, err.Error(), http.StatusBadRequest)
	default:
		h.server.logger.Error().Err(err).Msg("Record operation failed")
		h.server.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
