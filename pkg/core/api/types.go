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
	"net/http"

	"github.com/gorilla/mux"

	"github.com/onyxlabs/onyx/pkg/core/auth"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

// APIServer exposes the record store and the notification stream over HTTP.
type APIServer struct {
	listenAddr string
	router     *mux.Router
	httpServer *http.Server

	processData  RecordService[models.ProcessRecord]
	acousticData RecordService[models.AcousticRecord]
	stream       StreamHandler
	authService  auth.Service
	corsConfig   models.CORSConfig

	logger logger.Logger
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Error encoding response")
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, message string, status int) {
	s.writeJSON(w, status, models.ErrorResponse{
		Message: message,
		Status:  status,
	})
}
