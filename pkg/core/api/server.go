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

// Package api exposes the record collections and the live notification
// stream over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/onyxlabs/onyx/pkg/core/auth"
	onyxhttp "github.com/onyxlabs/onyx/pkg/http"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// ServerOption configures an APIServer during construction.
type ServerOption func(*APIServer)

// WithListenAddr sets the address the HTTP server binds to.
func WithListenAddr(addr string) ServerOption {
	return func(s *APIServer) {
		s.listenAddr = addr
	}
}

// WithProcessService wires the process-data record service.
func WithProcessService(svc RecordService[models.ProcessRecord]) ServerOption {
	return func(s *APIServer) {
		s.processData = svc
	}
}

// WithAcousticService wires the acoustic-data record service.
func WithAcousticService(svc RecordService[models.AcousticRecord]) ServerOption {
	return func(s *APIServer) {
		s.acousticData = svc
	}
}

// WithStreamHandler wires the websocket notification hub.
func WithStreamHandler(h StreamHandler) ServerOption {
	return func(s *APIServer) {
		s.stream = h
	}
}

// WithAuthService wires token issuance and enforcement.
func WithAuthService(svc auth.Service) ServerOption {
	return func(s *APIServer) {
		s.authService = svc
	}
}

// WithCORSConfig sets the CORS policy applied to all routes.
func WithCORSConfig(cfg models.CORSConfig) ServerOption {
	return func(s *APIServer) {
		s.corsConfig = cfg
	}
}

// NewAPIServer builds the server and registers all routes.
func NewAPIServer(log logger.Logger, options ...ServerOption) *APIServer {
	s := &APIServer{
		router: mux.NewRouter(),
		logger: log.WithComponent("api"),
	}

	for _, o := range options {
		o(s)
	}

	if s.authService == nil {
		s.authService = auth.NewService(auth.Config{}, log)
	}

	s.setupRoutes()

	return s
}

// Router returns the configured route tree. Exposed for tests.
func (s *APIServer) Router() *mux.Router {
	return s.router
}

func (s *APIServer) setupRoutes() {
	s.router.Use(onyxhttp.CommonMiddleware(s.corsConfig))

	s.router.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost, http.MethodOptions)

	// The stream endpoint handles its own handshake; token auth does not
	// apply to the websocket upgrade.
	if s.stream != nil {
		s.router.HandleFunc("/newdata-hub", s.stream.HandleConnection)
	}

	protected := s.router.PathPrefix("/api").Subrouter()
	protected.Use(auth.Middleware(s.authService))

	if s.processData != nil {
		registerRecordRoutes(s, protected, "/process-data", s.processData)
	}

	if s.acousticData != nil {
		registerRecordRoutes(s, protected, "/acoustic-data", s.acousticData)
	}
}

func registerRecordRoutes[T any](s *APIServer, r *mux.Router, prefix string, svc RecordService[T]) {
	h := &recordHandlers[T]{server: s, service: svc}

	r.HandleFunc(prefix, auth.RequireRole(s.authService, auth.RoleReader, h.list)).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(prefix, auth.RequireRole(s.authService, auth.RoleWriter, h.create)).
		Methods(http.MethodPost)
	r.HandleFunc(prefix+"/{id}", auth.RequireRole(s.authService, auth.RoleReader, h.get)).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(prefix+"/{id}", auth.RequireRole(s.authService, auth.RoleWriter, h.update)).
		Methods(http.MethodPut)
	r.HandleFunc(prefix+"/{id}", auth.RequireRole(s.authService, auth.RoleWriter, h.remove)).
		Methods(http.MethodDelete)
}

func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	token, err := s.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.writeError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}

		s.logger.Error().Err(err).Msg("Login failed")
		s.writeError(w, "Internal server error", http.StatusInternalServerError)

		return
	}

	s.writeJSON(w, http.StatusOK, token)
}

// Start runs the HTTP server until the context is canceled or the listener
// fails.
func (s *APIServer) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	s.logger.Info().
		Str("listen_addr", s.listenAddr).
		Msg("Starting API server")

	errCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Stop(context.Background())
	case err := <-errCh:
		return err
	}
}

// Stop shuts the HTTP server down gracefully.
func (s *APIServer) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.httpServer.Close()
		return err
	}

	return nil
}
