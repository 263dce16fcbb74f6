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

// Package auth issues and validates the JWTs guarding the record API.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

// Roles understood by the API. Readers may query records; writers may also
// create, update, and delete them.
const (
	RoleReader = "Reader"
	RoleWriter = "Writer"
)

const defaultTokenLifetime = 24 * time.Hour

// ErrInvalidCredentials reports a failed login. The same error covers
// unknown users and wrong passwords.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Config holds the authentication settings.
type Config struct {
	// Enabled turns token enforcement on. When false the API is open;
	// intended for development deployments only.
	Enabled bool `json:"enabled"`

	JWTSecret     string          `json:"jwt_secret"`
	TokenLifetime models.Duration `json:"token_lifetime"`

	// Users is the static user list. Credential storage is deliberately
	// simple; the service fronts equipment on a closed shop-floor network.
	Users []models.User `json:"users"`
}

// Service authenticates users and validates presented tokens.
type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.Token, error)
	Verify(tokenString string) (*Claims, error)
	Enabled() bool
}

type service struct {
	cfg Config
	log logger.Logger
}

// NewService builds the auth service from static configuration.
func NewService(cfg Config, log logger.Logger) Service {
	if cfg.TokenLifetime <= 0 {
		cfg.TokenLifetime = models.Duration(defaultTokenLifetime)
	}

	return &service{cfg: cfg, log: log.WithComponent("auth")}
}

func (s *service) Enabled() bool {
	return s.cfg.Enabled
}

// Login verifies the credentials against the configured users and returns
// a signed token carrying the user's roles.
func (s *service) Login(_ context.Context, req *models.LoginRequest) (*models.Token, error) {
	if req == nil || req.Username == "" {
		return nil, ErrInvalidCredentials
	}

	for i := range s.cfg.Users {
		user := &s.cfg.Users[i]

		if user.Username != req.Username {
			continue
		}

		if subtle.ConstantTimeCompare([]byte(user.Password), []byte(req.Password)) != 1 {
			break
		}

		token, expiresAt, err := generateJWT(user, s.cfg.JWTSecret, time.Duration(s.cfg.TokenLifetime))
		if err != nil {
			return nil, err
		}

		s.log.Info().
			Str("username", user.Username).
			Msg("User logged in")

		return &models.Token{AccessToken: token, ExpiresAt: expiresAt}, nil
	}

	s.log.Warn().
		Str("username", req.Username).
		Msg("Login rejected")

	return nil, ErrInvalidCredentials
}

// Verify parses and validates a token string.
func (s *service) Verify(tokenString string) (*Claims, error) {
	return parseJWT(tokenString, s.cfg.JWTSecret)
}

// HasRole reports whether the claims grant the given role.
func HasRole(claims *Claims, role string) bool {
	if claims == nil {
		return false
	}

	for _, r := range claims.Roles {
		if r == role {
			return true
		}
	}

	return false
}
