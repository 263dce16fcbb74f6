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

// Package config loads the service configuration from a JSON file.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/onyxlabs/onyx/pkg/core/auth"
	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/hub"
	"github.com/onyxlabs/onyx/pkg/logger"
	"github.com/onyxlabs/onyx/pkg/models"
)

const defaultListenAddr = ":5105"

// Config is the top-level service configuration.
type Config struct {
	ListenAddr string            `json:"listen_addr"`
	Mongo      db.Config         `json:"mongo"`
	CORS       models.CORSConfig `json:"cors"`
	Auth       auth.Config       `json:"auth"`
	Hub        hub.Config        `json:"hub"`
	Logging    *logger.Config    `json:"logging,omitempty"`
}

func (c *Config) setDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}

	if c.Logging == nil {
		c.Logging = logger.DefaultConfig()
	}
}

// FileConfigLoader loads configuration from a local JSON file.
type FileConfigLoader struct{}

// Load implements ConfigLoader by reading and unmarshaling a JSON file.
func (*FileConfigLoader) Load(_ context.Context, path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	err = json.Unmarshal(data, dst)
	if err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// LoadFile reads the service configuration and applies defaults.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	var cfg Config

	loader := &FileConfigLoader{}
	if err := loader.Load(ctx, path, &cfg); err != nil {
		return nil, err
	}

	cfg.setDefaults()

	return &cfg, nil
}
