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

// Package db provides typed access to the MongoDB collections holding test
// results, and translates generic query parameters into store-native
// filter, sort, and page windows.
package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/onyxlabs/onyx/pkg/logger"
)

const defaultConnectTimeout = 10 * time.Second

// Config holds the MongoDB connection settings.
type Config struct {
	URI      string `json:"uri"`
	Database string `json:"database"`

	// ProcessCollection and AcousticCollection name the two record
	// collections. Defaults match the documents written by the equipment.
	ProcessCollection  string `json:"process_collection"`
	AcousticCollection string `json:"acoustic_collection"`
}

func (c *Config) setDefaults() {
	if c.Database == "" {
		c.Database = "onyx"
	}

	if c.ProcessCollection == "" {
		c.ProcessCollection = "process_data"
	}

	if c.AcousticCollection == "" {
		c.AcousticCollection = "acoustic_data"
	}
}

// Store wraps a MongoDB client and the Onyx database handle. One Store is
// shared by all repositories for the lifetime of the process.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
	log    logger.Logger
}

// Connect establishes the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg Config, log logger.Logger) (*Store, error) {
	cfg.setDefaults()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().
		Str("database", cfg.Database).
		Msg("Connected to MongoDB")

	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
		log:    log,
	}, nil
}

// EnsureIndexes creates the unique serial-number index on each record
// collection. The indexes are what make the duplicate-create guarantee
// atomic at the store level.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string]string{
		s.cfg.ProcessCollection:  "DUT.serial_nr",
		s.cfg.AcousticCollection: "DUT.serialnr",
	}

	for coll, field := range indexes {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}

		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create unique index on %s.%s: %w", coll, field, err)
		}
	}

	return nil
}

// Collection returns the named raw collection handle.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ProcessCollectionName returns the configured process-data collection name.
func (s *Store) ProcessCollectionName() string { return s.cfg.ProcessCollection }

// AcousticCollectionName returns the configured acoustic-data collection name.
func (s *Store) AcousticCollectionName() string { return s.cfg.AcousticCollection }

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
