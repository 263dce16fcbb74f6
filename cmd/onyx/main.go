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

package main

import (
	"context"
	"flag"
	"log"

	"github.com/onyxlabs/onyx/pkg/config"
	"github.com/onyxlabs/onyx/pkg/core/api"
	"github.com/onyxlabs/onyx/pkg/core/auth"
	"github.com/onyxlabs/onyx/pkg/data"
	"github.com/onyxlabs/onyx/pkg/db"
	"github.com/onyxlabs/onyx/pkg/hub"
	"github.com/onyxlabs/onyx/pkg/lifecycle"
	"github.com/onyxlabs/onyx/pkg/models"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/onyx/onyx.json", "Path to the configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadFile(ctx, *configPath)
	if err != nil {
		return err
	}

	mainLogger, err := lifecycle.CreateComponentLogger("onyx", cfg.Logging)
	if err != nil {
		return err
	}

	store, err := db.Connect(ctx, cfg.Mongo, mainLogger)
	if err != nil {
		return err
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		return err
	}

	cfg.Hub.CORS = cfg.CORS
	notifyHub := hub.New(cfg.Hub, mainLogger)

	processRepo := data.NewProcessRepository(
		db.NewCollection[models.ProcessRecord](store, store.ProcessCollectionName()),
		notifyHub, mainLogger)
	acousticRepo := data.NewAcousticRepository(
		db.NewCollection[models.AcousticRecord](store, store.AcousticCollectionName()),
		notifyHub, mainLogger)

	authService := auth.NewService(cfg.Auth, mainLogger)

	server := api.NewAPIServer(mainLogger,
		api.WithListenAddr(cfg.ListenAddr),
		api.WithProcessService(processRepo),
		api.WithAcousticService(acousticRepo),
		api.WithStreamHandler(notifyHub),
		api.WithAuthService(authService),
		api.WithCORSConfig(cfg.CORS),
	)

	return lifecycle.Run(ctx, server, mainLogger,
		func(context.Context) error {
			notifyHub.Close()
			return nil
		},
		func(shutdownCtx context.Context) error {
			return store.Close(shutdownCtx)
		},
	)
}
