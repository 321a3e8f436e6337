// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Command server runs the Briefwire feed API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/briefwire/briefwire/internal/api"
	"github.com/briefwire/briefwire/internal/auth"
	"github.com/briefwire/briefwire/internal/cache"
	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/logging"
	"github.com/briefwire/briefwire/internal/personalize"
	"github.com/briefwire/briefwire/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Path).
		Msg("Starting Briefwire")

	db, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	c := cache.New(cache.Config{
		Type:     cache.Type(cfg.Cache.Type),
		TTL:      cfg.Cache.TTL,
		Capacity: cfg.Cache.Capacity,
	})

	fetcher := personalize.NewFetcher(db, c, cfg.Personalization, logging.Logger())
	engine := personalize.NewEngine(cfg.Personalization, logging.Logger())

	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager, err = auth.NewJWTManager(cfg.Auth.JWTSecret)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
	} else {
		logging.Warn().Msg("No JWT secret configured, serving anonymous feeds only")
	}

	feedHandler := api.NewFeedHandler(fetcher, engine, cfg.Personalization)
	healthHandler := api.NewHealthHandler(db, c)
	router := api.NewRouter(feedHandler, healthHandler, jwtManager, cfg.Server)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Briefwire stopped")
}
