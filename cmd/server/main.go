// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package main runs the Touchline content API.
//
// Startup order:
//
//  1. Configuration: defaults, optional config.yaml, then environment (koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Store: DuckDB article store, seeded with demo data when enabled
//  4. Feed: ranking and similarity engines behind the listing cache
//  5. Supervisor: HTTP server, store probe and cache sweeper under suture
//
// SIGINT and SIGTERM cancel the root context. The HTTP server then stops
// accepting connections and drains in-flight requests for up to
// SHUTDOWN_TIMEOUT before the store is closed.
//
// Example:
//
//	export DATABASE_PATH=/data/touchline.duckdb
//	export SEED_SAMPLE_DATA=true
//	export LOG_FORMAT=console
//	./touchline
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/touchline/internal/app"
	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/logging"
	"github.com/tomtom215/touchline/internal/supervisor"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		cancel()
		os.Exit(1)
	}
	logging.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.Component("server")
	logger.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Str("database", cfg.Database.Path).
		Bool("cache", cfg.Ranking.CacheEnabled).
		Msg("Starting Touchline")

	if cfg.Security.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is disabled (DISABLE_RATE_LIMIT=true)")
	}
	for _, o := range cfg.Security.CORSOrigins {
		if o == "*" {
			logger.Warn().Msg("CORS allows any origin; set CORS_ORIGINS in production")
			break
		}
	}

	a, err := app.New(ctx, cfg, version, logging.Logger())
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}
	if err := a.Supervise(tree); err != nil {
		return err
	}

	err = tree.Serve(ctx)
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logger.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
