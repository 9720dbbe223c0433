// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package app assembles the store, engines, feed service and HTTP router
// from a loaded configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/api"
	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/database"
	"github.com/tomtom215/touchline/internal/feed"
	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/similarity"
	"github.com/tomtom215/touchline/internal/supervisor"
	"github.com/tomtom215/touchline/internal/supervisor/services"
)

const (
	idleTimeout        = 60 * time.Second
	storeProbeInterval = 30 * time.Second
	readHeaderTimeout  = 5 * time.Second
)

// App holds the wired components of one server process.
type App struct {
	Config  *config.Config
	DB      *database.DB
	Store   *database.BreakerSource
	Feed    *feed.Service
	Handler http.Handler

	logger zerolog.Logger
}

// Engines builds the ranking and similarity engines described by cfg. A nil
// now uses the wall clock.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Engines(cfg *config.Config, logger zerolog.Logger, now func() time.Time) (*ranking.Engine, *similarity.Engine, error) {
	if now == nil {
		now = time.Now
	}
	profiles, err := ranking.DefaultProfiles().With(cfg.Ranking.Profiles)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ranking profiles: %w", err)
	}
	rank := ranking.NewEngine(profiles, logger, ranking.WithClock(now))

	sim, err := similarity.NewEngine(similarity.Config{
		Weights:     cfg.Similarity.Weights,
		SportGroups: cfg.Similarity.SportGroups,
	}, logger, similarity.WithClock(now))
	if err != nil {
		return nil, nil, err
	}
	return rank, sim, nil
}

// New opens the store and wires every layer above it. The caller owns the
// returned App and must Close it.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(ctx context.Context, cfg *config.Config, version string, logger zerolog.Logger) (*App, error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open article store: %w", err)
	}

	if cfg.Database.SeedSampleData {
		n, seedErr := db.SeedSampleData(ctx)
		if seedErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to seed sample data: %w", seedErr)
		}
		if n > 0 {
			logger.Info().Int("articles", n).Msg("Seeded sample articles")
		}
	}

	rank, sim, err := Engines(cfg, logger, nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := database.NewBreakerSource(db, cfg.Breaker)
	svc := feed.NewService(store, rank, sim, feed.Config{
		PoolSize:           cfg.Ranking.PoolSize,
		SimilarityPoolSize: cfg.Similarity.PoolSize,
		DefaultLimit:       cfg.Ranking.DefaultLimit,
		MaxLimit:           cfg.Ranking.MaxLimit,
		CacheEnabled:       cfg.Ranking.CacheEnabled,
		CacheTTL:           cfg.Ranking.CacheTTL,
	}, logger)

	handler := api.NewHandler(svc, version, cfg.Ranking.CacheTTL, cfg.Breaker.Timeout)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:       cfg.Security.CORSOrigins,
		RateLimitRequests: cfg.Security.RateLimitReqs,
		RateLimitWindow:   cfg.Security.RateLimitWindow,
		RateLimitDisabled: cfg.Security.RateLimitDisabled,
	}, logger)

	return &App{
		Config:  cfg,
		DB:      db,
		Store:   store,
		Feed:    svc,
		Handler: router.Handler(),
		logger:  logger,
	}, nil
}

// HTTPServer returns the listener for the API.
func (a *App) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              a.Config.Server.Addr(),
		Handler:           a.Handler,
		ReadTimeout:       a.Config.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      a.Config.Server.WriteTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// Supervise adds the HTTP server, the store probe and, when caching is
// enabled, the cache sweeper to tree.
func (a *App) Supervise(tree *supervisor.SupervisorTree) error {
	if _, err := tree.AddAPIService(services.NewHTTPServerService(a.HTTPServer(), a.Config.Server.ShutdownTimeout)); err != nil {
		return err
	}
	if _, err := tree.AddDataService(services.NewStoreProbeService(a.DB, storeProbeInterval)); err != nil {
		return err
	}
	if sweeper := a.Feed.CacheSweeper(); sweeper != nil {
		if _, err := tree.AddDataService(sweeper); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Error closing article store")
		return err
	}
	return nil
}
