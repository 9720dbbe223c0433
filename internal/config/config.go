// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package config loads the service configuration.
//
// Sources are layered with koanf, lowest priority first:
//
//  1. built-in defaults (Defaults)
//  2. an optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/touchline/config.yaml
//  3. environment variables from an explicit mapping (see envMappings),
//     after a .env file in the working directory has been loaded with godotenv
//
// The result is validated with go-playground/validator struct tags plus a
// few checks that span sections.
package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/similarity"
	"github.com/tomtom215/touchline/internal/validation"
)

// Config is the root configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Logging    LoggingConfig    `koanf:"logging"`
	Ranking    RankingConfig    `koanf:"ranking"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Security   SecurityConfig   `koanf:"security"`
	Breaker    BreakerConfig    `koanf:"breaker"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig controls the DuckDB article store.
type DatabaseConfig struct {
	// Path is a file path or ":memory:".
	Path      string `koanf:"path" validate:"required"`
	Threads   int    `koanf:"threads" validate:"min=0"`
	MaxMemory string `koanf:"max_memory"`
	// SeedSampleData inserts demo articles into an empty store at startup.
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RankingConfig bounds the candidate pool and result sizes for listings.
type RankingConfig struct {
	// PoolSize is the number of recent articles fetched for each ranking.
	PoolSize     int `koanf:"pool_size" validate:"min=1,max=1000"`
	DefaultLimit int `koanf:"default_limit" validate:"min=1"`
	MaxLimit     int `koanf:"max_limit" validate:"min=1,gtefield=DefaultLimit"`

	// Profiles replaces or adds weight profiles by name.
	Profiles map[string]ranking.WeightProfile `koanf:"profiles"`

	CacheEnabled bool          `koanf:"cache_enabled"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"min=0"`
}

// SimilarityConfig controls related-article ranking.
type SimilarityConfig struct {
	PoolSize    int                    `koanf:"pool_size" validate:"min=1,max=1000"`
	Weights     similarity.Weights     `koanf:"weights"`
	SportGroups similarity.SportGroups `koanf:"sport_groups"`
}

// SecurityConfig holds the HTTP edge protections.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// BreakerConfig configures the circuit breaker around the article store.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests" validate:"min=1"`
	Interval     time.Duration `koanf:"interval" validate:"min=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MinRequests  uint32        `koanf:"min_requests" validate:"min=1"`
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/touchline.duckdb",
			Threads:   0,
			MaxMemory: "1GB",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Ranking: RankingConfig{
			PoolSize:     200,
			DefaultLimit: 10,
			MaxLimit:     50,
			Profiles:     map[string]ranking.WeightProfile{},
			CacheEnabled: true,
			CacheTTL:     60 * time.Second,
		},
		Similarity: SimilarityConfig{
			PoolSize:    100,
			Weights:     similarity.DefaultWeights(),
			SportGroups: similarity.DefaultSportGroups(),
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Breaker: BreakerConfig{
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  5,
			FailureRatio: 0.6,
		},
	}
}

// Validate checks struct tags and the rules that need more than one field.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if _, err := ranking.DefaultProfiles().With(c.Ranking.Profiles); err != nil {
		return fmt.Errorf("ranking.profiles: %w", err)
	}
	if _, err := similarity.NewEngine(similarity.Config{
		Weights:     c.Similarity.Weights,
		SportGroups: c.Similarity.SportGroups,
	}, zerolog.Nop()); err != nil {
		return fmt.Errorf("similarity: %w", err)
	}

	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs > 0 && c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("security.rate_limit_window must be positive when rate limiting is enabled")
	}
	if c.Ranking.CacheEnabled && c.Ranking.CacheTTL <= 0 {
		return fmt.Errorf("ranking.cache_ttl must be positive when the cache is enabled")
	}
	return nil
}
