// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package database is the DuckDB article store. It owns the schema and
// returns candidate pools of published articles for the engines.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/logging"
)

// ErrNotFound is returned when a requested article does not exist or is
// not published.
var ErrNotFound = errors.New("article not found")

// DB wraps the DuckDB connection.
type DB struct {
	conn   *sql.DB
	cfg    config.DatabaseConfig
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a DB.
type Option func(*DB)

// WithClock sets the time source used for the "already published" cut-off.
func WithClock(now func() time.Time) Option {
	return func(db *DB) {
		if now != nil {
			db.now = now
		}
	}
}

// New opens the database at cfg.Path and creates the schema.
func New(cfg config.DatabaseConfig, opts ...Option) (*DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if cfg.Path != ":memory:" {
		// 0750 per gosec G301
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		logger: logging.Component("database"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(db)
	}

	db.configureConnectionPool()

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	db.logger.Info().Str("path", cfg.Path).Msg("Article store ready")
	return db, nil
}

func connString(cfg config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	params := []string{
		"access_mode=read_write",
		fmt.Sprintf("threads=%d", threads),
	}
	if cfg.MaxMemory != "" {
		params = append(params, "max_memory="+cfg.MaxMemory)
	}
	return cfg.Path + "?" + strings.Join(params, "&")
}

func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// closeQuietly closes a resource during cleanup, ignoring the error.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

// closeRows closes a result set and logs a failure.
func (db *DB) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		db.logger.Warn().Err(err).Msg("Failed to close rows")
	}
}
