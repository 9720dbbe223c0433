// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package database

import (
	"context"
	"fmt"
	"time"
)

// Status values for articles.status. Only published articles are ever
// returned to the engines.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates tables and indexes if they do not exist.
//
// Metric columns are nullable; reads coalesce them to 0. Category slugs
// are immutable once inserted.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

func tableQueries() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			sport_type TEXT,
			color TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			excerpt TEXT,
			category_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			published_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			view_count INTEGER,
			like_count INTEGER,
			share_count INTEGER,
			favorite_count INTEGER,
			comment_count INTEGER,
			reading_time_minutes INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS article_tags (
			article_id TEXT NOT NULL,
			tag TEXT NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (article_id, tag)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_articles_status_published ON articles(status, published_at)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id)`,
	}
}
