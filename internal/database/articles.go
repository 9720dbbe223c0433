// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/metrics"
)

// DefaultPoolLimit bounds a pool query that does not set Limit.
const DefaultPoolLimit = 200

// MaxPoolLimit is the largest pool a single query returns.
const MaxPoolLimit = 1000

// PoolQuery selects a candidate pool of published articles.
type PoolQuery struct {
	// CategorySlug restricts the pool to one category when set.
	CategorySlug string
	// Since drops articles published before it when non-zero.
	Since time.Time
	// Limit caps the pool size. Zero means DefaultPoolLimit.
	Limit int
}

func (q PoolQuery) limit() int {
	switch {
	case q.Limit <= 0:
		return DefaultPoolLimit
	case q.Limit > MaxPoolLimit:
		return MaxPoolLimit
	default:
		return q.Limit
	}
}

const selectArticle = `
	SELECT a.id, a.title, a.slug, COALESCE(a.excerpt, ''),
		a.published_at, a.created_at,
		COALESCE(a.view_count, 0), COALESCE(a.like_count, 0),
		COALESCE(a.share_count, 0), COALESCE(a.favorite_count, 0),
		COALESCE(a.comment_count, 0), COALESCE(a.reading_time_minutes, 0),
		c.id, c.name, c.slug, COALESCE(c.sport_type, ''), COALESCE(c.color, '')
	FROM articles a
	JOIN categories c ON c.id = a.category_id`

const publishedFilter = `a.status = 'published' AND COALESCE(a.published_at, a.created_at) <= ?`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (content.Item, error) {
	var (
		it        content.Item
		published sql.NullTime
	)
	err := row.Scan(
		&it.ID, &it.Title, &it.Slug, &it.Excerpt,
		&published, &it.CreatedAt,
		&it.ViewCount, &it.LikeCount,
		&it.ShareCount, &it.FavoriteCount,
		&it.CommentCount, &it.ReadingTimeMinutes,
		&it.Category.ID, &it.Category.Name, &it.Category.Slug,
		&it.Category.SportType, &it.Category.Color,
	)
	if err != nil {
		return content.Item{}, err
	}
	if published.Valid {
		it.PublishedAt = published.Time
	}
	return it, nil
}

// UpsertCategory inserts a category or updates its name, sport type and
// color. The slug of an existing category is left unchanged.
//
//nolint:gocritic // Category is a small value type
func (db *DB) UpsertCategory(ctx context.Context, c content.Category) error {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert_category", time.Since(start)) }()

	if c.ID == "" || c.Slug == "" || c.Name == "" {
		return fmt.Errorf("category id, slug and name are required")
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, sport_type, color)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			sport_type = excluded.sport_type,
			color = excluded.color`,
		c.ID, c.Name, c.Slug, nullString(c.SportType), nullString(c.Color))
	if err != nil {
		return fmt.Errorf("failed to upsert category %s: %w", c.Slug, err)
	}
	return nil
}

// InsertArticle stores an article and its tags with the given status. An
// empty ID is replaced by a new UUID; the stored ID is returned. The
// article's category must already exist.
//
//nolint:gocritic // Item is passed by value so the caller's copy is untouched
func (db *DB) InsertArticle(ctx context.Context, it content.Item, status string) (string, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_article", time.Since(start)) }()

	if it.Slug == "" || it.Title == "" || it.Category.ID == "" {
		return "", fmt.Errorf("article title, slug and category id are required")
	}
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
	default:
		return "", fmt.Errorf("unknown article status %q", status)
	}
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if it.CreatedAt.IsZero() {
		it.CreatedAt = db.now()
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var published interface{}
	if !it.PublishedAt.IsZero() {
		published = it.PublishedAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (
			id, title, slug, excerpt, category_id, status, published_at, created_at,
			view_count, like_count, share_count, favorite_count, comment_count,
			reading_time_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.Slug, nullString(it.Excerpt), it.Category.ID, status,
		published, it.CreatedAt.UTC(),
		it.ViewCount, it.LikeCount, it.ShareCount, it.FavoriteCount, it.CommentCount,
		it.ReadingTimeMinutes)
	if err != nil {
		return "", fmt.Errorf("failed to insert article %s: %w", it.Slug, err)
	}

	for i, tag := range it.Normalize().Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO article_tags (article_id, tag, position) VALUES (?, ?, ?)`,
			it.ID, tag, i); err != nil {
			return "", fmt.Errorf("failed to insert tag %q for %s: %w", tag, it.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit article %s: %w", it.Slug, err)
	}
	return it.ID, nil
}

// ListPublished returns published articles matching q, newest first with
// ties broken by ID. Items are normalized and carry their tags.
func (db *DB) ListPublished(ctx context.Context, q PoolQuery) ([]content.Item, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_published", time.Since(start)) }()

	var (
		where = []string{publishedFilter}
		args  = []interface{}{db.now().UTC()}
	)
	if q.CategorySlug != "" {
		where = append(where, "c.slug = ?")
		args = append(args, q.CategorySlug)
	}
	if !q.Since.IsZero() {
		where = append(where, "COALESCE(a.published_at, a.created_at) >= ?")
		args = append(args, q.Since.UTC())
	}
	args = append(args, q.limit())

	query := selectArticle + "\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY COALESCE(a.published_at, a.created_at) DESC, a.id ASC\n\tLIMIT ?"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query published articles: %w", err)
	}
	defer db.closeRows(rows)

	items := make([]content.Item, 0, q.limit())
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	if err := db.loadTags(ctx, items); err != nil {
		return nil, err
	}
	return content.NormalizeAll(items), nil
}

// GetArticleBySlug returns the published article with the given slug or
// ErrNotFound.
func (db *DB) GetArticleBySlug(ctx context.Context, slug string) (content.Item, error) {
	return db.getOne(ctx, "get_article_by_slug", "a.slug = ?", slug)
}

// GetArticleByID returns the published article with the given ID or
// ErrNotFound.
func (db *DB) GetArticleByID(ctx context.Context, id string) (content.Item, error) {
	return db.getOne(ctx, "get_article_by_id", "a.id = ?", id)
}

func (db *DB) getOne(ctx context.Context, op, cond string, arg interface{}) (content.Item, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery(op, time.Since(start)) }()

	query := selectArticle + "\n\tWHERE " + publishedFilter + " AND " + cond
	it, err := scanItem(db.conn.QueryRowContext(ctx, query, db.now().UTC(), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return content.Item{}, fmt.Errorf("%w: %v", ErrNotFound, arg)
	}
	if err != nil {
		return content.Item{}, fmt.Errorf("failed to load article %v: %w", arg, err)
	}

	items := []content.Item{it}
	if err := db.loadTags(ctx, items); err != nil {
		return content.Item{}, err
	}
	return items[0].Normalize(), nil
}

// CountPublished counts published articles, optionally in one category.
func (db *DB) CountPublished(ctx context.Context, categorySlug string) (int, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("count_published", time.Since(start)) }()

	query := `SELECT COUNT(*) FROM articles a JOIN categories c ON c.id = a.category_id WHERE ` + publishedFilter
	args := []interface{}{db.now().UTC()}
	if categorySlug != "" {
		query += " AND c.slug = ?"
		args = append(args, categorySlug)
	}

	var n int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count published articles: %w", err)
	}
	return n, nil
}

// loadTags fills Tags for items in one query, in insertion order.
func (db *DB) loadTags(ctx context.Context, items []content.Item) error {
	if len(items) == 0 {
		return nil
	}

	index := make(map[string]int, len(items))
	args := make([]interface{}, 0, len(items))
	for i := range items {
		index[items[i].ID] = i
		args = append(args, items[i].ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(items)), ",")

	rows, err := db.conn.QueryContext(ctx,
		`SELECT article_id, tag FROM article_tags WHERE article_id IN (`+placeholders+`) ORDER BY article_id, position`,
		args...)
	if err != nil {
		return fmt.Errorf("failed to query tags: %w", err)
	}
	defer db.closeRows(rows)

	for rows.Next() {
		var id, tag string
		if err := rows.Scan(&id, &tag); err != nil {
			return fmt.Errorf("failed to scan tag: %w", err)
		}
		if i, ok := index[id]; ok {
			items[i].Tags = append(items[i].Tags, tag)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate tags: %w", err)
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
