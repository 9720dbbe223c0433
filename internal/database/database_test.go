// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/content"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// testDBSemaphore serializes DuckDB tests; concurrent CGO connections
// are prone to hangs under CI load.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(config.DatabaseConfig{Path: ":memory:", Threads: 1, MaxMemory: "256MB"},
		WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func mustCategory(t *testing.T, db *DB, id, slug string) content.Category {
	t.Helper()
	c := content.Category{ID: id, Name: slug, Slug: slug, SportType: "football"}
	if err := db.UpsertCategory(context.Background(), c); err != nil {
		t.Fatalf("UpsertCategory(%s) error = %v", slug, err)
	}
	return c
}

func mustArticle(t *testing.T, db *DB, it content.Item, status string) string {
	t.Helper()
	id, err := db.InsertArticle(context.Background(), it, status)
	if err != nil {
		t.Fatalf("InsertArticle(%s) error = %v", it.Slug, err)
	}
	return id
}

func TestNew_RejectsEmptyPath(t *testing.T) {
	if _, err := New(config.DatabaseConfig{}); err == nil {
		t.Error("New() with empty path returned nil error")
	}
}

func TestPing(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestListPublished_Filters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")
	nrl := mustCategory(t, db, "cat-nrl", "nrl")

	mustArticle(t, db, content.Item{ID: "a1", Title: "One", Slug: "one", Category: afl,
		PublishedAt: testNow.Add(-time.Hour), ViewCount: 10, Tags: []string{"finals", "tactics"}}, StatusPublished)
	mustArticle(t, db, content.Item{ID: "a2", Title: "Two", Slug: "two", Category: nrl,
		PublishedAt: testNow.Add(-48 * time.Hour)}, StatusPublished)
	mustArticle(t, db, content.Item{ID: "a3", Title: "Draft", Slug: "draft", Category: afl,
		PublishedAt: testNow.Add(-time.Hour)}, StatusDraft)
	mustArticle(t, db, content.Item{ID: "a4", Title: "Future", Slug: "future", Category: afl,
		PublishedAt: testNow.Add(time.Hour)}, StatusPublished)
	mustArticle(t, db, content.Item{ID: "a5", Title: "Same time", Slug: "same-time", Category: afl,
		PublishedAt: testNow.Add(-time.Hour)}, StatusPublished)

	tests := []struct {
		name string
		q    PoolQuery
		want []string
	}{
		{"all published newest first", PoolQuery{}, []string{"a1", "a5", "a2"}},
		{"category", PoolQuery{CategorySlug: "nrl"}, []string{"a2"}},
		{"since", PoolQuery{Since: testNow.Add(-24 * time.Hour)}, []string{"a1", "a5"}},
		{"limit", PoolQuery{Limit: 1}, []string{"a1"}},
		{"unknown category", PoolQuery{CategorySlug: "golf"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := db.ListPublished(ctx, tt.q)
			if err != nil {
				t.Fatalf("ListPublished() error = %v", err)
			}
			if len(items) != len(tt.want) {
				t.Fatalf("ListPublished() returned %d items, want %d", len(items), len(tt.want))
			}
			for i, id := range tt.want {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %s, want %s", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestListPublished_LoadsFieldsAndTags(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")

	published := testNow.Add(-2 * time.Hour)
	mustArticle(t, db, content.Item{
		ID: "a1", Title: "One", Slug: "one", Excerpt: "Short", Category: afl,
		PublishedAt: published, ViewCount: 10, LikeCount: 2, ShareCount: 3,
		FavoriteCount: 4, CommentCount: 5, ReadingTimeMinutes: 6,
		Tags: []string{"finals", " Finals ", "tactics"},
	}, StatusPublished)

	items, err := db.ListPublished(ctx, PoolQuery{})
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListPublished() returned %d items", len(items))
	}
	it := items[0]
	if !it.PublishedAt.Equal(published) {
		t.Errorf("PublishedAt = %v, want %v", it.PublishedAt, published)
	}
	if it.ViewCount != 10 || it.LikeCount != 2 || it.ShareCount != 3 ||
		it.FavoriteCount != 4 || it.CommentCount != 5 || it.ReadingTimeMinutes != 6 {
		t.Errorf("metrics = %+v", it)
	}
	if it.Category.Slug != "afl" || it.Category.SportType != "football" {
		t.Errorf("Category = %+v", it.Category)
	}
	if len(it.Tags) != 2 || it.Tags[0] != "finals" || it.Tags[1] != "tactics" {
		t.Errorf("Tags = %v, want [finals tactics]", it.Tags)
	}
}

func TestListPublished_NullMetricsAndPublishedAt(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	mustCategory(t, db, "cat-afl", "afl")

	created := testNow.Add(-3 * time.Hour)
	if _, err := db.conn.ExecContext(ctx, `
		INSERT INTO articles (id, title, slug, category_id, status, created_at)
		VALUES ('raw', 'Raw', 'raw', 'cat-afl', 'published', ?)`, created); err != nil {
		t.Fatalf("raw insert error = %v", err)
	}

	items, err := db.ListPublished(ctx, PoolQuery{})
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("ListPublished() returned %d items", len(items))
	}
	if items[0].ViewCount != 0 || items[0].ReadingTimeMinutes != 0 {
		t.Errorf("null metrics not coalesced: %+v", items[0])
	}
	if !items[0].PublishedAt.Equal(created) {
		t.Errorf("PublishedAt = %v, want CreatedAt %v", items[0].PublishedAt, created)
	}
}

func TestGetArticle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")
	mustArticle(t, db, content.Item{ID: "a1", Title: "One", Slug: "one", Category: afl,
		PublishedAt: testNow.Add(-time.Hour), Tags: []string{"x"}}, StatusPublished)
	mustArticle(t, db, content.Item{ID: "a2", Title: "Draft", Slug: "draft", Category: afl}, StatusDraft)

	it, err := db.GetArticleBySlug(ctx, "one")
	if err != nil {
		t.Fatalf("GetArticleBySlug() error = %v", err)
	}
	if it.ID != "a1" || len(it.Tags) != 1 {
		t.Errorf("GetArticleBySlug() = %+v", it)
	}

	if _, err := db.GetArticleByID(ctx, "a1"); err != nil {
		t.Errorf("GetArticleByID() error = %v", err)
	}

	for _, slug := range []string{"draft", "missing"} {
		if _, err := db.GetArticleBySlug(ctx, slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetArticleBySlug(%s) error = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestCountPublished(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")
	nrl := mustCategory(t, db, "cat-nrl", "nrl")
	mustArticle(t, db, content.Item{Title: "One", Slug: "one", Category: afl, PublishedAt: testNow.Add(-time.Hour)}, StatusPublished)
	mustArticle(t, db, content.Item{Title: "Two", Slug: "two", Category: nrl, PublishedAt: testNow.Add(-time.Hour)}, StatusPublished)
	mustArticle(t, db, content.Item{Title: "Three", Slug: "three", Category: nrl}, StatusArchived)

	tests := []struct {
		slug string
		want int
	}{
		{"", 2},
		{"afl", 1},
		{"nrl", 1},
		{"golf", 0},
	}
	for _, tt := range tests {
		got, err := db.CountPublished(ctx, tt.slug)
		if err != nil {
			t.Fatalf("CountPublished(%q) error = %v", tt.slug, err)
		}
		if got != tt.want {
			t.Errorf("CountPublished(%q) = %d, want %d", tt.slug, got, tt.want)
		}
	}
}

func TestInsertArticle_Validation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")

	if _, err := db.InsertArticle(ctx, content.Item{Title: "x", Slug: "x"}, StatusPublished); err == nil {
		t.Error("InsertArticle() without category returned nil error")
	}
	if _, err := db.InsertArticle(ctx, content.Item{Title: "x", Slug: "x", Category: afl}, "pending"); err == nil {
		t.Error("InsertArticle() with unknown status returned nil error")
	}
	id, err := db.InsertArticle(ctx, content.Item{Title: "x", Slug: "x", Category: afl}, StatusDraft)
	if err != nil || id == "" {
		t.Errorf("InsertArticle() = %q, %v", id, err)
	}
}

func TestUpsertCategory_UpdatesName(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	afl := mustCategory(t, db, "cat-afl", "afl")
	mustArticle(t, db, content.Item{Title: "One", Slug: "one", Category: afl, PublishedAt: testNow.Add(-time.Hour)}, StatusPublished)

	afl.Name = "Australian Football"
	if err := db.UpsertCategory(ctx, afl); err != nil {
		t.Fatalf("UpsertCategory() error = %v", err)
	}
	it, err := db.GetArticleBySlug(ctx, "one")
	if err != nil {
		t.Fatal(err)
	}
	if it.Category.Name != "Australian Football" {
		t.Errorf("Category.Name = %q", it.Category.Name)
	}

	if err := db.UpsertCategory(ctx, content.Category{ID: "x"}); err == nil {
		t.Error("UpsertCategory() without slug returned nil error")
	}
}

func TestSeedSampleData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := db.SeedSampleData(ctx)
	if err != nil {
		t.Fatalf("SeedSampleData() error = %v", err)
	}
	if n != len(sampleArticles) {
		t.Errorf("SeedSampleData() = %d, want %d", n, len(sampleArticles))
	}

	again, err := db.SeedSampleData(ctx)
	if err != nil || again != 0 {
		t.Errorf("second SeedSampleData() = %d, %v; want 0, nil", again, err)
	}

	items, err := db.ListPublished(ctx, PoolQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != len(sampleArticles) {
		t.Errorf("ListPublished() after seed = %d items", len(items))
	}
	for _, it := range items {
		if it.Category.Slug == "" || len(it.Tags) == 0 {
			t.Errorf("seeded item %s missing category or tags", it.Slug)
		}
	}
}
