// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package similarity

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/content"
)

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), zerolog.Nop(), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func cat(slug string) content.Category {
	return content.Category{Slug: slug, Name: slug}
}

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b content.Item
		want float64
	}{
		{
			name: "identical long words",
			a:    content.Item{Title: "Grand Final preview"},
			b:    content.Item{Title: "grand final PREVIEW"},
			want: 1,
		},
		{
			name: "short words ignored",
			a:    content.Item{Title: "the and for"},
			b:    content.Item{Title: "the and for"},
			want: 0,
		},
		{
			name: "partial overlap with punctuation",
			a:    content.Item{Title: "Grand-final", Excerpt: "tactics"},
			b:    content.Item{Title: "Grand final!", Excerpt: "injuries"},
			// {grand, final, tactics} vs {grand, final, injuries}: 2/4
			want: 0.5,
		},
		{
			name: "empty text",
			a:    content.Item{},
			b:    content.Item{Title: "something longer"},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TextSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagSimilarity(t *testing.T) {
	if got := TagSimilarity([]string{"Finals", "MCG"}, []string{"finals"}); got != 0.5 {
		t.Errorf("TagSimilarity() = %v, want 0.5", got)
	}
	if got := TagSimilarity(nil, []string{"x"}); got != 0 {
		t.Errorf("TagSimilarity(nil) = %v, want 0", got)
	}
}

func TestCategorySimilarity(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		a, b string
		want float64
	}{
		{"afl", "afl", 1},
		{"afl", "nrl", 0.7},
		{"f1", "motogp", 0.7},
		{"afl", "f1", 0},
		{"racing", "f1", 0},
		{"", "", 0},
		{"unlisted", "unlisted", 1},
		{"unlisted", "other", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			a := content.Item{Category: cat(tt.a)}
			b := content.Item{Category: cat(tt.b)}
			if got := e.CategorySimilarity(a, b); got != tt.want {
				t.Errorf("CategorySimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEngagementAndRecency(t *testing.T) {
	e := newTestEngine(t)

	if got := Engagement(content.Item{}); got != 0 {
		t.Errorf("Engagement(zero) = %v, want 0", got)
	}
	if got := Engagement(content.Item{ViewCount: 999}); math.Abs(got-1) > 1e-9 {
		t.Errorf("Engagement(999 views) = %v, want 1", got)
	}
	// 500 + 40*10 + 20*5 = 1000
	got := Engagement(content.Item{ViewCount: 500, ShareCount: 40, FavoriteCount: 20})
	if want := math.Log(1001) / math.Log(1000); math.Abs(got-want) > 1e-9 {
		t.Errorf("Engagement() = %v, want %v", got, want)
	}

	month := content.Item{PublishedAt: testNow.Add(-30 * 24 * time.Hour)}
	if got := e.Recency(month); math.Abs(got-math.Exp(-1)) > 1e-9 {
		t.Errorf("Recency(30 days) = %v, want e^-1", got)
	}
}

func TestRelatedPosts(t *testing.T) {
	e := newTestEngine(t)

	ref := content.Item{ID: "ref", Title: "Collingwood premiership defence", Category: cat("afl"), PublishedAt: testNow}
	pool := []content.Item{
		ref,
		{ID: "same", Title: "Collingwood premiership defence analysis", Category: cat("afl"), PublishedAt: testNow.Add(-time.Hour)},
		{ID: "group", Title: "Panthers premiership defence", Category: cat("nrl"), PublishedAt: testNow.Add(-time.Hour)},
		{ID: "far", Title: "Verstappen qualifying pace", Category: cat("f1"), PublishedAt: testNow.Add(-time.Hour)},
	}

	got := e.RelatedPosts(ref, pool, 10)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	want := []string{"same", "group", "far"}
	for i, id := range want {
		if got[i].Item.ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Item.ID, id)
		}
		if got[i].Item.ID == ref.ID {
			t.Error("reference returned in its own related list")
		}
		if got[i].Reason != ReasonSimilarity {
			t.Errorf("Reason = %q, want %q", got[i].Reason, ReasonSimilarity)
		}
	}

	if got[1].Scores[content.ScoreCategory] != SameSportGroup {
		t.Errorf("group category score = %v, want %v", got[1].Scores[content.ScoreCategory], SameSportGroup)
	}
}

func TestRelatedPosts_Degenerate(t *testing.T) {
	e := newTestEngine(t)
	ref := content.Item{ID: "ref", Category: cat("afl")}

	for name, got := range map[string][]content.ScoredItem{
		"nil pool":       e.RelatedPosts(ref, nil, 5),
		"zero limit":     e.RelatedPosts(ref, []content.Item{{ID: "x"}}, 0),
		"only reference": e.RelatedPosts(ref, []content.Item{ref}, 5),
	} {
		if got == nil || len(got) != 0 {
			t.Errorf("%s: got %v, want empty non-nil", name, got)
		}
	}
}

func TestRelatedPosts_TagsWeighted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Tags: 1}
	e, err := NewEngine(cfg, zerolog.Nop(), WithClock(func() time.Time { return testNow }))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	ref := content.Item{ID: "ref", Tags: []string{"finals", "mcg"}}
	pool := []content.Item{
		{ID: "b", Tags: []string{"finals"}},
		{ID: "a", Tags: []string{"FINALS", "mcg"}},
	}

	got := e.RelatedPosts(ref, pool, 2)
	if got[0].Item.ID != "a" || got[0].Score != 1 {
		t.Errorf("top = %s (%v), want a (1)", got[0].Item.ID, got[0].Score)
	}
}

func TestRelatedPostsByCategory(t *testing.T) {
	e := newTestEngine(t)
	pool := []content.Item{
		{ID: "old", Category: cat("afl"), PublishedAt: testNow.Add(-48 * time.Hour)},
		{ID: "ref", Category: cat("afl"), PublishedAt: testNow},
		{ID: "new", Category: cat("afl"), PublishedAt: testNow.Add(-time.Hour)},
		{ID: "nrl", Category: cat("nrl"), PublishedAt: testNow},
		{ID: "b", Category: cat("afl"), PublishedAt: testNow.Add(-24 * time.Hour)},
		{ID: "a", Category: cat("afl"), PublishedAt: testNow.Add(-24 * time.Hour)},
	}

	got := e.RelatedPostsByCategory("afl", "ref", pool, 10)
	want := []string{"new", "a", "b", "old"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].Item.ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Item.ID, id)
		}
		if got[i].Score != 1 || got[i].Reason != ReasonSameCategory {
			t.Errorf("got[%d] score/reason = %v/%q", i, got[i].Score, got[i].Reason)
		}
	}

	if got := e.RelatedPostsByCategory("afl", "ref", pool, 2); len(got) != 2 {
		t.Errorf("limit 2 len = %d", len(got))
	}
	if got := e.RelatedPostsByCategory("", "ref", pool, 2); len(got) != 0 {
		t.Errorf("empty slug len = %d, want 0", len(got))
	}
}

func TestTrendingPosts(t *testing.T) {
	e := newTestEngine(t)
	pool := []content.Item{
		{ID: "c", ViewCount: 100, ShareCount: 1},
		{ID: "a", ViewCount: 500},
		{ID: "b", ViewCount: 100, ShareCount: 9},
		{ID: "d", ViewCount: 100, ShareCount: 1},
	}

	got := e.TrendingPosts(pool, 10)
	want := []string{"a", "b", "c", "d"}
	for i, id := range want {
		if got[i].Item.ID != id {
			t.Errorf("got[%d] = %s, want %s", i, got[i].Item.ID, id)
		}
	}
	if pool[0].ID != "c" {
		t.Error("TrendingPosts reordered its input")
	}
	if got := e.TrendingPosts(pool, 0); len(got) != 0 {
		t.Errorf("limit 0 len = %d, want 0", len(got))
	}
}

func TestNewEngine_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative weight", Config{Weights: Weights{Text: -1}}},
		{"duplicate slug", Config{Weights: DefaultWeights(), SportGroups: SportGroups{"a": {"x"}, "b": {"x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEngine(tt.cfg, zerolog.Nop()); err == nil {
				t.Error("NewEngine() error = nil, want error")
			}
		})
	}
}
