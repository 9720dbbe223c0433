// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/trending"
)

const testNow = "2026-05-01T12:00:00Z"

func testPool() []content.Item {
	now, _ := time.Parse(time.RFC3339, testNow)
	afl := content.Category{ID: "c1", Name: "AFL", Slug: "afl", SportType: "afl"}
	nrl := content.Category{ID: "c2", Name: "NRL", Slug: "nrl", SportType: "nrl"}
	return []content.Item{
		{ID: "a1", Title: "Round five midfield pressure review", Slug: "afl-round-five",
			PublishedAt: now.Add(-2 * time.Hour), ViewCount: 900, LikeCount: 40, Category: afl, Tags: []string{"review"}},
		{ID: "a2", Title: "Round five forward line review", Slug: "afl-forward-line",
			PublishedAt: now.Add(-26 * time.Hour), ViewCount: 400, LikeCount: 12, Category: afl, Tags: []string{"review"}},
		{ID: "a3", Title: "Origin selection debate", Slug: "nrl-origin-selection",
			PublishedAt: now.Add(-5 * 24 * time.Hour), ViewCount: 2000, ShareCount: 90, Category: nrl},
	}
}

func writePool(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(testPool())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pool.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeScored(t *testing.T, out string) []content.ScoredItem {
	t.Helper()
	var items []content.ScoredItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return items
}

func TestRank(t *testing.T) {
	pool := writePool(t)

	tests := []struct {
		name      string
		args      []string
		wantCount int
		wantCat   string
	}{
		{"limit applies", []string{"--profile", ranking.ProfileHotRightNow, "--limit", "2"}, 2, ""},
		{"category filter", []string{"--category", "afl"}, 2, "afl"},
		{"zero limit", []string{"--limit", "0"}, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"rank", "--file", pool, "--now", testNow, "--json"}, tt.args...)
			out, err := execute(t, "", args...)
			if err != nil {
				t.Fatalf("rank error = %v", err)
			}
			items := decodeScored(t, out)
			if len(items) != tt.wantCount {
				t.Fatalf("got %d items, want %d", len(items), tt.wantCount)
			}
			for i := 1; i < len(items); i++ {
				if items[i].Score > items[i-1].Score {
					t.Errorf("not sorted: %v before %v", items[i-1].Score, items[i].Score)
				}
			}
			for _, it := range items {
				if tt.wantCat != "" && it.Item.Category.Slug != tt.wantCat {
					t.Errorf("item %s in category %s", it.Item.ID, it.Item.Category.Slug)
				}
			}
		})
	}
}

func TestRank_UnknownProfile(t *testing.T) {
	_, err := execute(t, "", "rank", "--file", writePool(t), "--profile", "nope")
	if err == nil || !strings.Contains(err.Error(), "unknown profile") {
		t.Errorf("error = %v, want unknown profile", err)
	}
}

func TestRank_Stdin(t *testing.T) {
	data, err := json.Marshal(testPool())
	if err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, string(data), "rank", "--now", testNow, "--json")
	if err != nil {
		t.Fatalf("rank error = %v", err)
	}
	if n := len(decodeScored(t, out)); n != 3 {
		t.Errorf("got %d items, want 3", n)
	}
}

func TestRank_Table(t *testing.T) {
	out, err := execute(t, "", "rank", "--file", writePool(t), "--now", testNow)
	if err != nil {
		t.Fatalf("rank error = %v", err)
	}
	for _, slug := range []string{"afl-round-five", "afl-forward-line", "nrl-origin-selection"} {
		if !strings.Contains(out, slug) {
			t.Errorf("table missing %s:\n%s", slug, out)
		}
	}
}

func TestRelated(t *testing.T) {
	pool := writePool(t)

	t.Run("similarity excludes reference", func(t *testing.T) {
		out, err := execute(t, "", "related", "--file", pool, "--now", testNow, "--json", "--slug", "afl-round-five")
		if err != nil {
			t.Fatalf("related error = %v", err)
		}
		items := decodeScored(t, out)
		if len(items) == 0 {
			t.Fatal("no related items")
		}
		for _, it := range items {
			if it.Item.ID == "a1" {
				t.Error("reference article returned")
			}
		}
	})

	t.Run("by category", func(t *testing.T) {
		out, err := execute(t, "", "related", "--file", pool, "--json", "--slug", "afl-round-five", "--by-category")
		if err != nil {
			t.Fatalf("related error = %v", err)
		}
		items := decodeScored(t, out)
		if len(items) != 1 || items[0].Item.ID != "a2" {
			t.Errorf("got %+v, want only a2", items)
		}
	})

	errCases := []struct {
		name string
		args []string
		want string
	}{
		{"missing slug", []string{}, "--slug is required"},
		{"unknown slug", []string{"--slug", "nope"}, "not in pool"},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"related", "--file", pool}, tc.args...)
			_, err := execute(t, "", args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestCategories(t *testing.T) {
	out, err := execute(t, "", "categories", "--file", writePool(t), "--now", testNow, "--json")
	if err != nil {
		t.Fatalf("categories error = %v", err)
	}
	var trends []trending.CategoryTrend
	if err := json.Unmarshal([]byte(out), &trends); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("got %d categories, want 2", len(trends))
	}
	counts := map[string]int{}
	for _, tr := range trends {
		counts[tr.CategorySlug] = tr.PostCount
	}
	if counts["afl"] != 2 || counts["nrl"] != 1 {
		t.Errorf("post counts = %v", counts)
	}
	if trends[0].AverageTrendingScore < trends[1].AverageTrendingScore {
		t.Error("categories not sorted by trending score")
	}
}

func TestProfiles(t *testing.T) {
	out, err := execute(t, "", "profiles", "--json")
	if err != nil {
		t.Fatalf("profiles error = %v", err)
	}
	var got map[string]ranking.WeightProfile
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got[ranking.ProfileFeatured]; !ok {
		t.Errorf("featured missing from %v", got)
	}
}

func TestInvalidNow(t *testing.T) {
	_, err := execute(t, "", "categories", "--file", writePool(t), "--now", "yesterday")
	if err == nil || !strings.Contains(err.Error(), "--now") {
		t.Errorf("error = %v, want invalid --now", err)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := execute(t, "", "rank", "--file", filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
