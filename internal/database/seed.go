// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/touchline/internal/content"
)

// seedNamespace derives stable IDs for sample rows.
var seedNamespace = uuid.MustParse("6f1c1f8e-2b7a-4c5e-9a51-1d3f0c2b7e10")

func seedID(kind, slug string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+slug)).String()
}

var sampleCategories = []content.Category{
	{Name: "AFL", Slug: "afl", SportType: "football", Color: "#0a3d91"},
	{Name: "NRL", Slug: "nrl", SportType: "football", Color: "#00843d"},
	{Name: "Cricket", Slug: "cricket", SportType: "cricket", Color: "#f2c300"},
	{Name: "Tennis", Slug: "tennis", SportType: "tennis", Color: "#c2410c"},
	{Name: "F1", Slug: "f1", SportType: "motorsport", Color: "#e10600"},
}

type sampleArticle struct {
	title, slug, category, excerpt string
	age                            time.Duration
	views, likes, shares, favs     int
	comments, minutes              int
	tags                           []string
}

var sampleArticles = []sampleArticle{
	{"Midfield pressure defined the AFL qualifying final", "afl-qualifying-final-midfield-pressure", "afl",
		"How contested possession swung a tight final.", 6 * time.Hour, 1800, 140, 60, 35, 22, 7,
		[]string{"finals", "tactics"}},
	{"Forward structures that are winning AFL games", "afl-forward-structures", "afl",
		"Tall and small forward setups compared.", 3 * 24 * time.Hour, 950, 70, 18, 20, 9, 9,
		[]string{"tactics", "forwards"}},
	{"NRL defensive line speed explained", "nrl-defensive-line-speed", "nrl",
		"Why rushing defences concede fewer line breaks.", 20 * time.Hour, 1200, 90, 40, 25, 15, 6,
		[]string{"defence", "tactics"}},
	{"Origin selection debates ahead of game one", "nrl-origin-selection-debates", "nrl",
		"The positions still wide open.", 9 * 24 * time.Hour, 4200, 260, 120, 80, 64, 5,
		[]string{"origin", "selection"}},
	{"Spin bowling conditions for the summer Test series", "cricket-spin-bowling-test-series", "cricket",
		"Pitch reports and the spinners to watch.", 2 * 24 * time.Hour, 700, 55, 12, 14, 6, 8,
		[]string{"test-cricket", "bowling"}},
	{"Powerplay batting trends in the T20 league", "cricket-t20-powerplay-trends", "cricket",
		"Strike rates in the first six overs keep climbing.", 40 * time.Hour, 1500, 110, 70, 30, 18, 6,
		[]string{"t20", "batting"}},
	{"Serve patterns that decided the Australian Open final", "tennis-open-final-serve-patterns", "tennis",
		"Placement data from a five-set final.", 12 * 24 * time.Hour, 3100, 200, 45, 60, 40, 10,
		[]string{"grand-slam", "serve"}},
	{"Clay season preview for the top ten", "tennis-clay-season-preview", "tennis",
		"Who adapts best to the slow surface.", 4 * time.Hour, 300, 25, 8, 5, 2, 7,
		[]string{"clay", "preview"}},
	{"Tyre strategy review from the Monaco Grand Prix", "f1-monaco-tyre-strategy", "f1",
		"One stop or two on the tightest circuit.", 30 * time.Hour, 2600, 180, 95, 50, 33, 8,
		[]string{"strategy", "tyres"}},
	{"Aerodynamic upgrades across the midfield teams", "f1-midfield-aero-upgrades", "f1",
		"Floor and wing changes team by team.", 6 * 24 * time.Hour, 1100, 60, 15, 22, 7, 11,
		[]string{"technical", "aero"}},
}

// SeedSampleData fills an empty store with demo categories and published
// articles timed relative to the store clock. It returns the number of
// articles inserted, which is 0 when the store already has content.
func (db *DB) SeedSampleData(ctx context.Context) (int, error) {
	n, err := db.CountPublished(ctx, "")
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	cats := make(map[string]content.Category, len(sampleCategories))
	for _, c := range sampleCategories {
		c.ID = seedID("category", c.Slug)
		if err := db.UpsertCategory(ctx, c); err != nil {
			return 0, fmt.Errorf("failed to seed categories: %w", err)
		}
		cats[c.Slug] = c
	}

	now := db.now()
	inserted := 0
	for _, a := range sampleArticles {
		published := now.Add(-a.age)
		it := content.Item{
			ID:                 seedID("article", a.slug),
			Title:              a.title,
			Slug:               a.slug,
			Excerpt:            a.excerpt,
			PublishedAt:        published,
			CreatedAt:          published.Add(-time.Hour),
			ViewCount:          a.views,
			LikeCount:          a.likes,
			ShareCount:         a.shares,
			FavoriteCount:      a.favs,
			CommentCount:       a.comments,
			ReadingTimeMinutes: a.minutes,
			Category:           cats[a.category],
			Tags:               a.tags,
		}
		if _, err := db.InsertArticle(ctx, it, StatusPublished); err != nil {
			return inserted, fmt.Errorf("failed to seed articles: %w", err)
		}
		inserted++
	}

	db.logger.Info().Int("articles", inserted).Int("categories", len(cats)).Msg("Seeded sample data")
	return inserted, nil
}
