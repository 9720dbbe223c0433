// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package trending rolls per-article trending velocity up to the category
// level to report which topics are currently hot.
package trending

import (
	"sort"
	"time"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/signals"
)

// CategoryTrend is the aggregated trending state of one category.
type CategoryTrend struct {
	CategorySlug         string  `json:"category_slug"`
	CategoryName         string  `json:"category_name"`
	AverageTrendingScore float64 `json:"average_trending_score"`
	PostCount            int     `json:"post_count"`
}

// Aggregate groups the pool by category slug and returns each group's mean
// raw trending velocity, sorted by that mean descending (slug ascending on
// ties). The category name is taken from the first item seen for the slug.
// An empty pool yields an empty, non-nil slice. Nothing is retained between
// calls.
func Aggregate(pool []content.Item, now time.Time) []CategoryTrend {
	if len(pool) == 0 {
		return []CategoryTrend{}
	}

	type group struct {
		name  string
		sum   float64
		count int
	}

	groups := make(map[string]*group)
	order := make([]string, 0)
	for i := range pool {
		slug := pool[i].Category.Slug
		g, ok := groups[slug]
		if !ok {
			g = &group{name: pool[i].Category.Name}
			groups[slug] = g
			order = append(order, slug)
		}
		g.sum += signals.Trending(pool[i], now)
		g.count++
	}

	trends := make([]CategoryTrend, 0, len(groups))
	for _, slug := range order {
		g := groups[slug]
		trends = append(trends, CategoryTrend{
			CategorySlug:         slug,
			CategoryName:         g.name,
			AverageTrendingScore: g.sum / float64(g.count),
			PostCount:            g.count,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		if trends[i].AverageTrendingScore != trends[j].AverageTrendingScore {
			return trends[i].AverageTrendingScore > trends[j].AverageTrendingScore
		}
		return trends[i].CategorySlug < trends[j].CategorySlug
	})

	return trends
}
