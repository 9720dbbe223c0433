// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package signals implements the per-item sub-scores shared by the
// ranking and trending engines.
//
// Every function is pure and returns a finite, non-negative value for any
// normalized item. Pool-relative scores return 0 instead of dividing by a
// zero maximum.
//
// The sub-scores are:
//
//	engagement(i) = shares*3 + likes*2 + favorites*2 + comments*1.5
//	recency(i)    = exp(-days / tau)
//	view(i)       = views / max(views in pool)
//	trending(i)   = (views + engagement) / max(hours, 1), *1.5 within 24h
//	diversity(i)  = 1 / count(pool items sharing i's category slug)
package signals

import (
	"math"
	"time"

	"github.com/tomtom215/touchline/internal/content"
)

const (
	// ShareWeight is the engagement multiplier for shares, the strongest
	// external-validation signal.
	ShareWeight = 3.0
	// LikeWeight is the engagement multiplier for likes.
	LikeWeight = 2.0
	// FavoriteWeight is the engagement multiplier for favorites.
	FavoriteWeight = 2.0
	// CommentWeight is the engagement multiplier for comments.
	CommentWeight = 1.5

	// FreshnessDays is the characteristic decay time for listing recency.
	FreshnessDays = 7.0

	// MinTrendingHours floors the trending denominator so items published
	// seconds ago do not blow up.
	MinTrendingHours = 1.0
	// FirstDayHours is the window during which trending velocity is boosted.
	FirstDayHours = 24.0
	// FirstDayBoost multiplies trending velocity inside the first day.
	FirstDayBoost = 1.5
)

// Engagement returns the weighted interaction total for an item.
//
//nolint:gocritic // hugeParam: Item is read-only here
func Engagement(it content.Item) float64 {
	return float64(it.ShareCount)*ShareWeight +
		float64(it.LikeCount)*LikeWeight +
		float64(it.FavoriteCount)*FavoriteWeight +
		float64(it.CommentCount)*CommentWeight
}

// Recency returns exp(-days/tauDays) for the item's age at now.
// A non-positive tau yields 0.
//
//nolint:gocritic // hugeParam: Item is read-only here
func Recency(it content.Item, now time.Time, tauDays float64) float64 {
	if tauDays <= 0 {
		return 0
	}
	days := it.Age(now).Hours() / 24
	return math.Exp(-days / tauDays)
}

// Trending returns the raw trending velocity for an item at now.
//
//nolint:gocritic // hugeParam: Item is read-only here
func Trending(it content.Item, now time.Time) float64 {
	hoursOld := math.Max(it.Age(now).Hours(), MinTrendingHours)
	velocity := (float64(it.ViewCount) + Engagement(it)) / hoursOld
	if hoursOld <= FirstDayHours {
		velocity *= FirstDayBoost
	}
	return velocity
}

// Ratio returns value/maximum, or 0 when maximum is not positive.
func Ratio(value, maximum float64) float64 {
	if maximum <= 0 || math.IsNaN(maximum) || math.IsInf(maximum, 0) {
		return 0
	}
	return value / maximum
}

// CategoryCounts counts pool items per category slug.
func CategoryCounts(pool []content.Item) map[string]int {
	counts := make(map[string]int)
	for i := range pool {
		counts[pool[i].Category.Slug]++
	}
	return counts
}

// Diversity returns 1/count for the item's category. counts must come from
// CategoryCounts over a pool that contains the item.
//
//nolint:gocritic // hugeParam: Item is read-only here
func Diversity(it content.Item, counts map[string]int) float64 {
	n := counts[it.Category.Slug]
	if n <= 0 {
		return 0
	}
	return 1 / float64(n)
}

// PoolStats holds the per-pool maxima used to normalize sub-scores.
type PoolStats struct {
	MaxViews      float64
	MaxEngagement float64
	MaxTrending   float64
	Categories    map[string]int
}

// Stats computes the normalization maxima for a pool in one pass.
func Stats(pool []content.Item, now time.Time) PoolStats {
	stats := PoolStats{Categories: CategoryCounts(pool)}
	for i := range pool {
		stats.MaxViews = math.Max(stats.MaxViews, float64(pool[i].ViewCount))
		stats.MaxEngagement = math.Max(stats.MaxEngagement, Engagement(pool[i]))
		stats.MaxTrending = math.Max(stats.MaxTrending, Trending(pool[i], now))
	}
	return stats
}
