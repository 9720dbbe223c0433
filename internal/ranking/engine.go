// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package ranking

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/signals"
	"github.com/tomtom215/touchline/internal/trending"
)

// Engine scores and orders article pools for display surfaces.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	profiles Profiles
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for recency and trending.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a ranking engine over the given profile registry.
// An empty registry falls back to DefaultProfiles.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(profiles Profiles, logger zerolog.Logger, opts ...Option) *Engine {
	if profiles.Len() == 0 {
		profiles = DefaultProfiles()
	}
	e := &Engine{
		profiles: profiles,
		logger:   logger.With().Str("component", "ranking").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profiles returns the registry the engine ranks with.
func (e *Engine) Profiles() Profiles {
	return e.profiles
}

// Rank scores every item in the pool with the named profile and returns at
// most limit items, best first. Unknown profiles, empty pools and
// non-positive limits return an empty slice.
func (e *Engine) Rank(pool []content.Item, profileName string, limit int) []content.ScoredItem {
	weights, ok := e.profiles.Get(profileName)
	if !ok {
		e.logger.Warn().Str("profile", profileName).Msg("unknown ranking profile")
		return []content.ScoredItem{}
	}
	if len(pool) == 0 || limit <= 0 {
		return []content.ScoredItem{}
	}
	return content.Truncate(e.score(pool, weights, profileName), limit)
}

// score blends sub-scores for every item and sorts the result.
//
//nolint:gocritic // hugeParam: weights passed by value for immutability
func (e *Engine) score(pool []content.Item, w WeightProfile, reason string) []content.ScoredItem {
	now := e.now()
	stats := signals.Stats(pool, now)

	scored := make([]content.ScoredItem, 0, len(pool))
	for i := range pool {
		it := pool[i]

		rec := signals.Recency(it, now, signals.FreshnessDays)
		view := signals.Ratio(float64(it.ViewCount), stats.MaxViews)
		eng := signals.Ratio(signals.Engagement(it), stats.MaxEngagement)
		trend := signals.Ratio(signals.Trending(it, now), stats.MaxTrending)
		div := signals.Diversity(it, stats.Categories)

		total := rec*w.Recency +
			view*w.Popularity +
			eng*w.Engagement +
			trend*w.Trending +
			div*w.Diversity

		scored = append(scored, content.ScoredItem{
			Item:  it,
			Score: total,
			Scores: map[string]float64{
				content.ScoreRecency:    rec,
				content.ScorePopularity: view,
				content.ScoreEngagement: eng,
				content.ScoreTrending:   trend,
				content.ScoreDiversity:  div,
			},
			Reason: reason,
		})
	}

	content.SortByScore(scored)

	e.logger.Debug().
		Str("profile", reason).
		Int("pool", len(pool)).
		Float64("max_views", stats.MaxViews).
		Float64("max_trending", stats.MaxTrending).
		Msg("scored pool")

	return scored
}

// FeaturedPosts ranks with the balanced featured profile.
func (e *Engine) FeaturedPosts(pool []content.Item, limit int) []content.ScoredItem {
	return e.Rank(pool, ProfileFeatured, limit)
}

// FreshInsights ranks with the recency-heavy profile.
func (e *Engine) FreshInsights(pool []content.Item, limit int) []content.ScoredItem {
	return e.Rank(pool, ProfileFreshInsights, limit)
}

// HotRightNow ranks with the trending and engagement heavy profile.
func (e *Engine) HotRightNow(pool []content.Item, limit int) []content.ScoredItem {
	return e.Rank(pool, ProfileHotRightNow, limit)
}

// CategoryPosts filters the pool to one category before scoring, so pool
// maxima come from that category only.
func (e *Engine) CategoryPosts(pool []content.Item, categorySlug string, limit int) []content.ScoredItem {
	return e.Rank(content.FilterByCategory(pool, categorySlug), ProfileCategoryPage, limit)
}

// SEOOptimizedPosts ranks with the popularity and engagement heavy profile.
func (e *Engine) SEOOptimizedPosts(pool []content.Item, limit int) []content.ScoredItem {
	return e.Rank(pool, ProfileSEOOptimized, limit)
}

// RelatedByProfile ranks with the diversity-heavy related profile. Unlike
// the similarity engine it has no reference article.
func (e *Engine) RelatedByProfile(pool []content.Item, limit int) []content.ScoredItem {
	return e.Rank(pool, ProfileRelatedPosts, limit)
}

// TrendingCategories rolls the pool up to per-category trending velocity.
func (e *Engine) TrendingCategories(pool []content.Item) []trending.CategoryTrend {
	return trending.Aggregate(pool, e.now())
}
