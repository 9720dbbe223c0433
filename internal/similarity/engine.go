// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package similarity ranks candidate articles by how closely they relate to
// a reference article, for "related articles" panels.
//
// The composite score is
//
//	text*0.4 + category*0.3 + recency*0.2 + engagement*0.1 (+ tags*0)
//
// where text and tags are Jaccard overlaps, category is 1 for the same slug
// and 0.7 for the same sport group, recency decays over 30 days and
// engagement is log-compressed. The engine is stateless and safe for
// concurrent use.
package similarity

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/content"
)

const (
	// RecencyDays is the decay time for related-article recency.
	RecencyDays = 30.0

	// SameCategory is the category similarity for an identical slug.
	SameCategory = 1.0
	// SameSportGroup is the category similarity for slugs in one group.
	SameSportGroup = 0.7

	// ReasonSimilarity tags results of the composite ranking.
	ReasonSimilarity = "similarity"
	// ReasonSameCategory tags results of the category fast path.
	ReasonSameCategory = "same_category"
	// ReasonMostViewed tags results of TrendingPosts.
	ReasonMostViewed = "most_viewed"

	shareBoost    = 10.0
	favoriteBoost = 5.0
)

// engagementScale is log(1000): a total of 999 maps to 1.
var engagementScale = math.Log(1000)

// Weights are the composite multipliers for each sub-similarity.
type Weights struct {
	Text       float64 `json:"text" koanf:"text"`
	Category   float64 `json:"category" koanf:"category"`
	Recency    float64 `json:"recency" koanf:"recency"`
	Engagement float64 `json:"engagement" koanf:"engagement"`
	Tags       float64 `json:"tags" koanf:"tags"`
}

// DefaultWeights returns the standard composite weights. Tags are reported
// but do not contribute.
func DefaultWeights() Weights {
	return Weights{Text: 0.4, Category: 0.3, Recency: 0.2, Engagement: 0.1, Tags: 0}
}

// Config configures the similarity engine.
type Config struct {
	Weights     Weights
	SportGroups SportGroups
}

// DefaultConfig returns the default weights and sport groups.
func DefaultConfig() Config {
	return Config{Weights: DefaultWeights(), SportGroups: DefaultSportGroups()}
}

// Engine computes related-article rankings.
type Engine struct {
	weights Weights
	groups  map[string]string
	logger  zerolog.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for recency.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine validates the configuration and builds an engine. A nil sport
// group table uses DefaultSportGroups.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	w := cfg.Weights
	for name, v := range map[string]float64{
		"text": w.Text, "category": w.Category, "recency": w.Recency,
		"engagement": w.Engagement, "tags": w.Tags,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("similarity weight %s must be a finite non-negative number, got %f", name, v)
		}
	}

	groups := cfg.SportGroups
	if groups == nil {
		groups = DefaultSportGroups()
	}
	index, err := groups.index()
	if err != nil {
		return nil, fmt.Errorf("invalid sport groups: %w", err)
	}

	e := &Engine{
		weights: w,
		groups:  index,
		logger:  logger.With().Str("component", "similarity").Logger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// TextSimilarity is the Jaccard overlap of the long words in title and
// excerpt.
//
//nolint:gocritic // hugeParam: items are read-only
func TextSimilarity(a, b content.Item) float64 {
	return jaccard(wordSet(a.Title+" "+a.Excerpt), wordSet(b.Title+" "+b.Excerpt))
}

// TagSimilarity is the Jaccard overlap of lower-cased tags.
func TagSimilarity(a, b []string) float64 {
	return jaccard(tagSet(a), tagSet(b))
}

// CategorySimilarity returns 1 for the same slug, 0.7 for slugs in the same
// sport group and 0 otherwise. Empty slugs never match.
//
//nolint:gocritic // hugeParam: items are read-only
func (e *Engine) CategorySimilarity(a, b content.Item) float64 {
	sa, sb := a.Category.Slug, b.Category.Slug
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb {
		return SameCategory
	}
	ga, okA := e.groups[sa]
	gb, okB := e.groups[sb]
	if okA && okB && ga == gb {
		return SameSportGroup
	}
	return 0
}

// Recency returns exp(-days/30) for the item's age.
//
//nolint:gocritic // hugeParam: item is read-only
func (e *Engine) Recency(it content.Item) float64 {
	days := it.Age(e.now()).Hours() / 24
	return math.Exp(-days / RecencyDays)
}

// Engagement returns log(total+1)/log(1000) with
// total = views + shares*10 + favorites*5. It is not clamped to 1.
//
//nolint:gocritic // hugeParam: item is read-only
func Engagement(it content.Item) float64 {
	total := float64(it.ViewCount) + float64(it.ShareCount)*shareBoost + float64(it.FavoriteCount)*favoriteBoost
	return math.Log(total+1) / engagementScale
}

// RelatedPosts ranks the pool against the reference article and returns at
// most limit items. The reference ID is never returned.
//
//nolint:gocritic // hugeParam: reference is read-only
func (e *Engine) RelatedPosts(reference content.Item, pool []content.Item, limit int) []content.ScoredItem {
	if len(pool) == 0 || limit <= 0 {
		return []content.ScoredItem{}
	}

	now := e.now()
	refWords := wordSet(reference.Title + " " + reference.Excerpt)
	refTags := tagSet(reference.Tags)

	scored := make([]content.ScoredItem, 0, len(pool))
	for i := range pool {
		it := pool[i]
		if it.ID == reference.ID {
			continue
		}

		text := jaccard(refWords, wordSet(it.Title+" "+it.Excerpt))
		tags := jaccard(refTags, tagSet(it.Tags))
		cat := e.CategorySimilarity(reference, it)
		rec := math.Exp(-(it.Age(now).Hours() / 24) / RecencyDays)
		eng := Engagement(it)

		total := text*e.weights.Text +
			cat*e.weights.Category +
			rec*e.weights.Recency +
			eng*e.weights.Engagement +
			tags*e.weights.Tags

		scored = append(scored, content.ScoredItem{
			Item:  it,
			Score: total,
			Scores: map[string]float64{
				content.ScoreText:       text,
				content.ScoreCategory:   cat,
				content.ScoreRecency:    rec,
				content.ScoreEngagement: eng,
				content.ScoreTags:       tags,
			},
			Reason: ReasonSimilarity,
		})
	}

	content.SortByScore(scored)

	e.logger.Debug().
		Str("reference", reference.ID).
		Int("candidates", len(scored)).
		Msg("ranked related posts")

	return content.Truncate(scored, limit)
}

// RelatedPostsByCategory is the category fast path: items in the category
// other than excludeID, newest first, each with a constant score of 1.
func (e *Engine) RelatedPostsByCategory(categorySlug, excludeID string, pool []content.Item, limit int) []content.ScoredItem {
	if len(pool) == 0 || limit <= 0 || categorySlug == "" {
		return []content.ScoredItem{}
	}

	candidates := content.Without(content.FilterByCategory(pool, categorySlug), excludeID)
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := publishedAt(candidates[i]), publishedAt(candidates[j])
		if !pi.Equal(pj) {
			return pi.After(pj)
		}
		return candidates[i].ID < candidates[j].ID
	})

	scored := make([]content.ScoredItem, 0, len(candidates))
	for i := range candidates {
		scored = append(scored, content.ScoredItem{
			Item:   candidates[i],
			Score:  SameCategory,
			Scores: map[string]float64{content.ScoreCategory: SameCategory},
			Reason: ReasonSameCategory,
		})
	}
	return content.Truncate(scored, limit)
}

// TrendingPosts orders the pool by views, then shares, then ID.
func (e *Engine) TrendingPosts(pool []content.Item, limit int) []content.ScoredItem {
	if len(pool) == 0 || limit <= 0 {
		return []content.ScoredItem{}
	}

	sorted := make([]content.Item, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ViewCount != sorted[j].ViewCount {
			return sorted[i].ViewCount > sorted[j].ViewCount
		}
		if sorted[i].ShareCount != sorted[j].ShareCount {
			return sorted[i].ShareCount > sorted[j].ShareCount
		}
		return sorted[i].ID < sorted[j].ID
	})

	scored := make([]content.ScoredItem, 0, len(sorted))
	for i := range sorted {
		scored = append(scored, content.ScoredItem{
			Item:   sorted[i],
			Score:  float64(sorted[i].ViewCount),
			Reason: ReasonMostViewed,
		})
	}
	return content.Truncate(scored, limit)
}

//nolint:gocritic // hugeParam: item is read-only
func publishedAt(it content.Item) time.Time {
	if it.PublishedAt.IsZero() {
		return it.CreatedAt
	}
	return it.PublishedAt
}
