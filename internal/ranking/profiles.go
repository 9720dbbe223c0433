// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package ranking

import (
	"fmt"
	"math"
	"sort"
)

// Profile names understood by the engine.
const (
	ProfileFeatured      = "featured"
	ProfileFreshInsights = "freshInsights"
	ProfileHotRightNow   = "hotRightNow"
	ProfileCategoryPage  = "categoryPage"
	ProfileRelatedPosts  = "relatedPosts"
	ProfileSEOOptimized  = "seoOptimized"
)

// WeightProfile holds the relative multipliers applied to each sub-score.
// Weights are not required to sum to 1.
type WeightProfile struct {
	Recency    float64 `json:"recency" koanf:"recency"`
	Popularity float64 `json:"popularity" koanf:"popularity"`
	Engagement float64 `json:"engagement" koanf:"engagement"`
	Trending   float64 `json:"trending" koanf:"trending"`
	Diversity  float64 `json:"diversity" koanf:"diversity"`
}

// Validate reports an error if any weight is negative or not finite.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w WeightProfile) Validate() error {
	for name, v := range w.ToMap() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a finite non-negative number, got %f", name, v)
		}
	}
	return nil
}

// ToMap returns the weights keyed by sub-score name.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w WeightProfile) ToMap() map[string]float64 {
	return map[string]float64{
		"recency":    w.Recency,
		"popularity": w.Popularity,
		"engagement": w.Engagement,
		"trending":   w.Trending,
		"diversity":  w.Diversity,
	}
}

// Profiles is an immutable registry of named weight profiles. The zero
// value is empty; use DefaultProfiles or NewProfiles.
type Profiles struct {
	byName map[string]WeightProfile
}

// DefaultProfiles returns the built-in surface profiles.
func DefaultProfiles() Profiles {
	return Profiles{byName: map[string]WeightProfile{
		ProfileFeatured:      {Recency: 0.25, Popularity: 0.25, Engagement: 0.25, Trending: 0.15, Diversity: 0.10},
		ProfileFreshInsights: {Recency: 0.50, Popularity: 0.10, Engagement: 0.15, Trending: 0.15, Diversity: 0.10},
		ProfileHotRightNow:   {Recency: 0.25, Popularity: 0.05, Engagement: 0.30, Trending: 0.35, Diversity: 0.05},
		ProfileCategoryPage:  {Recency: 0.30, Popularity: 0.30, Engagement: 0.30, Trending: 0.10, Diversity: 0},
		ProfileRelatedPosts:  {Recency: 0.20, Popularity: 0.20, Engagement: 0.20, Trending: 0.10, Diversity: 0.30},
		ProfileSEOOptimized:  {Recency: 0.10, Popularity: 0.40, Engagement: 0.35, Trending: 0.05, Diversity: 0.10},
	}}
}

// NewProfiles builds a registry from the given map after validating every
// profile. The map is copied.
func NewProfiles(profiles map[string]WeightProfile) (Profiles, error) {
	byName := make(map[string]WeightProfile, len(profiles))
	for name, w := range profiles {
		if name == "" {
			return Profiles{}, fmt.Errorf("profile name must not be empty")
		}
		if err := w.Validate(); err != nil {
			return Profiles{}, fmt.Errorf("profile %q: %w", name, err)
		}
		byName[name] = w
	}
	return Profiles{byName: byName}, nil
}

// With returns a new registry with the overrides applied on top of p.
// Overrides may replace existing profiles or add new ones; p is unchanged.
func (p Profiles) With(overrides map[string]WeightProfile) (Profiles, error) {
	merged := make(map[string]WeightProfile, len(p.byName)+len(overrides))
	for name, w := range p.byName {
		merged[name] = w
	}
	for name, w := range overrides {
		merged[name] = w
	}
	return NewProfiles(merged)
}

// Get returns the named profile. ok is false for unknown names.
func (p Profiles) Get(name string) (WeightProfile, bool) {
	w, ok := p.byName[name]
	return w, ok
}

// Names returns the registered profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p.byName))
	for name := range p.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered profiles.
func (p Profiles) Len() int {
	return len(p.byName)
}
