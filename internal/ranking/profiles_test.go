// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package ranking

import (
	"math"
	"testing"
)

func TestDefaultProfiles(t *testing.T) {
	p := DefaultProfiles()

	want := []string{
		ProfileCategoryPage, ProfileFeatured, ProfileFreshInsights,
		ProfileHotRightNow, ProfileRelatedPosts, ProfileSEOOptimized,
	}
	names := p.Names()
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}

	hot, ok := p.Get(ProfileHotRightNow)
	if !ok {
		t.Fatal("hotRightNow missing")
	}
	if hot.Trending != 0.35 || hot.Engagement != 0.30 {
		t.Errorf("hotRightNow = %+v", hot)
	}

	cat, _ := p.Get(ProfileCategoryPage)
	if cat.Diversity != 0 {
		t.Errorf("categoryPage diversity = %v, want 0", cat.Diversity)
	}

	for _, name := range names {
		w, _ := p.Get(name)
		if err := w.Validate(); err != nil {
			t.Errorf("%s: Validate() = %v", name, err)
		}
	}
}

func TestProfiles_GetUnknown(t *testing.T) {
	if _, ok := DefaultProfiles().Get("nope"); ok {
		t.Error("Get(nope) ok = true, want false")
	}
}

func TestProfiles_With(t *testing.T) {
	base := DefaultProfiles()

	merged, err := base.With(map[string]WeightProfile{
		ProfileFeatured: {Recency: 1},
		"matchDay":      {Trending: 1},
	})
	if err != nil {
		t.Fatalf("With() error = %v", err)
	}

	if f, _ := merged.Get(ProfileFeatured); f.Recency != 1 || f.Popularity != 0 {
		t.Errorf("featured override = %+v", f)
	}
	if _, ok := merged.Get("matchDay"); !ok {
		t.Error("matchDay not added")
	}
	if merged.Len() != base.Len()+1 {
		t.Errorf("Len() = %d, want %d", merged.Len(), base.Len()+1)
	}

	if f, _ := base.Get(ProfileFeatured); f.Recency != 0.25 {
		t.Errorf("base mutated: featured = %+v", f)
	}
}

func TestNewProfiles_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		profiles map[string]WeightProfile
	}{
		{"negative weight", map[string]WeightProfile{"x": {Recency: -0.1}}},
		{"nan weight", map[string]WeightProfile{"x": {Trending: math.NaN()}}},
		{"infinite weight", map[string]WeightProfile{"x": {Popularity: math.Inf(1)}}},
		{"empty name", map[string]WeightProfile{"": {Recency: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProfiles(tt.profiles); err == nil {
				t.Error("NewProfiles() error = nil, want error")
			}
		})
	}
}
