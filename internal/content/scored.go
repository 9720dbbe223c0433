// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package content

import "sort"

// Breakdown keys used in ScoredItem.Scores.
const (
	ScoreRecency    = "recency"
	ScorePopularity = "popularity"
	ScoreEngagement = "engagement"
	ScoreTrending   = "trending"
	ScoreDiversity  = "diversity"
	ScoreText       = "text"
	ScoreCategory   = "category"
	ScoreTags       = "tags"
)

// ScoredItem is an Item with a transient score attached for the duration
// of one ranking call. Scores are never persisted.
type ScoredItem struct {
	Item Item `json:"item"`

	// Score is the blended score, higher is better.
	Score float64 `json:"score"`

	// Scores is the per-signal breakdown that produced Score.
	Scores map[string]float64 `json:"scores,omitempty"`

	// Reason names the path that produced the item (profile name,
	// "similarity", "same_category", "most_viewed").
	Reason string `json:"reason,omitempty"`
}

// SortByScore orders items by Score descending with ID ascending as the
// tie-breaker, so equal scores always produce the same order.
func SortByScore(items []ScoredItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Item.ID < items[j].Item.ID
	})
}

// Truncate returns at most limit items. A non-positive limit yields an
// empty, non-nil slice.
func Truncate(items []ScoredItem, limit int) []ScoredItem {
	if limit <= 0 {
		return []ScoredItem{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

// Items strips the scores and returns the underlying items in order.
func Items(scored []ScoredItem) []Item {
	out := make([]Item, len(scored))
	for i := range scored {
		out[i] = scored[i].Item
	}
	return out
}
