// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package content defines the article shape shared by the ranking,
// similarity and trending engines.
//
// Items are built by the data-access layer, normalized once with
// Item.Normalize, and then only read. No engine mutates an Item.
package content

import (
	"strings"
	"time"
)

// Category is the taxonomy node an article belongs to.
// Slug is stable and is used as the grouping and diversity key.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SportType string `json:"sport_type,omitempty"`
	Color     string `json:"color,omitempty"`
}

// Item is a published article together with its engagement metrics.
type Item struct {
	// ID is the article identifier. It is also the final tie-breaker
	// for every ranking, compared as a string.
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt,omitempty"`

	// PublishedAt is zero when the article has no publish timestamp.
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`

	ViewCount          int `json:"view_count"`
	LikeCount          int `json:"like_count"`
	ShareCount         int `json:"share_count"`
	FavoriteCount      int `json:"favorite_count"`
	CommentCount       int `json:"comment_count"`
	ReadingTimeMinutes int `json:"reading_time_minutes"`

	Category Category `json:"category"`
	Tags     []string `json:"tags,omitempty"`
}

// Normalize returns a copy of the item with the data-access defaults
// applied: negative metrics become 0, tags are trimmed and de-duplicated
// (case-insensitive, first spelling wins) and a missing PublishedAt falls
// back to CreatedAt.
//
//nolint:gocritic // value receiver keeps Item immutable for callers
func (it Item) Normalize() Item {
	it.ViewCount = nonNegative(it.ViewCount)
	it.LikeCount = nonNegative(it.LikeCount)
	it.ShareCount = nonNegative(it.ShareCount)
	it.FavoriteCount = nonNegative(it.FavoriteCount)
	it.CommentCount = nonNegative(it.CommentCount)
	it.ReadingTimeMinutes = nonNegative(it.ReadingTimeMinutes)

	if it.PublishedAt.IsZero() {
		it.PublishedAt = it.CreatedAt
	}

	if len(it.Tags) > 0 {
		seen := make(map[string]struct{}, len(it.Tags))
		tags := make([]string, 0, len(it.Tags))
		for _, tag := range it.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			tags = append(tags, tag)
		}
		it.Tags = tags
	}

	return it
}

// Age returns how long ago the item was published relative to now.
// Items without a timestamp are treated as published at the zero time,
// which yields a very large age. Future timestamps yield 0.
//
//nolint:gocritic // value receiver keeps Item immutable for callers
func (it Item) Age(now time.Time) time.Duration {
	published := it.PublishedAt
	if published.IsZero() {
		published = it.CreatedAt
	}
	age := now.Sub(published)
	if age < 0 {
		return 0
	}
	return age
}

// NormalizeAll normalizes every item in the pool and returns a new slice.
func NormalizeAll(pool []Item) []Item {
	if len(pool) == 0 {
		return []Item{}
	}
	out := make([]Item, len(pool))
	for i := range pool {
		out[i] = pool[i].Normalize()
	}
	return out
}

// FilterByCategory returns the items whose category slug equals slug.
// The input slice is not modified.
func FilterByCategory(pool []Item, slug string) []Item {
	out := make([]Item, 0, len(pool))
	for i := range pool {
		if pool[i].Category.Slug == slug {
			out = append(out, pool[i])
		}
	}
	return out
}

// Without returns the pool minus any item whose ID equals id.
func Without(pool []Item, id string) []Item {
	out := make([]Item, 0, len(pool))
	for i := range pool {
		if pool[i].ID != id {
			out = append(out, pool[i])
		}
	}
	return out
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
