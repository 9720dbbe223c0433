// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

/*
Package ranking orders candidate article pools for the display surfaces of
the site: featured, fresh insights, hot right now, category pages, SEO picks
and related listings.

# Scoring Model

Each item receives five sub-scores from package signals:

  - recency: exp(-days/7)
  - popularity: views / max views in pool
  - engagement: weighted interactions / max in pool
  - trending: view+engagement velocity / max in pool
  - diversity: 1 / items sharing the category

A WeightProfile blends them linearly:

	score = rec*w.Recency + pop*w.Popularity + eng*w.Engagement +
	        trend*w.Trending + div*w.Diversity

Items are sorted by score descending with ID ascending breaking ties, then
truncated to the requested limit.

# Profiles

Profiles is an immutable registry injected at construction. DefaultProfiles
returns the built-in table; configuration can override weights through
Profiles.With. Unknown profile names produce an empty result and a warning.

# Usage

	engine := ranking.NewEngine(ranking.DefaultProfiles(), logger)
	top := engine.HotRightNow(pool, 10)

# Thread Safety

Engine has no mutable state. The clock can be injected with WithClock for
deterministic tests.
*/
package ranking
