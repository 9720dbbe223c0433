// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package similarity

import (
	"fmt"
	"sort"
)

// SportGroups maps a group name to the category slugs it contains.
// Categories in the same group are considered closely related.
type SportGroups map[string][]string

// DefaultSportGroups returns the built-in grouping of category slugs.
func DefaultSportGroups() SportGroups {
	return SportGroups{
		"football":   {"afl", "nrl", "rugby-union", "soccer"},
		"racing":     {"racing"},
		"motorsport": {"f1", "supercars", "motogp"},
		"cricket":    {"cricket"},
		"basketball": {"nba", "nbl"},
		"combat":     {"boxing", "ufc"},
		"tennis":     {"tennis"},
		"golf":       {"golf"},
	}
}

// index inverts the table into slug -> group. A slug listed under more
// than one group is an error.
func (g SportGroups) index() (map[string]string, error) {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	bySlug := make(map[string]string)
	for _, name := range names {
		for _, slug := range g[name] {
			if slug == "" {
				continue
			}
			if other, dup := bySlug[slug]; dup {
				return nil, fmt.Errorf("slug %q is in both %q and %q", slug, other, name)
			}
			bySlug[slug] = name
		}
	}
	return bySlug, nil
}
