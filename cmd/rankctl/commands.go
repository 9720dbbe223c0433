// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/ranking"
)

func newRankCmd(opts *options) *cobra.Command {
	var (
		profile  string
		category string
		limit    int
	)
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank the pool with a weight profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rank, _, err := opts.engines(cmd)
			if err != nil {
				return err
			}
			if _, ok := rank.Profiles().Get(profile); !ok {
				return fmt.Errorf("unknown profile %q (have %v)", profile, rank.Profiles().Names())
			}
			pool, err := opts.pool(cmd)
			if err != nil {
				return err
			}

			if category != "" {
				pool = content.FilterByCategory(pool, category)
			}
			return printScored(cmd, opts, rank.Rank(pool, profile, limit))
		},
	}
	cmd.Flags().StringVarP(&profile, "profile", "p", ranking.ProfileFeatured, "weight profile name")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only rank articles in this category slug")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of results")
	return cmd
}

func newRelatedCmd(opts *options) *cobra.Command {
	var (
		slug       string
		limit      int
		byCategory bool
	)
	cmd := &cobra.Command{
		Use:   "related",
		Short: "List articles related to one in the pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if slug == "" {
				return fmt.Errorf("--slug is required")
			}
			_, sim, err := opts.engines(cmd)
			if err != nil {
				return err
			}
			pool, err := opts.pool(cmd)
			if err != nil {
				return err
			}

			ref, ok := findSlug(pool, slug)
			if !ok {
				return fmt.Errorf("article %q not in pool", slug)
			}
			if byCategory {
				return printScored(cmd, opts, sim.RelatedPostsByCategory(ref.Category.Slug, ref.ID, pool, limit))
			}
			return printScored(cmd, opts, sim.RelatedPosts(ref, pool, limit))
		},
	}
	cmd.Flags().StringVarP(&slug, "slug", "s", "", "slug of the reference article")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "maximum number of results")
	cmd.Flags().BoolVar(&byCategory, "by-category", false, "newest articles in the same category instead of similarity")
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Rank categories by average trending velocity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rank, _, err := opts.engines(cmd)
			if err != nil {
				return err
			}
			pool, err := opts.pool(cmd)
			if err != nil {
				return err
			}
			return printTrends(cmd, opts, rank.TrendingCategories(pool))
		},
	}
}

func newProfilesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the weight profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rank, _, err := opts.engines(cmd)
			if err != nil {
				return err
			}
			return printProfiles(cmd, opts, rank.Profiles())
		},
	}
}

func findSlug(pool []content.Item, slug string) (content.Item, bool) {
	for i := range pool {
		if pool[i].Slug == slug {
			return pool[i], true
		}
	}
	return content.Item{}, false
}
