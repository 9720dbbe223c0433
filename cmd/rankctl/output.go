// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package main

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/trending"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(cmd *cobra.Command, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func score(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func printScored(cmd *cobra.Command, opts *options, items []content.ScoredItem) error {
	if opts.asJSON {
		return printJSON(cmd, items)
	}
	table := newTable(cmd, []string{"#", "Score", "Slug", "Category", "Views", "Reason"})
	for i := range items {
		it := items[i]
		table.Append([]string{
			strconv.Itoa(i + 1),
			score(it.Score),
			it.Item.Slug,
			it.Item.Category.Slug,
			strconv.Itoa(it.Item.ViewCount),
			it.Reason,
		})
	}
	table.Render()
	return nil
}

func printTrends(cmd *cobra.Command, opts *options, trends []trending.CategoryTrend) error {
	if opts.asJSON {
		return printJSON(cmd, trends)
	}
	table := newTable(cmd, []string{"#", "Category", "Name", "Avg trending", "Posts"})
	for i, t := range trends {
		table.Append([]string{
			strconv.Itoa(i + 1),
			t.CategorySlug,
			t.CategoryName,
			score(t.AverageTrendingScore),
			strconv.Itoa(t.PostCount),
		})
	}
	table.Render()
	return nil
}

func printProfiles(cmd *cobra.Command, opts *options, profiles ranking.Profiles) error {
	names := profiles.Names()
	if opts.asJSON {
		out := make(map[string]ranking.WeightProfile, len(names))
		for _, name := range names {
			out[name], _ = profiles.Get(name)
		}
		return printJSON(cmd, out)
	}
	table := newTable(cmd, []string{"Profile", "Recency", "Popularity", "Engagement", "Trending", "Diversity"})
	for _, name := range names {
		w, _ := profiles.Get(name)
		table.Append([]string{
			name, score(w.Recency), score(w.Popularity), score(w.Engagement), score(w.Trending), score(w.Diversity),
		})
	}
	table.Render()
	return nil
}
