// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/touchline/internal/app"
	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/logging"
	"github.com/tomtom215/touchline/internal/ranking"
	"github.com/tomtom215/touchline/internal/similarity"
)

// options are the flags shared by every subcommand.
type options struct {
	file       string
	configPath string
	now        string
	asJSON     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "rankctl",
		Short:         "Rank a pool of articles offline",
		Long:          "rankctl reads a JSON array of articles and prints ranked listings, related articles or trending categories.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "-", "JSON array of articles (- for stdin)")
	pf.StringVar(&opts.configPath, "config", "", "YAML config with ranking profiles and similarity weights")
	pf.StringVar(&opts.now, "now", "", "rank as of this RFC 3339 time (default: current time)")
	pf.BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log engine warnings to stderr")

	root.AddCommand(
		newRankCmd(opts),
		newRelatedCmd(opts),
		newCategoriesCmd(opts),
		newProfilesCmd(opts),
	)
	return root
}

// engines loads the optional config and builds both engines on the
// requested clock.
func (o *options) engines(cmd *cobra.Command) (*ranking.Engine, *similarity.Engine, error) {
	cfg := config.Defaults()
	if o.configPath != "" {
		loaded, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	now, err := o.clock()
	if err != nil {
		return nil, nil, err
	}

	logger := zerolog.Nop()
	if o.verbose {
		logger = logging.NewTestLogger(cmd.ErrOrStderr())
	}
	return app.Engines(cfg, logger, now)
}

func (o *options) clock() (func() time.Time, error) {
	if o.now == "" {
		return time.Now, nil
	}
	t, err := time.Parse(time.RFC3339, o.now)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q: %w", o.now, err)
	}
	return func() time.Time { return t }, nil
}

// pool reads and normalizes the article file.
func (o *options) pool(cmd *cobra.Command) ([]content.Item, error) {
	var r io.Reader
	if o.file == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(o.file)
		if err != nil {
			return nil, fmt.Errorf("failed to open pool: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var items []content.Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to decode pool %s: %w", o.file, err)
	}
	return content.NormalizeAll(items), nil
}
