// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/logging"
	"github.com/tomtom215/touchline/internal/metrics"
)

// Pinger is satisfied by the article store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreProbeService pings the store every interval and logs when
// reachability changes. It never fails; an unreachable store is reported,
// not restarted.
type StoreProbeService struct {
	store    Pinger
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	up       *bool
}

// NewStoreProbeService probes store every interval. Each ping gets at most
// half the interval.
func NewStoreProbeService(store Pinger, interval time.Duration) *StoreProbeService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &StoreProbeService{
		store:    store,
		interval: interval,
		timeout:  interval / 2,
		logger:   logging.Component("store-probe"),
	}
}

// Serve implements suture.Service.
func (p *StoreProbeService) Serve(ctx context.Context) error {
	p.probe(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *StoreProbeService) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.store.Ping(pctx)
	if ctx.Err() != nil {
		return
	}
	up := err == nil
	if up {
		metrics.StoreUp.Set(1)
	} else {
		metrics.StoreUp.Set(0)
	}

	if p.up != nil && *p.up == up {
		return
	}
	if up {
		p.logger.Info().Msg("Article store reachable")
	} else {
		p.logger.Error().Err(err).Msg("Article store unreachable")
	}
	p.up = &up
}

// String names the service in supervisor events.
func (p *StoreProbeService) String() string {
	return "store-probe"
}
