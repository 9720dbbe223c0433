// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/touchline/internal/config"
	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/logging"
	"github.com/tomtom215/touchline/internal/metrics"
)

// ErrUnavailable is returned while the circuit breaker rejects store calls.
var ErrUnavailable = errors.New("article store unavailable")

// BreakerName labels the store breaker in metrics and logs.
const BreakerName = "article-store"

// PoolSource is the read side of the article store used by the feed
// service.
type PoolSource interface {
	ListPublished(ctx context.Context, q PoolQuery) ([]content.Item, error)
	GetArticleBySlug(ctx context.Context, slug string) (content.Item, error)
	CountPublished(ctx context.Context, categorySlug string) (int, error)
	Ping(ctx context.Context) error
}

var _ PoolSource = (*DB)(nil)
var _ PoolSource = (*BreakerSource)(nil)

// BreakerSource wraps a PoolSource with a circuit breaker. ErrNotFound and
// context cancellation do not count as failures.
type BreakerSource struct {
	src    PoolSource
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger zerolog.Logger
}

// NewBreakerSource decorates src with a breaker configured from cfg. The
// breaker opens once at least cfg.MinRequests calls were made in the
// interval and the failure ratio reaches cfg.FailureRatio.
//
//nolint:gocritic // BreakerConfig is read once at construction
func NewBreakerSource(src PoolSource, cfg config.BreakerConfig) *BreakerSource {
	b := &BreakerSource{
		src:    src,
		name:   BreakerName,
		logger: logging.Component("breaker"),
	}

	metrics.CircuitBreakerState.WithLabelValues(b.name).Set(0)

	b.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        b.name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip {
				b.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			b.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
	})
	return b
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerSource) State() string {
	return stateToString(b.cb.State())
}

func (b *BreakerSource) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// ListPublished implements PoolSource.
func (b *BreakerSource) ListPublished(ctx context.Context, q PoolQuery) ([]content.Item, error) {
	return castResult[[]content.Item](b.execute(func() (interface{}, error) {
		return b.src.ListPublished(ctx, q)
	}))
}

// GetArticleBySlug implements PoolSource.
func (b *BreakerSource) GetArticleBySlug(ctx context.Context, slug string) (content.Item, error) {
	return castResult[content.Item](b.execute(func() (interface{}, error) {
		return b.src.GetArticleBySlug(ctx, slug)
	}))
}

// CountPublished implements PoolSource.
func (b *BreakerSource) CountPublished(ctx context.Context, categorySlug string) (int, error) {
	return castResult[int](b.execute(func() (interface{}, error) {
		return b.src.CountPublished(ctx, categorySlug)
	}))
}

// Ping bypasses the breaker so health checks see the real store state.
func (b *BreakerSource) Ping(ctx context.Context) error {
	return b.src.Ping(ctx)
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
