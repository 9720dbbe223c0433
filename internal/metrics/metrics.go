// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package metrics declares the Prometheus collectors for the service.
// Collectors register with the default registry and are exposed by the
// /metrics handler.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "touchline_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "touchline_api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Ranking

	RankingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "touchline_ranking_duration_seconds",
			Help:    "Time spent scoring and ordering a pool, by surface",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"surface"},
	)

	RankingPoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "touchline_ranking_pool_size",
			Help:    "Number of candidate articles handed to the engine",
			Buckets: []float64{0, 10, 25, 50, 100, 200, 500, 1000},
		},
		[]string{"surface"},
	)

	ListingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_listing_cache_hits_total",
			Help: "Ranked listing cache hits",
		},
		[]string{"surface"},
	)

	ListingCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_listing_cache_misses_total",
			Help: "Ranked listing cache misses",
		},
		[]string{"surface"},
	)

	// Store

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "touchline_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_store_errors_total",
			Help: "Article store failures seen by the feed service",
		},
		[]string{"operation"},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "touchline_store_up",
			Help: "Whether the last store probe succeeded (1) or failed (0)",
		},
	)

	// Circuit breaker

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "touchline_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "touchline_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records one served request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRanking records one engine call for a surface.
func RecordRanking(surface string, poolSize int, duration time.Duration) {
	RankingDuration.WithLabelValues(surface).Observe(duration.Seconds())
	RankingPoolSize.WithLabelValues(surface).Observe(float64(poolSize))
}

// RecordCacheLookup counts a listing cache hit or miss.
func RecordCacheLookup(surface string, hit bool) {
	if hit {
		ListingCacheHits.WithLabelValues(surface).Inc()
		return
	}
	ListingCacheMisses.WithLabelValues(surface).Inc()
}

// RecordDBQuery observes a store query duration.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
