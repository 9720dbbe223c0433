// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/touchline/internal/metrics"
	"github.com/tomtom215/touchline/internal/middleware"
	"github.com/tomtom215/touchline/internal/models"
	"github.com/tomtom215/touchline/internal/ranking"
)

// RouterConfig holds the edge settings of the router.
type RouterConfig struct {
	CORSOrigins       []string
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
}

// Router mounts the handlers behind the middleware stack.
type Router struct {
	handler *Handler
	cfg     RouterConfig
	logger  zerolog.Logger
}

// NewRouter returns a Router for handler.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewRouter(handler *Handler, cfg RouterConfig, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		cfg:     cfg,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Handler builds the chi route tree.
func (rt *Router) Handler() http.Handler {
	h := rt.handler
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(rt.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.cors())
	r.Use(middleware.PrometheusMetrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)
		r.Handle("/metrics", promhttp.Handler())

		r.Group(func(r chi.Router) {
			r.Use(rt.rateLimit())

			r.Get("/profiles", h.Profiles)
			r.Get("/surfaces/{profile}", h.SurfaceByName)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/featured", h.Surface(ranking.ProfileFeatured))
				r.Get("/fresh", h.Surface(ranking.ProfileFreshInsights))
				r.Get("/hot", h.Surface(ranking.ProfileHotRightNow))
				r.Get("/seo", h.Surface(ranking.ProfileSEOOptimized))
				r.Get("/trending", h.TrendingPosts)
				r.Get("/{slug}/related", h.RelatedPosts)
				r.Get("/{slug}/related/category", h.RelatedByCategory)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/trending", h.TrendingCategories)
				r.Get("/{slug}/posts", h.CategoryPosts)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		h.respondError(w, req, http.StatusNotFound, models.CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		h.respondError(w, req, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}

func (rt *Router) cors() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match", middleware.RequestIDHeader},
		ExposedHeaders:   []string{"ETag", middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           86400,
	})
}

// rateLimit limits requests per client IP. Rejections are counted and
// answered with the JSON envelope.
func (rt *Router) rateLimit() func(http.Handler) http.Handler {
	if rt.cfg.RateLimitDisabled || rt.cfg.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	window := rt.cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		rt.cfg.RateLimitRequests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.APIRateLimitHits.WithLabelValues(middleware.RoutePattern(r)).Inc()
			rt.handler.respondError(w, r, http.StatusTooManyRequests, models.CodeRateLimited,
				"Rate limit exceeded", nil)
		}),
	)
}
