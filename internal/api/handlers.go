// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/touchline/internal/feed"
	"github.com/tomtom215/touchline/internal/models"
	"github.com/tomtom215/touchline/internal/ranking"
)

// Handler serves the listing endpoints from a feed.Service.
type Handler struct {
	svc          *feed.Service
	version      string
	started      time.Time
	now          func() time.Time
	cacheControl string
	retryAfter   int
}

// NewHandler builds a Handler. cacheTTL sets the Cache-Control max-age of
// successful responses; retryAfter is the Retry-After hint sent with 503s.
func NewHandler(svc *feed.Service, version string, cacheTTL, retryAfter time.Duration) *Handler {
	maxAge := int(cacheTTL.Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	retry := int(retryAfter.Seconds())
	if retry < 1 {
		retry = 1
	}
	return &Handler{
		svc:          svc,
		version:      version,
		started:      time.Now(),
		now:          time.Now,
		cacheControl: fmt.Sprintf("public, max-age=%d", maxAge),
		retryAfter:   retry,
	}
}

// Surface returns a handler for a fixed ranking profile.
func (h *Handler) Surface(profile string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		req, verr := parseList(r)
		if verr != nil {
			h.respondValidation(w, r, verr)
			return
		}
		h.serveSurface(w, r, start, profile, req.Limit)
	}
}

// SurfaceByName ranks with the profile named in the path.
func (h *Handler) SurfaceByName(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, verr := parseSurface(r)
	if verr != nil {
		h.respondValidation(w, r, verr)
		return
	}
	if !h.svc.HasProfile(req.Profile) {
		h.respondError(w, r, http.StatusBadRequest, models.CodeUnknownProfile,
			"Unknown ranking profile", map[string]interface{}{"profile": req.Profile})
		return
	}
	h.serveSurface(w, r, start, req.Profile, req.Limit)
}

func (h *Handler) serveSurface(w http.ResponseWriter, r *http.Request, start time.Time, profile string, limit int) {
	l, err := h.svc.Surface(r.Context(), profile, limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, l.Cached, models.PostsResponse{
		Surface: profile,
		Posts:   l.Posts,
		Count:   len(l.Posts),
	})
}

// CategoryPosts returns one page of a category listing.
func (h *Handler) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, verr := parseCategory(r)
	if verr != nil {
		h.respondValidation(w, r, verr)
		return
	}

	p, err := h.svc.Category(r.Context(), req.Slug, req.Page, req.Limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, p.Cached, models.CategoryPostsResponse{
		Category:   req.Slug,
		Posts:      p.Posts,
		Pagination: models.NewPagination(p.Page, p.Limit, p.Total),
	})
}

// TrendingCategories lists categories by average trending velocity.
func (h *Handler) TrendingCategories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cats, cached, err := h.svc.TrendingCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, cached, models.TrendingCategoriesResponse{
		Categories: cats,
		Count:      len(cats),
	})
}

// RelatedPosts ranks articles similar to the one in the path.
func (h *Handler) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, verr := parseArticle(r)
	if verr != nil {
		h.respondValidation(w, r, verr)
		return
	}
	l, err := h.svc.Related(r.Context(), req.Slug, req.Limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, l.Cached, models.RelatedPostsResponse{
		Slug: req.Slug, Posts: l.Posts, Count: len(l.Posts),
	})
}

// RelatedByCategory lists the newest articles in the same category as the
// one in the path.
func (h *Handler) RelatedByCategory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, verr := parseArticle(r)
	if verr != nil {
		h.respondValidation(w, r, verr)
		return
	}
	l, err := h.svc.RelatedByCategory(r.Context(), req.Slug, req.Limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, l.Cached, models.RelatedPostsResponse{
		Slug: req.Slug, Posts: l.Posts, Count: len(l.Posts),
	})
}

// TrendingPosts lists the most viewed articles of the last week.
func (h *Handler) TrendingPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, verr := parseList(r)
	if verr != nil {
		h.respondValidation(w, r, verr)
		return
	}
	l, err := h.svc.TrendingPosts(r.Context(), req.Limit)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}
	h.respondData(w, r, start, l.Cached, models.PostsResponse{
		Surface: "trending", Posts: l.Posts, Count: len(l.Posts),
	})
}

// Profiles lists the registered ranking profiles and their weights.
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	profiles := h.svc.Profiles()
	out := make(map[string]ranking.WeightProfile, profiles.Len())
	for _, name := range profiles.Names() {
		wp, _ := profiles.Get(name)
		out[name] = wp
	}
	h.respondData(w, r, start, false, out)
}

// Health reports store reachability. It answers 503 when the store is down.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	fh := h.svc.Health(r.Context())

	resp := models.HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		DatabaseOK:    fh.DatabaseOK,
		Breaker:       fh.Breaker,
		UptimeSeconds: h.now().Sub(h.started).Seconds(),
		Articles:      fh.Articles,
	}
	status := http.StatusOK
	if !fh.DatabaseOK || fh.Breaker == "open" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	h.respondJSON(w, r, status, &models.APIResponse{
		Status: statusSuccess,
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   h.now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
