// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package models defines the JSON shapes returned by the HTTP API.
package models

import (
	"time"

	"github.com/tomtom215/touchline/internal/content"
	"github.com/tomtom215/touchline/internal/trending"
)

// Error codes carried in APIError.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeUnknownProfile     = "UNKNOWN_PROFILE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeQuery              = "QUERY_ERROR"
	CodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	CodeInternal           = "INTERNAL_ERROR"
)

// APIResponse wraps every API payload.
//
//	{
//	  "status": "success",
//	  "data": {"posts": [...]},
//	  "metadata": {"timestamp": "2026-05-01T12:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the body of a failed response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Pagination describes one page of a category listing.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination computes page counts for total items split into pages of
// limit. A non-positive limit yields a single empty page.
func NewPagination(page, limit, total int) Pagination {
	p := Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + limit - 1) / limit
	}
	p.HasNext = page < p.TotalPages
	p.HasPrev = page > 1
	return p
}

// PostsResponse is the data payload for ranked listings.
type PostsResponse struct {
	Surface string               `json:"surface"`
	Posts   []content.ScoredItem `json:"posts"`
	Count   int                  `json:"count"`
}

// CategoryPostsResponse is a page of a category listing.
type CategoryPostsResponse struct {
	Category   string               `json:"category"`
	Posts      []content.ScoredItem `json:"posts"`
	Pagination Pagination           `json:"pagination"`
}

// TrendingCategoriesResponse lists categories by trending velocity.
type TrendingCategoriesResponse struct {
	Categories []trending.CategoryTrend `json:"categories"`
	Count      int                      `json:"count"`
}

// RelatedPostsResponse lists articles related to a reference article.
type RelatedPostsResponse struct {
	Slug  string               `json:"slug"`
	Posts []content.ScoredItem `json:"posts"`
	Count int                  `json:"count"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	DatabaseOK    bool    `json:"database_ok"`
	Breaker       string  `json:"breaker"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Articles      int     `json:"articles"`
}
