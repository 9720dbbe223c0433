// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package api

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/touchline/internal/feed"
	"github.com/tomtom215/touchline/internal/logging"
	"github.com/tomtom215/touchline/internal/models"
	"github.com/tomtom215/touchline/internal/validation"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// sanitizeLogValue escapes control characters so client input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// respondJSON writes the envelope with an ETag. A matching If-None-Match
// on a successful response yields 304 with no body.
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, status int, resp *models.APIResponse) {
	resp.Metadata.RequestID = logging.RequestID(r.Context())

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	if status == http.StatusOK {
		// The request ID differs per call; hash the payload without it.
		etag := `"` + generateETag(resp) + `"`
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", h.cacheControl)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes the response data with FNV-1a.
func generateETag(resp *models.APIResponse) string {
	data, err := json.Marshal(resp.Data)
	if err != nil {
		return ""
	}
	hash := fnv.New32a()
	_, _ = hash.Write(data)
	return strconv.FormatUint(uint64(hash.Sum32()), 16)
}

func (h *Handler) respondData(w http.ResponseWriter, r *http.Request, start time.Time, cached bool, data interface{}) {
	h.respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status: statusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   h.now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}) {
	h.respondJSON(w, r, status, &models.APIResponse{
		Status:   statusError,
		Metadata: models.Metadata{Timestamp: h.now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func (h *Handler) respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.Error) {
	h.respondError(w, r, http.StatusBadRequest, models.CodeValidation, verr.Error(), verr.Details())
}

// respondServiceError maps feed errors onto status codes.
func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, feed.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, models.CodeNotFound, "Article not found", nil)
	case errors.Is(err, feed.ErrUnknownProfile):
		h.respondError(w, r, http.StatusBadRequest, models.CodeUnknownProfile, "Unknown ranking profile", nil)
	case errors.Is(err, feed.ErrUnavailable):
		w.Header().Set("Retry-After", strconv.Itoa(h.retryAfter))
		h.respondError(w, r, http.StatusServiceUnavailable, models.CodeServiceUnavailable,
			"Article store temporarily unavailable", nil)
	default:
		logging.Ctx(r.Context()).Error().
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API query failed")
		h.respondError(w, r, http.StatusInternalServerError, models.CodeQuery, "Failed to load articles", nil)
	}
}
