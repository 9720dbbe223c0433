// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

// Package middleware holds the HTTP middleware shared by the API router.
package middleware

import (
	"net/http"
	"strings"

	"github.com/tomtom215/touchline/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen bounds an upstream request ID before it reaches logs.
const maxRequestIDLen = 64

// RequestID reuses a well-formed upstream X-Request-ID or generates one,
// echoes it in the response and stores it with a fresh correlation ID in
// the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = logging.NewRequestID()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithCorrelationID(ctx, logging.NewCorrelationID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validRequestID accepts short IDs of letters, digits, '-', '_' and '.'.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r == '-' || r == '_' || r == '.':
			return false
		}
		return true
	}) < 0
}
