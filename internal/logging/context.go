// Touchline - Sports Analysis Content Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/touchline

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	correlationIDKey
)

// NewRequestID returns a random UUID string.
func NewRequestID() string {
	return uuid.NewString()
}

// NewCorrelationID returns a short random ID for grouping related work.
func NewCorrelationID() string {
	return uuid.NewString()[:8]
}

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithCorrelationID stores the correlation ID in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// CorrelationID returns the correlation ID stored in ctx, or "".
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey).(string)
	return id
}

// Ctx returns the global logger with any request and correlation IDs from
// ctx attached.
func Ctx(ctx context.Context) *zerolog.Logger {
	l := From(ctx, Logger())
	return &l
}

// From decorates base with the IDs carried by ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func From(ctx context.Context, base zerolog.Logger) zerolog.Logger {
	lc := base.With()
	if id := RequestID(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := CorrelationID(ctx); id != "" {
		lc = lc.Str("correlation_id", id)
	}
	return lc.Logger()
}
