// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDs are the log correlation ids carried by a context.
type traceIDs struct {
	request     string
	correlation string
}

type traceKey struct{}

func idsFrom(ctx context.Context) traceIDs {
	ids, _ := ctx.Value(traceKey{}).(traceIDs)
	return ids
}

// GenerateCorrelationID returns an 8-character id that groups the lines of
// one build or background run.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a UUID for an HTTP request.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID returns ctx carrying the correlation id. A
// request id already on ctx is kept.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.correlation = id
	return context.WithValue(ctx, traceKey{}, ids)
}

// ContextWithNewCorrelationID is ContextWithCorrelationID with a fresh id.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation id or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).correlation
}

// ContextWithRequestID returns ctx carrying the HTTP request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	ids := idsFrom(ctx)
	ids.request = id
	return context.WithValue(ctx, traceKey{}, ids)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	return idsFrom(ctx).request
}

// Ctx returns the global logger tagged with the request_id and
// correlation_id found on ctx.
//
//	logging.Ctx(ctx).Info().Msg("Processing request")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger()
	ids := idsFrom(ctx)
	if ids == (traceIDs{}) {
		return &l
	}
	zc := l.With()
	if ids.correlation != "" {
		zc = zc.Str("correlation_id", ids.correlation)
	}
	if ids.request != "" {
		zc = zc.Str("request_id", ids.request)
	}
	l = zc.Logger()
	return &l
}
