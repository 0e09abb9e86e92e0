// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/productsense/internal/logging"
)

// AccessLog logs every request at debug level and requests slower than
// slow at warn level. A zero slow disables the warning.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			log := logging.Ctx(r.Context())
			event := log.Debug()
			msg := "Request served"
			if slow > 0 && elapsed > slow {
				event = log.Warn()
				msg = "Slow request detected"
			}
			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.statusCode).
				Int64("duration_ms", elapsed.Milliseconds()).
				Msg(msg)
		})
	}
}
