// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package middleware provides HTTP middleware for the API router.

Key Components:

  - RequestID: X-Request-ID propagation and correlation ids for logging
  - PrometheusMetrics: request count, latency and in-flight instrumentation
  - AccessLog: one structured log line per request, warning on slow requests

All middleware use the func(http.Handler) http.Handler shape so they plug
directly into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

Metrics are labeled with the chi route pattern rather than the raw path, so
/recommend/1 and /recommend/2 share one series.
*/
package middleware
