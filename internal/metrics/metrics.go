// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Build Metrics
	BuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "productsense_build_duration_seconds",
			Help:    "Duration of artifact builds in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 300},
		},
		[]string{"artifact"},
	)

	BuildTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productsense_build_total",
			Help: "Total number of artifact builds by result",
		},
		[]string{"artifact", "result"},
	)

	BuildLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "productsense_build_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful build",
		},
		[]string{"artifact"},
	)

	// Artifact Metrics
	ArtifactSizeBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "productsense_artifact_size_bytes",
			Help: "Compressed size of the stored artifact",
		},
		[]string{"artifact"},
	)

	ArtifactRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "productsense_artifact_rows",
			Help: "Catalog rows the stored artifact was built from",
		},
		[]string{"artifact"},
	)

	ArtifactLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productsense_artifact_loads_total",
			Help: "Total number of artifact loads by result",
		},
		[]string{"artifact", "result"},
	)

	// Inference Metrics
	InferenceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "productsense_inference_total",
			Help: "Total number of inference calls by result",
		},
		[]string{"operation", "result"},
	)

	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "productsense_inference_duration_seconds",
			Help:    "Inference call duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	// Catalog Store Metrics
	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_query_duration_seconds",
			Help:    "Duration of catalog store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	CatalogQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_query_errors_total",
			Help: "Total number of failed catalog store queries",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Result label values.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultNotBuilt = "not_built"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
)

// RecordBuild records the outcome of one artifact build. sizeBytes and rows
// are only applied on success.
func RecordBuild(artifact string, duration time.Duration, sizeBytes int64, rows int, err error) {
	BuildDuration.WithLabelValues(artifact).Observe(duration.Seconds())
	if err != nil {
		BuildTotal.WithLabelValues(artifact, ResultError).Inc()
		return
	}
	BuildTotal.WithLabelValues(artifact, ResultSuccess).Inc()
	BuildLastSuccess.WithLabelValues(artifact).Set(float64(time.Now().Unix()))
	ArtifactSizeBytes.WithLabelValues(artifact).Set(float64(sizeBytes))
	ArtifactRows.WithLabelValues(artifact).Set(float64(rows))
}

// RecordArtifactLoad records an artifact load with the given result label.
func RecordArtifactLoad(artifact, result string) {
	ArtifactLoads.WithLabelValues(artifact, result).Inc()
}

// RecordInference records one inference call.
func RecordInference(operation, result string, duration time.Duration) {
	InferenceTotal.WithLabelValues(operation, result).Inc()
	InferenceDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCatalogQuery records a catalog store query.
func RecordCatalogQuery(operation string, duration time.Duration, err error) {
	CatalogQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		CatalogQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
