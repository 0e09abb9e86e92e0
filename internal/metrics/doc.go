// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package metrics defines the Prometheus collectors of the service.

Collectors are registered with the default registry through promauto and
exposed at /metrics by promhttp.

Metric families:

  - productsense_build_*: artifact build duration and outcome per artifact
  - productsense_artifact_*: stored artifact size and load outcomes
  - productsense_inference_*: recommend, search and predict_price calls
  - catalog_query_*: catalog store query latency and errors
  - api_*: HTTP request count, latency and in-flight requests
  - circuit_breaker_*: state of the live catalog lookup breaker

Label values are bounded: artifact is "similarity" or "price_model",
operation is one of the inference operations, and result is one of a small
fixed set ("success", "error", "not_built", "not_found", "invalid").
*/
package metrics
