// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	m, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var out dto.Metric
	if err := m.Write(&out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return out.GetHistogram().GetSampleCount()
}

func TestRecordInference_Histogram(t *testing.T) {
	before := histogramCount(t, InferenceDuration.WithLabelValues("predict_price"))
	RecordInference("predict_price", ResultSuccess, 3*time.Millisecond)
	RecordInference("predict_price", ResultInvalid, time.Millisecond)
	if got := histogramCount(t, InferenceDuration.WithLabelValues("predict_price")); got != before+2 {
		t.Errorf("sample count = %d, want %d", got, before+2)
	}
}

func TestRecordBuild(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
		err      error
		result   string
	}{
		{"similarity success", "similarity", nil, ResultSuccess},
		{"price model failure", "price_model", errors.New("empty catalog"), ResultError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(BuildTotal.WithLabelValues(tt.artifact, tt.result))
			RecordBuild(tt.artifact, 20*time.Millisecond, 1024, 4, tt.err)
			after := testutil.ToFloat64(BuildTotal.WithLabelValues(tt.artifact, tt.result))
			if after != before+1 {
				t.Errorf("build_total{%s,%s} = %v, want %v", tt.artifact, tt.result, after, before+1)
			}
		})
	}

	if got := testutil.ToFloat64(ArtifactSizeBytes.WithLabelValues("similarity")); got != 1024 {
		t.Errorf("artifact_size_bytes = %v, want 1024", got)
	}
	if got := testutil.ToFloat64(ArtifactRows.WithLabelValues("similarity")); got != 4 {
		t.Errorf("artifact_rows = %v, want 4", got)
	}
}

func TestRecordInference(t *testing.T) {
	before := testutil.ToFloat64(InferenceTotal.WithLabelValues("search", ResultNotBuilt))
	RecordInference("search", ResultNotBuilt, time.Millisecond)
	if got := testutil.ToFloat64(InferenceTotal.WithLabelValues("search", ResultNotBuilt)); got != before+1 {
		t.Errorf("inference_total = %v, want %v", got, before+1)
	}
}

func TestRecordArtifactLoad(t *testing.T) {
	before := testutil.ToFloat64(ArtifactLoads.WithLabelValues("price_model", ResultSuccess))
	RecordArtifactLoad("price_model", ResultSuccess)
	if got := testutil.ToFloat64(ArtifactLoads.WithLabelValues("price_model", ResultSuccess)); got != before+1 {
		t.Errorf("artifact_loads_total = %v, want %v", got, before+1)
	}
}

func TestRecordCatalogQuery(t *testing.T) {
	before := testutil.ToFloat64(CatalogQueryErrors.WithLabelValues("get_product"))
	RecordCatalogQuery("get_product", time.Millisecond, nil)
	RecordCatalogQuery("get_product", time.Millisecond, errors.New("conn reset"))
	if got := testutil.ToFloat64(CatalogQueryErrors.WithLabelValues("get_product")); got != before+1 {
		t.Errorf("catalog_query_errors_total = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/search", "200"))
	RecordAPIRequest("GET", "/search", "200", 5*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/search", "200")); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
}
