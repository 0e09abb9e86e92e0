// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend"
)

// HealthStatus is the /health body.
type HealthStatus struct {
	Status            string  `json:"status"`
	DatabaseConnected *bool   `json:"database_connected,omitempty"`
	Uptime            float64 `json:"uptime_seconds"`
}

// ReadyStatus is the /ready body.
type ReadyStatus struct {
	Ready   bool     `json:"ready"`
	Missing []string `json:"missing"`
}

// Health handles liveness probes. It reports degraded, still with 200,
// when the catalog is unreachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{Status: "healthy", Uptime: time.Since(h.startTime).Seconds()}
	if h.db != nil {
		connected := h.db.Ping(r.Context()) == nil
		status.DatabaseConnected = &connected
		if !connected {
			status.Status = "degraded"
		}
	}
	respondJSON(w, http.StatusOK, status)
}

// Ready returns 200 only when every artifact has been built.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	missing, err := h.svc.Missing(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeInternal, "Artifact store unavailable.", err)
		return
	}

	status := ReadyStatus{Ready: len(missing) == 0, Missing: missing}
	if status.Missing == nil {
		status.Missing = []string{}
	}
	code := http.StatusOK
	if !status.Ready {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}

// Artifacts lists the stored artifacts and their metadata.
func (h *Handler) Artifacts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Artifacts(r.Context()))
}

// rebuildFailure is the body of a failed rebuild.
type rebuildFailure struct {
	models.ErrorResponse
	Results []recommend.BuildResult `json:"results"`
}

// Rebuild handles POST /admin/rebuild. Both builds run synchronously.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	if h.builder == nil {
		respondError(w, r, http.StatusServiceUnavailable, models.ErrCodeDisabled, "Rebuild is not available.", nil)
		return
	}

	if !h.rebuildLimiter.Allow() {
		w.Header().Set("Retry-After", strconv.Itoa(int(rebuildCooldown.Seconds())))
		respondError(w, r, http.StatusTooManyRequests, models.ErrCodeRateLimit, "A rebuild ran recently. Try again later.", nil)
		return
	}

	summary, err := h.builder.BuildAll(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Rebuild failed")
		body := rebuildFailure{ErrorResponse: models.ErrorResponse{Error: "Rebuild failed.", Code: models.ErrCodeInternal}}
		if summary != nil {
			body.Results = summary.Results
		}
		respondJSON(w, http.StatusInternalServerError, body)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
