// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend"
)

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends an error body. err, when set, is logged but never
// sent to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API Error")
	}
	respondJSON(w, status, models.ErrorResponse{Error: message, Code: code})
}

// statusForError maps the recommend error taxonomy onto HTTP.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, recommend.ErrValidation):
		return http.StatusBadRequest, models.ErrCodeValidation
	case errors.Is(err, recommend.ErrNotFound):
		return http.StatusNotFound, models.ErrCodeNotFound
	case errors.Is(err, recommend.ErrNotBuilt):
		return http.StatusInternalServerError, models.ErrCodeNotBuilt
	default:
		return http.StatusInternalServerError, models.ErrCodeInternal
	}
}

// errorMessages holds the client-facing text per error code for one
// endpoint. Codes not listed fall back to a generic message.
type errorMessages map[string]string

const internalErrorMessage = "Internal server error."

// respondServiceError writes the response for a service failure.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, msgs errorMessages) {
	status, code := statusForError(err)
	msg, ok := msgs[code]
	if !ok {
		msg = internalErrorMessage
	}
	respondError(w, r, status, code, msg, err)
}
