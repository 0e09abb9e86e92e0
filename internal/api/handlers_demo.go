// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend"
)

//go:embed templates/demo.html
var templateFS embed.FS

var demoTemplate = template.Must(
	template.New("demo.html").
		Funcs(template.FuncMap{"inr": FormatINR}).
		ParseFS(templateFS, "templates/demo.html"),
)

// Demo renders the demo page, or its payload as JSON with ?format=json.
// Sections that fail are rendered empty; the page itself only fails if
// the template does.
func (h *Handler) Demo(w http.ResponseWriter, r *http.Request) {
	payload := recommend.Demo(r.Context(), h.svc, h.demo)

	if r.URL.Query().Get("format") == "json" {
		respondJSON(w, http.StatusOK, payload)
		return
	}

	var buf bytes.Buffer
	if err := demoTemplate.Execute(&buf, payload); err != nil {
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, internalErrorMessage, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes()) //nolint:errcheck // client disconnects are not actionable
}
