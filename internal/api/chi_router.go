// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/productsense/internal/config"
	"github.com/tomtom215/productsense/internal/middleware"
	"github.com/tomtom215/productsense/internal/models"
)

// slowRequestThreshold is where the access log switches to warn.
const slowRequestThreshold = time.Second

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	adminEnabled  bool
	mediaDir      string
	timeout       time.Duration
}

// NewRouter creates a router from the server configuration.
func NewRouter(handler *Handler, cfg *config.ServerConfig) *Router {
	mwCfg := DefaultChiMiddlewareConfig()
	router := &Router{handler: handler}
	if cfg != nil {
		mwCfg.CORSAllowedOrigins = cfg.CORSOrigins
		mwCfg.RateLimitRequests = cfg.RateLimitRequests
		mwCfg.RateLimitWindow = cfg.RateLimitWindow
		mwCfg.RateLimitDisabled = cfg.RateLimitDisabled
		router.adminEnabled = cfg.AdminEnabled
		router.mediaDir = cfg.MediaDir
		router.timeout = cfg.Timeout
	}
	router.chiMiddleware = NewChiMiddleware(mwCfg)
	return router
}

// SetupChi builds the HTTP handler.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.StripSlashes)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.AccessLog(slowRequestThreshold))
	if router.timeout > 0 {
		r.Use(chimiddleware.Timeout(router.timeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "Not found.", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.", nil)
	})

	// Probes and metrics are not rate limited.
	r.Get("/health", router.handler.Health)
	r.Get("/ready", router.handler.Ready)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if router.mediaDir != "" {
		r.Handle("/media/*", mediaHandler(router.mediaDir))
	}

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/recommend/{product_id}", router.handler.Recommend)
		r.Get("/search", router.handler.Search)
		r.Get("/predict-price", router.handler.PredictPrice)
		r.Get("/demo", router.handler.Demo)
		r.Get("/artifacts", router.handler.Artifacts)

		if router.adminEnabled {
			r.Post("/admin/rebuild", router.handler.Rebuild)
		}
	})

	return r
}

// mediaHandler serves product images from dir with a 7 day cache.
func mediaHandler(dir string) http.Handler {
	fs := http.StripPrefix("/media/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=604800")
		fs.ServeHTTP(w, r)
	})
}
