// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/productsense/internal/recommend"
)

// rebuildCooldown is the minimum spacing between admin rebuilds.
const rebuildCooldown = 10 * time.Second

// Rebuilder rebuilds every artifact.
type Rebuilder interface {
	BuildAll(ctx context.Context) (*recommend.BuildSummary, error)
}

// Pinger checks catalog connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds the dependencies of every endpoint.
type Handler struct {
	svc       *recommend.Service
	demo      recommend.DemoSource
	builder   Rebuilder
	db        Pinger
	startTime time.Time

	rebuildLimiter *rate.Limiter
}

// NewHandler creates a handler. builder and db may be nil: rebuild then
// reports disabled and health omits the catalog check.
func NewHandler(svc *recommend.Service, demo recommend.DemoSource, builder Rebuilder, db Pinger) *Handler {
	return &Handler{
		svc:       svc,
		demo:      demo,
		builder:   builder,
		db:        db,
		startTime: time.Now(),

		rebuildLimiter: rate.NewLimiter(rate.Every(rebuildCooldown), 1),
	}
}
