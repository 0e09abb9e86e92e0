// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/recommend"
)

// defaultBuildTimeout bounds a single build cycle.
const defaultBuildTimeout = 30 * time.Minute

// ArtifactBuilder builds every artifact from the current catalog.
type ArtifactBuilder interface {
	BuildAll(ctx context.Context) (*recommend.BuildSummary, error)
}

// RebuildServiceConfig controls when builds run.
type RebuildServiceConfig struct {
	// BuildOnStartup builds once as soon as the service starts.
	BuildOnStartup bool

	// Interval between scheduled rebuilds. Zero disables them.
	Interval time.Duration

	// Timeout bounds one build cycle. Default: 30m
	Timeout time.Duration
}

// RebuildService keeps artifacts fresh under supervision.
type RebuildService struct {
	builder ArtifactBuilder
	config  RebuildServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewRebuildService creates a rebuild service for builder.
func NewRebuildService(builder ArtifactBuilder, cfg RebuildServiceConfig) *RebuildService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultBuildTimeout
	}
	return &RebuildService{
		builder: builder,
		config:  cfg,
		logger:  logging.WithComponent("rebuild"),
		name:    "rebuild-service",
	}
}

// Serve runs the startup build, then rebuilds on every tick until ctx is
// canceled. Build failures are logged; they do not end the service.
func (s *RebuildService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("build_on_startup", s.config.BuildOnStartup).
		Dur("interval", s.config.Interval).
		Msg("rebuild service starting")

	if s.config.BuildOnStartup {
		s.rebuild(ctx, "startup")
	}

	var tick <-chan time.Time
	if s.config.Interval > 0 {
		ticker := time.NewTicker(s.config.Interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rebuild service shutting down")
			return ctx.Err()
		case <-tick:
			s.rebuild(ctx, "scheduled")
		}
	}
}

func (s *RebuildService) rebuild(ctx context.Context, trigger string) {
	buildCtx, cancel := context.WithTimeout(logging.ContextWithNewCorrelationID(ctx), s.config.Timeout)
	defer cancel()

	start := time.Now()
	summary, err := s.builder.BuildAll(buildCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Str("trigger", trigger).Msg("rebuild failed, previous artifacts kept")
		return
	}

	ev := s.logger.Info().Str("trigger", trigger).Dur("duration", time.Since(start))
	if summary != nil {
		ev = ev.Int("artifacts", len(summary.Results))
	}
	ev.Msg("rebuild complete")
}

func (s *RebuildService) String() string {
	return s.name
}
