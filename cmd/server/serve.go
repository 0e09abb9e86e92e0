// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package main

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/productsense/internal/api"
	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/metrics"
	"github.com/tomtom215/productsense/internal/supervisor"
	"github.com/tomtom215/productsense/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					logging.Error().Err(err).Msg("Error closing resources")
				}
			}()
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	logging.Info().
		Str("version", version).
		Str("driver", cfg.Database.Driver).
		Str("artifact_backend", cfg.Artifacts.Backend).
		Msg("Starting ProductSense")

	if cfg.Database.SeedOnStart {
		if _, err := a.seed(ctx, cfg.Database.FixturePath, false); err != nil {
			return err
		}
	}

	var rebuilder api.Rebuilder
	if cfg.Server.AdminEnabled {
		rebuilder = a.builder
	}
	handler := api.NewHandler(a.service, a.db, rebuilder, a.db)
	router := api.NewRouter(handler, &cfg.Server)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddBuildService(services.NewRebuildService(a.builder, services.RebuildServiceConfig{
		BuildOnStartup: cfg.Recommend.BuildOnStartup,
		Interval:       cfg.Recommend.RebuildInterval,
	}))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Bool("admin", cfg.Server.AdminEnabled).Msg("HTTP server service added")

	if missing, err := a.service.Missing(ctx); err == nil && len(missing) > 0 && !cfg.Recommend.BuildOnStartup {
		logging.Warn().Strs("missing", missing).Msg("Artifacts not built; run the build command or set BUILD_ON_STARTUP")
	}

	err = <-tree.ServeBackground(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
	logging.Info().Msg("ProductSense stopped")
	return nil
}
