// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/config"
	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/recommend"
	"github.com/tomtom215/productsense/internal/recommend/storage"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	db      *database.DB
	reader  catalog.Reader
	store   storage.ArtifactStore
	builder *recommend.Builder
	service *recommend.Service
	closers []func() error
}

// newApp opens the catalog and artifact store described by cfg.
func newApp(cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	a.reader = db
	if cfg.Catalog.BreakerEnabled {
		a.reader = catalog.NewBreakerReader(db)
	}

	store, err := a.openStore(cfg.Artifacts)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.store = store

	rcfg := recommendConfig(cfg.Recommend)
	a.builder = recommend.NewBuilder(a.reader, a.store, rcfg)
	a.service = recommend.NewService(a.store, a.reader, rcfg)
	return a, nil
}

// openStore selects the artifact backend and wraps it in a cache when a
// TTL is configured.
func (a *app) openStore(cfg config.ArtifactsConfig) (storage.ArtifactStore, error) {
	var store storage.ArtifactStore
	switch cfg.Backend {
	case "memory":
		store = storage.NewMemoryStore()
	case "badger":
		bs, err := storage.OpenBadgerStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open artifact store: %w", err)
		}
		a.closers = append(a.closers, bs.Close)
		store = bs
	case "file", "":
		fs, err := storage.NewFileStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open artifact store: %w", err)
		}
		store = fs
	default:
		return nil, fmt.Errorf("unsupported artifact backend %q", cfg.Backend)
	}

	if cfg.CacheTTL > 0 {
		cs := storage.NewCachingStore(store, cfg.CacheTTL)
		a.closers = append(a.closers, func() error { cs.Close(); return nil })
		store = cs
	}
	logging.Info().
		Str("backend", cfg.Backend).
		Str("path", cfg.Path).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Artifact store opened")
	return store, nil
}

func recommendConfig(rc config.RecommendConfig) *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.RecommendK = rc.RecommendK
	cfg.SearchK = rc.SearchK
	cfg.Trees = rc.Trees
	cfg.Seed = rc.Seed
	cfg.TestFraction = rc.TestFraction
	cfg.MediaURL = rc.MediaURL
	return cfg
}

// seed loads the configured fixture, or the built-in demo catalog, into an
// empty catalog. overwrite replaces existing rows.
func (a *app) seed(ctx context.Context, path string, overwrite bool) (*database.SeedResult, error) {
	fixture := database.DemoFixture()
	if path != "" {
		f, err := database.LoadFixture(path)
		if err != nil {
			return nil, err
		}
		fixture = f
	}
	res, err := a.db.Seed(ctx, fixture, overwrite)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("categories", res.Categories).
		Int("products", res.Products).
		Bool("skipped", res.Skipped).
		Str("fixture", path).
		Msg("Catalog seeded")
	return res, nil
}

// Close releases resources in reverse open order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
