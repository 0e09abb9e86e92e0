// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package config

import "fmt"

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validDrivers = map[string]bool{
	"duckdb": true, "sqlite3": true, "pgx": true,
}

var validBackends = map[string]bool{
	"file": true, "badger": true, "memory": true,
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateArtifacts(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !validDrivers[c.Database.Driver] {
		return fmt.Errorf("CATALOG_DRIVER must be one of: duckdb, sqlite3, pgx; got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("CATALOG_DSN is required")
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if !validBackends[c.Artifacts.Backend] {
		return fmt.Errorf("ARTIFACT_BACKEND must be one of: file, badger, memory; got %q", c.Artifacts.Backend)
	}
	if c.Artifacts.Backend != "memory" && c.Artifacts.Path == "" {
		return fmt.Errorf("ARTIFACT_PATH is required for the %s backend", c.Artifacts.Backend)
	}
	if c.Artifacts.CacheTTL < 0 {
		return fmt.Errorf("ARTIFACT_CACHE_TTL must be non-negative, got %v", c.Artifacts.CacheTTL)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.RecommendK < 1 {
		return fmt.Errorf("RECOMMEND_K must be positive, got %d", r.RecommendK)
	}
	if r.SearchK < 1 {
		return fmt.Errorf("SEARCH_K must be positive, got %d", r.SearchK)
	}
	if r.Trees < 1 {
		return fmt.Errorf("PRICE_TREES must be positive, got %d", r.Trees)
	}
	if r.TestFraction < 0 || r.TestFraction > 0.9 {
		return fmt.Errorf("PRICE_TEST_FRACTION must be in [0, 0.9], got %f", r.TestFraction)
	}
	if r.RebuildInterval < 0 {
		return fmt.Errorf("REBUILD_INTERVAL must be non-negative, got %v", r.RebuildInterval)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
