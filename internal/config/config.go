// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AdminEnabled exposes POST /admin/rebuild. The endpoint is not
	// authenticated, so it is off by default.
	AdminEnabled bool `koanf:"admin_enabled"`

	// MediaDir is served under /media/ when set.
	MediaDir string `koanf:"media_dir"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds catalog store settings
type DatabaseConfig struct {
	// Driver is the database/sql driver: duckdb, sqlite3 or pgx.
	Driver string `koanf:"driver"`

	// DSN is the driver-specific data source name.
	DSN string `koanf:"dsn"`

	// SeedOnStart seeds an empty catalog at startup.
	SeedOnStart bool `koanf:"seed_on_start"`

	// FixturePath is a YAML fixture used for seeding. Empty uses the
	// built-in demo catalog.
	FixturePath string `koanf:"fixture_path"`
}

// ArtifactsConfig holds artifact store settings
type ArtifactsConfig struct {
	// Backend is file, badger or memory.
	Backend string `koanf:"backend"`

	// Path is the artifact directory (file) or database directory (badger).
	Path string `koanf:"path"`

	// CacheTTL enables the decoded-artifact cache when positive.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// RecommendConfig holds build and inference settings
type RecommendConfig struct {
	RecommendK      int           `koanf:"recommend_k"`
	SearchK         int           `koanf:"search_k"`
	BuildOnStartup  bool          `koanf:"build_on_startup"`
	RebuildInterval time.Duration `koanf:"rebuild_interval"`
	Trees           int           `koanf:"trees"`
	Seed            uint64        `koanf:"seed"`
	TestFraction    float64       `koanf:"test_fraction"`

	// MediaURL prefixes relative product image paths.
	MediaURL string `koanf:"media_url"`
}

// CatalogConfig holds live catalog access settings
type CatalogConfig struct {
	// BreakerEnabled wraps live product lookups in a circuit breaker.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
