// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are probed in order; the first existing file wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/productsense/config.yaml",
	"/etc/productsense/config.yml",
}

// ConfigPathEnvVar names an explicit config file, checked before DefaultConfigPaths.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPath is the .env file loaded before the environment layer.
var DotEnvPath = ".env"

// defaultConfig is the bottom koanf layer.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8000,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			AdminEnabled:      false,
			MediaDir:          "",
		},
		Database: DatabaseConfig{
			Driver:      "duckdb",
			DSN:         "./data/catalog.duckdb",
			SeedOnStart: false,
		},
		Artifacts: ArtifactsConfig{
			Backend:  "file",
			Path:     "./data/artifacts",
			CacheTTL: 0,
		},
		Recommend: RecommendConfig{
			RecommendK:      3,
			SearchK:         5,
			BuildOnStartup:  false,
			RebuildInterval: 0, // 0 = no periodic rebuild
			Trees:           100,
			Seed:            42,
			TestFraction:    0.2,
			MediaURL:        "/media/",
		},
		Catalog: CatalogConfig{
			BreakerEnabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load is LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadWithKoanf merges built-in defaults, then the optional YAML file, then
// the environment (with .env applied first), and validates the result.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads DotEnvPath when it exists. Existing variables are not
// overridden.
func loadDotEnv() error {
	if _, err := os.Stat(DotEnvPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(DotEnvPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", DotEnvPath, err)
	}
	return nil
}

// findConfigFile returns the first config file found, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are split on commas when they arrive as a single string.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields turns "a, b" from the environment into []string{"a", "b"}.
// YAML lists are already slices and pass through.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config paths.
var envMappings = map[string]string{
	"http_host":           "server.host",
	"http_port":           "server.port",
	"http_timeout":        "server.timeout",
	"cors_origins":        "server.cors_origins",
	"rate_limit_requests": "server.rate_limit_requests",
	"rate_limit_window":   "server.rate_limit_window",
	"disable_rate_limit":  "server.rate_limit_disabled",
	"admin_enabled":       "server.admin_enabled",
	"media_dir":           "server.media_dir",
	"media_url":           "recommend.media_url",
	"catalog_driver":      "database.driver",
	"catalog_dsn":         "database.dsn",
	"seed_catalog":        "database.seed_on_start",
	"catalog_fixture":     "database.fixture_path",
	"artifact_backend":    "artifacts.backend",
	"artifact_path":       "artifacts.path",
	"artifact_cache_ttl":  "artifacts.cache_ttl",
	"recommend_k":         "recommend.recommend_k",
	"search_k":            "recommend.search_k",
	"build_on_startup":    "recommend.build_on_startup",
	"rebuild_interval":    "recommend.rebuild_interval",
	"price_trees":         "recommend.trees",
	"price_seed":          "recommend.seed",
	"price_test_fraction": "recommend.test_fraction",
	"catalog_breaker":     "catalog.breaker_enabled",
	"log_level":           "logging.level",
	"log_format":          "logging.format",
	"log_caller":          "logging.caller",
}

// envTransformFunc maps HTTP_PORT to server.port and so on. Unmapped
// variables become "" and koanf skips them.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
