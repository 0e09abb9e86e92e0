// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points the file and .env lookups at an empty temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	oldPaths, oldDotEnv := DefaultConfigPaths, DotEnvPath
	DefaultConfigPaths = []string{filepath.Join(dir, "config.yaml")}
	DotEnvPath = filepath.Join(dir, ".env")
	t.Cleanup(func() {
		DefaultConfigPaths, DotEnvPath = oldPaths, oldDotEnv
	})
	t.Setenv(ConfigPathEnvVar, "")
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Artifacts.Backend != "file" {
		t.Errorf("Artifacts.Backend = %q, want file", cfg.Artifacts.Backend)
	}
	if cfg.Recommend.RecommendK != 3 || cfg.Recommend.SearchK != 5 {
		t.Errorf("K = %d/%d, want 3/5", cfg.Recommend.RecommendK, cfg.Recommend.SearchK)
	}
	if cfg.Recommend.Trees != 100 || cfg.Recommend.Seed != 42 || cfg.Recommend.TestFraction != 0.2 {
		t.Errorf("price defaults = %+v", cfg.Recommend)
	}
	if cfg.Recommend.RebuildInterval != 0 {
		t.Errorf("RebuildInterval = %v, want 0", cfg.Recommend.RebuildInterval)
	}
	if cfg.Server.AdminEnabled {
		t.Error("AdminEnabled should be false by default")
	}
	if cfg.Recommend.MediaURL != "/media/" || cfg.Server.MediaDir != "" {
		t.Errorf("media defaults = %q / %q", cfg.Recommend.MediaURL, cfg.Server.MediaDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"CATALOG_DSN", "database.dsn"},
		{"ARTIFACT_BACKEND", "artifacts.backend"},
		{"PRICE_TREES", "recommend.trees"},
		{"LOG_LEVEL", "logging.level"},
		{"DISABLE_RATE_LIMIT", "server.rate_limit_disabled"},
		{"MEDIA_URL", "recommend.media_url"},
		{"MEDIA_DIR", "server.media_dir"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CATALOG_DRIVER", "sqlite3")
	t.Setenv("CATALOG_DSN", "file::memory:")
	t.Setenv("REBUILD_INTERVAL", "15m")
	t.Setenv("PRICE_SEED", "7")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite3" || cfg.Database.DSN != "file::memory:" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Recommend.RebuildInterval != 15*time.Minute {
		t.Errorf("RebuildInterval = %v, want 15m", cfg.Recommend.RebuildInterval)
	}
	if cfg.Recommend.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Recommend.Seed)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolate(t)
	content := `
server:
  port: 8888
  admin_enabled: true
artifacts:
  backend: badger
  path: /tmp/artifacts
recommend:
  search_k: 10
logging:
  level: warn
`
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 8888 || !cfg.Server.AdminEnabled {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Artifacts.Backend != "badger" {
		t.Errorf("Artifacts.Backend = %q, want badger", cfg.Artifacts.Backend)
	}
	if cfg.Recommend.SearchK != 10 || cfg.Recommend.RecommendK != 3 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8888\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("HTTP_PORT", "7777")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env beats file)", cfg.Server.Port)
	}
}

func TestLoadWithKoanfDotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SEARCH_K=8\nRECOMMEND_K=4\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("RECOMMEND_K", "6")
	// godotenv sets variables directly; register them for cleanup.
	t.Setenv("SEARCH_K", "")
	if err := os.Unsetenv("SEARCH_K"); err != nil {
		t.Fatalf("unset: %v", err)
	}

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Recommend.SearchK != 8 {
		t.Errorf("SearchK = %d, want 8 from .env", cfg.Recommend.SearchK)
	}
	if cfg.Recommend.RecommendK != 6 {
		t.Errorf("RecommendK = %d, want 6 (environment wins over .env)", cfg.Recommend.RecommendK)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad driver", "CATALOG_DRIVER", "oracle"},
		{"bad backend", "ARTIFACT_BACKEND", "s3"},
		{"zero recommend k", "RECOMMEND_K", "0"},
		{"zero trees", "PRICE_TREES", "0"},
		{"test fraction too large", "PRICE_TEST_FRACTION", "0.95"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"port out of range", "HTTP_PORT", "70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.val)
			if _, err := LoadWithKoanf(); err == nil {
				t.Errorf("LoadWithKoanf() with %s=%s returned nil error", tt.key, tt.val)
			}
		})
	}
}

func TestServerConfigAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
