// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/tomtom215/productsense/internal/config"
	"github.com/tomtom215/productsense/internal/logging"
)

// DB wraps the catalog connection pool.
type DB struct {
	conn   *sql.DB
	driver string
}

// New opens the catalog store described by cfg and creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	return Open(cfg.Driver, cfg.DSN)
}

// Open opens a catalog store with an explicit driver and DSN.
func Open(driver, dsn string) (*DB, error) {
	switch driver {
	case "duckdb", "sqlite3":
		if err := ensureParentDir(dsn); err != nil {
			return nil, err
		}
	case "pgx":
	default:
		return nil, fmt.Errorf("unsupported catalog driver %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.initialize(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize catalog: %w", err)
	}

	logging.Info().Str("driver", driver).Msg("Catalog store opened")
	return db, nil
}

// ensureParentDir creates the directory of a file-backed DSN.
func ensureParentDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.Contains(path, ":memory:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}
	return nil
}

// configureConnectionPool sizes the pool for the driver. SQLite gets a
// single connection so in-memory databases are shared and writers do not
// contend for the file lock.
func (db *DB) configureConnectionPool() {
	if db.driver == "sqlite3" {
		db.conn.SetMaxOpenConns(1)
		return
	}
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Driver returns the database/sql driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Ping checks that the store is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// rebind converts ? placeholders to $n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.driver != "pgx" {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
