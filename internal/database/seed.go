// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package database

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/models"
)

// Fixture is a catalog to seed. Products reference categories by id.
type Fixture struct {
	Categories []models.Category `yaml:"categories"`
	Products   []models.Product  `yaml:"products"`
}

// SeedResult reports what Seed wrote.
type SeedResult struct {
	Categories int  `json:"categories"`
	Products   int  `json:"products"`
	Skipped    bool `json:"skipped"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

func (f *Fixture) validate() error {
	categories := make(map[int64]struct{}, len(f.Categories))
	for _, c := range f.Categories {
		if _, dup := categories[c.ID]; dup {
			return fmt.Errorf("duplicate category id %d", c.ID)
		}
		categories[c.ID] = struct{}{}
	}
	products := make(map[int64]struct{}, len(f.Products))
	for _, p := range f.Products {
		if _, dup := products[p.ID]; dup {
			return fmt.Errorf("duplicate product id %d", p.ID)
		}
		products[p.ID] = struct{}{}
		if p.Title == "" {
			return fmt.Errorf("product %d has no title", p.ID)
		}
		if p.CategoryID != nil {
			if _, ok := categories[*p.CategoryID]; !ok {
				return fmt.Errorf("product %d references unknown category %d", p.ID, *p.CategoryID)
			}
		}
	}
	return nil
}

// Seed writes the fixture. Without overwrite a non-empty catalog is left
// untouched and the result is marked Skipped. With overwrite all existing
// rows are removed first.
//
// Clearing commits on its own: DuckDB rejects re-inserting a primary key
// deleted earlier in the same transaction.
func (db *DB) Seed(ctx context.Context, f *Fixture, overwrite bool) (*SeedResult, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	if overwrite {
		if err := db.clear(ctx); err != nil {
			return nil, err
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // rollback after commit is a no-op

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&existing); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		logging.Info().Int("products", existing).Msg("Catalog already populated, seed skipped")
		return &SeedResult{Skipped: true}, nil
	}

	insertCategory := db.rebind("INSERT INTO categories (id, title) VALUES (?, ?)")
	for _, c := range f.Categories {
		if _, err := tx.ExecContext(ctx, insertCategory, c.ID, c.Title); err != nil {
			return nil, fmt.Errorf("insert category %d: %w", c.ID, err)
		}
	}

	insertProduct := db.rebind(`INSERT INTO products
		(id, title, description, category_id, price, stock_count, shipping, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for i := range f.Products {
		p := &f.Products[i]
		if _, err := tx.ExecContext(ctx, insertProduct,
			p.ID, p.Title, nullable(p.Description), nullable(p.CategoryID),
			nullable(p.Price), nullable(p.StockCount), nullable(p.Shipping), nullable(p.Image),
		); err != nil {
			return nil, fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}

	res := &SeedResult{Categories: len(f.Categories), Products: len(f.Products)}
	logging.Info().Int("categories", res.Categories).Int("products", res.Products).Msg("Catalog seeded")
	return res, nil
}

// clear removes every product and category.
func (db *DB) clear(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // rollback after commit is a no-op

	for _, stmt := range []string{"DELETE FROM products", "DELETE FROM categories"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear: %w", err)
	}
	return nil
}
