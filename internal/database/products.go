// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/productsense/internal/metrics"
	"github.com/tomtom215/productsense/internal/models"
)

const productColumns = `p.id, p.title, p.description, p.category_id, c.title,
	p.price, p.stock_count, p.shipping, p.image`

const productFrom = ` FROM products p LEFT JOIN categories c ON c.id = p.category_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var (
		p           models.Product
		description sql.NullString
		categoryID  sql.NullInt64
		category    sql.NullString
		price       sql.NullFloat64
		stockCount  sql.NullInt64
		shipping    sql.NullFloat64
		image       sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Title, &description, &categoryID, &category,
		&price, &stockCount, &shipping, &image); err != nil {
		return nil, err
	}
	p.Description = nullString(description)
	p.CategoryID = nullInt64(categoryID)
	p.Category = nullString(category)
	p.Price = nullFloat64(price)
	p.StockCount = nullInt64(stockCount)
	p.Shipping = nullFloat64(shipping)
	p.Image = nullString(image)
	return &p, nil
}

// ListProducts returns every product ordered by id.
func (db *DB) ListProducts(ctx context.Context) (products []models.Product, err error) {
	start := time.Now()
	defer func() { metrics.RecordCatalogQuery("list_products", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, "SELECT "+productColumns+productFrom+" ORDER BY p.id")
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// GetProduct returns the current state of one product, or
// ErrProductNotFound.
func (db *DB) GetProduct(ctx context.Context, id int64) (product *models.Product, err error) {
	start := time.Now()
	defer func() {
		if errors.Is(err, ErrProductNotFound) {
			metrics.RecordCatalogQuery("get_product", time.Since(start), nil)
			return
		}
		metrics.RecordCatalogQuery("get_product", time.Since(start), err)
	}()

	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+productColumns+productFrom+" WHERE p.id = ?"), id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query product %d: %w", id, err)
	}
	return p, nil
}

// FirstProduct returns the product with the lowest id, or nil when the
// catalog is empty.
func (db *DB) FirstProduct(ctx context.Context) (*models.Product, error) {
	row := db.conn.QueryRowContext(ctx, "SELECT "+productColumns+productFrom+" ORDER BY p.id LIMIT 1")
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query first product: %w", err)
	}
	return p, nil
}

// FirstCategory returns the category with the lowest id, or nil when there
// are no categories.
func (db *DB) FirstCategory(ctx context.Context) (*models.Category, error) {
	var c models.Category
	err := db.conn.QueryRowContext(ctx, "SELECT id, title FROM categories ORDER BY id LIMIT 1").Scan(&c.ID, &c.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query first category: %w", err)
	}
	return &c, nil
}

// CountProducts returns the number of products.
func (db *DB) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullFloat64(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

// nullable returns *p, or nil for a nil pointer, so that every driver binds
// a missing value as NULL.
func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
