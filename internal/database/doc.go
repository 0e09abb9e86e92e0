// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package database provides the product catalog store.

The catalog lives in two tables, categories and products, and is accessed
through database/sql with one of three drivers:

  - duckdb (default): embedded file or in-memory database
  - sqlite3: embedded SQLite via mattn/go-sqlite3
  - pgx: PostgreSQL via the pgx stdlib adapter

Queries are written with ? placeholders and rebound to $n for PostgreSQL.
Every nullable product column (description, category, price, stock_count,
shipping, image) is surfaced as a pointer on models.Product.

Seeding:

	db.Seed(ctx, database.DemoFixture(), false)

inserts the built-in demo catalog when the products table is empty.
LoadFixture reads the same structure from a YAML file.
*/
package database
