// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package main is the ProductSense command line.

ProductSense answers three questions about a product catalog: which products
are similar to this one, which products match a free text query, and what a
product with given attributes should cost. Answers come from two artifacts
built offline from the catalog and read by the HTTP API:

  - similarity: TF-IDF vectors over title and description plus the all-pairs
    cosine similarity matrix
  - price_model: a one-hot category encoder and a 100 tree random forest

# Commands

	productsense serve         # run the API under the supervisor tree
	productsense build         # build both artifacts
	productsense build-index   # build only the similarity artifact
	productsense train-price   # train only the price model
	productsense seed          # load the demo or a YAML fixture catalog

# Process Tree

serve runs two supervised layers:

	root ("productsense")
	├── build-layer
	│   └── rebuild-service (BUILD_ON_STARTUP, REBUILD_INTERVAL)
	└── api-layer
	    └── http-server

# Configuration

Configuration is loaded via koanf with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8000               # HTTP server port
	CATALOG_DRIVER=duckdb        # duckdb, sqlite3 or pgx
	CATALOG_DSN=./data/catalog.duckdb
	ARTIFACT_BACKEND=file        # file, badger or memory
	ARTIFACT_PATH=./data/artifacts
	ARTIFACT_CACHE_TTL=0         # cache decoded artifacts when > 0
	BUILD_ON_STARTUP=false
	REBUILD_INTERVAL=0           # e.g. 15m
	ADMIN_ENABLED=false          # exposes POST /admin/rebuild
	MEDIA_URL=/media/            # prefix for relative product image paths
	MEDIA_DIR=                   # serve this directory under /media/
	LOG_LEVEL=info
	LOG_FORMAT=json

The memory backend only makes sense for serve with BUILD_ON_STARTUP, since
artifacts built by a separate build command are lost when it exits.

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up
to 10s and the catalog and artifact store are closed afterwards.
*/
package main
