// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package models defines the data structures shared by the catalog store, the
inference service and the HTTP API.

Key Components:

  - Product: a catalog row with its category title joined in
  - Category: a product category
  - ProductCard: the display item returned by recommend, search and demo
  - ErrorResponse: the JSON error body of every failed API call

Nullable catalog columns are represented as pointers so that a missing
price, stock count or image is distinguishable from a zero value.
*/
package models
