// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

// SearchRequest is the /search query.
type SearchRequest struct {
	Query string `query:"q" validate:"required"`
}

// PredictPriceRequest is the /predict-price query. Numbers arrive as text
// and are checked for parseability here; the service parses them. Category
// is free text of any length; unseen values encode as all zeros.
type PredictPriceRequest struct {
	Category   string `query:"category" validate:"required"`
	StockCount string `query:"stock_count" validate:"required,intstr"`
	Shipping   string `query:"shipping" validate:"required,floatstr"`
}
