// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"
	"fmt"

	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/models"
)

// Demo sample inputs.
const (
	DemoFallbackQuery = "product"
	DemoStockCount    = 10
	DemoShipping      = 10
)

// DemoSource provides the sample inputs for the demo page.
type DemoSource interface {
	FirstProduct(ctx context.Context) (*models.Product, error)
	FirstCategory(ctx context.Context) (*models.Category, error)
}

// PredictionInput echoes the demo's price query.
type PredictionInput struct {
	Category   string `json:"category"`
	StockCount int    `json:"stock_count"`
	Shipping   int    `json:"shipping"`
}

// DemoPayload is everything the demo page shows. Failed sections are empty
// and their error is listed in Errors by section name.
type DemoPayload struct {
	Message         string               `json:"message,omitempty"`
	Product         *models.ProductCard  `json:"product_for_recommendation,omitempty"`
	Recommendations []models.ProductCard `json:"recommendations"`
	SearchQuery     string               `json:"search_query"`
	SearchResults   []models.ProductCard `json:"search_results"`
	PredictionInput PredictionInput      `json:"prediction_input"`
	PredictedPrice  *float64             `json:"predicted_price"`
	Errors          map[string]string    `json:"errors,omitempty"`
}

// NoProductsMessage is shown when the catalog is empty.
const NoProductsMessage = "No products in the database."

// Demo runs one recommend, search and price prediction on sample inputs.
// It never fails: each section degrades on its own.
func Demo(ctx context.Context, svc *Service, src DemoSource) *DemoPayload {
	out := &DemoPayload{
		Recommendations: []models.ProductCard{},
		SearchResults:   []models.ProductCard{},
		Errors:          map[string]string{},
	}
	log := logging.Ctx(ctx)

	product, err := src.FirstProduct(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Demo could not read the first product")
		out.Errors["product"] = err.Error()
	}
	if product == nil {
		out.Message = NoProductsMessage
		return out
	}
	card := svc.Card(product)
	out.Product = &card

	out.SearchQuery = DemoFallbackQuery
	if cat, err := src.FirstCategory(ctx); err != nil {
		log.Warn().Err(err).Msg("Demo could not read the first category")
	} else if cat != nil && cat.Title != "" {
		out.SearchQuery = cat.Title
	}
	out.PredictionInput = PredictionInput{Category: out.SearchQuery, StockCount: DemoStockCount, Shipping: DemoShipping}

	if recs, err := svc.Recommend(ctx, product.ID); err != nil {
		log.Warn().Err(err).Int64("product_id", product.ID).Msg("Demo recommend failed")
		out.Errors[OpRecommend] = err.Error()
	} else {
		out.Recommendations = recs
	}

	if hits, err := svc.Search(ctx, out.SearchQuery); err != nil {
		log.Warn().Err(err).Str("query", out.SearchQuery).Msg("Demo search failed")
		out.Errors[OpSearch] = err.Error()
	} else {
		out.SearchResults = hits
	}

	price, err := svc.PredictPrice(ctx, PriceQuery{
		Category:   out.PredictionInput.Category,
		StockCount: fmt.Sprint(DemoStockCount),
		Shipping:   fmt.Sprint(DemoShipping),
	})
	if err != nil {
		log.Warn().Err(err).Msg("Demo price prediction failed")
		out.Errors[OpPredictPrice] = err.Error()
	} else {
		out.PredictedPrice = &price
	}

	return out
}
