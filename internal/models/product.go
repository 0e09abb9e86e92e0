// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package models

// Category is a product category.
type Category struct {
	ID    int64  `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Product is a catalog row. Category holds the joined category title.
type Product struct {
	ID          int64    `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description *string  `json:"description,omitempty" yaml:"description"`
	CategoryID  *int64   `json:"category_id,omitempty" yaml:"category_id"`
	Category    *string  `json:"category,omitempty" yaml:"-"`
	Price       *float64 `json:"price,omitempty" yaml:"price"`
	StockCount  *int64   `json:"stock_count,omitempty" yaml:"stock_count"`
	Shipping    *float64 `json:"shipping,omitempty" yaml:"shipping"`
	Image       *string  `json:"image,omitempty" yaml:"image"`
}

// Card returns the display fields of the product.
func (p *Product) Card() ProductCard {
	return ProductCard{
		ID:           p.ID,
		Title:        p.Title,
		ProductImage: p.Image,
		Price:        p.Price,
	}
}

// ProductCard is the product display item returned by the API.
type ProductCard struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	ProductImage *string  `json:"product_image"`
	Price        *float64 `json:"price"`
}

// PricePrediction is the predict-price response body.
type PricePrediction struct {
	PredictedPrice float64 `json:"predicted_price"`
}
