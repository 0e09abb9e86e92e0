// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package database

import "github.com/tomtom215/productsense/internal/models"

func ptr[T any](v T) *T { return &v }

// DemoFixture returns the built-in demo catalog: four vegetables in one
// category, a few fruit and dairy products, and one unpriced product that
// price training drops.
func DemoFixture() *Fixture {
	const (
		vegetables int64 = 1
		fruits     int64 = 2
		dairy      int64 = 3
	)
	return &Fixture{
		Categories: []models.Category{
			{ID: vegetables, Title: "Vegetables"},
			{ID: fruits, Title: "Fruits"},
			{ID: dairy, Title: "Dairy"},
		},
		Products: []models.Product{
			{
				ID:          1,
				Title:       "Carrot",
				Description: ptr("Fresh orange carrots, crunchy and sweet vegetable"),
				CategoryID:  ptr(vegetables),
				Price:       ptr(40.0),
				StockCount:  ptr(int64(120)),
				Shipping:    ptr(10.0),
				Image:       ptr("products/carrot.jpg"),
			},
			{
				ID:          2,
				Title:       "Broccoli",
				Description: ptr("Green broccoli florets, a healthy vegetable"),
				CategoryID:  ptr(vegetables),
				Price:       ptr(85.5),
				StockCount:  ptr(int64(40)),
				Shipping:    ptr(15.0),
				Image:       ptr("products/broccoli.jpg"),
			},
			{
				ID:          3,
				Title:       "Tomato",
				Description: ptr("Ripe red tomatoes, fresh vegetables for salads and curries"),
				CategoryID:  ptr(vegetables),
				Price:       ptr(30.0),
				StockCount:  ptr(int64(200)),
				Shipping:    ptr(10.0),
				Image:       ptr("products/tomato.jpg"),
			},
			{
				ID:          4,
				Title:       "Spinach",
				Description: ptr("Leafy green spinach bunch, vegetable rich in iron"),
				CategoryID:  ptr(vegetables),
				Price:       ptr(25.0),
				StockCount:  ptr(int64(60)),
				Shipping:    ptr(5.0),
			},
			{
				ID:          5,
				Title:       "Alphonso Mango",
				Description: ptr("Sweet ripe Alphonso mangoes from Ratnagiri"),
				CategoryID:  ptr(fruits),
				Price:       ptr(1250.0),
				StockCount:  ptr(int64(15)),
				Shipping:    ptr(80.0),
				Image:       ptr("products/mango.jpg"),
			},
			{
				ID:          6,
				Title:       "Banana",
				Description: ptr("A dozen ripe yellow bananas"),
				CategoryID:  ptr(fruits),
				Price:       ptr(60.0),
				StockCount:  ptr(int64(90)),
				Shipping:    ptr(10.0),
			},
			{
				ID:          7,
				Title:       "Paneer",
				Description: ptr("Soft fresh paneer block, 500 g"),
				CategoryID:  ptr(dairy),
				Price:       ptr(210.0),
				StockCount:  ptr(int64(25)),
				Shipping:    ptr(30.0),
				Image:       ptr("products/paneer.jpg"),
			},
			{
				ID:         8,
				Title:      "Toned Milk",
				CategoryID: ptr(dairy),
				Price:      ptr(56.0),
				StockCount: ptr(int64(150)),
			},
			{
				ID:          9,
				Title:       "Seasonal Surprise Box",
				Description: ptr("Assorted seasonal fruit and vegetable box, price on request"),
			},
		},
	}
}

// VegetableFixture returns only the four-vegetable catalog.
func VegetableFixture() *Fixture {
	demo := DemoFixture()
	return &Fixture{
		Categories: demo.Categories[:1],
		Products:   demo.Products[:4],
	}
}
