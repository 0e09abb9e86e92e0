// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import "fmt"

// Config controls model building and inference result sizes.
type Config struct {
	// RecommendK is the number of similar products returned. Default: 3
	RecommendK int `json:"recommend_k"`

	// SearchK is the number of search hits returned. Default: 5
	SearchK int `json:"search_k"`

	// Trees is the random forest size. Default: 100
	Trees int `json:"trees"`

	// Seed drives the train/test split and bootstrap sampling. Default: 42
	Seed uint64 `json:"seed"`

	// TestFraction is the share of usable rows held out for evaluation.
	// Default: 0.2
	TestFraction float64 `json:"test_fraction"`

	// MediaURL is prefixed to relative image paths in product cards, the
	// way a media root turns a stored file name into a URL. Empty leaves
	// stored paths unchanged. Default: /media/
	MediaURL string `json:"media_url"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		RecommendK:   3,
		SearchK:      5,
		Trees:        100,
		Seed:         42,
		TestFraction: 0.2,
		MediaURL:     "/media/",
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.RecommendK < 1 {
		return fmt.Errorf("recommend_k must be positive, got %d", c.RecommendK)
	}
	if c.SearchK < 1 {
		return fmt.Errorf("search_k must be positive, got %d", c.SearchK)
	}
	if c.Trees < 1 {
		return fmt.Errorf("trees must be positive, got %d", c.Trees)
	}
	if c.TestFraction < 0 || c.TestFraction > 0.9 {
		return fmt.Errorf("test_fraction must be in [0, 0.9], got %f", c.TestFraction)
	}
	return nil
}
