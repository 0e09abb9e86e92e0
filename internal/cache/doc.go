// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package cache provides a generic, thread-safe TTL cache.
//
// The artifact store's caching decorator keeps decoded artifacts here
// between inference calls. Expired entries are dropped on Get and by a
// sweep goroutine that runs every TTL (at most every five minutes) until
// Close.
//
//	c := cache.New[*recommend.SimilarityArtifact](5 * time.Minute)
//	defer c.Close()
//	c.Set("similarity", art)
//	if art, ok := c.Get("similarity"); ok {
//	    // use art
//	}
package cache
