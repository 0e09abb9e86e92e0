// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package recommend builds and serves the product models.
//
// # Architecture
//
// Two artifacts are built offline from a catalog snapshot and read by the
// inference service on every request:
//
//   - similarity: TF-IDF document vectors of title plus description and the
//     all-pairs cosine matrix. Serves Recommend and Search.
//   - price_model: a one-hot category encoder and a random forest regressor
//     over (category, stock_count, shipping). Serves PredictPrice.
//
// Builders write an artifact only after it is fully computed, and the
// storage backends replace it atomically, so readers see either the old or
// the new artifact.
//
// # Errors
//
// Every failure returned to callers matches one of the sentinels with
// errors.Is:
//
//   - ErrValidation: bad or missing request input
//   - ErrNotFound: the product is not in the indexed snapshot
//   - ErrNotBuilt: the artifact does not exist yet
//   - ErrBuild: a build precondition failed and nothing was written
//
// # Usage
//
//	store := storage.NewFileStore("./data/artifacts")
//	builder := recommend.NewBuilder(db, store, cfg)
//	if _, err := builder.BuildAll(ctx); err != nil {
//	    return err
//	}
//
//	svc := recommend.NewService(store, catalog.NewBreakerReader(db), cfg)
//	cards, err := svc.Recommend(ctx, productID)
//
// # Thread Safety
//
// Service holds no mutable state and is safe for concurrent use. Builder
// serializes its own builds.
package recommend
