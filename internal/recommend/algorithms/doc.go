// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package algorithms implements the numeric building blocks behind the
// similarity index and the price model.
//
// # Text Similarity
//
//   - Tokenize: lowercases text and extracts word tokens of two or more characters
//   - Vectorizer: TF-IDF term weighting with smoothed IDF and L2 normalization
//   - CosineMatrix: all-pairs similarity over normalized sparse vectors
//
// # Price Regression
//
//   - OneHotEncoder: categorical encoding where unseen values encode as all zeros
//   - RegressionTree: CART regression tree using mean squared error splits
//   - Forest: bootstrap-aggregated ensemble of regression trees
//   - TrainTestSplit: seeded shuffle into train and hold-out indices
//   - R2Score, MeanAbsoluteError: hold-out evaluation
//
// # Determinism
//
// Every randomized step takes an explicit seed and uses math/rand/v2 PCG
// sources, so identical inputs always produce identical artifacts. All types
// contain only exported fields and are safe to encode with encoding/gob.
//
// # Thread Safety
//
// Fitted models are read-only after construction and may be shared between
// goroutines. Fitting is not safe for concurrent use on the same value.
package algorithms
