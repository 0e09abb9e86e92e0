// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
)

// ForestConfig contains configuration for the random forest regressor.
type ForestConfig struct {
	// Trees is the number of bootstrap trees. Default: 100
	Trees int

	// Seed makes bootstrap sampling reproducible.
	Seed uint64

	// Tree controls individual tree growth.
	Tree TreeConfig
}

// DefaultForestConfig returns the default forest configuration.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees: 100,
		Seed:  42,
		Tree:  TreeConfig{MinSamplesSplit: 2},
	}
}

// Forest is a bootstrap-aggregated ensemble of regression trees.
type Forest struct {
	Trees    []RegressionTree
	Features int
}

// FitForest trains cfg.Trees trees, each on a bootstrap sample of the rows.
// Tree t draws from a PCG source seeded with (cfg.Seed, t).
func FitForest(ctx context.Context, X [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(X) == 0 {
		return nil, ErrNoSamples
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrFeatureMismatch, len(X), len(y))
	}
	if cfg.Trees <= 0 {
		cfg.Trees = 100
	}

	f := &Forest{Trees: make([]RegressionTree, 0, cfg.Trees), Features: len(X[0])}
	n := len(X)
	samples := make([]int, n)

	for t := 0; t < cfg.Trees; t++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rng := rand.New(rand.NewPCG(cfg.Seed, uint64(t)))
		for i := range samples {
			samples[i] = rng.IntN(n)
		}
		tree, err := FitRegressionTree(X, y, samples, cfg.Tree)
		if err != nil {
			return nil, fmt.Errorf("fit tree %d: %w", t, err)
		}
		f.Trees = append(f.Trees, *tree)
	}
	return f, nil
}

// Predict averages the tree predictions for row x.
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(x) != f.Features {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrFeatureMismatch, len(x), f.Features)
	}
	if len(f.Trees) == 0 {
		return 0, ErrNoSamples
	}
	var sum float64
	for i := range f.Trees {
		sum += f.Trees[i].Predict(x)
	}
	return sum / float64(len(f.Trees)), nil
}

// TrainTestSplit shuffles n row indices with a seeded source and splits off
// ceil(n*testFraction) rows for evaluation. At least one training row is kept.
func TrainTestSplit(n int, testFraction float64, seed uint64) (train, test []int) {
	if n <= 0 {
		return nil, nil
	}
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)

	nTest := int(math.Ceil(float64(n)*testFraction - 1e-9))
	if testFraction <= 0 {
		nTest = 0
	}
	if nTest >= n {
		nTest = n - 1
	}
	return perm[nTest:], perm[:nTest]
}

// R2Score returns the coefficient of determination. A constant target
// yields 1 for a perfect fit and 0 otherwise.
func R2Score(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	var mean float64
	for _, a := range actual {
		mean += a
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i, a := range actual {
		ssRes += (a - predicted[i]) * (a - predicted[i])
		ssTot += (a - mean) * (a - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// MeanAbsoluteError returns the average absolute prediction error.
func MeanAbsoluteError(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	var sum float64
	for i, a := range actual {
		sum += math.Abs(a - predicted[i])
	}
	return sum / float64(len(actual))
}
