// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import (
	"errors"
	"sort"
)

// ErrNoSamples is returned when fitting a model on zero rows.
var ErrNoSamples = errors.New("no training samples")

// ErrFeatureMismatch is returned when a row does not have the expected width.
var ErrFeatureMismatch = errors.New("feature width mismatch")

// minGain is the smallest squared-error reduction accepted for a split.
const minGain = 1e-12

// TreeNode is one node of a flattened regression tree. Leaves have
// Feature == -1; internal nodes send rows with x[Feature] <= Threshold left.
type TreeNode struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

// RegressionTree is a CART tree fitted with mean squared error splits.
type RegressionTree struct {
	Nodes    []TreeNode
	Features int
}

// TreeConfig controls tree growth.
type TreeConfig struct {
	// MaxDepth limits depth; 0 grows until leaves are pure.
	MaxDepth int

	// MinSamplesSplit is the minimum rows a node needs to be split. Default: 2
	MinSamplesSplit int
}

// FitRegressionTree grows a tree over the given sample indices of X.
// Indices may repeat, which is how bootstrap samples are passed in.
func FitRegressionTree(X [][]float64, y []float64, samples []int, cfg TreeConfig) (*RegressionTree, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if cfg.MinSamplesSplit < 2 {
		cfg.MinSamplesSplit = 2
	}
	width := len(X[samples[0]])
	for _, s := range samples {
		if len(X[s]) != width {
			return nil, ErrFeatureMismatch
		}
	}

	t := &RegressionTree{Features: width}
	b := treeBuilder{X: X, y: y, cfg: cfg, tree: t}
	b.grow(append([]int(nil), samples...), 0)
	return t, nil
}

// Predict returns the leaf value for row x.
func (t *RegressionTree) Predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Feature < 0 {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

type treeBuilder struct {
	X    [][]float64
	y    []float64
	cfg  TreeConfig
	tree *RegressionTree
}

// grow appends the subtree for samples and returns its node index.
func (b *treeBuilder) grow(samples []int, depth int) int {
	idx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, TreeNode{Feature: -1, Value: b.mean(samples)})

	if len(samples) < b.cfg.MinSamplesSplit || (b.cfg.MaxDepth > 0 && depth >= b.cfg.MaxDepth) {
		return idx
	}

	feature, threshold, ok := b.bestSplit(samples)
	if !ok {
		return idx
	}

	var left, right []int
	for _, s := range samples {
		if b.X[s][feature] <= threshold {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.tree.Nodes[idx] = TreeNode{Feature: feature, Threshold: threshold, Left: l, Right: r, Value: b.tree.Nodes[idx].Value}
	return idx
}

func (b *treeBuilder) mean(samples []int) float64 {
	var sum float64
	for _, s := range samples {
		sum += b.y[s]
	}
	return sum / float64(len(samples))
}

// bestSplit scans every feature for the threshold with the largest
// reduction in squared error. Ties keep the lowest feature index.
func (b *treeBuilder) bestSplit(samples []int) (int, float64, bool) {
	n := float64(len(samples))
	var total, totalSq float64
	for _, s := range samples {
		total += b.y[s]
		totalSq += b.y[s] * b.y[s]
	}
	parentSSE := totalSq - total*total/n
	if parentSSE <= minGain {
		return 0, 0, false
	}

	bestFeature, bestThreshold, bestGain := -1, 0.0, minGain
	order := make([]int, len(samples))

	for f := 0; f < b.tree.Features; f++ {
		copy(order, samples)
		sort.SliceStable(order, func(i, j int) bool {
			return b.X[order[i]][f] < b.X[order[j]][f]
		})

		var leftSum, leftSq float64
		for i := 0; i < len(order)-1; i++ {
			yv := b.y[order[i]]
			leftSum += yv
			leftSq += yv * yv

			cur, next := b.X[order[i]][f], b.X[order[i+1]][f]
			if cur == next {
				continue
			}

			nl := float64(i + 1)
			nr := n - nl
			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if gain := parentSSE - sse; gain > bestGain {
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				bestGain = gain
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}
