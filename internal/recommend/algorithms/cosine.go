// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import (
	"math"
	"sort"
)

// CosineSimilarity returns cos(a, b), or 0 when either vector is empty.
func CosineSimilarity(a, b SparseVector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return clampUnit(Dot(a, b) / (na * nb))
}

// CosineMatrix computes the all-pairs cosine similarity of the rows.
//
// The result is exactly symmetric: each upper-triangle entry is computed once
// and mirrored. The diagonal is 1 for non-empty rows and 0 for empty rows, so
// it is always the maximum of its row.
func CosineMatrix(rows []SparseVector) [][]float64 {
	n := len(rows)
	norms := make([]float64, n)
	for i, r := range rows {
		norms[i] = r.Norm()
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if norms[i] > 0 {
			matrix[i][i] = 1
		}
		for j := i + 1; j < n; j++ {
			var sim float64
			if norms[i] > 0 && norms[j] > 0 {
				sim = clampUnit(Dot(rows[i], rows[j]) / (norms[i] * norms[j]))
			}
			matrix[i][j] = sim
			matrix[j][i] = sim
		}
	}
	return matrix
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// Scored pairs a row index with its similarity score.
type Scored struct {
	Index int
	Score float64
}

// RankDescending orders scores from highest to lowest. Equal scores keep
// ascending index order.
func RankDescending(scores []float64) []Scored {
	ranked := make([]Scored, len(scores))
	for i, s := range scores {
		ranked[i] = Scored{Index: i, Score: s}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})
	return ranked
}

// TopK returns at most k ranked entries, skipping the excluded index.
// Pass a negative exclude to keep every row.
func TopK(scores []float64, k, exclude int) []Scored {
	if k <= 0 {
		return nil
	}
	out := make([]Scored, 0, k)
	for _, s := range RankDescending(scores) {
		if s.Index == exclude {
			continue
		}
		out = append(out, s)
		if len(out) == k {
			break
		}
	}
	return out
}
