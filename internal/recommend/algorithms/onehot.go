// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import "sort"

// OneHotEncoder encodes one categorical column. Categories are kept in
// sorted order; a value outside them encodes as all zeros.
type OneHotEncoder struct {
	Column     string
	Categories []string
}

// FitOneHotEncoder collects the distinct observed values.
func FitOneHotEncoder(column string, values []string) *OneHotEncoder {
	seen := make(map[string]struct{}, len(values))
	cats := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		cats = append(cats, v)
	}
	sort.Strings(cats)
	return &OneHotEncoder{Column: column, Categories: cats}
}

// Width returns the number of encoded columns.
func (e *OneHotEncoder) Width() int {
	return len(e.Categories)
}

// Transform returns the one-hot encoding of value.
func (e *OneHotEncoder) Transform(value string) []float64 {
	out := make([]float64, len(e.Categories))
	if i := sort.SearchStrings(e.Categories, value); i < len(e.Categories) && e.Categories[i] == value {
		out[i] = 1
	}
	return out
}

// Known reports whether value was observed during fitting.
func (e *OneHotEncoder) Known(value string) bool {
	i := sort.SearchStrings(e.Categories, value)
	return i < len(e.Categories) && e.Categories[i] == value
}
