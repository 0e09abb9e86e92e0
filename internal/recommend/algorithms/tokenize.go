// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import (
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and returns its word tokens in order of appearance.
// When dropStopWords is set, English stop words are removed.
func Tokenize(text string, dropStopWords bool) []string {
	matches := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if !dropStopWords {
		return matches
	}

	tokens := matches[:0]
	for _, tok := range matches {
		if IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
