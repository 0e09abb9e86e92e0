// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package algorithms

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyCorpus is returned when fitting a vectorizer on zero documents.
var ErrEmptyCorpus = errors.New("empty corpus")

// SparseVector is a term vector with strictly increasing Indices.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Len returns the number of non-zero entries.
func (v SparseVector) Len() int {
	return len(v.Indices)
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the inner product of two sparse vectors.
func Dot(a, b SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Vectorizer is a fitted TF-IDF model.
//
// Term weights are raw counts multiplied by the smoothed inverse document
// frequency idf(t) = ln((1+n)/(1+df(t))) + 1, and every document vector is
// L2-normalized. Vocabulary indices follow the lexical order of the terms.
type Vectorizer struct {
	Vocabulary    map[string]int
	IDF           []float64
	DropStopWords bool
}

// FitVectorizer learns the vocabulary and IDF weights of the corpus.
func FitVectorizer(corpus []string, dropStopWords bool) (*Vectorizer, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc, dropStopWords) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return &Vectorizer{
		Vocabulary:    vocab,
		IDF:           idf,
		DropStopWords: dropStopWords,
	}, nil
}

// FitTransform fits the vectorizer and returns the document-term rows.
func FitTransform(corpus []string, dropStopWords bool) (*Vectorizer, []SparseVector, error) {
	v, err := FitVectorizer(corpus, dropStopWords)
	if err != nil {
		return nil, nil, err
	}
	return v, v.TransformAll(corpus), nil
}

// Transform maps text onto the fitted vocabulary. Unknown terms are ignored,
// so text with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text, v.DropStopWords) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for i, idx := range indices {
		w := counts[idx] * v.IDF[idx]
		values[i] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range values {
			values[i] /= norm
		}
	}

	return SparseVector{Indices: indices, Values: values}
}

// TransformAll transforms every document of the corpus.
func (v *Vectorizer) TransformAll(corpus []string) []SparseVector {
	rows := make([]SparseVector, len(corpus))
	for i, doc := range corpus {
		rows[i] = v.Transform(doc)
	}
	return rows
}

// VocabularySize returns the number of learned terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.Vocabulary)
}
