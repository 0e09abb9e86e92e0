// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/recommend/algorithms"
)

// BuildSimilarityIndex vectorizes the snapshot text and computes the
// all-pairs cosine matrix. An empty snapshot fails with a BuildError.
func BuildSimilarityIndex(snap *catalog.Snapshot) (*SimilarityArtifact, error) {
	if snap == nil || snap.Len() == 0 {
		return nil, &BuildError{Artifact: ArtifactSimilarity, Reason: "catalog has no products"}
	}

	vec, docs, err := algorithms.FitTransform(snap.Corpus(), true)
	if err != nil {
		return nil, &BuildError{Artifact: ArtifactSimilarity, Reason: "fit vectorizer", Err: err}
	}

	rows := make([]IndexedRow, snap.Len())
	for i := range snap.Records {
		rows[i] = indexedRow(&snap.Records[i])
	}

	return &SimilarityArtifact{
		SchemaVersion: SchemaVersion,
		Rows:          rows,
		Vectorizer:    *vec,
		DocTerm:       docs,
		Matrix:        algorithms.CosineMatrix(docs),
	}, nil
}
