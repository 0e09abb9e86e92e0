// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"

	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/recommend/algorithms"
)

// usablePriceRows applies the training defaults: missing stock_count and
// shipping become 0, rows without price or category are dropped.
func usablePriceRows(snap *catalog.Snapshot) (features []PriceFeatures, prices []float64, dropped int) {
	for i := range snap.Records {
		r := &snap.Records[i]
		if r.Price == nil || r.Category == nil {
			dropped++
			continue
		}
		f := PriceFeatures{Category: *r.Category}
		if r.StockCount != nil {
			f.StockCount = *r.StockCount
		}
		if r.Shipping != nil {
			f.Shipping = *r.Shipping
		}
		features = append(features, f)
		prices = append(prices, *r.Price)
	}
	return features, prices, dropped
}

// TrainPriceModel fits the category encoder and random forest on a seeded
// train split and scores the held-out rows. Zero usable rows fail with a
// BuildError.
func TrainPriceModel(ctx context.Context, snap *catalog.Snapshot, cfg *Config) (*PriceModelArtifact, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if snap == nil {
		snap = &catalog.Snapshot{}
	}

	features, prices, dropped := usablePriceRows(snap)
	if len(features) == 0 {
		return nil, &BuildError{Artifact: ArtifactPriceModel, Reason: "no rows with both price and category"}
	}

	train, test := algorithms.TrainTestSplit(len(features), cfg.TestFraction, cfg.Seed)

	trainCats := make([]string, len(train))
	for i, idx := range train {
		trainCats[i] = features[idx].Category
	}

	art := &PriceModelArtifact{
		SchemaVersion: SchemaVersion,
		Columns:       []string{ColumnCategory, ColumnStockCount, ColumnShipping},
		Encoder:       *algorithms.FitOneHotEncoder(ColumnCategory, trainCats),
		Metrics: TrainingMetrics{
			TrainRows:   len(train),
			TestRows:    len(test),
			DroppedRows: dropped,
		},
	}

	X := make([][]float64, len(train))
	y := make([]float64, len(train))
	for i, idx := range train {
		row, err := art.Featurize(features[idx])
		if err != nil {
			return nil, &BuildError{Artifact: ArtifactPriceModel, Reason: "featurize", Err: err}
		}
		X[i] = row
		y[i] = prices[idx]
	}

	fcfg := algorithms.DefaultForestConfig()
	fcfg.Trees = cfg.Trees
	fcfg.Seed = cfg.Seed
	forest, err := algorithms.FitForest(ctx, X, y, fcfg)
	if err != nil {
		return nil, &BuildError{Artifact: ArtifactPriceModel, Reason: "fit forest", Err: err}
	}
	art.Forest = *forest

	if len(test) > 0 {
		actual := make([]float64, len(test))
		predicted := make([]float64, len(test))
		for i, idx := range test {
			p, err := art.Predict(features[idx])
			if err != nil {
				return nil, &BuildError{Artifact: ArtifactPriceModel, Reason: "score test split", Err: err}
			}
			actual[i] = prices[idx]
			predicted[i] = p
		}
		art.Metrics.R2 = algorithms.R2Score(actual, predicted)
		art.Metrics.MAE = algorithms.MeanAbsoluteError(actual, predicted)
	}

	return art, nil
}
