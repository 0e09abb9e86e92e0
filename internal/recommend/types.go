// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/recommend/algorithms"
)

// Artifact names in the store.
const (
	ArtifactSimilarity = "similarity"
	ArtifactPriceModel = "price_model"
)

// SchemaVersion is the record layout written by this build of the code.
// Loading a record with any other version fails with ErrUnsupportedSchema.
const SchemaVersion = 2

// Price model feature columns.
const (
	ColumnCategory   = "category"
	ColumnStockCount = "stock_count"
	ColumnShipping   = "shipping"
)

// ArtifactNames lists every artifact the service needs.
var ArtifactNames = []string{ArtifactSimilarity, ArtifactPriceModel}

// IndexedRow is one snapshot row as stored in the similarity artifact.
// gob omits nil pointers and zero values behind pointers alike, so nullable
// columns are kept as a value plus a presence flag.
type IndexedRow struct {
	ID          int64
	Title       string
	Description string

	Category      string
	HasCategory   bool
	Price         float64
	HasPrice      bool
	StockCount    int64
	HasStockCount bool
	Shipping      float64
	HasShipping   bool
}

func indexedRow(r *catalog.Record) IndexedRow {
	row := IndexedRow{ID: r.ID, Title: r.Title, Description: r.Description}
	if r.Category != nil {
		row.Category, row.HasCategory = *r.Category, true
	}
	if r.Price != nil {
		row.Price, row.HasPrice = *r.Price, true
	}
	if r.StockCount != nil {
		row.StockCount, row.HasStockCount = *r.StockCount, true
	}
	if r.Shipping != nil {
		row.Shipping, row.HasShipping = *r.Shipping, true
	}
	return row
}

// Record restores the snapshot record, with absent columns back to nil.
func (r *IndexedRow) Record() catalog.Record {
	rec := catalog.Record{ID: r.ID, Title: r.Title, Description: r.Description}
	if r.HasCategory {
		v := r.Category
		rec.Category = &v
	}
	if r.HasPrice {
		v := r.Price
		rec.Price = &v
	}
	if r.HasStockCount {
		v := r.StockCount
		rec.StockCount = &v
	}
	if r.HasShipping {
		v := r.Shipping
		rec.Shipping = &v
	}
	return rec
}

// SimilarityArtifact is the persisted text similarity index. Rows, DocTerm
// and both matrix dimensions share the snapshot row order.
type SimilarityArtifact struct {
	SchemaVersion int
	BuildID       string
	BuiltAt       time.Time

	Rows       []IndexedRow
	Vectorizer algorithms.Vectorizer
	DocTerm    []algorithms.SparseVector
	Matrix     [][]float64
}

// Snapshot returns the catalog snapshot the index was built from.
func (a *SimilarityArtifact) Snapshot() *catalog.Snapshot {
	snap := &catalog.Snapshot{Records: make([]catalog.Record, len(a.Rows))}
	for i := range a.Rows {
		snap.Records[i] = a.Rows[i].Record()
	}
	return snap
}

// IndexOf returns the row index of a product id, or -1.
func (a *SimilarityArtifact) IndexOf(id int64) int {
	for i := range a.Rows {
		if a.Rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (a *SimilarityArtifact) check() error {
	if a.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: %s has version %d", ErrUnsupportedSchema, ArtifactSimilarity, a.SchemaVersion)
	}
	n := len(a.Rows)
	if len(a.DocTerm) != n || len(a.Matrix) != n {
		return fmt.Errorf("similarity artifact shape mismatch: %d rows, %d vectors, %d matrix rows", n, len(a.DocTerm), len(a.Matrix))
	}
	for i := range a.Matrix {
		if len(a.Matrix[i]) != n {
			return fmt.Errorf("similarity matrix row %d has %d columns, want %d", i, len(a.Matrix[i]), n)
		}
	}
	return nil
}

// TrainingMetrics summarizes a price model fit.
type TrainingMetrics struct {
	TrainRows   int     `json:"train_rows"`
	TestRows    int     `json:"test_rows"`
	DroppedRows int     `json:"dropped_rows"`
	R2          float64 `json:"r2"`
	MAE         float64 `json:"mae"`
}

// PriceModelArtifact is the persisted price pipeline.
type PriceModelArtifact struct {
	SchemaVersion int
	BuildID       string
	BuiltAt       time.Time

	// Columns is the input column order the pipeline was fitted with.
	Columns []string
	Encoder algorithms.OneHotEncoder
	Forest  algorithms.Forest
	Metrics TrainingMetrics
}

// PriceFeatures is one input row for the price pipeline.
type PriceFeatures struct {
	Category   string
	StockCount int64
	Shipping   float64
}

// Featurize lays out f in the recorded column order. Categorical columns
// expand to their one-hot width; an unseen category encodes as zeros.
func (a *PriceModelArtifact) Featurize(f PriceFeatures) ([]float64, error) {
	row := make([]float64, 0, a.Encoder.Width()+len(a.Columns))
	for _, col := range a.Columns {
		switch col {
		case ColumnCategory:
			row = append(row, a.Encoder.Transform(f.Category)...)
		case ColumnStockCount:
			row = append(row, float64(f.StockCount))
		case ColumnShipping:
			row = append(row, f.Shipping)
		default:
			return nil, fmt.Errorf("price model expects unknown column %s", strconv.Quote(col))
		}
	}
	return row, nil
}

// Predict runs the pipeline on one row.
func (a *PriceModelArtifact) Predict(f PriceFeatures) (float64, error) {
	row, err := a.Featurize(f)
	if err != nil {
		return 0, err
	}
	return a.Forest.Predict(row)
}

func (a *PriceModelArtifact) check() error {
	if a.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: %s has version %d", ErrUnsupportedSchema, ArtifactPriceModel, a.SchemaVersion)
	}
	if len(a.Forest.Trees) == 0 {
		return fmt.Errorf("price model has no trees")
	}
	return nil
}
