// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package catalog reads the product catalog for model builds and live
// display lookups.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/productsense/internal/models"
)

// ErrDuplicateID is returned when the catalog yields the same id twice.
var ErrDuplicateID = errors.New("duplicate product id")

// Reader is the read side of the catalog store. database.DB implements it.
type Reader interface {
	// ListProducts returns every product in a stable order.
	ListProducts(ctx context.Context) ([]models.Product, error)

	// GetProduct returns the current product, or an error wrapping
	// database.ErrProductNotFound.
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Record is one row of a Snapshot. Description is never nil in the source
// sense: a missing description is stored as "".
type Record struct {
	ID          int64
	Title       string
	Description string
	Category    *string
	Price       *float64
	StockCount  *int64
	Shipping    *float64
}

// Text returns the document used for text similarity: title and
// description joined by a space.
func (r *Record) Text() string {
	return r.Title + " " + r.Description
}

// Snapshot is the catalog as captured at build time. Rows keep the order of
// the reader; ids are unique.
type Snapshot struct {
	Records []Record
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	return len(s.Records)
}

// IndexOf returns the row index of id, or -1.
func (s *Snapshot) IndexOf(id int64) int {
	for i := range s.Records {
		if s.Records[i].ID == id {
			return i
		}
	}
	return -1
}

// Corpus returns the text of every row in row order.
func (s *Snapshot) Corpus() []string {
	docs := make([]string, len(s.Records))
	for i := range s.Records {
		docs[i] = s.Records[i].Text()
	}
	return docs
}

// CaptureSnapshot reads every product from r into a Snapshot.
func CaptureSnapshot(ctx context.Context, r Reader) (*Snapshot, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return NewSnapshot(products)
}

// NewSnapshot converts products to a Snapshot, rejecting duplicate ids.
func NewSnapshot(products []models.Product) (*Snapshot, error) {
	seen := make(map[int64]struct{}, len(products))
	records := make([]Record, 0, len(products))
	for i := range products {
		p := &products[i]
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}

		rec := Record{
			ID:         p.ID,
			Title:      p.Title,
			Category:   p.Category,
			Price:      p.Price,
			StockCount: p.StockCount,
			Shipping:   p.Shipping,
		}
		if p.Description != nil {
			rec.Description = *p.Description
		}
		records = append(records, rec)
	}
	return &Snapshot{Records: records}, nil
}
