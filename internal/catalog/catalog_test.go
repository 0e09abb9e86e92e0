// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/models"
)

func strPtr(s string) *string { return &s }

// fakeReader is an in-memory Reader.
type fakeReader struct {
	products []models.Product
	listErr  error
	getErr   error
	gets     int
}

func (f *fakeReader) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.listErr
}

func (f *fakeReader) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", database.ErrProductNotFound, id)
}

func TestCaptureSnapshot(t *testing.T) {
	r := &fakeReader{products: []models.Product{
		{ID: 3, Title: "Tomato", Description: strPtr("red")},
		{ID: 1, Title: "Carrot"},
	}}

	snap, err := CaptureSnapshot(context.Background(), r)
	if err != nil {
		t.Fatalf("CaptureSnapshot() error = %v", err)
	}
	if snap.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", snap.Len())
	}
	if snap.Records[0].ID != 3 {
		t.Errorf("row order not preserved: %+v", snap.Records)
	}
	if snap.Records[1].Description != "" {
		t.Errorf("nil description = %q, want empty", snap.Records[1].Description)
	}
	if got := snap.Corpus(); got[0] != "Tomato red" || got[1] != "Carrot " {
		t.Errorf("Corpus() = %q", got)
	}
	if snap.IndexOf(1) != 1 || snap.IndexOf(99) != -1 {
		t.Errorf("IndexOf() wrong")
	}
}

func TestCaptureSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name   string
		reader *fakeReader
		want   error
	}{
		{
			name:   "duplicate id",
			reader: &fakeReader{products: []models.Product{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}},
			want:   ErrDuplicateID,
		},
		{
			name:   "list failure",
			reader: &fakeReader{listErr: errors.New("connection refused")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CaptureSnapshot(context.Background(), tt.reader)
			if err == nil {
				t.Fatal("CaptureSnapshot() returned nil error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCaptureSnapshot_Empty(t *testing.T) {
	snap, err := CaptureSnapshot(context.Background(), &fakeReader{})
	if err != nil {
		t.Fatalf("CaptureSnapshot() error = %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
}

func TestBreakerReader_NotFoundDoesNotTrip(t *testing.T) {
	inner := &fakeReader{}
	b := NewBreakerReaderWithSettings(inner, BreakerSettings{MinRequests: 2, FailureRatio: 0.5})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := b.GetProduct(ctx, 42); !errors.Is(err, database.ErrProductNotFound) {
			t.Fatalf("GetProduct() error = %v, want ErrProductNotFound", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestBreakerReader_OpensOnFailures(t *testing.T) {
	inner := &fakeReader{getErr: errors.New("connection reset")}
	b := NewBreakerReaderWithSettings(inner, BreakerSettings{
		MinRequests:  3,
		FailureRatio: 0.6,
		Timeout:      time.Hour,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = b.GetProduct(ctx, 1)
	}
	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	calls := inner.gets
	if _, err := b.GetProduct(ctx, 1); err == nil {
		t.Error("GetProduct() on open breaker returned nil error")
	}
	if inner.gets != calls {
		t.Error("open breaker still called the inner reader")
	}
}

func TestBreakerReader_PassesThrough(t *testing.T) {
	inner := &fakeReader{products: []models.Product{{ID: 7, Title: "Paneer"}}}
	b := NewBreakerReader(inner)
	ctx := context.Background()

	p, err := b.GetProduct(ctx, 7)
	if err != nil || p.Title != "Paneer" {
		t.Errorf("GetProduct() = %+v, %v", p, err)
	}
	list, err := b.ListProducts(ctx)
	if err != nil || len(list) != 1 {
		t.Errorf("ListProducts() = %v, %v", list, err)
	}
}
