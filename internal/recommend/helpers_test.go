// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend/storage"
)

// fakeCatalog is an in-memory catalog.Reader and DemoSource.
type fakeCatalog struct {
	mu         sync.Mutex
	products   []models.Product
	categories []models.Category
	getErr     error
}

func newFakeCatalog(f *database.Fixture) *fakeCatalog {
	titles := make(map[int64]string, len(f.Categories))
	for _, c := range f.Categories {
		titles[c.ID] = c.Title
	}
	fc := &fakeCatalog{categories: append([]models.Category(nil), f.Categories...)}
	for _, p := range f.Products {
		if p.CategoryID != nil {
			title := titles[*p.CategoryID]
			p.Category = &title
		}
		fc.products = append(fc.products, p)
	}
	return fc
}

func (c *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Product(nil), c.products...), nil
}

func (c *fakeCatalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	for _, p := range c.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", database.ErrProductNotFound, id)
}

func (c *fakeCatalog) FirstProduct(ctx context.Context) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.products) == 0 {
		return nil, nil
	}
	p := c.products[0]
	return &p, nil
}

func (c *fakeCatalog) FirstCategory(ctx context.Context) (*models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.categories) == 0 {
		return nil, nil
	}
	cat := c.categories[0]
	return &cat, nil
}

func (c *fakeCatalog) remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.products {
		if p.ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			return
		}
	}
}

func (c *fakeCatalog) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
}

// built returns a service over artifacts built from f.
func built(t *testing.T, f *database.Fixture) (*Service, *fakeCatalog, *storage.MemoryStore) {
	t.Helper()
	cat := newFakeCatalog(f)
	store := storage.NewMemoryStore()
	if _, err := NewBuilder(cat, store, nil).BuildAll(context.Background()); err != nil {
		t.Fatalf("BuildAll() error = %v", err)
	}
	return NewService(store, cat, nil), cat, store
}

func cardIDs(cards []models.ProductCard) []int64 {
	ids := make([]int64, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}
