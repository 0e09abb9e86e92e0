// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package storage

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/tomtom215/productsense/internal/cache"
)

// cachedRecord is a decoded artifact held by CachingStore.
type cachedRecord struct {
	value reflect.Value
	meta  Metadata
}

// CachingStore keeps decoded artifacts in a TTL cache in front of another
// store. Saves and deletes made through it invalidate the cached entry.
//
// Loaded records share slices and maps with the cached copy and must be
// treated as read-only.
//
// Every Save and Delete bumps a per-name generation. A Load only fills the
// cache if the generation it saw before reading the inner store is still
// current, so a read that raced a replace never pins the old artifact.
type CachingStore struct {
	inner ArtifactStore
	cache *cache.Cache[cachedRecord]

	mu  sync.Mutex
	gen map[string]uint64
}

// NewCachingStore wraps inner with a cache whose entries live for ttl.
func NewCachingStore(inner ArtifactStore, ttl time.Duration) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.New[cachedRecord](ttl),
		gen:   make(map[string]uint64),
	}
}

func (s *CachingStore) generation(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen[name]
}

// invalidate drops name from the cache and retires in-flight fills.
func (s *CachingStore) invalidate(name string) {
	s.mu.Lock()
	s.gen[name]++
	s.cache.Delete(name)
	s.mu.Unlock()
}

// fill caches rec unless name was replaced since generation seen.
func (s *CachingStore) fill(name string, seen uint64, rec cachedRecord) {
	s.mu.Lock()
	if s.gen[name] == seen {
		s.cache.Set(name, rec)
	}
	s.mu.Unlock()
}

// Close stops the cache cleanup loop. It does not close the inner store.
func (s *CachingStore) Close() {
	s.cache.Close()
}

// Stats returns the cache statistics.
func (s *CachingStore) Stats() cache.Stats {
	return s.cache.GetStats()
}

// Save implements ArtifactStore.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *CachingStore) Save(ctx context.Context, name string, record interface{}, meta Metadata) (*Metadata, error) {
	saved, err := s.inner.Save(ctx, name, record, meta)
	s.invalidate(name)
	return saved, err
}

// Load serves the record from the cache when it holds a value of the
// target's type, and falls through to the inner store otherwise.
func (s *CachingStore) Load(ctx context.Context, name string, target interface{}) (*Metadata, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return nil, fmt.Errorf("load %s: target must be a non-nil pointer", name)
	}

	if rec, ok := s.cache.Get(name); ok && rec.value.Type() == rv.Elem().Type() {
		rv.Elem().Set(rec.value)
		meta := rec.meta
		return &meta, nil
	}

	seen := s.generation(name)
	meta, err := s.inner.Load(ctx, name, target)
	if err != nil {
		return nil, err
	}
	held := reflect.New(rv.Elem().Type()).Elem()
	held.Set(rv.Elem())
	s.fill(name, seen, cachedRecord{value: held, meta: *meta})
	return meta, nil
}

// Exists implements ArtifactStore.
func (s *CachingStore) Exists(ctx context.Context, name string) (bool, error) {
	return s.inner.Exists(ctx, name)
}

// Stat implements ArtifactStore.
func (s *CachingStore) Stat(ctx context.Context, name string) (*Metadata, error) {
	return s.inner.Stat(ctx, name)
}

// Delete implements ArtifactStore.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	err := s.inner.Delete(ctx, name)
	s.invalidate(name)
	return err
}
