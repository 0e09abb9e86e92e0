// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps encoded artifacts in memory. It uses the same codec as
// the durable backends, so corruption and schema failures behave identically.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Save implements ArtifactStore.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *MemoryStore) Save(ctx context.Context, name string, record interface{}, meta Metadata) (*Metadata, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, saved, err := encode(name, record, meta)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.data[name] = data
	s.mu.Unlock()
	return saved, nil
}

// Load implements ArtifactStore.
func (s *MemoryStore) Load(ctx context.Context, name string, target interface{}) (*Metadata, error) {
	data, err := s.get(name)
	if err != nil {
		return nil, err
	}
	return decode(data, target)
}

// Exists implements ArtifactStore.
func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[name]
	return ok, nil
}

// Stat implements ArtifactStore.
func (s *MemoryStore) Stat(ctx context.Context, name string) (*Metadata, error) {
	data, err := s.get(name)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(data)
}

// Delete implements ArtifactStore.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.data, name)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the stored bytes, for tests of the failure path.
func (s *MemoryStore) Corrupt(name string, data []byte) {
	s.mu.Lock()
	s.data[name] = data
	s.mu.Unlock()
}

func (s *MemoryStore) get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}
