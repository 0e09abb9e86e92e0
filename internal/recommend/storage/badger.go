// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// artifactKeyPrefix namespaces artifact keys in a shared BadgerDB.
const artifactKeyPrefix = "artifact:"

// BadgerStore implements ArtifactStore on BadgerDB. Each Save is a single
// transaction, so readers see either the old or the new envelope.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open BadgerDB.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Save implements ArtifactStore.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *BadgerStore) Save(ctx context.Context, name string, record interface{}, meta Metadata) (*Metadata, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, saved, err := encode(name, record, meta)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(artifactKey(name), data)
	})
	if err != nil {
		return nil, fmt.Errorf("set artifact: %w", err)
	}
	return saved, nil
}

// Load implements ArtifactStore.
func (s *BadgerStore) Load(ctx context.Context, name string, target interface{}) (*Metadata, error) {
	data, err := s.get(name)
	if err != nil {
		return nil, err
	}
	return decode(data, target)
}

// Exists implements ArtifactStore.
func (s *BadgerStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.get(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Stat implements ArtifactStore.
func (s *BadgerStore) Stat(ctx context.Context, name string) (*Metadata, error) {
	data, err := s.get(name)
	if err != nil {
		return nil, err
	}
	return decodeMetadata(data)
}

// Delete implements ArtifactStore.
func (s *BadgerStore) Delete(ctx context.Context, name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(artifactKey(name))
	})
}

func (s *BadgerStore) get(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(artifactKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return fmt.Errorf("get artifact: %w", err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func artifactKey(name string) []byte {
	return []byte(artifactKeyPrefix + name)
}
