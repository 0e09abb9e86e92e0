// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package storage persists the trained artifacts consumed by the inference
// layer.
//
// Every backend implements ArtifactStore and shares one encoding: the record
// is gob-encoded, checksummed with SHA-256, gzip-compressed and wrapped in a
// gob envelope together with its Metadata. A reader either decodes a fully
// valid record or gets an error: ErrNotFound when nothing was ever saved under
// the name, ErrCorrupt when the stored bytes fail to decode or verify.
//
// # Backends
//
//   - FileStore: one {name}.gob.gz file per artifact, replaced atomically by
//     writing a temporary file in the same directory and renaming it
//   - MemoryStore: encoded envelopes in a map, for tests and ephemeral runs
//   - BadgerStore: envelopes under the key "artifact:{name}" in BadgerDB
//   - CachingStore: decorator keeping decoded records in a TTL cache,
//     invalidated by Save and Delete through the same decorator
//
// # Usage
//
//	store, err := storage.NewFileStore("/data/artifacts")
//	if err != nil {
//	    return err
//	}
//	meta, err := store.Save(ctx, "similarity", &record, storage.Metadata{Rows: n})
//
//	var loaded Record
//	meta, err = store.Load(ctx, "similarity", &loaded)
//	if errors.Is(err, storage.ErrNotFound) {
//	    // not built yet
//	}
//
// # Thread Safety
//
// All backends are safe for concurrent use. Readers never observe a partially
// written artifact.
package storage
