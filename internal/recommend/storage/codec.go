// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

// envelope is the encoded form shared by all backends.
type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

// encode serializes record and returns the envelope bytes with the
// finalized metadata.
//
//nolint:gocritic // meta passed by value is filled in and returned
func encode(name string, record interface{}, meta Metadata) ([]byte, *Metadata, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(record); err != nil {
		return nil, nil, fmt.Errorf("encode artifact: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, nil, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, nil, fmt.Errorf("finalize compression: %w", err)
	}

	meta.Name = name
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return nil, nil, fmt.Errorf("encode envelope: %w", err)
	}
	return out.Bytes(), &meta, nil
}

// decodeMetadata reads only the envelope metadata.
func decodeMetadata(data []byte) (*Metadata, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	return &env.Metadata, nil
}

func decodeEnvelope(data []byte) (*envelope, error) {
	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: read envelope: %v", ErrCorrupt, err)
	}
	return &env, nil
}

// decode verifies and decodes the envelope into target.
func decode(data []byte, target interface{}) (*Metadata, error) {
	env, err := decodeEnvelope(data)
	if err != nil {
		return nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("%w: decompress: %v", ErrCorrupt, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("%w: read decompressed data: %v", ErrCorrupt, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != env.Metadata.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %s, got %s", ErrCorrupt, env.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("%w: decode artifact: %v", ErrCorrupt, err)
	}
	return &env.Metadata, nil
}
