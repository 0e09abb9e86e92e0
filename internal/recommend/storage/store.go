// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package storage

import (
	"context"
	"errors"
	"regexp"
	"time"
)

var (
	// ErrNotFound is returned when no artifact exists under the name.
	ErrNotFound = errors.New("artifact not found")

	// ErrCorrupt is returned when a stored artifact fails to decode or verify.
	ErrCorrupt = errors.New("artifact corrupt")

	// ErrInvalidName is returned for names outside [a-z0-9_-].
	ErrInvalidName = errors.New("invalid artifact name")
)

// Metadata describes a stored artifact.
type Metadata struct {
	// Name is the artifact name (e.g., "similarity", "price_model").
	Name string `json:"name"`

	// SchemaVersion is the record schema version written by the builder.
	SchemaVersion int `json:"schema_version"`

	// BuildID uniquely identifies the build that produced the artifact.
	BuildID string `json:"build_id"`

	// BuiltAt is when the build finished.
	BuiltAt time.Time `json:"built_at"`

	// SavedAt is set by the store on Save.
	SavedAt time.Time `json:"saved_at"`

	// Rows is the number of catalog rows the artifact was built from.
	Rows int `json:"rows"`

	// Checksum is the SHA-256 of the uncompressed record encoding.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed record size.
	SizeBytes int64 `json:"size_bytes"`

	// BuildDurationMS is how long the build took.
	BuildDurationMS int64 `json:"build_duration_ms"`
}

// ArtifactStore loads and saves whole artifacts. Save fully replaces any
// previous artifact under the same name.
type ArtifactStore interface {
	Save(ctx context.Context, name string, record interface{}, meta Metadata) (*Metadata, error)
	Load(ctx context.Context, name string, target interface{}) (*Metadata, error)
	Exists(ctx context.Context, name string) (bool, error)
	Stat(ctx context.Context, name string) (*Metadata, error)
	Delete(ctx context.Context, name string) error
}

var namePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}
