// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below match them with errors.Is.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("product not found")
	ErrNotBuilt          = errors.New("artifact not built")
	ErrBuild             = errors.New("build failed")
	ErrUnsupportedSchema = errors.New("unsupported artifact schema version")
)

// ValidationError reports bad or missing request input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a product id absent from the indexed snapshot.
type NotFoundError struct {
	ProductID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotBuiltError reports that an artifact has never been built.
type NotBuiltError struct {
	Artifact string
}

func (e *NotBuiltError) Error() string {
	return fmt.Sprintf("artifact %q has not been built", e.Artifact)
}

// Is matches ErrNotBuilt.
func (e *NotBuiltError) Is(target error) bool {
	return target == ErrNotBuilt
}

// BuildError reports a build that aborted without writing an artifact.
type BuildError struct {
	Artifact string
	Reason   string
	Err      error
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build %s: %s: %v", e.Artifact, e.Reason, e.Err)
	}
	return fmt.Sprintf("build %s: %s", e.Artifact, e.Reason)
}

// Is matches ErrBuild.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}

// Unwrap returns the underlying cause.
func (e *BuildError) Unwrap() error {
	return e.Err
}
