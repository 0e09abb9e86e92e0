// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorTaxonomy(t *testing.T) {
	cause := errors.New("io failure")
	tests := []struct {
		name string
		err  error
		is   error
		not  []error
	}{
		{"validation", &ValidationError{Field: "q", Reason: "required"}, ErrValidation, []error{ErrNotFound, ErrNotBuilt}},
		{"not found", &NotFoundError{ProductID: 7}, ErrNotFound, []error{ErrValidation, ErrNotBuilt}},
		{"not built", &NotBuiltError{Artifact: ArtifactSimilarity}, ErrNotBuilt, []error{ErrNotFound, ErrBuild}},
		{"build", &BuildError{Artifact: ArtifactPriceModel, Reason: "save", Err: cause}, ErrBuild, []error{ErrNotBuilt}},
		{"wrapped", fmt.Errorf("handler: %w", &NotBuiltError{Artifact: ArtifactPriceModel}), ErrNotBuilt, []error{ErrValidation}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.is) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.is)
			}
			for _, other := range tt.not {
				if errors.Is(tt.err, other) {
					t.Errorf("errors.Is(%v, %v) = true", tt.err, other)
				}
			}
		})
	}

	be := &BuildError{Artifact: ArtifactPriceModel, Reason: "save", Err: cause}
	if !errors.Is(be, cause) {
		t.Error("BuildError does not unwrap to its cause")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero recommend k", func(c *Config) { c.RecommendK = 0 }, true},
		{"zero search k", func(c *Config) { c.SearchK = 0 }, true},
		{"zero trees", func(c *Config) { c.Trees = 0 }, true},
		{"test fraction too large", func(c *Config) { c.TestFraction = 0.95 }, true},
		{"no hold-out", func(c *Config) { c.TestFraction = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
