// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/productsense/internal/recommend"
)

type buildFunc func(ctx context.Context, b *recommend.Builder) ([]recommend.BuildResult, error)

func newBuildCmd() *cobra.Command {
	return newBuilderCmd("build", "Build the similarity index and train the price model",
		func(ctx context.Context, b *recommend.Builder) ([]recommend.BuildResult, error) {
			summary, err := b.BuildAll(ctx)
			if summary == nil {
				return nil, err
			}
			return summary.Results, err
		})
}

func newBuildIndexCmd() *cobra.Command {
	return newBuilderCmd("build-index", "Build the similarity index", single((*recommend.Builder).BuildIndex))
}

func newTrainPriceCmd() *cobra.Command {
	return newBuilderCmd("train-price", "Train the price model", single((*recommend.Builder).TrainPriceModel))
}

func single(fn func(*recommend.Builder, context.Context) (*recommend.BuildResult, error)) buildFunc {
	return func(ctx context.Context, b *recommend.Builder) ([]recommend.BuildResult, error) {
		res, err := fn(b, ctx)
		if res == nil {
			return nil, err
		}
		return []recommend.BuildResult{*res}, err
	}
}

func newBuilderCmd(use, short string, run buildFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			results, err := run(cmd.Context(), a.builder)
			printResults(os.Stdout, results)
			return err
		},
	}
}

func printResults(w io.Writer, results []recommend.BuildResult) {
	for i := range results {
		r := &results[i]
		if r.Error != "" {
			_, _ = fmt.Fprintf(w, "  x %-12s %s\n", r.Artifact, r.Error)
			continue
		}
		line := fmt.Sprintf("  ok %-12s %v", r.Artifact, r.Duration.Round(1e6))
		if r.Metadata != nil {
			line += fmt.Sprintf(" rows=%d bytes=%d", r.Metadata.Rows, r.Metadata.SizeBytes)
		}
		if r.Vocabulary > 0 {
			line += fmt.Sprintf(" vocabulary=%d", r.Vocabulary)
		}
		if r.Training != nil {
			line += fmt.Sprintf(" r2=%.3f mae=%.2f", r.Training.R2, r.Training.MAE)
		}
		_, _ = fmt.Fprintln(w, line)
	}
}
