// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type seedCommander struct {
	fixture   string
	overwrite bool
}

func newSeedCmd() *cobra.Command {
	c := &seedCommander{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with demo data",
		Long: `Seed the catalog with the built-in demo catalog or a YAML fixture.

A catalog that already has products is left alone unless --overwrite is set.

Examples:
  productsense seed
  productsense seed --fixture ./fixtures/groceries.yaml
  productsense seed --overwrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if c.fixture == "" {
				c.fixture = cfg.Database.FixturePath
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			res, err := a.seed(cmd.Context(), c.fixture, c.overwrite)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Println("Catalog already has products; nothing seeded (use --overwrite to replace).")
				return nil
			}
			fmt.Printf("Seeded %d categories and %d products.\n", res.Categories, res.Products)
			return nil
		},
	}
	cmd.Flags().StringVarP(&c.fixture, "fixture", "f", "", "Path to a YAML fixture (default: built-in demo catalog)")
	cmd.Flags().BoolVar(&c.overwrite, "overwrite", false, "Replace existing catalog rows")
	return cmd
}
