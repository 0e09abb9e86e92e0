// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

/*
Package config loads and validates the application configuration.

Configuration is layered with Koanf v2, lowest to highest priority:

 1. Defaults built into defaultConfig
 2. An optional YAML file (CONFIG_PATH, config.yaml, /etc/productsense/config.yaml)
 3. Environment variables, mapped to config paths by envTransformFunc

A .env file in the working directory is loaded into the process environment
before the env layer is read. Variables already set in the environment win
over .env entries.

Example config.yaml:

	server:
	  port: 8000
	  admin_enabled: true
	database:
	  driver: sqlite3
	  dsn: ./data/catalog.sqlite
	artifacts:
	  backend: file
	  path: ./data/artifacts
	recommend:
	  rebuild_interval: 1h
*/
package config
