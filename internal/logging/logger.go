// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

// Package logging provides the process-wide zerolog logger.
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Int("rows", n).Msg("Similarity index built")
//	logging.Ctx(ctx).Warn().Int64("product_id", id).Msg("Product missing from catalog")
//
// Always terminate event chains with .Msg() or .Send(); an unterminated
// event is never written.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration. The zero value logs JSON at info
// level with timestamps to stderr.
type Config struct {
	// Level is one of trace, debug, info, warn, error or disabled.
	Level string

	// Format is json or console.
	Format string

	// Caller adds file:line to every line.
	Caller bool

	// NoTimestamp drops the time field, mostly for golden-output tests.
	NoTimestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

var current atomic.Pointer[zerolog.Logger]

//nolint:gochecknoinits // packages log before main calls Init
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	Init(Config{})
}

// Init builds the global logger from cfg and sets the global level.
// It may be called again to reconfigure.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}

	zc := zerolog.New(out).With()
	if !cfg.NoTimestamp {
		zc = zc.Timestamp()
	}
	if cfg.Caller {
		zc = zc.Caller()
	}

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	SetLogger(zc.Logger())
}

// parseLevel maps a level name to zerolog. Empty and unknown names are info.
func parseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	return *current.Load()
}

// SetLogger swaps the global logger.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout zerolog
func SetLogger(l zerolog.Logger) {
	current.Store(&l)
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event { return current.Load().Info() }

// Warn starts a warn event on the global logger.
func Warn() *zerolog.Event { return current.Load().Warn() }

// Error starts an error event on the global logger.
func Error() *zerolog.Event { return current.Load().Error() }

// Err starts an event carrying err, at error level when err is non-nil and
// info otherwise.
func Err(err error) *zerolog.Event { return current.Load().Err(err) }

// WithComponent returns a child of the global logger tagged with component.
//
//	builderLog := logging.WithComponent("builder")
func WithComponent(component string) zerolog.Logger {
	return current.Load().With().Str("component", component).Logger()
}

// NewTestLogger returns a timestamped JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
