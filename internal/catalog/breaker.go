// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package catalog

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/metrics"
	"github.com/tomtom215/productsense/internal/models"
)

// BreakerName is the circuit breaker label used in metrics and logs.
const BreakerName = "catalog-lookup"

// BreakerReader wraps GetProduct in a circuit breaker. A missing product
// is a normal answer and does not count as a failure. ListProducts is used
// by builds only and passes straight through.
//
// The breaker uses real time for its interval and timeout.
type BreakerReader struct {
	inner Reader
	cb    *gobreaker.CircuitBreaker[*models.Product]
	name  string
}

// BreakerSettings tunes the breaker. The zero value is replaced by the
// defaults.
type BreakerSettings struct {
	// MaxRequests allowed in the half-open state. Default: 3
	MaxRequests uint32

	// Interval after which closed-state counts reset. Default: 1m
	Interval time.Duration

	// Timeout in the open state before probing again. Default: 2m
	Timeout time.Duration

	// MinRequests before the failure ratio is considered. Default: 10
	MinRequests uint32

	// FailureRatio that opens the circuit. Default: 0.6
	FailureRatio float64
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 2 * time.Minute
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	return s
}

// NewBreakerReader wraps inner with the default breaker settings.
func NewBreakerReader(inner Reader) *BreakerReader {
	return NewBreakerReaderWithSettings(inner, BreakerSettings{})
}

// NewBreakerReaderWithSettings wraps inner with explicit breaker settings.
func NewBreakerReaderWithSettings(inner Reader, s BreakerSettings) *BreakerReader {
	s = s.withDefaults()
	name := BreakerName

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*models.Product](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			if ratio >= s.FailureRatio {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", ratio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
				return true
			}
			return false
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, database.ErrProductNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerReader{inner: inner, cb: cb, name: name}
}

// ListProducts implements Reader.
func (b *BreakerReader) ListProducts(ctx context.Context) ([]models.Product, error) {
	return b.inner.ListProducts(ctx)
}

// GetProduct implements Reader with circuit breaker protection.
func (b *BreakerReader) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := b.cb.Execute(func() (*models.Product, error) {
		return b.inner.GetProduct(ctx, id)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		logging.Ctx(ctx).Warn().Err(err).Int64("product_id", id).Msg("[CIRCUIT BREAKER] Request rejected")
	case errors.Is(err, database.ErrProductNotFound):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
	}
	return p, err
}

// State returns the current breaker state name.
func (b *BreakerReader) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
