// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/productsense/internal/recommend"
)

type fakeBuilder struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (f *fakeBuilder) BuildAll(ctx context.Context) (*recommend.BuildSummary, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &recommend.BuildSummary{Results: []recommend.BuildResult{
		{Artifact: recommend.ArtifactSimilarity},
		{Artifact: recommend.ArtifactPriceModel},
	}}, nil
}

func (f *fakeBuilder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ suture.Service = (*RebuildService)(nil)

func TestRebuildService_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RebuildServiceConfig
		run      time.Duration
		minCalls int
		maxCalls int
	}{
		{"idle without startup or interval", RebuildServiceConfig{}, 100 * time.Millisecond, 0, 0},
		{"startup only", RebuildServiceConfig{BuildOnStartup: true, Interval: time.Hour}, 100 * time.Millisecond, 1, 1},
		{"periodic", RebuildServiceConfig{Interval: 20 * time.Millisecond}, 150 * time.Millisecond, 2, 10},
		{"startup and periodic", RebuildServiceConfig{BuildOnStartup: true, Interval: 20 * time.Millisecond}, 150 * time.Millisecond, 3, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBuilder{}
			svc := NewRebuildService(b, tt.cfg)

			ctx, cancel := context.WithTimeout(context.Background(), tt.run)
			defer cancel()
			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want deadline exceeded", err)
			}
			if got := b.Calls(); got < tt.minCalls || got > tt.maxCalls {
				t.Errorf("BuildAll called %d times, want [%d, %d]", got, tt.minCalls, tt.maxCalls)
			}
		})
	}
}

func TestRebuildService_FailureKeepsRunning(t *testing.T) {
	b := &fakeBuilder{err: errors.New("catalog unavailable")}
	svc := NewRebuildService(b, RebuildServiceConfig{BuildOnStartup: true, Interval: 20 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want deadline exceeded", err)
	}
	if b.Calls() < 2 {
		t.Errorf("BuildAll called %d times, want retries after failure", b.Calls())
	}
}

func TestRebuildService_TimeoutBoundsBuild(t *testing.T) {
	b := &fakeBuilder{delay: time.Second}
	svc := NewRebuildService(b, RebuildServiceConfig{BuildOnStartup: true, Timeout: 20 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	if b.Calls() != 1 {
		t.Errorf("BuildAll called %d times, want 1", b.Calls())
	}
}

func TestRebuildService_Defaults(t *testing.T) {
	svc := NewRebuildService(&fakeBuilder{}, RebuildServiceConfig{})
	if svc.config.Timeout != defaultBuildTimeout {
		t.Errorf("Timeout = %v, want %v", svc.config.Timeout, defaultBuildTimeout)
	}
	if svc.String() != "rebuild-service" {
		t.Errorf("String() = %q", svc.String())
	}
}
