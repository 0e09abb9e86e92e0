// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/metrics"
	"github.com/tomtom215/productsense/internal/recommend/storage"
)

// BuildResult describes one artifact build.
type BuildResult struct {
	Artifact string            `json:"artifact"`
	Metadata *storage.Metadata `json:"metadata,omitempty"`
	Duration time.Duration     `json:"duration_ns"`
	Error    string            `json:"error,omitempty"`

	// Vocabulary is set for the similarity index.
	Vocabulary int `json:"vocabulary,omitempty"`

	// Training is set for the price model.
	Training *TrainingMetrics `json:"training,omitempty"`
}

// BuildSummary is the outcome of BuildAll.
type BuildSummary struct {
	Results []BuildResult `json:"results"`
}

// Builder captures catalog snapshots and writes both artifacts.
type Builder struct {
	reader catalog.Reader
	store  storage.ArtifactStore
	cfg    *Config
	logger zerolog.Logger

	// mu serializes builds so two rebuilds never interleave their saves.
	mu sync.Mutex
}

// NewBuilder creates a builder. A nil cfg uses DefaultConfig.
func NewBuilder(reader catalog.Reader, store storage.ArtifactStore, cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Builder{
		reader: reader,
		store:  store,
		cfg:    cfg,
		logger: logging.WithComponent("builder"),
	}
}

// BuildIndex captures the catalog and replaces the similarity artifact.
func (b *Builder) BuildIndex(ctx context.Context) (*BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, err := b.snapshot(ctx, ArtifactSimilarity)
	if err != nil {
		return b.fail(ArtifactSimilarity, time.Now(), err)
	}
	return b.buildIndex(ctx, snap)
}

// TrainPriceModel captures the catalog and replaces the price artifact.
func (b *Builder) TrainPriceModel(ctx context.Context) (*BuildResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, err := b.snapshot(ctx, ArtifactPriceModel)
	if err != nil {
		return b.fail(ArtifactPriceModel, time.Now(), err)
	}
	return b.trainPrice(ctx, snap)
}

// BuildAll builds both artifacts from one snapshot. Each build succeeds or
// fails on its own; the returned error joins the failures.
func (b *Builder) BuildAll(ctx context.Context) (*BuildSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	summary := &BuildSummary{}
	snap, err := b.snapshot(ctx, "all")
	if err != nil {
		for _, name := range ArtifactNames {
			res, _ := b.fail(name, time.Now(), err)
			summary.Results = append(summary.Results, *res)
		}
		return summary, err
	}

	var errs []error
	for _, step := range []func(context.Context, *catalog.Snapshot) (*BuildResult, error){b.buildIndex, b.trainPrice} {
		res, err := step(ctx, snap)
		summary.Results = append(summary.Results, *res)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return summary, errors.Join(errs...)
}

func (b *Builder) snapshot(ctx context.Context, artifact string) (*catalog.Snapshot, error) {
	snap, err := catalog.CaptureSnapshot(ctx, b.reader)
	if err != nil {
		return nil, &BuildError{Artifact: artifact, Reason: "capture catalog snapshot", Err: err}
	}
	b.logger.Debug().Int("rows", snap.Len()).Msg("Captured catalog snapshot")
	return snap, nil
}

func (b *Builder) buildIndex(ctx context.Context, snap *catalog.Snapshot) (*BuildResult, error) {
	start := time.Now()

	art, err := BuildSimilarityIndex(snap)
	if err != nil {
		return b.fail(ArtifactSimilarity, start, err)
	}
	art.BuildID = uuid.NewString()
	art.BuiltAt = time.Now().UTC()

	meta, err := b.save(ctx, ArtifactSimilarity, art, art.BuildID, art.BuiltAt, len(art.Rows), start)
	if err != nil {
		return b.fail(ArtifactSimilarity, start, err)
	}

	res := &BuildResult{
		Artifact:   ArtifactSimilarity,
		Metadata:   meta,
		Duration:   time.Since(start),
		Vocabulary: art.Vectorizer.VocabularySize(),
	}
	metrics.RecordBuild(ArtifactSimilarity, res.Duration, meta.SizeBytes, meta.Rows, nil)
	b.logger.Info().
		Str("build_id", meta.BuildID).
		Int("rows", meta.Rows).
		Int("vocabulary", res.Vocabulary).
		Int64("size_bytes", meta.SizeBytes).
		Str("checksum", meta.Checksum).
		Dur("duration", res.Duration).
		Msg("Similarity index built")
	return res, nil
}

func (b *Builder) trainPrice(ctx context.Context, snap *catalog.Snapshot) (*BuildResult, error) {
	start := time.Now()

	art, err := TrainPriceModel(ctx, snap, b.cfg)
	if err != nil {
		return b.fail(ArtifactPriceModel, start, err)
	}
	art.BuildID = uuid.NewString()
	art.BuiltAt = time.Now().UTC()

	rows := art.Metrics.TrainRows + art.Metrics.TestRows
	meta, err := b.save(ctx, ArtifactPriceModel, art, art.BuildID, art.BuiltAt, rows, start)
	if err != nil {
		return b.fail(ArtifactPriceModel, start, err)
	}

	training := art.Metrics
	res := &BuildResult{
		Artifact: ArtifactPriceModel,
		Metadata: meta,
		Duration: time.Since(start),
		Training: &training,
	}
	metrics.RecordBuild(ArtifactPriceModel, res.Duration, meta.SizeBytes, meta.Rows, nil)
	b.logger.Info().
		Str("build_id", meta.BuildID).
		Int("train_rows", training.TrainRows).
		Int("test_rows", training.TestRows).
		Int("dropped_rows", training.DroppedRows).
		Float64("r2", training.R2).
		Float64("mae", training.MAE).
		Int("trees", len(art.Forest.Trees)).
		Int64("size_bytes", meta.SizeBytes).
		Dur("duration", res.Duration).
		Msg("Price model trained")
	return res, nil
}

func (b *Builder) save(ctx context.Context, name string, record interface{}, buildID string, builtAt time.Time, rows int, start time.Time) (*storage.Metadata, error) {
	meta, err := b.store.Save(ctx, name, record, storage.Metadata{
		SchemaVersion:   SchemaVersion,
		BuildID:         buildID,
		BuiltAt:         builtAt,
		Rows:            rows,
		BuildDurationMS: time.Since(start).Milliseconds(),
	})
	if err != nil {
		return nil, &BuildError{Artifact: name, Reason: "save artifact", Err: err}
	}
	return meta, nil
}

func (b *Builder) fail(artifact string, start time.Time, err error) (*BuildResult, error) {
	if !errors.Is(err, ErrBuild) {
		err = &BuildError{Artifact: artifact, Reason: "unexpected failure", Err: err}
	}
	dur := time.Since(start)
	metrics.RecordBuild(artifact, dur, 0, 0, err)
	b.logger.Error().Err(err).Str("artifact", artifact).Msg("Build aborted, existing artifact left in place")
	return &BuildResult{Artifact: artifact, Duration: dur, Error: err.Error()}, err
}
