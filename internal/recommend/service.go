// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/productsense/internal/catalog"
	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/logging"
	"github.com/tomtom215/productsense/internal/metrics"
	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend/algorithms"
	"github.com/tomtom215/productsense/internal/recommend/storage"
)

// Inference operation names for metrics and logs.
const (
	OpRecommend    = "recommend"
	OpSearch       = "search"
	OpPredictPrice = "predict_price"
)

// Service answers inference requests from the stored artifacts. Each call
// loads its artifact from the store, so a rebuild is visible to the next
// request without a restart.
type Service struct {
	store  storage.ArtifactStore
	reader catalog.Reader
	cfg    *Config
}

// NewService creates a service. reader is used for live display lookups.
func NewService(store storage.ArtifactStore, reader catalog.Reader, cfg *Config) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Service{store: store, reader: reader, cfg: cfg}
}

// Recommend returns the products most similar to productID, excluding the
// product itself. Equal scores keep snapshot order.
func (s *Service) Recommend(ctx context.Context, productID int64) (cards []models.ProductCard, err error) {
	defer s.observe(OpRecommend, time.Now(), &err)

	art, err := s.loadSimilarity(ctx)
	if err != nil {
		return nil, err
	}

	idx := art.IndexOf(productID)
	if idx < 0 {
		return nil, &NotFoundError{ProductID: productID}
	}

	ranked := algorithms.TopK(art.Matrix[idx], s.cfg.RecommendK, idx)
	return s.liveCards(ctx, art, ranked)
}

// Search ranks the indexed products against a free-text query using the
// persisted vectorizer and document vectors.
func (s *Service) Search(ctx context.Context, query string) (cards []models.ProductCard, err error) {
	defer s.observe(OpSearch, time.Now(), &err)

	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "q", Reason: "search query is required"}
	}

	art, err := s.loadSimilarity(ctx)
	if err != nil {
		return nil, err
	}

	qv := art.Vectorizer.Transform(query)
	scores := make([]float64, len(art.DocTerm))
	for i := range art.DocTerm {
		scores[i] = algorithms.CosineSimilarity(qv, art.DocTerm[i])
	}

	ranked := algorithms.TopK(scores, s.cfg.SearchK, -1)
	return s.liveCards(ctx, art, ranked)
}

// PriceQuery holds the raw predict-price inputs.
type PriceQuery struct {
	Category   string
	StockCount string
	Shipping   string
}

// Parse validates the query. Every field is required; stock_count must be an
// integer and shipping a finite number.
func (q PriceQuery) Parse() (PriceFeatures, error) {
	var missing []string
	if q.Category == "" {
		missing = append(missing, ColumnCategory)
	}
	if q.StockCount == "" {
		missing = append(missing, ColumnStockCount)
	}
	if q.Shipping == "" {
		missing = append(missing, ColumnShipping)
	}
	if len(missing) > 0 {
		return PriceFeatures{}, &ValidationError{Field: strings.Join(missing, ","), Reason: "required"}
	}

	stock, err := strconv.ParseInt(strings.TrimSpace(q.StockCount), 10, 64)
	if err != nil {
		return PriceFeatures{}, &ValidationError{Field: ColumnStockCount, Reason: "must be an integer"}
	}
	shipping, err := strconv.ParseFloat(strings.TrimSpace(q.Shipping), 64)
	if err != nil || math.IsNaN(shipping) || math.IsInf(shipping, 0) {
		return PriceFeatures{}, &ValidationError{Field: ColumnShipping, Reason: "must be a number"}
	}

	return PriceFeatures{Category: q.Category, StockCount: stock, Shipping: shipping}, nil
}

// PredictPrice runs the price pipeline on one row. An unseen category
// predicts from the numeric features alone.
func (s *Service) PredictPrice(ctx context.Context, q PriceQuery) (price float64, err error) {
	defer s.observe(OpPredictPrice, time.Now(), &err)

	features, err := q.Parse()
	if err != nil {
		return 0, err
	}

	var art PriceModelArtifact
	if err := s.load(ctx, ArtifactPriceModel, &art); err != nil {
		return 0, err
	}
	if err := art.check(); err != nil {
		metrics.RecordArtifactLoad(ArtifactPriceModel, metrics.ResultError)
		return 0, fmt.Errorf("load %s: %w", ArtifactPriceModel, err)
	}

	if !art.Encoder.Known(features.Category) {
		logging.Ctx(ctx).Debug().Str("category", features.Category).Msg("Unseen category, encoding as zeros")
	}
	return art.Predict(features)
}

// ArtifactStatus reports one stored artifact.
type ArtifactStatus struct {
	Name     string            `json:"name"`
	Built    bool              `json:"built"`
	Metadata *storage.Metadata `json:"metadata,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Artifacts returns the status of every artifact.
func (s *Service) Artifacts(ctx context.Context) []ArtifactStatus {
	out := make([]ArtifactStatus, 0, len(ArtifactNames))
	for _, name := range ArtifactNames {
		st := ArtifactStatus{Name: name}
		meta, err := s.store.Stat(ctx, name)
		switch {
		case err == nil:
			st.Built = true
			st.Metadata = meta
		case errors.Is(err, storage.ErrNotFound):
		default:
			st.Error = err.Error()
		}
		out = append(out, st)
	}
	return out
}

// Missing returns the artifacts that do not exist yet.
func (s *Service) Missing(ctx context.Context) ([]string, error) {
	var missing []string
	for _, name := range ArtifactNames {
		ok, err := s.store.Exists(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", name, err)
		}
		if !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

func (s *Service) loadSimilarity(ctx context.Context) (*SimilarityArtifact, error) {
	var art SimilarityArtifact
	if err := s.load(ctx, ArtifactSimilarity, &art); err != nil {
		return nil, err
	}
	if err := art.check(); err != nil {
		metrics.RecordArtifactLoad(ArtifactSimilarity, metrics.ResultError)
		return nil, fmt.Errorf("load %s: %w", ArtifactSimilarity, err)
	}
	return &art, nil
}

func (s *Service) load(ctx context.Context, name string, target interface{}) error {
	_, err := s.store.Load(ctx, name, target)
	switch {
	case err == nil:
		metrics.RecordArtifactLoad(name, metrics.ResultSuccess)
		return nil
	case errors.Is(err, storage.ErrNotFound):
		metrics.RecordArtifactLoad(name, metrics.ResultNotBuilt)
		return &NotBuiltError{Artifact: name}
	default:
		metrics.RecordArtifactLoad(name, metrics.ResultError)
		return fmt.Errorf("load %s: %w", name, err)
	}
}

// Card returns the display fields of p with the image resolved against
// the media URL.
func (s *Service) Card(p *models.Product) models.ProductCard {
	card := p.Card()
	card.ProductImage = ImageURL(s.cfg.MediaURL, p.Image)
	return card
}

// ImageURL resolves a stored image reference. Absolute URLs and rooted
// paths pass through; other paths are joined onto mediaURL. A nil or empty
// reference yields nil.
func ImageURL(mediaURL string, image *string) *string {
	if image == nil || *image == "" {
		return nil
	}
	ref := *image
	if mediaURL == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "://") {
		return &ref
	}
	joined, err := url.JoinPath(mediaURL, ref)
	if err != nil {
		return &ref
	}
	return &joined
}

// liveCards re-reads each ranked product from the catalog so display
// fields are current. Products deleted since the build are skipped.
func (s *Service) liveCards(ctx context.Context, art *SimilarityArtifact, ranked []algorithms.Scored) ([]models.ProductCard, error) {
	cards := make([]models.ProductCard, 0, len(ranked))
	for _, r := range ranked {
		id := art.Rows[r.Index].ID
		p, err := s.reader.GetProduct(ctx, id)
		if errors.Is(err, database.ErrProductNotFound) {
			logging.Ctx(ctx).Warn().Int64("product_id", id).Msg("Indexed product no longer in catalog, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("fetch product %d: %w", id, err)
		}
		cards = append(cards, s.Card(p))
	}
	return cards, nil
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	result := metrics.ResultSuccess
	if err := *errp; err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			result = metrics.ResultInvalid
		case errors.Is(err, ErrNotFound):
			result = metrics.ResultNotFound
		case errors.Is(err, ErrNotBuilt):
			result = metrics.ResultNotBuilt
		default:
			result = metrics.ResultError
		}
	}
	metrics.RecordInference(op, result, time.Since(start))
}
