// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/productsense/internal/database"
	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend/algorithms"
	"github.com/tomtom215/productsense/internal/recommend/storage"
)

func TestService_VegetableCatalog(t *testing.T) {
	svc, _, _ := built(t, database.VegetableFixture())
	ctx := context.Background()

	recs, err := svc.Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("Recommend() returned %d items, want 3", len(recs))
	}
	for _, r := range recs {
		if r.ID == 1 {
			t.Error("Recommend() returned the query product")
		}
	}

	hits, err := svc.Search(ctx, "vegetable")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) < 1 {
		t.Error("Search() returned no items")
	}

	price, err := svc.PredictPrice(ctx, PriceQuery{Category: "Vegetables", StockCount: "10", Shipping: "10"})
	if err != nil {
		t.Fatalf("PredictPrice() error = %v", err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		t.Errorf("PredictPrice() = %f, want finite", price)
	}
}

func TestService_RecommendLimits(t *testing.T) {
	svc, _, _ := built(t, database.DemoFixture())
	ctx := context.Background()

	for id := int64(1); id <= 9; id++ {
		recs, err := svc.Recommend(ctx, id)
		if err != nil {
			t.Fatalf("Recommend(%d) error = %v", id, err)
		}
		if len(recs) != 3 {
			t.Errorf("Recommend(%d) returned %d items, want 3", id, len(recs))
		}
		for _, r := range recs {
			if r.ID == id {
				t.Errorf("Recommend(%d) included itself", id)
			}
		}
	}

	small, _, _ := built(t, &database.Fixture{
		Categories: database.DemoFixture().Categories,
		Products:   database.DemoFixture().Products[:2],
	})
	recs, err := small.Recommend(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].ID != 2 {
		t.Errorf("two-product Recommend() = %v, want [2]", cardIDs(recs))
	}
}

func TestService_RecommendTiesKeepSnapshotOrder(t *testing.T) {
	// Toned Milk shares no terms with Carrot, Broccoli or Banana, so all
	// four scores for it tie at zero.
	f := database.DemoFixture()
	f.Products = []models.Product{f.Products[7], f.Products[0], f.Products[1], f.Products[5]}
	svc, _, _ := built(t, f)

	recs, err := svc.Recommend(context.Background(), 8)
	if err != nil {
		t.Fatal(err)
	}
	got := cardIDs(recs)
	want := []int64{1, 2, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Recommend() = %v, want %v", got, want)
		}
	}
}

func TestService_SearchOrdering(t *testing.T) {
	svc, _, store := built(t, database.DemoFixture())
	ctx := context.Background()

	hits, err := svc.Search(ctx, "ripe mango")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(hits) != 5 {
		t.Fatalf("Search() returned %d items, want 5", len(hits))
	}
	if hits[0].ID != 5 {
		t.Errorf("top hit = %d, want 5 (Alphonso Mango)", hits[0].ID)
	}

	var art SimilarityArtifact
	if _, err := store.Load(ctx, ArtifactSimilarity, &art); err != nil {
		t.Fatal(err)
	}
	q := art.Vectorizer.Transform("ripe mango")
	prev := math.Inf(1)
	for _, h := range hits {
		score := 0.0
		if i := art.IndexOf(h.ID); i >= 0 {
			score = cosineOf(q, art, i)
		}
		if score > prev {
			t.Errorf("hits not in descending score order: %v", cardIDs(hits))
		}
		prev = score
	}
}

func cosineOf(q algorithms.SparseVector, art SimilarityArtifact, i int) float64 {
	return algorithms.CosineSimilarity(q, art.DocTerm[i])
}

func TestService_NotBuilt(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), newFakeCatalog(database.DemoFixture()), nil)
	ctx := context.Background()

	_, err := svc.Recommend(ctx, 1)
	assertNotBuilt(t, err, ArtifactSimilarity)

	_, err = svc.Search(ctx, "carrot")
	assertNotBuilt(t, err, ArtifactSimilarity)

	_, err = svc.PredictPrice(ctx, PriceQuery{Category: "Vegetables", StockCount: "1", Shipping: "1"})
	assertNotBuilt(t, err, ArtifactPriceModel)

	missing, err := svc.Missing(ctx)
	if err != nil || len(missing) != 2 {
		t.Errorf("Missing() = %v, %v; want both artifacts", missing, err)
	}
}

func assertNotBuilt(t *testing.T, err error, artifact string) {
	t.Helper()
	var nb *NotBuiltError
	if !errors.As(err, &nb) || !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("error = %v, want NotBuiltError", err)
	}
	if nb.Artifact != artifact {
		t.Errorf("Artifact = %q, want %q", nb.Artifact, artifact)
	}
}

func TestService_RecommendUnknownProduct(t *testing.T) {
	svc, _, _ := built(t, database.VegetableFixture())
	_, err := svc.Recommend(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestService_LiveRefetch(t *testing.T) {
	svc, cat, _ := built(t, database.VegetableFixture())
	ctx := context.Background()

	cat.mu.Lock()
	newPrice := 99.0
	cat.products[1].Price = &newPrice
	cat.products[1].Title = "Purple Broccoli"
	cat.mu.Unlock()

	recs, err := svc.Recommend(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range recs {
		if r.ID == 2 && (r.Title != "Purple Broccoli" || *r.Price != 99) {
			t.Errorf("card not refreshed: %+v", r)
		}
	}

	cat.remove(3)
	recs, err = svc.Recommend(ctx, 1)
	if err != nil {
		t.Fatalf("Recommend() after delete error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("Recommend() after delete = %v, want 2 items", cardIDs(recs))
	}

	cat.mu.Lock()
	cat.getErr = errors.New("connection reset")
	cat.mu.Unlock()
	if _, err := svc.Search(ctx, "carrot"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Search() with failing catalog error = %v, want wrapped fetch error", err)
	}
}

func TestService_SearchValidation(t *testing.T) {
	svc, _, _ := built(t, database.VegetableFixture())
	for _, q := range []string{"", "   "} {
		if _, err := svc.Search(context.Background(), q); !errors.Is(err, ErrValidation) {
			t.Errorf("Search(%q) error = %v, want ErrValidation", q, err)
		}
	}
}

func TestPriceQuery_Parse(t *testing.T) {
	tests := []struct {
		name    string
		query   PriceQuery
		wantErr bool
		field   string
		want    PriceFeatures
	}{
		{"valid", PriceQuery{"Fruits", "10", "2.5"}, false, "", PriceFeatures{"Fruits", 10, 2.5}},
		{"trims numbers", PriceQuery{"Fruits", " 3 ", " 4 "}, false, "", PriceFeatures{"Fruits", 3, 4}},
		{"missing category", PriceQuery{"", "10", "1"}, true, "category", PriceFeatures{}},
		{"missing all", PriceQuery{}, true, "category,stock_count,shipping", PriceFeatures{}},
		{"fractional stock", PriceQuery{"Fruits", "1.5", "1"}, true, "stock_count", PriceFeatures{}},
		{"text shipping", PriceQuery{"Fruits", "1", "free"}, true, "shipping", PriceFeatures{}},
		{"nan shipping", PriceQuery{"Fruits", "1", "NaN"}, true, "shipping", PriceFeatures{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query.Parse()
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("Parse() error = %v, want ValidationError", err)
				}
				if ve.Field != tt.field {
					t.Errorf("Field = %q, want %q", ve.Field, tt.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestService_PredictPrice(t *testing.T) {
	svc, _, _ := built(t, database.DemoFixture())
	ctx := context.Background()

	q := PriceQuery{Category: "Fruits", StockCount: "10", Shipping: "10"}
	a, err := svc.PredictPrice(ctx, q)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := svc.PredictPrice(ctx, q)
	if a != b {
		t.Errorf("PredictPrice() not deterministic: %f vs %f", a, b)
	}

	unseen, err := svc.PredictPrice(ctx, PriceQuery{Category: "Spaceships", StockCount: "10", Shipping: "10"})
	if err != nil {
		t.Fatalf("PredictPrice(unseen) error = %v", err)
	}
	if math.IsNaN(unseen) || math.IsInf(unseen, 0) {
		t.Errorf("PredictPrice(unseen) = %f, want finite", unseen)
	}
}

func TestService_UnsupportedSchema(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	art := SimilarityArtifact{SchemaVersion: SchemaVersion + 1, BuiltAt: time.Now()}
	if _, err := store.Save(ctx, ArtifactSimilarity, &art, storage.Metadata{}); err != nil {
		t.Fatal(err)
	}

	svc := NewService(store, newFakeCatalog(database.VegetableFixture()), nil)
	_, err := svc.Search(ctx, "carrot")
	if !errors.Is(err, ErrUnsupportedSchema) {
		t.Errorf("error = %v, want ErrUnsupportedSchema", err)
	}
	if errors.Is(err, ErrNotBuilt) {
		t.Error("unsupported schema reported as not built")
	}
}

func TestService_CorruptArtifact(t *testing.T) {
	svc, _, store := built(t, database.VegetableFixture())
	store.Corrupt(ArtifactPriceModel, []byte("not an artifact"))

	_, err := svc.PredictPrice(context.Background(), PriceQuery{Category: "Vegetables", StockCount: "1", Shipping: "1"})
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("error = %v, want storage.ErrCorrupt", err)
	}
}

func TestService_Artifacts(t *testing.T) {
	svc, _, _ := built(t, database.VegetableFixture())
	statuses := svc.Artifacts(context.Background())
	if len(statuses) != 2 {
		t.Fatalf("Artifacts() returned %d entries", len(statuses))
	}
	for _, st := range statuses {
		if !st.Built || st.Metadata == nil || st.Metadata.Rows != 4 {
			t.Errorf("status %+v, want built with 4 rows", st)
		}
	}
}

func TestImageURL(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		name  string
		media string
		image *string
		want  *string
	}{
		{"nil", "/media/", nil, nil},
		{"empty", "/media/", str(""), nil},
		{"relative", "/media/", str("products/carrot.jpg"), str("/media/products/carrot.jpg")},
		{"base without slash", "https://cdn.example.com/m", str("a.jpg"), str("https://cdn.example.com/m/a.jpg")},
		{"rooted passes through", "/media/", str("/static/a.jpg"), str("/static/a.jpg")},
		{"absolute passes through", "/media/", str("https://img.example.com/a.jpg"), str("https://img.example.com/a.jpg")},
		{"no media url", "", str("products/a.jpg"), str("products/a.jpg")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageURL(tt.media, tt.image)
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil || *got != *tt.want:
				t.Errorf("ImageURL() = %v, want %v", deref(got), deref(tt.want))
			}
		})
	}
}

func TestService_CardResolvesImage(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), nil, nil)
	img := "products/carrot.jpg"
	card := svc.Card(&models.Product{ID: 1, Title: "Carrot", Image: &img})
	if card.ProductImage == nil || *card.ProductImage != "/media/products/carrot.jpg" {
		t.Errorf("ProductImage = %v, want /media/products/carrot.jpg", deref(card.ProductImage))
	}
	if img != "products/carrot.jpg" {
		t.Errorf("stored image mutated to %q", img)
	}
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
