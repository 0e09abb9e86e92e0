// ProductSense - Product Recommendation, Search and Price Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/productsense

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/productsense/internal/models"
	"github.com/tomtom215/productsense/internal/recommend"
	"github.com/tomtom215/productsense/internal/validation"
)

// Client-facing messages.
const (
	msgProductNotFound       = "Product not found."
	msgRecommendNotBuilt     = "Recommendations have not been built yet."
	msgSearchQueryRequired   = "Please provide a search query."
	msgSearchNotBuilt        = "Search index has not been built yet."
	msgPriceParamsRequired   = "Please provide all the required attributes: category, stock_count, shipping."
	msgPriceParamsInvalid    = "Invalid data type for stock_count or shipping."
	msgPricePredictorMissing = "Price predictor has not been trained yet."
)

// Recommend handles GET /recommend/{product_id}.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, msgProductNotFound, nil)
		return
	}

	cards, err := h.svc.Recommend(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, errorMessages{
			models.ErrCodeNotFound: msgProductNotFound,
			models.ErrCodeNotBuilt: msgRecommendNotBuilt,
		})
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// Search handles GET /search?q=.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	req := SearchRequest{Query: r.URL.Query().Get("q")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, msgSearchQueryRequired, verr)
		return
	}

	cards, err := h.svc.Search(r.Context(), req.Query)
	if err != nil {
		respondServiceError(w, r, err, errorMessages{
			models.ErrCodeValidation: msgSearchQueryRequired,
			models.ErrCodeNotBuilt:   msgSearchNotBuilt,
		})
		return
	}
	respondJSON(w, http.StatusOK, cards)
}

// PredictPrice handles GET /predict-price.
func (h *Handler) PredictPrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := PredictPriceRequest{
		Category:   q.Get("category"),
		StockCount: q.Get("stock_count"),
		Shipping:   q.Get("shipping"),
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		msg := msgPriceParamsInvalid
		if verr.HasTag("required") {
			msg = msgPriceParamsRequired
		}
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, msg, verr)
		return
	}

	price, err := h.svc.PredictPrice(r.Context(), recommend.PriceQuery{
		Category:   req.Category,
		StockCount: req.StockCount,
		Shipping:   req.Shipping,
	})
	if err != nil {
		respondServiceError(w, r, err, errorMessages{
			models.ErrCodeValidation: msgPriceParamsInvalid,
			models.ErrCodeNotBuilt:   msgPricePredictorMissing,
		})
		return
	}
	respondJSON(w, http.StatusOK, models.PricePrediction{PredictedPrice: price})
}
