// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"net/http"
)

// PredictCrop handles POST /predict-crop.
func (h *Handler) PredictCrop(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, http.StatusServiceUnavailable, "Recommendation engine is not available")
		return
	}

	req, err := decodePredictRequest(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		h.respondRecommendError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}
