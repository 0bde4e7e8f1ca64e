// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/smartkisan/internal/catalog"
)

// CatalogResponse is the GET /api/v1/catalog body. Frontends use it to fill
// month and crop dropdowns.
type CatalogResponse struct {
	Status        string                        `json:"status"`
	Months        []string                      `json:"months"`
	AllowedMonths []string                      `json:"allowed_months"`
	MonthSeasons  map[string]string             `json:"month_seasons"`
	CropSeasons   map[string][]string           `json:"crop_seasons"`
	PriceRanges   map[string]catalog.PriceRange `json:"price_ranges"`

	// CurrentPrices is the shared mandi table, when prices are shared.
	CurrentPrices map[string]int `json:"current_prices,omitempty"`
	PricesAsOf    *time.Time     `json:"prices_as_of,omitempty"`
}

// Catalog handles GET /api/v1/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, _ *http.Request) {
	if h.catalog == nil || h.calendar == nil {
		respondError(w, http.StatusServiceUnavailable, "Catalog is not loaded")
		return
	}

	resp := CatalogResponse{
		Status:        statusSuccess,
		Months:        h.catalog.Months,
		AllowedMonths: h.calendar.AllowedMonths(h.now()),
		MonthSeasons:  h.catalog.MonthSeasons,
		CropSeasons:   h.catalog.CropSeasons,
		PriceRanges:   h.catalog.PriceRanges,
	}
	if h.economics != nil {
		resp.PriceRanges = h.economics.Ranges()
	}

	if shared, ok := h.prices.(currentPrices); ok {
		table := shared.Current()
		asOf := table.GeneratedAt()
		resp.CurrentPrices = table.Snapshot()
		resp.PricesAsOf = &asOf
	}

	respondJSON(w, http.StatusOK, resp)
}
