// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/catalog"
	"github.com/tomtom215/smartkisan/internal/classifier"
	"github.com/tomtom215/smartkisan/internal/market"
	"github.com/tomtom215/smartkisan/internal/recommend"
	"github.com/tomtom215/smartkisan/internal/season"
)

// Recommender produces crop recommendations. *recommend.Engine satisfies it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Stats() recommend.Stats
}

// currentPrices is implemented by price sources that hold a table between
// requests, such as *market.Shared.
type currentPrices interface {
	Current() market.PriceTable
}

// HandlerDeps are the collaborators served by the HTTP handlers.
type HandlerDeps struct {
	Engine     Recommender
	Catalog    *catalog.Catalog
	Calendar   *season.Calendar
	Economics  *market.Model
	Prices     market.PriceSource
	Classifier classifier.Classifier
}

// Handler serves the API endpoints.
type Handler struct {
	engine     Recommender
	catalog    *catalog.Catalog
	calendar   *season.Calendar
	economics  *market.Model
	prices     market.PriceSource
	classifier classifier.Classifier

	now       func() time.Time
	startTime time.Time
	logger    zerolog.Logger
}

// NewHandler creates a handler. Missing collaborators make the readiness
// probe fail rather than the constructor.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(deps HandlerDeps, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:     deps.Engine,
		catalog:    deps.Catalog,
		calendar:   deps.Calendar,
		economics:  deps.Economics,
		prices:     deps.Prices,
		classifier: deps.Classifier,
		now:        time.Now,
		startTime:  time.Now(),
		logger:     logger,
	}
}

// SetClock replaces the time source used for the sowing window in the
// catalog response.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}
