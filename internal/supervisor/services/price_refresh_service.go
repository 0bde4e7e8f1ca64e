// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/market"
)

// defaultRefreshInterval matches the daily mandi price update.
const defaultRefreshInterval = 24 * time.Hour

// PriceRegenerator resamples a process-wide price table. *market.Shared
// satisfies it.
type PriceRegenerator interface {
	Regenerate(reason string) market.PriceTable
}

// PriceRefreshService periodically resamples the shared price table.
type PriceRefreshService struct {
	prices   PriceRegenerator
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewPriceRefreshService creates the refresher. A non-positive interval
// means daily.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPriceRefreshService(prices PriceRegenerator, interval time.Duration, logger zerolog.Logger) *PriceRefreshService {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &PriceRefreshService{
		prices:   prices,
		interval: interval,
		logger:   logger.With().Str("service", "price-refresh").Logger(),
		name:     "price-refresh",
	}
}

// Serve implements suture.Service.
func (s *PriceRefreshService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("price refresh service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("price refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			table := s.prices.Regenerate("refresh")
			s.logger.Info().
				Int("crops", table.Len()).
				Time("generated_at", table.GeneratedAt()).
				Msg("mandi prices refreshed")
		}
	}
}

// String names the service in supervisor logs.
func (s *PriceRefreshService) String() string {
	return s.name
}
