// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/smartkisan/internal/cache"
	"github.com/tomtom215/smartkisan/internal/classifier"
	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/geo"
	"github.com/tomtom215/smartkisan/internal/logging"
	"github.com/tomtom215/smartkisan/internal/market"
	"github.com/tomtom215/smartkisan/internal/metrics"
)

// accuracyCheckTimeout bounds the startup evaluation so a remote classifier
// cannot stall boot.
const accuracyCheckTimeout = 2 * time.Minute

// initGeocoder builds the Nominatim client behind an in-memory LRU and, when
// cache_dir is set, a persistent BadgerDB tier. The returned func closes the
// persistent tier.
func initGeocoder(cfg config.GeocoderConfig) (geo.Resolver, func(), error) {
	client := geo.NewNominatimClient(cfg, logging.WithComponent("geocoder"))
	memory := cache.NewLRU[geo.Coordinates](cfg.CacheSize, cfg.CacheTTL)

	if cfg.CacheDir == "" {
		logging.Info().Int("cache_size", cfg.CacheSize).Msg("Geocoder cache: memory only")
		return geo.NewCachedResolver(client, memory, nil), func() {}, nil
	}

	store, err := cache.OpenBadgerStore[geo.Coordinates](cfg.CacheDir, "geocode:", cfg.CacheTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("open geocode cache: %w", err)
	}
	logging.Info().
		Str("dir", cfg.CacheDir).
		Int("entries", store.Len()).
		Msg("Geocoder cache: memory and BadgerDB")

	closeStore := func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing geocode cache")
		}
	}
	return geo.NewCachedResolver(client, memory, store), closeStore, nil
}

// initPriceSource returns the configured price source. shared is non-nil in
// shared mode so the refresher can be supervised.
func initPriceSource(cfg config.MarketConfig, sampler *market.Sampler) (market.PriceSource, *market.Shared) {
	if cfg.PriceMode == "shared" {
		shared := market.NewShared(sampler, logging.WithComponent("market"))
		logging.Info().Msg("Mandi prices: one shared table, regenerated per request")
		return shared, shared
	}
	logging.Info().Msg("Mandi prices: sampled per request")
	return market.NewPerRequest(sampler), nil
}

// checkModelAccuracy evaluates the classifier against a labelled dataset.
// Failures are logged and never stop startup.
func checkModelAccuracy(ctx context.Context, c classifier.Classifier, datasetPath string) {
	if datasetPath == "" {
		logging.Debug().Msg("Model accuracy check skipped (no dataset configured)")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, accuracyCheckTimeout)
	defer cancel()

	report, err := classifier.EvaluateFile(ctx, c, datasetPath)
	if err != nil {
		logging.Warn().Err(err).Str("dataset", datasetPath).Msg("Could not calculate model accuracy")
		return
	}

	metrics.SetClassifierAccuracy(report.Accuracy)
	logging.Info().
		Int("samples", report.Samples).
		Int("correct", report.Correct).
		Float64("accuracy_pct", report.Accuracy).
		Msg("Model accuracy")
}
