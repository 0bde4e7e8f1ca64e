// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package metrics defines the Prometheus collectors exported by SmartKisan.
//
// All collectors are registered on the default registry through promauto and
// served by promhttp at GET /metrics.
//
// # Metric Families
//
//   - api_*: inbound request counts, latency and in-flight gauge
//   - recommendation_*: outcomes, latency, backfilled slots
//   - collaborator_*: geocoder, weather and classifier call outcomes and latency
//   - weather_fallbacks_total: seasonal weather absorbed into the safe default
//   - geocode_cache_*: coordinate cache hits and misses per tier
//   - market_price_tables_generated_total: price sampler activity
//   - circuit_breaker_*: breaker state, requests and transitions
//
// # Usage
//
//	start := time.Now()
//	resp, err := engine.Recommend(ctx, req)
//	metrics.RecordRecommendation(outcome, backfilled, time.Since(start))
package metrics
