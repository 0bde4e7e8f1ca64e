// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package market simulates mandi prices and derives per-crop economics.
//
// # Prices
//
// A Sampler draws one integer price per crop uniformly from the crop's
// inclusive historical range, producing an immutable PriceTable. Two
// PriceSource implementations decide how tables reach a recommendation:
//
//   - PerRequest samples a fresh table for every recommendation. Concurrent
//     requests never observe each other's prices.
//   - Shared keeps one process-wide table, regenerated at startup, at the
//     start of every recommendation and optionally on a timer. A request reads
//     whichever table was stored last, which may be another request's. This
//     mode exists for parity with the legacy service.
//
// # Economics
//
// Model.Annotate computes revenue, cost and profit for a crop and land size.
// Crops missing from the tables use the catalog defaults, so annotation never
// fails. Monetary totals are truncated to whole rupees.
package market
