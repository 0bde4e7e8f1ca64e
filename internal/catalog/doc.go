// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package catalog holds the static agronomic and market tables used by the
// recommendation engine.
//
// # Tables
//
//   - Months: the twelve canonical month names in calendar order
//   - MonthSeasons: month to cropping season (kharif, rabi, zaid)
//   - CropSeasons: crop to the seasons it can be sown in
//   - PriceRanges: historical mandi price range per quintal
//   - Yields: quintals per acre
//   - Costs: cultivation cost per acre
//   - Defaults: economics for crops missing from the market tables
//
// The tables cover different crop sets. A classifier label missing from
// CropSeasons never matches a season; a label missing from the market tables
// uses Defaults.
//
// # Loading
//
// Default returns the built-in tables. Load layers an optional YAML file on
// top of them with koanf, so a file only needs to list the crops it changes:
//
//	crop_seasons:
//	  wheat: [rabi]
//	price_ranges:
//	  wheat: {low: 2275, high: 2700}
//
// A Catalog is immutable once loaded. Lookups are case-insensitive.
package catalog
