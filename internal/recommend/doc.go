// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package recommend turns soil readings, a location and a sowing month into a
// ranked, season-aware and economically annotated crop shortlist.
//
// # Pipeline
//
// Engine.Recommend runs, in order:
//
//  1. validate the sowing month against the forecast window
//  2. resolve district/state to coordinates
//  3. fetch seasonal weather, substituting weather.Fallback on failure
//  4. classify the feature vector
//  5. rank: season matches first, then backfill from non-matches
//  6. attach economics from a price table
//
// Rank is a pure function and holds the selection policy. It always returns
// exactly k entries when the classifier knows at least k labels.
//
// # Errors
//
// Month rejections surface as *season.MonthError. An unresolvable location
// wraps ErrLocationUnresolved. Everything else is a *PredictionError carrying
// the underlying message. Weather failures are absorbed.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg.Recommend, recommend.Dependencies{
//	    Calendar:   calendar,
//	    Economics:  market.NewModel(cat),
//	    Prices:     market.NewPerRequest(sampler),
//	    Geocoder:   resolver,
//	    Weather:    provider,
//	    Classifier: model,
//	}, logger)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{...})
//
// The engine is safe for concurrent use.
package recommend
