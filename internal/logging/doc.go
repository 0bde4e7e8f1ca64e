// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package logging provides centralized zerolog-based structured logging for SmartKisan.
//
// A single global logger is configured once from main via Init and then used
// by every package, either directly or through component child loggers.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("district", "Nashik").Msg("Location resolved")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Seasonal weather unavailable, using fallback")
//
// # Components
//
// Long-lived components take a zerolog.Logger in their constructor. Build it
// with WithComponent so every line carries a "component" field:
//
//	logger := logging.WithComponent("geo")
//
// # Request Context
//
// The HTTP middleware stores a request ID in the context. Ctx(ctx) returns a
// logger that adds request_id and correlation_id fields when present.
//
// # Suture Integration
//
// The supervisor tree logs through sutureslog, which needs a *slog.Logger.
// NewSlogLogger returns one backed by the global zerolog logger.
package logging
