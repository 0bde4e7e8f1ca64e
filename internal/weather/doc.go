// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package weather estimates seasonal conditions for a location.
//
// The Open-Meteo client fetches a short daily forecast and aggregates it into
// a Reading: the average of the daily max/min temperature means, the mean
// relative humidity, and the precipitation sum scaled to the sowing horizon
// and floored. Providers return errors; callers substitute Fallback.
package weather
