// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package geo resolves a (district, state) pair to coordinates.

The Nominatim client queries the OpenStreetMap search API with the free-text
query "{district}, {state}, {country}" and takes the first hit. Outbound calls
are limited to the configured rate (Nominatim's usage policy allows one request
per second) and guarded by a circuit breaker.

Resolved coordinates are cached in two tiers: an in-memory LRU and, when a
cache directory is configured, a BadgerDB store that survives restarts.
Unresolvable locations are not cached.

# Errors

Every failure surfaces as an error wrapping ErrNotFound. Callers map it to a
single "Invalid district/state" response; transport details stay in the logs.
*/
package geo
