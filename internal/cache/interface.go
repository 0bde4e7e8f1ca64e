// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package cache

// Store is a key/value cache with implementation-defined expiry.
//
// Get returns the value and true if present and not expired. Set stores a
// value with the store's default TTL. Stores backed by I/O log their own
// failures and treat them as misses.
type Store[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Delete(key string)
	Len() int
}
