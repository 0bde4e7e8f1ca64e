// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package cache provides the key/value stores used to avoid repeated
collaborator lookups.

# Stores

  - LRU: a thread-safe, in-memory least recently used cache with TTL and
    O(1) Get, Set and eviction. Expiry is lazy.
  - BadgerStore: a persistent store on BadgerDB. Values are JSON encoded and
    expire through Badger's native entry TTL, so cached geocodes survive
    restarts.

Both satisfy Store, so callers can layer them:

	memory := cache.NewLRU[geo.Coordinates](2048, 7*24*time.Hour)
	disk, err := cache.OpenBadgerStore[geo.Coordinates]("/data/geocode", "geo:", 30*24*time.Hour)

# Thread Safety

All stores are safe for concurrent use.
*/
package cache
