// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package geo

import (
	"context"
	"strings"

	"github.com/tomtom215/smartkisan/internal/cache"
	"github.com/tomtom215/smartkisan/internal/metrics"
)

// CachedResolver fronts a Resolver with a memory tier and an optional
// persistent tier. Persistent hits are promoted into memory.
type CachedResolver struct {
	next       Resolver
	memory     cache.Store[Coordinates]
	persistent cache.Store[Coordinates]
}

// NewCachedResolver wraps next. persistent may be nil.
func NewCachedResolver(next Resolver, memory, persistent cache.Store[Coordinates]) *CachedResolver {
	return &CachedResolver{next: next, memory: memory, persistent: persistent}
}

// Resolve serves from cache when possible, otherwise delegates and caches
// successful lookups.
func (r *CachedResolver) Resolve(ctx context.Context, district, state string) (Coordinates, error) {
	key := cacheKey(district, state)

	if coords, ok := r.memory.Get(key); ok {
		metrics.RecordGeocodeCacheHit("memory")
		return coords, nil
	}
	if r.persistent != nil {
		if coords, ok := r.persistent.Get(key); ok {
			metrics.RecordGeocodeCacheHit("persistent")
			r.memory.Set(key, coords)
			return coords, nil
		}
	}
	metrics.RecordGeocodeCacheMiss()

	coords, err := r.next.Resolve(ctx, district, state)
	if err != nil {
		return Coordinates{}, err
	}

	r.memory.Set(key, coords)
	if r.persistent != nil {
		r.persistent.Set(key, coords)
	}
	return coords, nil
}

// cacheKey ignores case and surrounding whitespace.
func cacheKey(district, state string) string {
	return strings.ToLower(strings.TrimSpace(district)) + "|" + strings.ToLower(strings.TrimSpace(state))
}
