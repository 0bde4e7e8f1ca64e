// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package market

import (
	"context"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/catalog"
	"github.com/tomtom215/smartkisan/internal/metrics"
)

// PriceTable is an immutable set of sampled prices per quintal.
type PriceTable struct {
	prices      map[string]int
	generatedAt time.Time
}

// NewPriceTable builds a table from explicit prices. Keys are lowercased.
func NewPriceTable(prices map[string]int, generatedAt time.Time) PriceTable {
	copied := make(map[string]int, len(prices))
	for crop, p := range prices {
		copied[strings.ToLower(crop)] = p
	}
	return PriceTable{prices: copied, generatedAt: generatedAt}
}

// Price returns the sampled price for crop.
func (t PriceTable) Price(crop string) (int, bool) {
	p, ok := t.prices[strings.ToLower(crop)]
	return p, ok
}

// GeneratedAt returns when the table was sampled.
func (t PriceTable) GeneratedAt() time.Time {
	return t.generatedAt
}

// Len returns the number of priced crops.
func (t PriceTable) Len() int {
	return len(t.prices)
}

// Snapshot returns a copy of the prices.
func (t PriceTable) Snapshot() map[string]int {
	out := make(map[string]int, len(t.prices))
	for crop, p := range t.prices {
		out[crop] = p
	}
	return out
}

// PriceSource hands the engine the price table for one recommendation.
type PriceSource interface {
	Prices(ctx context.Context) PriceTable
}

// Sampler draws price tables from the catalog's historical ranges.
type Sampler struct {
	mu     sync.Mutex
	rng    *rand.Rand
	ranges map[string]catalog.PriceRange
	crops  []string
	now    func() time.Time
}

// NewSampler creates a sampler. A zero seed seeds from the clock.
func NewSampler(cat *catalog.Catalog, seed uint64) *Sampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// Iterate crops in a fixed order so a seeded sampler is reproducible.
	crops := make([]string, 0, len(cat.PriceRanges))
	for crop := range cat.PriceRanges {
		crops = append(crops, crop)
	}
	sort.Strings(crops)

	return &Sampler{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		ranges: cat.PriceRanges,
		crops:  crops,
		now:    time.Now,
	}
}

// Sample draws one price per crop, uniformly within [low, high].
func (s *Sampler) Sample() PriceTable {
	s.mu.Lock()
	defer s.mu.Unlock()

	prices := make(map[string]int, len(s.crops))
	for _, crop := range s.crops {
		r := s.ranges[crop]
		prices[crop] = r.Low + s.rng.IntN(r.High-r.Low+1)
	}
	return PriceTable{prices: prices, generatedAt: s.now()}
}

// PerRequest samples a fresh table for every recommendation.
type PerRequest struct {
	sampler *Sampler
}

// NewPerRequest creates a request-scoped price source.
func NewPerRequest(sampler *Sampler) *PerRequest {
	return &PerRequest{sampler: sampler}
}

// Prices samples a new table.
func (p *PerRequest) Prices(_ context.Context) PriceTable {
	metrics.RecordPriceTable("request")
	return p.sampler.Sample()
}

// Shared is the process-wide price table.
type Shared struct {
	sampler *Sampler
	current atomic.Pointer[PriceTable]
	logger  zerolog.Logger
}

// NewShared creates a shared price source and samples the startup table.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewShared(sampler *Sampler, logger zerolog.Logger) *Shared {
	s := &Shared{sampler: sampler, logger: logger}
	s.Regenerate("startup")
	return s
}

// Regenerate samples and stores a new process-wide table.
func (s *Shared) Regenerate(reason string) PriceTable {
	table := s.sampler.Sample()
	s.current.Store(&table)
	metrics.RecordPriceTable("shared")
	s.logger.Debug().
		Str("reason", reason).
		Int("crops", table.Len()).
		Interface("prices", table.prices).
		Msg("Daily mandi prices updated")
	return table
}

// Current returns the most recently stored table.
func (s *Shared) Current() PriceTable {
	return *s.current.Load()
}

// Prices regenerates the shared table and then reads whichever table is
// current, which may already be a concurrent request's.
func (s *Shared) Prices(_ context.Context) PriceTable {
	s.Regenerate("request")
	return s.Current()
}
