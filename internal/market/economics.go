// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package market

import (
	"math"
	"strings"

	"github.com/tomtom215/smartkisan/internal/catalog"
)

// Economics is the profitability estimate for one crop on one plot.
type Economics struct {
	PricePerQuintal int
	YieldPerAcre    float64
	CostPerAcre     float64
	TotalRevenue    int64
	TotalCost       int64
	NetProfit       int64
}

// Model holds the static yield and cost tables.
type Model struct {
	ranges   map[string]catalog.PriceRange
	yields   map[string]float64
	costs    map[string]float64
	defaults catalog.Defaults
}

// NewModel creates an economics model from catalog tables.
func NewModel(cat *catalog.Catalog) *Model {
	return &Model{
		ranges:   cat.PriceRanges,
		yields:   cat.Yields,
		costs:    cat.Costs,
		defaults: cat.Defaults,
	}
}

// Annotate computes economics for crop grown on landSize acres using the
// sampled prices. Missing table entries fall back to the catalog defaults.
func (m *Model) Annotate(crop string, landSize float64, prices PriceTable) Economics {
	key := strings.ToLower(crop)

	price, ok := prices.Price(key)
	if !ok {
		price = m.defaults.Price
	}
	yield, ok := m.yields[key]
	if !ok {
		yield = m.defaults.Yield
	}
	cost, ok := m.costs[key]
	if !ok {
		cost = m.defaults.Cost
	}

	totalYield := yield * landSize
	revenue := int64(math.Trunc(totalYield * float64(price)))
	totalCost := int64(math.Trunc(cost * landSize))

	return Economics{
		PricePerQuintal: price,
		YieldPerAcre:    yield,
		CostPerAcre:     cost,
		TotalRevenue:    revenue,
		TotalCost:       totalCost,
		NetProfit:       revenue - totalCost,
	}
}

// Ranges returns the historical price ranges, keyed by crop.
func (m *Model) Ranges() map[string]catalog.PriceRange {
	out := make(map[string]catalog.PriceRange, len(m.ranges))
	for crop, r := range m.ranges {
		out[crop] = r
	}
	return out
}
