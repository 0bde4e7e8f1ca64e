// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package recommend

import (
	"github.com/tomtom215/smartkisan/internal/weather"
)

// Request is one farmer's recommendation query.
type Request struct {
	// Soil chemistry.
	N  float64
	P  float64
	K  float64
	PH float64

	// LandSize is the plot size in acres.
	LandSize float64

	State       string
	District    string
	SowingMonth string
}

// Entry is one crop in the shortlist. Field order is the wire order.
type Entry struct {
	Crop            string  `json:"crop"`
	Confidence      float64 `json:"confidence"` // percent, 2dp
	SeasonMatch     bool    `json:"season_match"`
	PricePerQuintal int     `json:"price_per_quintal"`
	YieldPerAcre    float64 `json:"yield_per_acre"`
	TotalRevenue    int64   `json:"total_revenue"`
	TotalCost       int64   `json:"total_cost"`
	NetProfit       int64   `json:"net_profit"`

	// TotalProfit mirrors NetProfit for older clients.
	TotalProfit int64 `json:"total_profit"`
}

// Response is a successful recommendation.
type Response struct {
	Status         string          `json:"status"`
	LocationUsed   string          `json:"location_used"`
	SowingMonth    string          `json:"sowing_month"`
	SeasonDetected string          `json:"season_detected"`
	WeatherUsed    weather.Reading `json:"weather_used"`
	Top3           []Entry         `json:"top_3"`
}

// Ranked is a label selected by Rank.
type Ranked struct {
	Label       string
	Probability float64
	SeasonMatch bool
}

// Stats are cumulative engine counters.
type Stats struct {
	Requests         int64 `json:"requests"`
	Failures         int64 `json:"failures"`
	BackfilledSlots  int64 `json:"backfilled_slots"`
	WeatherFallbacks int64 `json:"weather_fallbacks"`
}
