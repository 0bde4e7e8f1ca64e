// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package weather

import (
	"context"
	"errors"
	"math"

	"github.com/tomtom215/smartkisan/internal/geo"
)

// ErrMalformed is returned when a forecast payload lacks usable data.
var ErrMalformed = errors.New("malformed forecast")

// Reading is the seasonal aggregate handed to the classifier.
type Reading struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
}

// Fallback is used whenever a provider fails.
var Fallback = Reading{Temperature: 18.0, Humidity: 60.0, Rainfall: 150.0}

// Provider produces a seasonal reading for coordinates.
type Provider interface {
	Seasonal(ctx context.Context, coords geo.Coordinates) (Reading, error)
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
