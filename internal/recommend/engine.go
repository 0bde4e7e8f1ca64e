// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/classifier"
	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/geo"
	"github.com/tomtom215/smartkisan/internal/logging"
	"github.com/tomtom215/smartkisan/internal/market"
	"github.com/tomtom215/smartkisan/internal/metrics"
	"github.com/tomtom215/smartkisan/internal/season"
	"github.com/tomtom215/smartkisan/internal/weather"
)

// Dependencies are the collaborators the engine composes.
type Dependencies struct {
	Calendar   *season.Calendar
	Economics  *market.Model
	Prices     market.PriceSource
	Geocoder   geo.Resolver
	Weather    weather.Provider
	Classifier classifier.Classifier
}

func (d Dependencies) validate() error {
	switch {
	case d.Calendar == nil:
		return errors.New("calendar is required")
	case d.Economics == nil:
		return errors.New("economics model is required")
	case d.Prices == nil:
		return errors.New("price source is required")
	case d.Geocoder == nil:
		return errors.New("geocoder is required")
	case d.Weather == nil:
		return errors.New("weather provider is required")
	case d.Classifier == nil:
		return errors.New("classifier is required")
	}
	return nil
}

// Engine produces crop recommendations. It is safe for concurrent use.
type Engine struct {
	deps   Dependencies
	topK   int
	now    func() time.Time
	logger zerolog.Logger

	requestCount     atomic.Int64
	errorCount       atomic.Int64
	backfilledSlots  atomic.Int64
	weatherFallbacks atomic.Int64
}

// NewEngine creates an engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg config.RecommendConfig, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 3
	}

	return &Engine{
		deps:   deps,
		topK:   topK,
		now:    time.Now,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetClock replaces the wall clock used for sowing-window checks.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Stats returns cumulative counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Requests:         e.requestCount.Load(),
		Failures:         e.errorCount.Load(),
		BackfilledSlots:  e.backfilledSlots.Load(),
		WeatherFallbacks: e.weatherFallbacks.Load(),
	}
}

// Recommend runs the full pipeline for one request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	logger := e.createRequestLogger(ctx, req)
	logger.Debug().Msg("processing recommendation request")

	resp, backfilled, err := e.run(ctx, req, logger)
	outcome := outcomeOf(err)
	metrics.RecordRecommendation(outcome, backfilled, time.Since(start))

	if err != nil {
		e.errorCount.Add(1)
		logger.Warn().Err(err).Str("outcome", outcome).Msg("recommendation failed")
		return nil, err
	}

	e.backfilledSlots.Add(int64(backfilled))
	logger.Info().
		Str("season", resp.SeasonDetected).
		Str("top", resp.Top3[0].Crop).
		Int("backfilled", backfilled).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(ctx context.Context, req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("district", req.District).
		Str("state", req.State).
		Str("sowing_month", req.SowingMonth).
		Logger()
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) run(ctx context.Context, req Request, logger zerolog.Logger) (*Response, int, error) {
	month, err := e.deps.Calendar.ValidateSowingMonth(req.SowingMonth, e.now())
	if err != nil {
		return nil, 0, err
	}
	seasonTag, err := e.deps.Calendar.SeasonOf(month)
	if err != nil {
		return nil, 0, &PredictionError{Err: err}
	}

	district := strings.TrimSpace(req.District)
	state := strings.TrimSpace(req.State)
	coords, err := e.deps.Geocoder.Resolve(ctx, district, state)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			return nil, 0, fmt.Errorf("%w: %w", ErrLocationUnresolved, err)
		}
		return nil, 0, &PredictionError{Err: err}
	}

	reading := e.seasonalWeather(ctx, coords, logger)

	preds, err := e.deps.Classifier.Classify(ctx, classifier.Features{
		N:           req.N,
		P:           req.P,
		K:           req.K,
		Temperature: reading.Temperature,
		Humidity:    reading.Humidity,
		PH:          req.PH,
		Rainfall:    reading.Rainfall,
	})
	if err != nil {
		return nil, 0, &PredictionError{Err: err}
	}

	ranked, backfilled, err := Rank(preds, seasonTag, e.deps.Calendar.Fits, e.topK)
	if err != nil {
		return nil, 0, &PredictionError{Err: err}
	}

	prices := e.deps.Prices.Prices(ctx)
	entries := make([]Entry, len(ranked))
	for i, r := range ranked {
		entries[i] = e.buildEntry(r, req.LandSize, prices)
	}

	return &Response{
		Status:         "success",
		LocationUsed:   district + ", " + state,
		SowingMonth:    month,
		SeasonDetected: strings.ToUpper(seasonTag),
		WeatherUsed:    reading,
		Top3:           entries,
	}, backfilled, nil
}

// seasonalWeather never fails; provider errors yield weather.Fallback.
func (e *Engine) seasonalWeather(ctx context.Context, coords geo.Coordinates, logger zerolog.Logger) weather.Reading {
	reading, err := e.deps.Weather.Seasonal(ctx, coords)
	if err != nil {
		e.weatherFallbacks.Add(1)
		metrics.RecordWeatherFallback()
		logger.Warn().Err(err).Msg("using fallback weather")
		return weather.Fallback
	}
	return reading
}

func (e *Engine) buildEntry(r Ranked, landSize float64, prices market.PriceTable) Entry {
	econ := e.deps.Economics.Annotate(r.Label, landSize, prices)
	return Entry{
		Crop:            r.Label,
		Confidence:      math.Round(r.Probability*100*100) / 100,
		SeasonMatch:     r.SeasonMatch,
		PricePerQuintal: econ.PricePerQuintal,
		YieldPerAcre:    econ.YieldPerAcre,
		TotalRevenue:    econ.TotalRevenue,
		TotalCost:       econ.TotalCost,
		NetProfit:       econ.NetProfit,
		TotalProfit:     econ.NetProfit,
	}
}

// outcomeOf labels an error for the recommendations_total metric.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, season.ErrInvalidMonth):
		return "invalid_month"
	case errors.Is(err, season.ErrWindowExceeded):
		return "window_exceeded"
	case errors.Is(err, ErrLocationUnresolved):
		return "location_unresolved"
	default:
		return "error"
	}
}
