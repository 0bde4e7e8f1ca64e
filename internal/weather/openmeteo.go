// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/geo"
	"github.com/tomtom215/smartkisan/internal/metrics"
	"github.com/tomtom215/smartkisan/internal/resilience"
)

const dailyVariables = "temperature_2m_max,temperature_2m_min,precipitation_sum,relative_humidity_2m_mean"

// forecastResponse is the subset of the Open-Meteo forecast we read.
// Series entries may be null for days the model has no data.
type forecastResponse struct {
	Daily *struct {
		TemperatureMax []*float64 `json:"temperature_2m_max"`
		TemperatureMin []*float64 `json:"temperature_2m_min"`
		Precipitation  []*float64 `json:"precipitation_sum"`
		Humidity       []*float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

// OpenMeteoClient implements Provider against the Open-Meteo forecast API.
type OpenMeteoClient struct {
	client          *http.Client
	baseURL         string
	forecastDays    int
	rainfallScale   float64
	rainfallFloor   float64
	defaultHumidity float64
	breaker         *resilience.Breaker[Reading]
	logger          zerolog.Logger
}

// NewOpenMeteoClient creates a client from configuration.
func NewOpenMeteoClient(cfg config.WeatherConfig, logger zerolog.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		client:          &http.Client{Timeout: cfg.Timeout},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		forecastDays:    cfg.ForecastDays,
		rainfallScale:   cfg.RainfallScale,
		rainfallFloor:   cfg.RainfallFloor,
		defaultHumidity: cfg.DefaultHumidity,
		breaker:         resilience.NewBreaker[Reading]("weather", cfg.Breaker, nil),
		logger:          logger.With().Str("component", "weather").Logger(),
	}
}

// Seasonal fetches the forecast for coords and aggregates it.
func (c *OpenMeteoClient) Seasonal(ctx context.Context, coords geo.Coordinates) (Reading, error) {
	start := time.Now()
	reading, err := c.breaker.Execute(func() (Reading, error) {
		return c.fetch(ctx, coords)
	})
	if err != nil {
		metrics.RecordCollaboratorCall("weather", "error", time.Since(start))
		c.logger.Warn().Err(err).
			Float64("lat", coords.Lat).
			Float64("lon", coords.Lon).
			Msg("Weather forecast unavailable")
		return Reading{}, err
	}
	metrics.RecordCollaboratorCall("weather", "success", time.Since(start))
	return reading, nil
}

func (c *OpenMeteoClient) fetch(ctx context.Context, coords geo.Coordinates) (Reading, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	params.Set("daily", dailyVariables)
	params.Set("forecast_days", strconv.Itoa(c.forecastDays))
	params.Set("timezone", "auto")
	endpoint := c.baseURL + "/v1/forecast?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Reading{}, fmt.Errorf("failed to query open-meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reading{}, fmt.Errorf("open-meteo returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return Reading{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return c.aggregate(&forecast)
}

// aggregate reduces the daily series to a seasonal Reading.
func (c *OpenMeteoClient) aggregate(f *forecastResponse) (Reading, error) {
	if f.Daily == nil {
		return Reading{}, fmt.Errorf("%w: missing daily block", ErrMalformed)
	}

	maxMean, ok := mean(f.Daily.TemperatureMax)
	if !ok {
		return Reading{}, fmt.Errorf("%w: no temperature_2m_max values", ErrMalformed)
	}
	minMean, ok := mean(f.Daily.TemperatureMin)
	if !ok {
		return Reading{}, fmt.Errorf("%w: no temperature_2m_min values", ErrMalformed)
	}
	rainSum, ok := sum(f.Daily.Precipitation)
	if !ok {
		return Reading{}, fmt.Errorf("%w: no precipitation_sum values", ErrMalformed)
	}

	humidity, ok := mean(f.Daily.Humidity)
	if !ok {
		humidity = c.defaultHumidity
	}

	rainfall := rainSum * c.rainfallScale
	if rainfall < c.rainfallFloor {
		rainfall = c.rainfallFloor
	}

	return Reading{
		Temperature: round2((maxMean + minMean) / 2),
		Humidity:    round2(humidity),
		Rainfall:    round2(rainfall),
	}, nil
}

// mean skips null entries and reports false when nothing remains.
func mean(series []*float64) (float64, bool) {
	total, n := 0.0, 0
	for _, v := range series {
		if v != nil {
			total += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

func sum(series []*float64) (float64, bool) {
	total, n := 0.0, 0
	for _, v := range series {
		if v != nil {
			total += *v
			n++
		}
	}
	return total, n > 0
}
