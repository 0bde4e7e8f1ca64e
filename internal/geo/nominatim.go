// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/metrics"
	"github.com/tomtom215/smartkisan/internal/resilience"
)

// ErrNotFound is returned when a location cannot be resolved.
var ErrNotFound = errors.New("location not found")

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Resolver resolves a district within a state to coordinates.
type Resolver interface {
	Resolve(ctx context.Context, district, state string) (Coordinates, error)
}

// nominatimPlace is one entry of the search response. Nominatim encodes
// coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient resolves locations against the OpenStreetMap Nominatim API.
type NominatimClient struct {
	client    *http.Client
	baseURL   string
	userAgent string
	country   string
	limiter   *rate.Limiter
	breaker   *resilience.Breaker[Coordinates]
	logger    zerolog.Logger
}

// NewNominatimClient creates a client from configuration.
func NewNominatimClient(cfg config.GeocoderConfig, logger zerolog.Logger) *NominatimClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &NominatimClient{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		country:   cfg.Country,
		limiter:   rate.NewLimiter(limit, 1),
		breaker: resilience.NewBreaker[Coordinates]("geocoder", cfg.Breaker, func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		}),
		logger: logger.With().Str("component", "geocoder").Logger(),
	}
}

// Resolve looks up the first match for "{district}, {state}, {country}".
// Every failure wraps ErrNotFound.
func (c *NominatimClient) Resolve(ctx context.Context, district, state string) (Coordinates, error) {
	query := c.query(district, state)
	start := time.Now()

	coords, err := c.breaker.Execute(func() (Coordinates, error) {
		return c.search(ctx, query)
	})

	switch {
	case err == nil:
		metrics.RecordCollaboratorCall("geocoder", "success", time.Since(start))
		return coords, nil
	case errors.Is(err, ErrNotFound):
		metrics.RecordCollaboratorCall("geocoder", "not_found", time.Since(start))
		c.logger.Debug().Str("query", query).Msg("No geocoding match")
		return Coordinates{}, err
	default:
		metrics.RecordCollaboratorCall("geocoder", "error", time.Since(start))
		c.logger.Warn().Err(err).Str("query", query).Msg("Geocoding request failed")
		return Coordinates{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
}

func (c *NominatimClient) query(district, state string) string {
	parts := []string{strings.TrimSpace(district), strings.TrimSpace(state)}
	if c.country != "" {
		parts = append(parts, c.country)
	}
	return strings.Join(parts, ", ")
}

func (c *NominatimClient) search(ctx context.Context, query string) (Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Coordinates{}, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	endpoint := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("failed to query nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return Coordinates{}, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(places) == 0 {
		return Coordinates{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	return parsePlace(places[0])
}

func parsePlace(p nominatimPlace) (Coordinates, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("coordinates out of range: %f,%f", lat, lon)
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}
