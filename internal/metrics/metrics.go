// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of crop recommendation requests by outcome",
		},
		[]string{"outcome"}, // success, invalid_month, window_exceeded, location_unresolved, error
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "End-to-end recommendation latency including collaborator calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	RecommendationBackfilledSlots = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_backfilled_slots",
			Help:    "Number of shortlist slots filled with out-of-season crops",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	// Collaborator Metrics
	CollaboratorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collaborator_requests_total",
			Help: "Total number of outbound collaborator calls",
		},
		[]string{"collaborator", "result"}, // result: success, not_found, error
	)

	CollaboratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "collaborator_request_duration_seconds",
			Help:    "Outbound collaborator call latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"collaborator"},
	)

	WeatherFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_fallbacks_total",
			Help: "Total number of recommendations served with the default seasonal weather",
		},
	)

	// Geocode Cache Metrics
	GeocodeCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_cache_hits_total",
			Help: "Total number of geocode cache hits",
		},
		[]string{"tier"}, // memory, badger
	)

	GeocodeCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_misses_total",
			Help: "Total number of geocode cache misses",
		},
	)

	// Market Metrics
	PriceTablesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "market_price_tables_generated_total",
			Help: "Total number of sampled mandi price tables",
		},
		[]string{"mode"}, // request, shared, refresh
	)

	// Classifier Metrics
	ClassifierAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "classifier_dataset_accuracy_percent",
			Help: "Classifier accuracy on the reference dataset measured at startup",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome of one recommendation request.
// backfilled is only meaningful for successful requests.
func RecordRecommendation(outcome string, backfilled int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if outcome == "success" {
		RecommendationBackfilledSlots.Observe(float64(backfilled))
	}
}

// RecordCollaboratorCall records one outbound call to the geocoder, weather
// service or remote classifier.
func RecordCollaboratorCall(collaborator, result string, duration time.Duration) {
	CollaboratorRequests.WithLabelValues(collaborator, result).Inc()
	CollaboratorDuration.WithLabelValues(collaborator).Observe(duration.Seconds())
}

// RecordWeatherFallback records a recommendation served with default weather.
func RecordWeatherFallback() {
	WeatherFallbacks.Inc()
}

// RecordGeocodeCacheHit records a coordinate cache hit on the given tier.
func RecordGeocodeCacheHit(tier string) {
	GeocodeCacheHits.WithLabelValues(tier).Inc()
}

// RecordGeocodeCacheMiss records a coordinate cache miss.
func RecordGeocodeCacheMiss() {
	GeocodeCacheMisses.Inc()
}

// RecordPriceTable records a freshly sampled price table.
func RecordPriceTable(mode string) {
	PriceTablesGenerated.WithLabelValues(mode).Inc()
}

// SetClassifierAccuracy publishes the startup accuracy check result.
func SetClassifierAccuracy(percent float64) {
	ClassifierAccuracy.Set(percent)
}
