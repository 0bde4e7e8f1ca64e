// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Geocoder   GeocoderConfig   `koanf:"geocoder"`
	Weather    WeatherConfig    `koanf:"weather"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Market     MarketConfig     `koanf:"market"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Recommend  RecommendConfig  `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds inbound HTTP protection settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// BreakerConfig tunes a circuit breaker guarding an outbound collaborator.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval resets failure counts while closed.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests and FailureRatio decide when to trip.
	MinRequests  uint32  `koanf:"min_requests"`
	FailureRatio float64 `koanf:"failure_ratio"`
}

// GeocoderConfig configures the district/state location resolver.
type GeocoderConfig struct {
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Country   string        `koanf:"country"`
	Timeout   time.Duration `koanf:"timeout"`

	// RequestsPerSecond caps outbound lookups. Nominatim's usage policy allows 1.
	RequestsPerSecond float64 `koanf:"requests_per_second"`

	CacheSize int           `koanf:"cache_size"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`

	// CacheDir enables the persistent BadgerDB coordinate cache when set.
	CacheDir string `koanf:"cache_dir"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// WeatherConfig configures the seasonal weather provider.
type WeatherConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	ForecastDays int           `koanf:"forecast_days"`

	// RainfallScale stretches the forecast precipitation sum to the sowing horizon.
	RainfallScale float64 `koanf:"rainfall_scale"`

	// RainfallFloor is the minimum total rainfall handed to the classifier (mm).
	RainfallFloor float64 `koanf:"rainfall_floor"`

	// DefaultHumidity is used when the forecast carries no humidity series (%).
	DefaultHumidity float64 `koanf:"default_humidity"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// ClassifierConfig selects and configures the crop classifier.
type ClassifierConfig struct {
	// Mode is one of: centroid (embedded model), dense (trained MLP artifact), remote.
	Mode string `koanf:"mode"`

	// ModelPath points at a JSON model artifact. Optional for centroid mode.
	ModelPath string `koanf:"model_path"`

	RemoteURL     string        `koanf:"remote_url"`
	RemoteTimeout time.Duration `koanf:"remote_timeout"`

	// Temperature softens centroid model probabilities.
	Temperature float64 `koanf:"temperature"`

	// DatasetPath enables the startup accuracy check when set.
	DatasetPath string `koanf:"dataset_path"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// MarketConfig configures mandi price simulation.
type MarketConfig struct {
	// PriceMode is "request" (each recommendation samples its own prices) or
	// "shared" (one process-wide table regenerated per request).
	PriceMode string `koanf:"price_mode"`

	// Seed fixes the price sampler for reproducible runs. 0 seeds from the clock.
	Seed uint64 `koanf:"seed"`

	// RefreshInterval resamples the shared table in the background (shared mode only).
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// CatalogConfig points at an optional crop table override file.
type CatalogConfig struct {
	Path string `koanf:"path"`
}

// RecommendConfig tunes the ranking engine.
type RecommendConfig struct {
	TopK          int `koanf:"top_k"`
	HorizonMonths int `koanf:"horizon_months"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
