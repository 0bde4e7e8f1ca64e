// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/smartkisan/config.yaml",
	"/etc/smartkisan/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultBreaker mirrors the breaker tuning used for every outbound collaborator:
// trip at a 60% failure rate over at least 10 requests, probe again after 2 minutes.
func defaultBreaker() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        5000,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Geocoder: GeocoderConfig{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "SmartKisanAI/1.0 (+https://github.com/tomtom215/smartkisan)",
			Country:           "India",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 1,
			CacheSize:         2048,
			CacheTTL:          7 * 24 * time.Hour,
			CacheDir:          "",
			Breaker:           defaultBreaker(),
		},
		Weather: WeatherConfig{
			BaseURL:         "https://api.open-meteo.com",
			Timeout:         15 * time.Second,
			ForecastDays:    7,
			RainfallScale:   12,
			RainfallFloor:   150,
			DefaultHumidity: 65,
			Breaker:         defaultBreaker(),
		},
		Classifier: ClassifierConfig{
			Mode:          "centroid",
			ModelPath:     "",
			RemoteURL:     "",
			RemoteTimeout: 5 * time.Second,
			Temperature:   1.0,
			DatasetPath:   "",
			Breaker:       defaultBreaker(),
		},
		Market: MarketConfig{
			PriceMode:       "request",
			Seed:            0,
			RefreshInterval: 24 * time.Hour,
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Recommend: RecommendConfig{
			TopK:          3,
			HorizonMonths: 3,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// environment variables, in increasing order of priority, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, preferring CONFIG_PATH.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are fields that arrive from the environment as comma-separated strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"port":         "server.port",
		"http_port":    "server.port",
		"http_host":    "server.host",
		"http_timeout": "server.timeout",
		"environment":  "server.environment",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Security
		"cors_origins":        "security.cors_origins",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		// Geocoder
		"geocoder_url":        "geocoder.base_url",
		"geocoder_user_agent": "geocoder.user_agent",
		"geocoder_country":    "geocoder.country",
		"geocoder_timeout":    "geocoder.timeout",
		"geocoder_rps":        "geocoder.requests_per_second",
		"geocoder_cache_size": "geocoder.cache_size",
		"geocoder_cache_ttl":  "geocoder.cache_ttl",
		"geocoder_cache_dir":  "geocoder.cache_dir",

		// Weather
		"weather_url":              "weather.base_url",
		"weather_timeout":          "weather.timeout",
		"weather_forecast_days":    "weather.forecast_days",
		"weather_rainfall_scale":   "weather.rainfall_scale",
		"weather_rainfall_floor":   "weather.rainfall_floor",
		"weather_default_humidity": "weather.default_humidity",

		// Classifier
		"classifier_mode":         "classifier.mode",
		"model_path":              "classifier.model_path",
		"classifier_url":          "classifier.remote_url",
		"classifier_timeout":      "classifier.remote_timeout",
		"classifier_temperature":  "classifier.temperature",
		"classifier_dataset_path": "classifier.dataset_path",

		// Market
		"price_mode":             "market.price_mode",
		"price_seed":             "market.seed",
		"price_refresh_interval": "market.refresh_interval",

		// Catalog
		"catalog_path": "catalog.path",

		// Recommend
		"recommend_top_k":          "recommend.top_k",
		"recommend_horizon_months": "recommend.horizon_months",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
