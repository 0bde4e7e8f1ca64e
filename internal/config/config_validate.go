// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package config

import (
	"fmt"
	"time"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validClassifierModes = map[string]bool{
	"centroid": true,
	"dense":    true,
	"remote":   true,
}

var validPriceModes = map[string]bool{
	"request": true,
	"shared":  true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateGeocoder,
		c.validateWeather,
		c.validateClassifier,
		c.validateMarket,
		c.validateRecommend,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateGeocoder() error {
	g := c.Geocoder
	if err := validateHTTPURL(g.BaseURL, "GEOCODER_URL"); err != nil {
		return err
	}
	if g.UserAgent == "" {
		return fmt.Errorf("GEOCODER_USER_AGENT is required by the geocoding usage policy")
	}
	if g.Timeout <= 0 {
		return fmt.Errorf("GEOCODER_TIMEOUT must be positive")
	}
	if g.RequestsPerSecond <= 0 {
		return fmt.Errorf("GEOCODER_RPS must be positive, got %v", g.RequestsPerSecond)
	}
	if g.CacheSize < 0 {
		return fmt.Errorf("GEOCODER_CACHE_SIZE must not be negative")
	}
	return validateBreaker(g.Breaker, "geocoder")
}

func (c *Config) validateWeather() error {
	w := c.Weather
	if err := validateHTTPURL(w.BaseURL, "WEATHER_URL"); err != nil {
		return err
	}
	if w.Timeout <= 0 {
		return fmt.Errorf("WEATHER_TIMEOUT must be positive")
	}
	if w.ForecastDays < 1 || w.ForecastDays > 16 {
		return fmt.Errorf("WEATHER_FORECAST_DAYS must be between 1 and 16, got %d", w.ForecastDays)
	}
	if w.RainfallScale <= 0 {
		return fmt.Errorf("WEATHER_RAINFALL_SCALE must be positive")
	}
	if w.RainfallFloor < 0 {
		return fmt.Errorf("WEATHER_RAINFALL_FLOOR must not be negative")
	}
	if w.DefaultHumidity < 0 || w.DefaultHumidity > 100 {
		return fmt.Errorf("WEATHER_DEFAULT_HUMIDITY must be between 0 and 100")
	}
	return validateBreaker(w.Breaker, "weather")
}

func (c *Config) validateClassifier() error {
	cl := c.Classifier
	if !validClassifierModes[cl.Mode] {
		return fmt.Errorf("CLASSIFIER_MODE must be one of: centroid, dense, remote")
	}
	switch cl.Mode {
	case "dense":
		if cl.ModelPath == "" {
			return fmt.Errorf("MODEL_PATH is required when CLASSIFIER_MODE=dense")
		}
	case "remote":
		if cl.RemoteURL == "" {
			return fmt.Errorf("CLASSIFIER_URL is required when CLASSIFIER_MODE=remote")
		}
		if cl.RemoteTimeout <= 0 {
			return fmt.Errorf("CLASSIFIER_TIMEOUT must be positive")
		}
	}
	if cl.Temperature <= 0 {
		return fmt.Errorf("CLASSIFIER_TEMPERATURE must be positive")
	}
	return validateBreaker(cl.Breaker, "classifier")
}

func (c *Config) validateMarket() error {
	if !validPriceModes[c.Market.PriceMode] {
		return fmt.Errorf("PRICE_MODE must be one of: request, shared")
	}
	if c.Market.PriceMode == "shared" && c.Market.RefreshInterval < 0 {
		return fmt.Errorf("PRICE_REFRESH_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.TopK < 1 {
		return fmt.Errorf("RECOMMEND_TOP_K must be at least 1")
	}
	if c.Recommend.HorizonMonths < 0 || c.Recommend.HorizonMonths > 11 {
		return fmt.Errorf("RECOMMEND_HORIZON_MONTHS must be between 0 and 11")
	}
	return nil
}

func validateBreaker(b BreakerConfig, name string) error {
	if b.Timeout <= 0 {
		return fmt.Errorf("%s breaker timeout must be positive", name)
	}
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("%s breaker failure_ratio must be in (0, 1], got %v", name, b.FailureRatio)
	}
	return nil
}
