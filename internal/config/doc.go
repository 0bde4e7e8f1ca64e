// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package config provides centralized configuration management for SmartKisan.

Configuration is layered with koanf:

 1. Defaults from defaultConfig() (structs provider)
 2. Optional YAML file (CONFIG_PATH, then config.yaml / config.yml, then /etc/smartkisan/)
 3. Environment variables, mapped through an explicit table

Later layers override earlier ones. After unmarshalling, Validate checks every
section and returns the first problem found.

# Sections

  - server: listen address, request timeout, environment
  - logging: level, format, caller
  - security: CORS origins and inbound rate limiting
  - geocoder: Nominatim client, outbound rate limit, coordinate cache
  - weather: Open-Meteo client and seasonal aggregation constants
  - classifier: model adapter selection and startup accuracy check
  - market: price sampling mode and refresh interval
  - catalog: optional YAML file overriding the built-in crop tables
  - recommend: shortlist size and sowing horizon

# Environment Variables

Only mapped variables are read; unrelated environment entries are ignored.
The Flask-era PORT variable is honoured alongside HTTP_PORT.

	PORT / HTTP_PORT          server.port (default 5000)
	LOG_LEVEL, LOG_FORMAT     logging.level, logging.format
	CORS_ORIGINS              security.cors_origins (comma separated)
	GEOCODER_URL              geocoder.base_url
	WEATHER_URL               weather.base_url
	CLASSIFIER_MODE           classifier.mode (centroid, dense, remote)
	MODEL_PATH                classifier.model_path
	PRICE_MODE                market.price_mode (request, shared)

See envTransformFunc for the full list.
*/
package config
