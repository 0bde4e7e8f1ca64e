// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Command server runs the SmartKisan crop recommendation API.

Startup order:

 1. Configuration (koanf: defaults, config.yaml, environment)
 2. Logging
 3. Crop catalog (built-in tables, optionally overridden by catalog.path)
 4. Collaborators: geocoder with memory and BadgerDB caches, Open-Meteo
    weather provider, crop classifier, mandi price source
 5. Optional model accuracy check against classifier.dataset_path
 6. Recommendation engine and HTTP router
 7. Supervisor tree (HTTP server, shared-price refresher)

The process stops on SIGINT or SIGTERM, letting in-flight requests finish.

# Configuration

Every setting can be given in YAML or as an environment variable, where
nested keys are joined by underscores:

	SERVER_PORT=5000
	LOGGING_LEVEL=debug
	GEOCODER_CACHE_DIR=/var/lib/smartkisan/geocache
	CLASSIFIER_MODE=dense
	CLASSIFIER_MODEL_PATH=/models/crop_mlp.json
	CLASSIFIER_DATASET_PATH=/data/Crop_recommendation.csv
	MARKET_PRICE_MODE=shared

# Example

	curl -s localhost:5000/predict-crop -d '{
	  "N": 90, "P": 42, "K": 43, "ph": 6.5, "land_size": 2,
	  "state": "Maharashtra", "district": "Pune", "sowing_month": "july"
	}'
*/
package main
