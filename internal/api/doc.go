// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package api provides the HTTP layer for SmartKisan.

Endpoints:

  - POST /predict-crop: the crop recommendation itself
  - GET /health: liveness, with engine counters
  - GET /health/ready: readiness (classifier loaded, catalog non-empty)
  - GET /api/v1/catalog: season calendar and market ranges for frontend dropdowns
  - GET /metrics: Prometheus exposition

Middleware Stack (applied in order):

 1. Request ID and correlation ID (X-Request-ID, X-Correlation-ID)
 2. Real IP extraction, panic recovery
 3. CORS (all origins unless security.cors_origins narrows it)
 4. Per-IP rate limiting via go-chi/httprate
 5. Debug-level request body logging, gzip compression
 6. API security headers and Prometheus metrics

Error Mapping:

Recommendation failures are mapped onto the wire contract the frontend
expects:

	invalid or out-of-window month   400 {status, message, allowed_months}
	unresolved district/state        400 {status, message: "Invalid district/state"}
	anything else                    500 {status, message}

Request parsing and validation failures are reported as prediction errors
(500), matching the original service.
*/
package api
