// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package middleware provides HTTP middleware used by the API router.

Key Components:

  - RequestID: UUID request IDs in the X-Request-ID header and the logging
    context, plus a correlation ID honouring X-Correlation-ID.
  - PrometheusMetrics: request count, latency and in-flight gauges, labelled
    by the chi route pattern rather than the raw path.
  - RequestBodyLogger: logs incoming request bodies at debug level.

The HandlerFunc-style middleware are adapted to chi with the router's
chiMiddleware helper.
*/
package middleware
