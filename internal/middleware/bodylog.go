// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/logging"
)

// RequestBodyLogger logs up to maxBytes of each request body at debug level.
// The body seen by the next handler is unchanged. It is a no-op unless the
// logger is at debug level or lower.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func RequestBodyLogger(logger zerolog.Logger, maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger.GetLevel() > zerolog.DebugLevel || r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			head, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
			if err != nil {
				logger.Debug().Err(err).Msg("failed to read request body for logging")
			}
			r.Body = readCloser{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}

			logger.Debug().
				Str("request_id", logging.RequestIDFromContext(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("body", head).
				Msg("Incoming request")

			next.ServeHTTP(w, r)
		})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
