// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tomtom215/smartkisan/internal/logging"
	"github.com/tomtom215/smartkisan/internal/recommend"
	"github.com/tomtom215/smartkisan/internal/season"
)

// Wire messages the frontend matches on for translation.
const (
	msgInvalidMonth       = "Invalid month name"
	msgWindowExceeded     = "Sowing month is too far for accurate 90-day prediction."
	msgLocationUnresolved = "Invalid district/state"
)

// respondRecommendError maps a recommendation failure onto its HTTP response.
// Collaborator errors behind an unresolved location are logged, never sent.
func (h *Handler) respondRecommendError(w http.ResponseWriter, r *http.Request, err error) {
	logger := h.logger.With().
		Str("request_id", logging.RequestIDFromContext(r.Context())).
		Str("path", r.URL.Path).
		Logger()

	var monthErr *season.MonthError
	switch {
	case errors.As(err, &monthErr):
		msg := msgInvalidMonth
		if errors.Is(err, season.ErrWindowExceeded) {
			msg = msgWindowExceeded
		}
		respondJSON(w, http.StatusBadRequest, &ErrorResponse{
			Status:        statusError,
			Message:       msg,
			AllowedMonths: monthErr.Allowed,
		})

	case errors.Is(err, recommend.ErrLocationUnresolved):
		logger.Info().Err(err).Msg("location unresolved")
		respondError(w, http.StatusBadRequest, msgLocationUnresolved)

	default:
		logger.Error().Str("error", sanitizeLogValue(err.Error())).Msg("Prediction Error")
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// sanitizeLogValue escapes control characters so request-derived text
// cannot forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
