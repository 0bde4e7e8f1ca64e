// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationUnresolved is returned when the geocoder finds no match.
	ErrLocationUnresolved = errors.New("location unresolved")

	// ErrTooFewLabels is returned when the classifier knows fewer labels
	// than the shortlist needs.
	ErrTooFewLabels = errors.New("too few labels to rank")
)

// PredictionError wraps any failure that is not a month rejection or an
// unresolved location. Its message is the underlying error's.
type PredictionError struct {
	Err error
}

func (e *PredictionError) Error() string {
	return e.Err.Error()
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// NewPredictionError builds a PredictionError from a formatted message.
func NewPredictionError(format string, args ...any) *PredictionError {
	return &PredictionError{Err: fmt.Errorf(format, args...)}
}
