// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package season maps sowing months to cropping seasons and decides which
// sowing months the engine can forecast for.
//
// The weather pipeline looks roughly 90 days ahead, so a sowing month is
// accepted only when it lies in the window [current month, current month +
// horizon], wrapping across the year boundary. With the default horizon of 3
// that is four months.
package season

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/smartkisan/internal/catalog"
)

var (
	// ErrInvalidMonth is returned for a name that is not one of the twelve months.
	ErrInvalidMonth = errors.New("invalid month name")

	// ErrWindowExceeded is returned for a valid month outside the sowing window.
	ErrWindowExceeded = errors.New("sowing month is outside the forecast window")
)

// MonthError reports a rejected sowing month together with the months the
// caller may use instead.
type MonthError struct {
	Month   string
	Allowed []string
	Err     error
}

func (e *MonthError) Error() string {
	return fmt.Sprintf("%s: %q (allowed: %s)", e.Err, e.Month, strings.Join(e.Allowed, ", "))
}

func (e *MonthError) Unwrap() error {
	return e.Err
}

// Calendar answers month and season questions from catalog tables.
type Calendar struct {
	months       []string
	index        map[string]int
	monthSeasons map[string]string
	cropSeasons  map[string][]string
	horizon      int
}

// NewCalendar builds a calendar from a validated catalog. horizon is the
// number of months after the current one that remain sowable.
func NewCalendar(cat *catalog.Catalog, horizon int) (*Calendar, error) {
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if horizon < 0 || horizon > 11 {
		return nil, fmt.Errorf("horizon must be between 0 and 11 months, got %d", horizon)
	}

	index := make(map[string]int, len(cat.Months))
	for i, m := range cat.Months {
		index[m] = i
	}

	return &Calendar{
		months:       cat.Months,
		index:        index,
		monthSeasons: cat.MonthSeasons,
		cropSeasons:  cat.CropSeasons,
		horizon:      horizon,
	}, nil
}

// Normalize trims and lowercases a month name.
func Normalize(month string) string {
	return strings.ToLower(strings.TrimSpace(month))
}

// AllowedMonths returns the sowable months for the given time, starting with
// the current month.
func (c *Calendar) AllowedMonths(now time.Time) []string {
	current := int(now.Month()) - 1
	allowed := make([]string, 0, c.horizon+1)
	for offset := 0; offset <= c.horizon; offset++ {
		allowed = append(allowed, c.months[(current+offset)%12])
	}
	return allowed
}

// ValidateSowingMonth checks month against the window for now. It returns
// the normalized month name, or a *MonthError wrapping ErrInvalidMonth or
// ErrWindowExceeded.
func (c *Calendar) ValidateSowingMonth(month string, now time.Time) (string, error) {
	normalized := Normalize(month)
	allowed := c.AllowedMonths(now)

	if _, ok := c.index[normalized]; !ok {
		return "", &MonthError{Month: month, Allowed: allowed, Err: ErrInvalidMonth}
	}
	for _, m := range allowed {
		if m == normalized {
			return normalized, nil
		}
	}
	return "", &MonthError{Month: normalized, Allowed: allowed, Err: ErrWindowExceeded}
}

// SeasonOf returns the cropping season for a month name.
func (c *Calendar) SeasonOf(month string) (string, error) {
	season, ok := c.monthSeasons[Normalize(month)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	return season, nil
}

// Fits reports whether crop can be sown in season. Crops missing from the
// calendar never fit.
func (c *Calendar) Fits(crop, season string) bool {
	for _, s := range c.cropSeasons[strings.ToLower(crop)] {
		if s == season {
			return true
		}
	}
	return false
}
