// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package season

import (
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/smartkisan/internal/catalog"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := NewCalendar(catalog.Default(), 3)
	if err != nil {
		t.Fatalf("NewCalendar() error = %v", err)
	}
	return cal
}

func at(month time.Month) time.Time {
	return time.Date(2026, month, 15, 10, 0, 0, 0, time.UTC)
}

func TestValidateSowingMonth_WindowProperty(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	months := catalog.Default().Months

	// For every current month and every candidate month, the candidate is
	// accepted iff its index is within [current, current+3] mod 12.
	for current := 0; current < 12; current++ {
		now := at(time.Month(current + 1))
		for candidate, name := range months {
			distance := (candidate - current + 12) % 12
			wantOK := distance <= 3

			got, err := cal.ValidateSowingMonth(name, now)
			if wantOK {
				if err != nil {
					t.Errorf("current=%d month=%s: unexpected error %v", current, name, err)
				} else if got != name {
					t.Errorf("current=%d month=%s: got %q", current, name, got)
				}
				continue
			}
			if !errors.Is(err, ErrWindowExceeded) {
				t.Errorf("current=%d month=%s: error = %v, want ErrWindowExceeded", current, name, err)
			}
		}
	}
}

func TestValidateSowingMonth_CaseInsensitive(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	got, err := cal.ValidateSowingMonth("  NOVember ", at(time.October))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "november" {
		t.Errorf("got %q, want november", got)
	}
}

func TestValidateSowingMonth_WrapsYearBoundary(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	allowed := cal.AllowedMonths(at(time.November))
	want := []string{"november", "december", "january", "february"}
	if len(allowed) != len(want) {
		t.Fatalf("AllowedMonths() = %v, want %v", allowed, want)
	}
	for i := range want {
		if allowed[i] != want[i] {
			t.Errorf("AllowedMonths()[%d] = %q, want %q", i, allowed[i], want[i])
		}
	}
	if _, err := cal.ValidateSowingMonth("february", at(time.November)); err != nil {
		t.Errorf("february should be sowable in november: %v", err)
	}
}

func TestValidateSowingMonth_Errors(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	now := at(time.October)

	tests := []struct {
		name    string
		month   string
		wantErr error
	}{
		{"unknown name", "smarch", ErrInvalidMonth},
		{"abbreviation", "oct", ErrInvalidMonth},
		{"empty", "", ErrInvalidMonth},
		{"five months out", "march", ErrWindowExceeded},
		{"last month", "september", ErrWindowExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := cal.ValidateSowingMonth(tt.month, now)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			var monthErr *MonthError
			if !errors.As(err, &monthErr) {
				t.Fatalf("error %T is not *MonthError", err)
			}
			want := []string{"october", "november", "december", "january"}
			if len(monthErr.Allowed) != 4 {
				t.Fatalf("Allowed = %v, want 4 months", monthErr.Allowed)
			}
			for i := range want {
				if monthErr.Allowed[i] != want[i] {
					t.Errorf("Allowed[%d] = %q, want %q", i, monthErr.Allowed[i], want[i])
				}
			}
		})
	}
}

func TestSeasonOf(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	tests := map[string]string{
		"january":   catalog.Rabi,
		"March":     catalog.Zaid,
		"may":       catalog.Zaid,
		"june":      catalog.Kharif,
		"september": catalog.Kharif,
		"october":   catalog.Rabi,
		"December":  catalog.Rabi,
	}
	for month, want := range tests {
		got, err := cal.SeasonOf(month)
		if err != nil {
			t.Errorf("SeasonOf(%q) error = %v", month, err)
			continue
		}
		if got != want {
			t.Errorf("SeasonOf(%q) = %q, want %q", month, got, want)
		}
	}

	if _, err := cal.SeasonOf("brumaire"); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("SeasonOf(brumaire) error = %v, want ErrInvalidMonth", err)
	}
}

func TestFits(t *testing.T) {
	t.Parallel()

	cal := newTestCalendar(t)
	tests := []struct {
		crop   string
		season string
		want   bool
	}{
		{"rice", catalog.Kharif, true},
		{"Rice", catalog.Kharif, true},
		{"rice", catalog.Rabi, false},
		{"maize", catalog.Zaid, true},
		{"coconut", catalog.Rabi, true},
		{"coffee", catalog.Kharif, false},
		{"wheat", catalog.Rabi, false},
	}
	for _, tt := range tests {
		if got := cal.Fits(tt.crop, tt.season); got != tt.want {
			t.Errorf("Fits(%q, %q) = %v, want %v", tt.crop, tt.season, got, tt.want)
		}
	}
}

func TestNewCalendar_RejectsBadHorizon(t *testing.T) {
	t.Parallel()

	if _, err := NewCalendar(catalog.Default(), 12); err == nil {
		t.Error("expected error for horizon 12")
	}
}
