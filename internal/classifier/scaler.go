// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"fmt"
	"strings"
)

// Scaler standardises features the way the model was trained.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Validate checks the scaler covers n features with non-zero scales.
func (s Scaler) Validate(n int) error {
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("%w: scaler has %d means and %d scales, want %d", ErrInvalidModel, len(s.Mean), len(s.Scale), n)
	}
	for i, sc := range s.Scale {
		if sc == 0 {
			return fmt.Errorf("%w: zero scale for feature %d", ErrInvalidModel, i)
		}
	}
	return nil
}

// Transform returns (x - mean) / scale for each feature.
func (s Scaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("expected %d features, got %d", len(s.Mean), len(x))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - s.Mean[i]) / s.Scale[i]
	}
	return out, nil
}

// Labels maps class indices to crop names and back.
type Labels struct {
	names []string
	index map[string]int
}

// NewLabels builds a decoder. Names are lowercased and must be unique.
func NewLabels(names []string) (Labels, error) {
	if len(names) == 0 {
		return Labels{}, fmt.Errorf("%w: no labels", ErrInvalidModel)
	}
	l := Labels{names: make([]string, len(names)), index: make(map[string]int, len(names))}
	for i, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" {
			return Labels{}, fmt.Errorf("%w: empty label at index %d", ErrInvalidModel, i)
		}
		if _, dup := l.index[key]; dup {
			return Labels{}, fmt.Errorf("%w: duplicate label %q", ErrInvalidModel, key)
		}
		l.names[i] = key
		l.index[key] = i
	}
	return l, nil
}

// Decode returns the label for class index i.
func (l Labels) Decode(i int) (string, error) {
	if i < 0 || i >= len(l.names) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", i, len(l.names))
	}
	return l.names[i], nil
}

// Encode returns the class index for label.
func (l Labels) Encode(label string) (int, bool) {
	i, ok := l.index[strings.ToLower(strings.TrimSpace(label))]
	return i, ok
}

// Len returns the number of classes.
func (l Labels) Len() int {
	return len(l.names)
}

// Names returns a copy of the labels in class order.
func (l Labels) Names() []string {
	return append([]string(nil), l.names...)
}
