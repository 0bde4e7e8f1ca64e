// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"math"

	"github.com/goccy/go-json"
)

//go:embed model/centroid.json
var defaultCentroidArtifact []byte

// centroidArtifact is the on-disk form. Centroids are in raw feature units.
type centroidArtifact struct {
	Kind      string      `json:"kind"`
	Features  []string    `json:"features"`
	Labels    []string    `json:"labels"`
	Scaler    Scaler      `json:"scaler"`
	Centroids [][]float64 `json:"centroids"`
}

// CentroidModel scores each label by its distance to the label's centroid.
type CentroidModel struct {
	labels      Labels
	scaler      Scaler
	centroids   [][]float64 // scaled
	temperature float64
}

// DefaultCentroidModel loads the embedded artifact.
func DefaultCentroidModel(temperature float64) (*CentroidModel, error) {
	return LoadCentroidModel(bytes.NewReader(defaultCentroidArtifact), temperature)
}

// LoadCentroidModel decodes a centroid artifact. temperature <= 0 means 1.
func LoadCentroidModel(r io.Reader, temperature float64) (*CentroidModel, error) {
	var a centroidArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if a.Kind != "" && a.Kind != "centroid" {
		return nil, fmt.Errorf("%w: kind %q is not a centroid model", ErrInvalidModel, a.Kind)
	}

	labels, err := NewLabels(a.Labels)
	if err != nil {
		return nil, err
	}
	if err := a.Scaler.Validate(len(FeatureNames)); err != nil {
		return nil, err
	}
	if len(a.Centroids) != labels.Len() {
		return nil, fmt.Errorf("%w: %d centroids for %d labels", ErrInvalidModel, len(a.Centroids), labels.Len())
	}

	scaled := make([][]float64, len(a.Centroids))
	for i, c := range a.Centroids {
		s, err := a.Scaler.Transform(c)
		if err != nil {
			return nil, fmt.Errorf("%w: centroid %q: %w", ErrInvalidModel, labels.names[i], err)
		}
		scaled[i] = s
	}

	if temperature <= 0 {
		temperature = 1
	}
	return &CentroidModel{labels: labels, scaler: a.Scaler, centroids: scaled, temperature: temperature}, nil
}

// Labels returns the model's label decoder.
func (m *CentroidModel) Labels() Labels {
	return m.labels
}

// Classify returns a softmax over negative squared scaled distance.
func (m *CentroidModel) Classify(_ context.Context, f Features) ([]Prediction, error) {
	x, err := m.scaler.Transform(f.Vector())
	if err != nil {
		return nil, err
	}

	logits := make([]float64, len(m.centroids))
	for i, c := range m.centroids {
		d := 0.0
		for j := range c {
			diff := x[j] - c[j]
			d += diff * diff
		}
		logits[i] = -d / m.temperature
	}
	return predictions(m.labels, softmax(logits)), nil
}

// softmax is stabilised by subtracting the max logit.
func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, v := range logits {
		if v > maxLogit {
			maxLogit = v
		}
	}
	out := make([]float64, len(logits))
	total := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
