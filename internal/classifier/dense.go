// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// denseLayer uses the Keras kernel layout: Weights[input][output].
type denseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

type denseArtifact struct {
	Kind   string       `json:"kind"`
	Labels []string     `json:"labels"`
	Scaler Scaler       `json:"scaler"`
	Layers []denseLayer `json:"layers"`
}

// DenseModel evaluates a feed-forward network exported from training.
type DenseModel struct {
	labels Labels
	scaler Scaler
	layers []denseLayer
}

// LoadDenseModel decodes and shape-checks a dense artifact.
func LoadDenseModel(r io.Reader) (*DenseModel, error) {
	var a denseArtifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if a.Kind != "" && a.Kind != "dense" {
		return nil, fmt.Errorf("%w: kind %q is not a dense model", ErrInvalidModel, a.Kind)
	}

	labels, err := NewLabels(a.Labels)
	if err != nil {
		return nil, err
	}
	if err := a.Scaler.Validate(len(FeatureNames)); err != nil {
		return nil, err
	}
	if len(a.Layers) == 0 {
		return nil, fmt.Errorf("%w: no layers", ErrInvalidModel)
	}

	width := len(FeatureNames)
	for i, layer := range a.Layers {
		if len(layer.Weights) != width {
			return nil, fmt.Errorf("%w: layer %d has %d input rows, want %d", ErrInvalidModel, i, len(layer.Weights), width)
		}
		out := len(layer.Bias)
		for _, row := range layer.Weights {
			if len(row) != out {
				return nil, fmt.Errorf("%w: layer %d weight row has %d outputs, bias has %d", ErrInvalidModel, i, len(row), out)
			}
		}
		switch layer.Activation {
		case "relu", "softmax", "linear", "":
		default:
			return nil, fmt.Errorf("%w: layer %d has unsupported activation %q", ErrInvalidModel, i, layer.Activation)
		}
		width = out
	}
	if width != labels.Len() {
		return nil, fmt.Errorf("%w: output width %d for %d labels", ErrInvalidModel, width, labels.Len())
	}
	if a.Layers[len(a.Layers)-1].Activation != "softmax" {
		return nil, fmt.Errorf("%w: final layer must use softmax", ErrInvalidModel)
	}

	return &DenseModel{labels: labels, scaler: a.Scaler, layers: a.Layers}, nil
}

// Labels returns the model's label decoder.
func (m *DenseModel) Labels() Labels {
	return m.labels
}

// Classify runs the forward pass.
func (m *DenseModel) Classify(_ context.Context, f Features) ([]Prediction, error) {
	x, err := m.scaler.Transform(f.Vector())
	if err != nil {
		return nil, err
	}
	for _, layer := range m.layers {
		x = forward(layer, x)
	}
	return predictions(m.labels, x), nil
}

func forward(layer denseLayer, x []float64) []float64 {
	out := append([]float64(nil), layer.Bias...)
	for i, xi := range x {
		for j, w := range layer.Weights[i] {
			out[j] += xi * w
		}
	}
	switch layer.Activation {
	case "relu":
		for j, v := range out {
			if v < 0 {
				out[j] = 0
			}
		}
	case "softmax":
		out = softmax(out)
	}
	return out
}
