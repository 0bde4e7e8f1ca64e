// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/config"
)

// FeatureNames is the column order the models were trained on.
var FeatureNames = []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"}

// ErrInvalidModel is returned when a model artifact is inconsistent.
var ErrInvalidModel = errors.New("invalid model artifact")

// Features is the raw, unscaled input to a classifier.
type Features struct {
	N           float64 `json:"N"`
	P           float64 `json:"P"`
	K           float64 `json:"K"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"`
}

// Vector returns the features in training column order.
func (f Features) Vector() []float64 {
	return []float64{f.N, f.P, f.K, f.Temperature, f.Humidity, f.PH, f.Rainfall}
}

// Prediction is the probability assigned to one label.
type Prediction struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

// Classifier produces the full probability distribution over labels.
type Classifier interface {
	Classify(ctx context.Context, f Features) ([]Prediction, error)
}

// New builds the classifier selected by cfg.Mode.
func New(cfg config.ClassifierConfig, logger zerolog.Logger) (Classifier, error) {
	switch cfg.Mode {
	case "centroid":
		if cfg.ModelPath == "" {
			m, err := DefaultCentroidModel(cfg.Temperature)
			if err != nil {
				return nil, err
			}
			logger.Info().Int("labels", m.Labels().Len()).Msg("Loaded embedded centroid model")
			return m, nil
		}
		f, err := os.Open(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("open model: %w", err)
		}
		defer f.Close()
		m, err := LoadCentroidModel(f, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.ModelPath).Int("labels", m.Labels().Len()).Msg("Loaded centroid model")
		return m, nil

	case "dense":
		f, err := os.Open(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("open model: %w", err)
		}
		defer f.Close()
		m, err := LoadDenseModel(f)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.ModelPath).Int("layers", len(m.layers)).Int("labels", m.Labels().Len()).Msg("Loaded dense model")
		return m, nil

	case "remote":
		logger.Info().Str("url", cfg.RemoteURL).Msg("Using remote classifier")
		return NewRemoteClassifier(cfg, logger), nil

	default:
		return nil, fmt.Errorf("unknown classifier mode %q", cfg.Mode)
	}
}

// predictions zips probabilities with their labels.
func predictions(labels Labels, probs []float64) []Prediction {
	out := make([]Prediction, len(probs))
	for i, p := range probs {
		out[i] = Prediction{Label: labels.names[i], Probability: p}
	}
	return out
}
