// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/metrics"
	"github.com/tomtom215/smartkisan/internal/resilience"
)

type remoteRequest struct {
	Features Features  `json:"features"`
	Vector   []float64 `json:"vector"`
}

type remoteResponse struct {
	Predictions []Prediction `json:"predictions"`
}

// RemoteClassifier delegates to a model-serving endpoint. The server owns
// scaling and label decoding.
type RemoteClassifier struct {
	client  *http.Client
	url     string
	breaker *resilience.Breaker[[]Prediction]
	logger  zerolog.Logger
}

// NewRemoteClassifier creates a client for cfg.RemoteURL.
func NewRemoteClassifier(cfg config.ClassifierConfig, logger zerolog.Logger) *RemoteClassifier {
	return &RemoteClassifier{
		client:  &http.Client{Timeout: cfg.RemoteTimeout},
		url:     cfg.RemoteURL,
		breaker: resilience.NewBreaker[[]Prediction]("classifier", cfg.Breaker, nil),
		logger:  logger.With().Str("component", "classifier").Logger(),
	}
}

// Classify posts the features and validates the returned distribution.
func (c *RemoteClassifier) Classify(ctx context.Context, f Features) ([]Prediction, error) {
	start := time.Now()
	preds, err := c.breaker.Execute(func() ([]Prediction, error) {
		return c.post(ctx, f)
	})
	if err != nil {
		metrics.RecordCollaboratorCall("classifier", "error", time.Since(start))
		c.logger.Warn().Err(err).Msg("Remote classification failed")
		return nil, fmt.Errorf("remote classifier: %w", err)
	}
	metrics.RecordCollaboratorCall("classifier", "success", time.Since(start))
	return preds, nil
}

func (c *RemoteClassifier) post(ctx context.Context, f Features) ([]Prediction, error) {
	body, err := json.Marshal(remoteRequest{Features: f, Vector: f.Vector()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := validatePredictions(out.Predictions); err != nil {
		return nil, err
	}
	return out.Predictions, nil
}

func validatePredictions(preds []Prediction) error {
	if len(preds) == 0 {
		return fmt.Errorf("empty prediction set")
	}
	seen := make(map[string]bool, len(preds))
	for _, p := range preds {
		if p.Label == "" {
			return fmt.Errorf("prediction without label")
		}
		if seen[p.Label] {
			return fmt.Errorf("duplicate label %q", p.Label)
		}
		seen[p.Label] = true
		if p.Probability < 0 || p.Probability > 1 {
			return fmt.Errorf("probability %v for %q outside [0,1]", p.Probability, p.Label)
		}
	}
	return nil
}
