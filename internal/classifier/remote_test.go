// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/config"
)

func remoteConfig(url string) config.ClassifierConfig {
	return config.ClassifierConfig{
		Mode:          "remote",
		RemoteURL:     url,
		RemoteTimeout: 2 * time.Second,
		Breaker: config.BreakerConfig{
			MaxRequests:  1,
			Interval:     time.Minute,
			Timeout:      time.Minute,
			MinRequests:  100,
			FailureRatio: 0.9,
		},
	}
}

func TestRemoteClassifier_Classify(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var got remoteRequest
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(got.Vector) != 7 || got.Vector[6] != riceCentroid.Rainfall {
			t.Errorf("request vector = %v", got.Vector)
		}
		if got.Features.PH != riceCentroid.PH {
			t.Errorf("request features = %+v", got.Features)
		}
		_, _ = w.Write([]byte(`{"predictions":[{"label":"rice","probability":0.7},{"label":"maize","probability":0.3}]}`))
	}))
	defer server.Close()

	c := NewRemoteClassifier(remoteConfig(server.URL), zerolog.Nop())
	preds, err := c.Classify(context.Background(), riceCentroid)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if len(preds) != 2 || preds[0].Label != "rice" || preds[0].Probability != 0.7 {
		t.Errorf("Classify() = %+v", preds)
	}
}

func TestRemoteClassifier_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `boom`},
		{"bad json", http.StatusOK, `[`},
		{"empty", http.StatusOK, `{"predictions":[]}`},
		{"out of range", http.StatusOK, `{"predictions":[{"label":"rice","probability":1.5}]}`},
		{"duplicate", http.StatusOK, `{"predictions":[{"label":"rice","probability":0.5},{"label":"rice","probability":0.5}]}`},
		{"missing label", http.StatusOK, `{"predictions":[{"probability":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewRemoteClassifier(remoteConfig(server.URL), zerolog.Nop())
			if _, err := c.Classify(context.Background(), riceCentroid); err == nil {
				t.Error("Classify() expected error")
			}
		})
	}
}
