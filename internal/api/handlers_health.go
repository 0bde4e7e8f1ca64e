// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/smartkisan/internal/recommend"
)

// HealthStatus is the GET /health body.
type HealthStatus struct {
	Status string           `json:"status"`
	Uptime float64          `json:"uptime"`
	Engine *recommend.Stats `json:"engine,omitempty"`
}

// ReadinessStatus is the GET /health/ready body.
type ReadinessStatus struct {
	Status           string  `json:"status"`
	ModelLoaded      bool    `json:"model_loaded"`
	CatalogCrops     int     `json:"catalog_crops"`
	EngineConfigured bool    `json:"engine_configured"`
	Uptime           float64 `json:"uptime"`
}

// Health is the liveness probe. It succeeds whenever the process can serve.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	status := HealthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Seconds(),
	}
	if h.engine != nil {
		stats := h.engine.Stats()
		status.Engine = &stats
	}
	respondJSON(w, http.StatusOK, status)
}

// HealthReady is the readiness probe: the classifier is loaded and the
// catalog has crops.
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	crops := 0
	if h.catalog != nil {
		crops = len(h.catalog.Crops())
	}

	status := ReadinessStatus{
		Status:           "ready",
		ModelLoaded:      h.classifier != nil,
		CatalogCrops:     crops,
		EngineConfigured: h.engine != nil,
		Uptime:           time.Since(h.startTime).Seconds(),
	}

	code := http.StatusOK
	if !status.ModelLoaded || crops == 0 || !status.EngineConfigured {
		status.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, status)
}
