// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/middleware"
)

func newTestServer(t *testing.T, sec config.SecurityConfig) http.Handler {
	t.Helper()
	h := newTestHandler(t, &stubEngine{resp: sampleResponse()}, nil)
	return NewRouter(h, NewChiMiddleware(ChiMiddlewareConfigFrom(sec)), zerolog.Nop()).SetupChi()
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, config.SecurityConfig{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog", "", http.StatusOK},
		{http.MethodPost, "/predict-crop", validBody, http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/predict-crop", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body %s", rec.Code, tt.want, rec.Body.String())
			}
			if rec.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("missing X-Request-ID header")
			}
		})
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, config.SecurityConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	for header, want := range map[string]string{
		"X-Content-Type-Options":    "nosniff",
		"X-Frame-Options":           "DENY",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	t.Run("any origin by default", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, config.SecurityConfig{})
		req := httptest.NewRequest(http.MethodOptions, "/predict-crop", nil)
		req.Header.Set("Origin", "https://farmer.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
		}
	})

	t.Run("restricted origins", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, config.SecurityConfig{CORSOrigins: []string{"https://app.smartkisan.in"}})

		for origin, allowed := range map[string]bool{
			"https://app.smartkisan.in": true,
			"https://evil.example":      false,
		} {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", origin)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if allowed && got != origin {
				t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want echo", origin, got)
			}
			if !allowed && got != "" {
				t.Errorf("origin %s: Access-Control-Allow-Origin = %q, want empty", origin, got)
			}
		}
	})
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	t.Run("enforced", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
			req.RemoteAddr = "203.0.113.9:5000"
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
			t.Errorf("status codes = %v, want [200 200 429]", codes)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, config.SecurityConfig{RateLimitReqs: 1, RateLimitWindow: time.Minute, RateLimitDisabled: true})
		for i := 0; i < 5; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
			req.RemoteAddr = "203.0.113.10:5000"
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("request %d: status = %d, want 200", i, rec.Code)
			}
		}
	})
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFrom(config.SecurityConfig{})
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("origins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitRequests != 100 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 100/1m", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	cfg = ChiMiddlewareConfigFrom(config.SecurityConfig{
		CORSOrigins: []string{"https://a.example"}, RateLimitReqs: 5, RateLimitWindow: time.Second, RateLimitDisabled: true,
	})
	if cfg.CORSAllowedOrigins[0] != "https://a.example" || cfg.RateLimitRequests != 5 ||
		cfg.RateLimitWindow != time.Second || !cfg.RateLimitDisabled {
		t.Errorf("config = %+v", cfg)
	}
}
