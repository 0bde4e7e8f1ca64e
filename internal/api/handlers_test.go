// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/smartkisan/internal/catalog"
	"github.com/tomtom215/smartkisan/internal/classifier"
	"github.com/tomtom215/smartkisan/internal/geo"
	"github.com/tomtom215/smartkisan/internal/market"
	"github.com/tomtom215/smartkisan/internal/recommend"
	"github.com/tomtom215/smartkisan/internal/season"
	"github.com/tomtom215/smartkisan/internal/weather"
)

const validBody = `{"N":90,"P":42,"K":43,"ph":6.5,"land_size":2,"state":"Maharashtra","district":"Pune","sowing_month":"July"}`

// stubEngine is a hand-written Recommender.
type stubEngine struct {
	resp  *recommend.Response
	err   error
	got   recommend.Request
	calls int
	stats recommend.Stats
}

func (s *stubEngine) Recommend(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	s.calls++
	s.got = req
	return s.resp, s.err
}

func (s *stubEngine) Stats() recommend.Stats {
	return s.stats
}

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, classifier.Features) ([]classifier.Prediction, error) {
	return nil, nil
}

func sampleResponse() *recommend.Response {
	entry := func(crop string, conf float64, match bool) recommend.Entry {
		return recommend.Entry{
			Crop: crop, Confidence: conf, SeasonMatch: match,
			PricePerQuintal: 2300, YieldPerAcre: 25,
			TotalRevenue: 115000, TotalCost: 44000, NetProfit: 71000, TotalProfit: 71000,
		}
	}
	return &recommend.Response{
		Status:         "success",
		LocationUsed:   "Pune, Maharashtra",
		SowingMonth:    "july",
		SeasonDetected: "KHARIF",
		WeatherUsed:    weather.Reading{Temperature: 27.4, Humidity: 78.2, Rainfall: 640.8},
		Top3: []recommend.Entry{
			entry("rice", 61.2, true),
			entry("maize", 20.5, true),
			entry("jute", 9.1, true),
		},
	}
}

func newTestHandler(t *testing.T, engine Recommender, prices market.PriceSource) *Handler {
	t.Helper()

	cat := catalog.Default()
	cal, err := season.NewCalendar(cat, 3)
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}

	h := NewHandler(HandlerDeps{
		Engine:     engine,
		Catalog:    cat,
		Calendar:   cal,
		Economics:  market.NewModel(cat),
		Prices:     prices,
		Classifier: stubClassifier{},
	}, zerolog.Nop())
	h.SetClock(func() time.Time { return time.Date(2026, time.June, 15, 9, 0, 0, 0, time.UTC) })
	return h
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

func TestPredictCrop_Success(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{resp: sampleResponse()}
	h := newTestHandler(t, engine, nil)

	rec := httptest.NewRecorder()
	h.PredictCrop(rec, httptest.NewRequest(http.MethodPost, "/predict-crop", strings.NewReader(validBody)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if engine.got.District != "Pune" || engine.got.LandSize != 2 || engine.got.SowingMonth != "July" {
		t.Errorf("engine received %+v", engine.got)
	}

	var body recommend.Response
	decodeBody(t, rec, &body)
	if body.Status != "success" || len(body.Top3) != 3 {
		t.Errorf("body = %+v, want success with 3 entries", body)
	}
	if body.Top3[0].TotalProfit != body.Top3[0].NetProfit {
		t.Error("total_profit must equal net_profit")
	}

	// Entry keys appear in wire order.
	raw := rec.Body.String()
	keys := []string{`"crop"`, `"confidence"`, `"season_match"`, `"price_per_quintal"`, `"yield_per_acre"`,
		`"total_revenue"`, `"total_cost"`, `"net_profit"`, `"total_profit"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(raw, k)
		if idx <= last {
			t.Fatalf("key %s out of order in %s", k, raw)
		}
		last = idx
	}
}

func TestPredictCrop_ErrorMapping(t *testing.T) {
	t.Parallel()

	allowed := []string{"june", "july", "august", "september"}

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantAllowed bool
	}{
		{
			name:        "invalid month",
			err:         &season.MonthError{Month: "smarch", Allowed: allowed, Err: season.ErrInvalidMonth},
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgInvalidMonth,
			wantAllowed: true,
		},
		{
			name:        "window exceeded",
			err:         &season.MonthError{Month: "november", Allowed: allowed, Err: season.ErrWindowExceeded},
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgWindowExceeded,
			wantAllowed: true,
		},
		{
			name:        "location unresolved",
			err:         fmt.Errorf("%w: %w", recommend.ErrLocationUnresolved, geo.ErrNotFound),
			wantStatus:  http.StatusBadRequest,
			wantMessage: msgLocationUnresolved,
		},
		{
			name:        "prediction error",
			err:         recommend.NewPredictionError("classifier returned 0 predictions"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "classifier returned 0 predictions",
		},
		{
			name:        "unexpected error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newTestHandler(t, &stubEngine{err: tt.err}, nil)
			rec := httptest.NewRecorder()
			h.PredictCrop(rec, httptest.NewRequest(http.MethodPost, "/predict-crop", strings.NewReader(validBody)))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body ErrorResponse
			decodeBody(t, rec, &body)
			if body.Status != "error" {
				t.Errorf("status field = %q, want error", body.Status)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if tt.wantAllowed && len(body.AllowedMonths) != 4 {
				t.Errorf("allowed_months = %v, want 4 months", body.AllowedMonths)
			}
			if !tt.wantAllowed && strings.Contains(rec.Body.String(), "allowed_months") {
				t.Errorf("unexpected allowed_months in %s", rec.Body.String())
			}
		})
	}
}

func TestPredictCrop_BadRequestBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"not json", `N=90&P=42`},
		{"missing field", `{"N":90,"P":42,"K":43,"state":"Maharashtra","district":"Pune","sowing_month":"July"}`},
		{"non numeric", `{"N":"ninety","P":42,"K":43,"ph":6.5,"state":"Maharashtra","district":"Pune","sowing_month":"July"}`},
		{"oversized", `{"state":"` + strings.Repeat("x", maxRequestBodyBytes) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &stubEngine{resp: sampleResponse()}
			h := newTestHandler(t, engine, nil)
			rec := httptest.NewRecorder()
			h.PredictCrop(rec, httptest.NewRequest(http.MethodPost, "/predict-crop", strings.NewReader(tt.body)))

			if rec.Code != http.StatusInternalServerError {
				t.Errorf("status = %d, want 500", rec.Code)
			}
			if engine.calls != 0 {
				t.Errorf("engine called %d times for a rejected body", engine.calls)
			}
			var body ErrorResponse
			decodeBody(t, rec, &body)
			if body.Status != "error" || body.Message == "" {
				t.Errorf("body = %+v, want error with message", body)
			}
		})
	}
}

func TestPredictCrop_NoEngine(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, nil, nil)
	rec := httptest.NewRecorder()
	h.PredictCrop(rec, httptest.NewRequest(http.MethodPost, "/predict-crop", strings.NewReader(validBody)))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{stats: recommend.Stats{Requests: 7, Failures: 2}}
	h := newTestHandler(t, engine, nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body HealthStatus
	decodeBody(t, rec, &body)
	if body.Status != "healthy" {
		t.Errorf("status = %q, want healthy", body.Status)
	}
	if body.Engine == nil || body.Engine.Requests != 7 || body.Engine.Failures != 2 {
		t.Errorf("engine stats = %+v", body.Engine)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	t.Run("ready", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, &stubEngine{}, nil)
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body ReadinessStatus
		decodeBody(t, rec, &body)
		if !body.ModelLoaded || body.CatalogCrops == 0 {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("no classifier", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, &stubEngine{}, nil)
		h.classifier = nil
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		var body ReadinessStatus
		decodeBody(t, rec, &body)
		if body.Status != "not_ready" || body.ModelLoaded {
			t.Errorf("body = %+v", body)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, &stubEngine{}, nil)
		h.catalog = &catalog.Catalog{}
		rec := httptest.NewRecorder()
		h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("request scoped prices", func(t *testing.T) {
		t.Parallel()

		cat := catalog.Default()
		h := newTestHandler(t, &stubEngine{}, market.NewPerRequest(market.NewSampler(cat, 1)))
		rec := httptest.NewRecorder()
		h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body CatalogResponse
		decodeBody(t, rec, &body)

		want := []string{"june", "july", "august", "september"}
		if strings.Join(body.AllowedMonths, ",") != strings.Join(want, ",") {
			t.Errorf("allowed_months = %v, want %v", body.AllowedMonths, want)
		}
		if len(body.Months) != 12 {
			t.Errorf("months = %d, want 12", len(body.Months))
		}
		if r := body.PriceRanges["rice"]; r.Low != 2100 || r.High != 2500 {
			t.Errorf("rice range = %+v, want 2100-2500", r)
		}
		if body.CurrentPrices != nil || body.PricesAsOf != nil {
			t.Error("current prices must be omitted when prices are per request")
		}
	})

	t.Run("shared prices", func(t *testing.T) {
		t.Parallel()

		cat := catalog.Default()
		shared := market.NewShared(market.NewSampler(cat, 7), zerolog.Nop())
		h := newTestHandler(t, &stubEngine{}, shared)
		rec := httptest.NewRecorder()
		h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

		var body CatalogResponse
		decodeBody(t, rec, &body)

		price, ok := body.CurrentPrices["rice"]
		if !ok {
			t.Fatalf("current_prices missing rice: %v", body.CurrentPrices)
		}
		if price < 2100 || price > 2500 {
			t.Errorf("rice price %d outside range", price)
		}
		if body.PricesAsOf == nil {
			t.Error("prices_as_of missing")
		}
	})

	t.Run("not loaded", func(t *testing.T) {
		t.Parallel()

		h := newTestHandler(t, &stubEngine{}, nil)
		h.calendar = nil
		rec := httptest.NewRecorder()
		h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
