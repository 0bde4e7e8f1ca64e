// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/smartkisan/internal/api"
	"github.com/tomtom215/smartkisan/internal/catalog"
	"github.com/tomtom215/smartkisan/internal/classifier"
	"github.com/tomtom215/smartkisan/internal/config"
	"github.com/tomtom215/smartkisan/internal/logging"
	"github.com/tomtom215/smartkisan/internal/market"
	"github.com/tomtom215/smartkisan/internal/recommend"
	"github.com/tomtom215/smartkisan/internal/season"
	"github.com/tomtom215/smartkisan/internal/supervisor"
	"github.com/tomtom215/smartkisan/internal/supervisor/services"
	"github.com/tomtom215/smartkisan/internal/weather"
)

//nolint:gocyclo // sequential startup steps
func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("classifier_mode", cfg.Classifier.Mode).
		Str("price_mode", cfg.Market.PriceMode).
		Msg("Starting SmartKisan")

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load crop catalog")
	}
	calendar, err := season.NewCalendar(cat, cfg.Recommend.HorizonMonths)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build season calendar")
	}
	logging.Info().Int("crops", len(cat.Crops())).Msg("Crop catalog loaded")

	resolver, closeResolver, err := initGeocoder(cfg.Geocoder)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize geocoder")
	}
	defer closeResolver()

	weatherProvider := weather.NewOpenMeteoClient(cfg.Weather, logging.WithComponent("weather"))

	crops, err := classifier.New(cfg.Classifier, logging.WithComponent("classifier"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load crop classifier")
	}
	checkModelAccuracy(context.Background(), crops, cfg.Classifier.DatasetPath)

	sampler := market.NewSampler(cat, cfg.Market.Seed)
	prices, shared := initPriceSource(cfg.Market, sampler)
	economics := market.NewModel(cat)

	engine, err := recommend.NewEngine(cfg.Recommend, recommend.Dependencies{
		Calendar:   calendar,
		Economics:  economics,
		Prices:     prices,
		Geocoder:   resolver,
		Weather:    weatherProvider,
		Classifier: crops,
	}, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Engine:     engine,
		Catalog:    cat,
		Calendar:   calendar,
		Economics:  economics,
		Prices:     prices,
		Classifier: crops,
	}, logging.WithComponent("api"))
	router := api.NewRouter(handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)),
		logging.WithComponent("http"))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs slog; the adapter forwards to zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if shared != nil && cfg.Market.RefreshInterval > 0 {
		tree.AddMarketService(services.NewPriceRefreshService(shared, cfg.Market.RefreshInterval, logging.WithComponent("market")))
		logging.Info().Dur("interval", cfg.Market.RefreshInterval).Msg("Price refresher added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	stats := engine.Stats()
	logging.Info().
		Int64("requests", stats.Requests).
		Int64("failures", stats.Failures).
		Msg("Application stopped gracefully")
}
