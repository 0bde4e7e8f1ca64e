// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

/*
Package supervisor provides process supervision for SmartKisan using suture v4.

Long-running services are arranged in a small hierarchy so that a failing
background job never takes the HTTP API down with it:

	RootSupervisor ("smartkisan")
	├── MarketSupervisor ("market-layer")
	│   └── PriceRefreshService (shared price mode with a refresh interval)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Services that return an error are restarted with suture's backoff. Returning
from Serve after the context is canceled ends the service for good.

Supervisor events (restarts, backoff, stop timeouts) are logged through
sutureslog, bridged to zerolog by logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
