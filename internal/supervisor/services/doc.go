// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package services provides suture.Service wrappers for SmartKisan's
// long-running components: the HTTP server and the mandi price refresher.
package services
