// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built once and shared; it caches struct
// metadata, so reusing it is cheaper than constructing one per request.
// Field names in messages come from the struct's json tags, so a failure on
// LandSize reads "land_size must be greater than or equal to 0".
//
// # Custom tags
//
//   - notblank: the string contains something other than whitespace
//
// # Usage
//
//	type predictInput struct {
//	    District string  `json:"district" validate:"required,notblank,max=100"`
//	    LandSize float64 `json:"land_size" validate:"gte=0"`
//	}
//
//	if verr := validation.ValidateStruct(&in); verr != nil {
//	    respondError(w, http.StatusInternalServerError, verr.Error())
//	    return
//	}
package validation
