// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package api

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/smartkisan/internal/recommend"
	"github.com/tomtom215/smartkisan/internal/validation"
)

// maxRequestBodyBytes bounds POST /predict-crop bodies.
const maxRequestBodyBytes = 64 << 10

// defaultLandSize is used when land_size is omitted (acres).
const defaultLandSize = 1.0

// FlexFloat is a JSON number that also accepts a numeric string, so "90" and
// 90 decode to the same value. Non-finite values are rejected.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("could not convert %s to a number", strconv.Quote(raw))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s is not a finite number", strconv.Quote(raw))
	}

	*f = FlexFloat(v)
	return nil
}

// PredictRequest is the POST /predict-crop body. Pointer fields distinguish
// a missing value from zero.
type PredictRequest struct {
	N           *FlexFloat `json:"N" validate:"required"`
	P           *FlexFloat `json:"P" validate:"required"`
	K           *FlexFloat `json:"K" validate:"required"`
	PH          *FlexFloat `json:"ph" validate:"required"`
	LandSize    *FlexFloat `json:"land_size" validate:"omitempty,gte=0"`
	State       string     `json:"state" validate:"required,notblank,max=100"`
	District    string     `json:"district" validate:"required,notblank,max=100"`
	SowingMonth string     `json:"sowing_month" validate:"required,notblank,max=20"`
}

// decodePredictRequest parses and validates a request body. Any failure is
// returned as a *recommend.PredictionError.
func decodePredictRequest(body io.Reader) (recommend.Request, error) {
	var in PredictRequest
	if err := json.NewDecoder(body).Decode(&in); err != nil {
		return recommend.Request{}, recommend.NewPredictionError("invalid request body: %v", err)
	}

	if verr := validation.ValidateStruct(&in); verr != nil {
		return recommend.Request{}, &recommend.PredictionError{Err: verr}
	}

	landSize := defaultLandSize
	if in.LandSize != nil {
		landSize = float64(*in.LandSize)
	}

	return recommend.Request{
		N:           float64(*in.N),
		P:           float64(*in.P),
		K:           float64(*in.K),
		PH:          float64(*in.PH),
		LandSize:    landSize,
		State:       strings.TrimSpace(in.State),
		District:    strings.TrimSpace(in.District),
		SowingMonth: strings.TrimSpace(in.SowingMonth),
	}, nil
}
