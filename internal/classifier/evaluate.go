// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Report summarises a dataset evaluation.
type Report struct {
	Samples  int     `json:"samples"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"` // percent
}

// EvaluateFile runs Evaluate over a CSV file.
func EvaluateFile(ctx context.Context, c Classifier, path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Evaluate(ctx, c, f)
}

// Evaluate classifies every row of a labelled CSV and counts top-1 hits.
// The header must name the feature columns and a "label" column, in any order.
func Evaluate(ctx context.Context, c Classifier, r io.Reader) (Report, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Report{}, fmt.Errorf("read header: %w", err)
	}
	cols, labelCol, err := columnIndex(header)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("line %d: %w", line, err)
		}

		features, err := parseRow(record, cols)
		if err != nil {
			return report, fmt.Errorf("line %d: %w", line, err)
		}
		preds, err := c.Classify(ctx, features)
		if err != nil {
			return report, fmt.Errorf("line %d: %w", line, err)
		}

		report.Samples++
		if top, ok := argmax(preds); ok && strings.EqualFold(top, strings.TrimSpace(record[labelCol])) {
			report.Correct++
		}
	}

	if report.Samples == 0 {
		return report, fmt.Errorf("dataset has no rows")
	}
	report.Accuracy = round2(float64(report.Correct) / float64(report.Samples) * 100)
	return report, nil
}

func columnIndex(header []string) ([]int, int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, len(FeatureNames))
	for i, name := range FeatureNames {
		idx, ok := pos[strings.ToLower(name)]
		if !ok {
			return nil, 0, fmt.Errorf("dataset missing column %q", name)
		}
		cols[i] = idx
	}
	labelCol, ok := pos["label"]
	if !ok {
		return nil, 0, fmt.Errorf("dataset missing column %q", "label")
	}
	return cols, labelCol, nil
}

func parseRow(record []string, cols []int) (Features, error) {
	v := make([]float64, len(cols))
	for i, idx := range cols {
		f, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
		if err != nil {
			return Features{}, fmt.Errorf("column %s: %w", FeatureNames[i], err)
		}
		v[i] = f
	}
	return Features{N: v[0], P: v[1], K: v[2], Temperature: v[3], Humidity: v[4], PH: v[5], Rainfall: v[6]}, nil
}

// argmax returns the first label with the highest probability.
func argmax(preds []Prediction) (string, bool) {
	if len(preds) == 0 {
		return "", false
	}
	best := 0
	for i := 1; i < len(preds); i++ {
		if preds[i].Probability > preds[best].Probability {
			best = i
		}
	}
	return preds[best].Label, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
