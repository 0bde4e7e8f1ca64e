// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package classifier

import (
	"context"
	"strings"
	"testing"
)

// fixedClassifier always predicts label.
type fixedClassifier struct {
	label string
}

func (f fixedClassifier) Classify(context.Context, Features) ([]Prediction, error) {
	return []Prediction{{Label: "other", Probability: 0.2}, {Label: f.label, Probability: 0.8}}, nil
}

func TestEvaluate_CentroidRows(t *testing.T) {
	t.Parallel()

	m, err := DefaultCentroidModel(1)
	if err != nil {
		t.Fatal(err)
	}

	dataset := `N,P,K,temperature,humidity,ph,rainfall,label
79.89,47.58,39.87,23.69,82.27,6.43,236.18,rice
77.76,48.44,19.79,22.39,65.09,6.25,84.77,maize
40.09,67.79,79.92,18.87,16.86,7.34,80.06,chickpea
`
	report, err := Evaluate(context.Background(), m, strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if report.Samples != 3 || report.Correct != 3 || report.Accuracy != 100 {
		t.Errorf("Evaluate() = %+v, want 3/3 at 100%%", report)
	}
}

func TestEvaluate_ColumnOrderAndAccuracy(t *testing.T) {
	t.Parallel()

	dataset := `label,rainfall,ph,humidity,temperature,K,P,N
rice,200,6.5,80,25,40,40,80
Maize,200,6.5,80,25,40,40,80
wheat,200,6.5,80,25,40,40,80
`
	report, err := Evaluate(context.Background(), fixedClassifier{label: "rice"}, strings.NewReader(dataset))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if report.Correct != 1 || report.Samples != 3 {
		t.Errorf("Evaluate() = %+v, want 1/3", report)
	}
	if report.Accuracy != 33.33 {
		t.Errorf("Accuracy = %v, want 33.33", report.Accuracy)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dataset string
	}{
		{"empty", ``},
		{"missing label column", "N,P,K,temperature,humidity,ph,rainfall\n1,2,3,4,5,6,7\n"},
		{"missing feature column", "N,P,K,temperature,humidity,rainfall,label\n1,2,3,4,5,6,rice\n"},
		{"non numeric", "N,P,K,temperature,humidity,ph,rainfall,label\nx,2,3,4,5,6,7,rice\n"},
		{"ragged row", "N,P,K,temperature,humidity,ph,rainfall,label\n1,2,3\n"},
		{"header only", "N,P,K,temperature,humidity,ph,rainfall,label\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Evaluate(context.Background(), fixedClassifier{label: "rice"}, strings.NewReader(tt.dataset)); err == nil {
				t.Error("Evaluate() expected error")
			}
		})
	}
}

func TestEvaluate_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dataset := "N,P,K,temperature,humidity,ph,rainfall,label\n1,2,3,4,5,6,7,rice\n"
	if _, err := Evaluate(ctx, fixedClassifier{label: "rice"}, strings.NewReader(dataset)); err == nil {
		t.Error("Evaluate() expected context error")
	}
}
