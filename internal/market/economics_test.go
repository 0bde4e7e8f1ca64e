// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package market

import (
	"testing"
	"time"

	"github.com/tomtom215/smartkisan/internal/catalog"
)

func TestAnnotate(t *testing.T) {
	t.Parallel()

	model := NewModel(catalog.Default())
	prices := NewPriceTable(map[string]int{"rice": 2300, "apple": 6000}, time.Now())

	tests := []struct {
		name        string
		crop        string
		landSize    float64
		wantPrice   int
		wantYield   float64
		wantRevenue int64
		wantCost    int64
	}{
		{"rice one acre", "rice", 1, 2300, 25, 57500, 22000},
		{"rice uppercase label", "Rice", 2, 2300, 25, 115000, 44000},
		{"apple fractional land", "apple", 0.5, 6000, 45, 135000, 30000},
		{"fractional revenue truncates", "rice", 0.33, 2300, 25, 18975, 7260},
		{"crop missing from all tables", "coffee", 1, 2500, 20, 50000, 18000},
		{"crop with seasons but no economics", "mango", 3, 2500, 20, 150000, 54000},
		{"priced crop without sampled price", "wheat", 1, 2500, 22, 55000, 18000},
		{"zero land", "rice", 0, 2300, 25, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := model.Annotate(tt.crop, tt.landSize, prices)
			if got.PricePerQuintal != tt.wantPrice {
				t.Errorf("PricePerQuintal = %d, want %d", got.PricePerQuintal, tt.wantPrice)
			}
			if got.YieldPerAcre != tt.wantYield {
				t.Errorf("YieldPerAcre = %v, want %v", got.YieldPerAcre, tt.wantYield)
			}
			if got.TotalRevenue != tt.wantRevenue {
				t.Errorf("TotalRevenue = %d, want %d", got.TotalRevenue, tt.wantRevenue)
			}
			if got.TotalCost != tt.wantCost {
				t.Errorf("TotalCost = %d, want %d", got.TotalCost, tt.wantCost)
			}
			if got.NetProfit != got.TotalRevenue-got.TotalCost {
				t.Errorf("NetProfit = %d, want revenue - cost = %d", got.NetProfit, got.TotalRevenue-got.TotalCost)
			}
		})
	}
}

func TestRanges_ReturnsCopy(t *testing.T) {
	t.Parallel()

	model := NewModel(catalog.Default())
	ranges := model.Ranges()
	ranges["rice"] = catalog.PriceRange{Low: 1, High: 2}

	if model.Ranges()["rice"].Low != 2100 {
		t.Error("Ranges() must not expose internal state")
	}
}
