// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cat := Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if len(cat.CropSeasons) != 20 {
		t.Errorf("CropSeasons has %d crops, want 20", len(cat.CropSeasons))
	}
	for _, table := range []int{len(cat.PriceRanges), len(cat.Yields), len(cat.Costs)} {
		if table != 12 {
			t.Errorf("market table has %d crops, want 12", table)
		}
	}
	if cat.Defaults != (Defaults{Price: 2500, Yield: 20, Cost: 18000}) {
		t.Errorf("Defaults = %+v", cat.Defaults)
	}
}

func TestDefault_MonthSeasons(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"january": Rabi, "february": Rabi,
		"march": Zaid, "april": Zaid, "may": Zaid,
		"june": Kharif, "july": Kharif, "august": Kharif, "september": Kharif,
		"october": Rabi, "november": Rabi, "december": Rabi,
	}
	cat := Default()
	for month, season := range want {
		if got := cat.MonthSeasons[month]; got != season {
			t.Errorf("MonthSeasons[%s] = %q, want %q", month, got, season)
		}
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()

	cat, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cat.PriceRanges["apple"] != (PriceRange{Low: 5200, High: 7500}) {
		t.Errorf("apple range = %+v", cat.PriceRanges["apple"])
	}
}

func TestLoad_OverridesAndNormalizes(t *testing.T) {
	t.Parallel()

	content := `
crop_seasons:
  Wheat: [Rabi]
price_ranges:
  wheat:
    low: 2275
    high: 2700
yields:
  Coffee: 8.5
`
	path := filepath.Join(t.TempDir(), "crops.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cat.CropSeasons["wheat"]; len(got) != 1 || got[0] != Rabi {
		t.Errorf("CropSeasons[wheat] = %v, want [rabi]", got)
	}
	if got := cat.PriceRanges["wheat"]; got != (PriceRange{Low: 2275, High: 2700}) {
		t.Errorf("PriceRanges[wheat] = %+v", got)
	}
	if got := cat.Yields["coffee"]; got != 8.5 {
		t.Errorf("Yields[coffee] = %v, want 8.5", got)
	}
	// Untouched entries survive the merge
	if got := cat.CropSeasons["rice"]; len(got) != 1 || got[0] != Kharif {
		t.Errorf("CropSeasons[rice] = %v, want [kharif]", got)
	}
	if got := cat.Costs["banana"]; got != 65000 {
		t.Errorf("Costs[banana] = %v, want 65000", got)
	}
}

func TestLoad_RejectsInvalidTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown crop season", "crop_seasons:\n  rice: [monsoon]\n", "unknown season"},
		{"inverted price range", "price_ranges:\n  rice:\n    low: 3000\n    high: 2000\n", "invalid price range"},
		{"unknown month season", "month_seasons:\n  june: summer\n", "unknown season"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "crops.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestCrops_UnionSorted(t *testing.T) {
	t.Parallel()

	crops := Default().Crops()
	// 20 seasonal crops plus wheat, cotton, soybean, mustard from the market tables
	if len(crops) != 24 {
		t.Errorf("Crops() returned %d, want 24: %v", len(crops), crops)
	}
	for i := 1; i < len(crops); i++ {
		if crops[i-1] >= crops[i] {
			t.Fatalf("Crops() not sorted at %d: %v", i, crops)
		}
	}
}
