// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Season names.
const (
	Kharif = "kharif"
	Rabi   = "rabi"
	Zaid   = "zaid"
)

// PriceRange is an inclusive mandi price range per quintal.
type PriceRange struct {
	Low  int `koanf:"low" json:"low"`
	High int `koanf:"high" json:"high"`
}

// Defaults are the economics used for crops absent from the market tables.
type Defaults struct {
	Price int     `koanf:"price" json:"price"`
	Yield float64 `koanf:"yield" json:"yield"`
	Cost  float64 `koanf:"cost" json:"cost"`
}

// Catalog is the full set of static tables.
type Catalog struct {
	Months       []string              `koanf:"months" json:"months"`
	MonthSeasons map[string]string     `koanf:"month_seasons" json:"month_seasons"`
	CropSeasons  map[string][]string   `koanf:"crop_seasons" json:"crop_seasons"`
	PriceRanges  map[string]PriceRange `koanf:"price_ranges" json:"price_ranges"`
	Yields       map[string]float64    `koanf:"yields" json:"yields"`
	Costs        map[string]float64    `koanf:"costs" json:"costs"`
	Defaults     Defaults              `koanf:"defaults" json:"defaults"`
}

// Default returns the built-in tables.
func Default() *Catalog {
	return &Catalog{
		Months: []string{
			"january", "february", "march", "april", "may", "june",
			"july", "august", "september", "october", "november", "december",
		},
		MonthSeasons: map[string]string{
			"january":   Rabi,
			"february":  Rabi,
			"march":     Zaid,
			"april":     Zaid,
			"may":       Zaid,
			"june":      Kharif,
			"july":      Kharif,
			"august":    Kharif,
			"september": Kharif,
			"october":   Rabi,
			"november":  Rabi,
			"december":  Rabi,
		},
		CropSeasons: map[string][]string{
			"rice":        {Kharif},
			"maize":       {Kharif, Zaid},
			"chickpea":    {Rabi},
			"kidneybeans": {Kharif},
			"pigeonpeas":  {Kharif},
			"mothbeans":   {Kharif},
			"mungbean":    {Kharif, Zaid},
			"blackgram":   {Kharif},
			"lentil":      {Rabi},
			"jute":        {Kharif},
			"pomegranate": {Zaid, Rabi},
			"banana":      {Zaid},
			"mango":       {Zaid},
			"grapes":      {Rabi},
			"watermelon":  {Zaid},
			"muskmelon":   {Zaid},
			"apple":       {Rabi},
			"orange":      {Rabi},
			"papaya":      {Zaid},
			"coconut":     {Kharif, Rabi},
		},
		PriceRanges: map[string]PriceRange{
			"rice":        {Low: 2100, High: 2500},
			"wheat":       {Low: 2200, High: 2600},
			"maize":       {Low: 1800, High: 2300},
			"chickpea":    {Low: 4800, High: 5600},
			"orange":      {Low: 900, High: 1400},
			"grapes":      {Low: 3000, High: 4200},
			"pomegranate": {Low: 3800, High: 5200},
			"apple":       {Low: 5200, High: 7500},
			"banana":      {Low: 900, High: 1400},
			"cotton":      {Low: 6500, High: 7800},
			"soybean":     {Low: 3800, High: 4800},
			"mustard":     {Low: 5000, High: 6200},
		},
		Yields: map[string]float64{
			"rice":        25,
			"wheat":       22,
			"maize":       20,
			"chickpea":    10,
			"orange":      40,
			"grapes":      50,
			"pomegranate": 35,
			"apple":       45,
			"banana":      55,
			"cotton":      18,
			"soybean":     15,
			"mustard":     12,
		},
		Costs: map[string]float64{
			"rice":        22000,
			"wheat":       18000,
			"maize":       16000,
			"chickpea":    14000,
			"orange":      45000,
			"grapes":      48000,
			"pomegranate": 52000,
			"apple":       60000,
			"banana":      65000,
			"cotton":      28000,
			"soybean":     17000,
			"mustard":     15000,
		},
		Defaults: Defaults{
			Price: 2500,
			Yield: 20,
			Cost:  18000,
		},
	}
}

// Load returns the built-in tables overridden by the YAML file at path.
// An empty path returns Default().
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load built-in catalog: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load catalog file %s: %w", path, err)
	}

	cat := &Catalog{}
	if err := k.Unmarshal("", cat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}
	cat.normalize()

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s is invalid: %w", path, err)
	}
	return cat, nil
}

// normalize lowercases every key and value used for lookups.
func (c *Catalog) normalize() {
	for i, m := range c.Months {
		c.Months[i] = normalizeKey(m)
	}

	monthSeasons := make(map[string]string, len(c.MonthSeasons))
	for m, s := range c.MonthSeasons {
		monthSeasons[normalizeKey(m)] = normalizeKey(s)
	}
	c.MonthSeasons = monthSeasons

	cropSeasons := make(map[string][]string, len(c.CropSeasons))
	for crop, seasons := range c.CropSeasons {
		normalized := make([]string, len(seasons))
		for i, s := range seasons {
			normalized[i] = normalizeKey(s)
		}
		cropSeasons[normalizeKey(crop)] = normalized
	}
	c.CropSeasons = cropSeasons

	prices := make(map[string]PriceRange, len(c.PriceRanges))
	for crop, r := range c.PriceRanges {
		prices[normalizeKey(crop)] = r
	}
	c.PriceRanges = prices

	c.Yields = normalizeFloatKeys(c.Yields)
	c.Costs = normalizeFloatKeys(c.Costs)
}

func normalizeFloatKeys(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[normalizeKey(k)] = v
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks that the tables are internally consistent.
func (c *Catalog) Validate() error {
	if len(c.Months) != 12 {
		return fmt.Errorf("months must list 12 names, got %d", len(c.Months))
	}
	seen := make(map[string]bool, 12)
	for _, m := range c.Months {
		if seen[m] {
			return fmt.Errorf("month %q listed twice", m)
		}
		seen[m] = true
		season, ok := c.MonthSeasons[m]
		if !ok {
			return fmt.Errorf("month %q has no season", m)
		}
		if !IsSeason(season) {
			return fmt.Errorf("month %q maps to unknown season %q", m, season)
		}
	}

	for crop, seasons := range c.CropSeasons {
		for _, s := range seasons {
			if !IsSeason(s) {
				return fmt.Errorf("crop %q lists unknown season %q", crop, s)
			}
		}
	}

	for crop, r := range c.PriceRanges {
		if r.Low <= 0 || r.High < r.Low {
			return fmt.Errorf("crop %q has invalid price range [%d, %d]", crop, r.Low, r.High)
		}
	}
	for crop, y := range c.Yields {
		if y < 0 {
			return fmt.Errorf("crop %q has negative yield", crop)
		}
	}
	for crop, cost := range c.Costs {
		if cost < 0 {
			return fmt.Errorf("crop %q has negative cost", crop)
		}
	}

	if c.Defaults.Price <= 0 || c.Defaults.Yield < 0 || c.Defaults.Cost < 0 {
		return fmt.Errorf("defaults must be non-negative with a positive price")
	}
	return nil
}

// IsSeason reports whether s is one of kharif, rabi or zaid.
func IsSeason(s string) bool {
	return s == Kharif || s == Rabi || s == Zaid
}

// Crops returns every crop named in any table, sorted.
func (c *Catalog) Crops() []string {
	set := make(map[string]struct{})
	for crop := range c.CropSeasons {
		set[crop] = struct{}{}
	}
	for crop := range c.PriceRanges {
		set[crop] = struct{}{}
	}
	for crop := range c.Yields {
		set[crop] = struct{}{}
	}
	for crop := range c.Costs {
		set[crop] = struct{}{}
	}

	crops := make([]string, 0, len(set))
	for crop := range set {
		crops = append(crops, crop)
	}
	sort.Strings(crops)
	return crops
}
