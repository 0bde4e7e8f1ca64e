// SmartKisan - Crop Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/smartkisan

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/smartkisan/internal/classifier"
)

// SeasonFit reports whether crop can be sown in season.
type SeasonFit func(crop, season string) bool

// Rank selects k labels. Labels are ordered by descending probability with
// ties kept in classifier order, then season matches are taken first and any
// remaining slots are backfilled from the non-matching labels in the same
// order. It returns the selection and how many slots were backfilled.
func Rank(preds []classifier.Prediction, season string, fits SeasonFit, k int) ([]Ranked, int, error) {
	if k <= 0 {
		return nil, 0, fmt.Errorf("shortlist size must be positive, got %d", k)
	}
	if len(preds) < k {
		return nil, 0, fmt.Errorf("%w: have %d, need %d", ErrTooFewLabels, len(preds), k)
	}

	sorted := make([]classifier.Prediction, len(preds))
	copy(sorted, preds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	seasonal := make([]Ranked, 0, k)
	var nonSeasonal []Ranked
	for _, p := range sorted {
		r := Ranked{Label: p.Label, Probability: p.Probability, SeasonMatch: fits(p.Label, season)}
		if r.SeasonMatch {
			if len(seasonal) < k {
				seasonal = append(seasonal, r)
			}
			continue
		}
		nonSeasonal = append(nonSeasonal, r)
	}

	if len(seasonal) >= k {
		return seasonal, 0, nil
	}

	backfill := k - len(seasonal)
	return append(seasonal, nonSeasonal[:backfill]...), backfill, nil
}
