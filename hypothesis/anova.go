// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hypothesis

import (
	"fmt"
	"sort"

	"github.com/AleutianAI/algobench/dist"
)

// -----------------------------------------------------------------------------
// One-Way ANOVA
// -----------------------------------------------------------------------------

// OneWayANOVA tests whether k independent groups share a common mean.
//
// Description:
//
//	Partitions the total sum of squares into between-group and
//	within-group components and compares their mean squares on an F
//	distribution with (k-1, N-k) degrees of freedom. When the overall
//	test is significant, every pair of groups is compared with Welch's
//	t-test at the Bonferroni-corrected level alpha / C(k, 2) so the
//	family-wise error rate stays at alpha.
//
//	Groups are processed in sorted label order so results are
//	deterministic regardless of map iteration order.
//
// Inputs:
//   - groups: label to measurements, at least 2 groups with at least 2
//     samples each.
//   - alpha: overall significance level in (0, 1).
//
// Outputs:
//   - *MultiGroupResult: the full analysis. Pairwise is populated only
//     when the overall test rejects.
//   - error: ErrTooFewGroups, ErrInsufficientSamples, ErrInvalidAlpha,
//     ErrZeroVariance, or a numerical error from the distribution layer.
//
// Thread Safety: Safe for concurrent use.
func OneWayANOVA(groups map[string][]float64, alpha float64) (*MultiGroupResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if len(groups) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewGroups, len(groups))
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	stats := make([]SampleStats, 0, len(labels))
	totalN := 0
	var grandSum float64
	for _, label := range labels {
		xs := groups[label]
		if len(xs) < 2 {
			return nil, fmt.Errorf("%w: group %q has n=%d", ErrInsufficientSamples, label, len(xs))
		}
		s := newSampleStats(label, xs)
		stats = append(stats, s)
		totalN += s.N
		grandSum += s.Mean * float64(s.N)
	}
	grandMean := grandSum / float64(totalN)

	var ssBetween, ssWithin float64
	for _, s := range stats {
		d := s.Mean - grandMean
		ssBetween += float64(s.N) * d * d
		ssWithin += s.Variance * float64(s.N-1)
	}

	k := len(stats)
	res := &MultiGroupResult{
		RunID:     newRunID(),
		Groups:    stats,
		DFBetween: k - 1,
		DFWithin:  totalN - k,
		Alpha:     alpha,
	}

	best := stats[0]
	for _, s := range stats[1:] {
		if s.Mean < best.Mean {
			best = s
		}
	}
	res.BestGroup = best.Label

	pairs := k * (k - 1) / 2
	res.AdjustedAlpha = alpha / float64(pairs)

	msBetween := ssBetween / float64(res.DFBetween)
	msWithin := ssWithin / float64(res.DFWithin)

	if msWithin == 0 {
		if msBetween == 0 {
			// Every group is a constant with the same value.
			res.PValue = 1
			res.Warnings = append(res.Warnings,
				"zero variance within and between groups: groups are indistinguishable")
			return res, nil
		}
		return nil, ErrZeroVariance
	}

	res.FStatistic = msBetween / msWithin
	cdf, err := dist.FCDF(res.FStatistic, float64(res.DFBetween), float64(res.DFWithin))
	if err != nil {
		return nil, fmt.Errorf("anova p-value: %w", err)
	}
	res.PValue = clampUnit(1 - cdf)
	res.Significant = res.PValue < alpha

	for _, s := range stats {
		if s.N < smallSampleThreshold {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("small sample size for %s (n=%d): results may be unstable below n=%d",
					s.Label, s.N, smallSampleThreshold))
		}
	}

	if !res.Significant {
		return res, nil
	}

	// Pairwise Welch comparisons at the Bonferroni-corrected level.
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			pair, err := WelchTTest(labels[i], labels[j],
				groups[labels[i]], groups[labels[j]], res.AdjustedAlpha)
			if err != nil {
				return nil, fmt.Errorf("pairwise %s vs %s: %w", labels[i], labels[j], err)
			}
			res.Pairwise = append(res.Pairwise, pair)
		}
	}
	return res, nil
}
