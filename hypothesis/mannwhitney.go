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
	"math"
	"sort"

	"github.com/AleutianAI/algobench/dist"
	"github.com/AleutianAI/algobench/effect"
)

// Per-group sample size below which the normal approximation to the U
// distribution becomes questionable.
const mwuNormalApproxMin = 8

// -----------------------------------------------------------------------------
// Mann-Whitney U Test
// -----------------------------------------------------------------------------

// MannWhitneyU compares two independent samples by rank, making no
// assumption about the underlying distributions.
//
// Description:
//
//	Ranks the pooled samples with midrank tie handling, takes U as the
//	smaller of the two group statistics, and derives a two-tailed p-value
//	from the normal approximation with the tie-corrected variance. The
//	effect size is the rank-biserial correlation, reported on the [0, 1]
//	scale since U is the minimum; direction comes from the group means.
//	Power is still estimated on the Cohen's d scale since the power
//	approximation is defined there.
//
//	When every pooled value is tied the variance of U is zero; the
//	statistic is reported as 0 with p-value 1 rather than failing.
//
// Inputs:
//   - labelA, labelB: group names used in narrative output.
//   - samplesA, samplesB: raw measurements, at least 2 per group.
//   - alpha: significance level in (0, 1).
//
// Outputs:
//   - *TwoSampleResult: Statistic carries the z approximation and
//     DegreesOfFreedom is 0.
//   - error: ErrInsufficientSamples or ErrInvalidAlpha.
//
// Thread Safety: Safe for concurrent use.
func MannWhitneyU(labelA, labelB string, samplesA, samplesB []float64, alpha float64) (*TwoSampleResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if len(samplesA) < 2 || len(samplesB) < 2 {
		return nil, fmt.Errorf("%w: got nA=%d, nB=%d", ErrInsufficientSamples, len(samplesA), len(samplesB))
	}

	a := newSampleStats(labelA, samplesA)
	b := newSampleStats(labelB, samplesB)
	nA, nB := float64(a.N), float64(b.N)

	res := &TwoSampleResult{
		RunID:           newRunID(),
		Method:          MethodMannWhitneyU,
		GroupA:          a,
		GroupB:          b,
		Alpha:           alpha,
		ConfidenceLevel: 1 - alpha,
	}

	ranks, tieTerm := midranks(samplesA, samplesB)
	var rankSumA float64
	for i := range samplesA {
		rankSumA += ranks[i]
	}
	uA := rankSumA - nA*(nA+1)/2
	u := math.Min(uA, nA*nB-uA)

	n := nA + nB
	meanU := nA * nB / 2
	varU := nA * nB / 12 * ((n + 1) - tieTerm/(n*(n-1)))

	if varU <= 0 {
		// Every pooled value is tied.
		res.PValue = 1
		res.Power = 0
		res.RequiredSampleSize = effect.RequiredSampleSize(0, alpha, lowPowerThreshold)
		res.EffectMagnitude = effect.Negligible.String()
		res.Warnings = append(res.Warnings,
			"all pooled values are tied: rank test carries no information")
		direction(res)
		buildNarrative(res)
		return res, nil
	}

	res.Statistic = (u - meanU) / math.Sqrt(varU)
	res.PValue = clampUnit(2 * (1 - dist.NormalCDF(math.Abs(res.Statistic))))
	res.Significant = res.PValue < alpha

	res.EffectSize = effect.RankBiserial(u, a.N, b.N)
	res.EffectMagnitude = effect.RankBiserialMagnitude(res.EffectSize).String()

	// Power on the d scale; the rank test has no closed-form power here.
	d := effect.CohensD(a.Mean, b.Mean, a.Variance, b.Variance)
	power, err := effect.Power(d, a.N, b.N, alpha)
	if err != nil {
		return nil, fmt.Errorf("rank test power analysis: %w", err)
	}
	res.Power = power
	res.RequiredSampleSize = effect.RequiredSampleSize(d, alpha, lowPowerThreshold)

	direction(res)
	res.Warnings = commonWarnings(a, b, res.Power)
	if a.N < mwuNormalApproxMin || b.N < mwuNormalApproxMin {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("normal approximation to the U distribution is unreliable below n=%d per group",
				mwuNormalApproxMin))
	}
	buildNarrative(res)
	return res, nil
}

// midranks assigns midrank-averaged ranks to the pooled samples and
// returns them in input order (A first, then B) along with the tie
// correction term sum(t^3 - t) over tie groups.
func midranks(samplesA, samplesB []float64) ([]float64, float64) {
	type entry struct {
		value float64
		index int
	}
	pooled := make([]entry, 0, len(samplesA)+len(samplesB))
	for i, v := range samplesA {
		pooled = append(pooled, entry{v, i})
	}
	for i, v := range samplesB {
		pooled = append(pooled, entry{v, len(samplesA) + i})
	}
	sort.Slice(pooled, func(i, j int) bool { return pooled[i].value < pooled[j].value })

	ranks := make([]float64, len(pooled))
	var tieTerm float64
	for i := 0; i < len(pooled); {
		j := i
		for j < len(pooled) && pooled[j].value == pooled[i].value {
			j++
		}
		// Positions i..j-1 share the average of ranks i+1..j.
		mid := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[pooled[k].index] = mid
		}
		if t := float64(j - i); t > 1 {
			tieTerm += t*t*t - t
		}
		i = j
	}
	return ranks, tieTerm
}
