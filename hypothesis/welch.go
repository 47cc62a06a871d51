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

	"github.com/AleutianAI/algobench/dist"
	"github.com/AleutianAI/algobench/effect"
)

// -----------------------------------------------------------------------------
// Welch's T-Test
// -----------------------------------------------------------------------------

// WelchTTest compares two independent samples without assuming equal
// variances.
//
// Description:
//
//	Computes Welch's t statistic with the Welch-Satterthwaite degrees of
//	freedom, a two-tailed p-value, the confidence interval for the mean
//	difference, Cohen's d with pooled standard deviation, post-hoc power,
//	and the per-group sample size required to reach 80% power at the
//	observed effect.
//
//	When both samples have zero variance and equal means the comparison
//	is degenerate but well defined: the result carries statistic 0,
//	p-value 1, and a warning. Zero variance with unequal means leaves the
//	statistic undefined and returns ErrZeroVariance.
//
// Inputs:
//   - labelA, labelB: group names used in narrative output.
//   - samplesA, samplesB: raw measurements, at least 2 per group.
//   - alpha: significance level in (0, 1).
//
// Outputs:
//   - *TwoSampleResult: the full analysis.
//   - error: ErrInsufficientSamples, ErrInvalidAlpha, ErrZeroVariance, or
//     a numerical error from the distribution layer.
//
// Thread Safety: Safe for concurrent use.
func WelchTTest(labelA, labelB string, samplesA, samplesB []float64, alpha float64) (*TwoSampleResult, error) {
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	if len(samplesA) < 2 || len(samplesB) < 2 {
		return nil, fmt.Errorf("%w: got nA=%d, nB=%d", ErrInsufficientSamples, len(samplesA), len(samplesB))
	}

	a := newSampleStats(labelA, samplesA)
	b := newSampleStats(labelB, samplesB)

	res := &TwoSampleResult{
		RunID:           newRunID(),
		Method:          MethodWelchT,
		GroupA:          a,
		GroupB:          b,
		Alpha:           alpha,
		ConfidenceLevel: 1 - alpha,
	}

	seA := a.Variance / float64(a.N)
	seB := b.Variance / float64(b.N)
	se := math.Sqrt(seA + seB)

	if se == 0 {
		if a.Mean != b.Mean {
			return nil, ErrZeroVariance
		}
		return degenerateResult(res), nil
	}

	diff := a.Mean - b.Mean
	res.Statistic = diff / se

	// Welch-Satterthwaite approximation.
	dfNum := (seA + seB) * (seA + seB)
	dfDen := seA*seA/float64(a.N-1) + seB*seB/float64(b.N-1)
	res.DegreesOfFreedom = dfNum / dfDen

	cdf, err := dist.TCDF(math.Abs(res.Statistic), res.DegreesOfFreedom)
	if err != nil {
		return nil, fmt.Errorf("t-test p-value: %w", err)
	}
	res.PValue = clampUnit(2 * (1 - cdf))
	res.Significant = res.PValue < alpha

	tCrit, err := dist.TInverseCDF(1-alpha/2, res.DegreesOfFreedom)
	if err != nil {
		return nil, fmt.Errorf("t-test confidence interval: %w", err)
	}
	res.CILower = diff - tCrit*se
	res.CIUpper = diff + tCrit*se

	res.EffectSize = effect.CohensD(a.Mean, b.Mean, a.Variance, b.Variance)
	res.EffectMagnitude = effect.CohenMagnitude(res.EffectSize).String()

	power, err := effect.Power(res.EffectSize, a.N, b.N, alpha)
	if err != nil {
		return nil, fmt.Errorf("t-test power analysis: %w", err)
	}
	res.Power = power
	res.RequiredSampleSize = effect.RequiredSampleSize(res.EffectSize, alpha, lowPowerThreshold)

	direction(res)
	res.Warnings = commonWarnings(a, b, res.Power)
	buildNarrative(res)
	return res, nil
}

// degenerateResult finishes a result where every measurement in both
// groups is identical.
func degenerateResult(res *TwoSampleResult) *TwoSampleResult {
	res.PValue = 1
	res.Power = 0
	res.RequiredSampleSize = effect.RequiredSampleSize(0, res.Alpha, lowPowerThreshold)
	res.EffectMagnitude = effect.Negligible.String()
	res.Verdict = VerdictNoDifference
	res.Warnings = commonWarnings(res.GroupA, res.GroupB, 0)
	res.Warnings = append(res.Warnings,
		"zero variance in both groups with identical means: groups are indistinguishable")
	buildNarrative(res)
	return res
}
