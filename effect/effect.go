// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package effect

import (
	"errors"
	"math"

	"github.com/AleutianAI/algobench/dist"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInsufficientSamples indicates not enough samples for the calculation.
	ErrInsufficientSamples = errors.New("insufficient samples for effect size analysis")

	// ErrInvalidAlpha indicates a significance level outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in the open interval (0, 1)")
)

// -----------------------------------------------------------------------------
// Magnitude
// -----------------------------------------------------------------------------

// Magnitude categorizes effect sizes into interpretation tiers.
type Magnitude int

const (
	// Negligible indicates an effect too small to matter in practice.
	Negligible Magnitude = iota
	// Small indicates a small effect.
	Small
	// Medium indicates a medium effect.
	Medium
	// Large indicates a large effect.
	Large
)

// String returns the string representation.
func (m Magnitude) String() string {
	switch m {
	case Negligible:
		return "negligible"
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Large:
		return "large"
	default:
		return "unknown"
	}
}

// CohenMagnitude returns the interpretation tier for a Cohen's d value
// using Cohen's conventional thresholds (0.2 / 0.5 / 0.8). The absolute
// value is used, so direction does not affect the tier.
func CohenMagnitude(d float64) Magnitude {
	absD := math.Abs(d)
	switch {
	case absD < 0.2:
		return Negligible
	case absD < 0.5:
		return Small
	case absD < 0.8:
		return Medium
	default:
		return Large
	}
}

// RankBiserialMagnitude returns the interpretation tier for a rank-biserial
// correlation. The thresholds (0.1 / 0.3 / 0.5) differ from Cohen's d
// because the two statistics are not on the same scale.
func RankBiserialMagnitude(r float64) Magnitude {
	absR := math.Abs(r)
	switch {
	case absR < 0.1:
		return Negligible
	case absR < 0.3:
		return Small
	case absR < 0.5:
		return Medium
	default:
		return Large
	}
}

// -----------------------------------------------------------------------------
// Effect Sizes
// -----------------------------------------------------------------------------

// CohensD computes Cohen's d effect size magnitude from summary statistics.
//
// Description:
//
//	Standardized mean difference |meanA - meanB| / sqrt((varA + varB) / 2),
//	using the equal-weight pooled standard deviation. Returned as a
//	magnitude (always >= 0); direction is carried separately by callers.
//	A zero pooled standard deviation yields d = 0, the degenerate
//	zero-effect convention for identical constant samples.
//
// Inputs:
//   - meanA, meanB: Group means.
//   - varA, varB: Unbiased group variances. Must be non-negative.
//
// Outputs:
//   - float64: Cohen's d magnitude.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func CohensD(meanA, meanB, varA, varB float64) float64 {
	pooled := math.Sqrt((varA + varB) / 2)
	if pooled == 0 {
		return 0
	}
	return math.Abs(meanA-meanB) / pooled
}

// RankBiserial computes the rank-biserial correlation from a Mann-Whitney
// U statistic.
//
// Description:
//
//	r = 1 - 2U / (nA * nB). With U = min(U_A, U_B) the result lies in
//	[0, 1] and is interpreted as a magnitude.
//
// Inputs:
//   - u: The Mann-Whitney U statistic (smaller of the two).
//   - nA, nB: Group sizes. Must be positive.
//
// Outputs:
//   - float64: Rank-biserial correlation.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func RankBiserial(u float64, nA, nB int) float64 {
	if nA <= 0 || nB <= 0 {
		return 0
	}
	return 1 - 2*u/(float64(nA)*float64(nB))
}

// -----------------------------------------------------------------------------
// Power Analysis
// -----------------------------------------------------------------------------

// Power estimates the statistical power of a two-sample t-test.
//
// Description:
//
//	Normal approximation to the noncentral t power curve:
//
//	  delta    = d * sqrt(n1*n2 / (n1+n2))
//	  critical = TInverseCDF(1 - alpha/2, n1+n2-2)
//	  power    = 1 - Phi(critical - delta) + Phi(-critical - delta)
//
//	clamped to [0, 1].
//
// Inputs:
//   - d: Cohen's d effect size.
//   - n1, n2: Group sizes. Each must be at least 2.
//   - alpha: Significance level in (0, 1).
//
// Outputs:
//   - float64: Estimated power in [0, 1].
//   - error: ErrInsufficientSamples or ErrInvalidAlpha on domain violations.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func Power(d float64, n1, n2 int, alpha float64) (float64, error) {
	if n1 < 2 || n2 < 2 {
		return 0, ErrInsufficientSamples
	}
	if alpha <= 0 || alpha >= 1 {
		return 0, ErrInvalidAlpha
	}

	fn1, fn2 := float64(n1), float64(n2)
	delta := d * math.Sqrt(fn1*fn2/(fn1+fn2))

	critical, err := dist.TInverseCDF(1-alpha/2, fn1+fn2-2)
	if err != nil {
		return 0, err
	}

	power := 1 - dist.NormalCDF(critical-delta) + dist.NormalCDF(-critical-delta)
	if power < 0 {
		power = 0
	}
	if power > 1 {
		power = 1
	}
	return power, nil
}

// RequiredSampleSize computes the per-group sample size needed to detect an
// effect of size d with the given power.
//
// Description:
//
//	Cohen's formula n = 2 * (z_alpha + z_power)^2 / d^2, rounded up.
//	A zero effect size needs infinite samples; MaxInt32 is returned as
//	the sentinel for that case.
//
// Inputs:
//   - d: Target Cohen's d effect size.
//   - alpha: Significance level in (0, 1).
//   - targetPower: Desired power in (0, 1), e.g. 0.8.
//
// Outputs:
//   - int: Required sample size per group.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func RequiredSampleSize(d, alpha, targetPower float64) int {
	if d == 0 {
		return math.MaxInt32
	}
	zAlpha, err := dist.NormalInverseCDF(1 - alpha/2)
	if err != nil {
		return math.MaxInt32
	}
	zPower, err := dist.NormalInverseCDF(targetPower)
	if err != nil {
		return math.MaxInt32
	}

	n := 2 * math.Pow((zAlpha+zPower)/d, 2)
	return int(math.Ceil(n))
}
