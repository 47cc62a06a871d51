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
	"math"
	"sort"
)

// Minimum sample size below which the skewness/kurtosis estimators are too
// unreliable to act on; CheckNormality passes such samples through.
const minNormalityCheckSize = 8

// Skewness computes the moment-based sample skewness.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func Skewness(sample []float64) float64 {
	n := len(sample)
	if n < 2 {
		return 0
	}
	mean := meanOf(sample)
	var m2, m3 float64
	for _, v := range sample {
		d := v - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= float64(n)
	m3 /= float64(n)
	if m2 == 0 {
		return 0
	}
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis computes the moment-based sample kurtosis. A normal distribution
// has kurtosis 3 under this (non-excess) convention.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func Kurtosis(sample []float64) float64 {
	n := len(sample)
	if n < 2 {
		return 0
	}
	mean := meanOf(sample)
	var m2, m4 float64
	for _, v := range sample {
		d := v - mean
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	m2 /= float64(n)
	m4 /= float64(n)
	if m2 == 0 {
		return 0
	}
	return m4 / (m2 * m2)
}

// CheckNormality applies a skewness/kurtosis heuristic for plausible
// normality.
//
// Description:
//
//	Returns true when |skewness| < 2 and |kurtosis - 3| < 4. For samples
//	smaller than 8 the estimators are too unreliable, so the check is
//	bypassed and returns true. This is a screening heuristic for test
//	selection, not a formal normality test.
//
// Inputs:
//   - sample: Measurements to screen.
//
// Outputs:
//   - bool: True if the sample looks plausibly normal (or is too small
//     to judge).
//
// Thread Safety: This function is stateless and safe for concurrent use.
func CheckNormality(sample []float64) bool {
	if len(sample) < minNormalityCheckSize {
		return true
	}
	if math.Abs(Skewness(sample)) >= 2 {
		return false
	}
	if math.Abs(Kurtosis(sample)-3) >= 4 {
		return false
	}
	return true
}

// HasOutliers reports whether the sample contains outliers under the
// 1.5x IQR rule.
//
// Description:
//
//	Sorts a copy of the sample, computes Q1 and Q3 with linear
//	interpolation, and flags any value outside
//	[Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Samples smaller than 4 cannot support
//	quartile estimation and report no outliers.
//
// Inputs:
//   - sample: Measurements to screen.
//
// Outputs:
//   - bool: True if at least one outlier is present.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func HasOutliers(sample []float64) bool {
	if len(sample) < 4 {
		return false
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1

	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	for _, v := range sorted {
		if v < lower || v > upper {
			return true
		}
	}
	return false
}

// quantile computes the q-th quantile of sorted values using linear
// interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// meanOf computes the arithmetic mean.
func meanOf(sample []float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	var sum float64
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample))
}
