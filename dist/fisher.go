// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dist

// FCDF computes the cumulative distribution of the F-distribution at f with
// df1 numerator and df2 denominator degrees of freedom.
//
// Description:
//
//	Evaluates I_x(df1/2, df2/2) with x = df1*f / (df1*f + df2), sharing the
//	incomplete-beta machinery with the t-distribution. Negative f is
//	outside the support and maps to 0.
//
// Inputs:
//   - f: The F statistic.
//   - df1: Numerator degrees of freedom. Must be positive.
//   - df2: Denominator degrees of freedom. Must be positive.
//
// Outputs:
//   - float64: P(F <= f) in [0, 1].
//   - error: ErrInvalidDegreesOfFreedom if df1 <= 0 or df2 <= 0.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func FCDF(f, df1, df2 float64) (float64, error) {
	if df1 <= 0 || df2 <= 0 {
		return 0, ErrInvalidDegreesOfFreedom
	}
	if f <= 0 {
		return 0, nil
	}

	x := df1 * f / (df1*f + df2)
	return RegularizedIncompleteBeta(df1/2, df2/2, x)
}
