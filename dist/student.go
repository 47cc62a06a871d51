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

import "math"

// Large-sample threshold above which the t-distribution is treated as normal.
// Avoids the numerically touchier small-df machinery where it buys nothing.
const normalApproxDF = 30

// Newton-Raphson settings for TInverseCDF. The bounded iteration count
// trades a small accuracy loss for guaranteed termination.
const (
	newtonTolerance     = 1e-12
	newtonMaxIterations = 10
)

// TCDF computes the cumulative distribution of Student's t at t with df
// degrees of freedom.
//
// Description:
//
//	For df >= 30 the t-distribution has converged to the standard normal
//	for practical purposes, so the computation delegates to NormalCDF. For
//	smaller df it evaluates the regularized incomplete beta function
//	I_x(df/2, 1/2) with x = df/(df + t^2), folding the sign of t into the
//	final probability.
//
// Inputs:
//   - t: The t statistic.
//   - df: Degrees of freedom. Must be positive; need not be an integer
//     (Welch-Satterthwaite df is fractional).
//
// Outputs:
//   - float64: P(T <= t) in [0, 1].
//   - error: ErrInvalidDegreesOfFreedom if df <= 0.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func TCDF(t, df float64) (float64, error) {
	if df <= 0 {
		return 0, ErrInvalidDegreesOfFreedom
	}
	if df >= normalApproxDF {
		return NormalCDF(t), nil
	}

	x := df / (df + t*t)
	ib, err := RegularizedIncompleteBeta(df/2, 0.5, x)
	if err != nil {
		return 0, err
	}
	if t > 0 {
		return 1 - 0.5*ib, nil
	}
	return 0.5 * ib, nil
}

// TPDF computes Student's t density at t with df degrees of freedom.
//
// Description:
//
//	Closed form via log-gamma ratios. Used as the derivative in the
//	Newton-Raphson refinement of TInverseCDF.
//
// Inputs:
//   - t: Evaluation point.
//   - df: Degrees of freedom. Must be positive.
//
// Outputs:
//   - float64: Density value, always positive.
//   - error: ErrInvalidDegreesOfFreedom if df <= 0.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func TPDF(t, df float64) (float64, error) {
	if df <= 0 {
		return 0, ErrInvalidDegreesOfFreedom
	}

	lgHalf, _ := LogGamma((df + 1) / 2)
	lgDF, _ := LogGamma(df / 2)
	logCoef := lgHalf - lgDF - 0.5*math.Log(df*math.Pi)
	logKernel := -(df + 1) / 2 * math.Log(1+t*t/df)
	return math.Exp(logCoef + logKernel), nil
}

// TInverseCDF computes the t-distribution quantile for p in (0, 1).
//
// Description:
//
//	Newton-Raphson refinement seeded by the normal quantile, iterating
//	until the CDF residual falls below 1e-12 or the fixed iteration cap
//	(10) is reached.
//
// Inputs:
//   - p: Probability. Must be in the open interval (0, 1).
//   - df: Degrees of freedom. Must be positive.
//
// Outputs:
//   - float64: t such that TCDF(t, df) ~= p.
//   - error: ErrInvalidProbability or ErrInvalidDegreesOfFreedom on domain
//     violations.
//
// Thread Safety: This function is stateless and safe for concurrent use.
func TInverseCDF(p, df float64) (float64, error) {
	if df <= 0 {
		return 0, ErrInvalidDegreesOfFreedom
	}
	seed, err := NormalInverseCDF(p)
	if err != nil {
		return 0, err
	}

	x := seed
	for i := 0; i < newtonMaxIterations; i++ {
		cdf, err := TCDF(x, df)
		if err != nil {
			return 0, err
		}
		residual := cdf - p
		if math.Abs(residual) < newtonTolerance {
			break
		}
		pdf, err := TPDF(x, df)
		if err != nil {
			return 0, err
		}
		if pdf == 0 {
			break
		}
		x -= residual / pdf
	}
	return x, nil
}
