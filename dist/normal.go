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

// Abramowitz & Stegun 26.2.17 coefficients.
var asCoefficients = [5]float64{
	0.319381530,
	-0.356563782,
	1.781477937,
	-1.821255978,
	1.330274429,
}

// Beasley-Springer-Moro central rational approximation coefficients.
var (
	bsmA = [4]float64{
		2.50662823884,
		-18.61500062529,
		41.39119773534,
		-25.44106049637,
	}
	bsmB = [4]float64{
		-8.47351093090,
		23.08336743743,
		-21.06224101826,
		3.13082909833,
	}
	bsmC = [9]float64{
		0.3374754822726147,
		0.9761690190917186,
		0.1607979714918209,
		0.0276438810333863,
		0.0038405729373609,
		0.0003951896511919,
		0.0000321767881768,
		0.0000002888167364,
		0.0000003960315187,
	}
)

// NormalCDF computes the standard normal cumulative distribution at z.
//
// Description:
//
//	Rational polynomial approximation after Abramowitz & Stegun 26.2.17.
//	Satisfies NormalCDF(0) = 0.5 and the reflection identity
//	NormalCDF(-z) = 1 - NormalCDF(z) to within 1e-6.
//
// Inputs:
//   - z: Standard normal deviate.
//
// Outputs:
//   - float64: P(Z <= z) in [0, 1].
//
// Thread Safety: This function is stateless and safe for concurrent use.
func NormalCDF(z float64) float64 {
	if z < 0 {
		return 1 - NormalCDF(-z)
	}

	t := 1 / (1 + 0.2316419*z)
	poly := t * (asCoefficients[0] + t*(asCoefficients[1] + t*(asCoefficients[2]+t*(asCoefficients[3]+t*asCoefficients[4]))))
	pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
	return 1 - pdf*poly
}

// NormalInverseCDF computes the standard normal quantile for p in (0, 1).
//
// Description:
//
//	Beasley-Springer-Moro scheme: a rational polynomial approximation for
//	the central region |p - 0.5| < 0.42 and a log-transform polynomial in
//	the tails. A single polynomial cannot hold accuracy across the full
//	range, so the two regimes are stitched at |p - 0.5| = 0.42. The raw
//	estimate is then refined with a Newton step against NormalCDF so the
//	two functions agree as a round-trip pair out into the far tails.
//
// Inputs:
//   - p: Probability. Must be in the open interval (0, 1).
//
// Outputs:
//   - float64: z such that NormalCDF(z) ~= p.
//   - error: ErrInvalidProbability if p is outside (0, 1).
//
// Thread Safety: This function is stateless and safe for concurrent use.
func NormalInverseCDF(p float64) (float64, error) {
	if p <= 0 || p >= 1 || math.IsNaN(p) {
		return 0, ErrInvalidProbability
	}

	var z float64
	r := p - 0.5
	if math.Abs(r) < 0.42 {
		s := r * r
		num := r * (bsmA[0] + s*(bsmA[1]+s*(bsmA[2]+s*bsmA[3])))
		den := 1 + s*(bsmB[0]+s*(bsmB[1]+s*(bsmB[2]+s*bsmB[3])))
		z = num / den
	} else {
		// Tail regime: work with the smaller tail probability.
		tail := p
		if r > 0 {
			tail = 1 - p
		}
		s := math.Log(-math.Log(tail))
		z = bsmC[0]
		sp := 1.0
		for i := 1; i < len(bsmC); i++ {
			sp *= s
			z += bsmC[i] * sp
		}
		if r < 0 {
			z = -z
		}
	}
	return newtonRefine(z, p), nil
}

// newtonRefine polishes a quantile estimate against NormalCDF. The raw
// Beasley-Springer-Moro tail polynomial drifts from the A&S CDF beyond
// |z| ~ 4, which breaks the NormalInverseCDF(NormalCDF(z)) round trip.
func newtonRefine(z, p float64) float64 {
	for i := 0; i < 2; i++ {
		pdf := math.Exp(-z*z/2) / math.Sqrt(2*math.Pi)
		if pdf == 0 {
			return z
		}
		step := (NormalCDF(z) - p) / pdf
		z -= step
		if math.Abs(step) < 1e-12 {
			break
		}
	}
	return z
}
