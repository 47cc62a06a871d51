// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package dist implements the probability distributions behind the
// hypothesis-testing engine from first principles: the standard normal,
// Student's t, and F cumulative distributions, their inverses, and the
// supporting special functions (log-gamma, regularized incomplete beta).
//
// Everything here is a closed-form, series, or continued-fraction
// approximation; no external statistics library is involved. Accuracy is
// tuned for hypothesis testing (roughly 1e-6 on CDF values), not for
// exact special-function evaluation.
//
// # Usage
//
//	p := dist.NormalCDF(1.96)              // ~0.975
//	z, err := dist.NormalInverseCDF(0.975) // ~1.96
//	p, err := dist.TCDF(2.086, 20)         // ~0.975
//	p, err := dist.FCDF(4.26, 2, 9)        // ~0.95
//
// All functions are pure and validate their domains: out-of-range
// probabilities and non-positive degrees of freedom or shape parameters
// return tagged errors rather than silently clamping.
//
// # Thread Safety
//
// Every function in this package is stateless and safe for concurrent use.
package dist
