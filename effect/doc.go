// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package effect provides effect-size measures, power analysis, and the
// assumption checks used to pick between parametric and non-parametric
// tests: Cohen's d, rank-biserial correlation, a noncentral-t power
// approximation, Cohen's minimum-sample-size formula, a skewness/kurtosis
// normality heuristic, and 1.5x-IQR outlier detection.
package effect
