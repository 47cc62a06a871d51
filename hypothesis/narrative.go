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

	"github.com/AleutianAI/algobench/effect"
)

// -----------------------------------------------------------------------------
// Narrative
// -----------------------------------------------------------------------------

// buildNarrative fills Recommendation and BusinessImpact from the numeric
// fields of a finished result.
func buildNarrative(res *TwoSampleResult) {
	if !res.Significant {
		res.Recommendation = fmt.Sprintf(
			"No statistically significant difference between %s and %s (p=%.4f). Keep the current implementation.",
			res.GroupA.Label, res.GroupB.Label, res.PValue)
		if res.Power < lowPowerThreshold &&
			res.RequiredSampleSize > res.GroupA.N && res.RequiredSampleSize < math.MaxInt32 {
			res.BusinessImpact = fmt.Sprintf(
				"The comparison is underpowered (%.0f%%). Collect roughly %d samples per group before drawing conclusions.",
				res.Power*100, res.RequiredSampleSize)
		} else {
			res.BusinessImpact = "Switching implementations would not produce a measurable change."
		}
		return
	}

	slower := res.GroupB.Label
	if res.FasterGroup == res.GroupB.Label {
		slower = res.GroupA.Label
	}
	res.Recommendation = fmt.Sprintf(
		"Adopt %s: it is significantly faster than %s (p=%.4f, %s effect).",
		res.FasterGroup, slower, res.PValue, res.EffectMagnitude)
	res.BusinessImpact = fmt.Sprintf(
		"%s improves mean performance by %.1f%% over %s.",
		res.FasterGroup, res.ImprovementPercent, slower)
}

// -----------------------------------------------------------------------------
// Automatic Test Selection
// -----------------------------------------------------------------------------

// RunTwoSampleTest compares two samples, choosing the test automatically.
//
// Description:
//
//	Runs Welch's t-test when both samples pass a moment-based normality
//	screen and show no extreme outliers, and falls back to the
//	Mann-Whitney U test otherwise. The selected route is recorded in the
//	result's Method field, and a warning is attached when the
//	distribution-free route was taken.
//
// Inputs:
//   - labelA, labelB: group names used in narrative output.
//   - samplesA, samplesB: raw measurements, at least 2 per group.
//   - alpha: significance level in (0, 1).
//
// Outputs:
//   - *TwoSampleResult: the full analysis from the selected test.
//   - error: any error from the underlying test.
//
// Thread Safety: Safe for concurrent use.
func RunTwoSampleTest(labelA, labelB string, samplesA, samplesB []float64, alpha float64) (*TwoSampleResult, error) {
	parametric := effect.CheckNormality(samplesA) && effect.CheckNormality(samplesB) &&
		!effect.HasOutliers(samplesA) && !effect.HasOutliers(samplesB)
	if parametric {
		return WelchTTest(labelA, labelB, samplesA, samplesB, alpha)
	}

	res, err := MannWhitneyU(labelA, labelB, samplesA, samplesB, alpha)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings,
		"samples look non-normal or contain outliers: used the rank-based test instead of Welch's t")
	return res, nil
}
