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
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInsufficientSamples indicates fewer than 2 samples in a group.
	ErrInsufficientSamples = errors.New("each group needs at least 2 samples")

	// ErrZeroVariance indicates both groups have zero variance but unequal
	// means, leaving the test statistic undefined.
	ErrZeroVariance = errors.New("zero variance with unequal means: test statistic undefined")

	// ErrTooFewGroups indicates fewer than 2 groups supplied to ANOVA.
	ErrTooFewGroups = errors.New("at least 2 groups are required")

	// ErrInvalidAlpha indicates a significance level outside (0, 1).
	ErrInvalidAlpha = errors.New("alpha must be in the open interval (0, 1)")
)

// -----------------------------------------------------------------------------
// Methods
// -----------------------------------------------------------------------------

// Method identifies the statistical test that produced a result.
type Method int

const (
	// MethodWelchT is Welch's unequal-variance t-test.
	MethodWelchT Method = iota

	// MethodMannWhitneyU is the Mann-Whitney U rank-sum test.
	MethodMannWhitneyU

	// MethodANOVA is one-way analysis of variance.
	MethodANOVA
)

// String returns the string representation.
func (m Method) String() string {
	switch m {
	case MethodWelchT:
		return "welch_t"
	case MethodMannWhitneyU:
		return "mann_whitney_u"
	case MethodANOVA:
		return "anova"
	default:
		return "unknown"
	}
}

// Verdict summarizes the outcome of a two-sample comparison.
type Verdict int

const (
	// VerdictNoDifference indicates no statistically significant difference.
	VerdictNoDifference Verdict = iota

	// VerdictAFaster indicates group A has the significantly lower mean.
	VerdictAFaster

	// VerdictBFaster indicates group B has the significantly lower mean.
	VerdictBFaster
)

// String returns the string representation.
func (v Verdict) String() string {
	switch v {
	case VerdictNoDifference:
		return "no_difference"
	case VerdictAFaster:
		return "a_faster"
	case VerdictBFaster:
		return "b_faster"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Descriptive Statistics
// -----------------------------------------------------------------------------

// SampleStats holds descriptive statistics for one labeled sample set.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type SampleStats struct {
	// Label identifies the algorithm or group.
	Label string

	// N is the sample size.
	N int

	// Mean is the arithmetic mean.
	Mean float64

	// Variance is the unbiased sample variance (n-1 denominator).
	Variance float64

	// StdDev is sqrt(Variance).
	StdDev float64
}

// newSampleStats computes descriptive statistics for a sample.
func newSampleStats(label string, xs []float64) SampleStats {
	n := len(xs)
	s := SampleStats{Label: label, N: n}
	if n == 0 {
		return s
	}

	var sum float64
	for _, v := range xs {
		sum += v
	}
	s.Mean = sum / float64(n)

	if n < 2 {
		return s
	}
	var sumSq float64
	for _, v := range xs {
		d := v - s.Mean
		sumSq += d * d
	}
	s.Variance = sumSq / float64(n-1)
	s.StdDev = math.Sqrt(s.Variance)
	return s
}

// coefficientOfVariation returns StdDev/Mean, or 0 when the mean is zero.
func (s SampleStats) coefficientOfVariation() float64 {
	if s.Mean == 0 {
		return 0
	}
	return math.Abs(s.StdDev / s.Mean)
}

// -----------------------------------------------------------------------------
// Results
// -----------------------------------------------------------------------------

// TwoSampleResult holds the full outcome of a two-sample comparison.
//
// Description:
//
//	Created once per test invocation and immutable thereafter. Holds
//	descriptive statistics for both groups, the test statistic and
//	p-value, effect size with its interpretation tier, the confidence
//	interval for the mean difference, power analysis, the relative
//	improvement, narrative strings, and any warnings raised during the
//	analysis.
//
//	For MethodMannWhitneyU the Statistic field carries the z
//	approximation, DegreesOfFreedom is 0, EffectSize is the rank-biserial
//	correlation, and Power is still computed from Cohen's d since the
//	power approximation is defined on that scale.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type TwoSampleResult struct {
	// RunID uniquely identifies this test invocation.
	RunID string

	// Method is the test that produced this result.
	Method Method

	// GroupA and GroupB hold per-group descriptive statistics.
	GroupA SampleStats
	GroupB SampleStats

	// Statistic is the test statistic (t for Welch, z for Mann-Whitney).
	Statistic float64

	// DegreesOfFreedom is the Welch-Satterthwaite df (Welch only).
	DegreesOfFreedom float64

	// PValue is the two-tailed p-value, always in [0, 1].
	PValue float64

	// Alpha is the significance level used.
	Alpha float64

	// ConfidenceLevel is 1 - Alpha.
	ConfidenceLevel float64

	// Significant is true when PValue < Alpha.
	Significant bool

	// EffectSize is the effect magnitude (Cohen's d or rank-biserial).
	EffectSize float64

	// EffectMagnitude is the interpretation tier for EffectSize.
	EffectMagnitude string

	// CILower and CIUpper bound the confidence interval for meanA - meanB.
	CILower float64
	CIUpper float64

	// Power is the estimated statistical power in [0, 1].
	Power float64

	// RequiredSampleSize is the per-group n needed for 80% power at the
	// observed effect size.
	RequiredSampleSize int

	// ImprovementPercent is (slower - faster) / faster * 100 on the means.
	ImprovementPercent float64

	// Verdict summarizes the direction of a significant difference.
	Verdict Verdict

	// FasterGroup is the label of the group with the lower mean, empty
	// when the means are equal.
	FasterGroup string

	// Recommendation is a human-readable suggested action.
	Recommendation string

	// BusinessImpact is a human-readable impact statement.
	BusinessImpact string

	// Warnings lists statistical caveats that must be surfaced alongside
	// the numeric verdict.
	Warnings []string
}

// MultiGroupResult holds the outcome of a one-way ANOVA across k groups.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type MultiGroupResult struct {
	// RunID uniquely identifies this test invocation.
	RunID string

	// Groups holds per-group descriptive statistics, sorted by label.
	Groups []SampleStats

	// FStatistic is the ANOVA F statistic.
	FStatistic float64

	// DFBetween is k - 1.
	DFBetween int

	// DFWithin is N - k.
	DFWithin int

	// PValue is the upper-tail p-value, always in [0, 1].
	PValue float64

	// Alpha is the overall significance level.
	Alpha float64

	// Significant is true when PValue < Alpha.
	Significant bool

	// BestGroup is the label with the lowest mean. Lower means better is
	// a domain convention (execution time), not a statistical fact.
	BestGroup string

	// AdjustedAlpha is the Bonferroni-corrected pairwise level
	// Alpha / C(k, 2).
	AdjustedAlpha float64

	// Pairwise holds Welch comparisons for every pair, computed only when
	// the overall test is significant.
	Pairwise []*TwoSampleResult

	// Warnings lists statistical caveats.
	Warnings []string
}

// -----------------------------------------------------------------------------
// Shared Helpers
// -----------------------------------------------------------------------------

// Per-group sample size below which a small-sample warning is attached.
const smallSampleThreshold = 30

// Coefficient-of-variation level above which measurements are considered
// too noisy to trust without more data.
const highCVThreshold = 1.0

// Power below which a low-power warning is attached.
const lowPowerThreshold = 0.8

func newRunID() string {
	return uuid.NewString()
}

func validateAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 || math.IsNaN(alpha) {
		return ErrInvalidAlpha
	}
	return nil
}

// clampUnit confines numerically noisy probabilities to [0, 1].
func clampUnit(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// commonWarnings collects the caveats shared by all two-sample tests.
func commonWarnings(a, b SampleStats, power float64) []string {
	var warnings []string
	if a.N < smallSampleThreshold || b.N < smallSampleThreshold {
		warnings = append(warnings,
			fmt.Sprintf("small sample size (nA=%d, nB=%d): results may be unstable below n=%d per group",
				a.N, b.N, smallSampleThreshold))
	}
	if power < lowPowerThreshold {
		warnings = append(warnings,
			fmt.Sprintf("low statistical power (%.2f): a real difference may go undetected", power))
	}
	if cv := a.coefficientOfVariation(); cv > highCVThreshold {
		warnings = append(warnings,
			fmt.Sprintf("high coefficient of variation for %s (%.2f): measurements are very noisy", a.Label, cv))
	}
	if cv := b.coefficientOfVariation(); cv > highCVThreshold {
		warnings = append(warnings,
			fmt.Sprintf("high coefficient of variation for %s (%.2f): measurements are very noisy", b.Label, cv))
	}
	return warnings
}

// direction fills the faster-group fields shared by both two-sample tests.
func direction(res *TwoSampleResult) {
	a, b := res.GroupA, res.GroupB
	switch {
	case a.Mean == b.Mean:
		res.ImprovementPercent = 0
		res.FasterGroup = ""
	case a.Mean < b.Mean:
		res.FasterGroup = a.Label
		if a.Mean != 0 {
			res.ImprovementPercent = (b.Mean - a.Mean) / a.Mean * 100
		}
	default:
		res.FasterGroup = b.Label
		if b.Mean != 0 {
			res.ImprovementPercent = (a.Mean - b.Mean) / b.Mean * 100
		}
	}

	if !res.Significant || res.FasterGroup == "" {
		res.Verdict = VerdictNoDifference
		return
	}
	if res.FasterGroup == a.Label {
		res.Verdict = VerdictAFaster
	} else {
		res.Verdict = VerdictBFaster
	}
}
