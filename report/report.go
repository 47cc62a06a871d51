// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders finished statistical results as human-readable
// text tables for terminal output.
package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/AleutianAI/algobench/hypothesis"
)

// -----------------------------------------------------------------------------
// Two-Sample Report
// -----------------------------------------------------------------------------

// Render formats a two-sample result as a text report.
//
// Description:
//
//	Produces a group-statistics table, the headline test numbers, the
//	recommendation text, and any warnings, in that order. The output is
//	meant for terminals and log files, not for machine parsing.
//
// Inputs:
//   - res: A finished two-sample result. Must not be nil.
//
// Outputs:
//   - string: The rendered report.
//
// Thread Safety: Safe for concurrent use.
func Render(res *hypothesis.TwoSampleResult) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Comparison %s (%s)\n\n", res.RunID, res.Method)

	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeader([]string{"Group", "N", "Mean (ms)", "Std Dev (ms)"}),
	)
	for _, g := range []hypothesis.SampleStats{res.GroupA, res.GroupB} {
		table.Append([]string{
			g.Label,
			strconv.Itoa(g.N),
			fmt.Sprintf("%.4f", g.Mean),
			fmt.Sprintf("%.4f", g.StdDev),
		})
	}
	table.Render()

	fmt.Fprintf(&buf, "\nStatistic:       %.4f\n", res.Statistic)
	if res.Method == hypothesis.MethodWelchT {
		fmt.Fprintf(&buf, "Deg. of freedom: %.2f\n", res.DegreesOfFreedom)
	}
	fmt.Fprintf(&buf, "P-value:         %.4f (alpha %.3f)\n", res.PValue, res.Alpha)
	fmt.Fprintf(&buf, "Significant:     %t\n", res.Significant)
	fmt.Fprintf(&buf, "Effect size:     %.4f (%s)\n", res.EffectSize, res.EffectMagnitude)
	fmt.Fprintf(&buf, "%.0f%% CI:          [%.4f, %.4f]\n",
		res.ConfidenceLevel*100, res.CILower, res.CIUpper)
	fmt.Fprintf(&buf, "Power:           %.2f\n", res.Power)
	if res.FasterGroup != "" {
		fmt.Fprintf(&buf, "Faster group:    %s (%.1f%% improvement)\n",
			res.FasterGroup, res.ImprovementPercent)
	}

	fmt.Fprintf(&buf, "\n%s\n%s\n", res.Recommendation, res.BusinessImpact)
	renderWarnings(&buf, res.Warnings)
	return buf.String()
}

// -----------------------------------------------------------------------------
// Multi-Group Report
// -----------------------------------------------------------------------------

// RenderMultiGroup formats a multi-group result as a text report,
// including one line per pairwise follow-up when present.
//
// Inputs:
//   - res: A finished multi-group result. Must not be nil.
//
// Outputs:
//   - string: The rendered report.
//
// Thread Safety: Safe for concurrent use.
func RenderMultiGroup(res *hypothesis.MultiGroupResult) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Multi-group comparison %s (%d groups)\n\n", res.RunID, len(res.Groups))

	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeader([]string{"Group", "N", "Mean (ms)", "Std Dev (ms)"}),
	)
	for _, g := range res.Groups {
		table.Append([]string{
			g.Label,
			strconv.Itoa(g.N),
			fmt.Sprintf("%.4f", g.Mean),
			fmt.Sprintf("%.4f", g.StdDev),
		})
	}
	table.Render()

	fmt.Fprintf(&buf, "\nF statistic:     %.4f (df %d, %d)\n",
		res.FStatistic, res.DFBetween, res.DFWithin)
	fmt.Fprintf(&buf, "P-value:         %.4f (alpha %.3f)\n", res.PValue, res.Alpha)
	fmt.Fprintf(&buf, "Significant:     %t\n", res.Significant)
	fmt.Fprintf(&buf, "Best group:      %s\n", res.BestGroup)

	if len(res.Pairwise) > 0 {
		fmt.Fprintf(&buf, "\nPairwise (Bonferroni alpha %.4f):\n", res.AdjustedAlpha)
		pairs := tablewriter.NewTable(&buf,
			tablewriter.WithHeader([]string{"Pair", "P-value", "Significant", "Faster"}),
		)
		for _, pair := range res.Pairwise {
			pairs.Append([]string{
				fmt.Sprintf("%s vs %s", pair.GroupA.Label, pair.GroupB.Label),
				fmt.Sprintf("%.4f", pair.PValue),
				strconv.FormatBool(pair.Significant),
				pair.FasterGroup,
			})
		}
		pairs.Render()
	}

	renderWarnings(&buf, res.Warnings)
	return buf.String()
}

func renderWarnings(buf *bytes.Buffer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	buf.WriteString("\nWarnings:\n")
	for _, w := range warnings {
		fmt.Fprintf(buf, "  - %s\n", w)
	}
}
