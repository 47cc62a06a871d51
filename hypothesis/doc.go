// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package hypothesis implements the statistical tests used to compare
// algorithm performance measurements.
//
// Three tests are provided: Welch's unequal-variance t-test for roughly
// normal samples, the Mann-Whitney U rank-sum test for everything else,
// and one-way ANOVA with Bonferroni-corrected pairwise follow-up for
// three or more groups. RunTwoSampleTest screens the samples and picks
// between the first two automatically.
//
// Every result carries the descriptive statistics for each group, the
// effect size with an interpretation tier, a post-hoc power estimate,
// and plain-language recommendation text, so callers never have to
// interpret a bare p-value.
package hypothesis
