// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ab runs controlled A/B comparisons between competing
// implementations and decides between them statistically.
//
// The Harness measures wall-clock time per call after a warmup phase,
// with a fresh input for every call so mutation by one arm cannot leak
// into another. Three comparison modes are provided: CompareFixed for a
// predetermined sample size, CompareMany for three or more arms under
// one-way ANOVA, and CompareSequential, which collects in lockstep and
// stops as soon as the verdict is both significant and sufficiently
// powered.
//
// The two arms are measured on independently generated inputs rather
// than paired on identical ones, so the tests treat the samples as
// unpaired. Generators should produce identically distributed inputs
// for the comparison to be fair.
package ab
