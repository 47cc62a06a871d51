// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"strings"
	"testing"

	"github.com/AleutianAI/algobench/hypothesis"
)

func TestRender(t *testing.T) {
	res, err := hypothesis.WelchTTest("baseline", "candidate",
		[]float64{100, 102, 98, 101, 99, 100, 102, 98, 101, 99},
		[]float64{80, 82, 78, 81, 79, 80, 82, 78, 81, 79}, 0.05)
	if err != nil {
		t.Fatalf("WelchTTest: %v", err)
	}

	out := Render(res)
	for _, want := range []string{
		"baseline",
		"candidate",
		res.RunID,
		"P-value",
		"Effect size",
		"Faster group:    candidate",
		"Warnings:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMultiGroup(t *testing.T) {
	res, err := hypothesis.OneWayANOVA(map[string][]float64{
		"fast":   {1, 2, 3},
		"middle": {11, 12, 13},
		"slow":   {21, 22, 23},
	}, 0.05)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}

	out := RenderMultiGroup(res)
	for _, want := range []string{
		"F statistic",
		"Best group:      fast",
		"Pairwise",
		"fast vs middle",
		"middle vs slow",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMultiGroup_NoPairwiseWhenNotSignificant(t *testing.T) {
	res, err := hypothesis.OneWayANOVA(map[string][]float64{
		"a": {1, 2, 3, 4, 5},
		"b": {2, 3, 4, 5, 6},
		"c": {3, 4, 5, 6, 7},
	}, 0.05)
	if err != nil {
		t.Fatalf("OneWayANOVA: %v", err)
	}

	out := RenderMultiGroup(res)
	if strings.Contains(out, "Pairwise") {
		t.Errorf("report should omit the pairwise section:\n%s", out)
	}
}
