// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"sort"
	"testing"
)

func TestDemoSortsProduceSortedOutput(t *testing.T) {
	for name, op := range demoArms {
		t.Run(name, func(t *testing.T) {
			gen := newInputGenerator(7, 200)
			xs := gen().([]int)
			if err := op(context.Background(), xs); err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if !sort.IntsAreSorted(xs) {
				t.Errorf("%s left the slice unsorted", name)
			}
		})
	}
}

func TestNewInputGenerator(t *testing.T) {
	t.Run("deterministic for a seed", func(t *testing.T) {
		a := newInputGenerator(42, 50)().([]int)
		b := newInputGenerator(42, 50)().([]int)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("same seed diverged at index %d: %d vs %d", i, a[i], b[i])
			}
		}
	})

	t.Run("fresh slice per call", func(t *testing.T) {
		gen := newInputGenerator(42, 50)
		first := gen().([]int)
		second := gen().([]int)
		if &first[0] == &second[0] {
			t.Error("generator returned the same backing array twice")
		}
	})
}

func TestDemoArm(t *testing.T) {
	if _, err := demoArm("std"); err != nil {
		t.Errorf("demoArm(std): %v", err)
	}
	if _, err := demoArm("nonsense"); err == nil {
		t.Error("demoArm(nonsense) should fail")
	}
}
