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
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/AleutianAI/algobench/ab"
)

// -----------------------------------------------------------------------------
// Demo Workloads
// -----------------------------------------------------------------------------

// The demo arms sort random integer slices with algorithms of different
// asymptotic cost, so the harness has a real difference to detect.

func newInputGenerator(seed int64, size int) ab.InputGenerator {
	rng := rand.New(rand.NewSource(seed))
	var mu sync.Mutex
	return func() any {
		mu.Lock()
		defer mu.Unlock()
		xs := make([]int, size)
		for i := range xs {
			xs[i] = rng.Intn(size * 10)
		}
		return xs
	}
}

func sortStd(_ context.Context, input any) error {
	xs := input.([]int)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	return nil
}

func sortInsertion(_ context.Context, input any) error {
	xs := input.([]int)
	for i := 1; i < len(xs); i++ {
		v := xs[i]
		j := i - 1
		for j >= 0 && xs[j] > v {
			xs[j+1] = xs[j]
			j--
		}
		xs[j+1] = v
	}
	return nil
}

func sortBubble(_ context.Context, input any) error {
	xs := input.([]int)
	for i := 0; i < len(xs); i++ {
		swapped := false
		for j := 0; j < len(xs)-i-1; j++ {
			if xs[j] > xs[j+1] {
				xs[j], xs[j+1] = xs[j+1], xs[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return nil
}

var demoArms = map[string]ab.Operation{
	"std":       sortStd,
	"insertion": sortInsertion,
	"bubble":    sortBubble,
}

// demoArm resolves an arm name from the demo workload set.
func demoArm(name string) (ab.Arm, error) {
	op, ok := demoArms[name]
	if !ok {
		names := make([]string, 0, len(demoArms))
		for n := range demoArms {
			names = append(names, n)
		}
		sort.Strings(names)
		return ab.Arm{}, fmt.Errorf("unknown algorithm %q, available: %v", name, names)
	}
	return ab.Arm{Name: name, Op: op}, nil
}
