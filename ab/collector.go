// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ab

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// -----------------------------------------------------------------------------
// Arms and Operations
// -----------------------------------------------------------------------------

// Operation is one candidate implementation under comparison. The input
// comes from the run's InputGenerator and is never shared between calls.
type Operation func(ctx context.Context, input any) error

// InputGenerator produces a fresh input for a single measured call.
// Generators must not return the same mutable value twice, since
// operations are free to modify their input.
type InputGenerator func() any

// Arm pairs a label with the operation it measures.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type Arm struct {
	// Name identifies the arm in results and logs.
	Name string

	// Op is the operation to measure.
	Op Operation
}

func (a Arm) validate() error {
	if a.Op == nil {
		return fmt.Errorf("%w: arm %q", ErrNilOperation, a.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Measurement Collection
// -----------------------------------------------------------------------------

// collector gathers wall-clock measurements for one arm.
type collector struct {
	arm    Arm
	gen    InputGenerator
	logger *slog.Logger
}

func newCollector(arm Arm, gen InputGenerator, logger *slog.Logger) *collector {
	if gen == nil {
		gen = func() any { return nil }
	}
	return &collector{arm: arm, gen: gen, logger: logger}
}

// warmup runs discarded iterations so caches and the runtime settle
// before measurement begins.
func (c *collector) warmup(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("warmup interrupted: %w", err)
		}
		if err := c.arm.Op(ctx, c.gen()); err != nil {
			return fmt.Errorf("%w: arm %q warmup iteration %d: %v",
				ErrOperationFailed, c.arm.Name, i, err)
		}
	}
	return nil
}

// measure runs n timed iterations and returns the durations in
// milliseconds. Progress is logged at roughly 10% intervals.
func (c *collector) measure(ctx context.Context, n int) ([]float64, error) {
	samples := make([]float64, 0, n)
	progressStep := n / 10
	if progressStep == 0 {
		progressStep = n
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("measurement interrupted: %w", err)
		}
		input := c.gen()

		start := time.Now()
		err := c.arm.Op(ctx, input)
		elapsed := time.Since(start)

		if err != nil {
			return nil, fmt.Errorf("%w: arm %q iteration %d: %v",
				ErrOperationFailed, c.arm.Name, i, err)
		}
		samples = append(samples, float64(elapsed.Nanoseconds())/1e6)

		if (i+1)%progressStep == 0 {
			c.logger.Debug("measurement progress",
				slog.String("arm", c.arm.Name),
				slog.Int("completed", i+1),
				slog.Int("total", n),
			)
		}
	}
	return samples, nil
}

// measureOne times a single call, used by the lockstep comparison loops.
func (c *collector) measureOne(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("measurement interrupted: %w", err)
	}
	input := c.gen()

	start := time.Now()
	err := c.arm.Op(ctx, input)
	elapsed := time.Since(start)

	if err != nil {
		return 0, fmt.Errorf("%w: arm %q: %v", ErrOperationFailed, c.arm.Name, err)
	}
	return float64(elapsed.Nanoseconds()) / 1e6, nil
}
