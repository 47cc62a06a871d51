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
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/algobench/hypothesis"
)

// -----------------------------------------------------------------------------
// Sequential Comparison
// -----------------------------------------------------------------------------

// SequentialResult wraps a two-sample result with the sequential
// stopping decision.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type SequentialResult struct {
	// Result is the final statistical analysis over all collected
	// samples.
	Result *hypothesis.TwoSampleResult

	// IterationsPerArm is the number of measured iterations each arm
	// actually ran.
	IterationsPerArm int

	// StoppedEarly is true when the run reached a confident verdict
	// before MaxIterations.
	StoppedEarly bool

	// InterimLooks is the number of interim tests performed.
	InterimLooks int
}

// CompareSequential measures both arms until the verdict is confident
// or the iteration cap is reached.
//
// Description:
//
//	Both arms are measured in lockstep, one iteration each per round, so
//	system drift affects them equally. After MinIterations rounds, an
//	interim Welch test runs every CheckInterval rounds; collection stops
//	as soon as the interim test is significant with power at or above
//	PowerThreshold, or when MaxIterations rounds have run. The final
//	verdict always comes from a full test over every collected sample,
//	using the same automatic selection as CompareFixed.
//
//	Repeated interim looks inflate the raw Type I error rate above the
//	nominal alpha; the power gate keeps stops on flukes rare but does
//	not remove the inflation entirely.
//
// Inputs:
//   - ctx: Context for cancellation. Must not be nil.
//   - armA, armB: The two implementations. Operations must not be nil.
//   - opts: Optional run configuration.
//
// Outputs:
//   - *SequentialResult: The final analysis plus stopping metadata.
//   - error: Non-nil on invalid configuration, operation failure, or
//     cancellation.
//
// Thread Safety: Safe for concurrent use.
func (h *Harness) CompareSequential(ctx context.Context, armA, armB Arm, opts ...RunOption) (*SequentialResult, error) {
	if ctx == nil {
		return nil, errors.New("context must not be nil")
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ab.Harness.CompareSequential",
		trace.WithAttributes(
			attribute.String("ab.arm_a", armA.Name),
			attribute.String("ab.arm_b", armB.Name),
		),
	)
	defer span.End()

	config, err := h.prepare(span, opts, armA, armB)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("ab.min_iterations", config.MinIterations),
		attribute.Int("ab.max_iterations", config.MaxIterations),
	)

	colA := newCollector(armA, config.InputGenerator, h.logger)
	colB := newCollector(armB, config.InputGenerator, h.logger)
	for _, c := range []*collector{colA, colB} {
		if err := c.warmup(ctx, config.Warmup); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "warmup failed")
			return nil, err
		}
	}

	samplesA := make([]float64, 0, config.MinIterations)
	samplesB := make([]float64, 0, config.MinIterations)
	seq := &SequentialResult{}

	for round := 1; round <= config.MaxIterations; round++ {
		mA, err := colA.measureOne(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "measurement failed")
			return nil, err
		}
		mB, err := colB.measureOne(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "measurement failed")
			return nil, err
		}
		samplesA = append(samplesA, mA)
		samplesB = append(samplesB, mB)

		if round < config.MinIterations || (round-config.MinIterations)%config.CheckInterval != 0 {
			continue
		}

		seq.InterimLooks++
		interim, err := hypothesis.WelchTTest(armA.Name, armB.Name, samplesA, samplesB, config.Alpha)
		if err != nil {
			if errors.Is(err, hypothesis.ErrZeroVariance) {
				// Deterministic timings so far; keep collecting.
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "interim test failed")
			return nil, fmt.Errorf("interim test at round %d: %w", round, err)
		}

		h.logger.Debug("interim look",
			slog.Int("round", round),
			slog.Float64("p_value", interim.PValue),
			slog.Float64("power", interim.Power),
		)

		if interim.Significant && interim.Power >= config.PowerThreshold {
			seq.StoppedEarly = true
			break
		}
	}

	seq.IterationsPerArm = len(samplesA)

	final, err := hypothesis.RunTwoSampleTest(armA.Name, armB.Name, samplesA, samplesB, config.Alpha)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "final test failed")
		return nil, fmt.Errorf("final test after %d rounds: %w", seq.IterationsPerArm, err)
	}
	seq.Result = final

	span.SetAttributes(
		attribute.Int("ab.rounds", seq.IterationsPerArm),
		attribute.Bool("ab.stopped_early", seq.StoppedEarly),
		attribute.Bool("ab.significant", final.Significant),
	)
	h.record(ctx, final)
	return seq, nil
}
