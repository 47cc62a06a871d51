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
	"github.com/AleutianAI/algobench/telemetry"
)

const tracerName = "algobench.ab"

// -----------------------------------------------------------------------------
// Harness
// -----------------------------------------------------------------------------

// Harness measures competing implementations and decides between them
// with hypothesis tests.
//
// Description:
//
//	The harness owns measurement mechanics (warmup, timing, progress
//	logging) and delegates the statistics to the hypothesis package.
//	Every finished comparison is exported through the configured
//	telemetry sink; sink failures are logged, never fatal.
//
// Thread Safety: Safe for concurrent use; each comparison keeps its
// state on the stack.
//
// Example:
//
//	harness := ab.NewHarness()
//	res, err := harness.CompareFixed(ctx,
//	    ab.Arm{Name: "quicksort", Op: runQuicksort},
//	    ab.Arm{Name: "mergesort", Op: runMergesort},
//	    ab.WithIterations(200),
//	    ab.WithInputGenerator(func() any { return randomSlice(10000) }),
//	)
type Harness struct {
	sink   telemetry.Sink
	logger *slog.Logger
}

// HarnessOption configures a Harness at construction.
type HarnessOption func(*Harness)

// WithSink sets the telemetry sink. Nil values are ignored.
func WithSink(sink telemetry.Sink) HarnessOption {
	return func(h *Harness) {
		if sink != nil {
			h.sink = sink
		}
	}
}

// WithLogger sets the logger. Nil values are ignored.
func WithLogger(logger *slog.Logger) HarnessOption {
	return func(h *Harness) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHarness creates a comparison harness.
//
// Description:
//
//	Without options the harness logs through slog.Default() and
//	discards telemetry.
//
// Outputs:
//   - *Harness: The new harness. Never nil.
//
// Thread Safety: The returned harness is safe for concurrent use.
func NewHarness(opts ...HarnessOption) *Harness {
	h := &Harness{
		sink:   telemetry.NewNopSink(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// -----------------------------------------------------------------------------
// Fixed-Size Comparison
// -----------------------------------------------------------------------------

// CompareFixed measures both arms for a fixed number of iterations and
// tests the difference.
//
// Description:
//
//	Runs warmup then the configured iterations for arm A, then the same
//	for arm B, timing each call with a fresh input. The finished samples
//	go through automatic test selection: Welch's t-test for well-behaved
//	data, the Mann-Whitney U test otherwise.
//
// Inputs:
//   - ctx: Context for cancellation. Must not be nil.
//   - armA, armB: The two implementations. Operations must not be nil.
//   - opts: Optional run configuration.
//
// Outputs:
//   - *hypothesis.TwoSampleResult: The full statistical analysis.
//   - error: Non-nil on invalid configuration, operation failure, or
//     cancellation.
//
// Thread Safety: Safe for concurrent use.
func (h *Harness) CompareFixed(ctx context.Context, armA, armB Arm, opts ...RunOption) (*hypothesis.TwoSampleResult, error) {
	if ctx == nil {
		return nil, errors.New("context must not be nil")
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ab.Harness.CompareFixed",
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
	span.SetAttributes(attribute.Int("ab.iterations", config.Iterations))

	samplesA, samplesB, err := h.collectFixed(ctx, armA, armB, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "measurement failed")
		return nil, err
	}

	res, err := hypothesis.RunTwoSampleTest(armA.Name, armB.Name, samplesA, samplesB, config.Alpha)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "hypothesis test failed")
		return nil, fmt.Errorf("testing %s vs %s: %w", armA.Name, armB.Name, err)
	}

	span.SetAttributes(
		attribute.String("ab.method", res.Method.String()),
		attribute.Float64("ab.p_value", res.PValue),
		attribute.Bool("ab.significant", res.Significant),
	)
	h.record(ctx, res)
	return res, nil
}

// collectFixed gathers the measurement vectors for both arms. Both arms
// are warmed up first, then measured in lockstep so that drift in the
// environment (thermal throttling, background load) lands on both arms
// instead of biasing whichever ran last.
func (h *Harness) collectFixed(ctx context.Context, armA, armB Arm, config *Config) ([]float64, []float64, error) {
	colA := newCollector(armA, config.InputGenerator, h.logger)
	colB := newCollector(armB, config.InputGenerator, h.logger)
	for _, c := range []*collector{colA, colB} {
		if err := c.warmup(ctx, config.Warmup); err != nil {
			return nil, nil, err
		}
	}

	samplesA := make([]float64, 0, config.Iterations)
	samplesB := make([]float64, 0, config.Iterations)
	progressEvery := config.Iterations / 10
	if progressEvery == 0 {
		progressEvery = 1
	}
	for i := 0; i < config.Iterations; i++ {
		mA, err := colA.measureOne(ctx)
		if err != nil {
			return nil, nil, err
		}
		mB, err := colB.measureOne(ctx)
		if err != nil {
			return nil, nil, err
		}
		samplesA = append(samplesA, mA)
		samplesB = append(samplesB, mB)
		if (i+1)%progressEvery == 0 {
			h.logger.Debug("measurement progress",
				"completed", i+1, "total", config.Iterations)
		}
	}
	return samplesA, samplesB, nil
}

// -----------------------------------------------------------------------------
// Multi-Arm Comparison
// -----------------------------------------------------------------------------

// CompareMany measures three or more arms and tests them jointly with
// one-way ANOVA.
//
// Description:
//
//	Each arm is warmed up and measured like in CompareFixed. The joint
//	test controls the family-wise error rate: pairwise follow-up runs at
//	the Bonferroni-corrected level and only when the overall test
//	rejects.
//
// Inputs:
//   - ctx: Context for cancellation. Must not be nil.
//   - arms: At least 3 arms with distinct names and non-nil operations.
//   - opts: Optional run configuration.
//
// Outputs:
//   - *hypothesis.MultiGroupResult: The full statistical analysis.
//   - error: Non-nil on invalid configuration, duplicate arm names,
//     operation failure, or cancellation.
//
// Thread Safety: Safe for concurrent use.
func (h *Harness) CompareMany(ctx context.Context, arms []Arm, opts ...RunOption) (*hypothesis.MultiGroupResult, error) {
	if ctx == nil {
		return nil, errors.New("context must not be nil")
	}
	if len(arms) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewArms, len(arms))
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ab.Harness.CompareMany",
		trace.WithAttributes(attribute.Int("ab.arms", len(arms))),
	)
	defer span.End()

	config, err := h.prepare(span, opts, arms...)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]float64, len(arms))
	for _, arm := range arms {
		if _, dup := groups[arm.Name]; dup {
			err := fmt.Errorf("%w: duplicate arm name %q", ErrInvalidConfig, arm.Name)
			span.RecordError(err)
			span.SetStatus(codes.Error, "duplicate arm name")
			return nil, err
		}
		c := newCollector(arm, config.InputGenerator, h.logger)
		if err := c.warmup(ctx, config.Warmup); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "warmup failed")
			return nil, err
		}
		measured, err := c.measure(ctx, config.Iterations)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "measurement failed")
			return nil, err
		}
		groups[arm.Name] = measured
	}

	res, err := hypothesis.OneWayANOVA(groups, config.Alpha)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "anova failed")
		return nil, fmt.Errorf("testing %d arms: %w", len(arms), err)
	}

	span.SetAttributes(
		attribute.Float64("ab.p_value", res.PValue),
		attribute.Bool("ab.significant", res.Significant),
		attribute.String("ab.best_group", res.BestGroup),
	)
	if err := h.sink.RecordMultiGroup(ctx, res); err != nil {
		h.logger.Warn("telemetry export failed", slog.Any("error", err))
	}
	return res, nil
}

// -----------------------------------------------------------------------------
// Shared Plumbing
// -----------------------------------------------------------------------------

// prepare validates arms, applies options, and validates the config.
func (h *Harness) prepare(span trace.Span, opts []RunOption, arms ...Arm) (*Config, error) {
	for _, arm := range arms {
		if err := arm.validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid arm")
			return nil, err
		}
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if err := config.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid config")
		return nil, err
	}
	return config, nil
}

// record exports a two-sample result, logging rather than failing on
// sink errors.
func (h *Harness) record(ctx context.Context, res *hypothesis.TwoSampleResult) {
	if err := h.sink.RecordTwoSample(ctx, res); err != nil {
		h.logger.Warn("telemetry export failed", slog.Any("error", err))
	}
	h.logger.Info("comparison finished",
		slog.String("run_id", res.RunID),
		slog.String("method", res.Method.String()),
		slog.Float64("p_value", res.PValue),
		slog.Bool("significant", res.Significant),
		slog.String("faster_group", res.FasterGroup),
	)
}
