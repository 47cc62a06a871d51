// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"context"
	"errors"
	"log/slog"

	"github.com/AleutianAI/algobench/hypothesis"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrNilContext is returned when a nil context is provided.
	ErrNilContext = errors.New("context must not be nil")

	// ErrNilData is returned when nil data is provided to a recording method.
	ErrNilData = errors.New("data must not be nil")

	// ErrSinkClosed is returned when attempting to use a closed sink.
	ErrSinkClosed = errors.New("sink has been closed")

	// ErrNoSinks is returned when creating a composite sink with no children.
	ErrNoSinks = errors.New("at least one sink is required")
)

// -----------------------------------------------------------------------------
// Interface
// -----------------------------------------------------------------------------

// Sink defines the interface for test-result telemetry collection.
//
// Description:
//
//	Sink is the abstraction comparison harnesses use to export finished
//	statistical results. Implementations handle the specific export
//	format (Prometheus, structured logs, fan-out composites).
//
// Thread Safety: All implementations must be safe for concurrent use.
//
// Example:
//
//	sink, err := telemetry.NewPrometheusSink(telemetry.DefaultPrometheusConfig())
//	if err != nil {
//	    return fmt.Errorf("create sink: %w", err)
//	}
//	defer sink.Close()
//
//	if err := sink.RecordTwoSample(ctx, result); err != nil {
//	    log.Printf("telemetry error: %v", err)
//	}
type Sink interface {
	// RecordTwoSample records a finished two-sample comparison.
	//
	// Thread Safety: Safe for concurrent use.
	RecordTwoSample(ctx context.Context, res *hypothesis.TwoSampleResult) error

	// RecordMultiGroup records a finished multi-group comparison.
	//
	// Thread Safety: Safe for concurrent use.
	RecordMultiGroup(ctx context.Context, res *hypothesis.MultiGroupResult) error

	// Flush ensures all buffered data is exported. Called automatically
	// on Close(), but can be called explicitly for immediate export.
	Flush(ctx context.Context) error

	// Close releases resources and flushes pending data. After Close(),
	// all recording methods return ErrSinkClosed. Idempotent.
	Close() error
}

// -----------------------------------------------------------------------------
// Nop Sink
// -----------------------------------------------------------------------------

// NopSink discards all telemetry. Useful as a default and in tests.
//
// Thread Safety: Safe for concurrent use.
type NopSink struct{}

// NewNopSink creates a sink that discards everything.
func NewNopSink() *NopSink { return &NopSink{} }

// RecordTwoSample discards the result.
func (s *NopSink) RecordTwoSample(_ context.Context, _ *hypothesis.TwoSampleResult) error {
	return nil
}

// RecordMultiGroup discards the result.
func (s *NopSink) RecordMultiGroup(_ context.Context, _ *hypothesis.MultiGroupResult) error {
	return nil
}

// Flush is a no-op.
func (s *NopSink) Flush(_ context.Context) error { return nil }

// Close is a no-op.
func (s *NopSink) Close() error { return nil }

// -----------------------------------------------------------------------------
// Multi Sink
// -----------------------------------------------------------------------------

// MultiSink fans every record out to a set of child sinks.
//
// Description:
//
//	Each call is forwarded to every child; errors are joined rather than
//	short-circuiting, so one failing exporter does not starve the rest.
//
// Thread Safety: Safe for concurrent use when all children are.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a fan-out sink over the given children.
//
// Outputs:
//   - *MultiSink: The composite sink. Never nil on success.
//   - error: ErrNoSinks when no children are supplied.
func NewMultiSink(sinks ...Sink) (*MultiSink, error) {
	if len(sinks) == 0 {
		return nil, ErrNoSinks
	}
	return &MultiSink{sinks: sinks}, nil
}

// RecordTwoSample forwards to every child sink.
func (s *MultiSink) RecordTwoSample(ctx context.Context, res *hypothesis.TwoSampleResult) error {
	var errs []error
	for _, child := range s.sinks {
		if err := child.RecordTwoSample(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordMultiGroup forwards to every child sink.
func (s *MultiSink) RecordMultiGroup(ctx context.Context, res *hypothesis.MultiGroupResult) error {
	var errs []error
	for _, child := range s.sinks {
		if err := child.RecordMultiGroup(ctx, res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush flushes every child sink.
func (s *MultiSink) Flush(ctx context.Context) error {
	var errs []error
	for _, child := range s.sinks {
		if err := child.Flush(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every child sink.
func (s *MultiSink) Close() error {
	var errs []error
	for _, child := range s.sinks {
		if err := child.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// -----------------------------------------------------------------------------
// Log Sink
// -----------------------------------------------------------------------------

// LogSink writes each result as a structured log record.
//
// Thread Safety: Safe for concurrent use.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink that logs results through the given logger.
// A nil logger falls back to slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// RecordTwoSample logs the headline fields of a two-sample result.
func (s *LogSink) RecordTwoSample(ctx context.Context, res *hypothesis.TwoSampleResult) error {
	if ctx == nil {
		return ErrNilContext
	}
	if res == nil {
		return ErrNilData
	}
	s.logger.InfoContext(ctx, "two-sample comparison",
		slog.String("run_id", res.RunID),
		slog.String("method", res.Method.String()),
		slog.String("group_a", res.GroupA.Label),
		slog.String("group_b", res.GroupB.Label),
		slog.Float64("p_value", res.PValue),
		slog.Bool("significant", res.Significant),
		slog.Float64("effect_size", res.EffectSize),
		slog.String("faster_group", res.FasterGroup),
		slog.Int("warnings", len(res.Warnings)),
	)
	return nil
}

// RecordMultiGroup logs the headline fields of a multi-group result.
func (s *LogSink) RecordMultiGroup(ctx context.Context, res *hypothesis.MultiGroupResult) error {
	if ctx == nil {
		return ErrNilContext
	}
	if res == nil {
		return ErrNilData
	}
	s.logger.InfoContext(ctx, "multi-group comparison",
		slog.String("run_id", res.RunID),
		slog.Int("groups", len(res.Groups)),
		slog.Float64("f_statistic", res.FStatistic),
		slog.Float64("p_value", res.PValue),
		slog.Bool("significant", res.Significant),
		slog.String("best_group", res.BestGroup),
		slog.Int("pairwise", len(res.Pairwise)),
	)
	return nil
}

// Flush is a no-op; slog handlers do not buffer.
func (s *LogSink) Flush(_ context.Context) error { return nil }

// Close is a no-op.
func (s *LogSink) Close() error { return nil }
