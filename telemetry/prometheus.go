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
	"math"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AleutianAI/algobench/hypothesis"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidConfig is returned when the Prometheus configuration is invalid.
	ErrInvalidConfig = errors.New("invalid prometheus configuration")

	// ErrRegistrationFailed is returned when metric registration fails.
	ErrRegistrationFailed = errors.New("metric registration failed")
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// PrometheusConfig configures the Prometheus sink.
//
// Thread Safety: Immutable after creation; safe for concurrent read access.
type PrometheusConfig struct {
	// Namespace is the metrics namespace (e.g., "algobench").
	// Required.
	Namespace string

	// Subsystem is the metrics subsystem (e.g., "hypothesis").
	// Required.
	Subsystem string

	// Registry is the Prometheus registry to use.
	// If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// PValueBuckets defines histogram buckets for p-values.
	// If nil, uses default buckets.
	PValueBuckets []float64

	// EffectSizeBuckets defines histogram buckets for absolute effect sizes.
	// If nil, uses default buckets.
	EffectSizeBuckets []float64
}

// DefaultPrometheusConfig returns a configuration with sensible defaults.
//
// Outputs:
//   - *PrometheusConfig: Configuration with defaults applied.
//
// Thread Safety: Stateless function; safe for concurrent use.
func DefaultPrometheusConfig() *PrometheusConfig {
	return &PrometheusConfig{
		Namespace: "algobench",
		Subsystem: "hypothesis",
		PValueBuckets: []float64{
			0.0001, 0.001, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0,
		},
		EffectSizeBuckets: []float64{
			0.1, 0.2, 0.35, 0.5, 0.65, 0.8, 1.2, 2.0, 5.0,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *PrometheusConfig) Validate() error {
	if c.Namespace == "" {
		return errors.New("namespace is required")
	}
	if c.Subsystem == "" {
		return errors.New("subsystem is required")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Prometheus Sink
// -----------------------------------------------------------------------------

// PrometheusSink exports statistical test results as Prometheus metrics.
//
// Description:
//
//	Counts tests by method and significance, tracks the distributions of
//	p-values and effect sizes, and exposes the latest power estimate.
//	Metrics are registered on creation and unregistered on Close().
//
// Thread Safety: Safe for concurrent use.
//
// Example:
//
//	sink, err := telemetry.NewPrometheusSink(telemetry.DefaultPrometheusConfig())
//	if err != nil {
//	    return fmt.Errorf("create prometheus sink: %w", err)
//	}
//	defer sink.Close()
type PrometheusSink struct {
	config   *PrometheusConfig
	registry prometheus.Registerer

	testsTotal    *prometheus.CounterVec
	pValue        *prometheus.HistogramVec
	effectSize    *prometheus.HistogramVec
	power         *prometheus.GaugeVec
	warningsTotal *prometheus.CounterVec

	mu     sync.RWMutex
	closed bool

	collectors []prometheus.Collector
}

// NewPrometheusSink creates a new Prometheus telemetry sink.
//
// Inputs:
//   - config: Prometheus configuration. Must not be nil.
//
// Outputs:
//   - *PrometheusSink: The created sink. Never nil on success.
//   - error: Non-nil if configuration is invalid or registration fails.
//
// Thread Safety: The returned sink is safe for concurrent use.
func NewPrometheusSink(config *PrometheusConfig) (*PrometheusSink, error) {
	if config == nil {
		return nil, ErrInvalidConfig
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	cfg := *config // Copy to avoid mutating input
	if cfg.PValueBuckets == nil {
		cfg.PValueBuckets = DefaultPrometheusConfig().PValueBuckets
	}
	if cfg.EffectSizeBuckets == nil {
		cfg.EffectSizeBuckets = DefaultPrometheusConfig().EffectSizeBuckets
	}

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	sink := &PrometheusSink{
		config:   &cfg,
		registry: registry,
	}

	sink.testsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "tests_total",
			Help:      "Total statistical tests performed",
		},
		[]string{"method", "significant"},
	)

	sink.pValue = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "p_value",
			Help:      "Distribution of observed p-values",
			Buckets:   cfg.PValueBuckets,
		},
		[]string{"method"},
	)

	sink.effectSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "effect_size_abs",
			Help:      "Distribution of absolute effect sizes",
			Buckets:   cfg.EffectSizeBuckets,
		},
		[]string{"method", "magnitude"},
	)

	sink.power = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "power",
			Help:      "Statistical power of the most recent comparison",
		},
		[]string{"method"},
	)

	sink.warningsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "warnings_total",
			Help:      "Total statistical warnings attached to results",
		},
		[]string{"method"},
	)

	sink.collectors = []prometheus.Collector{
		sink.testsTotal,
		sink.pValue,
		sink.effectSize,
		sink.power,
		sink.warningsTotal,
	}

	for _, c := range sink.collectors {
		if err := registry.Register(c); err != nil {
			// If already registered, try to continue
			var alreadyErr prometheus.AlreadyRegisteredError
			if !errors.As(err, &alreadyErr) {
				return nil, errors.Join(ErrRegistrationFailed, err)
			}
		}
	}

	return sink, nil
}

// RecordTwoSample records a finished two-sample comparison.
func (s *PrometheusSink) RecordTwoSample(ctx context.Context, res *hypothesis.TwoSampleResult) error {
	if ctx == nil {
		return ErrNilContext
	}
	if res == nil {
		return ErrNilData
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}

	method := res.Method.String()
	s.testsTotal.WithLabelValues(method, strconv.FormatBool(res.Significant)).Inc()
	s.pValue.WithLabelValues(method).Observe(res.PValue)
	s.effectSize.WithLabelValues(method, res.EffectMagnitude).Observe(math.Abs(res.EffectSize))
	s.power.WithLabelValues(method).Set(res.Power)
	s.warningsTotal.WithLabelValues(method).Add(float64(len(res.Warnings)))
	return nil
}

// RecordMultiGroup records a finished multi-group comparison, including
// its pairwise follow-up tests.
func (s *PrometheusSink) RecordMultiGroup(ctx context.Context, res *hypothesis.MultiGroupResult) error {
	if ctx == nil {
		return ErrNilContext
	}
	if res == nil {
		return ErrNilData
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrSinkClosed
	}

	method := hypothesis.MethodANOVA.String()
	s.testsTotal.WithLabelValues(method, strconv.FormatBool(res.Significant)).Inc()
	s.pValue.WithLabelValues(method).Observe(res.PValue)
	s.warningsTotal.WithLabelValues(method).Add(float64(len(res.Warnings)))
	s.mu.RUnlock()

	var errs []error
	for _, pair := range res.Pairwise {
		if err := s.RecordTwoSample(ctx, pair); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Flush is a no-op; Prometheus metrics are pull-based.
func (s *PrometheusSink) Flush(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSinkClosed
	}
	return nil
}

// Close unregisters all collectors. Idempotent.
func (s *PrometheusSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if unregisterer, ok := s.registry.(interface {
		Unregister(prometheus.Collector) bool
	}); ok {
		for _, c := range s.collectors {
			unregisterer.Unregister(c)
		}
	}
	return nil
}
