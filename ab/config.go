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
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

var (
	// ErrInvalidConfig is returned when a run configuration fails validation.
	ErrInvalidConfig = errors.New("invalid comparison configuration")

	// ErrNilOperation is returned when an arm has no operation.
	ErrNilOperation = errors.New("arm operation must not be nil")

	// ErrOperationFailed is returned when a measured operation returns an error.
	ErrOperationFailed = errors.New("operation failed during measurement")

	// ErrTooFewArms is returned when a multi-arm comparison has fewer than 3 arms.
	ErrTooFewArms = errors.New("multi-arm comparison needs at least 3 arms")
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Config controls how a comparison run collects measurements.
//
// Description:
//
//	A Config is built from DefaultConfig() and modified through
//	RunOption functions. Fixed-size comparisons use Warmup, Iterations,
//	and Alpha; sequential comparisons additionally use MinIterations,
//	MaxIterations, CheckInterval, and PowerThreshold.
//
// Thread Safety: Immutable after option application; safe for concurrent
// read access.
type Config struct {
	// Warmup is the number of discarded iterations run per arm before
	// measurement begins.
	Warmup int

	// Iterations is the number of measured iterations per arm for
	// fixed-size comparisons.
	Iterations int

	// MinIterations is the number of iterations a sequential comparison
	// collects before the first interim look.
	MinIterations int

	// MaxIterations caps a sequential comparison that never reaches a
	// confident verdict.
	MaxIterations int

	// CheckInterval is the number of iterations between interim looks in
	// a sequential comparison.
	CheckInterval int

	// PowerThreshold is the statistical power a sequential comparison
	// must reach before stopping early.
	PowerThreshold float64

	// Alpha is the significance level for the final test.
	Alpha float64

	// InputGenerator produces a fresh input for each measured call.
	// If nil, operations receive a nil input.
	InputGenerator InputGenerator
}

// DefaultConfig returns a configuration with sensible defaults.
//
// Thread Safety: Stateless function; safe for concurrent use.
func DefaultConfig() *Config {
	return &Config{
		Warmup:         5,
		Iterations:     100,
		MinIterations:  30,
		MaxIterations:  1000,
		CheckInterval:  10,
		PowerThreshold: 0.8,
		Alpha:          0.05,
	}
}

// Validate checks that the configuration is internally consistent.
//
// Outputs:
//   - error: Non-nil when any field is out of range.
//
// Thread Safety: Safe for concurrent use.
func (c *Config) Validate() error {
	if c.Warmup < 0 {
		return fmt.Errorf("%w: warmup must be non-negative, got %d", ErrInvalidConfig, c.Warmup)
	}
	if c.Iterations < 2 {
		return fmt.Errorf("%w: iterations must be at least 2, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.MinIterations < 2 {
		return fmt.Errorf("%w: min iterations must be at least 2, got %d", ErrInvalidConfig, c.MinIterations)
	}
	if c.MaxIterations < c.MinIterations {
		return fmt.Errorf("%w: max iterations (%d) below min iterations (%d)",
			ErrInvalidConfig, c.MaxIterations, c.MinIterations)
	}
	if c.CheckInterval < 1 {
		return fmt.Errorf("%w: check interval must be positive, got %d", ErrInvalidConfig, c.CheckInterval)
	}
	if c.PowerThreshold <= 0 || c.PowerThreshold >= 1 {
		return fmt.Errorf("%w: power threshold must be in (0, 1), got %v", ErrInvalidConfig, c.PowerThreshold)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("%w: alpha must be in (0, 1), got %v", ErrInvalidConfig, c.Alpha)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Run Options
// -----------------------------------------------------------------------------

// RunOption configures a comparison run.
//
// Description:
//
//	RunOption functions modify the run Config. They are applied in
//	order, so later options override earlier ones.
type RunOption func(*Config)

// WithIterations sets the number of measured iterations per arm.
// Non-positive values are ignored.
func WithIterations(n int) RunOption {
	return func(c *Config) {
		if n > 0 {
			c.Iterations = n
		}
	}
}

// WithWarmup sets the number of discarded warmup iterations per arm.
// Negative values are ignored.
func WithWarmup(n int) RunOption {
	return func(c *Config) {
		if n >= 0 {
			c.Warmup = n
		}
	}
}

// WithAlpha sets the significance level. Values outside (0, 1) are ignored.
func WithAlpha(alpha float64) RunOption {
	return func(c *Config) {
		if alpha > 0 && alpha < 1 {
			c.Alpha = alpha
		}
	}
}

// WithMinIterations sets the sequential floor before the first interim
// look. Non-positive values are ignored.
func WithMinIterations(n int) RunOption {
	return func(c *Config) {
		if n > 0 {
			c.MinIterations = n
		}
	}
}

// WithMaxIterations sets the sequential iteration cap.
// Non-positive values are ignored.
func WithMaxIterations(n int) RunOption {
	return func(c *Config) {
		if n > 0 {
			c.MaxIterations = n
		}
	}
}

// WithCheckInterval sets the number of iterations between interim looks.
// Non-positive values are ignored.
func WithCheckInterval(n int) RunOption {
	return func(c *Config) {
		if n > 0 {
			c.CheckInterval = n
		}
	}
}

// WithPowerThreshold sets the power a sequential comparison must reach
// before stopping early. Values outside (0, 1) are ignored.
func WithPowerThreshold(p float64) RunOption {
	return func(c *Config) {
		if p > 0 && p < 1 {
			c.PowerThreshold = p
		}
	}
}

// WithInputGenerator sets the function that produces a fresh input for
// every measured call.
//
// Example:
//
//	harness.CompareFixed(ctx, armA, armB, ab.WithInputGenerator(func() any {
//	    return randomSlice(1000)
//	}))
func WithInputGenerator(gen InputGenerator) RunOption {
	return func(c *Config) {
		c.InputGenerator = gen
	}
}
