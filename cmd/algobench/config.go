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
	"github.com/spf13/cobra"

	"github.com/AleutianAI/algobench/ab"
)

// CLIConfig holds the settings shared by every subcommand. Values come
// from config.yaml when present and are overridden by flags.
type CLIConfig struct {
	// Iterations is the number of measured iterations per arm.
	Iterations int `yaml:"iterations"`

	// Warmup is the number of discarded iterations per arm.
	Warmup int `yaml:"warmup"`

	// Alpha is the significance level.
	Alpha float64 `yaml:"alpha"`

	// Seed seeds the demo input generator for reproducible runs.
	Seed int64 `yaml:"seed"`

	// InputSize is the length of the generated integer slices.
	InputSize int `yaml:"input_size"`

	// MinIterations is the sequential floor before the first interim look.
	MinIterations int `yaml:"min_iterations"`

	// MaxIterations caps a sequential run.
	MaxIterations int `yaml:"max_iterations"`

	// CheckInterval is the number of rounds between interim looks.
	CheckInterval int `yaml:"check_interval"`

	// PowerThreshold gates early stopping in sequential runs.
	PowerThreshold float64 `yaml:"power_threshold"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// DefaultCLIConfig mirrors the harness defaults plus demo input settings.
func DefaultCLIConfig() *CLIConfig {
	base := ab.DefaultConfig()
	return &CLIConfig{
		Iterations:     base.Iterations,
		Warmup:         base.Warmup,
		Alpha:          base.Alpha,
		Seed:           1,
		InputSize:      2000,
		MinIterations:  base.MinIterations,
		MaxIterations:  base.MaxIterations,
		CheckInterval:  base.CheckInterval,
		PowerThreshold: base.PowerThreshold,
	}
}

// applyFlagOverrides copies explicitly set flags over the yaml values.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("iterations") {
		config.Iterations, _ = flags.GetInt("iterations")
	}
	if flags.Changed("warmup") {
		config.Warmup, _ = flags.GetInt("warmup")
	}
	if flags.Changed("alpha") {
		config.Alpha, _ = flags.GetFloat64("alpha")
	}
	if flags.Changed("seed") {
		config.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("size") {
		config.InputSize, _ = flags.GetInt("size")
	}
	if flags.Changed("min-iterations") {
		config.MinIterations, _ = flags.GetInt("min-iterations")
	}
	if flags.Changed("max-iterations") {
		config.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	if flags.Changed("check-interval") {
		config.CheckInterval, _ = flags.GetInt("check-interval")
	}
	if flags.Changed("power-threshold") {
		config.PowerThreshold, _ = flags.GetFloat64("power-threshold")
	}
	if flags.Changed("verbose") {
		config.Verbose, _ = flags.GetBool("verbose")
	}
}

// runOptions translates the CLI configuration into harness options.
func (c *CLIConfig) runOptions(gen ab.InputGenerator) []ab.RunOption {
	return []ab.RunOption{
		ab.WithIterations(c.Iterations),
		ab.WithWarmup(c.Warmup),
		ab.WithAlpha(c.Alpha),
		ab.WithMinIterations(c.MinIterations),
		ab.WithMaxIterations(c.MaxIterations),
		ab.WithCheckInterval(c.CheckInterval),
		ab.WithPowerThreshold(c.PowerThreshold),
		ab.WithInputGenerator(gen),
	}
}
