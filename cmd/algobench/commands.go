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
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/algobench/ab"
	"github.com/AleutianAI/algobench/report"
	"github.com/AleutianAI/algobench/telemetry"
)

// -----------------------------------------------------------------------------
// Commands
// -----------------------------------------------------------------------------

var (
	rootCmd = &cobra.Command{
		Use:   "algobench",
		Short: "Statistically sound A/B comparison of algorithm implementations",
		Long: "algobench measures competing implementations and decides between\n" +
			"them with hypothesis tests instead of bare averages. The demo\n" +
			"workloads sort random integer slices with algorithms of different\n" +
			"asymptotic cost (std, insertion, bubble).",
	}

	compareCmd = &cobra.Command{
		Use:   "compare <algorithm-a> <algorithm-b>",
		Short: "Compare two algorithms with a fixed number of iterations",
		Args:  cobra.ExactArgs(2),
		RunE:  runCompare,
	}

	anovaCmd = &cobra.Command{
		Use:   "anova <algorithm>...",
		Short: "Compare three or more algorithms with one-way ANOVA",
		Args:  cobra.MinimumNArgs(3),
		RunE:  runAnova,
	}

	sequentialCmd = &cobra.Command{
		Use:   "sequential <algorithm-a> <algorithm-b>",
		Short: "Compare two algorithms, stopping as soon as the verdict is confident",
		Args:  cobra.ExactArgs(2),
		RunE:  runSequential,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Int("iterations", 0, "measured iterations per arm")
	pf.Int("warmup", -1, "discarded warmup iterations per arm")
	pf.Float64("alpha", 0, "significance level")
	pf.Int64("seed", 0, "input generator seed")
	pf.Int("size", 0, "generated input slice length")
	pf.Bool("verbose", false, "enable debug logging")

	sf := sequentialCmd.Flags()
	sf.Int("min-iterations", 0, "rounds before the first interim look")
	sf.Int("max-iterations", 0, "round cap")
	sf.Int("check-interval", 0, "rounds between interim looks")
	sf.Float64("power-threshold", 0, "power required to stop early")

	rootCmd.AddCommand(compareCmd, anovaCmd, sequentialCmd)
}

func newDemoHarness() *ab.Harness {
	return ab.NewHarness(
		ab.WithSink(telemetry.NewLogSink(slog.Default())),
	)
}

func runCompare(cmd *cobra.Command, args []string) error {
	armA, err := demoArm(args[0])
	if err != nil {
		return err
	}
	armB, err := demoArm(args[1])
	if err != nil {
		return err
	}

	gen := newInputGenerator(config.Seed, config.InputSize)
	res, err := newDemoHarness().CompareFixed(cmd.Context(), armA, armB, config.runOptions(gen)...)
	if err != nil {
		return fmt.Errorf("comparing %s vs %s: %w", args[0], args[1], err)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Render(res))
	return nil
}

func runAnova(cmd *cobra.Command, args []string) error {
	arms := make([]ab.Arm, 0, len(args))
	for _, name := range args {
		arm, err := demoArm(name)
		if err != nil {
			return err
		}
		arms = append(arms, arm)
	}

	gen := newInputGenerator(config.Seed, config.InputSize)
	res, err := newDemoHarness().CompareMany(cmd.Context(), arms, config.runOptions(gen)...)
	if err != nil {
		return fmt.Errorf("comparing %d algorithms: %w", len(args), err)
	}
	fmt.Fprint(cmd.OutOrStdout(), report.RenderMultiGroup(res))
	return nil
}

func runSequential(cmd *cobra.Command, args []string) error {
	armA, err := demoArm(args[0])
	if err != nil {
		return err
	}
	armB, err := demoArm(args[1])
	if err != nil {
		return err
	}

	gen := newInputGenerator(config.Seed, config.InputSize)
	seq, err := newDemoHarness().CompareSequential(cmd.Context(), armA, armB, config.runOptions(gen)...)
	if err != nil {
		return fmt.Errorf("comparing %s vs %s: %w", args[0], args[1], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ran %d iterations per arm (%d interim looks, stopped early: %t)\n\n",
		seq.IterationsPerArm, seq.InterimLooks, seq.StoppedEarly)
	fmt.Fprint(cmd.OutOrStdout(), report.Render(seq.Result))
	return nil
}
