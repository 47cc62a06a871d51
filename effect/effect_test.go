// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package effect

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------
// Cohen's d Tests
// -----------------------------------------------------------------------------

func TestCohensD(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		// Means 100 and 80, both variances 2: d = 20 / sqrt(2) ~ 14.14.
		d := CohensD(100, 80, 2, 2)
		want := 20 / math.Sqrt2
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("CohensD = %v, want %v", d, want)
		}
	})

	t.Run("magnitude not direction", func(t *testing.T) {
		if d := CohensD(80, 100, 2, 2); d < 0 {
			t.Errorf("CohensD should be a magnitude, got %v", d)
		}
	})

	t.Run("zero variance yields zero effect", func(t *testing.T) {
		if d := CohensD(5, 5, 0, 0); d != 0 {
			t.Errorf("CohensD = %v, want 0 for degenerate input", d)
		}
	})
}

func TestCohenMagnitude(t *testing.T) {
	tests := []struct {
		d    float64
		want Magnitude
	}{
		{0.1, Negligible},
		{0.2, Small},
		{0.3, Small},
		{0.5, Medium},
		{0.6, Medium},
		{0.8, Large},
		{14, Large},
		{-1.0, Large},
	}
	for _, tt := range tests {
		if got := CohenMagnitude(tt.d); got != tt.want {
			t.Errorf("CohenMagnitude(%v) = %s, want %s", tt.d, got, tt.want)
		}
	}
}

func TestRankBiserialMagnitude(t *testing.T) {
	tests := []struct {
		r    float64
		want Magnitude
	}{
		{0.05, Negligible},
		{0.2, Small},
		{0.4, Medium},
		{0.9, Large},
	}
	for _, tt := range tests {
		if got := RankBiserialMagnitude(tt.r); got != tt.want {
			t.Errorf("RankBiserialMagnitude(%v) = %s, want %s", tt.r, got, tt.want)
		}
	}
}

func TestMagnitude_String(t *testing.T) {
	tests := []struct {
		m    Magnitude
		want string
	}{
		{Negligible, "negligible"},
		{Small, "small"},
		{Medium, "medium"},
		{Large, "large"},
		{Magnitude(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}

// -----------------------------------------------------------------------------
// Rank-Biserial Tests
// -----------------------------------------------------------------------------

func TestRankBiserial(t *testing.T) {
	t.Run("complete separation", func(t *testing.T) {
		// U = 0 means no overlap at all.
		if r := RankBiserial(0, 5, 5); r != 1 {
			t.Errorf("RankBiserial(0, 5, 5) = %v, want 1", r)
		}
	})

	t.Run("complete overlap", func(t *testing.T) {
		// U = nA*nB/2 means the groups are interchangeable.
		if r := RankBiserial(12.5, 5, 5); r != 0 {
			t.Errorf("RankBiserial(12.5, 5, 5) = %v, want 0", r)
		}
	})

	t.Run("invalid sizes", func(t *testing.T) {
		if r := RankBiserial(3, 0, 5); r != 0 {
			t.Errorf("RankBiserial with n=0 = %v, want 0", r)
		}
	})
}

// -----------------------------------------------------------------------------
// Power Tests
// -----------------------------------------------------------------------------

func TestPower(t *testing.T) {
	t.Run("large sample medium effect has high power", func(t *testing.T) {
		power, err := Power(0.5, 100, 100, 0.05)
		if err != nil {
			t.Fatalf("Power: %v", err)
		}
		if power < 0.8 {
			t.Errorf("power = %v, want >= 0.8", power)
		}
	})

	t.Run("small sample small effect has low power", func(t *testing.T) {
		power, err := Power(0.2, 10, 10, 0.05)
		if err != nil {
			t.Fatalf("Power: %v", err)
		}
		if power > 0.5 {
			t.Errorf("power = %v, want < 0.5", power)
		}
	})

	t.Run("monotone in sample size", func(t *testing.T) {
		prev := 0.0
		for _, n := range []int{5, 10, 20, 40, 80, 160} {
			power, err := Power(0.5, n, n, 0.05)
			if err != nil {
				t.Fatalf("Power(n=%d): %v", n, err)
			}
			if power < prev {
				t.Errorf("power not monotone at n=%d: %v < %v", n, power, prev)
			}
			prev = power
		}
	})

	t.Run("always in unit interval", func(t *testing.T) {
		for _, d := range []float64{0, 0.1, 1, 10} {
			power, err := Power(d, 50, 50, 0.05)
			if err != nil {
				t.Fatalf("Power: %v", err)
			}
			if power < 0 || power > 1 {
				t.Errorf("power = %v outside [0,1] for d=%v", power, d)
			}
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		if _, err := Power(0.5, 1, 10, 0.05); err != ErrInsufficientSamples {
			t.Errorf("want ErrInsufficientSamples, got %v", err)
		}
		if _, err := Power(0.5, 10, 10, 0); err != ErrInvalidAlpha {
			t.Errorf("want ErrInvalidAlpha, got %v", err)
		}
		if _, err := Power(0.5, 10, 10, 1); err != ErrInvalidAlpha {
			t.Errorf("want ErrInvalidAlpha, got %v", err)
		}
	})
}

func TestRequiredSampleSize(t *testing.T) {
	t.Run("medium effect at standard power", func(t *testing.T) {
		// Cohen's canonical example: d=0.5, alpha=0.05, power=0.8 -> ~63.
		n := RequiredSampleSize(0.5, 0.05, 0.8)
		if n < 60 || n > 70 {
			t.Errorf("RequiredSampleSize = %d, want ~63", n)
		}
	})

	t.Run("smaller effect needs more samples", func(t *testing.T) {
		small := RequiredSampleSize(0.2, 0.05, 0.8)
		medium := RequiredSampleSize(0.5, 0.05, 0.8)
		if small <= medium {
			t.Errorf("small=%d should exceed medium=%d", small, medium)
		}
	})

	t.Run("zero effect is unreachable", func(t *testing.T) {
		if n := RequiredSampleSize(0, 0.05, 0.8); n != math.MaxInt32 {
			t.Errorf("RequiredSampleSize(0) = %d, want MaxInt32", n)
		}
	})
}
