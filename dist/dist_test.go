// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dist

import (
	"math"
	"testing"
)

// -----------------------------------------------------------------------------
// Normal CDF Tests
// -----------------------------------------------------------------------------

func TestNormalCDF(t *testing.T) {
	t.Run("zero maps to one half", func(t *testing.T) {
		if got := NormalCDF(0); math.Abs(got-0.5) > 1e-6 {
			t.Errorf("NormalCDF(0) = %v, want 0.5", got)
		}
	})

	t.Run("known table values", func(t *testing.T) {
		tests := []struct {
			z    float64
			want float64
		}{
			{1.0, 0.841345},
			{1.645, 0.950015},
			{1.96, 0.975002},
			{2.576, 0.995002},
			{-1.96, 0.024998},
			{3.0, 0.998650},
		}
		for _, tt := range tests {
			if got := NormalCDF(tt.z); math.Abs(got-tt.want) > 1e-5 {
				t.Errorf("NormalCDF(%v) = %v, want %v", tt.z, got, tt.want)
			}
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		for z := 0.0; z <= 6; z += 0.1 {
			left := NormalCDF(-z)
			right := 1 - NormalCDF(z)
			if math.Abs(left-right) > 1e-6 {
				t.Errorf("symmetry broken at z=%v: %v vs %v", z, left, right)
			}
		}
	})

	t.Run("monotonically non-decreasing", func(t *testing.T) {
		prev := NormalCDF(-8)
		for z := -8.0; z <= 8; z += 0.05 {
			cur := NormalCDF(z)
			if cur < prev {
				t.Fatalf("NormalCDF not monotone at z=%v: %v < %v", z, cur, prev)
			}
			prev = cur
		}
	})

	t.Run("values stay in unit interval", func(t *testing.T) {
		for _, z := range []float64{-40, -10, -1, 0, 1, 10, 40} {
			p := NormalCDF(z)
			if p < 0 || p > 1 {
				t.Errorf("NormalCDF(%v) = %v outside [0,1]", z, p)
			}
		}
	})
}

// -----------------------------------------------------------------------------
// Normal Inverse CDF Tests
// -----------------------------------------------------------------------------

func TestNormalInverseCDF(t *testing.T) {
	t.Run("known quantiles", func(t *testing.T) {
		tests := []struct {
			p    float64
			want float64
		}{
			{0.5, 0},
			{0.975, 1.959964},
			{0.025, -1.959964},
			{0.95, 1.644854},
			{0.995, 2.575829},
		}
		for _, tt := range tests {
			got, err := NormalInverseCDF(tt.p)
			if err != nil {
				t.Fatalf("NormalInverseCDF(%v): %v", tt.p, err)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("NormalInverseCDF(%v) = %v, want %v", tt.p, got, tt.want)
			}
		}
	})

	t.Run("round trip over [-5, 5]", func(t *testing.T) {
		for z := -5.0; z <= 5; z += 0.25 {
			p := NormalCDF(z)
			back, err := NormalInverseCDF(p)
			if err != nil {
				t.Fatalf("round trip z=%v: %v", z, err)
			}
			if math.Abs(back-z) > 1e-4 {
				t.Errorf("round trip z=%v came back as %v", z, back)
			}
		}
	})

	t.Run("round trip holds in the far tails", func(t *testing.T) {
		for z := 3.5; z <= 6; z += 0.1 {
			for _, signed := range []float64{z, -z} {
				p := NormalCDF(signed)
				back, err := NormalInverseCDF(p)
				if err != nil {
					t.Fatalf("round trip z=%v: %v", signed, err)
				}
				if math.Abs(back-signed) > 1e-4 {
					t.Errorf("round trip z=%v came back as %v", signed, back)
				}
			}
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		for _, p := range []float64{0, 1, -0.1, 1.1, math.NaN()} {
			if _, err := NormalInverseCDF(p); err != ErrInvalidProbability {
				t.Errorf("NormalInverseCDF(%v): want ErrInvalidProbability, got %v", p, err)
			}
		}
	})
}

// -----------------------------------------------------------------------------
// Student's t Tests
// -----------------------------------------------------------------------------

func TestTCDF(t *testing.T) {
	t.Run("zero maps to one half", func(t *testing.T) {
		for _, df := range []float64{1, 2, 5, 10, 29} {
			got, err := TCDF(0, df)
			if err != nil {
				t.Fatalf("TCDF(0, %v): %v", df, err)
			}
			if math.Abs(got-0.5) > 1e-9 {
				t.Errorf("TCDF(0, %v) = %v, want 0.5", df, got)
			}
		}
	})

	t.Run("known table values", func(t *testing.T) {
		// Two-tailed 0.05 critical values: TCDF(crit, df) = 0.975.
		tests := []struct {
			tval float64
			df   float64
			want float64
		}{
			{12.706, 1, 0.975},
			{4.303, 2, 0.975},
			{2.776, 4, 0.975},
			{2.228, 10, 0.975},
			{2.086, 20, 0.975},
			{-2.086, 20, 0.025},
		}
		for _, tt := range tests {
			got, err := TCDF(tt.tval, tt.df)
			if err != nil {
				t.Fatalf("TCDF(%v, %v): %v", tt.tval, tt.df, err)
			}
			if math.Abs(got-tt.want) > 1e-3 {
				t.Errorf("TCDF(%v, %v) = %v, want %v", tt.tval, tt.df, got, tt.want)
			}
		}
	})

	t.Run("converges to normal for large df", func(t *testing.T) {
		for tv := -4.0; tv <= 4; tv += 0.5 {
			got, err := TCDF(tv, 1000)
			if err != nil {
				t.Fatalf("TCDF(%v, 1000): %v", tv, err)
			}
			if math.Abs(got-NormalCDF(tv)) > 1e-3 {
				t.Errorf("TCDF(%v, 1000) = %v diverges from normal %v", tv, got, NormalCDF(tv))
			}
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		if _, err := TCDF(1, 0); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
		if _, err := TCDF(1, -3); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
	})
}

func TestTPDF(t *testing.T) {
	t.Run("positive and symmetric", func(t *testing.T) {
		for _, df := range []float64{1, 5, 20} {
			left, err := TPDF(-1.3, df)
			if err != nil {
				t.Fatalf("TPDF: %v", err)
			}
			right, _ := TPDF(1.3, df)
			if left <= 0 {
				t.Errorf("TPDF(-1.3, %v) = %v, want positive", df, left)
			}
			if math.Abs(left-right) > 1e-12 {
				t.Errorf("TPDF not symmetric at df=%v: %v vs %v", df, left, right)
			}
		}
	})

	t.Run("df=1 matches Cauchy density", func(t *testing.T) {
		got, err := TPDF(0, 1)
		if err != nil {
			t.Fatalf("TPDF: %v", err)
		}
		want := 1 / math.Pi
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("TPDF(0, 1) = %v, want %v", got, want)
		}
	})

	t.Run("domain error", func(t *testing.T) {
		if _, err := TPDF(0, 0); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
	})
}

func TestTInverseCDF(t *testing.T) {
	t.Run("recovers critical values", func(t *testing.T) {
		tests := []struct {
			p    float64
			df   float64
			want float64
		}{
			{0.975, 4, 2.776},
			{0.975, 10, 2.228},
			{0.975, 20, 2.086},
			{0.95, 10, 1.812},
			{0.025, 10, -2.228},
		}
		for _, tt := range tests {
			got, err := TInverseCDF(tt.p, tt.df)
			if err != nil {
				t.Fatalf("TInverseCDF(%v, %v): %v", tt.p, tt.df, err)
			}
			if math.Abs(got-tt.want) > 5e-3 {
				t.Errorf("TInverseCDF(%v, %v) = %v, want %v", tt.p, tt.df, got, tt.want)
			}
		}
	})

	t.Run("round trip", func(t *testing.T) {
		for _, df := range []float64{3, 7, 15, 29, 50} {
			for _, p := range []float64{0.01, 0.1, 0.3, 0.5, 0.7, 0.9, 0.99} {
				tv, err := TInverseCDF(p, df)
				if err != nil {
					t.Fatalf("TInverseCDF(%v, %v): %v", p, df, err)
				}
				back, _ := TCDF(tv, df)
				if math.Abs(back-p) > 1e-5 {
					t.Errorf("round trip p=%v df=%v came back as %v", p, df, back)
				}
			}
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		if _, err := TInverseCDF(0.5, 0); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
		if _, err := TInverseCDF(0, 10); err != ErrInvalidProbability {
			t.Errorf("want ErrInvalidProbability, got %v", err)
		}
		if _, err := TInverseCDF(1, 10); err != ErrInvalidProbability {
			t.Errorf("want ErrInvalidProbability, got %v", err)
		}
	})
}

// -----------------------------------------------------------------------------
// F-Distribution Tests
// -----------------------------------------------------------------------------

func TestFCDF(t *testing.T) {
	t.Run("median of F(1,1) is one", func(t *testing.T) {
		got, err := FCDF(1, 1, 1)
		if err != nil {
			t.Fatalf("FCDF: %v", err)
		}
		if math.Abs(got-0.5) > 1e-6 {
			t.Errorf("FCDF(1, 1, 1) = %v, want 0.5", got)
		}
	})

	t.Run("known critical values", func(t *testing.T) {
		// Upper 5% points: FCDF(crit, df1, df2) = 0.95.
		tests := []struct {
			f        float64
			df1, df2 float64
		}{
			{4.256, 2, 9},
			{3.354, 2, 27},
			{2.960, 3, 27},
		}
		for _, tt := range tests {
			got, err := FCDF(tt.f, tt.df1, tt.df2)
			if err != nil {
				t.Fatalf("FCDF(%v, %v, %v): %v", tt.f, tt.df1, tt.df2, err)
			}
			if math.Abs(got-0.95) > 2e-3 {
				t.Errorf("FCDF(%v, %v, %v) = %v, want 0.95", tt.f, tt.df1, tt.df2, got)
			}
		}
	})

	t.Run("non-positive f maps to zero", func(t *testing.T) {
		for _, f := range []float64{0, -1} {
			got, err := FCDF(f, 3, 10)
			if err != nil {
				t.Fatalf("FCDF: %v", err)
			}
			if got != 0 {
				t.Errorf("FCDF(%v, 3, 10) = %v, want 0", f, got)
			}
		}
	})

	t.Run("monotone in f", func(t *testing.T) {
		prev := 0.0
		for f := 0.0; f <= 10; f += 0.25 {
			cur, err := FCDF(f, 4, 16)
			if err != nil {
				t.Fatalf("FCDF: %v", err)
			}
			if cur < prev {
				t.Fatalf("FCDF not monotone at f=%v", f)
			}
			prev = cur
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		if _, err := FCDF(1, 0, 5); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
		if _, err := FCDF(1, 5, -1); err != ErrInvalidDegreesOfFreedom {
			t.Errorf("want ErrInvalidDegreesOfFreedom, got %v", err)
		}
	})
}

// -----------------------------------------------------------------------------
// Special Function Tests
// -----------------------------------------------------------------------------

func TestLogGamma(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		tests := []struct {
			x    float64
			want float64
		}{
			{1, 0},
			{2, 0},
			{0.5, 0.5 * math.Log(math.Pi)},
			{5, math.Log(24)},
			{10, math.Log(362880)},
		}
		for _, tt := range tests {
			got, err := LogGamma(tt.x)
			if err != nil {
				t.Fatalf("LogGamma(%v): %v", tt.x, err)
			}
			if math.Abs(got-tt.want) > 1e-8 {
				t.Errorf("LogGamma(%v) = %v, want %v", tt.x, got, tt.want)
			}
		}
	})

	t.Run("recurrence holds", func(t *testing.T) {
		// lgamma(x+1) = lgamma(x) + log(x)
		for _, x := range []float64{0.1, 0.9, 2.5, 7.3} {
			a, _ := LogGamma(x + 1)
			b, _ := LogGamma(x)
			if math.Abs(a-(b+math.Log(x))) > 1e-9 {
				t.Errorf("recurrence broken at x=%v", x)
			}
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		for _, x := range []float64{0, -1, -0.5} {
			if _, err := LogGamma(x); err != ErrNonPositive {
				t.Errorf("LogGamma(%v): want ErrNonPositive, got %v", x, err)
			}
		}
	})
}

func TestRegularizedIncompleteBeta(t *testing.T) {
	t.Run("uniform case is identity", func(t *testing.T) {
		// I_x(1, 1) = x.
		for x := 0.0; x <= 1; x += 0.1 {
			got, err := RegularizedIncompleteBeta(1, 1, x)
			if err != nil {
				t.Fatalf("ibeta: %v", err)
			}
			if math.Abs(got-x) > 1e-9 {
				t.Errorf("I_%v(1,1) = %v, want %v", x, got, x)
			}
		}
	})

	t.Run("symmetric shapes at midpoint", func(t *testing.T) {
		for _, a := range []float64{0.5, 2, 5} {
			got, err := RegularizedIncompleteBeta(a, a, 0.5)
			if err != nil {
				t.Fatalf("ibeta: %v", err)
			}
			if math.Abs(got-0.5) > 1e-9 {
				t.Errorf("I_0.5(%v,%v) = %v, want 0.5", a, a, got)
			}
		}
	})

	t.Run("complement identity", func(t *testing.T) {
		// I_x(a,b) = 1 - I_{1-x}(b,a).
		a, b := 2.5, 0.5
		for x := 0.05; x < 1; x += 0.1 {
			lhs, _ := RegularizedIncompleteBeta(a, b, x)
			rhs, _ := RegularizedIncompleteBeta(b, a, 1-x)
			if math.Abs(lhs-(1-rhs)) > 1e-9 {
				t.Errorf("complement broken at x=%v: %v vs %v", x, lhs, 1-rhs)
			}
		}
	})

	t.Run("endpoints", func(t *testing.T) {
		if got, _ := RegularizedIncompleteBeta(2, 3, 0); got != 0 {
			t.Errorf("I_0 = %v, want 0", got)
		}
		if got, _ := RegularizedIncompleteBeta(2, 3, 1); got != 1 {
			t.Errorf("I_1 = %v, want 1", got)
		}
	})

	t.Run("domain errors", func(t *testing.T) {
		if _, err := RegularizedIncompleteBeta(0, 1, 0.5); err != ErrInvalidShape {
			t.Errorf("want ErrInvalidShape, got %v", err)
		}
		if _, err := RegularizedIncompleteBeta(1, -1, 0.5); err != ErrInvalidShape {
			t.Errorf("want ErrInvalidShape, got %v", err)
		}
		if _, err := RegularizedIncompleteBeta(1, 1, 1.5); err != ErrOutOfRange {
			t.Errorf("want ErrOutOfRange, got %v", err)
		}
		if _, err := RegularizedIncompleteBeta(1, 1, -0.5); err != ErrOutOfRange {
			t.Errorf("want ErrOutOfRange, got %v", err)
		}
	})
}
