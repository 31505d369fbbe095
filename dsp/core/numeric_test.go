package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name          string
		value, lo, hi float64
		want          float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, want: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, want: 0},
		{name: "above", value: 2, lo: 0, hi: 1, want: 1},
		{name: "swapped bounds", value: 2, lo: 1, hi: -1, want: 1},
		{name: "on bound", value: -1, lo: -1, hi: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.value, tt.lo, tt.hi); got != tt.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", tt.value, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestIsFinitePositive(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinitePositive(v) {
			t.Fatalf("IsFinitePositive(%v) = true", v)
		}
	}

	for _, v := range []float64{1e-9, 0.5, 1.5, 44100} {
		if !IsFinitePositive(v) {
			t.Fatalf("IsFinitePositive(%v) = false", v)
		}
	}
}

func TestRoundLength(t *testing.T) {
	tests := []struct {
		n      int
		factor float64
		want   int
	}{
		{n: 44100, factor: 2, want: 88200},
		{n: 1000, factor: 0.5, want: 500},
		{n: 3, factor: 0.5, want: 2},
		{n: 1001, factor: 1.25, want: 1251},
		{n: 0, factor: 1.5, want: 0},
	}

	for _, tt := range tests {
		if got := RoundLength(tt.n, tt.factor); got != tt.want {
			t.Fatalf("RoundLength(%d, %v) = %d, want %d", tt.n, tt.factor, got, tt.want)
		}
	}
}

func TestLinearPowerToDB(t *testing.T) {
	if got := LinearPowerToDB(100); math.Abs(got-20) > 1e-12 {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", got)
	}

	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}

	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}

	if !math.IsNaN(LinearPowerToDB(math.NaN())) {
		t.Fatal("expected NaN for NaN power")
	}
}
