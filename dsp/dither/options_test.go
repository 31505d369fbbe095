package dither

import (
	"math"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.bitDepth != 16 || cfg.kind != Triangular || cfg.amplitude != 1 || cfg.shaping || cfg.seeded {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestOptionValidation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "bit depth too small", opt: WithBitDepth(1)},
		{name: "bit depth too large", opt: WithBitDepth(33)},
		{name: "unknown type", opt: WithType(Type(9))},
		{name: "negative amplitude", opt: WithAmplitude(-1)},
		{name: "NaN amplitude", opt: WithAmplitude(math.NaN())},
		{name: "infinite amplitude", opt: WithAmplitude(math.Inf(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewQuantizer(tt.opt); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOptionHappyPaths(t *testing.T) {
	cfg := defaultConfig()

	for _, opt := range []Option{
		WithBitDepth(24),
		WithType(Rectangular),
		WithAmplitude(0.5),
		WithNoiseShaping(true),
		WithSeed(3),
	} {
		if err := opt(&cfg); err != nil {
			t.Fatalf("option error = %v", err)
		}
	}

	want := config{bitDepth: 24, kind: Rectangular, amplitude: 0.5, shaping: true, seed: 3, seeded: true}
	if cfg != want {
		t.Fatalf("config = %+v, want %+v", cfg, want)
	}
}
