package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pvoc/dsp/core"
	"github.com/cwbudde/algo-pvoc/dsp/spectrum"
	"github.com/cwbudde/algo-pvoc/dsp/vocoder"
	"github.com/cwbudde/algo-pvoc/internal/testutil"
)

const testSampleRate = 44100.0

func newTestProcessor(t *testing.T, samples []float64, opts ...vocoder.Option) *Processor {
	t.Helper()

	seg, err := core.NewSegment(samples, testSampleRate)
	if err != nil {
		t.Fatalf("NewSegment() error = %v", err)
	}

	p, err := NewProcessor(seg, opts...)
	if err != nil {
		t.Fatalf("NewProcessor() error = %v", err)
	}

	return p
}

func TestNewProcessorRejectsBadOptions(t *testing.T) {
	seg, err := core.NewSegment(make([]float64, 10), testSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewProcessor(seg, vocoder.WithWindowLength(100))
	if !errors.Is(err, vocoder.ErrInvalidConfig) {
		t.Fatalf("NewProcessor() error = %v, want ErrInvalidConfig", err)
	}

	_, err = NewProcessor(core.Segment{})
	if !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Fatalf("NewProcessor(zero segment) error = %v, want ErrInvalidSampleRate", err)
	}
}

func TestProcessorAccessors(t *testing.T) {
	p := newTestProcessor(t, make([]float64, 22050))

	if p.SampleRate() != testSampleRate || p.Len() != 22050 {
		t.Fatalf("SampleRate()=%g Len()=%d", p.SampleRate(), p.Len())
	}

	if math.Abs(p.Duration()-0.5) > 1e-12 {
		t.Fatalf("Duration() = %g, want 0.5", p.Duration())
	}

	if p.Engine().WindowLength() != vocoder.DefaultWindowLength {
		t.Fatalf("engine window = %d", p.Engine().WindowLength())
	}
}

func TestProcessInvalidRange(t *testing.T) {
	p := newTestProcessor(t, make([]float64, 1000))

	tests := []struct {
		name       string
		start, end int
	}{
		{name: "empty", start: 100, end: 100},
		{name: "reversed", start: 200, end: 100},
		{name: "negative start", start: -1, end: 100},
		{name: "end at length", start: 0, end: 1000},
		{name: "end past length", start: 0, end: 2000},
		{name: "start past length", start: 1000, end: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Process(tt.start, tt.end, 1, 1)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("Process(%d, %d) error = %v, want ErrInvalidRange", tt.start, tt.end, err)
			}
		})
	}
}

func TestProcessInvalidFactor(t *testing.T) {
	p := newTestProcessor(t, make([]float64, 1000))

	for _, f := range [][2]float64{{0, 1}, {1, -1}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		_, err := p.Process(0, 999, f[0], f[1])
		if !errors.Is(err, ErrInvalidFactor) {
			t.Fatalf("Process(stretch=%g, pitch=%g) error = %v, want ErrInvalidFactor", f[0], f[1], err)
		}
	}
}

func TestProcessPassthroughIsExactCopy(t *testing.T) {
	in := testutil.DeterministicNoise(11, 0.7, 3000)
	p := newTestProcessor(t, in)

	out, err := p.Process(100, 2100, 1, 1)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, in[100:2100], 0)

	out[0] = 42
	again, err := p.Process(100, 2100, 1, 1)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if again[0] == 42 {
		t.Fatal("passthrough result aliases the source")
	}
}

func TestProcessStretchOnly(t *testing.T) {
	in := testutil.DeterministicSine(440, testSampleRate, 0.5, 44100)
	p := newTestProcessor(t, in)

	out, err := p.Process(0, 40000, 1.25, 1)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	want, err := p.Engine().Stretch(in[:40000], 1.25)
	if err != nil {
		t.Fatalf("Stretch() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, want, 0)
}

func TestProcessPitchKeepsDuration(t *testing.T) {
	in := testutil.DeterministicSine(440, testSampleRate, 0.5, 30000)
	p := newTestProcessor(t, in, vocoder.WithWindowLength(1024))

	for _, stretch := range []float64{0.5, 0.8, 1, 1.3, 1.5} {
		for _, pf := range []float64{0.5, 0.9, 1.2, 1.5} {
			out, err := p.Process(1000, 21000, stretch, pf)
			if err != nil {
				t.Fatalf("Process(stretch=%g, pitch=%g) error = %v", stretch, pf, err)
			}

			if want := int(math.Round(20000 * stretch)); len(out) != want {
				t.Fatalf("Process(stretch=%g, pitch=%g) len = %d, want %d", stretch, pf, len(out), want)
			}

			testutil.RequireFinite(t, out)
			testutil.RequireMaxAbs(t, out, 1+1e-12)
		}
	}
}

func TestProcessPitchScalesFrequency(t *testing.T) {
	in := testutil.DeterministicSine(440, testSampleRate, 0.5, 88200)
	p := newTestProcessor(t, in)

	tests := []struct {
		stretch, pitch float64
	}{
		{1, 1.5},
		{1, 0.75},
		{1.2, 1.25},
	}

	for _, tt := range tests {
		out, err := p.Process(0, 88199, tt.stretch, tt.pitch)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}

		want := 440 * tt.pitch
		got := testutil.DominantFrequency(t, out, testSampleRate)

		if math.Abs(got-want) > want*0.01 {
			t.Fatalf("stretch=%g pitch=%g: dominant = %.2f Hz, want %.2f", tt.stretch, tt.pitch, got, want)
		}
	}
}

func TestProcessPitchMovesToneEnergy(t *testing.T) {
	in := testutil.DeterministicSine(440, testSampleRate, 0.5, 44100)
	p := newTestProcessor(t, in, vocoder.WithWindowLength(2048))

	out, err := p.Process(0, 44099, 1, 1.5)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	mid := out[len(out)/4 : 3*len(out)/4]

	shifted, err := spectrum.ToneAmplitude(mid, 660, testSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	original, err := spectrum.ToneAmplitude(mid, 440, testSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	if shifted < 4*original {
		t.Fatalf("660 Hz amplitude %.4f not dominant over 440 Hz amplitude %.4f", shifted, original)
	}
}

func TestProcessShortRangeFails(t *testing.T) {
	p := newTestProcessor(t, make([]float64, 10000))

	_, err := p.Process(0, 1000, 1.5, 1)
	if !errors.Is(err, vocoder.ErrInsufficientLength) {
		t.Fatalf("Process(short) error = %v, want ErrInsufficientLength", err)
	}
}

func TestSemitoneConversion(t *testing.T) {
	tests := []struct {
		semitones, ratio float64
	}{
		{0, 1},
		{12, 2},
		{-12, 0.5},
		{7, 1.4983070768766815},
	}

	for _, tt := range tests {
		if got := RatioFromSemitones(tt.semitones); math.Abs(got-tt.ratio) > 1e-12 {
			t.Fatalf("RatioFromSemitones(%g) = %g, want %g", tt.semitones, got, tt.ratio)
		}

		if got := Semitones(tt.ratio); math.Abs(got-tt.semitones) > 1e-9 {
			t.Fatalf("Semitones(%g) = %g, want %g", tt.ratio, got, tt.semitones)
		}
	}
}
