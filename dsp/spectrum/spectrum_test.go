package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vis/dsp/window"
	"github.com/cwbudde/algo-vis/internal/testutil"
)

func TestAnalyzeFrequenciesWithinRange(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		low, high float64
	}{
		{name: "default-2048", length: 2048, low: DefaultLowHz, high: DefaultHighHz},
		{name: "padded-1000", length: 1000, low: DefaultLowHz, high: DefaultHighHz},
		{name: "narrow", length: 512, low: 400, high: 900},
		{name: "full", length: 256, low: 0, high: 22050},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnalyzer(WithRange(tt.low, tt.high))
			s, err := a.Analyze(testutil.DeterministicNoise(7, 0.5, tt.length), 44100)
			if err != nil {
				t.Fatalf("Analyze error: %v", err)
			}
			if s.Len() == 0 {
				t.Fatal("expected bins")
			}

			prev := math.Inf(-1)
			for i := 0; i < s.Len(); i++ {
				b := s.At(i)
				if b.Freq < prev {
					t.Fatalf("bin %d frequency %f < previous %f", i, b.Freq, prev)
				}
				if b.Freq < tt.low || b.Freq > tt.high {
					t.Fatalf("bin %d frequency %f outside [%f, %f]", i, b.Freq, tt.low, tt.high)
				}
				if b.Mag < 0 || math.IsNaN(b.Mag) {
					t.Fatalf("bin %d invalid magnitude %f", i, b.Mag)
				}
				prev = b.Freq
			}
		})
	}
}

func TestAnalyzeSinePeak(t *testing.T) {
	const (
		sr   = 44100.0
		n    = 2048
		freq = 1000.0
	)

	a := NewAnalyzer()
	s, err := a.Analyze(testutil.DeterministicSine(freq, sr, 1, n), sr)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	peak := Bin{}
	for _, b := range s.Bins() {
		if b.Mag > peak.Mag {
			peak = b
		}
	}

	binHz := sr / n
	if math.Abs(peak.Freq-freq) > binHz {
		t.Fatalf("peak at %f Hz, want within %f of %f", peak.Freq, binHz, freq)
	}
}

func TestAnalyzeScalingSqrtN(t *testing.T) {
	sig := testutil.DeterministicSine(1000, 48000, 1, 1024)

	raw, err := NewAnalyzer(WithScaling(ScaleNone), WithWindow(window.TypeRectangular)).Analyze(sig, 48000)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	scaled, err := NewAnalyzer(WithWindow(window.TypeRectangular)).Analyze(sig, 48000)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if raw.Len() != scaled.Len() {
		t.Fatalf("bin count mismatch: %d vs %d", raw.Len(), scaled.Len())
	}
	for i := 0; i < raw.Len(); i++ {
		want := raw.At(i).Mag / 32
		if math.Abs(scaled.At(i).Mag-want) > 1e-9 {
			t.Fatalf("bin %d: got %v, want %v", i, scaled.At(i).Mag, want)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	sig := testutil.Ones(64)

	if _, err := NewAnalyzer().Analyze(nil, 44100); !errors.Is(err, ErrEmptyFrame) {
		t.Fatalf("expected ErrEmptyFrame, got %v", err)
	}
	if _, err := NewAnalyzer().Analyze(sig, 0); !errors.Is(err, ErrSampleRate) {
		t.Fatalf("expected ErrSampleRate, got %v", err)
	}

	invalid := []float64{math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range invalid {
		frame := testutil.DeterministicSine(1000, 44100, 1, 1024)
		frame[17] = v
		_, err := NewAnalyzer().Analyze(frame, 44100)
		if !errors.Is(err, ErrInvalidFrame) {
			t.Fatalf("sample %v: expected ErrInvalidFrame, got %v", v, err)
		}
	}

	degenerate := [][2]float64{{500, 500}, {1000, 50}, {-1, 100}, {math.NaN(), 100}}
	for _, r := range degenerate {
		_, err := NewAnalyzer(WithRange(r[0], r[1])).Analyze(sig, 44100)
		if !errors.Is(err, ErrDegenerateRange) {
			t.Fatalf("range %v: expected ErrDegenerateRange, got %v", r, err)
		}
	}
}

func TestAnalyzeReusesPlan(t *testing.T) {
	a := NewAnalyzer()
	sig := testutil.DeterministicSine(440, 44100, 0.5, 512)

	first, err := a.Analyze(sig, 44100)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	second, err := a.Analyze(sig, 44100)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(a.plans) != 1 {
		t.Fatalf("plans cached=%d, want 1", len(a.plans))
	}
	testutil.RequireSliceNearlyEqual(t, second.Mags(), first.Mags(), 0)
}

func TestFromBinsValidation(t *testing.T) {
	if _, err := FromBins([]Bin{{Freq: 100, Mag: 1}, {Freq: 50, Mag: 1}}); err == nil {
		t.Fatal("expected error for descending frequencies")
	}
	if _, err := FromBins([]Bin{{Freq: 100, Mag: -1}}); err == nil {
		t.Fatal("expected error for negative magnitude")
	}

	in := []Bin{{Freq: 100, Mag: 1}, {Freq: 200, Mag: 2}}
	s, err := FromBins(in)
	if err != nil {
		t.Fatalf("FromBins error: %v", err)
	}
	in[0].Mag = 99
	if s.At(0).Mag != 1 {
		t.Fatal("Spectrum must not alias its input")
	}
}

func TestFirstAtOrAbove(t *testing.T) {
	s, err := FromBins([]Bin{
		{Freq: 400, Mag: 9},
		{Freq: 500, Mag: 0},
		{Freq: 600, Mag: 3},
		{Freq: 700, Mag: 5},
	})
	if err != nil {
		t.Fatalf("FromBins error: %v", err)
	}

	b, ok := s.FirstAtOrAbove(500, func(b Bin) bool { return b.Mag > 1 })
	if !ok || b.Freq != 600 {
		t.Fatalf("got %v %v, want 600 Hz bin", b, ok)
	}

	if _, ok := s.FirstAtOrAbove(800, nil); ok {
		t.Fatal("expected no bin above 800 Hz")
	}
}
