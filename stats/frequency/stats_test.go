package frequency

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-vis/dsp/spectrum"
	"github.com/cwbudde/algo-vis/internal/testutil"
)

const tolerance = 1e-9

// uniform builds a spectrum with bins spaced df apart starting at 0 Hz.
func uniform(t *testing.T, df float64, mags ...float64) spectrum.Spectrum {
	t.Helper()
	bins := make([]spectrum.Bin, len(mags))
	for i, m := range mags {
		bins[i] = spectrum.Bin{Freq: float64(i) * df, Mag: m}
	}
	s, err := spectrum.FromBins(bins)
	if err != nil {
		t.Fatalf("FromBins: %v", err)
	}
	return s
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(spectrum.Spectrum{})
	if s.BinCount != 0 {
		t.Fatalf("expected BinCount=0, got %d", s.BinCount)
	}
	if !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("expected Peak_dB=-Inf, got %f", s.Peak_dB)
	}
}

func TestCalculateSingleBinPeak(t *testing.T) {
	s := Calculate(uniform(t, 100, 0, 0, 0, 2, 0))
	if s.Peak != 2 || s.PeakFreq != 300 {
		t.Fatalf("peak = %v at %v Hz, want 2 at 300 Hz", s.Peak, s.PeakFreq)
	}
	if math.Abs(s.Peak_dB-20*math.Log10(2)) > tolerance {
		t.Fatalf("Peak_dB = %v", s.Peak_dB)
	}
	if s.Centroid != 300 {
		t.Fatalf("Centroid = %v, want 300", s.Centroid)
	}
	if s.Spread != 0 {
		t.Fatalf("Spread = %v, want 0", s.Spread)
	}
	if s.Energy != 4 {
		t.Fatalf("Energy = %v, want 4", s.Energy)
	}
	if s.Rolloff != 300 {
		t.Fatalf("Rolloff = %v, want 300", s.Rolloff)
	}
	if s.Flatness != 0 {
		t.Fatalf("Flatness = %v, want 0", s.Flatness)
	}
}

func TestCentroidSymmetric(t *testing.T) {
	testutil.RequireNearly(t, "Centroid", Centroid(uniform(t, 1000, 0, 1, 2, 1, 0)), 2000, tolerance)
}

func TestFlatness(t *testing.T) {
	tests := []struct {
		name string
		mags []float64
		want float64
	}{
		{"flat", []float64{0, 1, 1, 1, 1}, 1},
		{"zero bin", []float64{1, 1, 0, 1}, 0},
		{"all zero", []float64{0, 0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatness(uniform(t, 10, tt.mags...))
			if math.Abs(got-tt.want) > tolerance {
				t.Fatalf("Flatness = %v, want %v", got, tt.want)
			}
		})
	}

	peaky := Flatness(uniform(t, 10, 0, 1, 100, 1, 1))
	if peaky <= 0 || peaky >= 1 {
		t.Fatalf("peaky flatness = %v, want in (0,1)", peaky)
	}
}

func TestRolloff(t *testing.T) {
	s := uniform(t, 50, 1, 1, 1, 1)
	if got := Rolloff(s, 0.5); got != 50 {
		t.Fatalf("Rolloff(0.5) = %v, want 50", got)
	}
	if got := Rolloff(s, 1); got != 150 {
		t.Fatalf("Rolloff(1) = %v, want 150", got)
	}
	if got := Rolloff(uniform(t, 50, 0, 0), 0.85); got != 0 {
		t.Fatalf("Rolloff of silence = %v, want 0", got)
	}
}

func TestCalculateBandLimited(t *testing.T) {
	bins := []spectrum.Bin{{Freq: 440, Mag: 1}, {Freq: 460, Mag: 3}, {Freq: 480, Mag: 1}}
	sp, err := spectrum.FromBins(bins)
	if err != nil {
		t.Fatal(err)
	}
	s := Calculate(sp)
	if s.PeakFreq != 460 || math.Abs(s.Centroid-460) > tolerance {
		t.Fatalf("peak %v centroid %v, want 460", s.PeakFreq, s.Centroid)
	}
	if math.Abs(s.Average-5.0/3) > tolerance {
		t.Fatalf("Average = %v", s.Average)
	}
}
