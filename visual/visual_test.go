package visual

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-vis/control"
	"github.com/cwbudde/algo-vis/dsp/spectrum"
)

func bins(t *testing.T, b ...spectrum.Bin) spectrum.Spectrum {
	t.Helper()
	s, err := spectrum.FromBins(b)
	if err != nil {
		t.Fatalf("FromBins error: %v", err)
	}
	return s
}

func TestEveryModeHasFunc(t *testing.T) {
	for _, m := range control.Modes() {
		if _, ok := Lookup(m); !ok {
			t.Fatalf("mode %v has no visual function", m)
		}
	}
	if _, ok := Lookup(control.Mode(control.ModeCount)); ok {
		t.Fatal("undefined mode must not resolve")
	}
}

func TestSpiralScenario(t *testing.T) {
	in := Input{Y: 2, X: 3, T: 0, Divisor: control.Spiral.TimeDivisor()}
	if got := Eval(control.Spiral, in); got != 0 {
		t.Fatalf("Spiral(2,3,0) = %v, want 0", got)
	}
	if got := Hue(control.Spiral, in); got != 0 {
		t.Fatalf("Hue = %v, want 0", got)
	}
}

func TestClosedForms(t *testing.T) {
	in := Input{Y: 2, X: 4, T: 0.5}

	tests := []struct {
		mode control.Mode
		want float64
	}{
		{control.Spiral, 2 * 4 * 0.5},
		{control.AltCurve, math.Inf(1)},
		{control.Waves, 4.0 / 2 * 0.5},
		{control.Solid, (0.0 + 1000) / (0.0 + 1000) * 0.5},
		{control.AudioReactive, (2 - Neutral) * (4 * Neutral) * 0.5 / 100},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := Eval(tt.mode, in)
			if tt.mode == control.AltCurve {
				// x/y - 1/t is zero here, so the middle term is infinite.
				if !math.IsInf(got, 1) {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSolidUsesTruncatedRemainder(t *testing.T) {
	in := Input{Y: -3, X: 5, T: 1}
	want := (1.0 + 1000) / (-1.0 + 1000)
	if got := Solid(in); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Solid = %v, want %v", got, want)
	}
}

func TestModulation(t *testing.T) {
	tests := []struct {
		name string
		s    []spectrum.Bin
		want float64
	}{
		{
			name: "above-clamp-threshold-exact",
			s:    []spectrum.Bin{{Freq: 400, Mag: 50e6}, {Freq: 600, Mag: 12e6}},
			want: 12,
		},
		{
			name: "below-clamp-threshold-compressed",
			s:    []spectrum.Bin{{Freq: 600, Mag: 0.5e6}},
			want: 1.25,
		},
		{
			name: "first-match-wins",
			s:    []spectrum.Bin{{Freq: 510, Mag: 20e6}, {Freq: 700, Mag: 90e6}},
			want: 20,
		},
		{
			name: "skips-noise",
			s:    []spectrum.Bin{{Freq: 520, Mag: 10}, {Freq: 600, Mag: 30e6}},
			want: 30,
		},
		{
			name: "nothing-above-reference",
			s:    []spectrum.Bin{{Freq: 100, Mag: 80e6}, {Freq: 499, Mag: 80e6}},
			want: Neutral,
		},
		{
			name: "all-noise",
			s:    []spectrum.Bin{{Freq: 600, Mag: 1}, {Freq: 800, Mag: 50}},
			want: Neutral,
		},
		{
			name: "empty",
			want: Neutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Modulation(bins(t, tt.s...))
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Modulation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHueSanitisesDegenerateValues(t *testing.T) {
	degenerate := []Input{
		{Y: 0, X: 0, T: 0},
		{Y: 0, X: 1, T: 1},
		{Y: 1e300, X: 1e300, T: 1e300},
	}
	for _, m := range control.Modes() {
		for _, in := range degenerate {
			h := Hue(m, in)
			if math.IsNaN(h) || h < 0 || h >= 1 {
				t.Fatalf("mode %v input %+v: hue %v outside [0,1)", m, in, h)
			}
		}
	}
}

func TestHueRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	s := bins(t, spectrum.Bin{Freq: 600, Mag: 4e6})

	for _, m := range control.Modes() {
		f := NewFrame(m, rng.Float64()*3, m.TimeDivisor(), s)
		for i := 0; i < 2000; i++ {
			y := (rng.Float64()*2 - 1) * 400
			x := (rng.Float64()*2 - 1) * 400
			h := f.Hue(y, x)
			if math.IsNaN(h) || h < 0 || h >= 1 {
				t.Fatalf("mode %v: hue %v outside [0,1)", m, h)
			}
		}
	}
}

func TestFrameMatchesEval(t *testing.T) {
	s := bins(t, spectrum.Bin{Freq: 550, Mag: 15e6})
	for _, m := range control.Modes() {
		f := NewFrame(m, 0.75, m.TimeDivisor(), s)
		in := Input{Y: 13, X: -7, T: 0.75, Spectrum: s, Divisor: m.TimeDivisor()}
		if got, want := f.Value(13, -7), Eval(m, in); got != want {
			t.Fatalf("mode %v: frame value %v, eval %v", m, got, want)
		}
	}

	if got := NewFrame(control.AudioReactive, 1, 1e9, s).Modulation(); got != 15 {
		t.Fatalf("frame modulation = %v, want 15", got)
	}
}

func BenchmarkFrameHue(b *testing.B) {
	s, _ := spectrum.FromBins([]spectrum.Bin{{Freq: 600, Mag: 2e6}})
	f := NewFrame(control.AudioReactive, 0.3, 1e9, s)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.Hue(float64(i%64), float64(i%48))
	}
}
