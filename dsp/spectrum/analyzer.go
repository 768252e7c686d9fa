package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vis/dsp/core"
	"github.com/cwbudde/algo-vis/dsp/window"
)

const (
	// DefaultLowHz and DefaultHighHz bound the analysed band.
	DefaultLowHz  = 50.0
	DefaultHighHz = 12000.0
)

var (
	// ErrEmptyFrame is returned when Analyze receives no samples.
	ErrEmptyFrame = errors.New("spectrum: empty audio frame")
	// ErrDegenerateRange is returned when the frequency range is empty or invalid.
	ErrDegenerateRange = errors.New("spectrum: degenerate frequency range")
	// ErrInvalidFrame is returned when a sample is NaN or infinite.
	ErrInvalidFrame = errors.New("spectrum: audio frame contains non-finite samples")
	// ErrSampleRate is returned for non-positive sample rates.
	ErrSampleRate = errors.New("spectrum: sample rate must be > 0")
)

// Scaling selects the amplitude normalisation applied to magnitudes.
type Scaling int

const (
	// ScaleSqrtN divides magnitudes by sqrt(N), N being the transform length.
	ScaleSqrtN Scaling = iota
	// ScaleNone leaves raw FFT magnitudes.
	ScaleNone
	// ScaleN divides magnitudes by N.
	ScaleN
)

func (s Scaling) factor(n int) float64 {
	switch s {
	case ScaleNone:
		return 1
	case ScaleN:
		return 1 / float64(n)
	default:
		return 1 / math.Sqrt(float64(n))
	}
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

type analyzerConfig struct {
	low, high float64
	window    window.Type
	scaling   Scaling
}

// WithRange restricts output bins to [low, high] Hz, inclusive.
func WithRange(low, high float64) Option {
	return func(c *analyzerConfig) {
		c.low = low
		c.high = high
	}
}

// WithWindow selects the analysis window. Hann is the default.
func WithWindow(t window.Type) Option {
	return func(c *analyzerConfig) {
		c.window = t
	}
}

// WithScaling selects magnitude normalisation. ScaleSqrtN is the default.
func WithScaling(s Scaling) Option {
	return func(c *analyzerConfig) {
		c.scaling = s
	}
}

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Analyzer computes band-limited magnitude spectra from sample blocks.
//
// FFT plans and window coefficients are cached per size, so steady-state
// analysis of equally sized frames only allocates the output Spectrum.
// An Analyzer is not safe for concurrent use.
type Analyzer struct {
	cfg analyzerConfig

	plans  map[int]*algofft.Plan[complex128]
	coeffs map[int][]float64

	frame []float64
	in    []complex128
	out   []complex128
	mag   []float64
}

// NewAnalyzer returns an Analyzer with a Hann window, sqrt(N) scaling and a
// 50 Hz to 12 kHz band unless overridden.
func NewAnalyzer(opts ...Option) *Analyzer {
	cfg := analyzerConfig{
		low:     DefaultLowHz,
		high:    DefaultHighHz,
		window:  window.TypeHann,
		scaling: ScaleSqrtN,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Analyzer{
		cfg:    cfg,
		plans:  make(map[int]*algofft.Plan[complex128]),
		coeffs: make(map[int][]float64),
	}
}

// Range returns the configured band in Hz.
func (a *Analyzer) Range() (low, high float64) {
	return a.cfg.low, a.cfg.high
}

// Analyze windows samples, transforms them and returns the bins whose
// frequency lies within the configured range. Blocks that are not a power
// of two long are zero-padded to the next power of two.
func (a *Analyzer) Analyze(samples []float64, sampleRate float64) (Spectrum, error) {
	if len(samples) == 0 {
		return Spectrum{}, ErrEmptyFrame
	}
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return Spectrum{}, fmt.Errorf("%w: %f", ErrSampleRate, sampleRate)
	}
	if err := validateRange(a.cfg.low, a.cfg.high); err != nil {
		return Spectrum{}, err
	}

	n := core.NextPowerOfTwo(len(samples))
	if n < 2 {
		n = 2
	}

	plan, err := a.plan(n)
	if err != nil {
		return Spectrum{}, err
	}

	a.frame = core.EnsureLen(a.frame, len(samples))
	for i, s := range samples {
		if !core.IsFinite(s) {
			return Spectrum{}, fmt.Errorf("%w: index %d", ErrInvalidFrame, i)
		}
		a.frame[i] = s
	}
	if err := window.ApplyCoefficientsInPlace(a.frame, a.window(len(samples))); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: apply window: %w", err)
	}

	a.in = resizeComplex(a.in, n)
	a.out = resizeComplex(a.out, n)
	for i, s := range a.frame {
		a.in[i] = complex(s, 0)
	}
	for i := len(samples); i < n; i++ {
		a.in[i] = 0
	}

	if err := plan.Forward(a.out, a.in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	half := n/2 + 1
	a.mag = core.EnsureLen(a.mag, half)
	re, im, buf := getScratch(half)
	for k := 0; k < half; k++ {
		re[k] = real(a.out[k])
		im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, re, im)
	putScratch(buf)

	scale := a.cfg.scaling.factor(n)
	binHz := sampleRate / float64(n)
	bins := make([]Bin, 0, half)
	for k := 0; k < half; k++ {
		f := float64(k) * binHz
		if f < a.cfg.low {
			continue
		}
		if f > a.cfg.high {
			break
		}
		bins = append(bins, Bin{Freq: f, Mag: a.mag[k] * scale})
	}

	return Spectrum{bins: bins}, nil
}

func (a *Analyzer) plan(n int) (*algofft.Plan[complex128], error) {
	if p, ok := a.plans[n]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: init fft plan (%d): %w", n, err)
	}
	a.plans[n] = p
	return p, nil
}

func (a *Analyzer) window(n int) []float64 {
	if c, ok := a.coeffs[n]; ok {
		return c
	}
	c := window.Generate(a.cfg.window, n, window.WithPeriodic())
	a.coeffs[n] = c
	return c
}

func validateRange(low, high float64) error {
	if math.IsNaN(low) || math.IsNaN(high) || low < 0 || low >= high {
		return fmt.Errorf("%w: [%f, %f]", ErrDegenerateRange, low, high)
	}
	return nil
}

func resizeComplex(buf []complex128, n int) []complex128 {
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]complex128, n)
}
