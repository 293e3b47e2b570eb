package deriv

import (
	"errors"
	"math"
	"testing"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
)

func generateSine(t *testing.T, freq, amplitude, fs, duration float64) *signal.Line {
	t.Helper()
	gen, err := generate.New(generate.Config{
		SamplingFreq:    fs,
		Duration:        duration,
		OscillationFreq: freq,
		Amplitude:       amplitude,
	})
	if err != nil {
		t.Fatalf("generate.New: %v", err)
	}
	if err := gen.Execute(); err != nil {
		t.Fatalf("generate.Execute: %v", err)
	}
	line, err := gen.Line()
	if err != nil {
		t.Fatalf("generate.Line: %v", err)
	}
	return line
}

func execute(t *testing.T, cfg Config) *signal.Line {
	t.Helper()
	d, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	line, err := d.Line()
	if err != nil {
		t.Fatalf("Line: %v", err)
	}
	return line
}

func TestCentralOnlyLengthAndX(t *testing.T) {
	src := generateSine(t, 2, 1, 100, 1)
	out := execute(t, Config{Source: src, Method: CentralOnly})

	if out.Len() != src.Len()-2 {
		t.Fatalf("Len() = %d, want %d", out.Len(), src.Len()-2)
	}

	// Output sample i-1 carries the x of input sample i-1.
	for i := 0; i < out.Len(); i++ {
		pt, _ := out.PointAt(i)
		want, _ := src.PointAt(i)
		if pt.X != want.X {
			t.Fatalf("sample %d: x = %g, want %g", i, pt.X, want.X)
		}
	}
}

func TestCentralAndEdgesLength(t *testing.T) {
	src := generateSine(t, 2, 1, 100, 1)
	out := execute(t, Config{Source: src, Method: CentralAndEdges})

	if out.Len() != src.Len() {
		t.Fatalf("Len() = %d, want %d", out.Len(), src.Len())
	}
}

// The derivative of A*sin(2*pi*f*t), divided by the 2*pi normalization
// factor, is A*f*cos(2*pi*f*t).
func TestNormalizedSineDerivative(t *testing.T) {
	const (
		freq      = 2.0
		amplitude = 3.0
		fs        = 1000.0
	)

	src := generateSine(t, freq, amplitude, fs, 1)
	out := execute(t, Config{Source: src, Method: CentralAndEdges, Normalize: true})

	// Central differences are second-order accurate: the truncation error is
	// h^2/6 times the third derivative, whose magnitude peaks at A*(2*pi*f)^3.
	h := 1.0 / fs
	tol := 2 * amplitude * math.Pow(2*math.Pi*freq, 3) * h * h / 6

	for i := 1; i < out.Len()-1; i++ {
		pt, _ := out.PointAt(i)
		// The central stencil at input index i stores x of sample i-1 but
		// approximates the derivative at sample i.
		ti := float64(i) / fs
		want := amplitude * freq * math.Cos(2*math.Pi*freq*ti)
		if math.Abs(pt.Y-want) > tol {
			t.Fatalf("sample %d: dy = %g, want %g (tol %g)", i, pt.Y, want, tol)
		}
	}
}

func TestUnnormalizedDerivativeOfRamp(t *testing.T) {
	src, err := signal.NewWithCount(5)
	if err != nil {
		t.Fatalf("NewWithCount: %v", err)
	}
	for i := 0; i < 5; i++ {
		_ = src.SetPoint(i, float64(i)*0.5, float64(i)*2) // slope 4
	}

	out := execute(t, Config{Source: src, Method: CentralAndEdges})
	for i := 0; i < out.Len(); i++ {
		pt, _ := out.PointAt(i)
		if math.Abs(pt.Y-4) > 1e-12 {
			t.Fatalf("sample %d: dy = %g, want 4", i, pt.Y)
		}
	}
}

func TestNormalizeRequiresMetadata(t *testing.T) {
	src, err := signal.NewWithCount(10)
	if err != nil {
		t.Fatalf("NewWithCount: %v", err)
	}
	for i := 0; i < 10; i++ {
		_ = src.SetPoint(i, float64(i), float64(i))
	}

	d, err := New(Config{Source: src, Method: CentralAndEdges, Normalize: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Execute(); !errors.Is(err, ErrMissingNormalizeFactor) {
		t.Errorf("Execute error = %v, want %v", err, ErrMissingNormalizeFactor)
	}
}

func TestTooFewPoints(t *testing.T) {
	src, err := signal.NewWithCount(1)
	if err != nil {
		t.Fatalf("NewWithCount: %v", err)
	}

	d, err := New(Config{Source: src, Method: CentralAndEdges})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Execute(); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("Execute error = %v, want %v", err, ErrTooFewPoints)
	}
}

func TestNilSource(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilLine) {
		t.Errorf("New error = %v, want %v", err, ErrNilLine)
	}
}

func TestLineBeforeExecute(t *testing.T) {
	src := generateSine(t, 1, 1, 100, 1)
	d, err := New(Config{Source: src})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := d.Line(); !errors.Is(err, ErrNotExecuted) {
		t.Errorf("Line() before Execute: error = %v, want %v", err, ErrNotExecuted)
	}
}
