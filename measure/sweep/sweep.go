package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
	"github.com/ilvoron/signalproc/measure/correlate"
)

// Errors returned by the analyzer.
var (
	ErrNilLine             = errors.New("sweep: source line must not be nil")
	ErrFrequencyOrder      = errors.New("sweep: start frequency must be less than end frequency")
	ErrInvalidStep         = errors.New("sweep: step frequency must be positive")
	ErrMissingDuration     = errors.New("sweep: source line carries no duration")
	ErrMissingSamplingFreq = errors.New("sweep: source line carries no sampling frequency")
	ErrNotExecuted         = errors.New("sweep: analyzer not executed")
)

// Default output labels.
const (
	DefaultXLabel     = "Frequency"
	DefaultYLabel     = "Correlation"
	DefaultGraphLabel = "Spectrum"
)

// Config holds the inputs and options of an Analyzer.
type Config struct {
	Source *signal.Line

	From float64 // Hz, inclusive
	To   float64 // Hz, exclusive
	Step float64 // Hz

	// Absolute stores |correlation| instead of the signed coefficient.
	Absolute bool

	XLabel     string
	YLabel     string
	GraphLabel string
}

// Validate checks the frequency range.
func (cfg *Config) Validate() error {
	if cfg.Source == nil {
		return ErrNilLine
	}

	if cfg.From >= cfg.To {
		return ErrFrequencyOrder
	}

	if cfg.Step <= 0 {
		return ErrInvalidStep
	}

	return nil
}

// Analyzer sweeps a frequency range over a source line, producing a
// frequency-domain output line.
type Analyzer struct {
	cfg      Config
	line     *signal.Line
	executed bool
}

// New creates an Analyzer for cfg.Source.
func New(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Analyzer{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (a *Analyzer) Executed() bool {
	return a.executed
}

// Line returns the correlation-magnitude spectrum.
func (a *Analyzer) Line() (*signal.Line, error) {
	if !a.executed {
		return nil, ErrNotExecuted
	}

	return a.line, nil
}

// Execute runs the sweep. For step index i the probed frequency is
// From + i*Step; the output sample is (frequency, correlation against a unit
// reference sine at that frequency).
func (a *Analyzer) Execute() error {
	src := a.cfg.Source

	duration, ok := src.Params().Duration.Get()
	if !ok {
		return ErrMissingDuration
	}

	samplingFreq, ok := src.Params().SamplingFreq.Get()
	if !ok {
		return ErrMissingSamplingFreq
	}

	steps := int(math.Ceil((a.cfg.To - a.cfg.From) / a.cfg.Step))

	out, err := signal.NewWithCount(steps,
		signal.WithXLabel(labelOr(a.cfg.XLabel, DefaultXLabel)),
		signal.WithYLabel(labelOr(a.cfg.YLabel, DefaultYLabel)),
		signal.WithGraphLabel(labelOr(a.cfg.GraphLabel, DefaultGraphLabel)),
	)
	if err != nil {
		return err
	}

	dcFree, err := signal.Copy(src, 0, 0)
	if err != nil {
		return err
	}

	dcFree.RemoveDC(signal.DefaultTolerance)

	for i := 0; i < steps; i++ {
		freq := a.cfg.From + float64(i)*a.cfg.Step

		if freq == 0 {
			// A zero-frequency reference sine is identically zero, so the
			// correlation against it is zero as well.
			if err := out.SetPoint(i, freq, 0); err != nil {
				return err
			}

			continue
		}

		gen, err := generate.New(generate.Config{
			SamplingFreq:    samplingFreq,
			Duration:        duration,
			OscillationFreq: freq,
			Amplitude:       1,
		})
		if err != nil {
			return fmt.Errorf("sweep: reference at %g Hz: %w", freq, err)
		}

		if err := gen.Execute(); err != nil {
			return fmt.Errorf("sweep: reference at %g Hz: %w", freq, err)
		}

		reference, err := gen.Line()
		if err != nil {
			return err
		}

		corr, err := correlate.New(correlate.Config{A: dcFree, B: reference})
		if err != nil {
			return fmt.Errorf("sweep: correlating at %g Hz: %w", freq, err)
		}

		if err := corr.Execute(); err != nil {
			return fmt.Errorf("sweep: correlating at %g Hz: %w", freq, err)
		}

		value, err := corr.Value()
		if err != nil {
			return err
		}

		if a.cfg.Absolute {
			value = math.Abs(value)
		}

		if err := out.SetPoint(i, freq, value); err != nil {
			return err
		}
	}

	a.line = out
	a.executed = true

	return nil
}

func labelOr(label, def string) string {
	if label == "" {
		return def
	}

	return label
}
