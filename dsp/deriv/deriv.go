// Package deriv numerically differentiates a signal line using finite
// differences.
package deriv

import (
	"errors"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the differentiator.
var (
	ErrNilLine                = errors.New("deriv: source line must not be nil")
	ErrTooFewPoints           = errors.New("deriv: at least 2 points are required")
	ErrMissingNormalizeFactor = errors.New("deriv: source line carries no normalization factor")
	ErrUnknownMethod          = errors.New("deriv: unknown differentiation method")
	ErrNotExecuted            = errors.New("deriv: differentiator not executed")
)

// Method selects how the edges of the line are differentiated.
type Method uint8

const (
	// CentralOnly uses central differences for interior points and drops
	// both edges: the output is two samples shorter than the input.
	CentralOnly Method = iota

	// CentralAndEdges keeps the input length, using a forward difference at
	// the first sample and a backward difference at the last.
	CentralAndEdges
)

// Config holds the inputs and options of a Differentiator.
type Config struct {
	Source *signal.Line
	Method Method

	// Normalize divides every derivative by the source's normalization
	// factor metadatum, undoing the angular-frequency scaling of generated
	// waveforms. The metadatum must be present when Normalize is set.
	Normalize bool

	XLabel     string
	YLabel     string
	GraphLabel string
}

// Differentiator computes the numeric derivative of a line, producing a new
// line.
type Differentiator struct {
	cfg      Config
	line     *signal.Line
	executed bool
}

// New creates a Differentiator for cfg.Source.
func New(cfg Config) (*Differentiator, error) {
	if cfg.Source == nil {
		return nil, ErrNilLine
	}

	return &Differentiator{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (d *Differentiator) Executed() bool {
	return d.executed
}

// Line returns the derivative line.
func (d *Differentiator) Line() (*signal.Line, error) {
	if !d.executed {
		return nil, ErrNotExecuted
	}

	return d.line, nil
}

// Execute differentiates the source line. Every output sample takes the
// x-coordinate of the left point of its difference stencil.
func (d *Differentiator) Execute() error {
	src := d.cfg.Source
	n := src.Len()

	if n < 2 {
		return ErrTooFewPoints
	}

	norm := 1.0
	if d.cfg.Normalize {
		factor, ok := src.Params().NormalizeFactor.Get()
		if !ok {
			return ErrMissingNormalizeFactor
		}

		norm = factor
	}

	var outLen int

	switch d.cfg.Method {
	case CentralOnly:
		outLen = n - 2
	case CentralAndEdges:
		outLen = n
	default:
		return ErrUnknownMethod
	}

	out, err := signal.NewWithCount(outLen)
	if err != nil {
		return err
	}

	params := src.Params()
	if d.cfg.XLabel != "" {
		params.XLabel = d.cfg.XLabel
	}
	if d.cfg.YLabel != "" {
		params.YLabel = d.cfg.YLabel
	}
	if d.cfg.GraphLabel != "" {
		params.GraphLabel = d.cfg.GraphLabel
	}
	out.SetParams(params)

	xs, ys := src.XS(), src.YS()

	central := func(i int) (x, dydx float64) {
		return xs[i-1], (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1]) / norm
	}

	switch d.cfg.Method {
	case CentralOnly:
		for i := 1; i < n-1; i++ {
			x, dydx := central(i)
			if err := out.SetPoint(i-1, x, dydx); err != nil {
				return err
			}
		}

	case CentralAndEdges:
		forward := (ys[1] - ys[0]) / (xs[1] - xs[0]) / norm
		if err := out.SetPoint(0, xs[0], forward); err != nil {
			return err
		}

		backward := (ys[n-1] - ys[n-2]) / (xs[n-1] - xs[n-2]) / norm
		if err := out.SetPoint(n-1, xs[n-2], backward); err != nil {
			return err
		}

		for i := 1; i < n-1; i++ {
			x, dydx := central(i)
			if err := out.SetPoint(i, x, dydx); err != nil {
				return err
			}
		}
	}

	d.line = out
	d.executed = true

	return nil
}
