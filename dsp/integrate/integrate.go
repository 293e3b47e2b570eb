// Package integrate computes the definite integral of a signal line with a
// selectable quadrature rule.
package integrate

import (
	"errors"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the integrator.
var (
	ErrNilLine             = errors.New("integrate: source line must not be nil")
	ErrTooFewPoints        = errors.New("integrate: at least 2 points are required")
	ErrMethodPreconditions = errors.New("integrate: sample count violates the method's requirement")
	ErrUnknownMethod       = errors.New("integrate: unknown integration method")
	ErrNotExecuted         = errors.New("integrate: integrator not executed")
)

// Method selects the quadrature rule.
type Method uint8

const (
	// Trapezoidal accepts any sample count of at least 2.
	Trapezoidal Method = iota

	// Simpson requires an odd sample count.
	Simpson

	// Boole requires a sample count of the form 4k+1.
	Boole
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Trapezoidal:
		return "trapezoidal"
	case Simpson:
		return "simpson"
	case Boole:
		return "boole"
	default:
		return "unknown"
	}
}

// Config holds the inputs of an Integrator.
type Config struct {
	Source *signal.Line
	Method Method
}

// Integrator computes a scalar definite integral over the full extent of a
// line.
type Integrator struct {
	cfg      Config
	integral float64
	executed bool
}

// New creates an Integrator for cfg.Source.
func New(cfg Config) (*Integrator, error) {
	if cfg.Source == nil {
		return nil, ErrNilLine
	}

	return &Integrator{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (in *Integrator) Executed() bool {
	return in.executed
}

// Integral returns the computed integral.
func (in *Integrator) Integral() (float64, error) {
	if !in.executed {
		return 0, ErrNotExecuted
	}

	return in.integral, nil
}

// Execute evaluates the quadrature rule over the source samples. The x
// spacing need not be uniform; every rule weighs each panel by its actual
// width.
func (in *Integrator) Execute() error {
	src := in.cfg.Source
	n := src.Len()

	if n < 2 {
		return ErrTooFewPoints
	}

	xs, ys := src.XS(), src.YS()

	var sum float64

	switch in.cfg.Method {
	case Trapezoidal:
		for i := 1; i < n; i++ {
			sum += (ys[i-1] + ys[i]) / 2 * (xs[i] - xs[i-1])
		}

	case Simpson:
		if n%2 == 0 {
			return ErrMethodPreconditions
		}

		for i := 1; i < n-1; i += 2 {
			sum += (xs[i+1] - xs[i-1]) / 6 * (ys[i-1] + 4*ys[i] + ys[i+1])
		}

	case Boole:
		if n%4 != 1 {
			return ErrMethodPreconditions
		}

		for i := 0; i < n-4; i += 4 {
			sum += (xs[i+4] - xs[i]) / 90 *
				(7*ys[i] + 32*ys[i+1] + 12*ys[i+2] + 32*ys[i+3] + 7*ys[i+4])
		}

	default:
		return ErrUnknownMethod
	}

	in.integral = sum
	in.executed = true

	return nil
}
