// Package correlate computes a zero-lag correlation coefficient between two
// signal lines.
//
// The coefficient is the time average of the pointwise product, optionally
// normalized by the product of both RMS values. It captures correlation
// magnitude at a single lag with a zero phase reference; it is not a full
// cross-correlation function and carries no phase information.
package correlate

import (
	"errors"
	"fmt"

	"github.com/ilvoron/signalproc/dsp/arith"
	"github.com/ilvoron/signalproc/dsp/integrate"
	"github.com/ilvoron/signalproc/dsp/signal"
	"github.com/ilvoron/signalproc/measure/rms"
)

// Errors returned by the correlator.
var (
	ErrNilLine         = errors.New("correlate: input lines must not be nil")
	ErrMissingDuration = errors.New("correlate: input line carries no duration")
	ErrNotExecuted     = errors.New("correlate: correlator not executed")
)

// Config holds the inputs and options of a Correlator.
type Config struct {
	A *signal.Line
	B *signal.Line

	// SkipNormalization leaves the raw time-averaged product, without
	// dividing by RMS(A)*RMS(B). Normalization is on by default.
	SkipNormalization bool

	// Tolerance for the product multiplier's compatibility gate; defaults
	// to signal.DefaultTolerance.
	Tolerance signal.Opt
}

// Correlator computes the correlation coefficient of two lines.
type Correlator struct {
	cfg      Config
	value    float64
	executed bool
}

// New creates a Correlator for cfg.A and cfg.B.
func New(cfg Config) (*Correlator, error) {
	if cfg.A == nil || cfg.B == nil {
		return nil, ErrNilLine
	}

	return &Correlator{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (c *Correlator) Executed() bool {
	return c.executed
}

// Value returns the correlation coefficient.
func (c *Correlator) Value() (float64, error) {
	if !c.executed {
		return 0, ErrNotExecuted
	}

	return c.value, nil
}

// Execute multiplies the inputs pointwise, integrates the product, and
// divides by the first input's duration. Unless normalization is skipped the
// result is further divided by RMS(A)*RMS(B), scaling a same-shape match
// to 1.
func (c *Correlator) Execute() error {
	duration, ok := c.cfg.A.Params().Duration.Get()
	if !ok {
		return ErrMissingDuration
	}

	if !c.cfg.B.Params().Duration.Present() {
		return ErrMissingDuration
	}

	product, err := arith.NewMultiplier(arith.Config{
		A:         c.cfg.A,
		B:         c.cfg.B,
		Tolerance: c.cfg.Tolerance,
	})
	if err != nil {
		return fmt.Errorf("correlate: product: %w", err)
	}

	if err := product.Execute(); err != nil {
		return fmt.Errorf("correlate: product: %w", err)
	}

	productLine, err := product.Line()
	if err != nil {
		return err
	}

	total, err := integrate.New(integrate.Config{Source: productLine, Method: integrate.Trapezoidal})
	if err != nil {
		return fmt.Errorf("correlate: integrating product: %w", err)
	}

	if err := total.Execute(); err != nil {
		return fmt.Errorf("correlate: integrating product: %w", err)
	}

	integral, err := total.Integral()
	if err != nil {
		return err
	}

	raw := integral / duration

	if c.cfg.SkipNormalization {
		c.value = raw
		c.executed = true

		return nil
	}

	norm := 1.0

	for _, line := range []*signal.Line{c.cfg.A, c.cfg.B} {
		est, err := rms.New(rms.Config{Source: line, Tolerance: c.cfg.Tolerance})
		if err != nil {
			return fmt.Errorf("correlate: normalizing: %w", err)
		}

		if err := est.Execute(); err != nil {
			return fmt.Errorf("correlate: normalizing: %w", err)
		}

		value, err := est.Value()
		if err != nil {
			return err
		}

		norm *= value
	}

	c.value = raw / norm
	c.executed = true

	return nil
}
