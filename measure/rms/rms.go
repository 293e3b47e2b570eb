// Package rms estimates the root-mean-square value and the amplitude of a
// signal line by composing the multiplier and the integrator: the line is
// squared pointwise, the squared power is integrated over the full duration,
// and the mean power's square root is the RMS.
package rms

import (
	"errors"
	"fmt"
	"math"

	"github.com/ilvoron/signalproc/dsp/arith"
	"github.com/ilvoron/signalproc/dsp/integrate"
	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the estimators.
var (
	ErrNilLine         = errors.New("rms: source line must not be nil")
	ErrMissingDuration = errors.New("rms: source line carries no duration")
	ErrNotExecuted     = errors.New("rms: estimator not executed")
)

// Config holds the inputs of an RMS estimator.
type Config struct {
	Source *signal.Line

	// Tolerance for the squaring multiplier's compatibility gate and, in
	// the amplitude detector, the DC-removal symmetry check. Defaults to
	// signal.DefaultTolerance.
	Tolerance signal.Opt
}

// RMS computes the root-mean-square value of a line.
type RMS struct {
	cfg      Config
	value    float64
	executed bool
}

// New creates an RMS estimator for cfg.Source.
func New(cfg Config) (*RMS, error) {
	if cfg.Source == nil {
		return nil, ErrNilLine
	}

	return &RMS{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (r *RMS) Executed() bool {
	return r.executed
}

// Value returns the RMS value.
func (r *RMS) Value() (float64, error) {
	if !r.executed {
		return 0, ErrNotExecuted
	}

	return r.value, nil
}

// Execute squares the source, integrates the power with the trapezoidal
// rule, and takes sqrt(integral/duration).
func (r *RMS) Execute() error {
	duration, ok := r.cfg.Source.Params().Duration.Get()
	if !ok {
		return ErrMissingDuration
	}

	squared, err := arith.NewMultiplier(arith.Config{
		A:         r.cfg.Source,
		B:         r.cfg.Source,
		Tolerance: r.cfg.Tolerance,
	})
	if err != nil {
		return fmt.Errorf("rms: squaring: %w", err)
	}

	if err := squared.Execute(); err != nil {
		return fmt.Errorf("rms: squaring: %w", err)
	}

	power, err := squared.Line()
	if err != nil {
		return err
	}

	total, err := integrate.New(integrate.Config{Source: power, Method: integrate.Trapezoidal})
	if err != nil {
		return fmt.Errorf("rms: integrating power: %w", err)
	}

	if err := total.Execute(); err != nil {
		return fmt.Errorf("rms: integrating power: %w", err)
	}

	energy, err := total.Integral()
	if err != nil {
		return err
	}

	r.value = math.Sqrt(energy / duration)
	r.executed = true

	return nil
}

// AmplitudeDetector estimates the peak amplitude of a symmetric periodic
// waveform as sqrt(2) times the RMS of its DC-free copy. The sqrt(2) crest
// factor holds for sinusoids; the estimate is documented as invalid for
// arbitrary waveforms.
type AmplitudeDetector struct {
	cfg      Config
	value    float64
	executed bool
}

// NewAmplitudeDetector creates an amplitude detector for cfg.Source.
func NewAmplitudeDetector(cfg Config) (*AmplitudeDetector, error) {
	if cfg.Source == nil {
		return nil, ErrNilLine
	}

	return &AmplitudeDetector{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (a *AmplitudeDetector) Executed() bool {
	return a.executed
}

// Amplitude returns the detected amplitude.
func (a *AmplitudeDetector) Amplitude() (float64, error) {
	if !a.executed {
		return 0, ErrNotExecuted
	}

	return a.value, nil
}

// Execute removes the DC component from a copy of the source, estimates the
// copy's RMS, and scales by sqrt(2).
func (a *AmplitudeDetector) Execute() error {
	if !a.cfg.Source.Params().Duration.Present() {
		return ErrMissingDuration
	}

	dcFree, err := signal.Copy(a.cfg.Source, 0, 0)
	if err != nil {
		return err
	}

	dcFree.RemoveDC(a.cfg.Tolerance.Or(signal.DefaultTolerance))

	est, err := New(Config{Source: dcFree, Tolerance: a.cfg.Tolerance})
	if err != nil {
		return err
	}

	if err := est.Execute(); err != nil {
		return err
	}

	value, err := est.Value()
	if err != nil {
		return err
	}

	a.value = math.Sqrt2 * value
	a.executed = true

	return nil
}
