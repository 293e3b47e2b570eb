// Package arith combines two signal lines pointwise. Both operators gate on
// the approximate endpoint compatibility check of signal.Line.Equals; see
// the note on Op for what that gate does and does not guarantee.
package arith

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the arithmetic operators.
var (
	ErrNilLine           = errors.New("arith: input lines must not be nil")
	ErrIncompatibleLines = errors.New("arith: input lines are not compatible")
	ErrNotExecuted       = errors.New("arith: operator not executed")
)

type kind uint8

const (
	kindSum kind = iota
	kindMul
)

// Config holds the inputs and options of a Summator or Multiplier.
type Config struct {
	A *signal.Line
	B *signal.Line

	// Tolerance for the endpoint compatibility gate; default
	// signal.DefaultTolerance. Negative values fail at Execute.
	Tolerance signal.Opt

	XLabel     string
	YLabel     string
	GraphLabel string
}

// Op is a pointwise binary operator over two lines of equal length.
//
// Compatibility is checked with the approximate endpoint gate only: equal
// sample counts and matching first/last x-coordinates. Two lines with
// different interior sampling can pass the gate and be combined
// sample-by-sample regardless. Lines of genuinely different length always
// fail the gate; no truncation or padding is attempted.
type Op struct {
	cfg      Config
	op       kind
	line     *signal.Line
	executed bool
}

// NewSummator creates an operator producing the pointwise sum of cfg.A and
// cfg.B.
func NewSummator(cfg Config) (*Op, error) {
	return newOp(cfg, kindSum)
}

// NewMultiplier creates an operator producing the pointwise product of cfg.A
// and cfg.B.
func NewMultiplier(cfg Config) (*Op, error) {
	return newOp(cfg, kindMul)
}

func newOp(cfg Config, op kind) (*Op, error) {
	if cfg.A == nil || cfg.B == nil {
		return nil, ErrNilLine
	}

	return &Op{cfg: cfg, op: op}, nil
}

// Executed reports whether Execute has run.
func (o *Op) Executed() bool {
	return o.executed
}

// Line returns the combined output line.
func (o *Op) Line() (*signal.Line, error) {
	if !o.executed {
		return nil, ErrNotExecuted
	}

	return o.line, nil
}

// Execute combines the inputs into a new line. The output takes its
// x-coordinates and metadata from the first input.
func (o *Op) Execute() error {
	a, b := o.cfg.A, o.cfg.B

	ok, err := a.Equals(b, o.cfg.Tolerance.Or(signal.DefaultTolerance))
	if err != nil {
		return fmt.Errorf("arith: compatibility check: %w", err)
	}

	if !ok {
		return ErrIncompatibleLines
	}

	out, err := signal.Copy(a, 0, 0)
	if err != nil {
		return err
	}

	params := out.Params()
	params.OffsetY = a.Params().OffsetY
	if o.cfg.XLabel != "" {
		params.XLabel = o.cfg.XLabel
	}
	if o.cfg.YLabel != "" {
		params.YLabel = o.cfg.YLabel
	}
	if o.cfg.GraphLabel != "" {
		params.GraphLabel = o.cfg.GraphLabel
	}
	out.SetParams(params)

	switch o.op {
	case kindSum:
		vecmath.AddBlock(out.YS(), a.YS(), b.YS())
	case kindMul:
		vecmath.MulBlock(out.YS(), a.YS(), b.YS())
	}

	o.line = out
	o.executed = true

	return nil
}
