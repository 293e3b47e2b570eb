// Package generate synthesizes signal lines from closed-form waveforms and
// injects random noise into existing lines.
package generate

import (
	"errors"
	"math"

	"github.com/ilvoron/signalproc/dsp/core"
	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the generator.
var (
	ErrNotExecuted     = errors.New("generate: generator not executed")
	ErrUnknownWaveform = errors.New("generate: unknown waveform")
	ErrClampNegative   = errors.New("generate: clamp value must be positive")
)

// Waveform selects the closed-form function a Generator samples.
type Waveform uint8

// Supported waveforms. The set is closed; Execute switches exhaustively.
const (
	Sine Waveform = iota
	Cosine
	Tangent
	Cotangent
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Cosine:
		return "cosine"
	case Tangent:
		return "tangent"
	case Cotangent:
		return "cotangent"
	default:
		return "unknown"
	}
}

// epsilon is the double-precision machine epsilon, the threshold below
// which a tangent value is treated as sitting on a cotangent asymptote.
const epsilon = 2.220446049250313e-16

// Default generation parameters.
const (
	DefaultClampValue = 10.0

	DefaultXLabel     = "Time"
	DefaultYLabel     = "Amplitude"
	DefaultGraphLabel = "Signal"
)

// Config holds the waveform parameters for a Generator.
//
// Zero-valued SamplingFreq, Duration, OscillationFreq, Amplitude and
// ClampValue fall back to the package defaults; InitPhase and OffsetY are
// used as given.
type Config struct {
	SamplingFreq    float64 // Hz; default 100
	Duration        float64 // seconds; default 1
	OscillationFreq float64 // Hz; default 1
	InitPhase       float64 // radians
	OffsetY         float64
	Amplitude       float64 // default 1

	Waveform   Waveform
	ClampValue float64 // tangent/cotangent only; default 10

	XLabel     string
	YLabel     string
	GraphLabel string
}

func (cfg *Config) applyDefaults() {
	if cfg.SamplingFreq == 0 {
		cfg.SamplingFreq = signal.DefaultSamplingFreq
	}

	if cfg.Duration == 0 {
		cfg.Duration = signal.DefaultDuration
	}

	if cfg.OscillationFreq == 0 {
		cfg.OscillationFreq = signal.DefaultOscillationFreq
	}

	if cfg.Amplitude == 0 {
		cfg.Amplitude = signal.DefaultAmplitude
	}

	if cfg.ClampValue == 0 {
		cfg.ClampValue = DefaultClampValue
	}

	if cfg.XLabel == "" {
		cfg.XLabel = DefaultXLabel
	}

	if cfg.YLabel == "" {
		cfg.YLabel = DefaultYLabel
	}

	if cfg.GraphLabel == "" {
		cfg.GraphLabel = DefaultGraphLabel
	}
}

// Generator samples a waveform into a signal line. Construction validates
// the configuration and allocates the output; Execute fills it in.
type Generator struct {
	cfg      Config
	line     *signal.Line
	executed bool
}

// New creates a Generator. Tangent and cotangent waveforms require a
// positive clamp value.
func New(cfg Config) (*Generator, error) {
	cfg.applyDefaults()

	if cfg.Waveform == Tangent || cfg.Waveform == Cotangent {
		if cfg.ClampValue < 0 {
			return nil, ErrClampNegative
		}
	}

	// Generated lines carry the full metadata set: every downstream
	// operator (differentiation, RMS, correlation, the frequency sweep)
	// reads some of it. The normalization factor is 2*pi for all four
	// waveform kinds since they are parameterized by angular frequency.
	line, err := signal.New(cfg.SamplingFreq, cfg.Duration,
		signal.WithOscillationFreq(cfg.OscillationFreq),
		signal.WithInitPhase(cfg.InitPhase),
		signal.WithOffsetY(cfg.OffsetY),
		signal.WithAmplitude(cfg.Amplitude),
		signal.WithNormalizeFactor(core.TwoPi),
		signal.WithXLabel(cfg.XLabel),
		signal.WithYLabel(cfg.YLabel),
		signal.WithGraphLabel(cfg.GraphLabel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{cfg: cfg, line: line}, nil
}

// Config returns the effective configuration after defaulting.
func (g *Generator) Config() Config {
	return g.cfg
}

// Executed reports whether Execute has run.
func (g *Generator) Executed() bool {
	return g.executed
}

// Line returns the generated signal line.
func (g *Generator) Line() (*signal.Line, error) {
	if !g.executed {
		return nil, ErrNotExecuted
	}

	return g.line, nil
}

// Execute fills the output line with waveform samples. For every index i the
// x-coordinate is i/samplingFreq. Tangent and cotangent values are clamped
// to [-clamp, clamp] before the vertical offset is applied, so the offset
// survives clamping.
func (g *Generator) Execute() error {
	cfg := g.cfg
	step := core.TwoPi * cfg.OscillationFreq / cfg.SamplingFreq

	n := g.line.Len()
	for i := 0; i < n; i++ {
		x := float64(i) / cfg.SamplingFreq
		theta := step*float64(i) + cfg.InitPhase

		var y float64

		switch cfg.Waveform {
		case Sine:
			y = cfg.Amplitude*math.Sin(theta) + cfg.OffsetY

		case Cosine:
			y = cfg.Amplitude*math.Cos(theta) + cfg.OffsetY

		case Tangent:
			y = core.Clamp(cfg.Amplitude*math.Tan(theta), -cfg.ClampValue, cfg.ClampValue)
			y += cfg.OffsetY

		case Cotangent:
			tan := cfg.Amplitude * math.Tan(theta)
			if math.Abs(tan) < epsilon {
				// Near the asymptote the reciprocal explodes; pin it to the
				// clamp value with the tangent's sign.
				y = math.Copysign(cfg.ClampValue, tan)
			} else {
				y = cfg.Amplitude * (1.0 / tan)
			}

			y = core.Clamp(y, -cfg.ClampValue, cfg.ClampValue)
			y += cfg.OffsetY

		default:
			return ErrUnknownWaveform
		}

		if err := g.line.SetPoint(i, x, y); err != nil {
			return err
		}
	}

	g.executed = true

	return nil
}
