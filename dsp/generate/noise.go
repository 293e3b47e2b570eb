package generate

import (
	"errors"
	"math/rand"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the noise injector.
var (
	ErrNilSource        = errors.New("generate: noise source line must not be nil")
	ErrUnsupportedNoise = errors.New("generate: unsupported noise type")
)

// NoiseType selects the noise distribution.
type NoiseType uint8

// Supported noise types. Only white noise is implemented; other variants
// fail with ErrUnsupportedNoise.
const (
	White NoiseType = iota
)

// String returns the noise type name.
func (n NoiseType) String() string {
	if n == White {
		return "white"
	}

	return "unknown"
}

// DefaultNoiseSeed is the deterministic seed used when NoiseConfig.Seed is
// zero, so repeated runs produce identical noise.
const DefaultNoiseSeed = 1

// NoiseConfig holds the parameters for a Noise injector.
type NoiseConfig struct {
	Source    *signal.Line
	Amplitude float64 // uniform noise in [-Amplitude, +Amplitude]
	Type      NoiseType
	Seed      int64 // default DefaultNoiseSeed

	XLabel     string
	YLabel     string
	GraphLabel string
}

// Noise adds random perturbation to an existing signal line, producing a new
// line. The source is read-only and keeps its samples.
type Noise struct {
	cfg      NoiseConfig
	line     *signal.Line
	executed bool
}

// NewNoise creates a Noise injector for cfg.Source.
func NewNoise(cfg NoiseConfig) (*Noise, error) {
	if cfg.Source == nil {
		return nil, ErrNilSource
	}

	if cfg.Seed == 0 {
		cfg.Seed = DefaultNoiseSeed
	}

	return &Noise{cfg: cfg}, nil
}

// Executed reports whether Execute has run.
func (n *Noise) Executed() bool {
	return n.executed
}

// Line returns the noisy output line.
func (n *Noise) Line() (*signal.Line, error) {
	if !n.executed {
		return nil, ErrNotExecuted
	}

	return n.line, nil
}

// Execute copies the source line and adds a uniformly distributed random
// value in [-Amplitude, +Amplitude] to every y-coordinate. X-coordinates and
// metadata are unchanged.
func (n *Noise) Execute() error {
	if n.cfg.Type != White {
		return ErrUnsupportedNoise
	}

	out, err := signal.Copy(n.cfg.Source, 0, 0)
	if err != nil {
		return err
	}

	// Copy clears the OffsetY metadatum for translated copies; a noise pass
	// leaves the source untranslated, so restore it.
	params := out.Params()
	params.OffsetY = n.cfg.Source.Params().OffsetY
	if n.cfg.XLabel != "" {
		params.XLabel = n.cfg.XLabel
	}
	if n.cfg.YLabel != "" {
		params.YLabel = n.cfg.YLabel
	}
	if n.cfg.GraphLabel != "" {
		params.GraphLabel = n.cfg.GraphLabel
	}
	out.SetParams(params)

	rng := rand.New(rand.NewSource(n.cfg.Seed))

	ys := out.YS()
	for i := range ys {
		ys[i] += (rng.Float64()*2 - 1) * n.cfg.Amplitude
	}

	n.line = out
	n.executed = true

	return nil
}
