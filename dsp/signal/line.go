// Package signal defines the Line data model shared by every processing
// package: a fixed-length series of (x, y) samples with optional descriptive
// metadata and a lazily computed extrema cache.
package signal

import (
	"errors"
	"math"

	"github.com/ilvoron/signalproc/dsp/core"
)

// Errors returned by Line constructors and accessors.
var (
	ErrNonPositiveDuration     = errors.New("signal: duration must be positive")
	ErrNonPositiveSamplingFreq = errors.New("signal: sampling frequency must be positive")
	ErrNonPositivePointsCount  = errors.New("signal: points count must be positive")
	ErrNilLine                 = errors.New("signal: line must not be nil")
	ErrIndexOutOfRange         = errors.New("signal: sample index out of range")
	ErrNegativeTolerance       = errors.New("signal: tolerance must not be negative")
)

// Default metadata values shared by the processing packages.
const (
	DefaultSamplingFreq    = 100.0 // Hz
	DefaultDuration        = 1.0   // seconds
	DefaultOscillationFreq = 1.0   // Hz
	DefaultInitPhase       = 0.0   // radians
	DefaultOffsetY         = 0.0
	DefaultAmplitude       = 1.0
	DefaultTolerance       = 1e-9
)

// Default axis and graph labels.
const (
	DefaultXLabel     = "X Axis"
	DefaultYLabel     = "Y Axis"
	DefaultGraphLabel = "Graph"
)

// Point is a single (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// Opt is an optional float64 metadatum. The zero value is absent.
type Opt struct {
	value float64
	ok    bool
}

// Some returns a present Opt holding v.
func Some(v float64) Opt {
	return Opt{value: v, ok: true}
}

// Get returns the held value and whether it is present.
func (o Opt) Get() (float64, bool) {
	return o.value, o.ok
}

// Or returns the held value, or def when absent.
func (o Opt) Or(def float64) float64 {
	if o.ok {
		return o.value
	}

	return def
}

// Present reports whether the metadatum is set.
func (o Opt) Present() bool {
	return o.ok
}

// Params holds the descriptive metadata of a Line. Every float metadatum is
// independently present or absent; processing packages that require one fail
// when it is missing rather than assume a default.
type Params struct {
	SamplingFreq    Opt // Hz
	Duration        Opt // seconds
	OscillationFreq Opt // Hz
	InitPhase       Opt // radians
	OffsetY         Opt
	Amplitude       Opt
	NormalizeFactor Opt // undoes angular-frequency scaling in differentiation

	XLabel     string
	YLabel     string
	GraphLabel string
}

type extremum struct {
	value float64
	valid bool
}

// Line is an ordered, fixed-length series of samples. The sample count never
// changes after construction; samples are mutated in place via SetPoint.
// Processing operators treat their input Lines as read-only and produce new
// Lines.
//
// The max/min extrema are cached on first computation and never invalidated
// implicitly, not even by SetPoint or RemoveDC. Callers that mutate samples
// must pass force=true to FindMax/FindMin when they need a fresh value.
type Line struct {
	xs     []float64
	ys     []float64
	params Params

	maxY extremum
	minY extremum
}

// Option configures the metadata of a newly constructed Line.
type Option func(*Params)

// WithOscillationFreq attaches the oscillation frequency metadatum, in Hz.
func WithOscillationFreq(freq float64) Option {
	return func(p *Params) { p.OscillationFreq = Some(freq) }
}

// WithInitPhase attaches the initial phase metadatum, in radians.
func WithInitPhase(phase float64) Option {
	return func(p *Params) { p.InitPhase = Some(phase) }
}

// WithOffsetY attaches the vertical offset metadatum.
func WithOffsetY(offset float64) Option {
	return func(p *Params) { p.OffsetY = Some(offset) }
}

// WithAmplitude attaches the amplitude metadatum.
func WithAmplitude(amplitude float64) Option {
	return func(p *Params) { p.Amplitude = Some(amplitude) }
}

// WithNormalizeFactor attaches the normalization factor metadatum.
func WithNormalizeFactor(factor float64) Option {
	return func(p *Params) { p.NormalizeFactor = Some(factor) }
}

// WithXLabel sets the x-axis label.
func WithXLabel(label string) Option {
	return func(p *Params) { p.XLabel = label }
}

// WithYLabel sets the y-axis label.
func WithYLabel(label string) Option {
	return func(p *Params) { p.YLabel = label }
}

// WithGraphLabel sets the graph title label.
func WithGraphLabel(label string) Option {
	return func(p *Params) { p.GraphLabel = label }
}

// New creates a zero-initialized Line covering duration seconds sampled at
// samplingFreq hertz. The sample count is ceil(duration*samplingFreq)+1 so
// both endpoints are included. Sampling frequency and duration are attached
// as metadata; further metadata is attached via options.
func New(samplingFreq, duration float64, opts ...Option) (*Line, error) {
	if duration <= 0 {
		return nil, ErrNonPositiveDuration
	}

	if samplingFreq <= 0 {
		return nil, ErrNonPositiveSamplingFreq
	}

	n := core.PointsCount(samplingFreq, duration)

	line := newZeroed(n)
	line.params.SamplingFreq = Some(samplingFreq)
	line.params.Duration = Some(duration)
	applyOptions(&line.params, opts)

	return line, nil
}

// NewWithCount creates a zero-initialized Line with exactly pointsCount
// samples and no frequency or duration metadata.
func NewWithCount(pointsCount int, opts ...Option) (*Line, error) {
	if pointsCount <= 0 {
		return nil, ErrNonPositivePointsCount
	}

	line := newZeroed(pointsCount)
	applyOptions(&line.params, opts)

	return line, nil
}

// Copy creates a new Line from src with every sample translated by
// (offsetX, offsetY). Metadata is copied except the OffsetY metadatum, which
// is cleared: the offset has been materialized into the sample data.
// The extrema cache is not copied.
func Copy(src *Line, offsetX, offsetY float64) (*Line, error) {
	if src == nil {
		return nil, ErrNilLine
	}

	line := newZeroed(src.Len())
	line.params = src.params
	line.params.OffsetY = Opt{}

	for i := range src.xs {
		line.xs[i] = src.xs[i] + offsetX
		line.ys[i] = src.ys[i] + offsetY
	}

	return line, nil
}

func newZeroed(n int) *Line {
	return &Line{
		xs: make([]float64, n),
		ys: make([]float64, n),
		params: Params{
			XLabel:     DefaultXLabel,
			YLabel:     DefaultYLabel,
			GraphLabel: DefaultGraphLabel,
		},
	}
}

func applyOptions(p *Params, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
}

// Len returns the number of samples.
func (l *Line) Len() int {
	return len(l.xs)
}

// Params returns the Line's metadata.
func (l *Line) Params() Params {
	return l.params
}

// SetParams replaces the Line's metadata.
func (l *Line) SetParams(p Params) {
	l.params = p
}

// SetPoint replaces the sample at index i. The extrema cache is not
// invalidated.
func (l *Line) SetPoint(i int, x, y float64) error {
	if i < 0 || i >= len(l.xs) {
		return ErrIndexOutOfRange
	}

	l.xs[i] = x
	l.ys[i] = y

	return nil
}

// PointAt returns the sample at index i.
func (l *Line) PointAt(i int) (Point, error) {
	if i < 0 || i >= len(l.xs) {
		return Point{}, ErrIndexOutOfRange
	}

	return Point{X: l.xs[i], Y: l.ys[i]}, nil
}

// XS returns the x-coordinate slice. Callers must treat it as read-only.
func (l *Line) XS() []float64 {
	return l.xs
}

// YS returns the y-coordinate slice. Callers must treat it as read-only.
func (l *Line) YS() []float64 {
	return l.ys
}

// Equals reports whether other is approximately compatible with l: same
// sample count and first/last x-coordinates within tolerance.
//
// This is an O(1) compatibility gate, not an elementwise equality test.
// Two lines of the same length that merely share endpoints pass it; the
// arithmetic operators rely on exactly this check as their precondition.
func (l *Line) Equals(other *Line, tolerance float64) (bool, error) {
	if other == nil {
		return false, ErrNilLine
	}

	if tolerance < 0 {
		return false, ErrNegativeTolerance
	}

	n := l.Len()
	if n != other.Len() {
		return false, nil
	}

	first := math.Abs(l.xs[0]-other.xs[0]) <= tolerance
	last := math.Abs(l.xs[n-1]-other.xs[n-1]) <= tolerance

	return first && last, nil
}

// FindMax returns the maximum y-value. The result is cached; pass force to
// recompute after mutating samples.
func (l *Line) FindMax(force bool) float64 {
	if l.maxY.valid && !force {
		return l.maxY.value
	}

	max := l.ys[0]
	for _, y := range l.ys[1:] {
		if y > max {
			max = y
		}
	}

	l.maxY = extremum{value: max, valid: true}

	return max
}

// FindMin returns the minimum y-value. The result is cached; pass force to
// recompute after mutating samples.
func (l *Line) FindMin(force bool) float64 {
	if l.minY.valid && !force {
		return l.minY.value
	}

	min := l.ys[0]
	for _, y := range l.ys[1:] {
		if y < min {
			min = y
		}
	}

	l.minY = extremum{value: min, valid: true}

	return min
}

// RemoveDC centers an asymmetric waveform around zero: when |min| is not
// within tolerance of |max| the midpoint (max+min)/2 is subtracted from every
// y-value. A waveform already symmetric within tolerance is left untouched.
//
// The extrema consulted here may come from the cache, and the cache is not
// refreshed after the shift. This mirrors the manual-invalidation contract.
func (l *Line) RemoveDC(tolerance float64) {
	max := l.FindMax(false)
	min := l.FindMin(false)

	if math.Abs(math.Abs(max)-math.Abs(min)) <= tolerance {
		return
	}

	mid := (max + min) / 2
	for i := range l.ys {
		l.ys[i] -= mid
	}
}
