package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
)

func generateWave(t *testing.T, cfg generate.Config) *signal.Line {
	t.Helper()
	gen, err := generate.New(cfg)
	require.NoError(t, err)
	require.NoError(t, gen.Execute())
	line, err := gen.Line()
	require.NoError(t, err)
	return line
}

func sweepLine(t *testing.T, cfg Config) *signal.Line {
	t.Helper()
	an, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, an.Execute())
	line, err := an.Line()
	require.NoError(t, err)
	return line
}

func TestConfigValidation(t *testing.T) {
	src := generateWave(t, generate.Config{SamplingFreq: 100, Duration: 1, OscillationFreq: 5})

	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"nil source", Config{From: 0, To: 10, Step: 0.5}, ErrNilLine},
		{"start above end", Config{Source: src, From: 10, To: 5, Step: 0.5}, ErrFrequencyOrder},
		{"start equals end", Config{Source: src, From: 5, To: 5, Step: 0.5}, ErrFrequencyOrder},
		{"zero step", Config{Source: src, From: 0, To: 10, Step: 0}, ErrInvalidStep},
		{"negative step", Config{Source: src, From: 0, To: 10, Step: -1}, ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSweepPeaksAtSourceFrequency(t *testing.T) {
	src := generateWave(t, generate.Config{SamplingFreq: 200, Duration: 2, OscillationFreq: 5, Amplitude: 3})

	out := sweepLine(t, Config{Source: src, From: 0, To: 10, Step: 0.5, Absolute: true})
	require.Equal(t, 20, out.Len())

	peakIdx := 0
	for i := 1; i < out.Len(); i++ {
		pt, err := out.PointAt(i)
		require.NoError(t, err)
		best, err := out.PointAt(peakIdx)
		require.NoError(t, err)
		if pt.Y > best.Y {
			peakIdx = i
		}
	}

	peak, err := out.PointAt(peakIdx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, peak.X)
	assert.InDelta(t, 1.0, peak.Y, 1e-3)
}

func TestSweepIgnoresVerticalOffset(t *testing.T) {
	src := generateWave(t, generate.Config{SamplingFreq: 200, Duration: 2, OscillationFreq: 5, OffsetY: 4})

	out := sweepLine(t, Config{Source: src, From: 1, To: 10, Step: 1, Absolute: true})

	peak, err := out.PointAt(4)
	require.NoError(t, err)
	assert.Equal(t, 5.0, peak.X)
	assert.InDelta(t, 1.0, peak.Y, 1e-3)
}

func TestZeroFrequencySampleIsZero(t *testing.T) {
	src := generateWave(t, generate.Config{SamplingFreq: 100, Duration: 1, OscillationFreq: 5})

	out := sweepLine(t, Config{Source: src, From: 0, To: 2, Step: 1})

	pt, err := out.PointAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pt.X)
	assert.Equal(t, 0.0, pt.Y)
}

func TestSourceWithoutMetadataFails(t *testing.T) {
	bare, err := signal.NewWithCount(16)
	require.NoError(t, err)

	an, err := New(Config{Source: bare, From: 0, To: 10, Step: 1})
	require.NoError(t, err)
	assert.ErrorIs(t, an.Execute(), ErrMissingDuration)
}

func TestLineBeforeExecuteFails(t *testing.T) {
	src := generateWave(t, generate.Config{OscillationFreq: 5})

	an, err := New(Config{Source: src, From: 0, To: 10, Step: 1})
	require.NoError(t, err)

	_, err = an.Line()
	assert.ErrorIs(t, err, ErrNotExecuted)
	assert.False(t, an.Executed())
}

func TestCustomLabels(t *testing.T) {
	src := generateWave(t, generate.Config{OscillationFreq: 2})

	out := sweepLine(t, Config{
		Source: src, From: 1, To: 4, Step: 1,
		XLabel: "f, Hz", GraphLabel: "Scan",
	})

	p := out.Params()
	assert.Equal(t, "f, Hz", p.XLabel)
	assert.Equal(t, DefaultYLabel, p.YLabel)
	assert.Equal(t, "Scan", p.GraphLabel)
}
