// Package stats computes time-domain summary statistics of signal lines.
package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// ErrNilLine is returned when a nil line is passed to Describe.
var ErrNilLine = errors.New("stats: line must not be nil")

// Summary holds time-domain statistics of a signal line.
//
//nolint:revive
type Summary struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	Peak           float64 // max(|max|, |min|)
	Peak_dB        float64
	Range          float64 // max - min
	Range_dB       float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Energy         float64 // sum of squares
	Power          float64 // energy / length
	ZeroCrossings  int
	Variance       float64 // unbiased sample variance
	Skewness       float64
	Kurtosis       float64 // excess kurtosis
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

func emptySummary() Summary {
	return Summary{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		Range_dB:       math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Describe computes the full statistics summary of a line's sample values.
// An empty line yields a zero summary with -Inf dB fields.
func Describe(line *signal.Line) (Summary, error) {
	if line == nil {
		return Summary{}, ErrNilLine
	}

	ys := samples(line)

	n := len(ys)
	if n == 0 {
		return emptySummary(), nil
	}

	nf := float64(n)

	mean := stat.Mean(ys, nil)
	energy := floats.Dot(ys, ys)
	rms := math.Sqrt(energy / nf)

	maxPos := floats.MaxIdx(ys)
	minPos := floats.MinIdx(ys)
	maxVal := ys[maxPos]
	minVal := ys[minPos]

	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))
	rangeVal := maxVal - minVal

	var crest, crestdB float64
	if rms == 0 {
		crestdB = math.Inf(-1)
	} else {
		crest = peak / rms
		crestdB = ampTodB(crest)
	}

	var variance, skewness, kurtosis float64
	if n > 1 {
		variance = stat.Variance(ys, nil)
	}

	if variance > 0 {
		skewness = stat.Skew(ys, nil)
		kurtosis = stat.ExKurtosis(ys, nil)
	}

	return Summary{
		Length:         n,
		DC:             mean,
		DC_dB:          ampTodB(mean),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Max:            maxVal,
		MaxPos:         maxPos,
		Min:            minVal,
		MinPos:         minPos,
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		Range:          rangeVal,
		Range_dB:       ampTodB(rangeVal),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Energy:         energy,
		Power:          energy / nf,
		ZeroCrossings:  ZeroCrossings(line),
		Variance:       variance,
		Skewness:       skewness,
		Kurtosis:       kurtosis,
	}, nil
}

func samples(line *signal.Line) []float64 {
	if line == nil {
		return nil
	}

	return line.YS()
}

// RMS returns the root-mean-square of the line's sample values. This is the
// discrete counterpart of the integral-based measure/rms estimator; the two
// agree on dense lines.
func RMS(line *signal.Line) float64 {
	ys := samples(line)
	if len(ys) == 0 {
		return 0
	}

	return math.Sqrt(floats.Dot(ys, ys) / float64(len(ys)))
}

// DC returns the mean of the line's sample values.
func DC(line *signal.Line) float64 {
	ys := samples(line)
	if len(ys) == 0 {
		return 0
	}

	return stat.Mean(ys, nil)
}

// Peak returns the peak absolute sample value of the line.
func Peak(line *signal.Line) float64 {
	ys := samples(line)
	if len(ys) == 0 {
		return 0
	}

	return math.Max(math.Abs(floats.Max(ys)), math.Abs(floats.Min(ys)))
}

// CrestFactor returns peak / RMS, or 0 when the RMS is zero.
func CrestFactor(line *signal.Line) float64 {
	r := RMS(line)
	if r == 0 {
		return 0
	}

	return Peak(line) / r
}

// ZeroCrossings counts sign changes between consecutive samples. A sample
// that is exactly zero does not count as a crossing.
func ZeroCrossings(line *signal.Line) int {
	ys := samples(line)
	if len(ys) < 2 {
		return 0
	}

	var count int

	for i := 1; i < len(ys); i++ {
		if ys[i-1]*ys[i] < 0 {
			count++
		}
	}

	return count
}
