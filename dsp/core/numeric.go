// Package core provides shared numeric helpers used across the
// signal-processing packages.
package core

import "math"

const defaultEpsilon = 1e-12

// TwoPi is the full circle in radians, used both for waveform phase
// computation and as the normalization factor carried by generated lines.
const TwoPi = 2 * math.Pi

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b differ by at most eps.
// A non-positive eps falls back to a small absolute default.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	return math.Abs(a-b) <= eps
}

// PointsCount returns the number of samples needed to cover duration seconds
// at samplingFreq hertz, including both endpoints: ceil(duration*fs)+1.
func PointsCount(samplingFreq, duration float64) int {
	return int(math.Ceil(duration*samplingFreq)) + 1
}
