// Package sweep converts a time-domain signal line into a
// correlation-magnitude spectrum by brute force: for every frequency step in
// the configured range it generates a unit reference sine and correlates it
// against the DC-free input.
//
// The output line's x-axis is frequency, not time. The spectrum is a
// correlation strength per frequency without phase information; it is not a
// Fourier transform magnitude spectrum.
//
// Cost is O(N*M) where N is the number of frequency steps and M the number
// of samples in each generated reference. This sweep dominates the runtime
// of the whole toolkit; there is deliberately no FFT shortcut.
package sweep
