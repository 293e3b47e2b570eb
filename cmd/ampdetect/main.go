// Command ampdetect generates a sine signal, optionally buries it in white
// noise, and estimates its amplitude from the RMS of the DC-free signal.
//
// Usage:
//
//	ampdetect [flags]
//
// Examples:
//
//	ampdetect -f 60 -r 1000
//	ampdetect -f 5 -a 2.5 -n 0.3
//	ampdetect -f 5 -a 2.5 -o wave.txt -v
package main

import (
	"fmt"

	"github.com/integrii/flaggy"
	log "github.com/sirupsen/logrus"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
	"github.com/ilvoron/signalproc/measure/rms"
	"github.com/ilvoron/signalproc/sigio"
	"github.com/ilvoron/signalproc/stats"
)

type options struct {
	freq      float64
	rate      float64
	duration  float64
	amplitude float64
	phase     float64
	offset    float64

	noise float64
	seed  int64

	out       string
	overwrite bool
	verbose   bool
}

func parseFlags() options {
	opts := options{
		freq:      signal.DefaultOscillationFreq,
		rate:      signal.DefaultSamplingFreq,
		duration:  signal.DefaultDuration,
		amplitude: signal.DefaultAmplitude,
		seed:      generate.DefaultNoiseSeed,
	}

	parser := flaggy.NewParser("ampdetect")
	parser.Description = "estimate the amplitude of a generated sine signal"

	parser.Float64(&opts.freq, "f", "freq", "oscillation frequency in Hz")
	parser.Float64(&opts.rate, "r", "rate", "sampling frequency in Hz")
	parser.Float64(&opts.duration, "d", "duration", "signal duration in seconds")
	parser.Float64(&opts.amplitude, "a", "amplitude", "signal amplitude")
	parser.Float64(&opts.phase, "p", "phase", "initial phase in radians")
	parser.Float64(&opts.offset, "y", "offset", "vertical offset")
	parser.Float64(&opts.noise, "n", "noise", "white noise amplitude (0 disables)")
	parser.Int64(&opts.seed, "s", "seed", "noise seed")
	parser.String(&opts.out, "o", "out", "write the signal to this file")
	parser.Bool(&opts.overwrite, "w", "overwrite", "overwrite an existing output file")
	parser.Bool(&opts.verbose, "v", "verbose", "print signal statistics")

	if err := parser.Parse(); err != nil {
		log.WithError(err).Fatal("parsing arguments")
	}

	return opts
}

func buildSignal(opts options) *signal.Line {
	gen, err := generate.New(generate.Config{
		SamplingFreq:    opts.rate,
		Duration:        opts.duration,
		OscillationFreq: opts.freq,
		InitPhase:       opts.phase,
		OffsetY:         opts.offset,
		Amplitude:       opts.amplitude,
	})
	if err != nil {
		log.WithError(err).Fatal("configuring generator")
	}

	if err := gen.Execute(); err != nil {
		log.WithError(err).Fatal("generating signal")
	}

	line, err := gen.Line()
	if err != nil {
		log.WithError(err).Fatal("generating signal")
	}

	if opts.noise == 0 {
		return line
	}

	inj, err := generate.NewNoise(generate.NoiseConfig{
		Source:    line,
		Amplitude: opts.noise,
		Seed:      opts.seed,
	})
	if err != nil {
		log.WithError(err).Fatal("configuring noise injector")
	}

	if err := inj.Execute(); err != nil {
		log.WithError(err).Fatal("injecting noise")
	}

	noisy, err := inj.Line()
	if err != nil {
		log.WithError(err).Fatal("injecting noise")
	}

	return noisy
}

func main() {
	opts := parseFlags()
	line := buildSignal(opts)

	det, err := rms.NewAmplitudeDetector(rms.Config{Source: line})
	if err != nil {
		log.WithError(err).Fatal("configuring detector")
	}

	if err := det.Execute(); err != nil {
		log.WithError(err).Fatal("detecting amplitude")
	}

	amplitude, err := det.Amplitude()
	if err != nil {
		log.WithError(err).Fatal("detecting amplitude")
	}

	fmt.Printf("detected amplitude: %g (generated %g)\n", amplitude, opts.amplitude)

	if opts.verbose {
		s, err := stats.Describe(line)
		if err != nil {
			log.WithError(err).Fatal("computing statistics")
		}

		fmt.Printf("samples: %d\n", s.Length)
		fmt.Printf("dc:      %g\n", s.DC)
		fmt.Printf("rms:     %g (%.2f dB)\n", s.RMS, s.RMS_dB)
		fmt.Printf("peak:    %g (%.2f dB)\n", s.Peak, s.Peak_dB)
		fmt.Printf("crest:   %g\n", s.CrestFactor)
	}

	if opts.out != "" {
		if err := sigio.WriteFile(line, opts.out, opts.overwrite); err != nil {
			log.WithError(err).Fatal("writing signal file")
		}

		log.WithField("path", opts.out).Info("signal written")
	}
}
