// Command freqscan generates a sine signal, optionally with white noise,
// sweeps a frequency range against it, and writes the signal and its
// correlation spectrum as two-column text files. With -plot it renders both
// through gnuplot.
//
// Usage:
//
//	freqscan [flags]
//
// Examples:
//
//	freqscan -f 5 -from 0 -to 10 -step 0.5
//	freqscan -f 50 -r 1000 -n 0.5 -plot
package main

import (
	"fmt"

	"github.com/integrii/flaggy"
	log "github.com/sirupsen/logrus"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
	"github.com/ilvoron/signalproc/measure/sweep"
	"github.com/ilvoron/signalproc/plot"
	"github.com/ilvoron/signalproc/sigio"
)

type options struct {
	freq      float64
	rate      float64
	duration  float64
	amplitude float64

	noise float64
	seed  int64

	from float64
	to   float64
	step float64

	signalOut   string
	spectrumOut string
	overwrite   bool

	plot        bool
	gnuplotPath string
}

func parseFlags() options {
	opts := options{
		freq:      5,
		rate:      signal.DefaultSamplingFreq,
		duration:  signal.DefaultDuration,
		amplitude: signal.DefaultAmplitude,
		seed:      generate.DefaultNoiseSeed,

		from: 0,
		to:   10,
		step: 0.5,

		signalOut:   "signal.txt",
		spectrumOut: "spectrum.txt",
		gnuplotPath: plot.DefaultGnuplotPath,
	}

	parser := flaggy.NewParser("freqscan")
	parser.Description = "brute-force frequency scan of a generated sine signal"

	parser.Float64(&opts.freq, "f", "freq", "oscillation frequency in Hz")
	parser.Float64(&opts.rate, "r", "rate", "sampling frequency in Hz")
	parser.Float64(&opts.duration, "d", "duration", "signal duration in seconds")
	parser.Float64(&opts.amplitude, "a", "amplitude", "signal amplitude")
	parser.Float64(&opts.noise, "n", "noise", "white noise amplitude (0 disables)")
	parser.Int64(&opts.seed, "s", "seed", "noise seed")
	parser.Float64(&opts.from, "", "from", "scan start frequency in Hz")
	parser.Float64(&opts.to, "", "to", "scan end frequency in Hz")
	parser.Float64(&opts.step, "", "step", "scan step in Hz")
	parser.String(&opts.signalOut, "", "signal-out", "signal output file")
	parser.String(&opts.spectrumOut, "", "spectrum-out", "spectrum output file")
	parser.Bool(&opts.overwrite, "w", "overwrite", "overwrite existing output files")
	parser.Bool(&opts.plot, "", "plot", "render results with gnuplot")
	parser.String(&opts.gnuplotPath, "", "gnuplot", "gnuplot binary path")

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

func scan(opts options, line *signal.Line) *signal.Line {
	an, err := sweep.New(sweep.Config{
		Source:   line,
		From:     opts.from,
		To:       opts.to,
		Step:     opts.step,
		Absolute: true,
	})
	if err != nil {
		log.WithError(err).Fatal("configuring scan")
	}

	if err := an.Execute(); err != nil {
		log.WithError(err).Fatal("scanning")
	}

	spectrum, err := an.Line()
	if err != nil {
		log.WithError(err).Fatal("scanning")
	}

	return spectrum
}

func peakOf(spectrum *signal.Line) (signal.Point, error) {
	best, err := spectrum.PointAt(0)
	if err != nil {
		return signal.Point{}, err
	}

	for i := 1; i < spectrum.Len(); i++ {
		pt, err := spectrum.PointAt(i)
		if err != nil {
			return signal.Point{}, err
		}

		if pt.Y > best.Y {
			best = pt
		}
	}

	return best, nil
}

func main() {
	opts := parseFlags()

	line := buildSignal(opts)
	spectrum := scan(opts, line)

	peak, err := peakOf(spectrum)
	if err != nil {
		log.WithError(err).Fatal("locating peak")
	}

	fmt.Printf("peak at %g Hz (correlation %.4f), generated %g Hz\n", peak.X, peak.Y, opts.freq)

	if err := sigio.WriteFile(line, opts.signalOut, opts.overwrite); err != nil {
		log.WithError(err).Fatal("writing signal file")
	}

	if err := sigio.WriteFile(spectrum, opts.spectrumOut, opts.overwrite); err != nil {
		log.WithError(err).Fatal("writing spectrum file")
	}

	if !opts.plot {
		return
	}

	viewer, err := plot.New(plot.Config{
		FilePaths:   []string{opts.spectrumOut},
		Labels:      []string{"correlation spectrum"},
		XLabel:      sweep.DefaultXLabel,
		YLabel:      sweep.DefaultYLabel,
		GnuplotPath: opts.gnuplotPath,
	})
	if err != nil {
		log.WithError(err).Fatal("configuring plot")
	}

	if err := viewer.View(); err != nil {
		log.WithError(err).Fatal("plotting")
	}
}
