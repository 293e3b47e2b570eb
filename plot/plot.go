// Package plot renders signal data files with gnuplot. It shells out to the
// gnuplot binary; the data files are the two-column text files the sigio
// package writes.
package plot

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// DefaultGnuplotPath is used when Config.GnuplotPath is empty. It relies on
// gnuplot being reachable through PATH.
const DefaultGnuplotPath = "gnuplot"

// Errors returned by the viewer.
var (
	ErrNoFiles       = errors.New("plot: no data files given")
	ErrLabelMismatch = errors.New("plot: label count does not match file count")
)

// Config describes a plot of one or more data files on shared axes.
type Config struct {
	// FilePaths are the data files, one plotted curve each.
	FilePaths []string

	// Labels are the per-curve titles. Empty means the file paths are used.
	Labels []string

	XLabel string
	YLabel string

	// GnuplotPath overrides the gnuplot binary location.
	GnuplotPath string
}

// Validate checks the file list and the label pairing.
func (cfg *Config) Validate() error {
	if len(cfg.FilePaths) == 0 {
		return ErrNoFiles
	}

	if len(cfg.Labels) != 0 && len(cfg.Labels) != len(cfg.FilePaths) {
		return ErrLabelMismatch
	}

	return nil
}

// Viewer launches gnuplot over a set of data files.
type Viewer struct {
	cfg Config
}

// New creates a Viewer for cfg.
func New(cfg Config) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.GnuplotPath == "" {
		cfg.GnuplotPath = DefaultGnuplotPath
	}

	return &Viewer{cfg: cfg}, nil
}

// quote wraps s in double quotes for a gnuplot script, escaping embedded
// quotes and backslashes.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"` + s + `"`
}

// Script returns the gnuplot script the viewer executes.
func (v *Viewer) Script() string {
	var b strings.Builder

	if v.cfg.XLabel != "" {
		fmt.Fprintf(&b, "set xlabel %s; ", quote(v.cfg.XLabel))
	}

	if v.cfg.YLabel != "" {
		fmt.Fprintf(&b, "set ylabel %s; ", quote(v.cfg.YLabel))
	}

	b.WriteString("plot ")

	for i, path := range v.cfg.FilePaths {
		if i > 0 {
			b.WriteString(", ")
		}

		label := path
		if len(v.cfg.Labels) != 0 {
			label = v.cfg.Labels[i]
		}

		fmt.Fprintf(&b, "%s with lines title %s", quote(path), quote(label))
	}

	return b.String()
}

// Command returns the exec.Cmd the viewer would run, without starting it.
func (v *Viewer) Command() *exec.Cmd {
	return exec.Command(v.cfg.GnuplotPath, "-persist", "-e", v.Script())
}

// View checks that every data file exists and launches gnuplot. The -persist
// flag keeps the plot window open after gnuplot exits.
func (v *Viewer) View() error {
	for _, path := range v.cfg.FilePaths {
		if _, err := os.Stat(path); err != nil {
			return errors.Wrap(err, "plot: data file")
		}
	}

	cmd := v.Command()
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "plot: running %s", v.cfg.GnuplotPath)
	}

	return nil
}
