// Package sigio stores signal lines as two-column text files, one
// tab-separated "x y" pair per row. The format is what gnuplot's `plot
// "file" with lines` expects.
package sigio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ilvoron/signalproc/dsp/signal"
)

// Errors returned by the reader and writer.
var (
	ErrNilLine    = errors.New("sigio: line must not be nil")
	ErrFileExists = errors.New("sigio: file exists and is not empty")
	ErrEmptyFile  = errors.New("sigio: file holds no samples")
)

// WriteFile writes line to path. An existing non-empty file is refused
// unless overwrite is set.
func WriteFile(line *signal.Line, path string, overwrite bool) error {
	if line == nil {
		return ErrNilLine
	}

	if !overwrite {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			return errors.Wrap(ErrFileExists, path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "sigio: creating %s", path)
	}

	w := bufio.NewWriter(f)

	xs, ys := line.XS(), line.YS()
	for i := range xs {
		if _, err := fmt.Fprintf(w, "%g\t%g\n", xs[i], ys[i]); err != nil {
			f.Close()

			return errors.Wrapf(err, "sigio: writing %s", path)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()

		return errors.Wrapf(err, "sigio: writing %s", path)
	}

	return errors.Wrapf(f.Close(), "sigio: closing %s", path)
}

// ReadFile reads a two-column file back into a line. Blank rows are
// skipped; the returned line carries no sampling metadata, only points.
func ReadFile(path string) (*signal.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "sigio: opening %s", path)
	}
	defer f.Close()

	var xs, ys []float64

	scanner := bufio.NewScanner(f)
	for row := 1; scanner.Scan(); row++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, errors.Errorf("sigio: %s row %d: want 2 columns, got %d", path, row, len(fields))
		}

		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "sigio: %s row %d", path, row)
		}

		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "sigio: %s row %d", path, row)
		}

		xs = append(xs, x)
		ys = append(ys, y)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "sigio: reading %s", path)
	}

	if len(xs) == 0 {
		return nil, errors.Wrap(ErrEmptyFile, path)
	}

	line, err := signal.NewWithCount(len(xs))
	if err != nil {
		return nil, err
	}

	for i := range xs {
		if err := line.SetPoint(i, xs[i], ys[i]); err != nil {
			return nil, err
		}
	}

	return line, nil
}
