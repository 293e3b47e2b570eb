package stats

import (
	"math"
	"testing"

	"github.com/ilvoron/signalproc/dsp/generate"
	"github.com/ilvoron/signalproc/dsp/signal"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func lineOf(t *testing.T, ys ...float64) *signal.Line {
	t.Helper()

	line, err := signal.NewWithCount(len(ys))
	if err != nil {
		t.Fatalf("NewWithCount: %v", err)
	}

	for i, y := range ys {
		if err := line.SetPoint(i, float64(i), y); err != nil {
			t.Fatalf("SetPoint(%d): %v", i, err)
		}
	}

	return line
}

func sineLine(t *testing.T, cfg generate.Config) *signal.Line {
	t.Helper()

	gen, err := generate.New(cfg)
	if err != nil {
		t.Fatalf("generate.New: %v", err)
	}

	if err := gen.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	line, err := gen.Line()
	if err != nil {
		t.Fatalf("Line: %v", err)
	}

	return line
}

func TestDescribeSine(t *testing.T) {
	const amplitude = 3.0

	line := sineLine(t, generate.Config{
		SamplingFreq: 1000, Duration: 1, OscillationFreq: 10, Amplitude: amplitude,
	})

	s, err := Describe(line)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if s.Length != line.Len() {
		t.Errorf("Length = %d, want %d", s.Length, line.Len())
	}

	if !almostEqual(s.DC, 0, 1e-10) {
		t.Errorf("DC = %g, want ~0", s.DC)
	}

	if !almostEqual(s.RMS, amplitude/math.Sqrt2, 1e-2) {
		t.Errorf("RMS = %g, want ~%g", s.RMS, amplitude/math.Sqrt2)
	}

	if !almostEqual(s.Peak, amplitude, 1e-3) {
		t.Errorf("Peak = %g, want ~%g", s.Peak, amplitude)
	}

	if !almostEqual(s.Max, amplitude, 1e-3) || !almostEqual(s.Min, -amplitude, 1e-3) {
		t.Errorf("Max/Min = %g/%g, want ~±%g", s.Max, s.Min, amplitude)
	}

	if !almostEqual(s.CrestFactor, math.Sqrt2, 1e-2) {
		t.Errorf("CrestFactor = %g, want ~sqrt(2)", s.CrestFactor)
	}

	if !almostEqual(s.Skewness, 0, 0.01) {
		t.Errorf("Skewness = %g, want ~0", s.Skewness)
	}

	// A pure sine has excess kurtosis -1.5.
	if !almostEqual(s.Kurtosis, -1.5, 0.01) {
		t.Errorf("Kurtosis = %g, want ~-1.5", s.Kurtosis)
	}
}

func TestDescribeRamp(t *testing.T) {
	line := lineOf(t, -1.5, -0.5, 0.5, 1.5)

	s, err := Describe(line)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if s.Max != 1.5 || s.MaxPos != 3 {
		t.Errorf("Max/MaxPos = %g/%d, want 1.5/3", s.Max, s.MaxPos)
	}

	if s.Min != -1.5 || s.MinPos != 0 {
		t.Errorf("Min/MinPos = %g/%d, want -1.5/0", s.Min, s.MinPos)
	}

	if s.Range != 3 {
		t.Errorf("Range = %g, want 3", s.Range)
	}

	if s.ZeroCrossings != 1 {
		t.Errorf("ZeroCrossings = %d, want 1", s.ZeroCrossings)
	}

	wantEnergy := 1.5*1.5 + 0.5*0.5 + 0.5*0.5 + 1.5*1.5
	if !almostEqual(s.Energy, wantEnergy, 1e-12) {
		t.Errorf("Energy = %g, want %g", s.Energy, wantEnergy)
	}

	if !almostEqual(s.Power, wantEnergy/4, 1e-12) {
		t.Errorf("Power = %g, want %g", s.Power, wantEnergy/4)
	}
}

func TestDescribeConstant(t *testing.T) {
	line := lineOf(t, 2.5, 2.5, 2.5, 2.5)

	s, err := Describe(line)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if !almostEqual(s.DC, 2.5, 1e-12) {
		t.Errorf("DC = %g, want 2.5", s.DC)
	}

	if !almostEqual(s.RMS, 2.5, 1e-12) {
		t.Errorf("RMS = %g, want 2.5", s.RMS)
	}

	if !almostEqual(s.CrestFactor, 1, 1e-12) {
		t.Errorf("CrestFactor = %g, want 1", s.CrestFactor)
	}

	if s.Variance != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Errorf("moments = %g/%g/%g, want zeros", s.Variance, s.Skewness, s.Kurtosis)
	}

	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings = %d, want 0", s.ZeroCrossings)
	}
}

func TestDescribeZeroLine(t *testing.T) {
	line := lineOf(t, 0, 0, 0, 0)

	s, err := Describe(line)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if !math.IsInf(s.DC_dB, -1) || !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Errorf("dB fields = %g/%g/%g, want -Inf", s.DC_dB, s.RMS_dB, s.Peak_dB)
	}

	if s.CrestFactor != 0 || !math.IsInf(s.CrestFactor_dB, -1) {
		t.Errorf("crest = %g (%g dB), want 0 (-Inf dB)", s.CrestFactor, s.CrestFactor_dB)
	}
}

func TestDescribeNil(t *testing.T) {
	if _, err := Describe(nil); err != ErrNilLine {
		t.Errorf("Describe(nil) err = %v, want ErrNilLine", err)
	}
}

func TestHelpersOnNilLine(t *testing.T) {
	if RMS(nil) != 0 || DC(nil) != 0 || Peak(nil) != 0 || CrestFactor(nil) != 0 || ZeroCrossings(nil) != 0 {
		t.Error("helpers on nil line should return 0")
	}
}

func TestRMSHelperMatchesDescribe(t *testing.T) {
	line := sineLine(t, generate.Config{
		SamplingFreq: 500, Duration: 1, OscillationFreq: 7, Amplitude: 1.25,
	})

	s, err := Describe(line)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}

	if !almostEqual(RMS(line), s.RMS, 1e-12) {
		t.Errorf("RMS helper = %g, Describe = %g", RMS(line), s.RMS)
	}

	if !almostEqual(Peak(line), s.Peak, 1e-12) {
		t.Errorf("Peak helper = %g, Describe = %g", Peak(line), s.Peak)
	}
}
