package integrate_test

import (
	"fmt"

	"github.com/ilvoron/signalproc/dsp/integrate"
	"github.com/ilvoron/signalproc/dsp/signal"
)

func ExampleIntegrator() {
	// y = x over [0, 1].
	line, err := signal.New(10, 1)
	if err != nil {
		panic(err)
	}

	for i := 0; i < line.Len(); i++ {
		x := float64(i) / 10
		if err := line.SetPoint(i, x, x); err != nil {
			panic(err)
		}
	}

	in, err := integrate.New(integrate.Config{Source: line, Method: integrate.Trapezoidal})
	if err != nil {
		panic(err)
	}

	if err := in.Execute(); err != nil {
		panic(err)
	}

	v, _ := in.Integral()
	fmt.Printf("integral = %.2f\n", v)

	// Output:
	// integral = 0.50
}
