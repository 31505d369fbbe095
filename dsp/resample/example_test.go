package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-pvoc/dsp/resample"
)

func ExampleLinear() {
	in := []float64{0, 1, 2, 3}
	fmt.Println(resample.Linear(in, 7))
	fmt.Println(resample.Linear(in, 2))

	// Output:
	// [0 0.5 1 1.5 2 2.5 3]
	// [0 3]
}
