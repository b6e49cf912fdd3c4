package wilsonburg_test

import (
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
	"github.com/cwbudde/algo-helix/dsp/filter/wilsonburg"
)

func ExampleFactor1() {
	lags, _ := causal.NewLagSet1([]int{0, 1, 2, 3})
	r := []float64{24, 242, 867, 1334, 867, 242, 24}

	res, err := wilsonburg.Factor1(lags, r, 50, 1e-10)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("converged: %v\n", res.Converged)
	for _, a := range res.Coefficients {
		fmt.Printf("%.4f\n", a)
	}

	// Output:
	// converged: true
	// 24.0000
	// 26.0000
	// 9.0000
	// 1.0000
}
