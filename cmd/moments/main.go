package main

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/selunet/selunet/internal/activations"
	"github.com/selunet/selunet/internal/layer"
	"github.com/selunet/selunet/internal/tensor"
)

// Demonstrates the moment-preserving property of alpha-dropout: a batch
// of standard-normal pre-activations is pushed through SELU and then
// through alpha-dropout at several ratios, and the empirical mean and
// variance stay where SELU put them.
func main() {
	const n = 100000

	fmt.Println("=== Alpha-Dropout Moment Preservation ===")

	rng := rand.New(rand.NewSource(1))
	selu := activations.SELU{}

	x := tensor.NewDense[float64](n)
	for i := 0; i < n; i++ {
		x.Set(i, selu.Activate(rng.NormFloat64()))
	}
	mean, variance := stat.MeanVariance(x.Data(), nil)
	fmt.Printf("post-SELU input:      mean %+.4f  variance %.4f\n", mean, variance)

	for _, ratio := range []float64{0.1, 0.3, 0.5} {
		d, err := layer.NewAlphaDropout[float64](ratio, layer.DefaultAlphaDash)
		if err != nil {
			panic(err)
		}
		d.SetSource(rng)

		out := d.Forward(x).(*tensor.Dense[float64])
		mean, variance = stat.MeanVariance(out.Data(), nil)
		fmt.Printf("alpha-dropout p=%.1f:  mean %+.4f  variance %.4f  (a=%.4f b=%.4f)\n",
			ratio, mean, variance, d.A(), d.B())
	}

	// Inference mode is a pass-through regardless of ratio.
	d, err := layer.NewAlphaDropout[float64](0.5, layer.DefaultAlphaDash)
	if err != nil {
		panic(err)
	}
	d.SetDeterministic(true)
	out := d.Forward(x).(*tensor.Dense[float64])
	mean, variance = stat.MeanVariance(out.Data(), nil)
	fmt.Printf("inference mode:       mean %+.4f  variance %.4f (identity)\n", mean, variance)
}
