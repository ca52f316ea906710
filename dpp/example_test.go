package dpp_test

import (
	"context"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdpp/dpp"
)

// ExampleSample draws from the identity kernel on three items: a projection
// of rank 3 always returns the whole ground set, whatever the sampler.
func ExampleSample() {
	k, err := dpp.NewKernel(mat.NewDiagDense(3, []float64{1, 1, 1}))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, mode := range []dpp.Mode{dpp.ModeGS, dpp.ModeChol, dpp.ModeSchur} {
		s, err := dpp.Sample(k, dpp.Correlation, dpp.WithMode(mode), dpp.WithSeed(1))
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		slices.Sort(s)
		fmt.Println(mode, s)
	}
	// Output:
	// GS [0 1 2]
	// Chol [0 1 2]
	// Schur [0 1 2]
}

// ExampleFromFeatures samples spanning trees of a triangle: the transfer
// current kernel built from the reduced incidence matrix has rank 2, so each
// draw keeps two of the three edges.
func ExampleFromFeatures() {
	b := mat.NewDense(2, 3, []float64{
		// edges: (0,1) (1,2) (2,0)
		-1, 1, 0, // vertex 1
		0, -1, 1, // vertex 2
	})
	p, err := dpp.FromFeatures(dpp.Correlation, b)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	trees, err := p.SampleMany(context.Background(), 5, dpp.WithSeed(3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, tree := range trees {
		fmt.Println(len(tree))
	}
	// Output:
	// 2
	// 2
	// 2
	// 2
	// 2
}

// ExampleResolveMode shows the dispatcher falling back to Schur for a
// non-Hermitian kernel.
func ExampleResolveMode() {
	fmt.Println(dpp.ResolveMode(true, "unknown"))
	fmt.Println(dpp.ResolveMode(false, dpp.ModeChol))
	// Output:
	// GS
	// Schur
}
