package dpp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdpp/dpp"
)

const (
	seedDet    = 20240611 // fixed seed for determinism checks
	drawsMC    = 20000    // Monte-Carlo repetitions for marginal checks
	tolMC      = 0.02     // ≈6σ for p(1-p)/drawsMC at p=0.5
	tolNumeric = 1e-9
)

// addOuter adds u·uᴴ into k (n×n row-major).
func addOuter(k []complex128, u []complex128) {
	n := len(u)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k[i*n+j] += u[i] * complex(real(u[j]), -imag(u[j]))
		}
	}
}

// realKernel4 is the rank-2 orthogonal projection onto span{u1, u2} with
// u1 = (1,1,1,1)/2, u2 = (1,-1,0,0)/√2; diag = (.75, .75, .25, .25).
func realKernel4(t *testing.T) *dpp.Kernel[float64] {
	t.Helper()
	u := mat.NewDense(4, 2, []float64{
		0.5, 1 / math.Sqrt2,
		0.5, -1 / math.Sqrt2,
		0.5, 0,
		0.5, 0,
	})
	var k mat.Dense
	k.Mul(u, u.T())
	kern, err := dpp.NewKernel(&k)
	require.NoError(t, err)
	require.True(t, kern.Hermitian())
	return kern
}

// complexKernel4 is the rank-2 Hermitian projection onto span{u1, u2} with
// u1 = (1, i, 1, 0)/√3, u2 = (1, 0, -1, 1)/√3; diag = (2/3, 1/3, 2/3, 1/3).
func complexKernel4(t *testing.T) *dpp.Kernel[complex128] {
	t.Helper()
	s := complex(1/math.Sqrt(3), 0)
	u1 := []complex128{s, 1i * s, s, 0}
	u2 := []complex128{s, 0, -s, s}
	data := make([]complex128, 16)
	addOuter(data, u1)
	addOuter(data, u2)
	kern, err := dpp.NewComplexKernel(mat.NewCDense(4, 4, data))
	require.NoError(t, err)
	require.True(t, kern.Hermitian())
	return kern
}

// obliqueKernel3 is the non-Hermitian rank-2 projection I − a·bᵀ with
// a = (1,2,1), b = (.5,.1,.3), bᵀa = 1. Pair probabilities:
// P{0,1} = .3, P{0,2} = .2, P{1,2} = .5.
func obliqueKernel3(t *testing.T) *dpp.Kernel[float64] {
	t.Helper()
	a := []float64{1, 2, 1}
	b := []float64{0.5, 0.1, 0.3}
	data := make([]float64, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			data[i*3+j] = -a[i] * b[j]
			if i == j {
				data[i*3+j]++
			}
		}
	}
	kern, err := dpp.NewKernelFromData(3, data)
	require.NoError(t, err)
	require.False(t, kern.Hermitian())
	return kern
}

// e0Kernel is the rank-1 projection onto (1,0,0).
func e0Kernel(t *testing.T) *dpp.Kernel[float64] {
	t.Helper()
	kern, err := dpp.NewKernelFromData(3, []float64{
		1, 0, 0,
		0, 0, 0,
		0, 0, 0,
	})
	require.NoError(t, err)
	return kern
}

// identityKernel is I₃.
func identityKernel(t *testing.T) *dpp.Kernel[float64] {
	t.Helper()
	kern, err := dpp.NewKernelFromData(3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	require.NoError(t, err)
	return kern
}

// requireDistinct checks that s holds pairwise-distinct indices in [0, n).
func requireDistinct(t *testing.T, s []int, n int) {
	t.Helper()
	seen := make(map[int]bool, len(s))
	for _, i := range s {
		require.GreaterOrEqual(t, i, 0)
		require.Less(t, i, n)
		require.False(t, seen[i], "duplicate index %d in %v", i, s)
		seen[i] = true
	}
}

// hermitianModes are the modes valid for Hermitian kernels.
var hermitianModes = []dpp.Mode{dpp.ModeGS, dpp.ModeChol, dpp.ModeSchur}
