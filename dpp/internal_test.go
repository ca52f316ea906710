package dpp

import (
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomHermitian returns a dense n×n complex Hermitian matrix with real diagonal.
func randomHermitian(n int, rng *rand.Rand) []complex128 {
	a := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		a[i*n+i] = complex(rng.Float64(), 0)
		for j := 0; j < i; j++ {
			v := complex(rng.NormFloat64(), rng.NormFloat64())
			a[i*n+j] = v
			a[j*n+i] = complex(real(v), -imag(v))
		}
	}
	return a
}

// permuted returns P·A·Pᴴ where P exchanges indices j and t.
func permuted(a []complex128, n, j, t int) []complex128 {
	p := allIndices(n)
	p[j], p[t] = p[t], p[j]
	out := make([]complex128, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			out[r*n+c] = a[p[r]*n+p[c]]
		}
	}
	return out
}

// TestHermitianSwap_MatchesPermutation: on a full Hermitian matrix the swap
// must leave the lower triangle equal to that of the permuted matrix, for
// every pair j <= t (including adjacent and boundary indices).
func TestHermitianSwap_MatchesPermutation(t *testing.T) {
	const n = 7
	rng := rand.New(rand.NewPCG(1, 2))
	buf := make([]complex128, n)
	for j := 0; j < n; j++ {
		for tt := j; tt < n; tt++ {
			a := randomHermitian(n, rng)
			want := permuted(a, n, j, tt)
			hermitianSwap(a, n, j, tt, buf)
			for r := 0; r < n; r++ {
				for c := 0; c <= r; c++ {
					assert.Equal(t, want[r*n+c], a[r*n+c], "j=%d t=%d at (%d,%d)", j, tt, r, c)
				}
			}
		}
	}
}

// TestHermitianSwap_RealAndOrderInsensitive: float64 works and (t, j) equals (j, t).
func TestHermitianSwap_RealAndOrderInsensitive(t *testing.T) {
	const n = 4
	a := []float64{
		1, 2, 3, 4,
		2, 5, 6, 7,
		3, 6, 8, 9,
		4, 7, 9, 10,
	}
	b := append([]float64(nil), a...)
	buf := make([]float64, n)
	hermitianSwap(a, n, 1, 3, buf)
	hermitianSwap(b, n, 3, 1, buf)
	assert.Equal(t, a, b)
	assert.Equal(t, 10.0, a[1*n+1])
	assert.Equal(t, 5.0, a[3*n+3])
	assert.Equal(t, 9.0, a[2*n+1]) // old K[2,3]
	assert.Equal(t, 7.0, a[3*n+1]) // old K[3,1], corner
}

// TestChooser_Policy covers |w|, NaN rejection, exhaustion and reweighting.
func TestChooser_Policy(t *testing.T) {
	src := rand.NewPCG(3, 4)

	_, err := newChooser([]float64{1, math.NaN()}, src)
	assert.ErrorIs(t, err, ErrNaNInf)

	c, err := newChooser([]float64{math.Copysign(0, -1), -1e-3, 0}, src)
	require.NoError(t, err)
	assert.Greater(t, c.mass(), 0.0)
	i, err := c.take(1)
	require.NoError(t, err)
	assert.Equal(t, 1, i) // small negative residual counts by magnitude
	_, err = c.take(1)
	assert.True(t, errors.Is(err, ErrDegenerateResidual))

	c, err = newChooser([]float64{1, 1, 1}, src)
	require.NoError(t, err)
	require.NoError(t, c.reweight(0, 0))
	require.NoError(t, c.reweight(2, 0))
	i, err = c.take(1)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.ErrorIs(t, c.reweight(0, math.Inf(1)), ErrNaNInf)
}

// TestChooser_RunningMass tracks reweight and take without rescanning.
func TestChooser_RunningMass(t *testing.T) {
	c, err := newChooser([]float64{0.5, 1.5, -1}, rand.NewPCG(9, 9))
	require.NoError(t, err)
	assert.InDelta(t, 3.0, c.mass(), 1e-12)

	require.NoError(t, c.reweight(1, 0.25))
	assert.InDelta(t, 1.75, c.mass(), 1e-12)

	i, err := c.take(3)
	require.NoError(t, err)
	sum := 0.0
	for _, v := range c.w {
		sum += v
	}
	assert.Zero(t, c.w[i])
	assert.InDelta(t, sum, c.mass(), 1e-12)
}

// TestChooser_NoiseIsDegenerate: rounding-level mass is refused relative to
// the mass a projection should still carry.
func TestChooser_NoiseIsDegenerate(t *testing.T) {
	c, err := newChooser([]float64{1.1e-16, 0, 2e-16}, rand.NewPCG(1, 1))
	require.NoError(t, err)
	_, err = c.take(1)
	assert.ErrorIs(t, err, ErrDegenerateResidual)

	c, err = newChooser([]float64{1e-4, 0}, rand.NewPCG(1, 1))
	require.NoError(t, err)
	i, err := c.take(1)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
}

// TestChooser_Frequencies checks w/Σw on a small candidate set.
func TestChooser_Frequencies(t *testing.T) {
	src := rand.NewPCG(5, 6)
	w := []float64{0.5, 1.5, 0, 2}
	counts := make([]float64, len(w))
	const draws = 20000
	for r := 0; r < draws; r++ {
		c, err := newChooser(w, src)
		require.NoError(t, err)
		i, err := c.take(4)
		require.NoError(t, err)
		counts[i]++
	}
	assert.InDelta(t, 0.125, counts[0]/draws, 0.02)
	assert.InDelta(t, 0.375, counts[1]/draws, 0.02)
	assert.Zero(t, counts[2])
	assert.InDelta(t, 0.5, counts[3]/draws, 0.02)
}

// TestResolveSize covers the default and bounds.
func TestResolveSize(t *testing.T) {
	k, err := NewKernelFromData(2, []float64{1, 0, 0, 1})
	require.NoError(t, err)

	rank, size, err := resolveSize(k, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 2, size)

	_, _, err = resolveSize(k, 3)
	assert.ErrorIs(t, err, ErrSizeExceedsRank)
	_, _, err = resolveSize(k, -1)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

// TestDeriveSeed_Decorrelates checks different streams give different seeds
// and the zero-seed policy.
func TestDeriveSeed_Decorrelates(t *testing.T) {
	seen := map[uint64]bool{}
	for s := uint64(0); s < 1000; s++ {
		v := deriveSeed(42, s)
		assert.False(t, seen[v])
		seen[v] = true
	}
	a := sourceFromSeed(0).Uint64()
	b := sourceFromSeed(defaultRNGSeed).Uint64()
	assert.Equal(t, a, b)
}

// TestOptions_Workers maps non-positive limits to GOMAXPROCS.
func TestOptions_Workers(t *testing.T) {
	for _, n := range []int{0, -3} {
		o := buildOptions([]Option{WithWorkers(n)})
		assert.Equal(t, runtime.GOMAXPROCS(0), o.workers())
	}
	o := buildOptions([]Option{WithWorkers(3)})
	assert.Equal(t, 3, o.workers())
}
