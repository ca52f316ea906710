// SPDX-License-Identifier: MIT

// Package dpp - Kernel storage (row-major) & construction from gonum matrices.
//
// Purpose:
//   - Hold a square projection kernel in a flat row-major buffer (offset = i*n + j).
//   - Copy caller data at construction so samplers never alias caller memory.
//   - Record the two structural facts the dispatcher needs: Hermitian-ness and rank.
//
// Complexity quicksheet:
//   - NewKernel / NewComplexKernel / NewKernelFromData: O(N²) copy + O(N²) Hermitian scan.
//   - At: O(1); Clone: O(N²).

package dpp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// hermitianAtol and hermitianRtol mirror numpy.allclose defaults.
	hermitianAtol = 1e-8
	hermitianRtol = 1e-5
)

// Kernel is an N×N matrix over a Field stored row-major.
//   - n holds the dimension (ground set size).
//   - data is a flat buffer of length n*n, data[i*n+j] = K[i,j].
//   - hermitian is computed once at construction.
//
// A Kernel is immutable after construction and safe for concurrent readers;
// samplers that mutate (Chol) work on a private copy.
type Kernel[T Field] struct {
	n         int
	data      []T
	hermitian bool
}

// NewKernel copies a real gonum matrix into a Kernel[float64].
//
// Errors: ErrNilKernel, ErrEmptyKernel, ErrNonSquare, ErrNaNInf.
// Complexity: O(N²).
func NewKernel(m mat.Matrix) (*Kernel[float64], error) {
	if m == nil {
		return nil, dppErrorf("NewKernel", ErrNilKernel)
	}
	r, c := m.Dims()
	if r != c {
		return nil, dppErrorf("NewKernel", ErrNonSquare)
	}
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}

	return newKernel("NewKernel", r, data)
}

// NewComplexKernel copies a complex gonum matrix into a Kernel[complex128].
//
// Errors: ErrNilKernel, ErrEmptyKernel, ErrNonSquare, ErrNaNInf.
// Complexity: O(N²).
func NewComplexKernel(m mat.CMatrix) (*Kernel[complex128], error) {
	if m == nil {
		return nil, dppErrorf("NewComplexKernel", ErrNilKernel)
	}
	r, c := m.Dims()
	if r != c {
		return nil, dppErrorf("NewComplexKernel", ErrNonSquare)
	}
	data := make([]complex128, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}

	return newKernel("NewComplexKernel", r, data)
}

// NewKernelFromData builds an n×n kernel from a row-major slice of length n*n.
// The slice is copied.
//
// Errors: ErrEmptyKernel, ErrNonSquare (len(data) != n*n), ErrNaNInf.
// Complexity: O(N²).
func NewKernelFromData[T Field](n int, data []T) (*Kernel[T], error) {
	if n < 0 || len(data) != n*n {
		return nil, dppErrorf("NewKernelFromData", ErrNonSquare)
	}

	return newKernel("NewKernelFromData", n, append([]T(nil), data...))
}

// newKernel takes ownership of data, validates it and computes the Hermitian flag.
func newKernel[T Field](tag string, n int, data []T) (*Kernel[T], error) {
	if n == 0 {
		return nil, dppErrorf(tag, ErrEmptyKernel)
	}
	for _, v := range data {
		if !isFinite(v) {
			return nil, dppErrorf(tag, ErrNaNInf)
		}
	}
	k := &Kernel[T]{n: n, data: data}
	k.hermitian = k.isHermitian(allIndices(n))

	return k, nil
}

// N returns the ground set size.
func (k *Kernel[T]) N() int { return k.n }

// At returns K[i,j]. Indices are not bounds-checked beyond the slice access.
func (k *Kernel[T]) At(i, j int) T { return k.data[i*k.n+j] }

// Hermitian reports whether K equals its conjugate transpose within
// allclose tolerances (atol 1e-8, rtol 1e-5).
func (k *Kernel[T]) Hermitian() bool { return k.hermitian }

// Trace returns the real part of trace(K).
func (k *Kernel[T]) Trace() float64 {
	var s float64
	for i := 0; i < k.n; i++ {
		s += re(k.data[i*k.n+i])
	}
	return s
}

// Rank returns round(trace(K)), which equals rank(K) for a projection.
// Negative traces clamp to 0.
func (k *Kernel[T]) Rank() int {
	r := int(math.Round(k.Trace()))
	if r < 0 {
		return 0
	}
	return r
}

// Diag returns a fresh slice holding the real parts of the diagonal.
func (k *Kernel[T]) Diag() []float64 {
	d := make([]float64, k.n)
	for i := range d {
		d[i] = re(k.data[i*k.n+i])
	}
	return d
}

// Clone returns a deep copy.
func (k *Kernel[T]) Clone() *Kernel[T] {
	return &Kernel[T]{
		n:         k.n,
		data:      append([]T(nil), k.data...),
		hermitian: k.hermitian,
	}
}

// isHermitian checks K[i,j] == conj(K[j,i]) on the principal block idx×idx.
func (k *Kernel[T]) isHermitian(idx []int) bool {
	for a, i := range idx {
		for _, j := range idx[a:] {
			if !closeTo(k.At(i, j), conj(k.At(j, i)), hermitianAtol, hermitianRtol) {
				return false
			}
		}
	}
	return true
}

// symmetrize replaces a real n×n buffer by (A + Aᵀ)/2 in place.
// Used after floating-point products that are symmetric in exact arithmetic.
func symmetrize(n int, a []float64) {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 0.5 * (a[i*n+j] + a[j*n+i])
			a[i*n+j], a[j*n+i] = v, v
		}
	}
}

// allIndices returns [0, 1, ..., n-1].
func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
