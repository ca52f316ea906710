// SPDX-License-Identifier: MIT

// Package dpp - ProjectionDPP: a kernel source + representation, materialized once.
//
// Purpose:
//   - Own how the projection kernel is obtained: given explicitly, from an
//     eigendecomposition with 0/1 spectrum, or from a full-row-rank feature matrix.
//   - Materialize the N×N kernel lazily, exactly once, even under concurrent Sample calls.
//   - Surface the two flags the dispatcher needs: KernelType and Hermitian-ness.
//
// Complexity quicksheet:
//   - FromEigen: O(N·r) validation; first Kernel(): O(N²·r) via SymOuterK.
//   - FromFeatures: O(1); first Kernel(): O(r²·N + r³ + r·N²) via Cholesky.

package dpp

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// eigenTol is the distance to {0, 1} accepted for eigenvalues of a projection.
const eigenTol = 1e-8

// ProjectionDPP is a projection DPP (or k-DPP for Likelihood kernels) whose
// kernel is built on first use.
type ProjectionDPP[T Field] struct {
	kind  KernelType
	build func() (*Kernel[T], error)

	once   sync.Once
	kernel *Kernel[T]
	err    error
}

// NewProjectionDPP wraps an explicit kernel.
//
// Errors: ErrNilKernel.
func NewProjectionDPP[T Field](kind KernelType, k *Kernel[T]) (*ProjectionDPP[T], error) {
	if k == nil {
		return nil, dppErrorf("NewProjectionDPP", ErrNilKernel)
	}
	return &ProjectionDPP[T]{
		kind:  kind,
		build: func() (*Kernel[T], error) { return k, nil },
	}, nil
}

// FromEigen defines the DPP through an eigendecomposition K = V·diag(values)·Vᵀ
// of a symmetric projection. Every eigenvalue must be 0 or 1 within 1e-8; the
// kernel is U·Uᵀ with U the eigenvectors of unit eigenvalue.
//
// Errors: ErrNilKernel, ErrNonSquare (len(values) != columns of vectors),
// ErrNotProjection (eigenvalue outside {0,1}), ErrNaNInf.
func FromEigen(kind KernelType, values []float64, vectors *mat.Dense) (*ProjectionDPP[float64], error) {
	if vectors == nil {
		return nil, dppErrorf("FromEigen", ErrNilKernel)
	}
	n, c := vectors.Dims()
	if c != len(values) {
		return nil, dppErrorf("FromEigen", ErrNonSquare)
	}
	keep := make([]int, 0, c)
	for i, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return nil, dppErrorf("FromEigen", ErrNaNInf)
		case math.Abs(v-1) <= eigenTol:
			keep = append(keep, i)
		case math.Abs(v) <= eigenTol:
		default:
			return nil, dppErrorf("FromEigen", ErrNotProjection)
		}
	}

	build := func() (*Kernel[float64], error) {
		if len(keep) == 0 {
			return newKernel("FromEigen", n, make([]float64, n*n))
		}
		u := mat.NewDense(n, len(keep), nil)
		col := make([]float64, n)
		for k, i := range keep {
			u.SetCol(k, mat.Col(col, i, vectors))
		}
		var s mat.SymDense
		s.SymOuterK(1, u) // U·Uᵀ, exactly symmetric storage

		return newKernel("FromEigen", n, denseOfSym(&s))
	}

	return &ProjectionDPP[float64]{kind: kind, build: build}, nil
}

// FromFeatures defines the DPP as the orthogonal projection onto the row
// space of a (r×N, r ≤ N, full row rank) feature matrix A:
//
//	K = Aᵀ·(A·Aᵀ)⁻¹·A
//
// The reduced incidence matrix of a connected graph yields the
// transfer-current kernel of its uniform spanning tree this way.
//
// Errors: ErrNilKernel, ErrNotFullRank (r > N, or A·Aᵀ not positive definite).
// ErrNotFullRank from the factorization surfaces on first Kernel()/Sample().
func FromFeatures(kind KernelType, a *mat.Dense) (*ProjectionDPP[float64], error) {
	if a == nil {
		return nil, dppErrorf("FromFeatures", ErrNilKernel)
	}
	r, n := a.Dims()
	if r > n {
		return nil, dppErrorf("FromFeatures", ErrNotFullRank)
	}

	build := func() (*Kernel[float64], error) {
		var g mat.SymDense
		g.SymOuterK(1, a) // A·Aᵀ

		var chol mat.Cholesky
		if ok := chol.Factorize(&g); !ok {
			return nil, dppErrorf("FromFeatures", ErrNotFullRank)
		}
		var x mat.Dense
		if err := chol.SolveTo(&x, a); err != nil { // (A·Aᵀ)⁻¹·A
			return nil, dppErrorf("FromFeatures", ErrNotFullRank)
		}
		var k mat.Dense
		k.Mul(a.T(), &x)

		data := make([]float64, n*n)
		for i := 0; i < n; i++ {
			mat.Row(data[i*n:(i+1)*n], i, &k)
		}
		symmetrize(n, data)

		return newKernel("FromFeatures", n, data)
	}

	return &ProjectionDPP[float64]{kind: kind, build: build}, nil
}

// Type returns the kernel representation.
func (p *ProjectionDPP[T]) Type() KernelType { return p.kind }

// Kernel materializes (once) and returns the kernel.
func (p *ProjectionDPP[T]) Kernel() (*Kernel[T], error) {
	p.once.Do(func() {
		p.kernel, p.err = p.build()
	})
	return p.kernel, p.err
}

// Hermitian reports whether the materialized kernel is Hermitian.
// It materializes the kernel if needed and returns false on build failure.
func (p *ProjectionDPP[T]) Hermitian() bool {
	k, err := p.Kernel()
	return err == nil && k.Hermitian()
}

// Sample draws one exact sample. See the package-level Sample for the
// dispatch rules and errors.
func (p *ProjectionDPP[T]) Sample(opts ...Option) ([]int, error) {
	k, err := p.Kernel()
	if err != nil {
		return nil, err
	}
	return Sample(k, p.kind, opts...)
}

// denseOfSym expands a gonum SymDense into a full row-major buffer.
func denseOfSym(s *mat.SymDense) []float64 {
	n := s.SymmetricDim()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := s.At(i, j)
			data[i*n+j], data[j*n+i] = v, v
		}
	}
	return data
}
