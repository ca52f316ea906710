// SPDX-License-Identifier: MIT
// Package: dpp
//
// Purpose:
//   - Cheap structural checks a caller runs before sampling: the samplers
//     themselves trust their input and never re-verify K² = K.
//   - Checks run on a principal block (default: the first min(10, N) indices),
//     so they cost O(m²) and O(m²N) instead of O(N²) and O(N³).
//
// AI-Hints:
//   - Pass an explicit index set to audit a specific region of a large kernel.
//   - Tolerances follow numpy.allclose (atol 1e-8, rtol 1e-5).

package dpp

// defaultCheckSpan bounds the principal block inspected when idx is nil.
const defaultCheckSpan = 10

// checkIndices resolves the index set used by the validators.
// Every explicit index must lie in [0, n).
func checkIndices(n int, idx []int) ([]int, error) {
	if idx != nil {
		for _, i := range idx {
			if i < 0 || i >= n {
				return nil, ErrOutOfRange
			}
		}
		return idx, nil
	}
	m := n
	if m > defaultCheckSpan {
		m = defaultCheckSpan
	}
	return allIndices(m), nil
}

// CheckHermitian verifies K[idx,idx] equals its conjugate transpose.
//
// Returns ErrNilKernel, ErrOutOfRange or a wrapped ErrNotHermitian.
// Complexity: O(m²), m = len(idx).
func CheckHermitian[T Field](k *Kernel[T], idx []int) error {
	if k == nil {
		return dppErrorf("CheckHermitian", ErrNilKernel)
	}
	idx, err := checkIndices(k.n, idx)
	if err != nil {
		return dppErrorf("CheckHermitian", err)
	}
	if !k.isHermitian(idx) {
		return dppErrorf("CheckHermitian", ErrNotHermitian)
	}
	return nil
}

// CheckProjection verifies the reproducing property on a block:
// (K[idx,:] · K[:,idx]) == K[idx,idx].
//
// Returns ErrNilKernel, ErrOutOfRange or a wrapped ErrNotProjection.
// Complexity: O(m²·N), m = len(idx).
func CheckProjection[T Field](k *Kernel[T], idx []int) error {
	if k == nil {
		return dppErrorf("CheckProjection", ErrNilKernel)
	}
	idx, err := checkIndices(k.n, idx)
	if err != nil {
		return dppErrorf("CheckProjection", err)
	}
	for _, i := range idx {
		for _, j := range idx {
			var s T
			for l := 0; l < k.n; l++ {
				s += k.At(i, l) * k.At(l, j)
			}
			if !closeTo(s, k.At(i, j), hermitianAtol, hermitianRtol) {
				return dppErrorf("CheckProjection", ErrNotProjection)
			}
		}
	}
	return nil
}
