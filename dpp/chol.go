package dpp

import "math"

// CholeskySample draws an exact sample of DPP(K), or of k-DPP(K) with
// k = WithSize(k), for a Hermitian projection kernel by sequential pivoted
// Cholesky updates.
//
// Algorithm Outline (A = copy of K, d = Re diag K, g = 0..N-1):
//  1. rank = round(trace K); size defaults to rank; size > rank fails.
//  2. For j = 0..size-1:
//     a. draw t ∈ {j..N-1} with probability |d[t]| / (rank − j);
//     b. Hermitian swap of j and t in A, swap d[j]↔d[t] and g[j]↔g[t];
//     c. A[j,j] = √d[j];
//     d. unless last: for r > j,
//     A[r,j] = (A[r,j] − Σ_{c<j} A[r,c]·conj(A[j,c])) / A[j,j],
//     d[r] −= |A[r,j]|².
//  3. Return g[:size] (selection order).
//
// Errors: ErrNilKernel, ErrNotHermitian, ErrInvalidSize, ErrSizeExceedsRank,
// ErrDegenerateResidual, ErrNaNInf.
//
// Complexity: O(N·size²) time, O(N²) memory for the private copy of K.
func CholeskySample[T Field](k *Kernel[T], opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	if err := requireHermitian(k); err != nil {
		return nil, dppErrorf("CholeskySample", err)
	}
	rank, size, err := resolveSize(k, o.Size)
	if err != nil {
		return nil, dppErrorf("CholeskySample", err)
	}
	sample, err := cholesky(k, rank, size, &o)
	if err != nil {
		return nil, dppErrorf("CholeskySample", err)
	}
	return sample, nil
}

// cholesky runs the pivoted update on validated input.
func cholesky[T Field](k *Kernel[T], rank, size int, o *Options) ([]int, error) {
	n := k.n
	a := append([]T(nil), k.data...)
	d := k.Diag()
	ground := allIndices(n)
	buf := make([]T, n)

	// The chooser works on positions; positions < j are pivoted (weight 0).
	ch, err := newChooser(d, o.source())
	if err != nil {
		return nil, err
	}

	for j := 0; j < size; j++ {
		mass := ch.mass()
		t, err := ch.take(float64(rank - j))
		if err != nil {
			return nil, err
		}

		hermitianSwap(a, n, j, t, buf)
		ground[j], ground[t] = ground[t], ground[j]
		d[j], d[t] = d[t], d[j]
		if t != j {
			// Position t now carries the old residual of j; position j is pivoted.
			if err = ch.reweight(t, d[t]); err != nil {
				return nil, err
			}
			if err = ch.reweight(j, 0); err != nil {
				return nil, err
			}
		}
		o.emit(Step{Iter: j, Mass: mass, Selected: ground[j]})

		pivot := math.Sqrt(math.Abs(d[j]))
		a[j*n+j] = fromReal[T](pivot)

		if j == size-1 {
			break
		}

		// Form the new column and deflate the diagonal.
		rowJ := a[j*n : j*n+j]
		for r := j + 1; r < n; r++ {
			rowR := a[r*n : r*n+j]
			v := a[r*n+j]
			for c, x := range rowR {
				v -= x * conj(rowJ[c])
			}
			v /= a[j*n+j]
			a[r*n+j] = v
			d[r] -= abs2(v)
			if err = ch.reweight(r, d[r]); err != nil {
				return nil, err
			}
		}
	}

	o.Logger.Debug("dpp: cholesky sample drawn", "n", n, "rank", rank, "size", size)

	sample := make([]int, size)
	copy(sample, ground[:size])
	return sample, nil
}
