package dpp

import "math"

// GramSchmidtSample draws an exact sample of DPP(K), or of k-DPP(K) with
// k = WithSize(k), for a Hermitian projection kernel by sequential
// Gram–Schmidt orthogonalization. K is only read.
//
// State: remaining mask, norm² = Re diag K, coefficients c (N×size, row-major).
// For it = 0..size-1:
//  1. draw j among remaining indices with probability |norm²[j]| / (rank − it);
//  2. remove j and append it to the sample;
//  3. unless last, for every remaining r:
//     c[r,it] = (K[r,j] − Σ_{q<it} c[r,q]·conj(c[j,q])) / √norm²[j],
//     norm²[r] −= |c[r,it]|².
//
// Errors: ErrNilKernel, ErrNotHermitian, ErrInvalidSize, ErrSizeExceedsRank,
// ErrDegenerateResidual, ErrNaNInf.
//
// Complexity: O(N·size²) time, O(N·size) auxiliary memory.
func GramSchmidtSample[T Field](k *Kernel[T], opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	if err := requireHermitian(k); err != nil {
		return nil, dppErrorf("GramSchmidtSample", err)
	}
	rank, size, err := resolveSize(k, o.Size)
	if err != nil {
		return nil, dppErrorf("GramSchmidtSample", err)
	}
	sample, err := gramSchmidt(k, rank, size, &o)
	if err != nil {
		return nil, dppErrorf("GramSchmidtSample", err)
	}
	return sample, nil
}

// gramSchmidt runs the orthogonalization on validated input.
func gramSchmidt[T Field](k *Kernel[T], rank, size int, o *Options) ([]int, error) {
	n := k.n
	rem := make([]bool, n)
	for i := range rem {
		rem[i] = true
	}
	norm2 := k.Diag()
	c := make([]T, n*size)
	sample := make([]int, 0, size)

	ch, err := newChooser(norm2, o.source())
	if err != nil {
		return nil, err
	}

	for it := 0; it < size; it++ {
		mass := ch.mass()
		j, err := ch.take(float64(rank - it))
		if err != nil {
			return nil, err
		}
		sample = append(sample, j)
		rem[j] = false
		o.emit(Step{Iter: it, Mass: mass, Selected: j})

		if it == size-1 {
			break
		}

		nj := fromReal[T](math.Sqrt(math.Abs(norm2[j])))
		cj := c[j*size : j*size+it]
		for r := 0; r < n; r++ {
			if !rem[r] {
				continue
			}
			cr := c[r*size : r*size+it]
			v := k.At(r, j)
			for q, x := range cr {
				v -= x * conj(cj[q])
			}
			v /= nj
			c[r*size+it] = v
			norm2[r] -= abs2(v)
			if err = ch.reweight(r, norm2[r]); err != nil {
				return nil, err
			}
		}
	}

	o.Logger.Debug("dpp: gram-schmidt sample drawn", "n", n, "rank", rank, "size", size)

	return sample, nil
}
