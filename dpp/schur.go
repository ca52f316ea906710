package dpp

// SchurSample draws an exact sample of DPP(K), or of k-DPP(K) with
// k = WithSize(k), for any projection kernel (Hermitian or not) by tracking
// the Schur complements K_rr − K_rY·(K_YY)⁻¹·K_Yr of every remaining index r
// given the selected set Y. K is only read.
//
// The inverse block (K_YY)⁻¹ grows by one border per step (Woodbury):
//
//	it = 0: 1/K_jj
//	it = 1: [[K_jj, −K_ij], [−K_ji, K_ii]] / (K_ii·K_jj − K_ij·K_ji), Y = (i, j)
//	it ≥ 2: t1 = K⁻¹·K_Yj, s = K_jj − K_jY·t1, t2 = K_jY·K⁻¹ / s,
//	        K⁻¹ += t1⊗t2, border column −t1/s, border row −t2, corner 1/s
//
// The last step skips both the inverse and the Schur update.
//
// Errors: ErrNilKernel, ErrInvalidSize, ErrSizeExceedsRank,
// ErrDegenerateResidual, ErrNaNInf.
//
// Complexity: O(N·size³) time in the worst case, O(size²) auxiliary memory.
func SchurSample[T Field](k *Kernel[T], opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	if k == nil {
		return nil, dppErrorf("SchurSample", ErrNilKernel)
	}
	rank, size, err := resolveSize(k, o.Size)
	if err != nil {
		return nil, dppErrorf("SchurSample", err)
	}
	sample, err := schur(k, rank, size, &o)
	if err != nil {
		return nil, dppErrorf("SchurSample", err)
	}
	return sample, nil
}

// schur runs the Woodbury/Schur recursion on validated input.
func schur[T Field](k *Kernel[T], rank, size int, o *Options) ([]int, error) {
	n := k.n
	rem := make([]bool, n)
	for i := range rem {
		rem[i] = true
	}
	sc := k.Diag()
	inv := make([]T, size*size) // (K_YY)⁻¹, leading it×it block is live
	sample := make([]int, 0, size)
	tmp1 := make([]T, size)
	tmp2 := make([]T, size)
	left := make([]T, size)

	ch, err := newChooser(sc, o.source())
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

		// 1. Grow (K_YY)⁻¹ to include j.
		switch it {
		case 0:
			inv[0] = 1 / k.At(j, j)
		case 1:
			i := sample[0]
			det := k.At(i, i)*k.At(j, j) - k.At(i, j)*k.At(j, i)
			inv[0] = k.At(j, j) / det
			inv[1] = -k.At(i, j) / det
			inv[size] = -k.At(j, i) / det
			inv[size+1] = k.At(i, i) / det
		default:
			y := sample[:it]
			for a := 0; a < it; a++ {
				var s T
				for b, yb := range y {
					s += inv[a*size+b] * k.At(yb, j)
				}
				tmp1[a] = s
			}
			sj := k.At(j, j)
			for b, yb := range y {
				sj -= k.At(j, yb) * tmp1[b]
			}
			for b := 0; b < it; b++ {
				var s T
				for a, ya := range y {
					s += k.At(j, ya) * inv[a*size+b]
				}
				tmp2[b] = s / sj
			}
			for a := 0; a < it; a++ {
				for b := 0; b < it; b++ {
					inv[a*size+b] += tmp1[a] * tmp2[b]
				}
				inv[a*size+it] = -tmp1[a] / sj
				inv[it*size+a] = -tmp2[a]
			}
			inv[it*size+it] = 1 / sj
		}

		// 2. Schur complements for Y ← Y+j: K_rr − (K_rY·K⁻¹)·K_Yr.
		y := sample[:it+1]
		m := it + 1
		for r := 0; r < n; r++ {
			if !rem[r] {
				continue
			}
			for b := 0; b < m; b++ {
				var s T
				for a, ya := range y {
					s += k.At(r, ya) * inv[a*size+b]
				}
				left[b] = s
			}
			v := k.At(r, r)
			for b, yb := range y {
				v -= left[b] * k.At(yb, r)
			}
			sc[r] = re(v)
			if err = ch.reweight(r, sc[r]); err != nil {
				return nil, err
			}
		}
	}

	o.Logger.Debug("dpp: schur sample drawn", "n", n, "rank", rank, "size", size)

	return sample, nil
}
