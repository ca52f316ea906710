package dpp

// hermitianSwap exchanges indices j and t (j < t) of the n×n row-major matrix a
// while keeping its lower triangle a valid representation of the symmetrically
// permuted Hermitian matrix P·A·Pᴴ. Only the lower triangle (plus the
// factor columns 0..j-1 of rows j and t) is read or written.
//
// The four overlapping regions are processed in a fixed order, each staged
// through buf (len(buf) >= n) so no write ever feeds a later read:
//
//	bottom   rows t+1..n-1,   columns j and t   → exchanged
//	inner    column j rows j+1..t-1 ↔ row t columns j+1..t-1, conjugated
//	corner   a[t,j] → conj(a[t,j])
//	diagonal a[j,j] ↔ a[t,t], kept real
//	left     rows j and t, columns 0..j-1 → exchanged
//
// Complexity: O(n) time, no allocation.
func hermitianSwap[T Field](a []T, n, j, t int, buf []T) {
	if j == t {
		return
	}
	if j > t {
		j, t = t, j
	}

	// bottom: stage column j below t, then copy column t over it and restore.
	bottom := buf[:n-t-1]
	for r := t + 1; r < n; r++ {
		bottom[r-t-1] = a[r*n+j]
	}
	for r := t + 1; r < n; r++ {
		a[r*n+j] = a[r*n+t]
		a[r*n+t] = bottom[r-t-1]
	}

	// inner: stage the strip of column j, overwrite it from row t, then row t from the stage.
	inner := buf[:t-j-1]
	for c := j + 1; c < t; c++ {
		inner[c-j-1] = a[c*n+j]
	}
	for c := j + 1; c < t; c++ {
		a[c*n+j] = conj(a[t*n+c])
	}
	for c := j + 1; c < t; c++ {
		a[t*n+c] = conj(inner[c-j-1])
	}

	// corner
	a[t*n+j] = conj(a[t*n+j])

	// diagonal
	djj, dtt := re(a[j*n+j]), re(a[t*n+t])
	a[j*n+j], a[t*n+t] = fromReal[T](dtt), fromReal[T](djj)

	// left
	left := buf[:j]
	copy(left, a[j*n:j*n+j])
	copy(a[j*n:j*n+j], a[t*n:t*n+j])
	copy(a[t*n:t*n+j], left)
}
