// SPDX-License-Identifier: MIT
// Package dpp: sentinel error set.
// Every sampler, constructor and dispatcher in this package returns one of the
// sentinels below (possibly wrapped with call-site context). Tests and callers
// match them via errors.Is. No sampler panics on user-triggered conditions.

package dpp

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "dpp: ..." so log lines are easy to grep.
// Sentinels are wrapped once, at the public boundary, with dppErrorf.
//
// ERROR PRIORITY (enforced in tests):
// nil/shape/NaN -> kernel structure (Hermitian) -> size -> numerical degeneracy.

var (
	// ErrNilKernel is returned when a nil kernel or nil source matrix is supplied.
	ErrNilKernel = errors.New("dpp: nil kernel")

	// ErrEmptyKernel is returned for a 0×0 kernel (empty ground set).
	ErrEmptyKernel = errors.New("dpp: empty kernel")

	// ErrNonSquare signals that the kernel is not N×N, or that a data slice
	// does not hold exactly N*N entries.
	ErrNonSquare = errors.New("dpp: kernel is not square")

	// ErrNaNInf signals a NaN or ±Inf kernel entry or residual weight.
	ErrNaNInf = errors.New("dpp: NaN or Inf encountered")

	// ErrInvalidSize is returned for a negative sample size.
	ErrInvalidSize = errors.New("dpp: invalid sample size")

	// ErrMissingSize is returned when a likelihood (L) kernel is sampled
	// without an explicit positive size.
	ErrMissingSize = errors.New("dpp: missing required sample size")

	// ErrSizeExceedsRank is returned when the requested size is larger than
	// rank(K) = round(trace(K)).
	ErrSizeExceedsRank = errors.New("dpp: sample size exceeds kernel rank")

	// ErrNotHermitian signals a Hermitian-only routine (Chol, GS) was handed a
	// non-Hermitian kernel, or that CheckHermitian failed.
	ErrNotHermitian = errors.New("dpp: kernel is not hermitian")

	// ErrNotProjection signals that K² != K within tolerance, or that an
	// eigenvalue is neither 0 nor 1.
	ErrNotProjection = errors.New("dpp: kernel is not a projection")

	// ErrNotFullRank is returned by FromFeatures when the feature matrix does
	// not have full row rank.
	ErrNotFullRank = errors.New("dpp: feature matrix is not full row rank")

	// ErrDegenerateResidual is returned when the remaining residual weights are
	// rounding noise (≈0 relative to rank − it) before the sample is complete.
	ErrDegenerateResidual = errors.New("dpp: residual weights vanished before sample completed")

	// ErrOutOfRange is returned when a caller-supplied index is outside [0, N).
	ErrOutOfRange = errors.New("dpp: index out of range")

	// ErrInvalidDraws is returned by SampleMany for a non-positive draw count.
	ErrInvalidDraws = errors.New("dpp: number of draws must be > 0")
)

// dppErrorf wraps err with a call-site tag, preserving the sentinel for errors.Is.
func dppErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
