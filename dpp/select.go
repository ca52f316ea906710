// SPDX-License-Identifier: MIT
// Package dpp — mode selection & dispatch.
//
// Purpose:
//   - Map (Hermitian-ness, requested Mode) onto one concrete sampler.
//   - Validate the sample size against the kernel representation and rank
//     before any sampler state is allocated.
//
// Policy:
//   - Hermitian kernels: {GS (default), Chol, Schur}; unknown names fall back to GS.
//   - Non-Hermitian kernels: {Schur} only; every request resolves to Schur.
//   - Likelihood kernels: an explicit positive size is mandatory.

package dpp

// sampler is the shared contract of the three projection samplers:
// validated kernel, rank, size and options in, ordered sample out.
type sampler[T Field] func(k *Kernel[T], rank, size int, o *Options) ([]int, error)

// ResolveMode returns the mode actually used for a kernel with the given
// Hermitian-ness when mode is requested.
//
// Complexity: O(1).
func ResolveMode(hermitian bool, mode Mode) Mode {
	if !hermitian {
		return ModeSchur
	}
	switch mode {
	case ModeGS, ModeChol, ModeSchur:
		return mode
	default:
		return ModeGS
	}
}

// selectSampler returns the sampler for a resolved mode.
func selectSampler[T Field](mode Mode) sampler[T] {
	switch mode {
	case ModeChol:
		return cholesky[T]
	case ModeSchur:
		return schur[T]
	default:
		return gramSchmidt[T]
	}
}

// Sample draws one exact sample from the projection DPP defined by k.
//
// Steps:
//  1. Validate k (non-nil) and, for Likelihood kernels, that Size > 0.
//  2. Resolve the mode against k.Hermitian().
//  3. Validate Size against rank(k) (0 ⇒ rank).
//  4. Delegate to the selected sampler.
//
// Errors: ErrNilKernel, ErrMissingSize, ErrInvalidSize, ErrSizeExceedsRank,
// ErrDegenerateResidual, ErrNaNInf.
func Sample[T Field](k *Kernel[T], kind KernelType, opts ...Option) ([]int, error) {
	o := buildOptions(opts)
	return sampleWith(k, kind, &o)
}

// sampleWith is Sample on already-built options.
func sampleWith[T Field](k *Kernel[T], kind KernelType, o *Options) ([]int, error) {
	if k == nil {
		return nil, dppErrorf("Sample", ErrNilKernel)
	}
	if kind == Likelihood && o.Size <= 0 {
		return nil, dppErrorf("Sample", ErrMissingSize)
	}
	rank, size, err := resolveSize(k, o.Size)
	if err != nil {
		return nil, dppErrorf("Sample", err)
	}
	mode := ResolveMode(k.Hermitian(), o.Mode)
	o.Logger.Debug("dpp: dispatch",
		"kernel", kind.String(), "hermitian", k.Hermitian(),
		"requested", string(o.Mode), "mode", string(mode))

	sample, err := selectSampler[T](mode)(k, rank, size, o)
	if err != nil {
		return nil, dppErrorf("Sample", err)
	}
	return sample, nil
}

// resolveSize returns (rank, size) with size defaulted to rank.
//
// Errors: ErrInvalidSize (size < 0), ErrSizeExceedsRank.
func resolveSize[T Field](k *Kernel[T], size int) (int, int, error) {
	rank := k.Rank()
	if size < 0 {
		return rank, 0, ErrInvalidSize
	}
	if size == 0 {
		size = rank
	}
	if size > rank {
		return rank, 0, ErrSizeExceedsRank
	}
	return rank, size, nil
}

// requireHermitian guards the Hermitian-only samplers.
func requireHermitian[T Field](k *Kernel[T]) error {
	if k == nil {
		return ErrNilKernel
	}
	if !k.Hermitian() {
		return ErrNotHermitian
	}
	return nil
}
