// Package dpp draws exact samples from Determinantal Point Processes whose
// kernel is a projection (K² = K): real symmetric, complex Hermitian, or
// generic (non-Hermitian) projections.
//
// 🚀 What is a projection DPP?
//
//	A random subset Y of the ground set {0,…,N-1} with
//	P(S ⊆ Y) = det K_S. When K is a projection of rank r, |Y| = r almost
//	surely, and the chain rule turns sampling into r conditional draws:
//	at step it, index i is chosen with probability
//	(residual of i given the prefix) / (r − it).
//
// ✨ Samplers (same law, different numerical paths):
//   - GramSchmidtSample — residual norms via incremental orthogonalization (default).
//   - CholeskySample    — pivoted Cholesky updates on a private copy of K.
//   - SchurSample       — Schur complements with Woodbury updates; the only
//     choice for non-Hermitian kernels.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvdpp/dpp"
//
//	k, _ := dpp.NewKernel(kMat)                 // gonum mat.Matrix, N×N
//	s, err := dpp.Sample(k, dpp.Correlation,
//		dpp.WithMode(dpp.ModeChol),            // resolved against Hermitian-ness
//		dpp.WithSeed(42))                      // reproducible
//
//	p, _ := dpp.FromFeatures(dpp.Correlation, a) // K = Aᵀ(AAᵀ)⁻¹A, built lazily
//	batch, err := p.SampleMany(ctx, 1000, dpp.WithSeed(7), dpp.WithWorkers(4))
//
// Size rules:
//   - size 0 (default) means rank(K) = round(trace K);
//   - size > rank fails with ErrSizeExceedsRank before any state is allocated;
//   - Likelihood kernels (k-DPP(L)) require an explicit size (ErrMissingSize).
//
// Performance:
//
//   - GS, Chol: O(N·k²) time; GS uses O(N·k) extra memory, Chol O(N²).
//   - Schur:    O(N·k³) time, O(k²) extra memory.
//
// Concurrency: a single call is sequential. Kernels are read-only and may be
// shared; random sources may not. SampleMany parallelizes independent draws.
package dpp
