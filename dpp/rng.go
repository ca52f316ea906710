// Package dpp - RNG utilities shared by all projection samplers.
//
// This file centralizes deterministic random generation.
//
// Goals:
//   - Determinism: same seed ⇒ identical samples across runs and platforms.
//   - Encapsulation: a single source factory; no time-based sources hidden anywhere.
//   - Independence: deriveSeed creates decorrelated streams for parallel draws.
//
// Concurrency:
//   - A rand.Source (PCG) is NOT goroutine-safe. Never share one across goroutines.
//   - SampleMany derives one stream per draw instead.
package dpp

import "math/rand/v2"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultRNGSeed uint64 = 1

// pcgStream is the stream selector mixed into the second PCG word.
const pcgStream uint64 = 0xda3e39cb94b95bdb

// sourceFromSeed returns a deterministic PCG source.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func sourceFromSeed(seed uint64) rand.Source {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.NewPCG(s, deriveSeed(s, pcgStream))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64-style finalizer; small input changes give well-spread outputs.
//
// Complexity: O(1).
func deriveSeed(parent uint64, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// drawSeeds produces one child seed per draw.
// With an explicit base source the seeds are consumed from it in order
// (one Uint64 per draw); otherwise they are derived from the base seed.
//
// Complexity: O(n).
func drawSeeds(o *Options, n int) []uint64 {
	seeds := make([]uint64, n)
	if o.Source != nil {
		for i := range seeds {
			seeds[i] = o.Source.Uint64()
		}
		return seeds
	}
	base := o.Seed
	if base == 0 {
		base = defaultRNGSeed
	}
	for i := range seeds {
		seeds[i] = deriveSeed(base, uint64(i))
	}
	return seeds
}
