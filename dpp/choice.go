package dpp

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/sampleuv"
)

// degenerateTol is the fraction of the expected residual mass below which
// the remaining weights are treated as rounding noise.
const degenerateTol = 1e-8

// chooser is the single weighted-choice primitive used by every sampler:
// pick one candidate with probability proportional to its weight.
//
// Candidates are the positions 0..n-1. A taken position has weight zero and
// can never be chosen again; residual updates go through reweight.
//
// Weight policy (identical for all samplers):
//   - the weight of a residual r is |r|, so tiny negative values produced by
//     cancellation (including -0) behave as their magnitude;
//   - NaN or ±Inf is rejected with ErrNaNInf;
//   - when the remaining total is at most degenerateTol times the expected
//     mass, take fails with ErrDegenerateResidual.
//
// The probability of a candidate is w/Σw. For a projection kernel Σw equals
// rank−it at step it, so this is the chain-rule conditional probability.
type chooser struct {
	w     []float64
	total float64
	smp   sampleuv.Weighted
}

// newChooser builds a chooser over residuals. The slice is not retained.
//
// Complexity: O(n).
func newChooser(residuals []float64, src rand.Source) (*chooser, error) {
	w := make([]float64, len(residuals))
	var total float64
	for i, r := range residuals {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return nil, ErrNaNInf
		}
		w[i] = math.Abs(r)
		total += w[i]
	}
	return &chooser{w: w, total: total, smp: sampleuv.NewWeighted(w, src)}, nil
}

// reweight sets the weight of candidate i to |r|.
//
// Complexity: O(log n).
func (c *chooser) reweight(i int, r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return ErrNaNInf
	}
	v := math.Abs(r)
	c.total += v - c.w[i]
	c.w[i] = v
	c.smp.Reweight(i, v)
	return nil
}

// mass returns the total weight still available, clamped at zero.
//
// Complexity: O(1).
func (c *chooser) mass() float64 {
	if c.total < 0 {
		return 0
	}
	return c.total
}

// take draws one candidate and removes it. expected is the mass a projection
// kernel has left at this step (rank − it). Exactly one uniform variate is
// consumed from the source per successful call.
//
// Complexity: O(log n).
func (c *chooser) take(expected float64) (int, error) {
	if c.mass() <= degenerateTol*expected {
		return -1, ErrDegenerateResidual
	}
	i, ok := c.smp.Take()
	if !ok {
		return -1, ErrDegenerateResidual
	}
	c.total -= c.w[i]
	c.w[i] = 0
	return i, nil
}
