package tanks

import "math/rand"

// pickWeighted returns an index drawn with probability proportional to its
// weight. Weights are validated at config load: non-negative, positive sum.
func pickWeighted(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	// rounding can leave r just past the last bucket
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

// chance reports whether a uniform draw falls below p.
func chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
