package searcher

import "math/rand/v2"

// Weight of a child that was never visited
const unvisitedWeight = 1.0

type rouletteWheel struct {
	weights []float64
	total   float64
}

func newRouletteWheel(weights []float64) *rouletteWheel {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("weights cannot be negative")
		}
		total += w
	}
	return &rouletteWheel{weights: weights, total: total}
}

// spin returns an index drawn in proportion to its weight, uniformly when
// every weight is zero.
func (r *rouletteWheel) spin(rng *rand.Rand) int {
	if r.total == 0 {
		return rng.IntN(len(r.weights))
	}
	sampled := rng.Float64() * r.total
	cumulative := 0.0
	for i, w := range r.weights {
		cumulative += w
		if sampled < cumulative {
			return i
		}
	}
	return len(r.weights) - 1 // Fallback in case of rounding errors
}
