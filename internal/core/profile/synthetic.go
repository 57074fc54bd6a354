package profile

import "math"

// Amplitudes of the placeholder profile, as fractions of the route's
// known elevation range.
const (
	synthPrimary   = 0.30
	synthSecondary = 0.15
	synthTertiary  = 0.05
	synthSmoothing = 0.20
)

// syntheticElevation generates a placeholder elevation for normalized
// position t ∈ [0,1] along the route. It is a deterministic layering of
// sine waves inside the route's known min/max range: the same route
// always renders the same plausible-looking profile. Synthetic values
// are display-only and never enter computed statistics.
func syntheticElevation(t, minEle, maxEle float64) float64 {
	span := maxEle - minEle
	mid := minEle + span/2

	ele := mid +
		synthPrimary*span*math.Sin(t*2*math.Pi*2) +
		synthSecondary*span*math.Sin(t*2*math.Pi*5) +
		synthTertiary*span*math.Sin(t*2*math.Pi*13) +
		synthSmoothing*span*math.Sin(t*math.Pi)

	// The layered waves can momentarily overshoot the range; pin them.
	if ele < minEle {
		ele = minEle
	}
	if ele > maxEle {
		ele = maxEle
	}
	return ele
}
