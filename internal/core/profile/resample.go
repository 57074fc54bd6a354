package profile

// DefaultSampleTarget bounds how many points of a dense path are sent to
// the external elevation service; everything in between is interpolated.
const DefaultSampleTarget = 200

// SampleIndices selects a bounded subset of [0, n) for elevation lookup.
// When n fits the target every index is returned. Otherwise every k-th
// index is taken with k = ceil(n/target), and the final index is always
// force-included: dropping the tail would misplace the route's end on
// the profile. The result is strictly increasing and holds at most
// target+1 entries.
func SampleIndices(n, target int) []int {
	if n <= 0 {
		return nil
	}
	if target <= 0 {
		target = DefaultSampleTarget
	}

	if n <= target {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	step := (n + target - 1) / target // ceil(n/target)
	idx := make([]int, 0, target+1)
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}

// InterpolateElevations expands sparse sampled elevations back to full
// resolution. sampledIdx must be strictly increasing; sampled holds one
// elevation per entry of sampledIdx. Sampled indices keep their value
// exactly; indices between two samples are linearly interpolated with
// t = (i-prev)/(next-prev); indices before the first sample take its
// value verbatim, and likewise after the last.
func InterpolateElevations(n int, sampledIdx []int, sampled []float64) []float64 {
	out := make([]float64, n)
	if len(sampledIdx) == 0 || len(sampled) == 0 {
		return out
	}

	k := 0 // current sample slot
	for i := 0; i < n; i++ {
		for k+1 < len(sampledIdx) && sampledIdx[k+1] <= i {
			k++
		}

		switch {
		case i <= sampledIdx[0]:
			out[i] = sampled[0]
		case k == len(sampledIdx)-1:
			out[i] = sampled[k]
		case i == sampledIdx[k]:
			out[i] = sampled[k]
		default:
			prev, next := sampledIdx[k], sampledIdx[k+1]
			t := float64(i-prev) / float64(next-prev)
			out[i] = sampled[k] + (sampled[k+1]-sampled[k])*t
		}
	}
	return out
}
