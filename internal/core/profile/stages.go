package profile

import (
	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// Stages partitions a profile into the tier's day stages by point count:
// pointsPerStage = ceil(len/stages), stage i covering indices
// [i*pps, min((i+1)*pps, len)). Each stage's point slice additionally
// carries one overlapping boundary point from the next stage so the
// rendered line has no gap; boundary arithmetic ignores that overlap.
func Stages(points []domain.ElevationPoint, tier domain.TourTier) ([]domain.Stage, error) {
	if len(points) == 0 {
		return nil, domain.ErrNoRouteData
	}

	count := tier.StageCount()
	pps := (len(points) + count - 1) / count // ceil

	stages := make([]domain.Stage, 0, count)
	for i := 0; i < count; i++ {
		start := i * pps
		if start >= len(points) {
			break
		}
		end := (i + 1) * pps
		if end > len(points) {
			end = len(points)
		}

		// Overlap one point into the next stage for rendering continuity.
		drawEnd := end
		if drawEnd < len(points) {
			drawEnd++
		}

		stages = append(stages, domain.Stage{
			Number:  i + 1,
			Points:  points[start:drawEnd],
			StartKm: points[start].DistanceKm,
			EndKm:   points[end-1].DistanceKm,
		})
	}
	return stages, nil
}

// Boundaries reports the distances of the tier's internal stage splits,
// computed from the undilated partition: boundary i sits at the
// accumulated distance of index min(i*pps, len-1). A one-stage tour has
// none.
func Boundaries(points []domain.ElevationPoint, tier domain.TourTier) ([]domain.StageBoundary, error) {
	if len(points) == 0 {
		return nil, domain.ErrNoRouteData
	}

	count := tier.StageCount()
	pps := (len(points) + count - 1) / count

	bounds := make([]domain.StageBoundary, 0, tier.BoundaryCount())
	for i := 1; i < count; i++ {
		idx := i * pps
		if idx > len(points)-1 {
			idx = len(points) - 1
		}
		bounds = append(bounds, domain.StageBoundary{
			StageNumber: i,
			DistanceKm:  points[idx].DistanceKm,
		})
	}
	return bounds, nil
}

// ApplySplitOverrides replaces computed boundaries with persisted
// operator-edited split points where one exists for the stage number.
// Computed boundaries stay in place for stages without an override.
func ApplySplitOverrides(bounds []domain.StageBoundary, overrides []domain.SplitPoint) []domain.StageBoundary {
	if len(overrides) == 0 {
		return bounds
	}

	byStage := make(map[int]domain.SplitPoint, len(overrides))
	for _, sp := range overrides {
		byStage[sp.StageNumber] = sp
	}

	out := make([]domain.StageBoundary, len(bounds))
	for i, b := range bounds {
		if sp, ok := byStage[b.StageNumber]; ok {
			b.DistanceKm = sp.DistanceKm
			b.Override = true
		}
		out[i] = b
	}
	return out
}
