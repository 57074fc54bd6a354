package profile

import (
	"errors"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func flatPoints(n int) []domain.ElevationPoint {
	pts := make([]domain.ElevationPoint, n)
	for i := range pts {
		pts[i] = domain.ElevationPoint{
			DistanceKm:  float64(i) * 0.5,
			Elevation:   1000,
			Index:       i,
			Coordinates: domain.Coordinate{Lon: 11 + float64(i)*0.001, Lat: 47},
		}
	}
	return pts
}

func TestStagesPartitionCovers(t *testing.T) {
	for _, tier := range []domain.TourTier{domain.TierGold, domain.TierSilver, domain.TierBronze} {
		for _, n := range []int{1, 2, 3, 10, 99, 100, 101} {
			pts := flatPoints(n)
			stages, err := Stages(pts, tier)
			if err != nil {
				t.Fatalf("tier=%s n=%d: %v", tier, n, err)
			}

			// Undilated ranges must cover [0,n) with no gaps or overlap.
			count := tier.StageCount()
			pps := (n + count - 1) / count
			covered := 0
			for i, st := range stages {
				start := i * pps
				end := (i + 1) * pps
				if end > n {
					end = n
				}
				if st.Points[0].Index != start {
					t.Errorf("tier=%s n=%d stage %d starts at %d, want %d",
						tier, n, st.Number, st.Points[0].Index, start)
				}
				covered += end - start
			}
			if covered != n {
				t.Errorf("tier=%s n=%d: partition covers %d points, want %d", tier, n, covered, n)
			}
		}
	}
}

func TestStagesRenderOverlap(t *testing.T) {
	pts := flatPoints(10)
	stages, err := Stages(pts, domain.TierSilver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(stages))
	}
	// Stage 1 draws one point into stage 2's range.
	if got := len(stages[0].Points); got != 6 {
		t.Errorf("stage 1 drawn points: got %d, want 6 (5 own + 1 overlap)", got)
	}
	// The final stage has nothing to overlap into.
	if got := len(stages[1].Points); got != 5 {
		t.Errorf("stage 2 drawn points: got %d, want 5", got)
	}
}

func TestBoundariesBronzeOn100Points(t *testing.T) {
	pts := flatPoints(100)
	bounds, err := Boundaries(pts, domain.TierBronze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bounds) != 2 {
		t.Fatalf("bronze tour: expected 2 boundaries, got %d", len(bounds))
	}

	// Same arithmetic the partition uses: pps=ceil(100/3)=34,
	// boundaries at min(34,99) and min(68,99).
	pps := (100 + 2) / 3
	for i, b := range bounds {
		idx := (i + 1) * pps
		if idx > 99 {
			idx = 99
		}
		if b.DistanceKm != pts[idx].DistanceKm {
			t.Errorf("boundary %d: got %v km, want distance of index %d (%v km)",
				i+1, b.DistanceKm, idx, pts[idx].DistanceKm)
		}
	}
}

func TestBoundariesGoldHasNone(t *testing.T) {
	bounds, err := Boundaries(flatPoints(50), domain.TierGold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bounds) != 0 {
		t.Errorf("gold tour: expected 0 boundaries, got %d", len(bounds))
	}
}

func TestStagesEmptyProfile(t *testing.T) {
	if _, err := Stages(nil, domain.TierBronze); !errors.Is(err, domain.ErrNoRouteData) {
		t.Errorf("Stages: expected ErrNoRouteData, got %v", err)
	}
	if _, err := Boundaries(nil, domain.TierBronze); !errors.Is(err, domain.ErrNoRouteData) {
		t.Errorf("Boundaries: expected ErrNoRouteData, got %v", err)
	}
}

func TestApplySplitOverrides(t *testing.T) {
	bounds := []domain.StageBoundary{
		{StageNumber: 1, DistanceKm: 17.0},
		{StageNumber: 2, DistanceKm: 34.0},
	}
	overrides := []domain.SplitPoint{
		{StageNumber: 2, LocationName: "Gasthof Alm", DistanceKm: 36.5},
	}

	out := ApplySplitOverrides(bounds, overrides)
	if out[0].DistanceKm != 17.0 || out[0].Override {
		t.Errorf("stage 1 should keep the computed boundary: %+v", out[0])
	}
	if out[1].DistanceKm != 36.5 || !out[1].Override {
		t.Errorf("stage 2 should take the override: %+v", out[1])
	}
}
