package profile

import (
	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/pkg/geodesy"
)

// ProjectPOI maps a POI onto the profile by nearest sample: the point
// whose coordinates minimize haversine distance to the POI wins, and its
// accumulated distance and elevation are reported. Nearest-sample can
// disagree with a true nearest-segment projection when sample spacing is
// coarse relative to route curvature; this service uses nearest-sample
// uniformly so every surface reports identical POI distances.
func ProjectPOI(poi *domain.POI, points []domain.ElevationPoint) (*domain.ProjectedPOI, error) {
	if len(points) == 0 {
		return nil, domain.ErrNoRouteData
	}

	best := 0
	bestDist := geodesy.HaversineKm(poi.Location, points[0].Coordinates)
	for i := 1; i < len(points); i++ {
		d := geodesy.HaversineKm(poi.Location, points[i].Coordinates)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}

	return &domain.ProjectedPOI{
		POI:         poi,
		DistanceKm:  points[best].DistanceKm,
		Elevation:   points[best].Elevation,
		SampleIndex: best,
		OffRouteKm:  bestDist,
	}, nil
}
