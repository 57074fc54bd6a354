// Package profile turns route geometry and elevation data into the
// distance-indexed series that the chart, stage segmenter, and POI
// projector all consume. Accumulated distance is computed here and
// nowhere else, so every consumer shares identical distance semantics.
package profile

import (
	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/pkg/geodesy"
)

// Build walks the geometry once, accumulating haversine distance, and
// pairs each coordinate with its elevation. The first point is always at
// distance 0 and distance never decreases; duplicate coordinates yield
// zero-length segments.
//
// When the elevation series is absent or does not match the geometry, a
// deterministic synthetic series is generated inside the route's known
// elevation range and the profile is flagged Synthetic. Synthetic
// profiles render; they never feed statistics.
func Build(routeID string, geom domain.RouteGeometry, elev []float64, stats domain.TrackStats) (*domain.Profile, error) {
	if len(geom) == 0 {
		return nil, domain.ErrNoRouteData
	}

	synthetic := len(elev) != len(geom)

	points := make([]domain.ElevationPoint, len(geom))
	dist := 0.0
	for i, c := range geom {
		if i > 0 {
			dist += geodesy.HaversineKm(geom[i-1], c)
		}

		var ele float64
		if synthetic {
			t := 0.0
			if len(geom) > 1 {
				t = float64(i) / float64(len(geom)-1)
			}
			ele = syntheticElevation(t, stats.LowestPoint, stats.HighestPoint)
		} else {
			ele = elev[i]
		}

		points[i] = domain.ElevationPoint{
			DistanceKm:  dist,
			Elevation:   ele,
			Index:       i,
			Coordinates: c,
		}
	}

	return &domain.Profile{
		RouteID:   routeID,
		Points:    points,
		TotalKm:   dist,
		Synthetic: synthetic,
	}, nil
}
