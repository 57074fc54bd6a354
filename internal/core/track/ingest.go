// Package track normalizes raw GPS tracks into route geometry and
// aggregate statistics. Parsing (GPX, directions responses) happens in
// the adapters; ingestion starts once points are plain lat/lon/ele tuples.
package track

import (
	"math"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/pkg/geodesy"
)

const (
	// Control-point bounds for re-routing through a directions API.
	minWaypoints = 5
	maxWaypoints = 70
)

// Summary is the result of ingesting a raw track: the full-resolution
// geometry, the recorded elevations in the same order, derived control
// waypoints, and one-pass aggregates.
type Summary struct {
	Geometry   domain.RouteGeometry
	Elevations []float64
	Waypoints  domain.RouteGeometry
	Stats      domain.TrackStats
}

// Ingest walks a raw point list once, in input order, and produces a
// Summary. Fewer than two points is a caller contract violation and
// fails with ErrEmptyTrack; a route needs at least a start and an end.
func Ingest(points []domain.TrackPoint) (*Summary, error) {
	if len(points) < 2 {
		return nil, domain.ErrEmptyTrack
	}

	s := &Summary{
		Geometry:   make(domain.RouteGeometry, len(points)),
		Elevations: make([]float64, len(points)),
		Stats: domain.TrackStats{
			HighestPoint: points[0].Ele,
			LowestPoint:  points[0].Ele,
		},
	}

	s.Geometry[0] = points[0].Coordinate()
	s.Elevations[0] = points[0].Ele

	for i := 1; i < len(points); i++ {
		s.Geometry[i] = points[i].Coordinate()
		s.Elevations[i] = points[i].Ele

		s.Stats.TotalDistanceKm += geodesy.HaversineKm(s.Geometry[i-1], s.Geometry[i])

		delta := points[i].Ele - points[i-1].Ele
		if delta > 0 {
			s.Stats.TotalAscent += delta
		} else {
			s.Stats.TotalDescent += -delta
		}
		if points[i].Ele > s.Stats.HighestPoint {
			s.Stats.HighestPoint = points[i].Ele
		}
		if points[i].Ele < s.Stats.LowestPoint {
			s.Stats.LowestPoint = points[i].Ele
		}
	}

	s.Waypoints = controlWaypoints(s.Geometry, s.Stats.TotalDistanceKm)
	return s, nil
}

// controlWaypoints picks a bounded set of interior points for re-creating
// the route through a directions API: roughly two per kilometer, clamped
// to [minWaypoints, maxWaypoints], taken at a uniform stride through the
// interior of the track. Start and end are supplied separately to the
// directions request, so they are excluded here.
func controlWaypoints(geom domain.RouteGeometry, totalKm float64) domain.RouteGeometry {
	interior := len(geom) - 2
	if interior <= 0 {
		return nil
	}

	target := int(math.Ceil(totalKm * 2))
	if target < minWaypoints {
		target = minWaypoints
	}
	if target > maxWaypoints {
		target = maxWaypoints
	}
	if target > interior {
		target = interior
	}

	// Ceiling stride keeps the picks spread over the whole interior; a
	// floored stride would cluster them at the head of the track and a
	// re-route through the directions API would lose the tail's shape.
	// The count may land under target, which is fine: target is a cap.
	stride := (interior + target - 1) / target

	wps := make(domain.RouteGeometry, 0, target)
	for i := 1; i < len(geom)-1; i += stride {
		wps = append(wps, geom[i])
	}
	return wps
}
