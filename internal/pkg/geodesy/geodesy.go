package geodesy

import (
	"math"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

const earthRadiusKm = 6371.0

// HaversineKm calculates the great-circle distance in kilometers between
// two points. Repeated summation over many short segments relies on this
// exact formula at every call site, so there is no fast approximation.
func HaversineKm(a, b domain.Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// HaversineMeters is the same distance in meters. Derived from the km
// variant by the radius ratio so the two can never drift apart.
func HaversineMeters(a, b domain.Coordinate) float64 {
	return HaversineKm(a, b) * 1000
}

// BearingDegrees returns the initial compass bearing from start to end,
// normalized to [0, 360).
func BearingDegrees(start, end domain.Coordinate) float64 {
	lat1 := toRad(start.Lat)
	lat2 := toRad(end.Lat)
	dLon := toRad(end.Lon - start.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// ProjectOnSegment projects pt perpendicularly onto the segment a→b using
// a flat-earth approximation centered at a, good for segments up to a few
// km. The ratio is clamped to [0,1]: when the true foot of the
// perpendicular falls outside the segment, the nearer endpoint is
// returned with ratio 0 or 1.
func ProjectOnSegment(pt, a, b domain.Coordinate) (domain.Coordinate, float64) {
	cosLat := math.Cos(toRad(a.Lat))

	// Local planar coordinates in degrees, longitude scaled by latitude.
	px := (pt.Lon - a.Lon) * cosLat
	py := pt.Lat - a.Lat
	sx := (b.Lon - a.Lon) * cosLat
	sy := b.Lat - a.Lat

	segLen2 := sx*sx + sy*sy
	if segLen2 == 0 {
		return a, 0 // degenerate segment
	}

	t := (px*sx + py*sy) / segLen2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return domain.Coordinate{
		Lon: a.Lon + (b.Lon-a.Lon)*t,
		Lat: a.Lat + (b.Lat-a.Lat)*t,
	}, t
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
