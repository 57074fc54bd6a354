package domain

// Coordinate is a geographic position (WGS 84), longitude first.
// The lon-first ordering matches GeoJSON and every wire boundary of
// this service; keep it consistent when converting to lat/lon pairs.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// TrackPoint is a raw GPS fix from a GPX track or a directions response.
// Elevation is meters above sea level; zero means "not recorded".
type TrackPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	Ele float64 `json:"ele"`
}

// Coordinate returns the point's position in lon-first form.
func (p TrackPoint) Coordinate() Coordinate {
	return Coordinate{Lon: p.Lon, Lat: p.Lat}
}

// RouteGeometry is the full-resolution path of a route, in travel order.
// It is immutable once computed for a route version; distance accumulation
// always walks it front to back.
type RouteGeometry []Coordinate

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundsOf computes the bounding box of a geometry.
// An empty geometry yields the zero Bounds.
func BoundsOf(geom RouteGeometry) Bounds {
	if len(geom) == 0 {
		return Bounds{}
	}
	b := Bounds{
		MinLat: geom[0].Lat, MaxLat: geom[0].Lat,
		MinLon: geom[0].Lon, MaxLon: geom[0].Lon,
	}
	for _, c := range geom[1:] {
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
		if c.Lon < b.MinLon {
			b.MinLon = c.Lon
		}
		if c.Lon > b.MaxLon {
			b.MaxLon = c.Lon
		}
	}
	return b
}
