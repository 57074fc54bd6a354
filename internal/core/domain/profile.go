package domain

// ElevationPoint is one sample of the distance-indexed elevation profile.
// DistanceKm is accumulated along the route and non-decreasing across the
// sequence; duplicate coordinates produce zero-length segments.
type ElevationPoint struct {
	DistanceKm  float64    `json:"distance_km"`
	Elevation   float64    `json:"elevation"`
	Index       int        `json:"index"` // original coordinate index
	Coordinates Coordinate `json:"coordinates"`
}

// Profile is the distance-vs-elevation series of a route. Synthetic marks
// a generated placeholder series; synthetic values render fine but must
// never be folded into route statistics.
type Profile struct {
	RouteID   string           `json:"route_id"`
	Points    []ElevationPoint `json:"points"`
	TotalKm   float64          `json:"total_km"`
	Synthetic bool             `json:"synthetic"`
}

// StageBoundary marks where one day stage ends and the next begins.
// A tour with N stages has N−1 boundaries.
type StageBoundary struct {
	StageNumber int     `json:"stage_number"` // 1-based, the stage that ends here
	DistanceKm  float64 `json:"distance_km"`
	Override    bool    `json:"override"` // true when a SplitPoint replaced the computed boundary
}

// Stage is one contiguous day segment of a profile. Points includes one
// overlapping boundary point from the following stage so the rendered
// line stays continuous; boundary distances are computed from the
// undilated partition, not from this overlap.
type Stage struct {
	Number  int              `json:"number"` // 1-based
	Points  []ElevationPoint `json:"points"`
	StartKm float64          `json:"start_km"`
	EndKm   float64          `json:"end_km"`
}

// ProjectedPOI is a POI mapped onto a route's profile.
type ProjectedPOI struct {
	POI         *POI    `json:"poi"`
	DistanceKm  float64 `json:"distance_km"` // along the route
	Elevation   float64 `json:"elevation"`
	SampleIndex int     `json:"sample_index"`
	OffRouteKm  float64 `json:"off_route_km"` // straight-line gap to the matched sample
}
