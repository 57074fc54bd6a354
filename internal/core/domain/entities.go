package domain

import (
	"time"
)

// TourTier is the tour difficulty tier. It is a closed set: every tier maps
// to a fixed number of day stages, derived here and nowhere else.
type TourTier string

const (
	TierGold   TourTier = "gold"   // single-day tour
	TierSilver TourTier = "silver" // two stages
	TierBronze TourTier = "bronze" // three stages
)

// ParseTourTier validates a tier string.
func ParseTourTier(s string) (TourTier, bool) {
	switch TourTier(s) {
	case TierGold, TierSilver, TierBronze:
		return TourTier(s), true
	}
	return "", false
}

// StageCount returns the number of day stages for the tier.
func (t TourTier) StageCount() int {
	switch t {
	case TierSilver:
		return 2
	case TierBronze:
		return 3
	default:
		return 1
	}
}

// BoundaryCount returns the number of internal stage splits (stages − 1).
func (t TourTier) BoundaryCount() int {
	return t.StageCount() - 1
}

// TrackStats are the elevation and distance aggregates of a route,
// computed in one pass over the raw track in travel order. They are only
// ever derived from real (recorded or fetched) elevations, never from a
// synthetic placeholder series.
type TrackStats struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	TotalAscent     float64 `json:"total_ascent"`
	TotalDescent    float64 `json:"total_descent"`
	HighestPoint    float64 `json:"highest_point"`
	LowestPoint     float64 `json:"lowest_point"`
}

// Route is a persisted hiking/biking tour.
type Route struct {
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	Tier      TourTier      `json:"tier"`
	Geometry  RouteGeometry `json:"geometry,omitempty"`
	Waypoints RouteGeometry `json:"waypoints,omitempty"` // control points for re-routing
	Stats     TrackStats    `json:"stats"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// POI is a point of interest maintained by an editor. The geometry engine
// only ever projects a POI onto a route; it never mutates one.
type POI struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Location  Coordinate     `json:"location"`
	Images    []string       `json:"images,omitempty"`
	Amenities []string       `json:"amenities,omitempty"`
	BestTime  string         `json:"best_time,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Distance  *float64       `json:"distance,omitempty"` // computed field, meters
	CreatedAt time.Time      `json:"created_at"`
}

// SplitPoint is a user-edited override of a computed stage boundary.
// When one exists for a route/tier/stage it wins for display; the evenly
// divided geometric boundary stays the fallback.
type SplitPoint struct {
	ID           string     `json:"id"`
	RouteID      string     `json:"route_id"`
	Tier         TourTier   `json:"tier"`
	StageNumber  int        `json:"stage_number"` // 1-based
	LocationName string     `json:"location_name"`
	Location     Coordinate `json:"location"`
	DistanceKm   float64    `json:"distance_km"`
	CreatedAt    time.Time  `json:"created_at"`
}
