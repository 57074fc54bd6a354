package domain

import "errors"

// Structural errors surface to the caller: they mean the route genuinely
// lacks data and must not be papered over with zeros.
var (
	// ErrEmptyTrack is returned when a track has fewer than two points.
	ErrEmptyTrack = errors.New("track needs at least two points")

	// ErrNoRouteData is returned when an operation needs a non-empty
	// profile or geometry and got none.
	ErrNoRouteData = errors.New("no route data")

	// ErrNotFound is returned by repositories for missing rows.
	ErrNotFound = errors.New("not found")
)
