// Package gpx turns GPX documents into track points for ingestion.
package gpx

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// Parse reads a GPX document and flattens all tracks and segments into
// one point sequence in travel order. Points without an elevation tag
// carry 0.
func Parse(data []byte) ([]domain.TrackPoint, string, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("parse gpx: %w", err)
	}

	var points []domain.TrackPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				tp := domain.TrackPoint{Lat: p.Latitude, Lon: p.Longitude}
				if p.Elevation.NotNull() {
					tp.Ele = p.Elevation.Value()
				}
				points = append(points, tp)
			}
		}
	}

	if len(points) == 0 {
		return nil, "", domain.ErrEmptyTrack
	}

	name := doc.Name
	if name == "" && len(doc.Tracks) > 0 {
		name = doc.Tracks[0].Name
	}
	return points, name, nil
}
