package profile

import (
	"errors"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func TestProjectPOINearestSample(t *testing.T) {
	pts := flatPoints(20)
	// Right next to sample index 7.
	poi := &domain.POI{
		Name:     "Bergsee",
		Location: domain.Coordinate{Lon: pts[7].Coordinates.Lon + 0.0001, Lat: 47.0005},
	}

	proj, err := ProjectPOI(poi, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.SampleIndex != 7 {
		t.Errorf("expected nearest sample 7, got %d", proj.SampleIndex)
	}
	if proj.DistanceKm != pts[7].DistanceKm {
		t.Errorf("distance along route: got %v, want %v", proj.DistanceKm, pts[7].DistanceKm)
	}
	if proj.Elevation != pts[7].Elevation {
		t.Errorf("elevation: got %v, want %v", proj.Elevation, pts[7].Elevation)
	}
	if proj.OffRouteKm <= 0 {
		t.Errorf("expected a positive off-route gap, got %v", proj.OffRouteKm)
	}
}

func TestProjectPOIEmptyProfile(t *testing.T) {
	poi := &domain.POI{Location: domain.Coordinate{Lon: 11, Lat: 47}}
	if _, err := ProjectPOI(poi, nil); !errors.Is(err, domain.ErrNoRouteData) {
		t.Errorf("expected ErrNoRouteData, got %v", err)
	}
}

func TestProjectPOIExactMatch(t *testing.T) {
	pts := flatPoints(5)
	poi := &domain.POI{Location: pts[2].Coordinates}
	proj, err := ProjectPOI(poi, pts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if proj.SampleIndex != 2 || proj.OffRouteKm != 0 {
		t.Errorf("exact match: got index %d gap %v", proj.SampleIndex, proj.OffRouteKm)
	}
}
