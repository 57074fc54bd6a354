package profile

import (
	"errors"
	"testing"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

func lineGeometry(n int) domain.RouteGeometry {
	geom := make(domain.RouteGeometry, n)
	for i := range geom {
		geom[i] = domain.Coordinate{Lon: 11.0 + float64(i)*0.001, Lat: 47.0}
	}
	return geom
}

func TestBuildDistanceMonotonic(t *testing.T) {
	geom := lineGeometry(100)
	elev := make([]float64, 100)

	p, err := Build("r1", geom, elev, domain.TrackStats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Points[0].DistanceKm != 0 {
		t.Errorf("first distance: got %v, want exactly 0", p.Points[0].DistanceKm)
	}
	for i := 1; i < len(p.Points); i++ {
		if p.Points[i].DistanceKm < p.Points[i-1].DistanceKm {
			t.Fatalf("distance decreased at index %d: %v < %v",
				i, p.Points[i].DistanceKm, p.Points[i-1].DistanceKm)
		}
	}
	if p.TotalKm != p.Points[len(p.Points)-1].DistanceKm {
		t.Errorf("TotalKm %v does not match last point %v",
			p.TotalKm, p.Points[len(p.Points)-1].DistanceKm)
	}
}

func TestBuildDuplicatePointsZeroLengthSegments(t *testing.T) {
	geom := domain.RouteGeometry{
		{Lon: 11.0, Lat: 47.0},
		{Lon: 11.0, Lat: 47.0}, // duplicate
		{Lon: 11.01, Lat: 47.0},
	}
	p, err := Build("r1", geom, []float64{1000, 1000, 1010}, domain.TrackStats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Points[1].DistanceKm != p.Points[0].DistanceKm {
		t.Errorf("duplicate coordinate should not advance distance: %v vs %v",
			p.Points[1].DistanceKm, p.Points[0].DistanceKm)
	}
	if p.Points[2].DistanceKm <= p.Points[1].DistanceKm {
		t.Errorf("distance should advance after the duplicate")
	}
}

func TestBuildEmptyGeometry(t *testing.T) {
	_, err := Build("r1", nil, nil, domain.TrackStats{})
	if !errors.Is(err, domain.ErrNoRouteData) {
		t.Errorf("expected ErrNoRouteData, got %v", err)
	}
}

func TestBuildSyntheticOnMismatch(t *testing.T) {
	geom := lineGeometry(10)
	stats := domain.TrackStats{LowestPoint: 500, HighestPoint: 1500}

	p, err := Build("r1", geom, nil, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Synthetic {
		t.Fatal("expected synthetic profile when elevation series is absent")
	}
	for i, pt := range p.Points {
		if pt.Elevation < 500 || pt.Elevation > 1500 {
			t.Errorf("synthetic elevation %d out of range: %v", i, pt.Elevation)
		}
	}

	// Deterministic: same inputs, same placeholder.
	p2, _ := Build("r1", geom, nil, stats)
	for i := range p.Points {
		if p.Points[i].Elevation != p2.Points[i].Elevation {
			t.Fatalf("synthetic series is not deterministic at index %d", i)
		}
	}
}

func TestBuildRealSeriesNotSynthetic(t *testing.T) {
	geom := lineGeometry(5)
	elev := []float64{100, 110, 120, 115, 105}
	p, err := Build("r1", geom, elev, domain.TrackStats{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Synthetic {
		t.Error("matching series must not be flagged synthetic")
	}
	for i := range elev {
		if p.Points[i].Elevation != elev[i] {
			t.Errorf("elevation %d: got %v, want %v", i, p.Points[i].Elevation, elev[i])
		}
	}
	if p.Points[3].Index != 3 {
		t.Errorf("original index not preserved: %d", p.Points[3].Index)
	}
}
