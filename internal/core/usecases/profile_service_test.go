package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
)

// --- Mock RouteRepository ---

type mockRouteRepo struct {
	createFn    func(ctx context.Context, route *domain.Route) error
	updateFn    func(ctx context.Context, route *domain.Route) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Route, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Route, error)
	listFn      func(ctx context.Context, tier *domain.TourTier, limit, offset int) ([]domain.Route, int, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockRouteRepo) Create(ctx context.Context, route *domain.Route) error {
	if m.createFn != nil {
		return m.createFn(ctx, route)
	}
	return nil
}

func (m *mockRouteRepo) Update(ctx context.Context, route *domain.Route) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, route)
	}
	return nil
}

func (m *mockRouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRouteRepo) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRouteRepo) List(ctx context.Context, tier *domain.TourTier, limit, offset int) ([]domain.Route, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, tier, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockRouteRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock SplitPointRepository ---

type mockSplitRepo struct {
	listByRouteFn func(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.SplitPoint, error)
}

func (m *mockSplitRepo) Upsert(ctx context.Context, sp *domain.SplitPoint) error { return nil }
func (m *mockSplitRepo) Delete(ctx context.Context, id string) error             { return nil }

func (m *mockSplitRepo) ListByRoute(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.SplitPoint, error) {
	if m.listByRouteFn != nil {
		return m.listByRouteFn(ctx, routeID, tier)
	}
	return nil, nil
}

// --- Mock ElevationProvider ---

type mockElevation struct {
	lookupFn  func(ctx context.Context, coords []domain.Coordinate) ([]float64, error)
	batchSize int
}

func (m *mockElevation) Lookup(ctx context.Context, coords []domain.Coordinate) ([]float64, error) {
	if m.lookupFn != nil {
		return m.lookupFn(ctx, coords)
	}
	return make([]float64, len(coords)), nil
}

func (m *mockElevation) BatchSize() int { return m.batchSize }

// --- Helpers ---

func alpineRoute(n int) *domain.Route {
	geom := make(domain.RouteGeometry, n)
	for i := range geom {
		geom[i] = domain.Coordinate{Lon: 11.0 + float64(i)*0.001, Lat: 47.0}
	}
	return &domain.Route{
		ID:       "route-1",
		Slug:     "karwendel-runde",
		Name:     "Karwendel Runde",
		Tier:     domain.TierSilver,
		Geometry: geom,
		Stats:    domain.TrackStats{LowestPoint: 600, HighestPoint: 2200},
	}
}

// --- Tests ---

func TestProfileService_GetProfile_Terrain(t *testing.T) {
	route := alpineRoute(6)
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}
	elev := &mockElevation{
		batchSize: 100,
		lookupFn: func(ctx context.Context, coords []domain.Coordinate) ([]float64, error) {
			out := make([]float64, len(coords))
			for i := range out {
				out[i] = 800 + float64(i)*10
			}
			return out, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, elev, nil, time.Second, 500)

	p, err := svc.GetProfile(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Synthetic {
		t.Error("profile should not be synthetic when lookups succeed")
	}
	if len(p.Points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(p.Points))
	}
	if p.Points[0].Elevation != 800 || p.Points[5].Elevation != 850 {
		t.Errorf("elevations not carried through: first=%v last=%v",
			p.Points[0].Elevation, p.Points[5].Elevation)
	}
	if p.Points[0].DistanceKm != 0 {
		t.Errorf("profile must start at distance 0, got %v", p.Points[0].DistanceKm)
	}
	if p.TotalKm <= 0 {
		t.Errorf("expected positive total distance, got %v", p.TotalKm)
	}
}

func TestProfileService_GetProfile_BatchFallback(t *testing.T) {
	route := alpineRoute(6)
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}

	// Batches of 2; the middle batch fails.
	calls := 0
	elev := &mockElevation{
		batchSize: 2,
		lookupFn: func(ctx context.Context, coords []domain.Coordinate) ([]float64, error) {
			calls++
			if calls == 2 {
				return nil, errors.New("upstream timeout")
			}
			out := make([]float64, len(coords))
			for i := range out {
				out[i] = 1000
			}
			return out, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, elev, nil, time.Second, 500)

	p, err := svc.GetProfile(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("a failed batch must not fail the build: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 batches for 6 coords at size 2, got %d", calls)
	}
	if p.Synthetic {
		t.Error("fallback-filled profile is still terrain data, not synthetic")
	}
	if p.Points[2].Elevation != 500 || p.Points[3].Elevation != 500 {
		t.Errorf("failed batch should be filled with fallback 500, got %v and %v",
			p.Points[2].Elevation, p.Points[3].Elevation)
	}
	if p.Points[0].Elevation != 1000 || p.Points[5].Elevation != 1000 {
		t.Errorf("healthy batches should keep their values, got %v and %v",
			p.Points[0].Elevation, p.Points[5].Elevation)
	}
}

func TestProfileService_GetProfile_SyntheticWithoutProvider(t *testing.T) {
	route := alpineRoute(50)
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, nil, nil, time.Second, 500)

	p, err := svc.GetProfile(context.Background(), "route-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Synthetic {
		t.Error("profile without an elevation provider must be synthetic")
	}
	for i, pt := range p.Points {
		if pt.Elevation < route.Stats.LowestPoint || pt.Elevation > route.Stats.HighestPoint {
			t.Fatalf("synthetic elevation %d out of stats range: %v", i, pt.Elevation)
		}
	}
}

func TestProfileService_GetProfile_EmptyGeometry(t *testing.T) {
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return &domain.Route{ID: id}, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, nil, nil, time.Second, 500)
	if _, err := svc.GetProfile(context.Background(), "route-1"); !errors.Is(err, domain.ErrNoRouteData) {
		t.Errorf("expected ErrNoRouteData, got %v", err)
	}
}

func TestProfileService_GetStages_WithOverrides(t *testing.T) {
	route := alpineRoute(100)
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}
	splits := &mockSplitRepo{
		listByRouteFn: func(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.SplitPoint, error) {
			return []domain.SplitPoint{
				{RouteID: routeID, Tier: tier, StageNumber: 1, DistanceKm: 3.33, LocationName: "Hallerangerhaus"},
			}, nil
		},
	}

	svc := usecases.NewProfileService(repo, splits, nil, nil, time.Second, 500)

	stages, bounds, err := svc.GetStages(context.Background(), "route-1", domain.TierSilver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stages) != 2 {
		t.Fatalf("silver tier: expected 2 stages, got %d", len(stages))
	}
	if len(bounds) != 1 {
		t.Fatalf("expected 1 boundary, got %d", len(bounds))
	}
	if !bounds[0].Override || bounds[0].DistanceKm != 3.33 {
		t.Errorf("split point should override the computed boundary: %+v", bounds[0])
	}
}

func TestProfileService_GetStages_ComputedBoundaries(t *testing.T) {
	route := alpineRoute(90)
	route.Tier = domain.TierBronze
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, nil, nil, time.Second, 500)

	stages, bounds, err := svc.GetStages(context.Background(), "route-1", domain.TierBronze)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stages) != 3 {
		t.Fatalf("bronze tier: expected 3 stages, got %d", len(stages))
	}
	if len(bounds) != 2 {
		t.Fatalf("bronze tier: expected 2 boundaries, got %d", len(bounds))
	}
	if bounds[0].Override || bounds[1].Override {
		t.Error("boundaries without split points must not be marked as overrides")
	}
	if !(0 < bounds[0].DistanceKm && bounds[0].DistanceKm < bounds[1].DistanceKm) {
		t.Errorf("boundaries must sit in ascending distance order: %v, %v",
			bounds[0].DistanceKm, bounds[1].DistanceKm)
	}
}

func TestProfileService_ProjectPOIs(t *testing.T) {
	route := alpineRoute(20)
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			return route, nil
		},
	}

	svc := usecases.NewProfileService(repo, nil, nil, nil, time.Second, 500)

	pois := []domain.POI{
		{ID: "p1", Name: "Almgasthof", Location: route.Geometry[4]},
	}
	projected, err := svc.ProjectPOIs(context.Background(), "route-1", pois)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(projected) != 1 {
		t.Fatalf("expected 1 projected POI, got %d", len(projected))
	}
	if projected[0].SampleIndex != 4 {
		t.Errorf("expected POI at sample 4, got %d", projected[0].SampleIndex)
	}
}

func TestProfileService_GetProfile_CacheHit(t *testing.T) {
	repoCalled := false
	repo := &mockRouteRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
			repoCalled = true
			return alpineRoute(6), nil
		},
	}
	cache := newMockCache()
	svc := usecases.NewProfileService(repo, nil, nil, cache, time.Second, 500)

	if _, err := svc.GetProfile(context.Background(), "route-1"); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if !repoCalled {
		t.Fatal("first call should hit the repository")
	}

	repoCalled = false
	if _, err := svc.GetProfile(context.Background(), "route-1"); err != nil {
		t.Fatalf("cached read: %v", err)
	}
	if repoCalled {
		t.Error("second call should be served from cache")
	}
}
