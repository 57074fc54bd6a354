package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/profile"
	"github.com/mkellerer/alpenroute/internal/pkg/metrics"
)

// maxElevationBatch caps how many coordinates go into a single provider
// call regardless of what the provider advertises.
const maxElevationBatch = 100

// ProfileService builds distance-indexed elevation profiles for routes.
type ProfileService struct {
	routes    ports.RouteRepository
	splits    ports.SplitPointRepository
	elevation ports.ElevationProvider
	cache     ports.CacheService

	batchTimeout time.Duration
	fallbackEle  float64
}

// NewProfileService creates a new ProfileService. elevation may be nil;
// profiles then fall back to a synthetic elevation series.
func NewProfileService(
	routes ports.RouteRepository,
	splits ports.SplitPointRepository,
	elevation ports.ElevationProvider,
	cache ports.CacheService,
	batchTimeout time.Duration,
	fallbackEle float64,
) *ProfileService {
	return &ProfileService{
		routes:       routes,
		splits:       splits,
		elevation:    elevation,
		cache:        cache,
		batchTimeout: batchTimeout,
		fallbackEle:  fallbackEle,
	}
}

// GetProfile returns the elevation profile for a route, building it on
// a cache miss.
func (s *ProfileService) GetProfile(ctx context.Context, routeID string) (*domain.Profile, error) {
	cacheKey := "profiles:route:" + routeID
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var p domain.Profile
			if err := json.Unmarshal(data, &p); err == nil {
				metrics.CacheHits.WithLabelValues("profile").Inc()
				return &p, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("profile").Inc()
	}

	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	p, err := s.buildProfile(ctx, route)
	if err != nil {
		return nil, err
	}

	// Profiles only change when geometry changes; Rebuild invalidates.
	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 3600)
		}
	}

	return p, nil
}

// buildProfile resolves elevations for a downsampled subset of the
// geometry, interpolates back to full resolution and accumulates
// distances. Elevation lookups never fail the build: a failed batch is
// filled with the configured fallback elevation, and a missing provider
// yields a synthetic series.
func (s *ProfileService) buildProfile(ctx context.Context, route *domain.Route) (*domain.Profile, error) {
	if len(route.Geometry) == 0 {
		return nil, domain.ErrNoRouteData
	}

	var elevations []float64
	if s.elevation != nil {
		sampledIdx := profile.SampleIndices(len(route.Geometry), profile.DefaultSampleTarget)
		sampled := s.lookupSampled(ctx, route.Geometry, sampledIdx)
		elevations = profile.InterpolateElevations(len(route.Geometry), sampledIdx, sampled)
	}

	start := time.Now()
	p, err := profile.Build(route.ID, route.Geometry, elevations, route.Stats)
	if err != nil {
		return nil, err
	}
	metrics.ProfileBuildDuration.Observe(time.Since(start).Seconds())
	metrics.ProfileBuilds.WithLabelValues(buildKind(p)).Inc()

	return p, nil
}

func buildKind(p *domain.Profile) string {
	if p.Synthetic {
		return "synthetic"
	}
	return "terrain"
}

// lookupSampled resolves elevations for the sampled coordinates in
// provider-sized batches. Each batch gets its own timeout; a batch that
// errors or times out is filled with the fallback elevation so one bad
// call cannot sink the whole profile.
func (s *ProfileService) lookupSampled(ctx context.Context, geom domain.RouteGeometry, sampledIdx []int) []float64 {
	coords := make([]domain.Coordinate, len(sampledIdx))
	for i, idx := range sampledIdx {
		coords[i] = geom[idx]
	}

	batchSize := s.elevation.BatchSize()
	if batchSize <= 0 || batchSize > maxElevationBatch {
		batchSize = maxElevationBatch
	}

	out := make([]float64, 0, len(coords))
	for start := 0; start < len(coords); start += batchSize {
		end := start + batchSize
		if end > len(coords) {
			end = len(coords)
		}
		out = append(out, s.lookupBatch(ctx, coords[start:end])...)
	}
	return out
}

func (s *ProfileService) lookupBatch(ctx context.Context, batch []domain.Coordinate) []float64 {
	bctx := ctx
	if s.batchTimeout > 0 {
		var cancel context.CancelFunc
		bctx, cancel = context.WithTimeout(ctx, s.batchTimeout)
		defer cancel()
	}

	eles, err := s.elevation.Lookup(bctx, batch)
	if err != nil || len(eles) != len(batch) {
		slog.Warn("elevation batch failed, using fallback",
			"batch_size", len(batch), "fallback_m", s.fallbackEle, "error", err)
		metrics.ElevationFallbacks.Add(float64(len(batch)))
		eles = make([]float64, len(batch))
		for i := range eles {
			eles[i] = s.fallbackEle
		}
	}
	metrics.ElevationBatches.Inc()
	return eles
}

// GetStages splits a route's profile into per-stage point runs for a
// tier, honoring any manually placed split points.
func (s *ProfileService) GetStages(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.Stage, []domain.StageBoundary, error) {
	p, err := s.GetProfile(ctx, routeID)
	if err != nil {
		return nil, nil, err
	}

	stages, err := profile.Stages(p.Points, tier)
	if err != nil {
		return nil, nil, err
	}
	bounds, err := profile.Boundaries(p.Points, tier)
	if err != nil {
		return nil, nil, err
	}

	if s.splits != nil {
		overrides, err := s.splits.ListByRoute(ctx, routeID, tier)
		if err != nil {
			return nil, nil, fmt.Errorf("load split points: %w", err)
		}
		bounds = profile.ApplySplitOverrides(bounds, overrides)
	}

	return stages, bounds, nil
}

// ProjectPOIs places points of interest onto a route's profile.
func (s *ProfileService) ProjectPOIs(ctx context.Context, routeID string, pois []domain.POI) ([]domain.ProjectedPOI, error) {
	p, err := s.GetProfile(ctx, routeID)
	if err != nil {
		return nil, err
	}

	projected := make([]domain.ProjectedPOI, 0, len(pois))
	for i := range pois {
		proj, err := profile.ProjectPOI(&pois[i], p.Points)
		if err != nil {
			return nil, err
		}
		projected = append(projected, *proj)
	}
	return projected, nil
}

// Rebuild drops the cached profile and rebuilds it from the current
// geometry. Used after a geometry update or split-point change.
func (s *ProfileService) Rebuild(ctx context.Context, routeID string) (*domain.Profile, error) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "profiles:route:"+routeID)
	}
	return s.GetProfile(ctx, routeID)
}

// SetSplitPoint stores a manual stage boundary. The stage number must
// address one of the tier's internal boundaries.
func (s *ProfileService) SetSplitPoint(ctx context.Context, sp *domain.SplitPoint) error {
	if s.splits == nil {
		return fmt.Errorf("no split point store configured")
	}
	if sp.StageNumber < 1 || sp.StageNumber > sp.Tier.BoundaryCount() {
		return fmt.Errorf("stage number %d out of range for tier %s", sp.StageNumber, sp.Tier)
	}
	return s.splits.Upsert(ctx, sp)
}

// RemoveSplitPoint deletes a manual boundary; display falls back to the
// computed one.
func (s *ProfileService) RemoveSplitPoint(ctx context.Context, id string) error {
	if s.splits == nil {
		return fmt.Errorf("no split point store configured")
	}
	return s.splits.Delete(ctx, id)
}
