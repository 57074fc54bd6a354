package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/ports"
)

// POIService handles point-of-interest business logic.
type POIService struct {
	pois  ports.POIRepository
	cache ports.CacheService
}

// NewPOIService creates a new POIService.
func NewPOIService(pois ports.POIRepository, cache ports.CacheService) *POIService {
	return &POIService{pois: pois, cache: cache}
}

// FindNearby returns POIs within radiusMeters of the given point.
func (s *POIService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.POI, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("pois:nearby:%.4f:%.4f:%.0f:%d", lat, lon, radiusMeters, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var pois []domain.POI
			if err := json.Unmarshal(data, &pois); err == nil {
				return pois, nil
			}
		}
	}

	pois, err := s.pois.FindNearby(ctx, lat, lon, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	// POIs change rarely; 5 minutes is plenty.
	if s.cache != nil {
		if data, err := json.Marshal(pois); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return pois, nil
}

// NearRoute returns POIs close to any control waypoint of a route.
// Results are de-duplicated across waypoints.
func (s *POIService) NearRoute(ctx context.Context, route *domain.Route, radiusMeters float64, perWaypoint int) ([]domain.POI, error) {
	if perWaypoint <= 0 || perWaypoint > 20 {
		perWaypoint = 5
	}

	seen := make(map[string]struct{})
	var out []domain.POI
	for _, wp := range route.Waypoints {
		pois, err := s.pois.FindNearby(ctx, wp.Lat, wp.Lon, radiusMeters, perWaypoint)
		if err != nil {
			return nil, err
		}
		for _, p := range pois {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

// ListByType returns POIs of one type (hut, spring, summit, ...)
// alphabetically, for editorial pick lists.
func (s *POIService) ListByType(ctx context.Context, poiType string, limit int) ([]domain.POI, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.pois.ListByType(ctx, poiType, limit)
}

// GetByID returns a single POI.
func (s *POIService) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	return s.pois.GetByID(ctx, id)
}

// Upsert creates or updates a POI.
func (s *POIService) Upsert(ctx context.Context, poi *domain.POI) error {
	return s.pois.Upsert(ctx, poi)
}
