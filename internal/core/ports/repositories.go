package ports

import (
	"context"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// RouteRepository persists tour routes and their geometry.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	Update(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Route, error)
	List(ctx context.Context, tier *domain.TourTier, limit, offset int) ([]domain.Route, int, error)
	Delete(ctx context.Context, id string) error
}

// POIRepository persists points of interest.
type POIRepository interface {
	Upsert(ctx context.Context, poi *domain.POI) error
	GetByID(ctx context.Context, id string) (*domain.POI, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.POI, error)
	ListByType(ctx context.Context, poiType string, limit int) ([]domain.POI, error)
}

// SplitPointRepository persists manual stage-boundary overrides.
type SplitPointRepository interface {
	Upsert(ctx context.Context, sp *domain.SplitPoint) error
	ListByRoute(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.SplitPoint, error)
	Delete(ctx context.Context, id string) error
}
