package ports

import (
	"context"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// ElevationProvider resolves terrain elevations for coordinates. A
// single call carries at most one provider batch; callers split larger
// requests themselves.
type ElevationProvider interface {
	Lookup(ctx context.Context, coords []domain.Coordinate) ([]float64, error)
	BatchSize() int
}

// DirectionsProvider snaps a sequence of waypoints to a routable track.
type DirectionsProvider interface {
	Route(ctx context.Context, waypoints []domain.Coordinate) ([]domain.TrackPoint, error)
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteUpdated(ctx context.Context, route *domain.Route) error
	PublishProfileRebuilt(ctx context.Context, routeID string) error
	PublishBroadcast(ctx context.Context, data []byte) error
}
