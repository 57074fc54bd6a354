package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/track"
)

// RouteService handles tour route business logic.
type RouteService struct {
	routes     ports.RouteRepository
	directions ports.DirectionsProvider
	cache      ports.CacheService
	events     ports.EventPublisher
}

// NewRouteService creates a new RouteService. directions and events may
// be nil when the corresponding capability is not wired.
func NewRouteService(
	routes ports.RouteRepository,
	directions ports.DirectionsProvider,
	cache ports.CacheService,
	events ports.EventPublisher,
) *RouteService {
	return &RouteService{routes: routes, directions: directions, cache: cache, events: events}
}

// CreateFromTrack ingests a recorded track and persists it as a route.
func (s *RouteService) CreateFromTrack(ctx context.Context, name string, tier domain.TourTier, points []domain.TrackPoint) (*domain.Route, error) {
	summary, err := track.Ingest(points)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	route := &domain.Route{
		Slug:      slugify(name),
		Name:      name,
		Tier:      tier,
		Geometry:  summary.Geometry,
		Waypoints: summary.Waypoints,
		Stats:     summary.Stats,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.routes.Create(ctx, route); err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}

	s.publishUpdated(ctx, route)
	return route, nil
}

// CreateFromWaypoints snaps hand-picked waypoints to a routable track
// through the directions provider, then ingests the result.
func (s *RouteService) CreateFromWaypoints(ctx context.Context, name string, tier domain.TourTier, waypoints []domain.Coordinate) (*domain.Route, error) {
	if s.directions == nil {
		return nil, fmt.Errorf("no directions provider configured")
	}

	points, err := s.directions.Route(ctx, waypoints)
	if err != nil {
		return nil, fmt.Errorf("directions lookup: %w", err)
	}
	return s.CreateFromTrack(ctx, name, tier, points)
}

// UpdateGeometry replaces a route's track and recomputes its summary.
func (s *RouteService) UpdateGeometry(ctx context.Context, id string, points []domain.TrackPoint) (*domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := track.Ingest(points)
	if err != nil {
		return nil, err
	}

	route.Geometry = summary.Geometry
	route.Waypoints = summary.Waypoints
	route.Stats = summary.Stats
	route.UpdatedAt = time.Now().UTC()

	if err := s.routes.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("update route: %w", err)
	}

	s.invalidate(ctx, route)
	s.publishUpdated(ctx, route)
	return route, nil
}

// GetByID returns a route by its UUID.
func (s *RouteService) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// GetBySlug returns a route by its URL slug.
func (s *RouteService) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	cacheKey := "routes:slug:" + slug
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var route domain.Route
			if err := json.Unmarshal(data, &route); err == nil {
				return &route, nil
			}
		}
	}

	route, err := s.routes.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(route); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return route, nil
}

// List returns routes, optionally filtered by tier, with the total
// count for pagination.
func (s *RouteService) List(ctx context.Context, tier *domain.TourTier, limit, offset int) ([]domain.Route, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.routes.List(ctx, tier, limit, offset)
}

// Delete removes a route and tells live sessions to drop it.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.routes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, route)

	if s.events != nil {
		msg, _ := json.Marshal(map[string]string{"event": "route.deleted", "route_id": id})
		if err := s.events.PublishBroadcast(ctx, msg); err != nil {
			slog.Warn("broadcast route deletion failed", "route_id", id, "error", err)
		}
	}
	return nil
}

func (s *RouteService) invalidate(ctx context.Context, route *domain.Route) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, "routes:slug:"+route.Slug)
	_ = s.cache.Delete(ctx, "profiles:route:"+route.ID)
}

func (s *RouteService) publishUpdated(ctx context.Context, route *domain.Route) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRouteUpdated(ctx, route); err != nil {
		slog.Warn("publish route update failed", "route_id", route.ID, "error", err)
	}
}

// slugify turns a display name into a URL slug. Collisions are handled
// by the unique constraint on routes.slug.
func slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
