package workflows

import (
	"context"
	"fmt"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/ports"
	"github.com/mkellerer/alpenroute/internal/core/usecases"
)

// RebuildActivities holds the activity implementations for the profile
// rebuild workflow.
type RebuildActivities struct {
	Profiles *usecases.ProfileService
	Routes   ports.RouteRepository
	Events   ports.EventPublisher
}

// LoadRoute verifies the route still exists and returns its name for
// workflow logging.
func (a *RebuildActivities) LoadRoute(ctx context.Context, routeID string) (string, error) {
	route, err := a.Routes.GetByID(ctx, routeID)
	if err != nil {
		return "", fmt.Errorf("load route %s: %w", routeID, err)
	}
	return route.Name, nil
}

// RebuildProfile drops the cached profile and rebuilds it from current
// geometry, returning whether the result is synthetic.
func (a *RebuildActivities) RebuildProfile(ctx context.Context, routeID string) (bool, error) {
	p, err := a.Profiles.Rebuild(ctx, routeID)
	if err != nil {
		return false, fmt.Errorf("rebuild profile %s: %w", routeID, err)
	}
	return p.Synthetic, nil
}

// RecountStages re-derives the stage boundaries for every tier so stale
// cached views get refreshed alongside the profile.
func (a *RebuildActivities) RecountStages(ctx context.Context, routeID string) (int, error) {
	total := 0
	for _, tier := range []domain.TourTier{domain.TierGold, domain.TierSilver, domain.TierBronze} {
		stages, _, err := a.Profiles.GetStages(ctx, routeID, tier)
		if err != nil {
			return 0, fmt.Errorf("stages for %s/%s: %w", routeID, tier, err)
		}
		total += len(stages)
	}
	return total, nil
}

// AnnounceRebuilt publishes the profile-rebuilt event for live sessions.
func (a *RebuildActivities) AnnounceRebuilt(ctx context.Context, routeID string) error {
	if a.Events == nil {
		return nil
	}
	return a.Events.PublishProfileRebuilt(ctx, routeID)
}
