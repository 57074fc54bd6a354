package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mkellerer/alpenroute/internal/core/domain"
	"github.com/mkellerer/alpenroute/internal/core/viewport"
)

// createRouteRequest is the body for route creation from a raw track.
type createRouteRequest struct {
	Name   string              `json:"name"`
	Tier   string              `json:"tier"`
	Points []domain.TrackPoint `json:"points"`
}

// planRouteRequest is the body for route creation from hand-picked
// waypoints, snapped through the directions provider.
type planRouteRequest struct {
	Name      string              `json:"name"`
	Tier      string              `json:"tier"`
	Waypoints []domain.Coordinate `json:"waypoints"`
}

func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errNotFound(c, "not found")
	case errors.Is(err, domain.ErrEmptyTrack):
		return errUnprocessable(c, "track needs at least 2 points")
	case errors.Is(err, domain.ErrNoRouteData):
		return errUnprocessable(c, "route has no geometry")
	default:
		return errInternal(c, err.Error())
	}
}

// ListRoutesHandler returns routes, paginated and optionally filtered by tier.
func ListRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 20)

		var tier *domain.TourTier
		if t := c.Query("tier"); t != "" {
			parsed, ok := domain.ParseTourTier(t)
			if !ok {
				return errBadRequest(c, "tier must be gold, silver, or bronze")
			}
			tier = &parsed
		}

		routes, total, err := deps.Routes.List(c.Context(), tier, limit, offset)
		if err != nil {
			return errInternal(c, err.Error())
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: routes, Pagination: pg})
	}
}

// CreateRouteHandler ingests a raw track and stores it as a route.
func CreateRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRouteRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Name == "" {
			return errBadRequest(c, "name is required")
		}
		tier, ok := domain.ParseTourTier(req.Tier)
		if !ok {
			return errBadRequest(c, "tier must be gold, silver, or bronze")
		}

		route, err := deps.Routes.CreateFromTrack(c.Context(), req.Name, tier, req.Points)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(route)
	}
}

// PlanRouteHandler snaps waypoints to a track and stores the result.
func PlanRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req planRouteRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Name == "" {
			return errBadRequest(c, "name is required")
		}
		tier, ok := domain.ParseTourTier(req.Tier)
		if !ok {
			return errBadRequest(c, "tier must be gold, silver, or bronze")
		}
		if len(req.Waypoints) < 2 {
			return errBadRequest(c, "at least 2 waypoints are required")
		}

		route, err := deps.Routes.CreateFromWaypoints(c.Context(), req.Name, tier, req.Waypoints)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.Status(201).JSON(route)
	}
}

// GetRouteHandler returns a route by ID.
func GetRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := deps.Routes.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(route)
	}
}

// GetRouteBySlugHandler returns a route by its URL slug.
func GetRouteBySlugHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := deps.Routes.GetBySlug(c.Context(), c.Params("slug"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(route)
	}
}

// UpdateRouteGeometryHandler replaces a route's track.
func UpdateRouteGeometryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRouteRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		route, err := deps.Routes.UpdateGeometry(c.Context(), c.Params("id"), req.Points)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(route)
	}
}

// DeleteRouteHandler removes a route.
func DeleteRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Routes.Delete(c.Context(), c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// RouteProfileHandler returns the distance-indexed elevation profile.
func RouteProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Profiles.GetProfile(c.Context(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(p)
	}
}

// RebuildProfileHandler drops the cached profile and rebuilds it.
func RebuildProfileHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Profiles.Rebuild(c.Context(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		LoggerFromCtx(c.UserContext()).Info("profile rebuilt",
			"route_id", p.RouteID, "points", len(p.Points), "synthetic", p.Synthetic)
		return c.JSON(p)
	}
}

// stagesResponse pairs the per-stage point runs with their boundaries.
type stagesResponse struct {
	Tier       domain.TourTier        `json:"tier"`
	Stages     []domain.Stage         `json:"stages"`
	Boundaries []domain.StageBoundary `json:"boundaries"`
}

// RouteStagesHandler splits a route's profile into day stages. The tier
// defaults to the route's own.
func RouteStagesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var tier domain.TourTier
		if t := c.Query("tier"); t != "" {
			parsed, ok := domain.ParseTourTier(t)
			if !ok {
				return errBadRequest(c, "tier must be gold, silver, or bronze")
			}
			tier = parsed
		} else {
			route, err := deps.Routes.GetByID(c.Context(), id)
			if err != nil {
				return mapDomainError(c, err)
			}
			tier = route.Tier
		}

		stages, bounds, err := deps.Profiles.GetStages(c.Context(), id, tier)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(stagesResponse{Tier: tier, Stages: stages, Boundaries: bounds})
	}
}

// RoutePOIsHandler returns POIs near the route, projected onto its profile.
func RoutePOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		radius := c.QueryFloat("radius", 2000)
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		route, err := deps.Routes.GetByID(c.Context(), id)
		if err != nil {
			return mapDomainError(c, err)
		}

		pois, err := deps.POIs.NearRoute(c.Context(), route, radius, c.QueryInt("per_waypoint", 5))
		if err != nil {
			return errInternal(c, err.Error())
		}

		projected, err := deps.Profiles.ProjectPOIs(c.Context(), id, pois)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(projected)
	}
}

// viewResponse is the renderable view window over a profile.
type viewResponse struct {
	State  viewport.ViewState `json:"state"`
	Points viewport.Partition `json:"points"`
}

// RouteViewHandler computes a view window over the route's profile.
// zoom_center/zoom_factor and pan are applied, in that order, to the
// full extent; narrow=true selects the coarser tick table.
func RouteViewHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := deps.Profiles.GetProfile(c.Context(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}

		ctrl := viewport.NewController(p.TotalKm, c.QueryBool("narrow", false))
		if factor := c.QueryFloat("zoom_factor", 0); factor > 0 {
			ctrl.Zoom(c.QueryFloat("zoom_center", p.TotalKm/2), factor)
		}
		if pan := c.QueryFloat("pan", 0); pan != 0 {
			ctrl.Pan(pan)
		}
		if km := c.QueryFloat("cursor_km", -1); km >= 0 {
			ctrl.Apply(viewport.PointerMoved{Km: km})
		}

		return c.JSON(viewResponse{
			State:  ctrl.State(),
			Points: ctrl.PartitionPoints(p.Points),
		})
	}
}

// splitPointRequest is the body for placing a manual stage boundary.
type splitPointRequest struct {
	Tier         string            `json:"tier"`
	StageNumber  int               `json:"stage_number"`
	LocationName string            `json:"location_name"`
	Location     domain.Coordinate `json:"location"`
	DistanceKm   float64           `json:"distance_km"`
}

// SetSplitPointHandler stores a manual stage boundary for a route.
func SetSplitPointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req splitPointRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		tier, ok := domain.ParseTourTier(req.Tier)
		if !ok {
			return errBadRequest(c, "tier must be gold, silver, or bronze")
		}

		sp := &domain.SplitPoint{
			RouteID:      c.Params("id"),
			Tier:         tier,
			StageNumber:  req.StageNumber,
			LocationName: req.LocationName,
			Location:     req.Location,
			DistanceKm:   req.DistanceKm,
		}
		if err := deps.Profiles.SetSplitPoint(c.Context(), sp); err != nil {
			return errBadRequest(c, err.Error())
		}
		return c.Status(201).JSON(sp)
	}
}

// DeleteSplitPointHandler removes a manual stage boundary.
func DeleteSplitPointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := deps.Profiles.RemoveSplitPoint(c.Context(), c.Params("id")); err != nil {
			return mapDomainError(c, err)
		}
		return c.SendStatus(204)
	}
}

// NearbyPOIsHandler returns POIs within a radius of a point.
func NearbyPOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 2000)
		limit := c.QueryInt("limit", 20)

		if lat == 0 || lon == 0 {
			return errBadRequest(c, "lat and lon are required")
		}
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		pois, err := deps.POIs.FindNearby(c.Context(), lat, lon, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(pois)
	}
}

// ListPOIsHandler lists POIs of one type.
func ListPOIsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		poiType := c.Query("type")
		if poiType == "" {
			return errBadRequest(c, "type is required")
		}

		pois, err := deps.POIs.ListByType(c.Context(), poiType, c.QueryInt("limit", 100))
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(pois)
	}
}

// GetPOIHandler returns a single POI by ID.
func GetPOIHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		poi, err := deps.POIs.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(poi)
	}
}

// UpsertPOIHandler creates or updates a POI.
func UpsertPOIHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var poi domain.POI
		if err := c.BodyParser(&poi); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if poi.Name == "" || poi.Type == "" {
			return errBadRequest(c, "name and type are required")
		}
		if err := deps.POIs.Upsert(c.Context(), &poi); err != nil {
			return errInternal(c, err.Error())
		}
		return c.Status(201).JSON(poi)
	}
}
