package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"lon": &graphql.Field{Type: graphql.Float},
			"lat": &graphql.Field{Type: graphql.Float},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TrackStats",
		Fields: graphql.Fields{
			"total_distance_km": &graphql.Field{Type: graphql.Float},
			"total_ascent":      &graphql.Field{Type: graphql.Float},
			"total_descent":     &graphql.Field{Type: graphql.Float},
			"highest_point":     &graphql.Field{Type: graphql.Float},
			"lowest_point":      &graphql.Field{Type: graphql.Float},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.String},
			"slug":  &graphql.Field{Type: graphql.String},
			"name":  &graphql.Field{Type: graphql.String},
			"tier":  &graphql.Field{Type: graphql.String},
			"stats": &graphql.Field{Type: statsType},
		},
	})

	elevationPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ElevationPoint",
		Fields: graphql.Fields{
			"distance_km": &graphql.Field{Type: graphql.Float},
			"elevation":   &graphql.Field{Type: graphql.Float},
			"index":       &graphql.Field{Type: graphql.Int},
			"coordinates": &graphql.Field{Type: coordinateType},
		},
	})

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"route_id":  &graphql.Field{Type: graphql.String},
			"total_km":  &graphql.Field{Type: graphql.Float},
			"synthetic": &graphql.Field{Type: graphql.Boolean},
			"points":    &graphql.Field{Type: graphql.NewList(elevationPointType)},
		},
	})

	poiType := graphql.NewObject(graphql.ObjectConfig{
		Name: "POI",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"type":      &graphql.Field{Type: graphql.String},
			"location":  &graphql.Field{Type: coordinateType},
			"best_time": &graphql.Field{Type: graphql.String},
			"distance":  &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Get a route by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"routeBySlug": &graphql.Field{
				Type:        routeType,
				Description: "Get a route by its URL slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.GetBySlug(p.Context, p.Args["slug"].(string))
				},
			},
			"routes": &graphql.Field{
				Type:        graphql.NewList(routeType),
				Description: "List routes, optionally filtered by tier",
				Args: graphql.FieldConfigArgument{
					"tier":   &graphql.ArgumentConfig{Type: graphql.String},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var tier *domain.TourTier
					if t, ok := p.Args["tier"].(string); ok && t != "" {
						parsed, valid := domain.ParseTourTier(t)
						if !valid {
							return nil, nil
						}
						tier = &parsed
					}
					routes, _, err := deps.Routes.List(p.Context, tier,
						p.Args["limit"].(int), p.Args["offset"].(int))
					return routes, err
				},
			},
			"profile": &graphql.Field{
				Type:        profileType,
				Description: "Distance-indexed elevation profile for a route",
				Args: graphql.FieldConfigArgument{
					"route_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Profiles.GetProfile(p.Context, p.Args["route_id"].(string))
				},
			},
			"poisNearby": &graphql.Field{
				Type:        graphql.NewList(poiType),
				Description: "Find POIs near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 2000.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.POIs.FindNearby(p.Context,
						p.Args["lat"].(float64), p.Args["lon"].(float64),
						p.Args["radius"].(float64), p.Args["limit"].(int))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
