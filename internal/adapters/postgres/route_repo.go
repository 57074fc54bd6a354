package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// RouteRepo implements ports.RouteRepository with pgx. Track geometry is
// stored as a PostGIS LineString and moved across the wire as GeoJSON;
// control waypoints live in a jsonb column since nothing queries them
// spatially.
type RouteRepo struct {
	db *DB
}

// NewRouteRepo creates a new RouteRepo.
func NewRouteRepo(db *DB) *RouteRepo {
	return &RouteRepo{db: db}
}

// lineString is the GeoJSON envelope for a route's track geometry.
type lineString struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

func geometryToGeoJSON(geom domain.RouteGeometry) ([]byte, error) {
	ls := lineString{Type: "LineString", Coordinates: make([][2]float64, len(geom))}
	for i, c := range geom {
		ls.Coordinates[i] = [2]float64{c.Lon, c.Lat}
	}
	return json.Marshal(ls)
}

func geometryFromGeoJSON(data []byte) (domain.RouteGeometry, error) {
	var ls lineString
	if err := json.Unmarshal(data, &ls); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	geom := make(domain.RouteGeometry, len(ls.Coordinates))
	for i, c := range ls.Coordinates {
		geom[i] = domain.Coordinate{Lon: c[0], Lat: c[1]}
	}
	return geom, nil
}

// Create inserts a route and fills in its generated ID.
func (r *RouteRepo) Create(ctx context.Context, route *domain.Route) error {
	geomJSON, err := geometryToGeoJSON(route.Geometry)
	if err != nil {
		return err
	}
	wpJSON, err := json.Marshal(route.Waypoints)
	if err != nil {
		return err
	}

	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO routes (slug, name, tier, geom, waypoints,
		                    total_km, ascent_m, descent_m, high_m, low_m,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_GeomFromGeoJSON($4), 4326)::geography, $5,
		        $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`, route.Slug, route.Name, route.Tier, geomJSON, wpJSON,
		route.Stats.TotalDistanceKm, route.Stats.TotalAscent, route.Stats.TotalDescent,
		route.Stats.HighestPoint, route.Stats.LowestPoint,
		route.CreatedAt, route.UpdatedAt,
	).Scan(&route.ID)
}

// Update replaces a route's mutable fields.
func (r *RouteRepo) Update(ctx context.Context, route *domain.Route) error {
	geomJSON, err := geometryToGeoJSON(route.Geometry)
	if err != nil {
		return err
	}
	wpJSON, err := json.Marshal(route.Waypoints)
	if err != nil {
		return err
	}

	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE routes
		SET name = $2, tier = $3,
		    geom = ST_SetSRID(ST_GeomFromGeoJSON($4), 4326)::geography,
		    waypoints = $5,
		    total_km = $6, ascent_m = $7, descent_m = $8, high_m = $9, low_m = $10,
		    updated_at = $11
		WHERE id = $1
	`, route.ID, route.Name, route.Tier, geomJSON, wpJSON,
		route.Stats.TotalDistanceKm, route.Stats.TotalAscent, route.Stats.TotalDescent,
		route.Stats.HighestPoint, route.Stats.LowestPoint, route.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const routeColumns = `
	id, slug, name, tier,
	ST_AsGeoJSON(geom::geometry),
	COALESCE(waypoints, '[]'),
	total_km, ascent_m, descent_m, high_m, low_m,
	created_at, updated_at`

func scanRoute(row pgx.Row) (*domain.Route, error) {
	var route domain.Route
	var geomJSON, wpJSON []byte
	err := row.Scan(
		&route.ID, &route.Slug, &route.Name, &route.Tier,
		&geomJSON, &wpJSON,
		&route.Stats.TotalDistanceKm, &route.Stats.TotalAscent, &route.Stats.TotalDescent,
		&route.Stats.HighestPoint, &route.Stats.LowestPoint,
		&route.CreatedAt, &route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if route.Geometry, err = geometryFromGeoJSON(geomJSON); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(wpJSON, &route.Waypoints); err != nil {
		return nil, fmt.Errorf("decode waypoints: %w", err)
	}
	return &route, nil
}

// GetByID returns a route by UUID.
func (r *RouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	return scanRoute(r.db.Pool.QueryRow(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE id = $1`, id))
}

// GetBySlug returns a route by its URL slug.
func (r *RouteRepo) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	return scanRoute(r.db.Pool.QueryRow(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE slug = $1`, slug))
}

// List returns routes ordered by name, optionally filtered by tier,
// plus the total matching count. Geometry is omitted from listings.
func (r *RouteRepo) List(ctx context.Context, tier *domain.TourTier, limit, offset int) ([]domain.Route, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FROM routes WHERE $1::text IS NULL OR tier = $1
	`, tier).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, tier,
		       total_km, ascent_m, descent_m, high_m, low_m,
		       created_at, updated_at
		FROM routes
		WHERE $1::text IS NULL OR tier = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, tier, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var route domain.Route
		if err := rows.Scan(
			&route.ID, &route.Slug, &route.Name, &route.Tier,
			&route.Stats.TotalDistanceKm, &route.Stats.TotalAscent, &route.Stats.TotalDescent,
			&route.Stats.HighestPoint, &route.Stats.LowestPoint,
			&route.CreatedAt, &route.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		routes = append(routes, route)
	}
	return routes, total, rows.Err()
}

// Delete removes a route and its split points (cascades in the schema).
func (r *RouteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
