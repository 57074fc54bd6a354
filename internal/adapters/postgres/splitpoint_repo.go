package postgres

import (
	"context"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// SplitPointRepo implements ports.SplitPointRepository with pgx.
type SplitPointRepo struct {
	db *DB
}

// NewSplitPointRepo creates a new SplitPointRepo.
func NewSplitPointRepo(db *DB) *SplitPointRepo {
	return &SplitPointRepo{db: db}
}

// Upsert inserts or replaces the override for a route/tier/stage slot.
func (r *SplitPointRepo) Upsert(ctx context.Context, sp *domain.SplitPoint) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO split_points (route_id, tier, stage_number, location_name, location, distance_km)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326)::geography, $7)
		ON CONFLICT (route_id, tier, stage_number) DO UPDATE
		SET location_name = EXCLUDED.location_name,
		    location = EXCLUDED.location,
		    distance_km = EXCLUDED.distance_km
		RETURNING id
	`, sp.RouteID, sp.Tier, sp.StageNumber, sp.LocationName,
		sp.Location.Lon, sp.Location.Lat, sp.DistanceKm,
	).Scan(&sp.ID)
}

// ListByRoute returns the overrides for one route and tier, in stage order.
func (r *SplitPointRepo) ListByRoute(ctx context.Context, routeID string, tier domain.TourTier) ([]domain.SplitPoint, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, route_id, tier, stage_number, location_name,
		       ST_X(location::geometry), ST_Y(location::geometry),
		       distance_km, created_at
		FROM split_points
		WHERE route_id = $1 AND tier = $2
		ORDER BY stage_number
	`, routeID, tier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sps []domain.SplitPoint
	for rows.Next() {
		var sp domain.SplitPoint
		if err := rows.Scan(
			&sp.ID, &sp.RouteID, &sp.Tier, &sp.StageNumber, &sp.LocationName,
			&sp.Location.Lon, &sp.Location.Lat,
			&sp.DistanceKm, &sp.CreatedAt,
		); err != nil {
			return nil, err
		}
		sps = append(sps, sp)
	}
	return sps, rows.Err()
}

// Delete removes one override.
func (r *SplitPointRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM split_points WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
