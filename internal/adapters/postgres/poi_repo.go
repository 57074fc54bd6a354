package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mkellerer/alpenroute/internal/core/domain"
)

// POIRepo implements ports.POIRepository with pgx and PostGIS.
type POIRepo struct {
	db *DB
}

// NewPOIRepo creates a new POIRepo.
func NewPOIRepo(db *DB) *POIRepo {
	return &POIRepo{db: db}
}

// Upsert inserts or updates a POI, keyed by (name, type).
func (r *POIRepo) Upsert(ctx context.Context, p *domain.POI) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO pois (name, type, location, images, amenities, best_time, metadata)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8)
		ON CONFLICT (name, type) DO UPDATE
		SET location = EXCLUDED.location, images = EXCLUDED.images,
		    amenities = EXCLUDED.amenities, best_time = EXCLUDED.best_time,
		    metadata = EXCLUDED.metadata
		RETURNING id
	`, p.Name, p.Type, p.Location.Lon, p.Location.Lat,
		p.Images, p.Amenities, p.BestTime, p.Metadata,
	).Scan(&p.ID)
}

// GetByID returns a POI by UUID.
func (r *POIRepo) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	var p domain.POI
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, type,
		       ST_X(location::geometry), ST_Y(location::geometry),
		       COALESCE(images, '{}'), COALESCE(amenities, '{}'),
		       COALESCE(best_time, ''), COALESCE(metadata, '{}'), created_at
		FROM pois WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Type,
		&p.Location.Lon, &p.Location.Lat,
		&p.Images, &p.Amenities, &p.BestTime, &p.Metadata, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindNearby returns POIs within radiusMeters using PostGIS ST_DWithin,
// closest first, with the straight-line distance filled in.
func (r *POIRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.POI, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, type,
		       ST_X(location::geometry), ST_Y(location::geometry),
		       COALESCE(images, '{}'), COALESCE(amenities, '{}'),
		       COALESCE(best_time, ''), COALESCE(metadata, '{}'),
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance,
		       created_at
		FROM pois
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPOIRows(rows, true)
}

// ListByType returns POIs of one type, alphabetically.
func (r *POIRepo) ListByType(ctx context.Context, poiType string, limit int) ([]domain.POI, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, type,
		       ST_X(location::geometry), ST_Y(location::geometry),
		       COALESCE(images, '{}'), COALESCE(amenities, '{}'),
		       COALESCE(best_time, ''), COALESCE(metadata, '{}'), created_at
		FROM pois
		WHERE type = $1
		ORDER BY name
		LIMIT $2
	`, poiType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPOIRows(rows, false)
}

func scanPOIRows(rows pgx.Rows, withDistance bool) ([]domain.POI, error) {
	var pois []domain.POI
	for rows.Next() {
		var p domain.POI
		var dist float64

		dest := []any{
			&p.ID, &p.Name, &p.Type,
			&p.Location.Lon, &p.Location.Lat,
			&p.Images, &p.Amenities, &p.BestTime, &p.Metadata,
		}
		if withDistance {
			dest = append(dest, &dist)
		}
		dest = append(dest, &p.CreatedAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if withDistance {
			d := dist
			p.Distance = &d
		}
		pois = append(pois, p)
	}
	return pois, rows.Err()
}
