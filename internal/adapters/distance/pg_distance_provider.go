package distance

import (
	"context"
	"database/sql"
	"distance-service/internal/domain"
	"distance-service/internal/platform/obs"
	"errors"
	"fmt"
	"time"
)

// PGDistanceProvider serves road distances from the Postgres road_distances
// table, with the network's last update time kept in road_network_meta.
// It backs deployments where distances are precomputed by an offline job.
type PGDistanceProvider struct {
	DB *sql.DB
}

func NewPGDistanceProvider(db *sql.DB) *PGDistanceProvider {
	return &PGDistanceProvider{DB: db}
}

func (p *PGDistanceProvider) FetchDistanceMeters(ctx context.Context, from, to domain.Coordinate) (_ int, err error) {
	defer obs.Time(ctx, "pg.fetch_distance")(&err)

	if p.DB == nil {
		return 0, errors.New("pg distance provider: db is nil")
	}
	if err := from.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}
	if err := to.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}

	q := `
	SELECT distance_meters
	FROM road_distances
	WHERE from_lat = $1 AND from_lon = $2
		AND to_lat = $3 AND to_lon = $4;
	`

	var meters int
	err = p.DB.QueryRowContext(ctx, q, from.Lat, from.Lon, to.Lat, to.Lon).Scan(&meters)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("fetch distance: no road distance for %s -> %s", from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("fetch distance: query road_distances table: %w", err)
	}

	return meters, nil
}

func (p *PGDistanceProvider) LastRoadNetworkUpdate(ctx context.Context) (_ time.Time, err error) {
	defer obs.Time(ctx, "pg.last_update")(&err)

	if p.DB == nil {
		return time.Time{}, errors.New("pg distance provider: db is nil")
	}

	q := `SELECT last_update FROM road_network_meta WHERE id = 1;`

	var last time.Time
	if err := p.DB.QueryRowContext(ctx, q).Scan(&last); err != nil {
		return time.Time{}, fmt.Errorf("last road network update: query road_network_meta table: %w", err)
	}

	return last, nil
}
