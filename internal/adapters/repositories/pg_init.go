package repositories

import (
	"context"
	"database/sql"
	"distance-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Initialize the Postgres schema for the road-network tables. The meta row
// is created with the current time, so a freshly initialized database does
// not immediately invalidate running caches.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDistancesQuery := `
	CREATE TABLE IF NOT EXISTS road_distances (
        from_lat DOUBLE PRECISION NOT NULL,
        from_lon DOUBLE PRECISION NOT NULL,
        to_lat DOUBLE PRECISION NOT NULL,
        to_lon DOUBLE PRECISION NOT NULL,
        distance_meters INTEGER NOT NULL,
        PRIMARY KEY (from_lat, from_lon, to_lat, to_lon)
    );
	`

	createMetaQuery := `
	CREATE TABLE IF NOT EXISTS road_network_meta (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        last_update TIMESTAMPTZ NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_road_distances_reverse
    ON road_distances(to_lat, to_lon, from_lat, from_lon);
	`

	statements := []string{
		createDistancesQuery,
		createMetaQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	seedMetaQuery := `
	INSERT INTO road_network_meta (id, last_update)
	VALUES (1, $1)
	ON CONFLICT (id) DO NOTHING;
	`
	if _, err := tx.ExecContext(ctx, seedMetaQuery, time.Now().UTC()); err != nil {
		return fmt.Errorf("init schema: seed meta row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DistanceSeed struct {
	FromLat float64 `json:"from_lat"`
	FromLon float64 `json:"from_lon"`
	ToLat   float64 `json:"to_lat"`
	ToLon   float64 `json:"to_lon"`
	Meters  int     `json:"meters"`
}

// Populate road_distances from a JSON file and advance the network's
// last_update marker in the same transaction. Running caches observe the
// new marker on their next poll and refetch touched pairs on first use.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed distances: DB is nil")
	}

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed distances: read %q: %w", jsonPath, err)
	}

	var data []DistanceSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed distances: parse json: %w", err)
	}

	for i, item := range data {
		from := domain.Coordinate{Lat: item.FromLat, Lon: item.FromLon}
		if err := from.Validate(); err != nil {
			return fmt.Errorf("seed distances: item %d from: %w", i+1, err)
		}
		to := domain.Coordinate{Lat: item.ToLat, Lon: item.ToLon}
		if err := to.Validate(); err != nil {
			return fmt.Errorf("seed distances: item %d to: %w", i+1, err)
		}
		if item.Meters < 0 {
			return fmt.Errorf("seed distances: item %d meters=%d is negative", i+1, item.Meters)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed distances: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO road_distances (from_lat, from_lon, to_lat, to_lon, distance_meters)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (from_lat, from_lon, to_lat, to_lon) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed distances: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range data {
		if _, err := stmt.ExecContext(ctx, item.FromLat, item.FromLon, item.ToLat, item.ToLon, item.Meters); err != nil {
			return fmt.Errorf("seed distances: insert item %d: %w", i+1, err)
		}
	}

	markQuery := `UPDATE road_network_meta SET last_update = $1 WHERE id = 1;`
	if _, err := tx.ExecContext(ctx, markQuery, time.Now().UTC()); err != nil {
		return fmt.Errorf("seed distances: mark network update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed distances: commit tx: %w", err)
	}

	return nil
}
