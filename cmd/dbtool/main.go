package main

import (
	"context"
	"database/sql"
	"distance-service/internal/adapters/repositories"
	"distance-service/internal/config"
	"distance-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool prepares the Postgres backend: it creates the road-distance schema
// and loads a seed file. Re-running it with fresh data bumps the road network
// update timestamp, which makes the service refresh cached distances.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()

	pool, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/distances.json")
	if err := initAndSeed(ctx, pool, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, pool *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, pool); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Println("Seeding road distances...")
	if err := repositories.SeedFromJSON(ctx, pool, seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")

	return nil
}
