package main

import (
	"context"
	"distance-service/internal/adapters/distance"
	"distance-service/internal/api"
	"distance-service/internal/config"
	"distance-service/internal/platform/db"
	"distance-service/internal/ports"
	"distance-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the configured distance backend behind ports, wraps it in the
// caching service and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	backend := config.Get("DISTANCE_BACKEND", "postgres")
	interval := config.GetDuration("UPDATE_CHECK_INTERVAL", 10*time.Minute)
	fetchTimeout := config.GetDuration("FETCH_TIMEOUT", 30*time.Second)

	ctx := context.Background()

	provider, cleanup, err := buildProvider(ctx, backend)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	svc, err := services.NewDistanceService(provider, interval,
		services.WithFetchTimeout(fetchTimeout),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer svc.Close()

	router := api.NewRouter(svc, svc.Metrics())

	// WriteTimeout leaves room for a cold lookup against a slow backend.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s backend=%s interval=%s", port, backend, interval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shut down: %v", err)
	}
	log.Println("server stopped")
}

// buildProvider constructs the distance backend named by DISTANCE_BACKEND
// together with a cleanup func for its underlying connection.
func buildProvider(ctx context.Context, backend string) (ports.DistanceProvider, func(), error) {
	switch backend {
	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, errors.New("DATABASE_URL is required for the postgres backend")
		}

		pool, err := db.Open(ctx, databaseURL)
		if err != nil {
			return nil, nil, err
		}
		return distance.NewPGDistanceProvider(pool), func() { pool.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.Get("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       config.GetInt("REDIS_DB", 0),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("verify redis connection: %w", err)
		}
		return distance.NewRedisDistanceProvider(client), func() { client.Close() }, nil

	case "http":
		provider, err := distance.NewHTTPDistanceProvider(
			os.Getenv("DISTANCE_API_URL"),
			os.Getenv("DISTANCE_API_KEY"),
		)
		if err != nil {
			return nil, nil, err
		}
		return provider, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown DISTANCE_BACKEND %q (want postgres, redis or http)", backend)
	}
}
