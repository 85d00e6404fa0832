package api

import (
	"distance-service/internal/api/handlers"
	"distance-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(finder ports.DistanceFinder, metrics ports.Metrics) http.Handler {
	mux := http.NewServeMux()

	distanceHandler := &handlers.DistanceHandler{Finder: finder}
	metricsHandler := &handlers.MetricsHandler{Metrics: metrics}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/distance", distanceHandler.Get)
	mux.HandleFunc("/metrics", metricsHandler.Get)

	return loggingMiddleware(mux)
}
