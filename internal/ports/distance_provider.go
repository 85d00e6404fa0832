package ports

import (
	"context"
	"distance-service/internal/domain"
	"time"
)

// Contract for the remote road-network service that computes distances.
// Implementations must be safe for concurrent use.
type DistanceProvider interface {
	// Return the road distance in meters between two coordinates.
	FetchDistanceMeters(ctx context.Context, from, to domain.Coordinate) (int, error)
	// Return the time of the most recent road network update.
	LastRoadNetworkUpdate(ctx context.Context) (time.Time, error)
}
