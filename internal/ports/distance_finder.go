package ports

import (
	"context"
	"distance-service/internal/domain"
)

// Port: the distance lookup surface consumed by callers such as the API
// layer. Implementations answer from a cache where possible and fall back
// to a DistanceProvider otherwise.
type DistanceFinder interface {
	// Return the road distance in meters between two coordinates.
	DistanceInMeters(ctx context.Context, from, to domain.Coordinate) (int, error)
}
