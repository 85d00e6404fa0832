package ports

import (
	"distance-service/internal/domain"
	"time"
)

// Read-only view of cache and provider usage. All methods report values
// accumulated since the service started and are safe to call concurrently
// with lookups.
type Metrics interface {
	// Return the number of distance entries currently held in the cache.
	CacheSize() int
	// Return how many lookups had to go to the provider.
	CacheMisses() int64
	// Return how many provider fetches have been executed.
	ExecutionCount() int64
	// Return the longest single provider fetch observed.
	MaxExecutionTime() time.Duration
	// Return the mean provider fetch duration, zero if nothing ran yet.
	AvgExecutionTime() time.Duration
	// Return the n most frequently requested coordinates, most popular first.
	TopCoordinates(n int) []domain.Coordinate
}
