package distance

import (
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastUpdateKey = "roadnet:last_update"

// RedisDistanceProvider serves road distances from a Redis instance filled
// by an offline precompute job.
//
// dist:<from>:<to> holds the distance in meters as a decimal string, where
// from and to render as "lat,lon". roadnet:last_update holds the network's
// last update time in RFC3339.
type RedisDistanceProvider struct {
	Client *redis.Client
}

func NewRedisDistanceProvider(client *redis.Client) *RedisDistanceProvider {
	return &RedisDistanceProvider{Client: client}
}

func distanceKey(from, to domain.Coordinate) string {
	return "dist:" + from.String() + ":" + to.String()
}

func (p *RedisDistanceProvider) FetchDistanceMeters(ctx context.Context, from, to domain.Coordinate) (_ int, err error) {
	defer obs.Time(ctx, "redis.fetch_distance")(&err)

	if p.Client == nil {
		return 0, errors.New("redis distance provider: client is nil")
	}
	if err := from.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}
	if err := to.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}

	key := distanceKey(from, to)
	raw, err := p.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("fetch distance: no road distance for %s -> %s", from, to)
	}
	if err != nil {
		return 0, fmt.Errorf("fetch distance: get %s: %w", key, err)
	}

	meters, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("fetch distance: parse %s value %q: %w", key, raw, err)
	}

	return meters, nil
}

func (p *RedisDistanceProvider) LastRoadNetworkUpdate(ctx context.Context) (_ time.Time, err error) {
	defer obs.Time(ctx, "redis.last_update")(&err)

	if p.Client == nil {
		return time.Time{}, errors.New("redis distance provider: client is nil")
	}

	raw, err := p.Client.Get(ctx, lastUpdateKey).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, fmt.Errorf("last road network update: %s not set", lastUpdateKey)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("last road network update: get %s: %w", lastUpdateKey, err)
	}

	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("last road network update: parse %q: %w", raw, err)
	}

	return last, nil
}
