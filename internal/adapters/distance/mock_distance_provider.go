package distance

import (
	"context"
	"distance-service/internal/domain"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Seeded (from, to) pair with its expected road distance.
type MockPair struct {
	From, To domain.Coordinate
	Meters   int
}

type mockKey struct {
	from, to domain.Coordinate
}

// MockDistanceProvider serves distances from a seeded in-memory table and
// counts every fetch per pair. The reported road-network update time is
// settable, so tests can simulate a remote data refresh, and an optional
// per-fetch delay simulates remote latency.
type MockDistanceProvider struct {
	m map[mockKey]int

	delay       atomic.Duration
	lastUpdate  atomic.Time
	updateCalls atomic.Int64

	calls sync.Map // mockKey -> *atomic.Int64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[mockKey]int, len(pairs))
	for _, p := range pairs {
		m[mockKey{from: p.From, to: p.To}] = p.Meters
	}
	p := &MockDistanceProvider{m: m}
	p.lastUpdate.Store(time.Now())
	return p
}

func (p *MockDistanceProvider) FetchDistanceMeters(ctx context.Context, from, to domain.Coordinate) (int, error) {
	p.countFetch(from, to)

	if d := p.delay.Load(); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	meters, ok := p.m[mockKey{from: from, to: to}]
	if !ok {
		return 0, fmt.Errorf("mock distance provider: no seeded pair %s -> %s", from, to)
	}
	return meters, nil
}

func (p *MockDistanceProvider) LastRoadNetworkUpdate(ctx context.Context) (time.Time, error) {
	p.updateCalls.Inc()
	return p.lastUpdate.Load(), nil
}

// SetLastRoadNetworkUpdate changes the update time reported to pollers.
func (p *MockDistanceProvider) SetLastRoadNetworkUpdate(t time.Time) {
	p.lastUpdate.Store(t)
}

// SetDelay makes every subsequent fetch take at least d.
func (p *MockDistanceProvider) SetDelay(d time.Duration) {
	p.delay.Store(d)
}

// FetchCalls returns how many times the given pair has been fetched.
func (p *MockDistanceProvider) FetchCalls(from, to domain.Coordinate) int64 {
	v, ok := p.calls.Load(mockKey{from: from, to: to})
	if !ok {
		return 0
	}
	return v.(*atomic.Int64).Load()
}

// TotalFetchCalls sums the fetch counts over all pairs.
func (p *MockDistanceProvider) TotalFetchCalls() int64 {
	var n int64
	p.calls.Range(func(_, v any) bool {
		n += v.(*atomic.Int64).Load()
		return true
	})
	return n
}

// UpdateCalls returns how many times the update time has been queried.
func (p *MockDistanceProvider) UpdateCalls() int64 {
	return p.updateCalls.Load()
}

func (p *MockDistanceProvider) countFetch(from, to domain.Coordinate) {
	k := mockKey{from: from, to: to}
	v, ok := p.calls.Load(k)
	if !ok {
		v, _ = p.calls.LoadOrStore(k, atomic.NewInt64(0))
	}
	v.(*atomic.Int64).Inc()
}
