package services

import (
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// fetchEntry is the single-flight handle for one (from, to) pair.
//
// meters, err and computedAt are written exactly once by the fetching
// goroutine before done is closed. Readers must observe done closed before
// touching the other fields.
type fetchEntry struct {
	done       chan struct{}
	meters     int
	err        error
	computedAt time.Time
}

func newFetchEntry() *fetchEntry {
	return &fetchEntry{done: make(chan struct{})}
}

// Report whether the underlying fetch has completed, without blocking.
func (e *fetchEntry) isDone() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// DistanceService memoizes road distances from a DistanceProvider.
//
// It coordinates:
//   - per-pair deduplication of concurrent fetches, so any number of callers
//     asking for the same (from, to) share one provider call
//   - lazy invalidation against the road-network update time observed by a
//     background freshness poll, so stale entries are refetched on first use
//   - usage counters exposed through the Metrics accessor
//
// Entries are never mutated once complete. A stale or failed entry is
// superseded by a brand-new handle; replacement is a compare-and-swap on the
// pair's slot, so racing callers converge on a single winner.
type DistanceService struct {
	provider ports.DistanceProvider

	// cache maps domain.Coordinate -> *sync.Map of
	// domain.Coordinate -> *fetchEntry.
	cache sync.Map

	freshness *freshnessState
	tracker   *freshnessTracker
	metrics   *metricsCollector

	fetchTimeout time.Duration
	pollTimeout  time.Duration
}

// Option configures a DistanceService at construction time.
type Option func(*DistanceService) error

// Bound every provider fetch by the given timeout. Zero leaves fetches
// unbounded, which is only sensible when the provider enforces its own
// deadline.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *DistanceService) error {
		if d < 0 {
			return fmt.Errorf("fetch timeout must not be negative, got %v", d)
		}
		s.fetchTimeout = d
		return nil
	}
}

// Bound each freshness poll by the given timeout instead of the default,
// which is the polling interval itself.
func WithPollTimeout(d time.Duration) Option {
	return func(s *DistanceService) error {
		if d <= 0 {
			return fmt.Errorf("poll timeout must be positive, got %v", d)
		}
		s.pollTimeout = d
		return nil
	}
}

// NewDistanceService builds the memoizing cache around provider and starts
// the background freshness poll on the given interval. The first poll runs
// one full interval after construction; until then every entry computed
// after construction is considered fresh.
//
// Callers own the returned service and must Close it to stop the poll.
func NewDistanceService(provider ports.DistanceProvider, updateCheckInterval time.Duration, opts ...Option) (*DistanceService, error) {
	if provider == nil {
		return nil, errors.New("new distance service: provider must be non-nil")
	}
	if updateCheckInterval <= 0 {
		return nil, fmt.Errorf("new distance service: update check interval must be positive, got %v", updateCheckInterval)
	}

	s := &DistanceService{
		provider:  provider,
		freshness: newFreshnessState(),
	}
	s.metrics = newMetricsCollector(&s.cache)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("new distance service: %w", err)
		}
	}
	if s.pollTimeout == 0 {
		s.pollTimeout = updateCheckInterval
	}

	s.tracker = newFreshnessTracker(provider, s.freshness, updateCheckInterval, s.pollTimeout)
	s.tracker.start()
	return s, nil
}

// DistanceInMeters returns the road distance between from and to, serving
// from the cache when a fresh entry exists and delegating to the provider
// otherwise. Concurrent callers for the same pair share a single provider
// call and all receive its result, value or error alike.
//
// The call blocks until the pair's fetch completes or ctx is done. A caller
// abandoning the wait does not cancel the shared fetch; its result stays
// cached for everyone else.
func (s *DistanceService) DistanceInMeters(ctx context.Context, from, to domain.Coordinate) (int, error) {
	if err := from.Validate(); err != nil {
		return 0, fmt.Errorf("distance lookup: %w", err)
	}
	if err := to.Validate(); err != nil {
		return 0, fmt.Errorf("distance lookup: %w", err)
	}
	s.metrics.recordRequest(from, to)

	entry := s.entryFor(from, to)

	select {
	case <-entry.done:
	case <-ctx.Done():
		return 0, fmt.Errorf("distance lookup from %s to %s: %w", from, to, ctx.Err())
	}
	if entry.err != nil {
		return 0, entry.err
	}
	return entry.meters, nil
}

// Metrics exposes usage counters for the service.
func (s *DistanceService) Metrics() ports.Metrics { return s.metrics }

// Close stops the background freshness poll and waits for it to exit.
// In-flight fetches are left to complete on their own. Safe to call more
// than once.
func (s *DistanceService) Close() {
	s.tracker.stop()
}

// entryFor resolves the single-flight handle for (from, to), installing a
// new one when the slot is empty, stale or failed.
//
// The slot transition is a LoadOrStore for empty slots and a CompareAndSwap
// against the observed entry otherwise. Either way exactly one racing caller
// installs the new handle and triggers the fetch; the rest loop, observe the
// winner's handle and wait on it.
func (s *DistanceService) entryFor(from, to domain.Coordinate) *fetchEntry {
	inner := s.innerFor(from)

	for {
		cur, ok := inner.Load(to)
		if !ok {
			fresh := newFetchEntry()
			actual, loaded := inner.LoadOrStore(to, fresh)
			if !loaded {
				s.metrics.recordMiss()
				s.startFetch(inner, fresh, from, to)
				return fresh
			}
			cur = actual
		}

		entry := cur.(*fetchEntry)
		if !entry.isDone() {
			// Join the in-flight fetch.
			s.metrics.recordMiss()
			return entry
		}
		if entry.err == nil && !entry.computedAt.Before(s.freshness.last()) {
			return entry
		}

		// Done but stale or failed: supersede the entry. Losing the swap
		// means another caller already installed a replacement, so loop and
		// converge on theirs.
		fresh := newFetchEntry()
		if inner.CompareAndSwap(to, entry, fresh) {
			s.metrics.recordMiss()
			s.startFetch(inner, fresh, from, to)
			return fresh
		}
	}
}

// innerFor returns the destination map for an origin, creating it on first
// use. Creation is idempotent under races.
func (s *DistanceService) innerFor(from domain.Coordinate) *sync.Map {
	if m, ok := s.cache.Load(from); ok {
		return m.(*sync.Map)
	}
	m, _ := s.cache.LoadOrStore(from, &sync.Map{})
	return m.(*sync.Map)
}

// startFetch runs the provider call for entry in its own goroutine.
//
// The fetch deliberately does not inherit any caller's context: the result
// is shared state, and one caller giving up must not fail the others. On
// failure the slot is released again so a later lookup can retry instead of
// waiting out a full staleness window.
func (s *DistanceService) startFetch(inner *sync.Map, entry *fetchEntry, from, to domain.Coordinate) {
	go func() {
		ctx := context.Background()
		if s.fetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
			defer cancel()
		}

		start := time.Now()
		meters, err := s.provider.FetchDistanceMeters(ctx, from, to)
		s.metrics.recordExecution(time.Since(start))

		if err != nil {
			entry.err = fmt.Errorf("fetch distance from %s to %s: %w", from, to, err)
		} else {
			entry.meters = meters
		}
		entry.computedAt = time.Now()
		close(entry.done)

		if err != nil {
			inner.CompareAndDelete(to, entry)
			log.Printf("distance fetch failed from=%s to=%s err=%v", from, to, err)
		}
	}()
}
