package services

import (
	"context"
	"distance-service/internal/ports"
	"log"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// freshnessState holds the most recently observed road-network update time.
//
// The tracker goroutine is the sole writer, cache lookups are the readers.
// It starts at construction time, so nothing is considered stale until the
// remote side reports an update that happened after the service came up.
type freshnessState struct {
	lastUpdate atomic.Time
}

func newFreshnessState() *freshnessState {
	s := &freshnessState{}
	s.lastUpdate.Store(time.Now())
	return s
}

// Return the last known road-network update time.
func (s *freshnessState) last() time.Time { return s.lastUpdate.Load() }

// Record a newly observed update time. The latest observation always wins,
// there is no merging with the previous value.
func (s *freshnessState) observe(t time.Time) { s.lastUpdate.Store(t) }

// freshnessTracker polls the provider for the road-network update time on a
// fixed interval and publishes every observed value into freshnessState.
// The first poll happens one full interval after start, not immediately.
type freshnessTracker struct {
	provider    ports.DistanceProvider
	state       *freshnessState
	interval    time.Duration
	pollTimeout time.Duration

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func newFreshnessTracker(provider ports.DistanceProvider, state *freshnessState, interval, pollTimeout time.Duration) *freshnessTracker {
	return &freshnessTracker{
		provider:    provider,
		state:       state,
		interval:    interval,
		pollTimeout: pollTimeout,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

func (t *freshnessTracker) start() {
	go t.run()
}

func (t *freshnessTracker) run() {
	defer close(t.doneCh)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.poll()
		case <-t.stopCh:
			return
		}
	}
}

// poll queries the provider once. A failed poll keeps the previous value
// and never stops the loop.
func (t *freshnessTracker) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), t.pollTimeout)
	defer cancel()

	last, err := t.provider.LastRoadNetworkUpdate(ctx)
	if err != nil {
		log.Printf("freshness poll failed, keeping last known value err=%v", err)
		return
	}
	t.state.observe(last)
}

// stop halts polling and waits for the loop to exit. Safe to call more
// than once.
func (t *freshnessTracker) stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	<-t.doneCh
}
