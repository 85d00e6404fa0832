package services

import (
	"context"
	"distance-service/internal/adapters/distance"
	"sync"
	"testing"
	"time"
)

func TestMetricsCountsMissesAndSize(t *testing.T) {
	a, b, c := coord(52.52, 13.405), coord(48.1371, 11.5754), coord(50.1109, 8.6821)
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: a, To: b, Meters: 504000},
		{From: a, To: c, Meters: 545000},
	})
	svc := mustService(t, provider, time.Hour)
	m := svc.Metrics()

	if n := m.CacheSize(); n != 0 {
		t.Errorf("initial cache size = %d, want 0", n)
	}

	if _, err := svc.DistanceInMeters(context.Background(), a, b); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if n := m.CacheMisses(); n != 1 {
		t.Errorf("misses after first lookup = %d, want 1", n)
	}
	if n := m.ExecutionCount(); n != 1 {
		t.Errorf("executions after first lookup = %d, want 1", n)
	}
	if n := m.CacheSize(); n != 1 {
		t.Errorf("cache size after first lookup = %d, want 1", n)
	}

	// A repeat lookup is a hit and changes nothing.
	if _, err := svc.DistanceInMeters(context.Background(), a, b); err != nil {
		t.Fatalf("repeat lookup: %v", err)
	}
	if n := m.CacheMisses(); n != 1 {
		t.Errorf("misses after repeat lookup = %d, want 1", n)
	}

	if _, err := svc.DistanceInMeters(context.Background(), a, c); err != nil {
		t.Fatalf("second pair lookup: %v", err)
	}
	if n := m.CacheMisses(); n != 2 {
		t.Errorf("misses after second pair = %d, want 2", n)
	}
	if n := m.CacheSize(); n != 2 {
		t.Errorf("cache size after second pair = %d, want 2", n)
	}

	// a was requested three times, b twice, c once.
	top := m.TopCoordinates(1)
	if len(top) != 1 || top[0] != a {
		t.Errorf("TopCoordinates(1) = %v, want [%v]", top, a)
	}
}

func TestMetricsExecutionTiming(t *testing.T) {
	m := newMetricsCollector(&sync.Map{})

	if got := m.AvgExecutionTime(); got != 0 {
		t.Errorf("avg with no executions = %v, want 0", got)
	}

	m.recordExecution(10 * time.Millisecond)
	m.recordExecution(30 * time.Millisecond)
	m.recordExecution(20 * time.Millisecond)

	if got := m.ExecutionCount(); got != 3 {
		t.Errorf("execution count = %d, want 3", got)
	}
	if got := m.MaxExecutionTime(); got != 30*time.Millisecond {
		t.Errorf("max execution time = %v, want 30ms", got)
	}
	if got := m.AvgExecutionTime(); got != 20*time.Millisecond {
		t.Errorf("avg execution time = %v, want 20ms", got)
	}
}

func TestMetricsTopCoordinates(t *testing.T) {
	m := newMetricsCollector(&sync.Map{})
	a, b, c := coord(1, 1), coord(2, 2), coord(3, 3)

	m.recordRequest(a, b)
	m.recordRequest(a, c)
	m.recordRequest(a, b)

	top := m.TopCoordinates(2)
	if len(top) != 2 || top[0] != a || top[1] != b {
		t.Errorf("TopCoordinates(2) = %v, want [%v %v]", top, a, b)
	}
	if got := m.TopCoordinates(0); len(got) != 0 {
		t.Errorf("TopCoordinates(0) = %v, want empty", got)
	}
	if got := m.TopCoordinates(10); len(got) != 3 {
		t.Errorf("TopCoordinates(10) returned %d coordinates, want 3", len(got))
	}

	// Equal counts order by latitude, then longitude.
	m.recordRequest(c)
	top = m.TopCoordinates(3)
	if len(top) != 3 || top[1] != b || top[2] != c {
		t.Errorf("TopCoordinates(3) = %v, want [%v %v %v]", top, a, b, c)
	}
}
