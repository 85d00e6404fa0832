package services

import (
	"distance-service/internal/domain"
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// metricsCollector implements ports.Metrics over lock-free counters so the
// lookup hot path never serializes on a stats mutex.
//
// A miss is any lookup that could not be answered from a completed fresh
// entry, whether the caller triggered the fetch or joined one already in
// flight. An execution is one provider call, failed calls included.
type metricsCollector struct {
	// cache is the service's pair map, shared for counting entries.
	cache *sync.Map

	misses     atomic.Int64
	executions atomic.Int64
	totalExec  atomic.Duration
	maxExec    atomic.Duration

	// requests maps domain.Coordinate -> *atomic.Int64 lookup counts.
	// Both endpoints of every lookup are counted.
	requests sync.Map
}

func newMetricsCollector(cache *sync.Map) *metricsCollector {
	return &metricsCollector{cache: cache}
}

func (m *metricsCollector) recordMiss() { m.misses.Inc() }

func (m *metricsCollector) recordExecution(d time.Duration) {
	m.executions.Inc()
	m.totalExec.Add(d)
	for {
		cur := m.maxExec.Load()
		if d <= cur || m.maxExec.CompareAndSwap(cur, d) {
			return
		}
	}
}

func (m *metricsCollector) recordRequest(coords ...domain.Coordinate) {
	for _, c := range coords {
		v, ok := m.requests.Load(c)
		if !ok {
			v, _ = m.requests.LoadOrStore(c, atomic.NewInt64(0))
		}
		v.(*atomic.Int64).Inc()
	}
}

// CacheSize counts the (from, to) entries currently installed, in-flight
// handles included.
func (m *metricsCollector) CacheSize() int {
	n := 0
	m.cache.Range(func(_, v any) bool {
		v.(*sync.Map).Range(func(_, _ any) bool {
			n++
			return true
		})
		return true
	})
	return n
}

func (m *metricsCollector) CacheMisses() int64 { return m.misses.Load() }

func (m *metricsCollector) ExecutionCount() int64 { return m.executions.Load() }

func (m *metricsCollector) MaxExecutionTime() time.Duration { return m.maxExec.Load() }

func (m *metricsCollector) AvgExecutionTime() time.Duration {
	n := m.executions.Load()
	if n == 0 {
		return 0
	}
	return m.totalExec.Load() / time.Duration(n)
}

// TopCoordinates returns the n most frequently requested coordinates, most
// popular first. Ties order by latitude then longitude so repeated calls
// return a stable ranking.
func (m *metricsCollector) TopCoordinates(n int) []domain.Coordinate {
	type coordCount struct {
		coord domain.Coordinate
		count int64
	}

	var all []coordCount
	m.requests.Range(func(k, v any) bool {
		all = append(all, coordCount{
			coord: k.(domain.Coordinate),
			count: v.(*atomic.Int64).Load(),
		})
		return true
	})

	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		if all[i].coord.Lat != all[j].coord.Lat {
			return all[i].coord.Lat < all[j].coord.Lat
		}
		return all[i].coord.Lon < all[j].coord.Lon
	})

	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	out := make([]domain.Coordinate, 0, n)
	for _, cc := range all[:n] {
		out = append(out, cc.coord)
	}
	return out
}
