package api

import (
	"context"
	"distance-service/internal/domain"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticFinder struct {
	meters int
}

func (f *staticFinder) DistanceInMeters(_ context.Context, _, _ domain.Coordinate) (int, error) {
	return f.meters, nil
}

type staticMetrics struct{}

func (staticMetrics) CacheSize() int {
	return 1
}

func (staticMetrics) CacheMisses() int64 {
	return 1
}

func (staticMetrics) ExecutionCount() int64 {
	return 1
}

func (staticMetrics) MaxExecutionTime() time.Duration {
	return time.Millisecond
}

func (staticMetrics) AvgExecutionTime() time.Duration {
	return time.Millisecond
}

func (staticMetrics) TopCoordinates(int) []domain.Coordinate {
	return nil
}

func TestRouterRoutes(t *testing.T) {
	router := NewRouter(&staticFinder{meters: 1200}, staticMetrics{})

	for _, tc := range []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/distance?from_lat=52.52&from_lon=13.405&to_lat=48.1371&to_lon=11.5754", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nope", http.StatusNotFound},
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("GET %s: status = %d, want %d", tc.path, w.Code, tc.want)
		}
	}
}

func TestRouterServesDistanceBody(t *testing.T) {
	router := NewRouter(&staticFinder{meters: 1200}, staticMetrics{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/distance?from_lat=52.52&from_lon=13.405&to_lat=48.1371&to_lon=11.5754", nil)
	router.ServeHTTP(w, req)

	var res map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if string(res["meters"]) != "1200" {
		t.Errorf("meters = %s, want 1200", res["meters"])
	}
}
