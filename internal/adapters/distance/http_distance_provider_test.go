package distance

import (
	"context"
	"distance-service/internal/domain"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/atomic"
)

func TestHTTPDistanceProviderFetch(t *testing.T) {
	from := domain.Coordinate{Lat: 52.52, Lon: 13.405}
	to := domain.Coordinate{Lat: 48.1371, Lon: 11.5754}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/distances" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var req distanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.From != (coordinatePayload{Lat: from.Lat, Lon: from.Lon}) ||
			req.To != (coordinatePayload{Lat: to.Lat, Lon: to.Lon}) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		json.NewEncoder(w).Encode(distanceResponse{Meters: 504000})
	}))
	defer srv.Close()

	p, err := NewHTTPDistanceProvider(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("NewHTTPDistanceProvider: %v", err)
	}

	got, err := p.FetchDistanceMeters(context.Background(), from, to)
	if err != nil {
		t.Fatalf("FetchDistanceMeters: %v", err)
	}
	if got != 504000 {
		t.Errorf("FetchDistanceMeters = %d, want 504000", got)
	}

	// A pair the remote service does not know yields an error, not a value.
	if _, err := p.FetchDistanceMeters(context.Background(), to, from); err == nil {
		t.Errorf("expected error for unknown pair, got nil")
	}
}

func TestHTTPDistanceProviderRetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Inc() == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(distanceResponse{Meters: 1200})
	}))
	defer srv.Close()

	p, err := NewHTTPDistanceProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceProvider: %v", err)
	}

	got, err := p.FetchDistanceMeters(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}, domain.Coordinate{Lat: 2, Lon: 2})
	if err != nil {
		t.Fatalf("FetchDistanceMeters: %v", err)
	}
	if got != 1200 {
		t.Errorf("FetchDistanceMeters = %d, want 1200", got)
	}
	if n := attempts.Load(); n != 2 {
		t.Errorf("attempts = %d, want 2", n)
	}
}

func TestHTTPDistanceProviderDoesNotRetryClientErrors(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Inc()
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	p, err := NewHTTPDistanceProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceProvider: %v", err)
	}

	if _, err := p.FetchDistanceMeters(context.Background(), domain.Coordinate{Lat: 1, Lon: 1}, domain.Coordinate{Lat: 2, Lon: 2}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if n := attempts.Load(); n != 1 {
		t.Errorf("attempts = %d, want 1", n)
	}
}

func TestHTTPDistanceProviderLastUpdate(t *testing.T) {
	want := time.Date(2026, 8, 17, 3, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/road-network/last-update" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(lastUpdateResponse{LastUpdate: want})
	}))
	defer srv.Close()

	p, err := NewHTTPDistanceProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceProvider: %v", err)
	}

	got, err := p.LastRoadNetworkUpdate(context.Background())
	if err != nil {
		t.Fatalf("LastRoadNetworkUpdate: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("LastRoadNetworkUpdate = %v, want %v", got, want)
	}
}

func TestHTTPDistanceProviderLastUpdateMissingTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	p, err := NewHTTPDistanceProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPDistanceProvider: %v", err)
	}

	if _, err := p.LastRoadNetworkUpdate(context.Background()); err == nil {
		t.Errorf("expected error for missing timestamp, got nil")
	}
}

func TestNewHTTPDistanceProviderValidation(t *testing.T) {
	if _, err := NewHTTPDistanceProvider("", "key"); err == nil {
		t.Errorf("expected error for empty base URL, got nil")
	}
	if _, err := NewHTTPDistanceProvider("   ", "key"); err == nil {
		t.Errorf("expected error for blank base URL, got nil")
	}
}
