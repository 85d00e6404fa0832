package distance

import (
	"bytes"
	"context"
	"distance-service/internal/domain"
	"distance-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPDistanceProvider implements the provider contract against a remote
// road-distance API.
//
// It coordinates:
//   - request construction with auth headers
//   - retry/backoff on transient failures
//   - response decoding and validation
//
// The provider is safe for concurrent use.
type HTTPDistanceProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewHTTPDistanceProvider(baseURL, apiKey string) (*HTTPDistanceProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("distance API base URL is empty")
	}

	return &HTTPDistanceProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type coordinatePayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type distanceRequest struct {
	From coordinatePayload `json:"from"`
	To   coordinatePayload `json:"to"`
}

type distanceResponse struct {
	Meters int `json:"meters"`
}

type lastUpdateResponse struct {
	LastUpdate time.Time `json:"last_update"`
}

func (p *HTTPDistanceProvider) FetchDistanceMeters(ctx context.Context, from, to domain.Coordinate) (_ int, err error) {
	defer obs.Time(ctx, "http.fetch_distance")(&err)

	if err := from.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}
	if err := to.Validate(); err != nil {
		return 0, fmt.Errorf("fetch distance: %w", err)
	}

	payload, err := json.Marshal(distanceRequest{
		From: coordinatePayload{Lat: from.Lat, Lon: from.Lon},
		To:   coordinatePayload{Lat: to.Lat, Lon: to.Lon},
	})
	if err != nil {
		return 0, fmt.Errorf("marshal distance request: %w", err)
	}

	endpoint := p.baseURL + "/v1/distances"
	resp, err := p.sendWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return 0, fmt.Errorf("distance request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return 0, fmt.Errorf("decode distance response: %w", err)
	}
	if dr.Meters < 0 {
		return 0, fmt.Errorf("distance response meters=%d is negative", dr.Meters)
	}

	return dr.Meters, nil
}

func (p *HTTPDistanceProvider) LastRoadNetworkUpdate(ctx context.Context) (_ time.Time, err error) {
	defer obs.Time(ctx, "http.last_update")(&err)

	endpoint := p.baseURL + "/v1/road-network/last-update"
	resp, err := p.sendWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("last update request failed: %w", err)
	}
	defer resp.Body.Close()

	var lr lastUpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return time.Time{}, fmt.Errorf("decode last update response: %w", err)
	}
	if lr.LastUpdate.IsZero() {
		return time.Time{}, errors.New("last update response has no timestamp")
	}

	return lr.LastUpdate, nil
}
