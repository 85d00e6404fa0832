package handlers

import (
	"distance-service/internal/api/dto"
	"distance-service/internal/ports"
	"net/http"
	"strconv"
)

// MetricsHandler exposes cache and provider usage counters.
type MetricsHandler struct {
	Metrics ports.Metrics
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	top := 5
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "top must be between 0 and 100")
			return
		}
		top = n
	}

	topCoords := h.Metrics.TopCoordinates(top)
	res := dto.MetricsResponse{
		CacheSize:      h.Metrics.CacheSize(),
		CacheMisses:    h.Metrics.CacheMisses(),
		ExecutionCount: h.Metrics.ExecutionCount(),
		MaxExecutionMs: h.Metrics.MaxExecutionTime().Milliseconds(),
		AvgExecutionMs: h.Metrics.AvgExecutionTime().Milliseconds(),
		TopCoordinates: make([]dto.CoordinatePayload, 0, len(topCoords)),
	}
	for _, c := range topCoords {
		res.TopCoordinates = append(res.TopCoordinates, dto.CoordinatePayload{Lat: c.Lat, Lon: c.Lon})
	}

	writeJSON(w, r, http.StatusOK, res)
}
