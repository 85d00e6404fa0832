package handlers

import (
	"distance-service/internal/api/dto"
	"distance-service/internal/domain"
	"distance-service/internal/ports"
	"log"
	"net/http"
	"strconv"
)

// DistanceHandler serves cached road-distance lookups.
type DistanceHandler struct {
	Finder ports.DistanceFinder
}

func (h *DistanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	from, ok := coordinateParam(w, r, "from_lat", "from_lon")
	if !ok {
		return
	}
	to, ok := coordinateParam(w, r, "to_lat", "to_lon")
	if !ok {
		return
	}

	meters, err := h.Finder.DistanceInMeters(r.Context(), from, to)
	if err != nil {
		log.Printf("distance lookup failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "distance lookup failed")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.DistanceResponse{
		From:   dto.CoordinatePayload{Lat: from.Lat, Lon: from.Lon},
		To:     dto.CoordinatePayload{Lat: to.Lat, Lon: to.Lon},
		Meters: meters,
	})
}

// coordinateParam reads one lat/lon query pair and answers with a 400 on
// missing or invalid input.
func coordinateParam(w http.ResponseWriter, r *http.Request, latKey, lonKey string) (domain.Coordinate, bool) {
	q := r.URL.Query()

	latRaw := q.Get(latKey)
	lonRaw := q.Get(lonKey)
	if latRaw == "" || lonRaw == "" {
		writeError(w, r, http.StatusBadRequest, latKey+" and "+lonKey+" are required")
		return domain.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, latKey+" must be a number")
		return domain.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(lonRaw, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, lonKey+" must be a number")
		return domain.Coordinate{}, false
	}

	c := domain.Coordinate{Lat: lat, Lon: lon}
	if err := c.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.Coordinate{}, false
	}

	return c, true
}
