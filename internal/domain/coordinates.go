package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Immutable geographic point (latitude, longitude) in decimal degrees.
// Coordinate is a plain value type so it can be used directly as a map key:
// two coordinates naming the same point compare equal.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Validate that the coordinate names a usable point on the road network.
// NaN never compares equal to itself, which would make the value unusable
// as a cache key, so it is rejected along with infinities and degrees
// outside the geographic range.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
		return errors.New("validate coordinate: lat/lon must not be NaN")
	}
	if math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return errors.New("validate coordinate: lat/lon must be finite")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("validate coordinate: latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("validate coordinate: longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// Render as "lat,lon" using the shortest decimal form that round-trips.
// The result is stable for a given coordinate and safe for use in log
// lines and storage keys.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
