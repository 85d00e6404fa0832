package domain

import (
	"math"
	"testing"
)

func TestCoordinateValidate(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 52.52, Lon: 13.405},
		{Lat: -90, Lon: -180},
		{Lat: 90, Lon: 180},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%v) returned error: %v", c, err)
		}
	}

	invalid := []Coordinate{
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.NaN()},
		{Lat: math.Inf(1), Lon: 0},
		{Lat: 0, Lon: math.Inf(-1)},
		{Lat: 90.1, Lon: 0},
		{Lat: -90.1, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: 0, Lon: -181},
	}
	for _, c := range invalid {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%v) expected error, got nil", c)
		}
	}
}

func TestCoordinateString(t *testing.T) {
	if got := (Coordinate{Lat: 52.52, Lon: 13.405}).String(); got != "52.52,13.405" {
		t.Errorf("String() = %q, want %q", got, "52.52,13.405")
	}
	if got := (Coordinate{Lat: -33.8688, Lon: 151.2093}).String(); got != "-33.8688,151.2093" {
		t.Errorf("String() = %q, want %q", got, "-33.8688,151.2093")
	}
}
