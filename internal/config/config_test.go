package config

import (
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	t.Setenv("DISTANCE_TEST_STR", "value")

	if got := Get("DISTANCE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("Get set var = %q, want %q", got, "value")
	}
	if got := Get("DISTANCE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Get unset var = %q, want fallback", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("DISTANCE_TEST_INT", "42")
	t.Setenv("DISTANCE_TEST_BAD_INT", "forty-two")

	if got := GetInt("DISTANCE_TEST_INT", 7); got != 42 {
		t.Errorf("GetInt = %d, want 42", got)
	}
	if got := GetInt("DISTANCE_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetInt unparseable = %d, want fallback 7", got)
	}
	if got := GetInt("DISTANCE_TEST_UNSET", 7); got != 7 {
		t.Errorf("GetInt unset = %d, want fallback 7", got)
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("DISTANCE_TEST_DUR", "90s")
	t.Setenv("DISTANCE_TEST_BAD_DUR", "soon")

	if got := GetDuration("DISTANCE_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("GetDuration = %v, want 90s", got)
	}
	if got := GetDuration("DISTANCE_TEST_BAD_DUR", time.Minute); got != time.Minute {
		t.Errorf("GetDuration unparseable = %v, want fallback 1m", got)
	}
	if got := GetDuration("DISTANCE_TEST_UNSET", time.Minute); got != time.Minute {
		t.Errorf("GetDuration unset = %v, want fallback 1m", got)
	}
}
