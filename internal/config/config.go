// Package config reads environment-based settings with fallbacks.
package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the value of the environment variable key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the integer value of key, or fallback when the variable is
// unset or not an integer.
func GetInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// GetDuration returns the duration value of key, or fallback when the variable
// is unset or unparseable. Accepts Go duration strings like "30s" or "15m".
func GetDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
