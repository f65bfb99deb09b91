// Package config reads process configuration from environment variables,
// with fallback defaults for local/demo runs. cmd/server and cmd/dbtool
// share it for defaulted env lookups, so the getEnv/getEnvInt/getEnvDuration
// trio doesn't get copy-pasted into every command's main.go the way the
// teacher's cmd/server and cmd/dbtool do. cmd/simulate takes its settings
// from command-line flags instead.
package config

import (
	"os"
	"strconv"
	"time"
)

// Get returns the environment variable named key, or fallback if it is
// unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the environment variable named key parsed as an int, or
// fallback if it is unset, empty, or not a valid integer.
func GetInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// GetDuration returns the environment variable named key parsed with
// time.ParseDuration, or fallback if it is unset, empty, or invalid.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
