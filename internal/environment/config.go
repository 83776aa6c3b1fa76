// Package environment reads harness defaults from the process environment,
// with an optional .env file for local development.
package environment

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the environment-derived defaults the CLI applies when no
// flag overrides them.
type Config struct {
	ExecTimeout    time.Duration
	PrepareTimeout time.Duration
	SimLatency     time.Duration
}

// ReadEnvConfig loads .env when present and parses the harness variables.
// Unset variables fall back to zero values; the caller substitutes its own
// defaults for those.
func ReadEnvConfig() (*Config, error) {
	// a missing .env file is fine; real env vars still apply
	_ = godotenv.Load()

	result := &Config{}

	var err error
	result.ExecTimeout, err = millisEnv("HARNESS_EXEC_TIMEOUT_MS")
	if err != nil {
		return nil, err
	}
	result.PrepareTimeout, err = millisEnv("HARNESS_PREPARE_TIMEOUT_MS")
	if err != nil {
		return nil, err
	}
	result.SimLatency, err = millisEnv("HARNESS_SIM_LATENCY_MS")
	if err != nil {
		return nil, err
	}

	return result, nil
}

func millisEnv(key string) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, raw)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
