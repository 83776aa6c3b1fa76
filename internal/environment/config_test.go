package environment_test

import (
	"testing"
	"time"

	"github.com/algoview/harness/internal/environment"
	"github.com/stretchr/testify/require"
)

func TestReadEnvConfig(t *testing.T) {
	t.Setenv("HARNESS_EXEC_TIMEOUT_MS", "250")
	t.Setenv("HARNESS_PREPARE_TIMEOUT_MS", "")
	t.Setenv("HARNESS_SIM_LATENCY_MS", "10")

	cfg, err := environment.ReadEnvConfig()
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.ExecTimeout)
	require.Zero(t, cfg.PrepareTimeout)
	require.Equal(t, 10*time.Millisecond, cfg.SimLatency)
}

func TestReadEnvConfigRejectsGarbage(t *testing.T) {
	t.Setenv("HARNESS_EXEC_TIMEOUT_MS", "soon")

	_, err := environment.ReadEnvConfig()
	require.ErrorContains(t, err, "HARNESS_EXEC_TIMEOUT_MS")
}

func TestReadEnvConfigRejectsNegative(t *testing.T) {
	t.Setenv("HARNESS_SIM_LATENCY_MS", "-5")

	_, err := environment.ReadEnvConfig()
	require.ErrorContains(t, err, "HARNESS_SIM_LATENCY_MS")
}
