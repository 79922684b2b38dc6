package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"freetruck-sim/internal/simulation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 20, cfg.TicksPerSecond())
	assert.Equal(t, "truck", cfg.Scene.Body)
	assert.Equal(t, []string{"c_flb", "c_frb", "c_rlb", "c_rrb"}, cfg.Collision.SamplePoints)
	assert.False(t, cfg.Collision.ResetThrottle)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestDefaultsMatchSimulationDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, simulation.DefaultSettings(), cfg.Settings())
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freetruck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation:
  tick_interval: 100ms
vehicle:
  throttle_ceiling: 30
collision:
  reset_throttle: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.TicksPerSecond())
	assert.Equal(t, 30.0, cfg.Vehicle.ThrottleCeiling)
	assert.True(t, cfg.Collision.ResetThrottle)
	// Untouched keys keep their defaults
	assert.Equal(t, -10.0, cfg.Vehicle.ThrottleFloor)
	assert.Equal(t, 7.0, cfg.Vehicle.SteerDivisor)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FREETRUCK_LOG_LEVEL", "debug")
	t.Setenv("FREETRUCK_CAMERA_CHASE_DISTANCE", "150")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 150.0, cfg.Camera.ChaseDistance)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tick", func(c *Config) { c.Simulation.TickInterval = 0 }},
		{"no queue", func(c *Config) { c.Simulation.InputQueueSize = 0 }},
		{"positive floor", func(c *Config) { c.Vehicle.ThrottleFloor = 1 }},
		{"zero divisor", func(c *Config) { c.Vehicle.SteerDivisor = 0 }},
		{"negative tolerance", func(c *Config) { c.Collision.Tolerance = -1 }},
		{"flat lens", func(c *Config) { c.Camera.FOVDegrees = 180 }},
		{"empty window", func(c *Config) { c.Window.Width = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
