// Package config loads the simulation configuration: embedded defaults,
// optionally merged with a user file, then FREETRUCK_* environment overrides.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"freetruck-sim/internal/simulation"

	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// EnvPrefix prefixes environment overrides, e.g. FREETRUCK_LOG_LEVEL.
const EnvPrefix = "FREETRUCK"

// Config holds all configuration parameters.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Scene      SceneConfig      `mapstructure:"scene"`
	Vehicle    VehicleConfig    `mapstructure:"vehicle"`
	Camera     CameraConfig     `mapstructure:"camera"`
	Collision  CollisionConfig  `mapstructure:"collision"`
	Window     WindowConfig     `mapstructure:"window"`
	Log        LogConfig        `mapstructure:"log"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// SimulationConfig holds tick pacing and input buffering.
type SimulationConfig struct {
	TickInterval   time.Duration `mapstructure:"tick_interval"`
	InputQueueSize int           `mapstructure:"input_queue_size"`
}

// SceneConfig names the scene file and the features of the driven body.
type SceneConfig struct {
	Path          string `mapstructure:"path"`
	Body          string `mapstructure:"body"`
	ForwardEdge   string `mapstructure:"forward_edge"`
	LateralEdge   string `mapstructure:"lateral_edge"`
	ReferenceFace string `mapstructure:"reference_face"`
}

// VehicleConfig holds throttle and steering limits.
type VehicleConfig struct {
	ThrottleCeiling float64 `mapstructure:"throttle_ceiling"`
	ThrottleFloor   float64 `mapstructure:"throttle_floor"`
	BrakeDeadband   float64 `mapstructure:"brake_deadband"`
	SteerDivisor    float64 `mapstructure:"steer_divisor"`
}

// CameraConfig holds follow-camera offsets and the lens.
type CameraConfig struct {
	OverheadHeight float64 `mapstructure:"overhead_height"`
	ChaseDistance  float64 `mapstructure:"chase_distance"`
	ChaseHeight    float64 `mapstructure:"chase_height"`
	LookAhead      float64 `mapstructure:"look_ahead"`
	FOVDegrees     float64 `mapstructure:"fov_degrees"`
}

// CollisionConfig holds the collision probe parameters.
type CollisionConfig struct {
	Solid         string   `mapstructure:"solid"`
	SamplePoints  []string `mapstructure:"sample_points"`
	Tolerance     float64  `mapstructure:"tolerance"`
	ResetThrottle bool     `mapstructure:"reset_throttle"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"` // console or json
}

// TelemetryConfig holds the per-tick CSV output path.
type TelemetryConfig struct {
	Path string `mapstructure:"path"`
}

// Load builds the configuration. An empty path uses the defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultsYAML)); err != nil {
		return nil, fmt.Errorf("reading embedded defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make the simulation misbehave.
// Scene references are checked later, against the loaded scene.
func (c *Config) Validate() error {
	switch {
	case c.Simulation.TickInterval <= 0:
		return fmt.Errorf("simulation.tick_interval must be positive, got %s", c.Simulation.TickInterval)
	case c.Simulation.InputQueueSize <= 0:
		return fmt.Errorf("simulation.input_queue_size must be positive, got %d", c.Simulation.InputQueueSize)
	case c.Vehicle.ThrottleFloor > 0 || c.Vehicle.ThrottleCeiling < 0:
		return fmt.Errorf("vehicle throttle range [%g, %g] must contain zero", c.Vehicle.ThrottleFloor, c.Vehicle.ThrottleCeiling)
	case c.Vehicle.SteerDivisor == 0:
		return fmt.Errorf("vehicle.steer_divisor must not be zero")
	case c.Collision.Tolerance < 0:
		return fmt.Errorf("collision.tolerance must not be negative, got %g", c.Collision.Tolerance)
	case c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180:
		return fmt.Errorf("camera.fov_degrees must be in (0, 180), got %g", c.Camera.FOVDegrees)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	return nil
}

// TicksPerSecond converts the tick interval into a host timer rate.
func (c *Config) TicksPerSecond() int {
	tps := int(time.Second / c.Simulation.TickInterval)
	if tps < 1 {
		tps = 1
	}
	return tps
}

// Settings maps the configuration onto simulation settings.
func (c *Config) Settings() simulation.Settings {
	return simulation.Settings{
		Body:          c.Scene.Body,
		ForwardEdge:   c.Scene.ForwardEdge,
		LateralEdge:   c.Scene.LateralEdge,
		ReferenceFace: c.Scene.ReferenceFace,
		Controls: simulation.Controls{
			ThrottleCeiling: c.Vehicle.ThrottleCeiling,
			ThrottleFloor:   c.Vehicle.ThrottleFloor,
			BrakeDeadband:   c.Vehicle.BrakeDeadband,
			SteerDivisor:    c.Vehicle.SteerDivisor,
		},
		Camera: simulation.CameraParams{
			OverheadHeight: c.Camera.OverheadHeight,
			ChaseDistance:  c.Camera.ChaseDistance,
			ChaseHeight:    c.Camera.ChaseHeight,
			LookAhead:      c.Camera.LookAhead,
		},
		Collision: simulation.CollisionConfig{
			SamplePoints:  append([]string(nil), c.Collision.SamplePoints...),
			Solid:         c.Collision.Solid,
			Tolerance:     c.Collision.Tolerance,
			ResetThrottle: c.Collision.ResetThrottle,
		},
		InputQueueSize: c.Simulation.InputQueueSize,
	}
}
