package simulation

import (
	"errors"
	"fmt"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Settings names the scene features the simulation drives and holds the
// tunable parameters of each component.
type Settings struct {
	Body           string
	ForwardEdge    string
	LateralEdge    string
	ReferenceFace  string
	Controls       Controls
	Camera         CameraParams
	Collision      CollisionConfig
	InputQueueSize int
}

// DefaultSettings returns settings matching the built-in truck scene.
func DefaultSettings() Settings {
	return Settings{
		Body:          "truck",
		ForwardEdge:   "sill_left",
		LateralEdge:   "front_bottom",
		ReferenceFace: "cab_roof",
		Controls:      DefaultControls(),
		Camera:        DefaultCameraParams(),
		Collision: CollisionConfig{
			SamplePoints: []string{"c_flb", "c_frb", "c_rlb", "c_rrb"},
			Solid:        "scenery",
			Tolerance:    1,
		},
		InputQueueSize: 64,
	}
}

// Snapshot is the outcome of one tick.
type Snapshot struct {
	Tick       uint64
	State      VehicleState
	Mode       CameraMode
	Placement  geometry.Placement
	Forward    common.Vector
	Lateral    common.Vector
	Reference  common.Vector
	View       View
	Collisions []string // sample points inside the solid this tick
}

// Collided reports whether any sample point hit the solid this tick.
func (s Snapshot) Collided() bool {
	return len(s.Collisions) > 0
}

// Simulation holds the vehicle, camera and collision state of one session.
// Key events are queued by PushKey and applied at the start of the next Step.
type Simulation struct {
	id       string
	settings Settings
	geo      Geometry
	display  Display
	probe    *Probe
	logger   *zap.Logger

	state    VehicleState
	mode     CameraMode
	tick     uint64
	input    chan KeyEvent
	collided bool
}

// NewSimulation resolves every named scene reference in settings against geo
// and creates the session. All unresolved references are reported together;
// each is a *ConfigurationError.
func NewSimulation(settings Settings, geo Geometry, display Display, logger *zap.Logger) (*Simulation, error) {
	if geo == nil {
		return nil, fmt.Errorf("geometry host is required")
	}
	if display == nil {
		display = NopDisplay{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := validate(settings, geo); err != nil {
		return nil, err
	}

	id := fmt.Sprintf("session-%s", uuid.NewString()[:8])
	return &Simulation{
		id:       id,
		settings: settings,
		geo:      geo,
		display:  display,
		probe:    NewProbe(settings.Body, settings.Collision),
		logger:   logger.With(zap.String("session", id)),
		input:    make(chan KeyEvent, settings.InputQueueSize),
	}, nil
}

func validate(s Settings, geo Geometry) error {
	var errs []error
	setting := func(name, msg string) {
		errs = append(errs, &ConfigurationError{Kind: "setting", Name: name, Err: errors.New(msg)})
	}
	if s.InputQueueSize <= 0 {
		setting("input_queue_size", "must be positive")
	}
	if s.Controls.ThrottleFloor > 0 || s.Controls.ThrottleCeiling < 0 {
		setting("controls", "throttle floor must be <= 0 <= ceiling")
	}
	if s.Controls.SteerDivisor == 0 {
		setting("steer_divisor", "must not be zero")
	}
	if s.Collision.Tolerance < 0 {
		setting("collision.tolerance", "must not be negative")
	}
	if len(s.Collision.SamplePoints) == 0 {
		setting("collision.sample_points", "at least one sample point is required")
	}

	if _, err := geo.Placement(s.Body); err != nil {
		// Nothing else on the body can resolve
		errs = append(errs, &ConfigurationError{Kind: "body", Name: s.Body, Err: err})
		return errors.Join(errs...)
	}
	for _, edge := range []string{s.ForwardEdge, s.LateralEdge} {
		if _, err := geo.EdgeDirection(s.Body, edge); err != nil {
			errs = append(errs, &ConfigurationError{Kind: "edge", Name: edge, Err: err})
		}
	}
	if _, err := geo.FaceCentroid(s.Body, s.ReferenceFace); err != nil {
		errs = append(errs, &ConfigurationError{Kind: "face", Name: s.ReferenceFace, Err: err})
	}
	for _, v := range s.Collision.SamplePoints {
		if _, err := geo.Vertex(s.Body, v); err != nil {
			errs = append(errs, &ConfigurationError{Kind: "vertex", Name: v, Err: err})
		}
	}
	if _, err := geo.Contains(s.Collision.Solid, common.Vector{}, 0); err != nil {
		errs = append(errs, &ConfigurationError{Kind: "solid", Name: s.Collision.Solid, Err: err})
	}
	return errors.Join(errs...)
}

// ID returns the session identifier.
func (s *Simulation) ID() string {
	return s.id
}

// State returns the current vehicle state.
func (s *Simulation) State() VehicleState {
	return s.state
}

// Mode returns the current camera mode.
func (s *Simulation) Mode() CameraMode {
	return s.mode
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() uint64 {
	return s.tick
}

// PushKey queues a key event for the next tick. It never blocks; when the
// queue is full the event is dropped and false is returned.
func (s *Simulation) PushKey(ev KeyEvent) bool {
	select {
	case s.input <- ev:
		return true
	default:
		s.logger.Warn("input queue full, dropping key",
			zap.String("key", string(ev.Key)),
			zap.Stringer("state", ev.State),
		)
		return false
	}
}

// Press queues a key-down event.
func (s *Simulation) Press(k Key) bool {
	return s.PushKey(KeyEvent{Key: k, State: KeyDown})
}

func (s *Simulation) drainInput() {
	for {
		select {
		case ev := <-s.input:
			s.handleKey(ev)
		default:
			return
		}
	}
}

func (s *Simulation) handleKey(ev KeyEvent) {
	state, mode, handled := s.settings.Controls.Apply(s.state, s.mode, ev)
	if !handled {
		if ev.State == KeyDown {
			s.logger.Debug("ignored key", zap.String("key", string(ev.Key)))
		}
		return
	}
	if mode != s.mode {
		s.logger.Info("camera mode changed", zap.Stringer("mode", mode))
	}
	s.state, s.mode = state, mode
	s.logger.Debug("key applied",
		zap.String("key", string(ev.Key)),
		zap.Float64("throttle", s.state.ThrottlePosition),
		zap.Float64("speed", s.state.ForwardSpeed),
		zap.Float64("yaw", s.state.YawAngle),
	)
}

// Step runs one tick: queued keys are applied, the body is moved, the camera
// follows, the collision probe runs and a redraw is requested.
func (s *Simulation) Step() (Snapshot, error) {
	s.drainInput()

	// Yaw wraps before the rotation is built
	s.state.YawAngle = geometry.NormalizeDegrees(s.state.YawAngle)

	body := s.settings.Body
	prev, err := s.geo.Placement(body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: %w", s.tick+1, err)
	}
	forward, err := s.geo.EdgeDirection(body, s.settings.ForwardEdge)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: forward axis: %w", s.tick+1, err)
	}

	next := Integrate(prev, forward, s.state)
	if err := s.geo.SetPlacement(body, next); err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: %w", s.tick+1, err)
	}

	// Camera follows the pose just written
	forward, err = s.geo.EdgeDirection(body, s.settings.ForwardEdge)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: forward axis: %w", s.tick+1, err)
	}
	lateral, err := s.geo.EdgeDirection(body, s.settings.LateralEdge)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: lateral axis: %w", s.tick+1, err)
	}
	ref, err := s.geo.FaceCentroid(body, s.settings.ReferenceFace)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: reference point: %w", s.tick+1, err)
	}
	view := Follow(ref, forward, s.mode, s.settings.Camera)
	s.display.SetView(view)

	hits, err := s.probe.Check(s.geo)
	if err != nil {
		return Snapshot{}, fmt.Errorf("tick %d: %w", s.tick+1, err)
	}
	if len(hits) > 0 {
		s.state.ForwardSpeed = 0
		if s.settings.Collision.ResetThrottle {
			s.state.ThrottlePosition = 0
		}
	}
	s.logCollision(hits)

	s.display.Redraw()
	s.tick++

	return Snapshot{
		Tick:       s.tick,
		State:      s.state,
		Mode:       s.mode,
		Placement:  next,
		Forward:    forward,
		Lateral:    lateral,
		Reference:  ref,
		View:       view,
		Collisions: hits,
	}, nil
}

func (s *Simulation) logCollision(hits []string) {
	hit := len(hits) > 0
	switch {
	case hit && !s.collided:
		s.logger.Info("collision detected",
			zap.Uint64("tick", s.tick+1),
			zap.Strings("points", hits),
			zap.Float64("throttle", s.state.ThrottlePosition),
		)
	case !hit && s.collided:
		s.logger.Info("collision cleared", zap.Uint64("tick", s.tick+1))
	}
	s.collided = hit
}

// Run executes numSteps ticks back to back, without real-time pacing.
func (s *Simulation) Run(numSteps int) ([]Snapshot, error) {
	s.logger.Info("starting simulation",
		zap.Int("steps", numSteps),
		zap.String("body", s.settings.Body),
		zap.Stringer("probe", s.probe),
	)

	snapshots := make([]Snapshot, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		snap, err := s.Step()
		if err != nil {
			return snapshots, err
		}
		snapshots = append(snapshots, snap)
	}

	s.logger.Info("simulation finished",
		zap.Uint64("tick", s.tick),
		zap.Stringer("vehicle", s.state),
		zap.Stringer("mode", s.mode),
	)
	return snapshots, nil
}
