package simulation

// Key identifies a keyboard key by the character it produces.
type Key string

const (
	KeyThrottle       Key = "w"
	KeyBrake          Key = "s"
	KeySteerLeft      Key = "q"
	KeySteerRight     Key = "e"
	KeyChaseCamera    Key = "c"
	KeyOverheadCamera Key = "x"
)

// KeyState is the transition a key event reports.
type KeyState int

const (
	KeyDown KeyState = iota
	KeyUp
)

func (s KeyState) String() string {
	if s == KeyUp {
		return "up"
	}
	return "down"
}

// KeyEvent is a single key transition delivered by the host.
type KeyEvent struct {
	Key   Key
	State KeyState
}

// Controls holds the throttle and steering limits.
type Controls struct {
	ThrottleCeiling float64 // w is ignored at this position
	ThrottleFloor   float64 // s is ignored at this position
	BrakeDeadband   float64 // |throttle| below this brakes to a standstill
	SteerDivisor    float64 // yaw step per press is speed / SteerDivisor
}

// DefaultControls returns the stock truck limits.
func DefaultControls() Controls {
	return Controls{
		ThrottleCeiling: 20,
		ThrottleFloor:   -10,
		BrakeDeadband:   3,
		SteerDivisor:    7,
	}
}

// Apply runs one key event through the throttle/steering state machine.
// Key-up events and unknown keys leave everything unchanged and report false.
func (c Controls) Apply(state VehicleState, mode CameraMode, ev KeyEvent) (VehicleState, CameraMode, bool) {
	if ev.State != KeyDown {
		return state, mode, false
	}

	switch ev.Key {
	case KeyThrottle:
		if state.ThrottlePosition < c.ThrottleCeiling {
			state.ThrottlePosition++
			state.ForwardSpeed = state.ThrottlePosition
		}
	case KeyBrake:
		switch {
		case state.ThrottlePosition > -c.BrakeDeadband && state.ThrottlePosition < c.BrakeDeadband:
			state.ForwardSpeed = 0
			state.ThrottlePosition--
		case state.ThrottlePosition > c.ThrottleFloor:
			state.ThrottlePosition--
			state.ForwardSpeed = state.ThrottlePosition
		}
	case KeySteerLeft:
		state.YawAngle += state.ForwardSpeed / c.SteerDivisor
	case KeySteerRight:
		state.YawAngle -= state.ForwardSpeed / c.SteerDivisor
	case KeyChaseCamera:
		mode = CameraChase
	case KeyOverheadCamera:
		mode = CameraOverhead
	default:
		return state, mode, false
	}
	return state, mode, true
}
