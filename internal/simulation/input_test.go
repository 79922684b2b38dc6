package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func press(c Controls, st VehicleState, keys ...Key) VehicleState {
	mode := CameraOverhead
	for _, k := range keys {
		st, mode, _ = c.Apply(st, mode, KeyEvent{Key: k, State: KeyDown})
	}
	return st
}

func repeat(k Key, n int) []Key {
	keys := make([]Key, n)
	for i := range keys {
		keys[i] = k
	}
	return keys
}

func TestThrottleCouplesSpeed(t *testing.T) {
	c := DefaultControls()
	for n := 1; n <= 20; n++ {
		st := press(c, VehicleState{}, repeat(KeyThrottle, n)...)
		assert.Equal(t, float64(n), st.ThrottlePosition, "n=%d", n)
		assert.Equal(t, float64(n), st.ForwardSpeed, "n=%d", n)
	}
}

func TestThrottleCeiling(t *testing.T) {
	c := DefaultControls()
	st := VehicleState{ThrottlePosition: 20, ForwardSpeed: 20}
	assert.Equal(t, st, press(c, st, KeyThrottle))

	st = press(c, VehicleState{}, repeat(KeyThrottle, 50)...)
	assert.Equal(t, 20.0, st.ThrottlePosition)
}

func TestBrakeDeadband(t *testing.T) {
	c := DefaultControls()
	st := VehicleState{ThrottlePosition: 1, ForwardSpeed: 1}

	steps := []struct {
		throttle, speed float64
	}{
		{0, 0},
		{-1, 0},
		{-2, 0},
		{-3, 0},
		{-4, -4}, // out of the deadband
		{-5, -5},
	}
	for i, want := range steps {
		st = press(c, st, KeyBrake)
		assert.Equal(t, want.throttle, st.ThrottlePosition, "press %d", i+1)
		assert.Equal(t, want.speed, st.ForwardSpeed, "press %d", i+1)
	}
}

func TestBrakeFromForwardSpeed(t *testing.T) {
	c := DefaultControls()
	st := VehicleState{ThrottlePosition: 5, ForwardSpeed: 5}
	st = press(c, st, KeyBrake)
	assert.Equal(t, VehicleState{ThrottlePosition: 4, ForwardSpeed: 4}, st)

	st = press(c, st, KeyBrake, KeyBrake)
	assert.Equal(t, VehicleState{ThrottlePosition: 2, ForwardSpeed: 2}, st)

	// Braking inside the deadband stops the vehicle
	st = press(c, st, KeyBrake)
	assert.Equal(t, 1.0, st.ThrottlePosition)
	assert.Equal(t, 0.0, st.ForwardSpeed)
}

func TestThrottleFloor(t *testing.T) {
	c := DefaultControls()
	st := VehicleState{ThrottlePosition: -10, ForwardSpeed: -10}
	assert.Equal(t, st, press(c, st, KeyBrake))

	st = press(c, VehicleState{}, repeat(KeyBrake, 40)...)
	assert.Equal(t, -10.0, st.ThrottlePosition)
	assert.Equal(t, -10.0, st.ForwardSpeed)
}

func TestSteeringScale(t *testing.T) {
	c := DefaultControls()

	st := press(c, VehicleState{ForwardSpeed: 14, YawAngle: 10}, KeySteerLeft)
	assert.Equal(t, 12.0, st.YawAngle)

	st = press(c, st, KeySteerRight, KeySteerRight)
	assert.Equal(t, 8.0, st.YawAngle)

	st = press(c, VehicleState{ForwardSpeed: -7, YawAngle: 10}, KeySteerLeft)
	assert.Equal(t, 9.0, st.YawAngle)

	still := VehicleState{YawAngle: 42}
	assert.Equal(t, still, press(c, still, KeySteerLeft, KeySteerRight, KeySteerLeft))
}

func TestCameraKeys(t *testing.T) {
	c := DefaultControls()
	_, mode, ok := c.Apply(VehicleState{}, CameraOverhead, KeyEvent{Key: KeyChaseCamera})
	assert.True(t, ok)
	assert.Equal(t, CameraChase, mode)

	_, mode, ok = c.Apply(VehicleState{}, mode, KeyEvent{Key: KeyOverheadCamera})
	assert.True(t, ok)
	assert.Equal(t, CameraOverhead, mode)
}

func TestIgnoredEvents(t *testing.T) {
	c := DefaultControls()
	st := VehicleState{ThrottlePosition: 3, ForwardSpeed: 3, YawAngle: 90}

	for _, ev := range []KeyEvent{
		{Key: KeyThrottle, State: KeyUp},
		{Key: KeyChaseCamera, State: KeyUp},
		{Key: "z", State: KeyDown},
		{Key: "W", State: KeyDown},
	} {
		got, mode, ok := c.Apply(st, CameraOverhead, ev)
		assert.False(t, ok, "%+v", ev)
		assert.Equal(t, st, got)
		assert.Equal(t, CameraOverhead, mode)
	}
}
