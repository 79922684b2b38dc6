package simulation

import (
	"fmt"

	"freetruck-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r3"
)

// CameraMode selects how the camera follows the vehicle.
type CameraMode int

const (
	CameraOverhead CameraMode = iota
	CameraChase
)

func (m CameraMode) String() string {
	switch m {
	case CameraOverhead:
		return "overhead"
	case CameraChase:
		return "chase"
	default:
		return fmt.Sprintf("CameraMode(%d)", int(m))
	}
}

// View is a look-at camera description.
type View struct {
	Position common.Vector
	Target   common.Vector
	Up       common.Vector
}

// CameraParams holds the follow-camera offsets, in world units.
type CameraParams struct {
	OverheadHeight float64
	ChaseDistance  float64
	ChaseHeight    float64
	LookAhead      float64
}

// DefaultCameraParams returns the stock follow-camera offsets.
func DefaultCameraParams() CameraParams {
	return CameraParams{
		OverheadHeight: 400,
		ChaseDistance:  100,
		ChaseHeight:    50,
		LookAhead:      100,
	}
}

// Follow computes the camera view for a vehicle whose reference point is ref
// and whose forward axis is forward. The vehicle travels along -forward, so
// the chase camera sits on the +forward side.
func Follow(ref, forward common.Vector, mode CameraMode, p CameraParams) View {
	if mode == CameraChase {
		return View{
			Position: r3.Add(r3.Add(ref, r3.Scale(p.ChaseHeight, common.Up)), r3.Scale(p.ChaseDistance, forward)),
			Target:   r3.Add(ref, r3.Scale(-p.LookAhead, forward)),
			Up:       common.Up,
		}
	}
	return View{
		Position: r3.Add(ref, r3.Scale(p.OverheadHeight, common.Up)),
		Target:   ref,
		Up:       common.Up,
	}
}
