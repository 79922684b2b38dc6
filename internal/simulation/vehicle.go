package simulation

import (
	"fmt"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"

	"gonum.org/v1/gonum/spatial/r3"
)

// VehicleState is the driver-controlled state of the vehicle.
type VehicleState struct {
	ForwardSpeed     float64
	ThrottlePosition float64 // integer-stepped
	YawAngle         float64 // degrees, [0, 360) after every tick
}

func (v VehicleState) String() string {
	return fmt.Sprintf("Vehicle[throttle %.0f speed %.3f yaw %.3f]", v.ThrottlePosition, v.ForwardSpeed, v.YawAngle)
}

// Integrate advances a placement by one tick. The body moves by -speed along
// its forward axis and takes the absolute yaw from state. The yaw must
// already be normalized.
func Integrate(prev geometry.Placement, forward common.Vector, state VehicleState) geometry.Placement {
	return geometry.Placement{
		Position: r3.Add(prev.Position, r3.Scale(-state.ForwardSpeed, forward)),
		Yaw:      state.YawAngle,
	}
}
