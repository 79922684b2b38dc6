// Package geometry holds the small amount of solid geometry the simulation
// needs: rigid placements about the world vertical axis and box-union solids.
package geometry

import (
	"fmt"
	"math"

	"freetruck-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r3"
)

// Placement positions a body in the world: a translation followed by a yaw
// rotation (degrees) about the world vertical axis.
type Placement struct {
	Position common.Vector
	Yaw      float64
}

// Rotation returns the rotation part of the placement.
func (p Placement) Rotation() r3.Rotation {
	return r3.NewRotation(p.Yaw*math.Pi/180, common.Up)
}

// Apply maps a body-local point into world space.
func (p Placement) Apply(local common.Vector) common.Vector {
	return r3.Add(p.Position, p.Rotation().Rotate(local))
}

func (p Placement) String() string {
	return fmt.Sprintf("Placement[pos %s yaw %.3f]", common.Format(p.Position), p.Yaw)
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -tiny + 360 rounds to 360
	if a >= 360 {
		a -= 360
	}
	return a
}

// Centroid returns the arithmetic mean of the points. It fails on an empty set.
func Centroid(points []common.Vector) (common.Vector, error) {
	if len(points) == 0 {
		return common.Vector{}, fmt.Errorf("centroid of empty point set")
	}
	var sum common.Vector
	for _, p := range points {
		sum = r3.Add(sum, p)
	}
	return r3.Scale(1/float64(len(points)), sum), nil
}
