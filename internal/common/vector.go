package common

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector represents a point or direction in 3D world space.
type Vector = r3.Vec

// Up is the world vertical axis.
var Up = Vector{Z: 1}

// NewVector creates a vector from its components.
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vector) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// Direction returns the unit vector pointing from start to end.
// It fails when the two points coincide.
func Direction(start, end Vector) (Vector, error) {
	d := r3.Sub(end, start)
	n := r3.Norm(d)
	if n == 0 {
		return Vector{}, fmt.Errorf("degenerate direction: start and end are both %s", Format(start))
	}
	return r3.Scale(1/n, d), nil
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func ApproxEqual(a, b Vector, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Format returns a string representation of the vector.
func Format(v Vector) string {
	// Limited precision keeps log lines readable
	return fmt.Sprintf("[%.3f, %.3f, %.3f]", v.X, v.Y, v.Z)
}
