package geometry

import (
	"math"

	"freetruck-sim/internal/common"

	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a static volume made of a union of axis-aligned boxes.
type Solid struct {
	Name  string
	Boxes []r3.Box
}

// NewSolid creates a solid from boxes, canonicalizing each so Min <= Max.
func NewSolid(name string, boxes ...r3.Box) Solid {
	canon := make([]r3.Box, len(boxes))
	for i, b := range boxes {
		canon[i] = r3.Box{
			Min: common.NewVector(math.Min(b.Min.X, b.Max.X), math.Min(b.Min.Y, b.Max.Y), math.Min(b.Min.Z, b.Max.Z)),
			Max: common.NewVector(math.Max(b.Min.X, b.Max.X), math.Max(b.Min.Y, b.Max.Y), math.Max(b.Min.Z, b.Max.Z)),
		}
	}
	return Solid{Name: name, Boxes: canon}
}

// Contains reports whether p lies inside the solid or within tol of its
// boundary. Points exactly on a face count as inside.
func (s Solid) Contains(p common.Vector, tol float64) bool {
	if tol < 0 {
		tol = 0
	}
	for _, b := range s.Boxes {
		if within(p.X, b.Min.X, b.Max.X, tol) &&
			within(p.Y, b.Min.Y, b.Max.Y, tol) &&
			within(p.Z, b.Min.Z, b.Max.Z, tol) {
			return true
		}
	}
	return false
}

func within(v, lo, hi, tol float64) bool {
	return v >= lo-tol && v <= hi+tol
}

// BoxEdges returns the 12 edges of an axis-aligned box as point pairs.
func BoxEdges(b r3.Box) [][2]common.Vector {
	lo, hi := b.Min, b.Max
	c := [8]common.Vector{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	idx := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0}, // bottom
		{4, 5}, {5, 6}, {6, 7}, {7, 4}, // top
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}
	edges := make([][2]common.Vector, len(idx))
	for i, e := range idx {
		edges[i] = [2]common.Vector{c[e[0]], c[e[1]]}
	}
	return edges
}
