package simulation

import (
	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"
)

// Geometry is the scene host the simulation reads from and writes to.
// Bodies, edges, faces, vertices and solids are addressed by name.
type Geometry interface {
	// Placement returns the current placement of a body.
	Placement(body string) (geometry.Placement, error)
	// SetPlacement replaces the placement of a body. Last write wins.
	SetPlacement(body string, p geometry.Placement) error
	// EdgeDirection returns the world-space unit direction of a body edge.
	EdgeDirection(body, edge string) (common.Vector, error)
	// Vertex returns the world-space position of a body vertex.
	Vertex(body, vertex string) (common.Vector, error)
	// FaceCentroid returns the world-space centroid of a body face.
	FaceCentroid(body, face string) (common.Vector, error)
	// Contains tests a world point against a static solid with a tolerance.
	Contains(solid string, p common.Vector, tol float64) (bool, error)
}

// Display receives the camera view each tick and is asked to redraw.
type Display interface {
	SetView(v View)
	Redraw()
}

// NopDisplay discards views and redraw requests. Used for headless runs.
type NopDisplay struct{}

func (NopDisplay) SetView(View) {}
func (NopDisplay) Redraw()      {}
