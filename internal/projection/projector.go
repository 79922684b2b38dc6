// Package projection maps world points onto the screen through a look-at
// perspective camera.
package projection

import (
	"fmt"
	"math"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/simulation"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	nearPlane = 0.1
	// Below this |forward x up| the up vector is replaced.
	degenerateUp = 1e-9
)

// Projector is a perspective camera with a fixed vertical field of view.
type Projector struct {
	width, height float64
	focal         float64 // 1 / tan(fov/2)
	view          *mat.Dense
}

// NewProjector creates a projector for a viewport of the given size.
// The camera starts at the origin looking down -Z.
func NewProjector(width, height int, fovDegrees float64) *Projector {
	p := &Projector{
		focal: 1 / math.Tan(fovDegrees*math.Pi/360),
		view:  identity4(),
	}
	p.Resize(width, height)
	return p
}

// Resize updates the viewport size.
func (p *Projector) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	p.width, p.height = float64(width), float64(height)
}

// SetView rebuilds the view matrix from a look-at description. When the up
// vector is parallel to the viewing direction, as for a camera looking
// straight down, world +Y (or +X) is used as up instead.
func (p *Projector) SetView(v simulation.View) error {
	dir := r3.Sub(v.Target, v.Position)
	if r3.Norm(dir) == 0 {
		return fmt.Errorf("camera at %s looks at itself", common.Format(v.Position))
	}
	f := r3.Unit(dir)

	up := v.Up
	if r3.Norm(r3.Cross(f, up)) < degenerateUp {
		up = common.NewVector(0, 1, 0)
		if r3.Norm(r3.Cross(f, up)) < degenerateUp {
			up = common.NewVector(1, 0, 0)
		}
	}
	s := r3.Unit(r3.Cross(f, up))
	u := r3.Cross(s, f)

	p.view = mat.NewDense(4, 4, []float64{
		s.X, s.Y, s.Z, -r3.Dot(s, v.Position),
		u.X, u.Y, u.Z, -r3.Dot(u, v.Position),
		-f.X, -f.Y, -f.Z, r3.Dot(f, v.Position),
		0, 0, 0, 1,
	})
	return nil
}

// toCamera transforms a world point into camera space, where the camera
// looks down -Z.
func (p *Projector) toCamera(w common.Vector) common.Vector {
	var c mat.VecDense
	c.MulVec(p.view, mat.NewVecDense(4, []float64{w.X, w.Y, w.Z, 1}))
	return common.NewVector(c.AtVec(0), c.AtVec(1), c.AtVec(2))
}

func (p *Projector) toScreen(c common.Vector) (float64, float64) {
	depth := -c.Z
	aspect := p.width / p.height
	ndcX := p.focal / aspect * c.X / depth
	ndcY := p.focal * c.Y / depth
	return (ndcX + 1) / 2 * p.width, (1 - ndcY) / 2 * p.height
}

// Project maps a world point to screen coordinates. ok is false for points
// behind the near plane.
func (p *Projector) Project(w common.Vector) (x, y float64, ok bool) {
	c := p.toCamera(w)
	if -c.Z < nearPlane {
		return 0, 0, false
	}
	x, y = p.toScreen(c)
	return x, y, true
}

// ProjectSegment maps a world segment to the screen, clipping it against the
// near plane. ok is false when the segment is entirely behind the camera.
func (p *Projector) ProjectSegment(a, b common.Vector) (x0, y0, x1, y1 float64, ok bool) {
	ca, cb := p.toCamera(a), p.toCamera(b)
	da, db := -ca.Z, -cb.Z
	if da < nearPlane && db < nearPlane {
		return 0, 0, 0, 0, false
	}
	switch {
	case da < nearPlane:
		ca = clip(cb, ca, db, da)
	case db < nearPlane:
		cb = clip(ca, cb, da, db)
	}
	x0, y0 = p.toScreen(ca)
	x1, y1 = p.toScreen(cb)
	return x0, y0, x1, y1, true
}

// clip moves the hidden endpoint along the segment onto the near plane.
func clip(visible, hidden common.Vector, dv, dh float64) common.Vector {
	t := (dv - nearPlane) / (dv - dh)
	return r3.Add(visible, r3.Scale(t, r3.Sub(hidden, visible)))
}

func identity4() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return m
}
