package scene

import (
	"fmt"
	"sort"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"
)

// Body is a rigid body whose vertices are stored in body-local coordinates.
// Edges and faces refer to vertices by name.
type Body struct {
	Name      string
	Placement geometry.Placement

	vertices map[string]common.Vector
	edges    map[string][2]string
	faces    map[string][]string
}

// NewBody creates a body from named local vertices.
func NewBody(name string, placement geometry.Placement, vertices map[string]common.Vector) *Body {
	vs := make(map[string]common.Vector, len(vertices))
	for k, v := range vertices {
		vs[k] = v
	}
	return &Body{
		Name:      name,
		Placement: placement,
		vertices:  vs,
		edges:     make(map[string][2]string),
		faces:     make(map[string][]string),
	}
}

// AddEdge names the edge running from vertex start to vertex end.
func (b *Body) AddEdge(name, start, end string) error {
	for _, v := range []string{start, end} {
		if _, ok := b.vertices[v]; !ok {
			return fmt.Errorf("body %q edge %q: vertex %q: %w", b.Name, name, v, ErrNotFound)
		}
	}
	if start == end {
		return fmt.Errorf("body %q edge %q: start and end are the same vertex", b.Name, name)
	}
	b.edges[name] = [2]string{start, end}
	return nil
}

// AddFace names a face by its boundary vertices.
func (b *Body) AddFace(name string, vertices ...string) error {
	if len(vertices) < 3 {
		return fmt.Errorf("body %q face %q: need at least 3 vertices, got %d", b.Name, name, len(vertices))
	}
	for _, v := range vertices {
		if _, ok := b.vertices[v]; !ok {
			return fmt.Errorf("body %q face %q: vertex %q: %w", b.Name, name, v, ErrNotFound)
		}
	}
	b.faces[name] = append([]string(nil), vertices...)
	return nil
}

// WorldVertex returns a vertex transformed by the current placement.
func (b *Body) WorldVertex(name string) (common.Vector, error) {
	local, ok := b.vertices[name]
	if !ok {
		return common.Vector{}, fmt.Errorf("body %q vertex %q: %w", b.Name, name, ErrNotFound)
	}
	return b.Placement.Apply(local), nil
}

// EdgeDirection returns the world-space unit vector from an edge's start
// vertex to its end vertex.
func (b *Body) EdgeDirection(name string) (common.Vector, error) {
	e, ok := b.edges[name]
	if !ok {
		return common.Vector{}, fmt.Errorf("body %q edge %q: %w", b.Name, name, ErrNotFound)
	}
	start := b.Placement.Apply(b.vertices[e[0]])
	end := b.Placement.Apply(b.vertices[e[1]])
	dir, err := common.Direction(start, end)
	if err != nil {
		return common.Vector{}, fmt.Errorf("body %q edge %q: %w", b.Name, name, err)
	}
	return dir, nil
}

// FaceCentroid returns the world-space mean of a face's vertices.
func (b *Body) FaceCentroid(name string) (common.Vector, error) {
	f, ok := b.faces[name]
	if !ok {
		return common.Vector{}, fmt.Errorf("body %q face %q: %w", b.Name, name, ErrNotFound)
	}
	points := make([]common.Vector, len(f))
	for i, v := range f {
		points[i] = b.Placement.Apply(b.vertices[v])
	}
	return geometry.Centroid(points)
}

// Wireframe returns every named edge in world space, ordered by edge name.
func (b *Body) Wireframe() [][2]common.Vector {
	names := make([]string, 0, len(b.edges))
	for name := range b.edges {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([][2]common.Vector, len(names))
	for i, name := range names {
		e := b.edges[name]
		out[i] = [2]common.Vector{
			b.Placement.Apply(b.vertices[e[0]]),
			b.Placement.Apply(b.vertices[e[1]]),
		}
	}
	return out
}
