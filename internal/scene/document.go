// Package scene provides an in-memory scene document: named rigid bodies with
// named vertices, edges and faces, plus static obstacle solids. It is the host
// the simulation queries and mutates each tick.
package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed truck.yaml
var defaultSceneYAML []byte

// ErrNotFound is returned (wrapped) when a named body, solid or body
// feature does not exist.
var ErrNotFound = errors.New("not found")

// Document holds every body and solid of a scene, mapped by name.
type Document struct {
	bodies map[string]*Body
	solids map[string]geometry.Solid
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		bodies: make(map[string]*Body),
		solids: make(map[string]geometry.Solid),
	}
}

// Default returns the built-in truck scene.
func Default() (*Document, error) {
	return LoadBytes(defaultSceneYAML)
}

// Load reads a scene document from a YAML file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	doc, err := LoadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return doc, nil
}

// LoadBytes parses a YAML scene document.
func LoadBytes(data []byte) (*Document, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}

	doc := NewDocument()
	for _, bf := range f.Bodies {
		body, err := bf.build()
		if err != nil {
			return nil, err
		}
		if err := doc.AddBody(body); err != nil {
			return nil, err
		}
	}
	for _, sf := range f.Solids {
		if err := doc.AddSolid(sf.build()); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// AddBody adds a body to the document.
func (d *Document) AddBody(b *Body) error {
	if b.Name == "" {
		return fmt.Errorf("body without a name")
	}
	if _, exists := d.bodies[b.Name]; exists {
		return fmt.Errorf("body %q already exists", b.Name)
	}
	d.bodies[b.Name] = b
	return nil
}

// AddSolid adds an obstacle solid to the document.
func (d *Document) AddSolid(s geometry.Solid) error {
	if s.Name == "" {
		return fmt.Errorf("solid without a name")
	}
	if _, exists := d.solids[s.Name]; exists {
		return fmt.Errorf("solid %q already exists", s.Name)
	}
	d.solids[s.Name] = s
	return nil
}

// Body returns a body by name.
func (d *Document) Body(name string) (*Body, error) {
	b, ok := d.bodies[name]
	if !ok {
		return nil, fmt.Errorf("body %q: %w", name, ErrNotFound)
	}
	return b, nil
}

// Solid returns an obstacle solid by name.
func (d *Document) Solid(name string) (geometry.Solid, error) {
	s, ok := d.solids[name]
	if !ok {
		return geometry.Solid{}, fmt.Errorf("solid %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// BodyNames returns the names of all bodies, sorted.
func (d *Document) BodyNames() []string {
	names := make([]string, 0, len(d.bodies))
	for name := range d.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SolidNames returns the names of all solids, sorted.
func (d *Document) SolidNames() []string {
	names := make([]string, 0, len(d.solids))
	for name := range d.solids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Placement returns the current placement of a body.
func (d *Document) Placement(body string) (geometry.Placement, error) {
	b, err := d.Body(body)
	if err != nil {
		return geometry.Placement{}, err
	}
	return b.Placement, nil
}

// SetPlacement replaces the placement of a body. Last write wins.
func (d *Document) SetPlacement(body string, p geometry.Placement) error {
	b, err := d.Body(body)
	if err != nil {
		return err
	}
	b.Placement = p
	return nil
}

// EdgeDirection returns the world-space unit direction of a named body edge.
func (d *Document) EdgeDirection(body, edge string) (common.Vector, error) {
	b, err := d.Body(body)
	if err != nil {
		return common.Vector{}, err
	}
	return b.EdgeDirection(edge)
}

// Vertex returns the world-space position of a named body vertex.
func (d *Document) Vertex(body, vertex string) (common.Vector, error) {
	b, err := d.Body(body)
	if err != nil {
		return common.Vector{}, err
	}
	return b.WorldVertex(vertex)
}

// FaceCentroid returns the world-space centroid of a named body face.
func (d *Document) FaceCentroid(body, face string) (common.Vector, error) {
	b, err := d.Body(body)
	if err != nil {
		return common.Vector{}, err
	}
	return b.FaceCentroid(face)
}

// Contains tests whether a world point lies within tol of a named solid.
func (d *Document) Contains(solid string, p common.Vector, tol float64) (bool, error) {
	s, err := d.Solid(solid)
	if err != nil {
		return false, err
	}
	return s.Contains(p, tol), nil
}

// SolidWireframe returns the edges of every box of a solid.
func (d *Document) SolidWireframe(solid string) ([][2]common.Vector, error) {
	s, err := d.Solid(solid)
	if err != nil {
		return nil, err
	}
	var edges [][2]common.Vector
	for _, box := range s.Boxes {
		edges = append(edges, geometry.BoxEdges(box)...)
	}
	return edges, nil
}

// BodyWireframe returns the world-space edges of a body.
func (d *Document) BodyWireframe(body string) ([][2]common.Vector, error) {
	b, err := d.Body(body)
	if err != nil {
		return nil, err
	}
	return b.Wireframe(), nil
}

type sceneFile struct {
	Bodies []bodyFile  `yaml:"bodies"`
	Solids []solidFile `yaml:"solids"`
}

type placementFile struct {
	Position [3]float64 `yaml:"position"`
	Yaw      float64    `yaml:"yaw"`
}

type bodyFile struct {
	Name      string                `yaml:"name"`
	Placement placementFile         `yaml:"placement"`
	Vertices  map[string][3]float64 `yaml:"vertices"`
	Edges     map[string][2]string  `yaml:"edges"`
	Faces     map[string][]string   `yaml:"faces"`
}

type boxFile struct {
	Min [3]float64 `yaml:"min"`
	Max [3]float64 `yaml:"max"`
}

type solidFile struct {
	Name  string    `yaml:"name"`
	Boxes []boxFile `yaml:"boxes"`
}

func toVector(c [3]float64) common.Vector {
	return common.NewVector(c[0], c[1], c[2])
}

func (bf bodyFile) build() (*Body, error) {
	vertices := make(map[string]common.Vector, len(bf.Vertices))
	for name, c := range bf.Vertices {
		vertices[name] = toVector(c)
	}
	body := &Body{
		Name: bf.Name,
		Placement: geometry.Placement{
			Position: toVector(bf.Placement.Position),
			Yaw:      geometry.NormalizeDegrees(bf.Placement.Yaw),
		},
		vertices: vertices,
		edges:    make(map[string][2]string, len(bf.Edges)),
		faces:    make(map[string][]string, len(bf.Faces)),
	}
	for name, e := range bf.Edges {
		if err := body.AddEdge(name, e[0], e[1]); err != nil {
			return nil, err
		}
	}
	for name, vs := range bf.Faces {
		if err := body.AddFace(name, vs...); err != nil {
			return nil, err
		}
	}
	return body, nil
}

func (sf solidFile) build() geometry.Solid {
	boxes := make([]r3.Box, len(sf.Boxes))
	for i, b := range sf.Boxes {
		boxes[i] = r3.Box{Min: toVector(b.Min), Max: toVector(b.Max)}
	}
	return geometry.NewSolid(sf.Name, boxes...)
}
