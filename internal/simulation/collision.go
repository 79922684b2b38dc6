package simulation

import (
	"fmt"
)

// CollisionConfig describes the collision probe: which body vertices are
// sampled and which solid they are tested against.
type CollisionConfig struct {
	SamplePoints  []string
	Solid         string
	Tolerance     float64
	ResetThrottle bool // also zero the throttle on a hit
}

// Probe tests the sample points of a body against a static solid.
type Probe struct {
	body      string
	solid     string
	points    []string
	tolerance float64
}

// NewProbe creates a probe for the given body.
func NewProbe(body string, cfg CollisionConfig) *Probe {
	return &Probe{
		body:      body,
		solid:     cfg.Solid,
		points:    append([]string(nil), cfg.SamplePoints...),
		tolerance: cfg.Tolerance,
	}
}

// Check returns the names of the sample points currently inside the solid.
// Vertex positions are re-read from the host on every call.
func (p *Probe) Check(geo Geometry) ([]string, error) {
	var hits []string
	for _, name := range p.points {
		pos, err := geo.Vertex(p.body, name)
		if err != nil {
			return nil, fmt.Errorf("probe sample %q: %w", name, err)
		}
		inside, err := geo.Contains(p.solid, pos, p.tolerance)
		if err != nil {
			return nil, fmt.Errorf("probe sample %q: %w", name, err)
		}
		if inside {
			hits = append(hits, name)
		}
	}
	return hits, nil
}

func (p *Probe) String() string {
	return fmt.Sprintf("Probe[%s vs %s, %d points, tol %.2f]", p.body, p.solid, len(p.points), p.tolerance)
}
