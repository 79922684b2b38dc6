package simulation

import "fmt"

// ConfigurationError reports a mismatch between the simulation settings and
// the scene: a named body, edge, face, vertex or solid that cannot be
// resolved, or a setting that is out of range. It is returned once, by
// NewSimulation.
type ConfigurationError struct {
	Kind string // "body", "edge", "face", "vertex", "solid" or "setting"
	Name string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
