// Package telemetry writes one CSV row per simulation tick.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"freetruck-sim/internal/simulation"

	"github.com/gocarina/gocsv"
)

// Row is the CSV record of a single tick.
type Row struct {
	Tick       uint64  `csv:"tick"`
	Throttle   float64 `csv:"throttle"`
	Speed      float64 `csv:"speed"`
	Yaw        float64 `csv:"yaw"`
	X          float64 `csv:"x"`
	Y          float64 `csv:"y"`
	Z          float64 `csv:"z"`
	CameraMode string  `csv:"camera_mode"`
	Collided   bool    `csv:"collided"`
}

// NewRow flattens a tick snapshot.
func NewRow(s simulation.Snapshot) Row {
	return Row{
		Tick:       s.Tick,
		Throttle:   s.State.ThrottlePosition,
		Speed:      s.State.ForwardSpeed,
		Yaw:        s.State.YawAngle,
		X:          s.Placement.Position.X,
		Y:          s.Placement.Position.Y,
		Z:          s.Placement.Position.Z,
		CameraMode: s.Mode.String(),
		Collided:   s.Collided(),
	}
}

// Recorder appends tick rows to a CSV stream. A nil Recorder discards
// everything, so callers need not check whether telemetry is enabled.
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewRecorder writes rows to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Create opens a CSV file for writing. Returns nil if path is empty.
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	return &Recorder{w: f, closer: f}, nil
}

// Record writes one row per snapshot.
func (r *Recorder) Record(snaps ...simulation.Snapshot) error {
	if r == nil || len(snaps) == 0 {
		return nil
	}
	rows := make([]Row, len(snaps))
	for i, s := range snaps {
		rows[i] = NewRow(s)
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, r.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the recorder owns one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
