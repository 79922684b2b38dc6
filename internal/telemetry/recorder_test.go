package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/geometry"
	"freetruck-sim/internal/simulation"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(tick uint64, x float64, hit bool) simulation.Snapshot {
	s := simulation.Snapshot{
		Tick:      tick,
		State:     simulation.VehicleState{ThrottlePosition: 4, ForwardSpeed: 4, YawAngle: 12.5},
		Mode:      simulation.CameraChase,
		Placement: geometry.Placement{Position: common.NewVector(x, 2, 0), Yaw: 12.5},
	}
	if hit {
		s.Collisions = []string{"c_flb"}
	}
	return s
}

func TestRecorderWritesHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)

	require.NoError(t, r.Record(snapshot(1, -4, false)))
	require.NoError(t, r.Record(snapshot(2, -8, true), snapshot(3, -8, true)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "tick,throttle,speed,yaw,x,y,z,camera_mode,collided", lines[0])
	assert.Equal(t, 1, strings.Count(buf.String(), "tick,"))

	var rows []Row
	require.NoError(t, gocsv.UnmarshalString(buf.String(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, uint64(2), rows[1].Tick)
	assert.Equal(t, -8.0, rows[1].X)
	assert.True(t, rows[1].Collided)
	assert.False(t, rows[0].Collided)
	assert.Equal(t, "chase", rows[0].CameraMode)
}

func TestNilRecorderDiscards(t *testing.T) {
	r, err := Create("")
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.NoError(t, r.Record(snapshot(1, 0, false)))
	assert.NoError(t, r.Close())
}

func TestCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "ticks.csv")
	r, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, r.Record(snapshot(1, 0, false)))
	require.NoError(t, r.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "tick,throttle"))
}
