// Package headless drives a simulation without a window, feeding it a key
// script one press per tick.
package headless

import (
	"strings"

	"freetruck-sim/internal/simulation"
	"freetruck-sim/internal/telemetry"

	"go.uber.org/zap"
)

// ParseScript turns a key script into one entry per tick. '.' is a tick
// without a key press; letters are case-insensitive.
func ParseScript(s string) []simulation.Key {
	script := make([]simulation.Key, 0, len(s))
	for _, r := range strings.ToLower(s) {
		if r == '.' {
			script = append(script, "")
			continue
		}
		script = append(script, simulation.Key(string(r)))
	}
	return script
}

// Run steps sim for ticks ticks, pressing script[i] before tick i, and
// records every snapshot. It returns the final snapshot.
func Run(sim *simulation.Simulation, ticks int, script []simulation.Key, recorder *telemetry.Recorder, logger *zap.Logger) (simulation.Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("starting headless run",
		zap.String("session", sim.ID()),
		zap.Int("ticks", ticks),
		zap.Int("script_len", len(script)),
	)

	var last simulation.Snapshot
	for i := 0; i < ticks; i++ {
		if i < len(script) && script[i] != "" {
			sim.Press(script[i])
		}
		snap, err := sim.Step()
		if err != nil {
			return last, err
		}
		if err := recorder.Record(snap); err != nil {
			return last, err
		}
		last = snap
	}

	logger.Info("headless run finished",
		zap.Uint64("tick", last.Tick),
		zap.Stringer("vehicle", last.State),
		zap.Stringer("placement", last.Placement),
	)
	return last, nil
}
