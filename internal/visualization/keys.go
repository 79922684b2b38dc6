package visualization

import (
	"freetruck-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = map[ebiten.Key]simulation.Key{
	ebiten.KeyW: simulation.KeyThrottle,
	ebiten.KeyS: simulation.KeyBrake,
	ebiten.KeyQ: simulation.KeySteerLeft,
	ebiten.KeyE: simulation.KeySteerRight,
	ebiten.KeyC: simulation.KeyChaseCamera,
	ebiten.KeyX: simulation.KeyOverheadCamera,
}

// pollKeys forwards this tick's key transitions to the simulation's input
// queue. Keys the simulation does not know are not forwarded.
func (r *Renderer) pollKeys() {
	r.keys = inpututil.AppendJustPressedKeys(r.keys[:0])
	r.push(simulation.KeyDown)
	r.keys = inpututil.AppendJustReleasedKeys(r.keys[:0])
	r.push(simulation.KeyUp)
}

func (r *Renderer) push(state simulation.KeyState) {
	for _, k := range r.keys {
		key, ok := keyMap[k]
		if !ok {
			continue
		}
		r.sim.PushKey(simulation.KeyEvent{Key: key, State: state})
	}
}
