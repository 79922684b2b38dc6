package visualization

import (
	"errors"
	"fmt"
	"image/color"

	"freetruck-sim/internal/common"
	"freetruck-sim/internal/projection"
	"freetruck-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const (
	bodyStroke  = 2.0
	solidStroke = 1.0
)

var (
	backgroundColor = color.RGBA{230, 230, 230, 255}
	bodyColor       = color.RGBA{200, 40, 40, 255}
	hitColor        = color.RGBA{255, 140, 0, 255}
	solidColor      = color.RGBA{60, 60, 90, 255}
)

// Scene is the wireframe source the renderer draws from.
type Scene interface {
	BodyNames() []string
	SolidNames() []string
	BodyWireframe(body string) ([][2]common.Vector, error)
	SolidWireframe(solid string) ([][2]common.Vector, error)
}

// TickFunc is called after every simulation tick.
type TickFunc func(simulation.Snapshot) error

// Renderer implements ebiten.Game and is the simulation's Display. Every
// ebiten tick is one simulation tick, so the game's TPS is the timer rate.
type Renderer struct {
	sim       *simulation.Simulation
	scene     Scene
	projector *projection.Projector
	logger    *zap.Logger
	onTick    TickFunc

	screenWidth  int
	screenHeight int

	keys    []ebiten.Key
	last    simulation.Snapshot
	redraws uint64
}

// NewRenderer creates a renderer. The simulation is attached afterwards,
// because the simulation needs the renderer as its Display.
func NewRenderer(scene Scene, projector *projection.Projector, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		scene:     scene,
		projector: projector,
		logger:    logger,
	}
}

// Attach sets the simulation stepped by Update.
func (r *Renderer) Attach(sim *simulation.Simulation) {
	r.sim = sim
}

// OnTick registers a hook called with every snapshot.
func (r *Renderer) OnTick(fn TickFunc) {
	r.onTick = fn
}

// SetView points the projector at the new camera view.
func (r *Renderer) SetView(v simulation.View) {
	if err := r.projector.SetView(v); err != nil {
		r.logger.Warn("camera view rejected", zap.Error(err))
	}
}

// Redraw counts redraw requests. ebiten draws every frame anyway.
func (r *Renderer) Redraw() {
	r.redraws++
}

// Update is called every tick.
func (r *Renderer) Update() error {
	if r.sim == nil {
		return errors.New("renderer has no simulation attached")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	r.pollKeys()

	snap, err := r.sim.Step()
	if err != nil {
		return err
	}
	r.last = snap

	if r.onTick != nil {
		if err := r.onTick(snap); err != nil {
			return err
		}
	}
	return nil
}

// Draw is called every frame to render the scene.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, name := range r.scene.SolidNames() {
		edges, err := r.scene.SolidWireframe(name)
		if err != nil {
			continue
		}
		r.strokeEdges(screen, edges, solidStroke, solidColor)
	}

	bc := bodyColor
	if r.last.Collided() {
		bc = hitColor
	}
	for _, name := range r.scene.BodyNames() {
		edges, err := r.scene.BodyWireframe(name)
		if err != nil {
			continue
		}
		r.strokeEdges(screen, edges, bodyStroke, bc)
	}

	r.drawDebugInfo(screen)
}

func (r *Renderer) strokeEdges(screen *ebiten.Image, edges [][2]common.Vector, width float32, clr color.Color) {
	for _, e := range edges {
		x0, y0, x1, y1, ok := r.projector.ProjectSegment(e[0], e[1])
		if !ok {
			continue
		}
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, clr, true)
	}
}

func (r *Renderer) drawDebugInfo(screen *ebiten.Image) {
	s := r.last
	msg := fmt.Sprintf("Tick: %d  FPS: %.1f  TPS: %.1f\n", s.Tick, ebiten.ActualFPS(), ebiten.ActualTPS())
	msg += fmt.Sprintf("Throttle: %.0f  Speed: %.2f  Yaw: %.2f\n", s.State.ThrottlePosition, s.State.ForwardSpeed, s.State.YawAngle)
	msg += fmt.Sprintf("Position: %s\n", common.Format(s.Placement.Position))
	msg += fmt.Sprintf("Camera: %s\n", s.Mode)
	if s.Collided() {
		msg += fmt.Sprintf("COLLISION: %v\n", s.Collisions)
	}
	msg += "w/s throttle  q/e steer  c chase  x overhead  esc quit"
	ebitenutil.DebugPrint(screen, msg)
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != r.screenWidth || outsideHeight != r.screenHeight {
		r.screenWidth = outsideWidth
		r.screenHeight = outsideHeight
		r.projector.Resize(outsideWidth, outsideHeight)
	}
	return r.screenWidth, r.screenHeight
}
