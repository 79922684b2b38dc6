package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"freetruck-sim/internal/config"
	"freetruck-sim/internal/headless"
	"freetruck-sim/internal/logging"
	"freetruck-sim/internal/projection"
	"freetruck-sim/internal/scene"
	"freetruck-sim/internal/simulation"
	"freetruck-sim/internal/telemetry"
	"freetruck-sim/internal/visualization"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

type options struct {
	headless  bool
	ticks     int
	script    []simulation.Key
	telemetry string
}

func main() {
	configPath := flag.String("config", "", "Path to config YAML (empty = built-in defaults)")
	scenePath := flag.String("scene", "", "Path to scene YAML (overrides scene.path)")
	headlessMode := flag.Bool("headless", false, "Run without a window")
	ticks := flag.Int("ticks", 200, "Ticks to run in headless mode")
	keys := flag.String("keys", "", "Headless key script, one key per tick ('.' = no key), e.g. wwwww..qq")
	telemetryPath := flag.String("telemetry", "", "Write per-tick CSV to this path (overrides telemetry.path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *scenePath != "" {
		cfg.Scene.Path = *scenePath
	}
	if *telemetryPath != "" {
		cfg.Telemetry.Path = *telemetryPath
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	opts := options{
		headless:  *headlessMode,
		ticks:     *ticks,
		script:    headless.ParseScript(*keys),
		telemetry: cfg.Telemetry.Path,
	}
	if err := run(cfg, opts, logger); err != nil {
		logger.Fatal("freetruck stopped", zap.Error(err))
	}
}

func loadScene(path string) (*scene.Document, error) {
	if path == "" {
		return scene.Default()
	}
	return scene.Load(path)
}

func run(cfg *config.Config, opts options, logger *zap.Logger) error {
	doc, err := loadScene(cfg.Scene.Path)
	if err != nil {
		return err
	}

	recorder, err := telemetry.Create(opts.telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Warn("closing telemetry", zap.Error(err))
		}
	}()

	if opts.headless {
		return runHeadless(cfg, doc, opts, recorder, logger)
	}
	return runWindow(cfg, doc, recorder, logger)
}

func runHeadless(cfg *config.Config, doc *scene.Document, opts options, recorder *telemetry.Recorder, logger *zap.Logger) error {
	sim, err := simulation.NewSimulation(cfg.Settings(), doc, simulation.NopDisplay{}, logger)
	if err != nil {
		return err
	}
	last, err := headless.Run(sim, opts.ticks, opts.script, recorder, logger)
	if err != nil {
		return err
	}
	fmt.Printf("tick %d: %s at %s, camera %s\n", last.Tick, last.State, last.Placement, last.Mode)
	return nil
}

func runWindow(cfg *config.Config, doc *scene.Document, recorder *telemetry.Recorder, logger *zap.Logger) error {
	projector := projection.NewProjector(cfg.Window.Width, cfg.Window.Height, cfg.Camera.FOVDegrees)
	renderer := visualization.NewRenderer(doc, projector, logger)

	sim, err := simulation.NewSimulation(cfg.Settings(), doc, renderer, logger)
	if err != nil {
		return err
	}
	renderer.Attach(sim)
	renderer.OnTick(func(s simulation.Snapshot) error {
		return recorder.Record(s)
	})

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TicksPerSecond())

	logger.Info("opening window",
		zap.String("session", sim.ID()),
		zap.Int("tps", cfg.TicksPerSecond()),
	)
	if err := ebiten.RunGame(renderer); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
