// Package game drives the simulation loop from the outside: it requests and
// consumes snapshots, translates user input into commands and renders the
// latest state.
package game

import (
	"fmt"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Yousifus/particle-life-app-sub000/camera"
	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/config"
	"github.com/Yousifus/particle-life-app-sub000/parallel"
	"github.com/Yousifus/particle-life-app-sub000/sim"
	"github.com/Yousifus/particle-life-app-sub000/systems"
	"github.com/Yousifus/particle-life-app-sub000/telemetry"
	"github.com/Yousifus/particle-life-app-sub000/ui"
)

// Options configures a Game.
type Options struct {
	Config    *config.Config // nil = config.Cfg()
	Seed      int64          // 0 = simulation.seed from the config
	LogStats  bool           // log perf and population stats every log interval
	OutputDir string         // CSV and config output, empty = disabled
	Headless  bool
}

// Game owns one simulation and everything that consumes it.
type Game struct {
	cfg      *config.Config
	opts     Options
	seed     int64
	registry *systems.Registry
	reporter *telemetry.LogReporter
	output   *telemetry.OutputManager

	// Simulation side, recreated by Reset
	loop     *sim.Loop
	exchange *sim.Exchange
	stepPool *parallel.Distributor
	snapPool *parallel.Distributor

	// Collaborator IDs currently installed
	positionSetter  string
	typeSetter      string
	matrixGenerator string
	threads         int

	// Consumer side
	snapshot *sim.Snapshot
	view     *View
	watchdog *Watchdog
	stats    telemetry.PopulationStats
	lastLog  time.Time
	warned   bool

	// Graphical side
	camera       *camera.Camera
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	typePanel    *ui.TypePanel
	controls     *ui.ControlsPanel
	colors       []rl.Color
	showPerf     bool
	screenWidth  float32
	screenHeight float32
	cursorRadius float64
	selected     int
}

// NewGameWithOptions creates a game and starts its simulation loop.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	now := time.Now()
	g := &Game{
		cfg:             cfg,
		opts:            opts,
		seed:            seed,
		registry:        systems.NewRegistry(seed),
		reporter:        telemetry.NewLogReporter(nil),
		output:          output,
		positionSetter:  cfg.Simulation.PositionSetter,
		typeSetter:      cfg.Simulation.TypeSetter,
		matrixGenerator: cfg.Simulation.MatrixGenerator,
		view:            NewView(),
		watchdog:        NewWatchdog(cfg.Watchdog.NotReactingThreshold, now),
		lastLog:         now,
		camera:          camera.New(cfg.Derived.ViewW32, cfg.Derived.ScreenH32, systems.WorldMin, systems.WorldMax),
		hud:             ui.NewHUD(),
		perfPanel:       ui.NewPerfPanel(10, 120),
		typePanel:       ui.NewTypePanel(),
		controls:        ui.NewControlsPanel(int32(cfg.Screen.PanelWidth)),
		screenWidth:     cfg.Derived.ScreenW32,
		screenHeight:    cfg.Derived.ScreenH32,
		cursorRadius:    0.1,
	}

	if err := g.startSimulation(); err != nil {
		output.Close()
		return nil, err
	}

	slog.Info("simulation started",
		"seed", seed,
		"particles", cfg.Simulation.InitialParticles,
		"types", cfg.Simulation.MatrixSize,
		"threads", g.threads,
		"headless", opts.Headless,
	)
	return g, nil
}

// startSimulation builds a fresh physics, loop and worker pools from the
// config and the current collaborator IDs, and starts the loop.
func (g *Game) startSimulation() error {
	sc := g.cfg.Simulation

	pos, err := g.registry.PositionSetter(g.positionSetter)
	if err != nil {
		return err
	}
	typ, err := g.registry.TypeSetter(g.typeSetter)
	if err != nil {
		return err
	}
	gen, err := g.registry.MatrixGenerator(g.matrixGenerator)
	if err != nil {
		return err
	}

	settings := components.Settings{
		DT:       sc.DT,
		RMax:     sc.RMax,
		Friction: sc.Friction,
		Force:    sc.Force,
		Wrap:     sc.Wrap,
	}
	physics := sim.NewPhysics(settings, sc.MatrixSize, pos, typ, gen, uint64(g.seed))
	physics.PreferredThreads = g.cfg.Derived.PhysicsThreads
	g.threads = physics.PreferredThreads

	g.stepPool = parallel.NewDistributor()
	g.snapPool = parallel.NewDistributor()
	g.exchange = sim.NewExchange()
	g.loop = sim.NewLoop(physics, sim.LoopOptions{
		PauseSleep:      g.cfg.Loop.PauseSleep,
		MinTickInterval: g.cfg.Loop.MinTickInterval,
		PerfWindow:      g.cfg.Loop.PerfWindow,
		Reporter:        g.reporter,
	})

	step := systems.NewForceStep(physics, g.stepPool, sc.AutoDT)
	g.loop.Enqueue(sim.SetParticleCount{N: sc.InitialParticles})
	if err := g.loop.Start(step.Step); err != nil {
		return fmt.Errorf("starting loop: %w", err)
	}

	g.snapshot = nil
	g.warned = false
	g.watchdog.Reset(time.Now())
	g.requestSnapshot()
	return nil
}

// stopSimulation stops the loop within the configured timeout. A loop that
// does not stop keeps its pools; they are left to it.
func (g *Game) stopSimulation() bool {
	timeout := g.cfg.Loop.StopTimeout
	if !g.loop.Stop(timeout) {
		slog.Warn("simulation loop did not stop in time, abandoning it",
			"timeout", timeout,
			"state", g.loop.State().String(),
		)
		return false
	}
	g.stepPool.Shutdown(g.cfg.Workers.ShutdownTimeout)
	g.snapPool.Shutdown(g.cfg.Workers.ShutdownTimeout)
	return true
}

// Reset replaces the running simulation with a fresh one built from the
// config. Collaborator choices made at runtime are kept.
func (g *Game) Reset() error {
	stopped := g.stopSimulation()
	slog.Info("resetting simulation", "stopped_cleanly", stopped)
	return g.startSimulation()
}

// requestSnapshot asks the loop for a snapshot after its next drain.
// Repeated requests before that coalesce into one.
func (g *Game) requestSnapshot() {
	g.loop.DoOnce(sim.TakeSnapshot{
		Exchange:    g.exchange,
		Distributor: g.snapPool,
		Workers:     g.cfg.Derived.SnapshotThreads,
	})
}

// pollSnapshot takes over a newly published snapshot, if any, and hands the
// previous one back for reuse.
func (g *Game) pollSnapshot() bool {
	s, ok := g.exchange.Poll()
	if !ok || s == nil {
		return false
	}
	if g.snapshot != nil && g.snapshot != s {
		g.exchange.Release(g.snapshot)
	}
	g.snapshot = s
	g.view.Sync(s)
	g.watchdog.Observe(s.Time)
	g.warned = false
	g.stats = telemetry.ComputePopulationStats(g.loop.Ticks(), s.TypeCount, s.Age())
	if n := s.Settings.MatrixSize(); n != len(g.colors) {
		g.colors = ui.TypeColors(n)
	}
	return true
}

// checkWatchdog logs once each time the simulation stops reacting.
func (g *Game) checkWatchdog(now time.Time) bool {
	if !g.watchdog.NotReacting(now) {
		return false
	}
	if !g.warned {
		slog.Warn("simulation not reacting",
			"snapshot_age", g.watchdog.Age(now),
			"state", g.loop.State().String(),
		)
		g.warned = true
	}
	return true
}

// Snapshot returns the snapshot the game currently displays, or nil.
func (g *Game) Snapshot() *sim.Snapshot {
	return g.snapshot
}

// View returns the ECS mirror of the displayed snapshot.
func (g *Game) View() *View {
	return g.view
}

// Loop returns the running simulation loop.
func (g *Game) Loop() *sim.Loop {
	return g.loop
}

// Stats returns the population statistics of the displayed snapshot.
func (g *Game) Stats() telemetry.PopulationStats {
	return g.stats
}

// Tick returns the number of ticks the current loop has run.
func (g *Game) Tick() int64 {
	return g.loop.Ticks()
}

// Unload writes the final telemetry, stops the simulation and closes output.
func (g *Game) Unload() {
	g.flushTelemetry(time.Now(), true)
	g.stopSimulation()
	if err := g.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	slog.Info("simulation unloaded", "failed_tasks", g.reporter.Failures())
}
