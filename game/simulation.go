package game

import (
	"runtime"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/sim"
	"github.com/Yousifus/particle-life-app-sub000/systems"
	"github.com/Yousifus/particle-life-app-sub000/ui"
)

// settings returns the scalar settings commands should start from: those of
// the displayed snapshot, or the configured ones before the first snapshot.
func (g *Game) settings() components.Settings {
	if g.snapshot != nil {
		return g.snapshot.Settings
	}
	sc := g.cfg.Simulation
	return components.Settings{DT: sc.DT, RMax: sc.RMax, Friction: sc.Friction, Force: sc.Force, Wrap: sc.Wrap}
}

// controlState builds the control panel state from the displayed snapshot.
func (g *Game) controlState() ui.ControlState {
	set := g.settings()
	s := ui.ControlState{
		RMax:            set.RMax,
		Friction:        set.Friction,
		Force:           set.Force,
		MatrixSize:      set.MatrixSize(),
		Threads:         g.threads,
		MaxThreads:      max(runtime.NumCPU(), g.threads),
		PositionSetter:  g.positionSetter,
		TypeSetter:      g.typeSetter,
		MatrixGenerator: g.matrixGenerator,
		Wrap:            set.Wrap,
		Paused:          g.loop.Paused(),
	}
	if g.snapshot == nil {
		s.MatrixSize = g.cfg.Simulation.MatrixSize
	} else {
		s.Particles = g.snapshot.ParticleCount
	}
	return s
}

// apply turns user actions into commands for the loop. Commands run on the
// simulation goroutine in the order they are enqueued here.
func (g *Game) apply(act ui.Action, s ui.ControlState) error {
	if act.Has(ui.ActionSettings) {
		set := g.settings()
		set.RMax, set.Friction, set.Force = s.RMax, s.Friction, s.Force
		g.loop.Enqueue(sim.SetSettings{Settings: set})
	}
	if act.Has(ui.ActionMatrixSize) {
		g.loop.Enqueue(sim.SetMatrixSize{Size: s.MatrixSize})
	}
	if act.Has(ui.ActionParticles) {
		g.loop.Enqueue(sim.SetParticleCount{N: max(s.Particles, 0)})
	}
	if act.Has(ui.ActionThreads) {
		g.threads = s.Threads
		g.loop.Enqueue(sim.SetPreferredThreads{N: s.Threads})
	}

	if act.Has(ui.ActionNextPositionSetter) {
		id := nextID(g.registry.PositionSetters(), g.positionSetter)
		setter, err := g.registry.PositionSetter(id)
		if err != nil {
			return err
		}
		g.positionSetter = id
		g.loop.Enqueue(sim.SetPositionSetter{Setter: setter})
		act |= ui.ActionRandomizePositions
	}
	if act.Has(ui.ActionNextTypeSetter) {
		id := nextID(g.registry.TypeSetters(), g.typeSetter)
		setter, err := g.registry.TypeSetter(id)
		if err != nil {
			return err
		}
		g.typeSetter = id
		g.loop.Enqueue(sim.SetTypeSetter{Setter: setter})
		act |= ui.ActionRandomizeTypes
	}
	if act.Has(ui.ActionNextMatrixGenerator) {
		id := nextID(g.registry.MatrixGenerators(), g.matrixGenerator)
		gen, err := g.registry.MatrixGenerator(id)
		if err != nil {
			return err
		}
		g.matrixGenerator = id
		g.loop.Enqueue(sim.SetMatrixGenerator{Generator: gen})
		act |= ui.ActionRandomizeMatrix
	}

	if act.Has(ui.ActionRandomizeTypes) {
		g.loop.Enqueue(sim.RandomizeTypes{})
	}
	if act.Has(ui.ActionRandomizePositions) {
		g.loop.Enqueue(sim.RandomizePositions{})
	}
	if act.Has(ui.ActionRandomizeMatrix) {
		g.loop.Enqueue(sim.RandomizeMatrix{})
	}
	if act.Has(ui.ActionEqualize) {
		g.loop.Enqueue(sim.EqualizeTypes{})
	}
	if act.Has(ui.ActionToggleWrap) {
		g.loop.Enqueue(sim.ToggleWrap{})
	}
	if act.Has(ui.ActionTogglePause) {
		g.loop.SetPaused(!g.loop.Paused())
	}
	if act.Has(ui.ActionClearParticles) {
		g.loop.Enqueue(sim.SetParticleCount{N: 0})
	}
	if act.Has(ui.ActionReset) {
		return g.Reset()
	}
	return nil
}

// nextID returns the ID after current in list, wrapping around. An unknown
// current yields the first ID.
func nextID(list []systems.Info, current string) string {
	if len(list) == 0 {
		return current
	}
	for i, info := range list {
		if info.ID == current {
			return list[(i+1)%len(list)].ID
		}
	}
	return list[0].ID
}
