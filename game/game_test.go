package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Yousifus/particle-life-app-sub000/config"
	"github.com/Yousifus/particle-life-app-sub000/systems"
	"github.com/Yousifus/particle-life-app-sub000/ui"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Defaults()
	if err != nil {
		t.Fatalf("Defaults: %v", err)
	}
	cfg.Simulation.InitialParticles = 600
	cfg.Screen.TargetFPS = 200
	cfg.Telemetry.LogInterval = 10 * time.Millisecond
	return cfg
}

func newTestGame(t *testing.T, cfg *config.Config, outputDir string) *Game {
	t.Helper()
	g, err := NewGameWithOptions(Options{Config: cfg, Seed: 7, OutputDir: outputDir, Headless: true})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	return g
}

// runUntil drives headless frames until cond holds or the deadline passes.
func runUntil(t *testing.T, g *Game, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		g.UpdateHeadless()
		if cond() {
			return
		}
	}
	t.Fatalf("timed out waiting for %s", what)
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func TestGameHeadlessPopulates(t *testing.T) {
	g := newTestGame(t, testConfig(t), "")
	defer g.Unload()

	runUntil(t, g, "initial population", func() bool { return g.View().Len() == 600 })

	if got := sum(g.View().TypeCount()); got != 600 {
		t.Errorf("type histogram sums to %d, want 600", got)
	}
	if len(g.View().TypeCount()) != 6 {
		t.Errorf("types = %d, want 6", len(g.View().TypeCount()))
	}
	if st := g.Stats(); st.Particles != 600 || st.Types != 6 {
		t.Errorf("stats = %+v, want 600 particles over 6 types", st)
	}
	runUntil(t, g, "ticks", func() bool { return g.Tick() > 0 })
}

func TestGameApplyCommands(t *testing.T) {
	g := newTestGame(t, testConfig(t), "")
	defer g.Unload()
	runUntil(t, g, "initial population", func() bool { return g.View().Len() == 600 })

	s := g.controlState()
	s.Particles = 900
	if err := g.apply(ui.ActionParticles, s); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "900 particles", func() bool { return g.View().Len() == 900 })

	if err := g.apply(ui.ActionEqualize, g.controlState()); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "equal types", func() bool {
		for _, n := range g.View().TypeCount() {
			if n != 150 {
				return false
			}
		}
		return true
	})

	s = g.controlState()
	s.RMax = 0.06
	if err := g.apply(ui.ActionSettings, s); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "rmax change", func() bool { return g.Snapshot().Settings.RMax == 0.06 })

	s = g.controlState()
	s.MatrixSize = 3
	if err := g.apply(ui.ActionMatrixSize, s); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "3 types", func() bool { return len(g.View().TypeCount()) == 3 })
	if got := sum(g.View().TypeCount()); got != 900 {
		t.Errorf("after resize histogram sums to %d, want 900", got)
	}

	wrap := g.Snapshot().Settings.Wrap
	if err := g.apply(ui.ActionToggleWrap, g.controlState()); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "wrap toggle", func() bool { return g.Snapshot().Settings.Wrap != wrap })

	if err := g.apply(ui.ActionTogglePause, g.controlState()); err != nil {
		t.Fatal(err)
	}
	if !g.Loop().Paused() {
		t.Error("expected the loop to be paused")
	}
	// a paused loop still answers snapshot requests
	if err := g.apply(ui.ActionClearParticles, g.controlState()); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "no particles", func() bool { return g.View().Len() == 0 })
}

func TestGameCycleCollaborators(t *testing.T) {
	g := newTestGame(t, testConfig(t), "")
	defer g.Unload()

	if err := g.apply(ui.ActionNextPositionSetter|ui.ActionNextTypeSetter|ui.ActionNextMatrixGenerator, g.controlState()); err != nil {
		t.Fatal(err)
	}
	if g.positionSetter != "centered" {
		t.Errorf("position setter = %q, want centered", g.positionSetter)
	}
	if g.typeSetter != "slices" {
		t.Errorf("type setter = %q, want slices", g.typeSetter)
	}
	if g.matrixGenerator != "symmetric" {
		t.Errorf("matrix generator = %q, want symmetric", g.matrixGenerator)
	}
	runUntil(t, g, "population after cycling", func() bool { return g.View().Len() == 600 })
	if g.reporter.Failures() != 0 {
		t.Errorf("failures = %d, want 0", g.reporter.Failures())
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, testConfig(t), "")
	defer g.Unload()
	runUntil(t, g, "initial population", func() bool { return g.View().Len() == 600 })

	s := g.controlState()
	s.Particles = 0
	if err := g.apply(ui.ActionParticles, s); err != nil {
		t.Fatal(err)
	}
	runUntil(t, g, "no particles", func() bool { return g.View().Len() == 0 })

	old := g.Loop()
	if err := g.apply(ui.ActionReset, g.controlState()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if g.Loop() == old {
		t.Fatal("reset should replace the loop")
	}
	runUntil(t, g, "population after reset", func() bool { return g.View().Len() == 600 })
}

func TestGameOutput(t *testing.T) {
	dir := t.TempDir()
	g := newTestGame(t, testConfig(t), dir)
	runUntil(t, g, "a snapshot", func() bool { return g.Snapshot() != nil && g.Tick() > 0 })
	for range 5 {
		g.UpdateHeadless()
	}
	g.Unload()

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml: %v", err)
	}
	for _, name := range []string{"perf.csv", "population.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) < 2 {
			t.Errorf("%s has %d lines, want a header and rows", name, len(lines))
		}
	}
}

func TestNewGameRejectsUnknownSetter(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.PositionSetter = "spiral"
	if _, err := NewGameWithOptions(Options{Config: cfg, Headless: true}); err == nil {
		t.Fatal("expected an error for an unknown position setter")
	}
}

func TestNextID(t *testing.T) {
	list := []systems.Info{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		current, want string
	}{
		{"a", "b"},
		{"c", "a"},
		{"zzz", "a"},
	}
	for _, tt := range tests {
		if got := nextID(list, tt.current); got != tt.want {
			t.Errorf("nextID(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := nextID(nil, "x"); got != "x" {
		t.Errorf("nextID on empty list = %q, want x", got)
	}
}
