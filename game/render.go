package game

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Yousifus/particle-life-app-sub000/components"
	"github.com/Yousifus/particle-life-app-sub000/ui"
)

const controlsLegend = "[Space] Pause  [P] Positions  [C] Types  [M] Matrix  [B] Wrap  [E] Equalize  [+/-] Particles  [Wheel] Zoom  [Shift+Wheel] Cursor  [F3] Perf"

var backgroundColor = rl.Color{R: 8, G: 10, B: 14, A: 255}

// Update runs one graphical frame of consumer work: it picks up the latest
// snapshot, handles keyboard input and requests the next snapshot.
func (g *Game) Update() {
	now := time.Now()
	g.loop.Perf().RecordFrame()

	g.pollSnapshot()
	s := g.controlState()
	if act := g.handleInput(&s); act != 0 {
		g.applyLogged(act, s)
	}

	if g.snapshot != nil {
		g.camera.Wrap = g.snapshot.Settings.Wrap
		mouse := rl.GetMousePosition()
		wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
		g.selected = g.view.CountWithin(wx, wy, g.cursorRadius)
	}

	g.checkWatchdog(now)
	g.flushTelemetry(now, false)
	g.requestSnapshot()
}

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawParticles()
	g.drawCursor()

	now := time.Now()
	notReacting := g.watchdog.NotReacting(now)
	set := g.settings()
	g.hud.Draw(ui.HUDData{
		Title:       "Particle Life",
		Particles:   g.view.Len(),
		Types:       len(g.view.TypeCount()),
		TickRate:    g.loop.AvgTickRate(),
		FPS:         rl.GetFPS(),
		Paused:      g.loop.Paused(),
		Wrap:        set.Wrap,
		Threads:     g.threads,
		Selected:    g.selected,
		SnapshotAge: g.watchdog.Age(now),
		NotReacting: notReacting,
		Failures:    g.reporter.Failures(),
	})
	if g.showPerf {
		g.perfPanel.Draw(g.loop.Stats())
	}
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	panelX := int32(g.viewWidth())
	s := g.controlState()
	act := g.controls.Draw(panelX, int32(g.screenHeight), &s)
	theme := ui.DefaultTheme()
	g.typePanel.Draw(panelX+theme.Padding, 400, g.controls.Width()-theme.Padding*2, g.view.TypeCount(), g.colors, g.stats)

	if notReacting {
		act |= g.controls.DrawNotReacting(int32(g.viewWidth()), int32(g.screenHeight))
	}
	if act != 0 {
		g.applyLogged(act, s)
	}
}

func (g *Game) applyLogged(act ui.Action, s ui.ControlState) {
	if err := g.apply(act, s); err != nil {
		slog.Error("failed to apply control action", "action", uint32(act), "error", err)
	}
}

// drawParticles draws every mirrored particle in its type color.
func (g *Game) drawParticles() {
	radius := max(g.camera.ScreenLength(0.004), 1)
	viewW := g.viewWidth()
	g.view.Each(func(pos components.Position, _ components.Velocity, typ int) {
		sx, sy := g.camera.WorldToScreen(float64(pos.X), float64(pos.Y))
		if sx < -radius || sy < -radius || sx > viewW+radius || sy > g.screenHeight+radius {
			return
		}
		color := rl.White
		if typ < len(g.colors) {
			color = g.colors[typ]
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	})
}

// drawCursor outlines the selection radius around the mouse.
func (g *Game) drawCursor() {
	mouse := rl.GetMousePosition()
	if mouse.X >= g.viewWidth() {
		return
	}
	rl.DrawCircleLines(int32(mouse.X), int32(mouse.Y), g.camera.ScreenLength(g.cursorRadius), rl.Color{R: 200, G: 200, B: 200, A: 120})
}
