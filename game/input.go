package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Yousifus/particle-life-app-sub000/ui"
)

// particleKeyStep is the particle count change per +/- key press.
const particleKeyStep = 1000

// keyActions maps single-key shortcuts to panel actions.
var keyActions = []struct {
	key    int32
	action ui.Action
}{
	{rl.KeySpace, ui.ActionTogglePause},
	{rl.KeyP, ui.ActionRandomizePositions},
	{rl.KeyC, ui.ActionRandomizeTypes},
	{rl.KeyM, ui.ActionRandomizeMatrix},
	{rl.KeyB, ui.ActionToggleWrap},
	{rl.KeyE, ui.ActionEqualize},
}

// handleInput collects keyboard shortcuts into actions. Particle count keys
// adjust s.
func (g *Game) handleInput(s *ui.ControlState) ui.Action {
	var act ui.Action
	for _, ka := range keyActions {
		if rl.IsKeyPressed(ka.key) {
			act |= ka.action
		}
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		s.Particles = min(s.Particles+particleKeyStep, ui.MaxParticles)
		act |= ui.ActionParticles
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		s.Particles = max(s.Particles-particleKeyStep, 0)
		act |= ui.ActionParticles
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	g.handleResize()
	g.handleCameraInput()
	return act
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.camera.Resize(g.viewWidth(), h)
}

// viewWidth is the screen width left of the control panel.
func (g *Game) viewWidth() float32 {
	return max(g.screenWidth-float32(g.controls.Width()), 1)
}

// handleCameraInput processes camera pan/zoom controls and the cursor radius.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0 / g.camera.Zoom)

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && mouse.X < g.viewWidth() {
		factor := 1.0 + float64(wheel)*0.1
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			g.cursorRadius = min(max(g.cursorRadius*factor, 0.01), 1)
		} else {
			g.camera.ZoomAt(mouse.X, mouse.Y, factor)
		}
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
