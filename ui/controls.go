package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action is a set of user requests raised by the control panel in one frame.
type Action uint32

const (
	ActionSettings Action = 1 << iota // RMax, Friction or Force changed
	ActionParticles
	ActionMatrixSize
	ActionThreads
	ActionRandomizePositions
	ActionRandomizeTypes
	ActionRandomizeMatrix
	ActionEqualize
	ActionToggleWrap
	ActionTogglePause
	ActionNextPositionSetter
	ActionNextTypeSetter
	ActionNextMatrixGenerator
	ActionReset
	ActionClearParticles
)

// Has reports whether all bits of f are set.
func (a Action) Has(f Action) bool { return a&f == f }

// Slider limits.
const (
	MaxParticles  = 100000
	ParticleStep  = 100
	MaxMatrixSize = 16
)

// ControlState is the editable state shown by the control panel. Draw
// writes slider changes back into it.
type ControlState struct {
	RMax       float64
	Friction   float64
	Force      float64
	Particles  int
	MatrixSize int
	Threads    int
	MaxThreads int

	PositionSetter  string
	TypeSetter      string
	MatrixGenerator string

	Wrap   bool
	Paused bool
}

// ControlsPanel renders the raygui control panel on the right of the screen.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
}

// NewControlsPanel creates a control panel of the given width.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
	}
}

// Width returns the panel width in pixels.
func (c *ControlsPanel) Width() int32 { return c.width }

// Draw renders the panel with its left edge at x and returns the actions
// the user triggered. s is updated with slider positions.
func (c *ControlsPanel) Draw(x, height int32, s *ControlState) Action {
	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(x, 0, c.width, height)

	var act Action
	lx := float32(x + pad + 70)
	w := float32(c.width-pad*2) - 70 - 40
	y := float32(pad)

	slider := func(label string, value, lo, hi float32, format string) float32 {
		v := gui.SliderBar(rl.Rectangle{X: lx, Y: y, Width: w, Height: 16}, label, fmt.Sprintf(format, value), value, lo, hi)
		y += 24
		return v
	}
	button := func(col int, text string) bool {
		bw := (float32(c.width-pad*2) - 8) / 2
		bx := float32(x+pad) + float32(col)*(bw+8)
		return gui.Button(rl.Rectangle{X: bx, Y: y, Width: bw, Height: 24}, text)
	}

	rl.DrawText("Physics", x+pad, int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 20
	if v := slider("rmax", float32(s.RMax), 0.005, 0.2, "%.3f"); v != float32(s.RMax) {
		s.RMax = float64(v)
		act |= ActionSettings
	}
	if v := slider("friction", float32(s.Friction), 0, 1, "%.2f"); v != float32(s.Friction) {
		s.Friction = float64(v)
		act |= ActionSettings
	}
	if v := slider("force", float32(s.Force), 0, 5, "%.2f"); v != float32(s.Force) {
		s.Force = float64(v)
		act |= ActionSettings
	}

	y += 8
	rl.DrawText("Population", x+pad, int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 20
	if n := SnapParticles(slider("particles", float32(s.Particles), 0, MaxParticles, "%.0f")); n != SnapParticles(float32(s.Particles)) {
		s.Particles = n
		act |= ActionParticles
	}
	if n := int(math.Round(float64(slider("types", float32(s.MatrixSize), 1, MaxMatrixSize, "%.0f")))); n != s.MatrixSize && n >= 1 {
		s.MatrixSize = n
		act |= ActionMatrixSize
	}
	if n := int(math.Round(float64(slider("threads", float32(s.Threads), 1, float32(max(s.MaxThreads, 1)), "%.0f")))); n != s.Threads && n >= 1 {
		s.Threads = n
		act |= ActionThreads
	}

	y += 8
	rl.DrawText("Generators", x+pad, int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += 20
	if button(0, "positions: "+s.PositionSetter) {
		act |= ActionNextPositionSetter
	}
	if button(1, "randomize [p]") {
		act |= ActionRandomizePositions
	}
	y += 30
	if button(0, "types: "+s.TypeSetter) {
		act |= ActionNextTypeSetter
	}
	if button(1, "randomize [c]") {
		act |= ActionRandomizeTypes
	}
	y += 30
	if button(0, "matrix: "+s.MatrixGenerator) {
		act |= ActionNextMatrixGenerator
	}
	if button(1, "randomize [m]") {
		act |= ActionRandomizeMatrix
	}
	y += 30
	if button(0, "equalize [e]") {
		act |= ActionEqualize
	}
	if button(1, toggleText(s.Wrap, "walls [b]", "wrap [b]")) {
		act |= ActionToggleWrap
	}
	y += 30
	if button(0, toggleText(s.Paused, "resume", "pause")) {
		act |= ActionTogglePause
	}
	return act
}

// DrawNotReacting draws the dialog shown while the simulation does not
// publish snapshots, returning ActionReset or ActionClearParticles when
// the user picks one.
func (c *ControlsPanel) DrawNotReacting(screenW, screenH int32) Action {
	r := c.renderer
	const w, h = 340, 110
	x := (screenW - w) / 2
	y := (screenH - h) / 2
	r.DrawPanel(x, y, w, h)
	rl.DrawText("The simulation is not reacting.", x+r.Theme.Padding, y+r.Theme.Padding, 16, r.Theme.WarningColor)
	rl.DrawText("Reset it or drop all particles.", x+r.Theme.Padding, y+r.Theme.Padding+22, r.Theme.FontSize, r.Theme.LabelColor)

	var act Action
	by := float32(y + h - 40)
	if gui.Button(rl.Rectangle{X: float32(x + r.Theme.Padding), Y: by, Width: 150, Height: 28}, "reset") {
		act |= ActionReset
	}
	if gui.Button(rl.Rectangle{X: float32(x + w - r.Theme.Padding - 150), Y: by, Width: 150, Height: 28}, "particles = 0") {
		act |= ActionClearParticles
	}
	return act
}

// SnapParticles rounds a slider value to a particle count step within
// [0, MaxParticles].
func SnapParticles(v float32) int {
	n := int(math.Round(float64(v)/ParticleStep)) * ParticleStep
	return max(0, min(MaxParticles, n))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
