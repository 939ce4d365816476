package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Yousifus/particle-life-app-sub000/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title       string
	Particles   int
	Types       int
	TickRate    float64
	FPS         int32
	Paused      bool
	Wrap        bool
	Threads     int
	Selected    int // particles under the cursor
	SnapshotAge time.Duration
	NotReacting bool
	Failures    int64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Types: %d | Threads: %d", data.Particles, data.Types, data.Threads),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Ticks/s: %.0f | FPS: %d | Cursor: %d", data.TickRate, data.FPS, data.Selected),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	if !data.Wrap {
		statusText += " | walls"
	}
	if data.Failures > 0 {
		statusText += fmt.Sprintf(" | %d failed tasks", data.Failures)
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)

	if data.NotReacting {
		rl.DrawText(
			fmt.Sprintf("Simulation not reacting (%s)", data.SnapshotAge.Round(100*time.Millisecond)),
			10, 95, 16, h.renderer.Theme.WarningColor,
		)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the loop's phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// perfPhases is the display order of tick phases.
var perfPhases = []string{telemetry.PhaseTasks, telemetry.PhaseStep, telemetry.PhaseIdle}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Loop Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Tick: %s avg, %s p90", stats.AvgTickDuration.Round(time.Microsecond), stats.P90TickDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, name := range perfPhases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if name != telemetry.PhaseIdle {
			if pct > 60 {
				color = rl.Red
			} else if pct > 30 {
				color = rl.Orange
			}
		}
		rl.DrawText(
			fmt.Sprintf("%-8s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// TypePanel renders the per-type particle histogram.
type TypePanel struct {
	renderer *Renderer
}

// NewTypePanel creates a histogram panel.
func NewTypePanel() *TypePanel {
	return &TypePanel{renderer: NewRenderer()}
}

// Draw renders one bar per type and the population summary below them,
// returning the Y position after the panel.
func (t *TypePanel) Draw(x, y, width int32, counts []int, colors []rl.Color, stats telemetry.PopulationStats) int32 {
	r := t.renderer
	y = r.DrawSectionHeader(x, y, "Types")
	for i, n := range counts {
		color := rl.White
		if i < len(colors) {
			color = colors[i]
		}
		y = r.DrawCountBar(x, y, fmt.Sprintf("type %d", i), n, stats.Particles, color, width)
	}
	return r.DrawSection(x, y+4, PopulationSection, stats, width)
}

// PopulationSection describes the summary fields of a PopulationStats.
var PopulationSection = SectionDescriptor{
	Title: "Population",
	Fields: []FieldDescriptor{
		{Label: "particles", Widget: WidgetText, Format: "%.0f", Getter: popGetter(func(s telemetry.PopulationStats) float64 { return float64(s.Particles) })},
		{Label: "mean", Widget: WidgetText, Format: "%.1f", Getter: popGetter(func(s telemetry.PopulationStats) float64 { return s.Mean })},
		{Label: "stddev", Widget: WidgetText, Format: "%.1f", Getter: popGetter(func(s telemetry.PopulationStats) float64 { return s.StdDev })},
		{Label: "range", Widget: WidgetText, TextGetter: func(d any) string {
			s, _ := d.(telemetry.PopulationStats)
			return fmt.Sprintf("%d..%d", s.MinCount, s.MaxCount)
		}},
		{Label: "balance", Widget: WidgetBar, Getter: popGetter(func(s telemetry.PopulationStats) float64 { return s.Balance })},
	},
}

func popGetter(f func(telemetry.PopulationStats) float64) func(any) float32 {
	return func(d any) float32 {
		s, ok := d.(telemetry.PopulationStats)
		if !ok {
			return 0
		}
		return float32(f(s))
	}
}
