package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitslice/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score      int
	Combo      int
	Tick       int32
	Steps      int
	FPS        int32
	Fruit      int
	SpeedMul   float64
	Motion     string
	Paused     bool
	Muted      bool
	AutoSlice  bool
	ScreenWide int32
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
	rl.DrawText(fmt.Sprintf("%d", data.Score), 10, 10, 40, rl.White)
	if data.Combo > 1 {
		rl.DrawText(fmt.Sprintf("x%d combo", data.Combo), 10, 52, 20, rl.Yellow)
	}

	info := fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d | Fruit: %d | Difficulty: %.2f | %s",
		data.Tick, data.Steps, data.FPS, data.Fruit, data.SpeedMul, data.Motion)
	w := rl.MeasureText(info, 14)
	rl.DrawText(info, data.ScreenWide-w-10, 10, 14, rl.RayWhite)

	y := int32(28)
	if data.Paused {
		rl.DrawText("PAUSED", data.ScreenWide-rl.MeasureText("PAUSED", 16)-10, y, 16, rl.Yellow)
		y += 18
	}
	if data.Muted {
		rl.DrawText("MUTED", data.ScreenWide-rl.MeasureText("MUTED", 16)-10, y, 16, rl.LightGray)
		y += 18
	}
	if data.AutoSlice {
		rl.DrawText("AUTO", data.ScreenWide-rl.MeasureText("AUTO", 16)-10, y, 16, rl.SkyBlue)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Color{R: 255, G: 255, B: 255, A: 160})
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the panel. windows is the number of windows flushed so far.
func (s *StatsPanel) Draw(stats telemetry.WindowStats, windows int, pressure float64) {
	r := s.renderer
	pad := r.Theme.Padding
	r.DrawPanel(s.x, s.y, s.width, 11*r.Theme.LineHeight+pad*2)

	x := s.x + pad
	y := r.DrawSectionHeader(x, s.y+pad, fmt.Sprintf("Window %d (tick %d)", windows, stats.WindowEndTick))
	y = r.DrawLabelValue(x, y, "Spawned", fmt.Sprintf("%d", stats.Spawned))
	y = r.DrawLabelValue(x, y, "Sliced", fmt.Sprintf("%d (%d splits)", stats.Sliced, stats.Splits))
	y = r.DrawLabelValue(x, y, "Lost", fmt.Sprintf("%d faded, %d offscreen", stats.Faded, stats.Offscreen))
	y = r.DrawLabelValue(x, y, "Segments", fmt.Sprintf("%d (%d misses)", stats.Segments, stats.Misses))
	y = r.DrawLabelValue(x, y, "Hit rate", fmt.Sprintf("%.0f%%", stats.HitRate*100))
	y = r.DrawLabelValue(x, y, "Combo", fmt.Sprintf("%d", stats.BestCombo))
	y = r.DrawLabelValue(x, y, "Points", fmt.Sprintf("+%d", stats.Points))
	y = r.DrawLabelValue(x, y, "Resets", fmt.Sprintf("%d", stats.PoolResets))
	r.DrawLoadBar(x, y, "Particles", float32(pressure), s.width-pad*2)
}

// PerfPanel renders the per-phase step timing panel.
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

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range telemetry.Phases() {
		avg := stats.PhaseAvg[name]
		pct := stats.PhasePct[name]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
