package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the session state the panel reflects.
type ControlsState struct {
	Paused bool
	Muted  bool
	Steps  int
}

// ControlsActions reports what the user clicked this frame.
type ControlsActions struct {
	TogglePause bool
	ToggleMute  bool
	Restart     bool
	Steps       int // Slider value; equal to ControlsState.Steps when untouched
}

// ControlsPanel renders the session buttons and overlay legend.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Contains reports whether a screen point lies on the panel, so clicks on it
// don't start a slice.
func (c *ControlsPanel) Contains(p rl.Vector2, overlays *OverlayRegistry) bool {
	rect := rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height(overlays))}
	return rl.CheckCollisionPointRec(p, rect)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	items := int32(0)
	for _, cat := range overlays.Categories() {
		items += int32(len(overlays.ByCategory(cat))) + 1
	}
	return t.Padding*3 + int32(t.ButtonHeight)*2 + 40 + (items+1)*t.LineHeight
}

// Draw renders the panel and returns the actions taken.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsActions {
	r := c.renderer
	t := r.Theme
	pad := t.Padding
	actions := ControlsActions{Steps: state.Steps}

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	bw := (float32(c.width-pad*2) - 10) / 3

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	muteText := "Mute"
	if state.Muted {
		muteText = "Unmute"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: bw, Height: t.ButtonHeight}, pauseText) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + bw + 5, Y: y, Width: bw, Height: t.ButtonHeight}, muteText) {
		actions.ToggleMute = true
	}
	if gui.Button(rl.Rectangle{X: x + 2*(bw+5), Y: y, Width: bw, Height: t.ButtonHeight}, "Restart") {
		actions.Restart = true
	}
	y += t.ButtonHeight + 8

	rl.DrawText(fmt.Sprintf("Steps per frame: %d", state.Steps), int32(x), int32(y), t.FontSize, t.LabelColor)
	y += float32(t.LineHeight)
	steps := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: float32(c.width-pad*2) - 24, Height: t.ButtonHeight - 6},
		"1", "10",
		float32(state.Steps), 1, 10,
	)
	if n := int(steps + 0.5); n != state.Steps {
		actions.Steps = n
	}
	y += t.ButtonHeight + 8

	yy := int32(y)
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+pad, yy, t.HeaderFontSize, t.SectionHeader)
		yy += t.LineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+pad, yy, desc, overlays.IsEnabled(desc.ID), c.width-pad*2)
			yy += t.LineHeight
		}
	}
	return actions
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "panels":
		return "Panels"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
