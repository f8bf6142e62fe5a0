package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitslice/ui"
)

// handleInput processes keyboard and pointer input.
func (a *App) handleInput() {
	// Window resize propagation
	a.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.toggleMute()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.restart()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		a.session.SetStepsPerUpdate(a.session.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		a.session.SetStepsPerUpdate(a.session.StepsPerUpdate() + 1)
	}

	a.handleOverlayKeys()
	a.handlePointer()
}

// handleOverlayKeys toggles overlays bound to the pressed key.
func (a *App) handleOverlayKeys() {
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := a.overlays.HandleKeyPress(key); ok {
			slog.Debug("overlay toggled", "overlay", id, "enabled", on, "active", a.overlays.EnabledOverlays())
		}
	}
}

// handlePointer turns mouse or touch samples into gesture calls.
// The first touch point wins over the mouse when both are present.
func (a *App) handlePointer() {
	g := a.session.Gesture()

	if !rl.IsWindowFocused() || a.session.Paused() {
		if g.Active() {
			g.Cancel()
		}
		a.pointerDown = false
		return
	}

	var pos rl.Vector2
	down := false
	if rl.GetTouchPointCount() > 0 {
		pos = rl.GetTouchPosition(0)
		down = true
	} else {
		pos = rl.GetMousePosition()
		down = rl.IsMouseButtonDown(rl.MouseLeftButton)
	}
	p := a.view.ToWorld(pos.X, pos.Y)

	switch {
	case down && !a.pointerDown:
		// Presses on the controls panel belong to raygui
		if a.overlays.IsEnabled(ui.OverlayControls) && a.controls.Contains(pos, a.overlays) {
			return
		}
		g.Begin(p)
	case down && g.Active():
		g.Move(p)
	case !down && g.Active():
		g.End(p)
	}
	a.pointerDown = down
}

// handleResize checks for window resize and propagates new dimensions.
func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if !a.view.Resize(w, h, rl.GetWindowScaleDPI().X) {
		return
	}

	a.background.Resize(int32(w), int32(h))
	a.stats.SetPosition(int32(w)-290, 60)
	a.perfPanel.SetPosition(int32(w)-290, 60)
	a.session.World().Resize(a.view.Size())
	slog.Debug("window resized", "width", w, "height", h)
}
