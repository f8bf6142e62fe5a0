// Package app is the raylib frontend: it polls input, steps the session and
// draws each frame.
package app

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitslice/audio"
	"github.com/pthm-cable/fruitslice/camera"
	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/game"
	"github.com/pthm-cable/fruitslice/renderer"
	"github.com/pthm-cable/fruitslice/ui"
)

const controlsLegend = "[Space] Pause  [M] Mute  [R] Restart  [,/.] Speed  [Tab] Controls  [S] Stats  [P] Perf  [F11] Fullscreen"

// App owns the window-side state for one session.
type App struct {
	cfg     *config.Config
	session *game.Session
	cues    *audio.Cues // nil when audio is unavailable
	view    *camera.Viewport

	background *renderer.BackgroundRenderer
	fruit      *renderer.FruitRenderer
	particles  *renderer.ParticleRenderer
	slashes    *renderer.SlashRenderer

	hud       *ui.HUD
	controls  *ui.ControlsPanel
	stats     *ui.StatsPanel
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry

	pointerDown bool
}

// New creates the frontend. Must be called after rl.InitWindow.
func New(cfg *config.Config, session *game.Session, cues *audio.Cues) *App {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	view := camera.New(float32(w), float32(h), rl.GetWindowScaleDPI().X)

	a := &App{
		cfg:        cfg,
		session:    session,
		cues:       cues,
		view:       view,
		background: renderer.NewBackgroundRenderer(int32(w), int32(h)),
		fruit:      renderer.NewFruitRenderer(view),
		particles:  renderer.NewParticleRenderer(view),
		slashes:    renderer.NewSlashRenderer(view),
		hud:        ui.NewHUD(),
		controls:   ui.NewControlsPanel(10, 90, 260),
		stats:      ui.NewStatsPanel(int32(w)-290, 60, 280),
		perfPanel:  ui.NewPerfPanel(int32(w)-290, 60),
		overlays:   ui.NewOverlayRegistry(),
	}
	session.World().Resize(view.Size())
	return a
}

// Update polls input and advances the simulation.
func (a *App) Update() {
	a.handleInput()
	a.session.Update()
	a.session.Perf().RecordFrame()
}

// Draw renders one frame.
func (a *App) Draw() {
	w := a.session.World()

	rl.BeginDrawing()

	a.background.Draw(w.ThemeIndex())
	if a.overlays.IsEnabled(ui.OverlayAttractor) && w.MotionModel() == config.MotionOrbital {
		renderer.DrawAttractor(a.view, w.Attractor())
	}
	a.fruit.Draw(w)
	if a.overlays.IsEnabled(ui.OverlayHitBoxes) {
		w.EachFruit(func(f game.FruitView) { renderer.DrawHitBox(a.view, f) })
	}
	a.particles.Draw(w)
	a.slashes.Draw(w)

	a.drawUI()

	rl.EndDrawing()
}

// Unload cancels any gesture in flight and stops audio.
func (a *App) Unload() {
	a.session.Gesture().Cancel()
	if a.cues != nil {
		a.cues.Close()
	}
}

func (a *App) drawUI() {
	w := a.session.World()
	screenW := int32(a.view.PixelW)
	screenH := int32(a.view.PixelH)

	a.hud.Draw(ui.HUDData{
		Score:      w.Score(),
		Combo:      a.session.Gesture().Combo(),
		Tick:       w.Tick(),
		Steps:      a.session.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Fruit:      w.FruitCount(),
		SpeedMul:   w.SpeedMultiplier(),
		Motion:     w.MotionModel(),
		Paused:     a.session.Paused(),
		Muted:      a.muted(),
		AutoSlice:  a.session.AutoSlicing(),
		ScreenWide: screenW,
	})
	a.hud.DrawControls(screenH, controlsLegend)

	switch {
	case a.overlays.IsEnabled(ui.OverlayStats):
		a.stats.Draw(a.session.LastWindow(), a.session.Windows(), w.Pool().Pressure())
	case a.overlays.IsEnabled(ui.OverlayPerf):
		a.perfPanel.Draw(a.session.Perf().Stats())
	}

	if a.overlays.IsEnabled(ui.OverlayControls) {
		actions := a.controls.Draw(ui.ControlsState{
			Paused: a.session.Paused(),
			Muted:  a.muted(),
			Steps:  a.session.StepsPerUpdate(),
		}, a.overlays)
		a.apply(actions)
	}
}

// apply carries out panel button presses.
func (a *App) apply(actions ui.ControlsActions) {
	if actions.TogglePause {
		a.togglePause()
	}
	if actions.ToggleMute {
		a.toggleMute()
	}
	if actions.Restart {
		a.restart()
	}
	if actions.Steps != a.session.StepsPerUpdate() {
		a.session.SetStepsPerUpdate(actions.Steps)
	}
}

func (a *App) muted() bool {
	return a.cues == nil || a.cues.Muted()
}

func (a *App) togglePause() {
	a.session.SetPaused(!a.session.Paused())
	if a.session.Paused() {
		a.session.Gesture().Cancel()
	}
	slog.Debug("pause toggled", "paused", a.session.Paused())
}

func (a *App) toggleMute() {
	if a.cues == nil {
		return
	}
	a.cues.SetMuted(!a.cues.Muted())
}

func (a *App) restart() {
	a.pointerDown = false
	a.session.Restart()
}
