package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitslice/camera"
	"github.com/pthm-cable/fruitslice/game"
	"github.com/pthm-cable/fruitslice/systems"
)

// SlashRenderer draws the fading blade trail of each slash.
type SlashRenderer struct {
	view *camera.Viewport

	// Trail width in viewport units at full life
	Width float32
}

// NewSlashRenderer creates a slash renderer.
func NewSlashRenderer(view *camera.Viewport) *SlashRenderer {
	return &SlashRenderer{view: view, Width: 6}
}

// Draw renders every live slash as a tapered polyline.
func (r *SlashRenderer) Draw(w *game.World) {
	w.EachSlash(r.drawSlash)
}

func (r *SlashRenderer) drawSlash(s *systems.SlashEffect) {
	n := len(s.Path)
	if n < 2 {
		return
	}
	life := float32(s.Life)
	glow := rl.Color{R: 255, G: 255, B: 255, A: uint8(60 * life)}
	core := rl.Color{R: 255, G: 255, B: 255, A: uint8(230 * life)}

	for i := 1; i < n; i++ {
		// Thin at the tail, full width at the head
		t := float32(i) / float32(n-1)
		width := r.view.Length(float64(r.Width*life)) * (0.3 + 0.7*t)

		ax, ay := r.view.ToScreen(s.Path[i-1])
		bx, by := r.view.ToScreen(s.Path[i])
		a := rl.Vector2{X: ax, Y: ay}
		b := rl.Vector2{X: bx, Y: by}
		rl.DrawLineEx(a, b, width*2.5, glow)
		rl.DrawLineEx(a, b, width, core)
	}
}
