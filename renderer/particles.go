package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/camera"
	"github.com/pthm-cable/fruitslice/game"
	"github.com/pthm-cable/fruitslice/systems"
)

// ParticleRenderer draws juice and slash particles.
type ParticleRenderer struct {
	view *camera.Viewport
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer(view *camera.Viewport) *ParticleRenderer {
	return &ParticleRenderer{view: view}
}

// Draw renders every live particle. Radius and opacity both shrink with life.
func (r *ParticleRenderer) Draw(w *game.World) {
	w.EachParticle(func(p *systems.Particle) {
		pos := r2.Vec{X: p.X, Y: p.Y}
		radius := p.Radius()
		if radius <= 0 || !r.view.IsVisible(pos, radius) {
			return
		}
		x, y := r.view.ToScreen(pos)
		rl.DrawCircleV(rl.Vector2{X: x, Y: y}, r.view.Length(radius), tint(p.Color, p.Life))
	})
}
