// Package renderer draws the simulation with raylib.
package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/camera"
)

// tint converts a palette colour to raylib, scaling its alpha by a in [0, 1].
func tint(c color.RGBA, a float64) rl.Color {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * a)}
}

// frame is a rotated local coordinate system anchored at a fruit centre.
type frame struct {
	view   *camera.Viewport
	origin r2.Vec
	angle  float64
	cos    float64
	sin    float64
}

func newFrame(view *camera.Viewport, origin r2.Vec, angle float64) frame {
	s, c := math.Sincos(angle)
	return frame{view: view, origin: origin, angle: angle, cos: c, sin: s}
}

// point maps a local offset to viewport units.
func (f frame) point(x, y float64) r2.Vec {
	return r2.Vec{
		X: f.origin.X + x*f.cos - y*f.sin,
		Y: f.origin.Y + x*f.sin + y*f.cos,
	}
}

// child returns a frame anchored at a local offset and turned by an extra angle.
func (f frame) child(x, y, angle float64) frame {
	return newFrame(f.view, f.point(x, y), f.angle+angle)
}

// at maps a local offset (viewport units) to screen pixels.
func (f frame) at(x, y float64) rl.Vector2 {
	px, py := f.view.ToScreen(f.point(x, y))
	return rl.Vector2{X: px, Y: py}
}

// length maps a local distance to pixels.
func (f frame) length(d float64) float32 {
	return f.view.Length(d)
}

// fan fills a polygon that is star-shaped around the local origin.
// Points must be in increasing angle order.
func (f frame) fan(pts []r2.Vec, c rl.Color) {
	if len(pts) < 3 {
		return
	}
	centre := f.at(0, 0)
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		rl.DrawTriangle(centre, f.at(b.X, b.Y), f.at(a.X, a.Y), c)
	}
}

// outline strokes a closed polygon.
func (f frame) outline(pts []r2.Vec, thick float32, c rl.Color) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		rl.DrawLineEx(f.at(a.X, a.Y), f.at(b.X, b.Y), thick, c)
	}
}

// ellipse returns n points on an axis-aligned ellipse between angles from and to.
func ellipse(rx, ry, from, to float64, n int) []r2.Vec {
	pts := make([]r2.Vec, 0, n+1)
	for i := 0; i <= n; i++ {
		t := from + (to-from)*float64(i)/float64(n)
		pts = append(pts, r2.Vec{X: rx * math.Cos(t), Y: ry * math.Sin(t)})
	}
	return pts
}

// star returns the outline of a five-pointed star.
func star(outer, inner float64) []r2.Vec {
	const points = 5
	pts := make([]r2.Vec, 0, points*2)
	for i := 0; i < points*2; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		t := -math.Pi/2 + float64(i)*math.Pi/points
		pts = append(pts, r2.Vec{X: r * math.Cos(t), Y: r * math.Sin(t)})
	}
	return pts
}
