package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/camera"
	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/game"
)

const bodySegments = 24

// FruitRenderer draws fruit bodies from the kind table.
type FruitRenderer struct {
	view *camera.Viewport
}

// NewFruitRenderer creates a fruit renderer.
func NewFruitRenderer(view *camera.Viewport) *FruitRenderer {
	return &FruitRenderer{view: view}
}

// Draw renders every visible fruit in the world.
func (r *FruitRenderer) Draw(w *game.World) {
	w.EachFruit(r.DrawFruit)
}

// DrawFruit renders a single fruit.
func (r *FruitRenderer) DrawFruit(f game.FruitView) {
	if !r.view.IsVisible(f.Pos, f.Extent) {
		return
	}
	info := f.Kind.Info()
	if f.BreakProgress > 0 {
		r.drawHalves(f, info)
		return
	}

	fr := newFrame(r.view, f.Pos, f.Angle)
	rad := f.Extent / 2
	rx, ry := bodyRadii(info.Shape, rad)

	switch info.Shape {
	case components.ShapeCrescent:
		r.drawCrescent(fr, f, info, rad)
		return
	case components.ShapeCluster:
		r.drawCluster(fr, f, info)
		return
	case components.ShapeStar:
		pts := star(rad, rad*0.45)
		fr.fan(pts, tint(info.Main, f.Alpha))
		fr.outline(pts, fr.length(rad*0.05), tint(info.Accent, f.Alpha))
		return
	}

	body := ellipse(rx, ry, 0, 2*math.Pi, bodySegments)
	fr.fan(body, tint(info.Main, f.Alpha))
	r.drawDetail(fr, f, info, rx, ry)

	switch {
	case info.Detail.Kind == components.DetailHatch:
		drawCrown(fr, info, rad, ry, f.Alpha)
	case info.Detail.Kind != components.DetailCap:
		drawStem(fr, info, rad, ry, f.Alpha)
	}
}

// bodyRadii returns the ellipse radii for round-bodied shapes.
func bodyRadii(shape components.Shape, rad float64) (rx, ry float64) {
	switch shape {
	case components.ShapeOval:
		return rad * 0.75, rad
	case components.ShapeTall:
		return rad * 0.6, rad
	}
	return rad, rad
}

func (r *FruitRenderer) drawDetail(fr frame, f game.FruitView, info *components.KindInfo, rx, ry float64) {
	d := &info.Detail
	c := tint(d.Color, f.Alpha)
	e := f.Extent

	switch d.Kind {
	case components.DetailSeeds:
		for i := 0; i < d.Count; i++ {
			a, dist := d.DetailPoint(f.Seed, i)
			rl.DrawCircleV(fr.at(math.Cos(a)*dist*e, math.Sin(a)*dist*e), fr.length(e*0.025), c)
		}
	case components.DetailSegments:
		thick := fr.length(e * 0.015)
		for i := 0; i < d.Count; i++ {
			a, dist := d.DetailPoint(f.Seed, i)
			rl.DrawLineEx(fr.at(0, 0), fr.at(math.Cos(a)*dist*e, math.Sin(a)*dist*e), thick, c)
		}
	case components.DetailBumps:
		for i := 0; i < d.Count; i++ {
			a, dist := d.DetailPoint(f.Seed, i)
			rl.DrawCircleV(fr.at(math.Cos(a)*dist*e, math.Sin(a)*dist*e), fr.length(e*0.035), c)
		}
	case components.DetailHatch:
		// Two families of parallel chords across the body
		thick := fr.length(e * 0.012)
		for _, axis := range [2]float64{math.Pi / 4, 3 * math.Pi / 4} {
			for k := 1; k <= d.Count; k++ {
				t := math.Pi * float64(k) / float64(d.Count+1)
				a := fr.at(rx*math.Cos(axis+t), ry*math.Sin(axis+t))
				b := fr.at(rx*math.Cos(axis-t), ry*math.Sin(axis-t))
				rl.DrawLineEx(a, b, thick, c)
			}
		}
	case components.DetailCap:
		lobe := fr.length(e * 0.09)
		for i := 0; i < d.Count; i++ {
			a := -math.Pi/2 + (float64(i)-float64(d.Count-1)/2)*0.45
			rl.DrawCircleV(fr.at(math.Cos(a)*rx*0.9, math.Sin(a)*ry*0.9), lobe, c)
		}
		rl.DrawCircleV(fr.at(0, -ry*0.95), lobe*0.6, tint(info.Stem, f.Alpha))
	}
}

func drawStem(fr frame, info *components.KindInfo, rad, top, alpha float64) {
	rl.DrawLineEx(fr.at(0, -top), fr.at(rad*0.05, -top-rad*0.3), fr.length(rad*0.08), tint(info.Stem, alpha))

	leaf := fr.child(rad*0.2, -top-rad*0.15, -0.5)
	leaf.fan(ellipse(rad*0.2, rad*0.09, 0, 2*math.Pi, 12), tint(info.Leaf, alpha))
}

// drawCrown draws spiky leaves above a tall body.
func drawCrown(fr frame, info *components.KindInfo, rad, top, alpha float64) {
	c := tint(info.Leaf, alpha)
	for i := -2; i <= 2; i++ {
		x := float64(i) * rad * 0.12
		tip := fr.at(x*1.6, -top-rad*(0.45-math.Abs(float64(i))*0.08))
		rl.DrawTriangle(fr.at(x+rad*0.08, -top+rad*0.05), tip, fr.at(x-rad*0.08, -top+rad*0.05), c)
	}
}

func (r *FruitRenderer) drawCrescent(fr frame, f game.FruitView, info *components.KindInfo, rad float64) {
	centre := fr.at(0, -rad*0.6)
	deg := float32(fr.angle * 180 / math.Pi)
	rl.DrawRing(centre, fr.length(rad*0.8), fr.length(rad*1.15), deg+25, deg+155, bodySegments, tint(info.Main, f.Alpha))

	// Tips
	tip := fr.length(rad * 0.09)
	for _, a := range [2]float64{25, 155} {
		t := a * math.Pi / 180
		rl.DrawCircleV(fr.at(math.Cos(t)*rad*0.975, -rad*0.6+math.Sin(t)*rad*0.975), tip, tint(info.Accent, f.Alpha))
	}
}

func (r *FruitRenderer) drawCluster(fr frame, f game.FruitView, info *components.KindInfo) {
	e := f.Extent
	berry := fr.length(e * 0.13)
	main := tint(info.Main, f.Alpha)
	for _, g := range components.GrapeCluster {
		rl.DrawCircleV(fr.at(g[0]*e, g[1]*e), berry, main)
	}
	rl.DrawLineEx(fr.at(0, -e*0.2), fr.at(0, -e*0.38), fr.length(e*0.04), tint(info.Stem, f.Alpha))
}

// drawHalves renders a sliced fruit as two halves drifting apart.
func (r *FruitRenderer) drawHalves(f game.FruitView, info *components.KindInfo) {
	rad := f.Extent / 2
	rx, ry := bodyRadii(info.Shape, rad)
	sep := f.BreakProgress * rad * 0.6
	tilt := f.BreakDir * f.BreakProgress * 0.4

	rind := tint(info.Accent, f.Alpha)
	flesh := tint(info.Main, f.Alpha)
	base := newFrame(r.view, f.Pos, f.Angle)

	for _, side := range [2]float64{-1, 1} {
		half := base.child(0, side*sep, side*tilt)

		from := 0.0
		if side < 0 {
			from = math.Pi
		}
		half.fan(ellipse(rx, ry, from, from+math.Pi, bodySegments/2), rind)
		half.fan(ellipse(rx*0.82, ry*0.82, from, from+math.Pi, bodySegments/2), flesh)
	}
}

// DrawAttractor marks the orbital centre of attraction.
func DrawAttractor(view *camera.Viewport, p r2.Vec) {
	c := rl.Color{R: 255, G: 255, B: 255, A: 60}
	x, y := view.ToScreen(p)
	size := view.Length(8)
	rl.DrawCircleLines(int32(x), int32(y), size, c)
	rl.DrawLineV(rl.Vector2{X: x - size, Y: y}, rl.Vector2{X: x + size, Y: y}, c)
	rl.DrawLineV(rl.Vector2{X: x, Y: y - size}, rl.Vector2{X: x, Y: y + size}, c)
}

// DrawHitBox outlines the axis-aligned box a slice is tested against.
func DrawHitBox(view *camera.Viewport, f game.FruitView) {
	if f.State != components.StateWhole {
		return
	}
	x, y := view.ToScreen(r2.Vec{X: f.Pos.X - f.Extent/2, Y: f.Pos.Y - f.Extent/2})
	side := view.Length(f.Extent)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: side, Height: side}, 1, rl.Color{R: 255, G: 255, B: 255, A: 120})
}
