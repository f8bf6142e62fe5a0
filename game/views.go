package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/systems"
)

// FruitView is a read-only snapshot of one fruit for drawing.
type FruitView struct {
	Entity        ecs.Entity
	Pos           r2.Vec
	Angle         float64
	Size          float64
	Extent        float64 // Box side length in viewport units
	Kind          components.Kind
	State         components.State
	Generation    int
	BreakProgress float64
	BreakDir      float64
	Alpha         float64
	Seed          uint64
}

// EachFruit calls fn for every fruit that is not Dead.
// fn must not call back into the world.
func (w *World) EachFruit(fn func(FruitView)) {
	extent := w.cfg.Fruit.BaseExtent
	query := w.fruitFilter.Query()
	for query.Next() {
		pos, _, rot, _, fruit := query.Get()
		if fruit.State == components.StateDead {
			continue
		}
		fn(FruitView{
			Entity:        query.Entity(),
			Pos:           r2.Vec{X: pos.X, Y: pos.Y},
			Angle:         rot.Angle,
			Size:          fruit.Size,
			Extent:        extent * fruit.Size,
			Kind:          fruit.Kind,
			State:         fruit.State,
			Generation:    fruit.Generation,
			BreakProgress: fruit.BreakProgress,
			BreakDir:      fruit.BreakDir,
			Alpha:         fruit.Alpha(),
			Seed:          fruit.Seed,
		})
	}
}

// EachParticle calls fn for every live particle in the pool.
func (w *World) EachParticle(fn func(*systems.Particle)) {
	w.pool.Each(fn)
}

// EachSlash calls fn for every live slash trail, oldest first.
func (w *World) EachSlash(fn func(*systems.SlashEffect)) {
	for _, s := range w.slashes {
		if s.Life > 0 {
			fn(s)
		}
	}
}
