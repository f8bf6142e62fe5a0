package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/systems"
)

// FruitSpec describes a generation-0 fruit placed explicitly.
type FruitSpec struct {
	Pos  r2.Vec
	Vel  r2.Vec
	Kind components.Kind
	Size float64
	Spin float64 // Angular velocity per tick
}

// Spawn creates a fresh fruit placed and launched by the motion model.
func (w *World) Spawn() ecs.Entity {
	cfg := w.cfg
	f := w.field()

	pos := w.motion.Place(w.rng, f)
	vel, motion := w.motion.Launch(w.rng, pos, f)

	spec := FruitSpec{
		Pos:  pos,
		Vel:  vel,
		Kind: components.Kind(w.rng.Intn(int(components.KindCount))),
		Size: w.rng.Float64()*cfg.Fruit.SpawnSizeRange + cfg.Fruit.MinSpawnSize,
		Spin: (w.rng.Float64() - 0.5) * cfg.Fruit.MaxSpin,
	}
	return w.createFruit(spec, motion)
}

// SpawnFruit creates a generation-0 fruit at an explicit position and velocity.
// Motion parameters come from the active model at the current speed multiplier.
func (w *World) SpawnFruit(spec FruitSpec) ecs.Entity {
	_, motion := w.motion.Launch(w.rng, spec.Pos, w.field())
	if spec.Size <= 0 {
		spec.Size = 1
	}
	if spec.Kind >= components.KindCount {
		spec.Kind %= components.KindCount
	}
	return w.createFruit(spec, motion)
}

func (w *World) createFruit(spec FruitSpec, motion components.Motion) ecs.Entity {
	pos := components.Position{X: spec.Pos.X, Y: spec.Pos.Y}
	vel := components.Velocity{X: spec.Vel.X, Y: spec.Vel.Y}
	rot := components.Rotation{Angle: w.rng.Float64() * 2 * math.Pi, AngVel: spec.Spin}
	fruit := components.Fruit{
		Kind:  spec.Kind,
		Size:  spec.Size,
		State: components.StateWhole,
		Seed:  w.rng.Uint64(),
	}

	e := w.fruitMapper.NewEntity(&pos, &vel, &rot, &motion, &fruit)
	w.fruitCount++
	w.collector.RecordSpawn()

	slog.Debug("spawn",
		"kind", spec.Kind.String(),
		"size", spec.Size,
		"x", pos.X,
		"y", pos.Y,
	)
	return e
}

// addPiece inserts a split child. Must not be called while a query is open.
func (w *World) addPiece(p *systems.Piece) ecs.Entity {
	e := w.fruitMapper.NewEntity(&p.Pos, &p.Vel, &p.Rot, &p.Motion, &p.Fruit)
	w.fruitCount++
	return e
}
