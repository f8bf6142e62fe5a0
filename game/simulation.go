package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/systems"
	"github.com/pthm-cable/fruitslice/telemetry"
)

// Step advances the simulation by one tick of dt seconds.
//
// Order: difficulty, attractor relocation, spawn, fruit update, reaping,
// slash trails, telemetry. A zero dt still moves fruit by one tick but never
// advances the difficulty or relocation timers.
func (w *World) Step(dt float64) {
	w.perf.StartTick()

	w.perf.StartPhase(telemetry.PhaseDifficulty)
	w.updateDifficulty(dt)
	w.updateAttractor(dt)

	w.perf.StartPhase(telemetry.PhaseSpawn)
	w.updateSpawn(dt)

	w.perf.StartPhase(telemetry.PhaseFruit)
	w.updateFruit()

	w.perf.StartPhase(telemetry.PhaseReap)
	w.reapDead()

	w.perf.StartPhase(telemetry.PhaseSlash)
	w.updateSlashes()

	w.tick++

	w.perf.StartPhase(telemetry.PhaseTelemetry)
	w.flushTelemetry()

	w.perf.EndTick()
}

// updateDifficulty bumps the speed multiplier and rotates the theme once per interval.
func (w *World) updateDifficulty(dt float64) {
	if !w.difficulty.Tick(dt) {
		return
	}
	w.speedMul += w.cfg.Difficulty.Increment
	w.theme = (w.theme + 1) % w.cfg.Difficulty.Themes
	slog.Info("difficulty up", "speed_mul", w.speedMul, "theme", w.theme, "tick", w.tick)
}

// updateAttractor moves the orbital attractor to a random point in the central region.
func (w *World) updateAttractor(dt float64) {
	if w.motion.Name() != config.MotionOrbital || !w.relocation.Tick(dt) {
		return
	}
	region := w.cfg.Attractor.Region
	mx := w.width * (1 - region) / 2
	my := w.height * (1 - region) / 2
	w.attractor = r2.Vec{
		X: mx + w.rng.Float64()*(w.width-2*mx),
		Y: my + w.rng.Float64()*(w.height-2*my),
	}
	slog.Info("attractor moved", "x", w.attractor.X, "y", w.attractor.Y, "tick", w.tick)
}

func (w *World) updateSpawn(dt float64) {
	if !w.spawner.Due(dt, w.rng) {
		return
	}
	if limit := w.cfg.Spawn.MaxFruit; limit > 0 && w.fruitCount >= limit {
		return
	}
	w.Spawn()
}

// updateFruit advances every fruit and records lifecycle events.
func (w *World) updateFruit() {
	f := w.field()
	query := w.fruitFilter.Query()
	for query.Next() {
		pos, vel, rot, motion, fruit := query.Get()
		body := systems.Body{Pos: pos, Vel: vel, Rot: rot, Motion: motion, Fruit: fruit}
		switch systems.UpdateFruit(body, w.motion, f, &w.lifecycle, w.pool) {
		case systems.FruitFaded:
			w.collector.RecordFaded()
		case systems.FruitOffscreen:
			w.collector.RecordOffscreen()
		}
	}
}

// reapDead removes Dead fruit collected in one pass, then releases their particles.
func (w *World) reapDead() {
	w.dead = w.dead[:0]
	query := w.fruitFilter.Query()
	for query.Next() {
		_, _, _, _, fruit := query.Get()
		if fruit.State == components.StateDead {
			systems.ReleaseAll(w.pool, fruit.Particles)
			fruit.Particles = nil
			w.dead = append(w.dead, query.Entity())
		}
	}

	for _, e := range w.dead {
		w.ecs.RemoveEntity(e)
		w.fruitCount--
	}
}

// updateSlashes advances trails and drops expired ones in place.
func (w *World) updateSlashes() {
	gravity := w.cfg.Particles.Gravity
	decay := w.cfg.Particles.Decay
	n := 0
	for _, s := range w.slashes {
		if s.Update(w.cfg.Slash.Decay, w.pool, gravity, decay) {
			w.slashes[n] = s
			n++
		}
	}
	for i := n; i < len(w.slashes); i++ {
		w.slashes[i] = nil
	}
	w.slashes = w.slashes[:n]
}
