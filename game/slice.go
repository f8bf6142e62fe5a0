package game

import (
	"image/color"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/systems"
)

var slashColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Slice hit-tests one gesture segment from a to b against every sliceable
// fruit and applies the slice transition to each one it touches.
//
// path holds the recent pointer samples drawn with the trail; nil draws the
// bare segment. Returns the number of fruit sliced.
func (w *World) Slice(a, b r2.Vec, path []r2.Vec) int {
	seg := systems.Segment{A: a, B: b}
	w.audio.OnSliceMotion()
	w.addSlash(seg, path)

	points := w.cfg.Scoring.SlicePoints
	burst := systems.Burst{
		Count:      w.cfg.Particles.SliceBurst,
		SpeedMin:   w.cfg.Particles.SliceSpeedMin,
		SpeedRange: w.cfg.Particles.SliceSpeedRange,
		Spread:     2 * math.Pi,
	}

	w.pieces = w.pieces[:0]
	hits, splits := 0, 0

	query := w.fruitFilter.Query()
	for query.Next() {
		pos, vel, rot, motion, fruit := query.Get()
		if !fruit.Sliceable() {
			continue
		}
		body := systems.Body{Pos: pos, Vel: vel, Rot: rot, Motion: motion, Fruit: fruit}
		if !w.hitTest(seg, body.Center(), fruit.Size) {
			continue
		}

		pieces, ok := systems.SliceFruit(body, w.rng, &w.split)
		if !ok {
			continue
		}
		hits++
		if len(pieces) > 0 {
			splits++
		}
		w.pieces = append(w.pieces, pieces...)

		burst.Color = fruit.Kind.Info().Main
		fruit.Particles = burst.Emit(w.pool, w.rng, body.Center(), fruit.Particles)

		slog.Debug("slice",
			"kind", fruit.Kind.String(),
			"generation", fruit.Generation,
			"size", fruit.Size,
			"split", len(pieces) > 0,
		)
	}

	// The world is locked while the query is open.
	for i := range w.pieces {
		w.addPiece(&w.pieces[i])
	}

	for i := 0; i < hits; i++ {
		w.score += points
		w.audio.OnEntityHit()
		w.scores.OnScoreDelta(points)
		w.collector.RecordScore(points)
		w.collector.RecordSlice(i < splits)
	}
	w.collector.RecordSegment(hits)

	w.relievePressure()
	return hits
}

// hitTest applies the configured hit policy to a fruit centred at c.
func (w *World) hitTest(seg systems.Segment, c r2.Vec, size float64) bool {
	if seg.Degenerate() {
		return false
	}
	if w.cfg.Hit.Policy == config.HitRadius {
		return systems.PointInRadius(seg.B, c, w.cfg.Hit.Radius*size)
	}
	return systems.SegmentIntersectsBox(seg, systems.BoxAround(c, w.cfg.Fruit.BaseExtent*size))
}

// addSlash records a trail for the segment with a coned burst at its start.
func (w *World) addSlash(seg systems.Segment, path []r2.Vec) {
	s := systems.NewSlashEffect(seg, path)
	d := r2.Sub(seg.B, seg.A)
	burst := systems.Burst{
		Count:      w.cfg.Slash.Burst,
		SpeedMin:   w.cfg.Slash.SpeedMin,
		SpeedRange: w.cfg.Slash.SpeedRange,
		Angle:      math.Atan2(d.Y, d.X),
		Spread:     w.cfg.Slash.Spread,
		Color:      slashColor,
	}
	s.Particles = burst.Emit(w.pool, w.rng, seg.A, s.Particles)
	w.slashes = append(w.slashes, s)
}

// relievePressure resets the pool once the live-particle heuristic passes the
// high-water mark. Handles held by fruit and trails go stale and are dropped
// on their next advance.
func (w *World) relievePressure() {
	if w.pool.Pressure() <= w.cfg.Particles.HighWater {
		return
	}
	slog.Debug("particle pool reset",
		"active", w.pool.ActiveCount(),
		"capacity", w.pool.Capacity(),
	)
	w.pool.ResetAll()
	w.collector.RecordPoolReset()
}

// sliceable returns the centres of every fruit a segment could slice now.
func (w *World) sliceable() []r2.Vec {
	var out []r2.Vec
	query := w.fruitFilter.Query()
	for query.Next() {
		pos, _, _, _, fruit := query.Get()
		if fruit.Sliceable() {
			out = append(out, r2.Vec{X: pos.X, Y: pos.Y})
		}
	}
	return out
}
