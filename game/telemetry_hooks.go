package game

import (
	"math"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/telemetry"
)

// flushTelemetry closes the stats window when it is due and hands it to the callback.
func (w *World) flushTelemetry() {
	if !w.collector.ShouldFlush(w.tick) {
		return
	}

	stats := w.collector.Flush(w.tick, w.snapshot())
	if w.onWindow != nil {
		w.onWindow(stats)
	}
}

// snapshot samples world state for the window record.
func (w *World) snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		LiveFruit:       w.fruitCount,
		Score:           w.score,
		SpeedMul:        w.speedMul,
		Theme:           w.theme,
		ActiveParticles: w.pool.ActiveCount(),
	}

	query := w.fruitFilter.Query()
	for query.Next() {
		_, vel, _, _, fruit := query.Get()
		if fruit.State != components.StateWhole {
			continue
		}
		snap.Sizes = append(snap.Sizes, fruit.Size)
		snap.Speeds = append(snap.Speeds, math.Hypot(vel.X, vel.Y))
	}
	return snap
}
