package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/systems"
	"github.com/pthm-cable/fruitslice/telemetry"
)

func TestGestureSlicesOnMove(t *testing.T) {
	cfg := quietConfig()
	audio := &countingAudio{}
	collector := telemetry.NewCollector(1, cfg.Physics.DT)
	w := newTestWorld(t, cfg, Options{Seed: 1, Audio: audio, Collector: collector})
	w.SpawnFruit(FruitSpec{Pos: r2.Vec{X: 300, Y: 300}, Size: 1})
	w.SpawnFruit(FruitSpec{Pos: r2.Vec{X: 400, Y: 300}, Size: 1})

	g := NewGesture(w)
	if hits := g.Move(r2.Vec{X: 500, Y: 300}); hits != 0 || audio.motions != 0 {
		t.Fatal("move without begin should be ignored")
	}

	g.Begin(r2.Vec{X: 250, Y: 300})
	if !g.Active() {
		t.Fatal("gesture should be active after Begin")
	}

	// Shorter than the minimum segment: held, not tested.
	g.Move(r2.Vec{X: 250.5, Y: 300})
	if audio.motions != 0 {
		t.Errorf("short move produced %d segments, want 0", audio.motions)
	}

	if hits := g.Move(r2.Vec{X: 350, Y: 300}); hits != 1 {
		t.Errorf("first segment hits = %d, want 1", hits)
	}
	if hits := g.End(r2.Vec{X: 450, Y: 300}); hits != 1 {
		t.Errorf("final segment hits = %d, want 1", hits)
	}
	if g.Active() {
		t.Error("gesture should be inactive after End")
	}
	if audio.motions != 2 {
		t.Errorf("segments = %d, want 2", audio.motions)
	}

	stats := collector.Flush(1, telemetry.Snapshot{})
	if stats.BestCombo != 2 {
		t.Errorf("best combo = %d, want 2", stats.BestCombo)
	}
	if stats.Segments != 2 || stats.Misses != 0 {
		t.Errorf("segments=%d misses=%d, want 2 and 0", stats.Segments, stats.Misses)
	}
}

func TestGestureTrailPathIsBounded(t *testing.T) {
	cfg := quietConfig()
	cfg.Slash.PathLength = 3
	w := newTestWorld(t, cfg, Options{Seed: 1})

	g := NewGesture(w)
	g.Begin(r2.Vec{X: 0, Y: 0})
	for i := 1; i <= 6; i++ {
		g.Move(r2.Vec{X: float64(i * 10), Y: 0})
	}

	var last []r2.Vec
	w.EachSlash(func(s *systems.SlashEffect) { last = s.Path })
	if len(last) != 3 {
		t.Fatalf("path length = %d, want 3", len(last))
	}
	if last[2] != (r2.Vec{X: 60, Y: 0}) {
		t.Errorf("path ends at %v, want the latest sample", last[2])
	}
}

func TestGestureCancel(t *testing.T) {
	cfg := quietConfig()
	audio := &countingAudio{}
	w := newTestWorld(t, cfg, Options{Seed: 1, Audio: audio})

	g := NewGesture(w)
	g.Begin(r2.Vec{X: 0, Y: 0})
	g.Cancel()
	if g.Active() {
		t.Error("gesture should be inactive after Cancel")
	}
	if hits := g.End(r2.Vec{X: 100, Y: 0}); hits != 0 || audio.motions != 0 {
		t.Error("End after Cancel should not slice")
	}
}
