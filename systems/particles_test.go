package systems

import (
	"image/color"
	"testing"

	"github.com/pthm-cable/fruitslice/components"
)

var white = color.RGBA{255, 255, 255, 255}

func TestParticlePoolWrapsAfterCapacity(t *testing.T) {
	const capacity = 16
	pool := NewParticlePool(capacity, 3)

	first := pool.Acquire(0, 0, 0, 0, white)
	for i := 1; i < capacity; i++ {
		pool.Acquire(float64(i), 0, 0, 0, white)
	}
	wrapped := pool.Acquire(99, 99, 0, 0, white)

	if wrapped.Index != first.Index {
		t.Fatalf("capacity+1 acquire got slot %d, want first slot %d", wrapped.Index, first.Index)
	}
	if _, ok := pool.Get(first); ok {
		t.Error("first handle should be stale after its slot was recycled")
	}
	p, ok := pool.Get(wrapped)
	if !ok {
		t.Fatal("wrapped handle should resolve")
	}
	if p.X != 99 || p.Life != 1 {
		t.Errorf("recycled slot not reset: x=%v life=%v", p.X, p.Life)
	}
}

func TestParticlePoolActiveCountIsBounded(t *testing.T) {
	pool := NewParticlePool(4, 3)
	for i := 0; i < 10; i++ {
		pool.Acquire(0, 0, 0, 0, white)
	}
	if got := pool.ActiveCount(); got != 4 {
		t.Errorf("ActiveCount = %d, want 4", got)
	}
}

func TestParticlePoolReleaseMovesSlotToCursor(t *testing.T) {
	pool := NewParticlePool(8, 3)
	var hs []components.ParticleHandle
	for i := 0; i < 4; i++ {
		hs = append(hs, pool.Acquire(0, 0, 0, 0, white))
	}

	pool.Release(hs[1])
	if got := pool.ActiveCount(); got != 3 {
		t.Errorf("ActiveCount after release = %d, want 3", got)
	}
	if _, ok := pool.Get(hs[1]); ok {
		t.Error("released handle should be stale")
	}

	next := pool.Acquire(5, 5, 0, 0, white)
	if next.Index != hs[1].Index {
		t.Errorf("next acquire got slot %d, want released slot %d", next.Index, hs[1].Index)
	}

	// Releasing twice is a no-op.
	pool.Release(hs[1])
	if got := pool.ActiveCount(); got != 4 {
		t.Errorf("ActiveCount after stale release = %d, want 4", got)
	}
}

func TestParticlePoolResetAll(t *testing.T) {
	pool := NewParticlePool(8, 3)
	h := pool.Acquire(0, 0, 0, 0, white)
	pool.Acquire(0, 0, 0, 0, white)

	pool.ResetAll()

	if pool.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", pool.ActiveCount())
	}
	if _, ok := pool.Get(h); ok {
		t.Error("handle should be stale after ResetAll")
	}
	n := 0
	pool.Each(func(*Particle) { n++ })
	if n != 0 {
		t.Errorf("Each visited %d particles after ResetAll", n)
	}
}

func TestParticleUpdate(t *testing.T) {
	p := Particle{X: 0, Y: 0, VX: 1, VY: 0, Life: 1, Size: 3}
	p.Update(0.1, 0.02)

	if p.X != 1 || p.Y != 0 {
		t.Errorf("position = (%v, %v), want (1, 0)", p.X, p.Y)
	}
	if p.VY != 0.1 {
		t.Errorf("VY = %v, want 0.1", p.VY)
	}

	ticks := 1
	for p.Update(0.1, 0.02) {
		ticks++
	}
	if p.Life != 0 {
		t.Errorf("Life = %v, want clamped to 0", p.Life)
	}
	if ticks < 49 || ticks > 51 {
		t.Errorf("particle lived %d ticks, want about 50", ticks)
	}
	if p.Radius() != 0 {
		t.Errorf("dead particle radius = %v", p.Radius())
	}
}

func TestAdvanceDropsExpiredAndStale(t *testing.T) {
	pool := NewParticlePool(8, 3)
	live := pool.Acquire(0, 0, 0, 0, white)
	dying := pool.Acquire(0, 0, 0, 0, white)
	stale := pool.Acquire(0, 0, 0, 0, white)

	p, _ := pool.Get(dying)
	p.Life = 0.01
	pool.Release(stale)

	handles := Advance(pool, []components.ParticleHandle{live, dying, stale}, 0.1, 0.02)

	if len(handles) != 1 || handles[0] != live {
		t.Fatalf("Advance kept %v, want only %v", handles, live)
	}
	if got := pool.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount = %d, want 1", got)
	}
	pool.Each(func(p *Particle) {
		if !p.Alive() {
			t.Error("Each visited a dead particle")
		}
	})
}

func TestParticlePoolCountsNaturalExpiry(t *testing.T) {
	pool := NewParticlePool(10, 3)
	for cycle := 0; cycle < 5; cycle++ {
		var handles []components.ParticleHandle
		for i := 0; i < 5; i++ {
			handles = append(handles, pool.Acquire(0, 0, 0, 0, white))
		}
		if got := pool.ActiveCount(); got != 5 {
			t.Fatalf("cycle %d: ActiveCount after acquire = %d, want 5", cycle, got)
		}
		for len(handles) > 0 {
			handles = Advance(pool, handles, 0, 0.25)
		}
		if got := pool.ActiveCount(); got != 0 {
			t.Fatalf("cycle %d: ActiveCount after expiry = %d, want 0", cycle, got)
		}
	}
	if pool.Pressure() != 0 {
		t.Errorf("Pressure = %v, want 0", pool.Pressure())
	}
}

func TestParticlePoolOverwriteThenRelease(t *testing.T) {
	pool := NewParticlePool(2, 3)
	a := pool.Acquire(0, 0, 0, 0, white)
	pool.Acquire(0, 0, 0, 0, white)
	c := pool.Acquire(0, 0, 0, 0, white) // overwrites a's slot while alive

	pool.Release(a) // stale
	if got := pool.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount after stale release = %d, want 2", got)
	}
	pool.Release(c)
	pool.Release(c)
	if got := pool.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount after double release = %d, want 1", got)
	}
}
