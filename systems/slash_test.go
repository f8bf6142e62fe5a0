package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestSlashEffectExpires(t *testing.T) {
	pool := NewParticlePool(32, 2)
	rng := rand.New(rand.NewSource(1))

	seg := Segment{A: v(0, 0), B: v(100, 0)}
	s := NewSlashEffect(seg, nil)
	burst := Burst{Count: 8, SpeedMin: 3, SpeedRange: 5, Angle: 0, Spread: math.Pi / 4, Color: white}
	s.Particles = burst.Emit(pool, rng, seg.B, s.Particles)

	if len(s.Path) != 2 {
		t.Errorf("default path has %d points, want 2", len(s.Path))
	}
	for _, h := range s.Particles {
		p, _ := pool.Get(h)
		if p.VX <= 0 {
			t.Errorf("particle vx = %v, want along +x", p.VX)
		}
		if a := math.Abs(math.Atan2(p.VY, p.VX)); a > math.Pi/8+1e-9 {
			t.Errorf("particle angle %v outside cone", a)
		}
	}

	ticks := 0
	for s.Update(0.05, pool, 0.1, 0.02) {
		ticks++
		if ticks > 100 {
			t.Fatal("slash never expired")
		}
	}
	if ticks < 18 || ticks > 20 {
		t.Errorf("slash lived %d ticks, want about 20", ticks)
	}
	if pool.ActiveCount() != 0 {
		t.Errorf("expired slash left %d active particles", pool.ActiveCount())
	}
}

func TestNewSlashEffectCopiesPath(t *testing.T) {
	path := []r2.Vec{v(0, 0), v(5, 5), v(10, 10)}
	s := NewSlashEffect(Segment{A: path[1], B: path[2]}, path)
	path[0] = v(99, 99)
	if s.Path[0] != v(0, 0) {
		t.Error("slash path aliases caller buffer")
	}
}
