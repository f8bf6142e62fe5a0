package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
)

func TestOrbitalLaunchIsTangential(t *testing.T) {
	cfg := config.Default().Motion
	cfg.Orbital.RadialBlend = 0
	o := NewOrbital(cfg.Orbital)
	rng := rand.New(rand.NewSource(1))
	f := testField()
	f.SpeedMul = 1.4

	for i := 0; i < 20; i++ {
		pos := o.Place(rng, f)
		if d := r2.Norm(r2.Sub(pos, f.Attractor)); math.Abs(d-cfg.Orbital.SpawnRadius) > 1e-9 {
			t.Fatalf("spawn distance = %v, want %v", d, cfg.Orbital.SpawnRadius)
		}
		vel, m := o.Launch(rng, pos, f)
		if dot := r2.Dot(vel, r2.Sub(pos, f.Attractor)); math.Abs(dot) > 1e-6 {
			t.Errorf("launch not perpendicular to radius: dot = %v", dot)
		}
		speed := r2.Norm(vel)
		lo := cfg.Orbital.MinSpeed * f.SpeedMul
		hi := (cfg.Orbital.MinSpeed + cfg.Orbital.SpeedRange) * f.SpeedMul
		if speed < lo || speed > hi {
			t.Errorf("speed %v outside [%v, %v]", speed, lo, hi)
		}
		if want := cfg.Orbital.Gravity * f.SpeedMul; math.Abs(m.Gravity-want) > 1e-12 {
			t.Errorf("gravity = %v, want %v", m.Gravity, want)
		}
	}
}

func TestOrbitalAtAttractorStaysFinite(t *testing.T) {
	o := NewOrbital(config.Default().Motion.Orbital)
	f := testField()

	tests := []struct {
		name string
		pos  components.Position
	}{
		{"exactly on attractor", components.Position{X: f.Attractor.X, Y: f.Attractor.Y}},
		{"within epsilon", components.Position{X: f.Attractor.X + 1e-9, Y: f.Attractor.Y}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := tc.pos
			vel := components.Velocity{}
			m := components.Motion{Gravity: 0.2}
			for i := 0; i < 10; i++ {
				o.Integrate(&pos, &vel, &m, f)
			}
			for _, x := range []float64{pos.X, pos.Y, vel.X, vel.Y} {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					t.Fatalf("non-finite state: pos=%+v vel=%+v", pos, vel)
				}
			}
		})
	}
}

func TestOrbitalDragBoundsSpeed(t *testing.T) {
	o := NewOrbital(config.Default().Motion.Orbital)
	f := testField()
	pos := components.Position{X: f.Attractor.X + 300, Y: f.Attractor.Y}
	vel := components.Velocity{X: 0, Y: 5}
	m := components.Motion{Gravity: 0.2}

	for i := 0; i < 2000; i++ {
		o.Integrate(&pos, &vel, &m, f)
		if s := math.Hypot(vel.X, vel.Y); s > 50 {
			t.Fatalf("tick %d: speed %v grew without bound", i, s)
		}
	}
}

func TestBallisticPlacesOnEdgeAndArcs(t *testing.T) {
	cfg := config.Default().Motion.Ballistic
	b := NewBallistic(cfg)
	rng := rand.New(rand.NewSource(2))
	f := testField()

	for i := 0; i < 40; i++ {
		pos := b.Place(rng, f)
		onEdge := pos.X == 0 || pos.X == f.Width || pos.Y == 0 || pos.Y == f.Height
		if !onEdge {
			t.Fatalf("spawn %v not on an edge", pos)
		}
		vel, m := b.Launch(rng, pos, f)
		if m.Gravity <= 0 {
			t.Fatalf("gravity = %v, want positive", m.Gravity)
		}
		p := components.Position{X: pos.X, Y: pos.Y}
		v := components.Velocity{X: vel.X, Y: vel.Y}
		vy0 := v.Y
		b.Integrate(&p, &v, &m, f)
		if math.Abs(v.Y-(vy0+m.Gravity)) > 1e-12 {
			t.Errorf("vy = %v, want %v", v.Y, vy0+m.Gravity)
		}
	}
}

func TestNewMotionModel(t *testing.T) {
	cfg := config.Default().Motion
	cfg.Model = config.MotionBallistic
	if got := NewMotionModel(cfg).Name(); got != config.MotionBallistic {
		t.Errorf("Name = %q, want ballistic", got)
	}
	cfg.Model = config.MotionOrbital
	if got := NewMotionModel(cfg).Name(); got != config.MotionOrbital {
		t.Errorf("Name = %q, want orbital", got)
	}
}
