package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
)

// Field is the world state a motion model reads each tick.
type Field struct {
	Attractor r2.Vec
	Width     float64
	Height    float64
	SpeedMul  float64
}

// Centre returns the middle of the viewport.
func (f Field) Centre() r2.Vec {
	return r2.Vec{X: f.Width / 2, Y: f.Height / 2}
}

// MotionModel places, launches and integrates Whole fruit.
// One model is chosen per run; fruit never mix models.
type MotionModel interface {
	Name() string
	// Place returns a spawn position.
	Place(rng *rand.Rand, f Field) r2.Vec
	// Launch returns the initial velocity and the motion parameters baked in at spawn.
	Launch(rng *rand.Rand, pos r2.Vec, f Field) (r2.Vec, components.Motion)
	// Integrate advances one tick.
	Integrate(pos *components.Position, vel *components.Velocity, m *components.Motion, f Field)
}

// NewMotionModel builds the configured model. Unknown names fall back to orbital;
// config validation rejects them before this point.
func NewMotionModel(cfg config.MotionConfig) MotionModel {
	if cfg.Model == config.MotionBallistic {
		return &Ballistic{cfg: cfg.Ballistic}
	}
	return &Orbital{cfg: cfg.Orbital}
}

// Orbital pulls fruit toward the world's attractor with a force that falls
// off with distance, damped by drag so orbits stay bounded.
type Orbital struct {
	cfg config.OrbitalConfig
}

// NewOrbital creates an orbital model from explicit parameters.
func NewOrbital(cfg config.OrbitalConfig) *Orbital {
	return &Orbital{cfg: cfg}
}

func (o *Orbital) Name() string { return config.MotionOrbital }

func (o *Orbital) Place(rng *rand.Rand, f Field) r2.Vec {
	a := rng.Float64() * 2 * math.Pi
	return r2.Add(f.Attractor, r2.Vec{X: math.Cos(a) * o.cfg.SpawnRadius, Y: math.Sin(a) * o.cfg.SpawnRadius})
}

func (o *Orbital) Launch(rng *rand.Rand, pos r2.Vec, f Field) (r2.Vec, components.Motion) {
	radial := r2.Sub(pos, f.Attractor)
	a := math.Atan2(radial.Y, radial.X)
	tangent := r2.Vec{X: math.Cos(a + math.Pi/2), Y: math.Sin(a + math.Pi/2)}
	inward := r2.Vec{X: -math.Cos(a), Y: -math.Sin(a)}

	dir := tangent
	if b := o.cfg.RadialBlend; b > 0 {
		dir = r2.Add(r2.Scale(1-b, tangent), r2.Scale(b, inward))
		if n := r2.Norm(dir); n > 0 {
			dir = r2.Scale(1/n, dir)
		} else {
			dir = tangent
		}
	}

	speed := (rng.Float64()*o.cfg.SpeedRange + o.cfg.MinSpeed) * f.SpeedMul
	return r2.Scale(speed, dir), components.Motion{Gravity: o.cfg.Gravity * f.SpeedMul}
}

// Integrate applies force = gravity / (max(dist, eps) * k) toward the attractor.
func (o *Orbital) Integrate(pos *components.Position, vel *components.Velocity, m *components.Motion, f Field) {
	d := r2.Sub(f.Attractor, r2.Vec{X: pos.X, Y: pos.Y})
	dist := r2.Norm(d)
	if dist > 0 {
		eff := math.Max(dist, o.cfg.Epsilon)
		force := m.Gravity / (eff * o.cfg.DistanceK)
		pull := r2.Scale(force/dist, d)
		vel.X += pull.X
		vel.Y += pull.Y
	}
	pos.X += vel.X
	pos.Y += vel.Y
	vel.X *= o.cfg.Drag
	vel.Y *= o.cfg.Drag
}

// Ballistic tosses fruit in from a viewport edge on a projectile arc.
type Ballistic struct {
	cfg config.BallisticConfig
}

// NewBallistic creates a ballistic model from explicit parameters.
func NewBallistic(cfg config.BallisticConfig) *Ballistic {
	return &Ballistic{cfg: cfg}
}

func (b *Ballistic) Name() string { return config.MotionBallistic }

// Place picks a random point on one of the four edges.
func (b *Ballistic) Place(rng *rand.Rand, f Field) r2.Vec {
	t := rng.Float64()
	switch rng.Intn(4) {
	case 0:
		return r2.Vec{X: t * f.Width, Y: 0}
	case 1:
		return r2.Vec{X: f.Width, Y: t * f.Height}
	case 2:
		return r2.Vec{X: t * f.Width, Y: f.Height}
	default:
		return r2.Vec{X: 0, Y: t * f.Height}
	}
}

// Launch aims at the viewport centre with an added upward lift.
func (b *Ballistic) Launch(rng *rand.Rand, pos r2.Vec, f Field) (r2.Vec, components.Motion) {
	dir := r2.Sub(f.Centre(), pos)
	if n := r2.Norm(dir); n > 0 {
		dir = r2.Scale(1/n, dir)
	} else {
		dir = r2.Vec{X: 0, Y: -1}
	}
	speed := (rng.Float64()*b.cfg.SpeedRange + b.cfg.MinSpeed) * f.SpeedMul
	v := r2.Scale(speed, dir)
	v.Y -= b.cfg.Lift * f.SpeedMul
	return v, components.Motion{Gravity: b.cfg.Gravity * f.SpeedMul}
}

func (b *Ballistic) Integrate(pos *components.Position, vel *components.Velocity, m *components.Motion, _ Field) {
	vel.Y += m.Gravity
	pos.X += vel.X
	pos.Y += vel.Y
}
