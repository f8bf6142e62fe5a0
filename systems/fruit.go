package systems

import (
	"image/color"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
)

// Body groups the component pointers of one fruit entity.
type Body struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Rot    *components.Rotation
	Motion *components.Motion
	Fruit  *components.Fruit
}

// Center returns the fruit position as a vector.
func (b Body) Center() r2.Vec {
	return r2.Vec{X: b.Pos.X, Y: b.Pos.Y}
}

// FruitEvent reports what happened to a fruit during an update.
type FruitEvent uint8

const (
	FruitNone      FruitEvent = iota
	FruitFaded                // Finished fading this tick
	FruitOffscreen            // Left the viewport plus margin this tick
	FruitBroken               // Finished the break animation and started fading
)

// Lifecycle holds per-tick fruit update parameters.
type Lifecycle struct {
	Margin          float64
	FadeStep        float64
	BreakStep       float64
	BreakSpin       float64
	SlicedGravity   float64
	ParticleGravity float64
	ParticleDecay   float64
}

// NewLifecycle extracts lifecycle parameters from config.
func NewLifecycle(cfg *config.Config) Lifecycle {
	return Lifecycle{
		Margin:          cfg.World.Margin,
		FadeStep:        cfg.Fruit.FadeStep,
		BreakStep:       cfg.Fruit.BreakStep,
		BreakSpin:       cfg.Fruit.BreakSpin,
		SlicedGravity:   cfg.Fruit.SlicedGravity,
		ParticleGravity: cfg.Particles.Gravity,
		ParticleDecay:   cfg.Particles.Decay,
	}
}

// Offscreen reports whether (x, y) lies outside the viewport expanded by margin.
func Offscreen(x, y, w, h, margin float64) bool {
	return x < -margin || x > w+margin || y < -margin || y > h+margin
}

// UpdateFruit advances one fruit by a tick.
//
// Dead fruit are untouched. Offscreen always wins and goes straight to Dead.
// Fading fruit fade out; Sliced fruit play the break animation under a lighter
// gravity; Whole fruit follow the motion model. Owned particles advance in
// every live state.
func UpdateFruit(b Body, model MotionModel, f Field, lc *Lifecycle, src ParticleSource) FruitEvent {
	fr := b.Fruit
	if fr.State == components.StateDead {
		return FruitNone
	}

	if Offscreen(b.Pos.X, b.Pos.Y, f.Width, f.Height, lc.Margin) {
		fr.State = components.StateDead
		return FruitOffscreen
	}

	ev := FruitNone
	switch fr.State {
	case components.StateFading:
		fr.FadeProgress += lc.FadeStep
		if fr.FadeProgress >= 1 {
			fr.FadeProgress = 1
			fr.State = components.StateDead
			return FruitFaded
		}
	case components.StateSliced:
		fr.BreakProgress += lc.BreakStep
		b.Rot.Angle += fr.BreakDir * lc.BreakSpin
		b.Vel.Y += lc.SlicedGravity
		b.Pos.X += b.Vel.X
		b.Pos.Y += b.Vel.Y
		if fr.BreakProgress >= 1 {
			fr.BreakProgress = 1
			fr.State = components.StateFading
			ev = FruitBroken
		}
	case components.StateWhole:
		if fr.Immune > 0 {
			fr.Immune--
		}
		model.Integrate(b.Pos, b.Vel, b.Motion, f)
		b.Rot.Angle += b.Rot.AngVel
	}

	fr.Particles = Advance(src, fr.Particles, lc.ParticleGravity, lc.ParticleDecay)
	return ev
}

// Split holds slicing parameters.
type Split struct {
	ShrinkFactor   float64
	MinSize        float64
	MaxGenerations int
	Spread         float64
	Jitter         float64
	ImmunityTicks  int
	MaxSpin        float64
}

// NewSplit extracts split parameters from config.
func NewSplit(cfg *config.Config) Split {
	return Split{
		ShrinkFactor:   cfg.Split.ShrinkFactor,
		MinSize:        cfg.Split.MinSize,
		MaxGenerations: cfg.Split.MaxGenerations,
		Spread:         cfg.Split.Spread,
		Jitter:         cfg.Split.Jitter,
		ImmunityTicks:  cfg.Split.ImmunityTicks,
		MaxSpin:        cfg.Fruit.MaxSpin,
	}
}

// CanSplit reports whether a sliced fruit produces children.
// A lineage never splits at or below the minimum size or at the generation cap.
func (s *Split) CanSplit(fr *components.Fruit) bool {
	return fr.Size > s.MinSize && fr.Generation < s.MaxGenerations
}

// Piece is a child fruit produced by a split, not yet in the world.
type Piece struct {
	Pos    components.Position
	Vel    components.Velocity
	Rot    components.Rotation
	Motion components.Motion
	Fruit  components.Fruit
}

// SliceFruit applies the slice transition to a Whole fruit.
//
// Splittable fruit become Sliced and yield exactly two pieces flying apart in
// opposite directions. Fruit past the size or generation threshold become
// Fading with no pieces. Returns ok=false if the fruit was not Whole.
func SliceFruit(b Body, rng *rand.Rand, s *Split) (pieces []Piece, ok bool) {
	fr := b.Fruit
	if fr.State != components.StateWhole {
		return nil, false
	}

	if !s.CanSplit(fr) {
		fr.State = components.StateFading
		fr.FadeProgress = 0
		return nil, true
	}

	fr.State = components.StateSliced
	fr.BreakProgress = 0
	fr.BreakDir = 1
	if rng.Float64() < 0.5 {
		fr.BreakDir = -1
	}

	pieces = make([]Piece, 2)
	for i := range pieces {
		a := float64(i)*math.Pi + (rng.Float64()-0.5)*s.Jitter
		pieces[i] = Piece{
			Pos: *b.Pos,
			Vel: components.Velocity{
				X: b.Vel.X + math.Cos(a)*s.Spread,
				Y: b.Vel.Y + math.Sin(a)*s.Spread,
			},
			Rot: components.Rotation{
				Angle:  b.Rot.Angle,
				AngVel: (rng.Float64() - 0.5) * s.MaxSpin,
			},
			Motion: *b.Motion,
			Fruit: components.Fruit{
				Kind:       fr.Kind,
				Size:       fr.Size * s.ShrinkFactor,
				Generation: fr.Generation + 1,
				State:      components.StateWhole,
				Immune:     s.ImmunityTicks,
				Seed:       rng.Uint64(),
			},
		}
	}
	return pieces, true
}

// Burst describes a radial or coned particle emission.
type Burst struct {
	Count      int
	SpeedMin   float64
	SpeedRange float64
	Angle      float64 // Cone centre (radians)
	Spread     float64 // Cone width; 2*Pi or more is a full circle
	Color      color.RGBA
}

// Emit acquires Count particles at origin and appends their handles.
func (bu Burst) Emit(src ParticleSource, rng *rand.Rand, origin r2.Vec, handles []components.ParticleHandle) []components.ParticleHandle {
	for i := 0; i < bu.Count; i++ {
		var a float64
		if bu.Spread >= 2*math.Pi {
			a = rng.Float64() * 2 * math.Pi
		} else {
			a = bu.Angle + (rng.Float64()-0.5)*bu.Spread
		}
		speed := rng.Float64()*bu.SpeedRange + bu.SpeedMin
		h := src.Acquire(origin.X, origin.Y, math.Cos(a)*speed, math.Sin(a)*speed, bu.Color)
		handles = append(handles, h)
	}
	return handles
}
