package game

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// AutoSlicer is a deterministic bot that swipes through a random sliceable
// fruit at a fixed tick interval. Used by headless runs and the tuner.
type AutoSlicer struct {
	Every  int     // Ticks between swipes
	Length float64 // Swipe length in viewport units
	Steps  int     // Pointer samples per swipe

	rng     *rand.Rand
	gesture *Gesture
	swipes  int
	hits    int
}

// NewAutoSlicer creates a bot driving w, seeded independently of the world.
func NewAutoSlicer(w *World, seed int64, every int) *AutoSlicer {
	if every < 1 {
		every = 1
	}
	return &AutoSlicer{
		Every:   every,
		Length:  w.cfg.Fruit.BaseExtent * 4,
		Steps:   4,
		rng:     rand.New(rand.NewSource(seed)),
		gesture: NewGesture(w),
	}
}

// Update swipes when the world tick lands on the interval. Returns the
// number of fruit sliced this call.
func (a *AutoSlicer) Update(w *World) int {
	if w.Tick()%int32(a.Every) != 0 {
		return 0
	}
	targets := w.sliceable()
	if len(targets) == 0 {
		return 0
	}
	c := targets[a.rng.Intn(len(targets))]

	angle := a.rng.Float64() * 2 * math.Pi
	dir := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	start := r2.Sub(c, r2.Scale(a.Length/2, dir))

	steps := max(a.Steps, 1)
	step := a.Length / float64(steps)

	hits := 0
	a.gesture.Begin(start)
	for i := 1; i < steps; i++ {
		hits += a.gesture.Move(r2.Add(start, r2.Scale(step*float64(i), dir)))
	}
	hits += a.gesture.End(r2.Add(start, r2.Scale(a.Length, dir)))

	a.swipes++
	a.hits += hits
	return hits
}

// Swipes returns the number of swipes made.
func (a *AutoSlicer) Swipes() int { return a.swipes }

// Hits returns the total fruit sliced.
func (a *AutoSlicer) Hits() int { return a.hits }
