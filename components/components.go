// Package components defines ECS components for the fruit simulation.
package components

// State is a fruit's position in its slice lifecycle.
// Transitions only move forward: Whole -> Sliced -> Fading -> Dead.
type State uint8

const (
	StateWhole  State = iota // Moving, sliceable
	StateSliced              // Hit and split; playing the break animation
	StateFading              // Terminal shrink or finished break; fading out
	StateDead                // Removed on the tick it is detected
)

// String returns the display name for a State.
func (s State) String() string {
	switch s {
	case StateWhole:
		return "whole"
	case StateSliced:
		return "sliced"
	case StateFading:
		return "fading"
	case StateDead:
		return "dead"
	}
	return "unknown"
}

// ParticleHandle refers to a slot in a particle pool.
// Gen guards against stale handles after the slot is recycled.
type ParticleHandle struct {
	Index int32
	Gen   uint32
}

// Fruit holds per-fruit slice state.
type Fruit struct {
	Kind       Kind
	Size       float64 // 1.0 = base size
	Generation int     // Number of splits in this lineage
	State      State

	BreakProgress float64 // 0..1 while Sliced
	BreakDir      float64 // +1 or -1, chosen at slice time
	FadeProgress  float64 // 0..1 while Fading

	// Ticks remaining before a freshly split piece can be sliced
	Immune int

	// Seed for per-instance decorative detail
	Seed uint64

	Particles []ParticleHandle
}

// Sliceable reports whether a hit test may consider this fruit.
func (f *Fruit) Sliceable() bool {
	return f.State == StateWhole && f.Immune <= 0
}

// Alpha returns render opacity derived from fade progress.
func (f *Fruit) Alpha() float64 {
	if f.State != StateFading {
		return 1
	}
	return 1 - f.FadeProgress
}
