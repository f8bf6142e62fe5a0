package systems

import (
	"image/color"

	"github.com/pthm-cable/fruitslice/components"
)

// Particle is a single decaying point used for slice and slash effects.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 at acquire, inert at <= 0
	Size   float64 // Starting radius; drawn radius shrinks with life
	Color  color.RGBA

	gen     uint32
	counted bool // Included in the pool's active count
}

// Alive reports whether the particle should be updated and drawn.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Radius returns the draw radius for the current life.
func (p *Particle) Radius() float64 {
	if p.Life <= 0 {
		return 0
	}
	return p.Size * p.Life
}

// Update advances one tick of gravity and linear decay.
// Returns false once the particle has expired.
func (p *Particle) Update(gravity, decay float64) bool {
	if p.Life <= 0 {
		return false
	}
	p.X += p.VX
	p.Y += p.VY
	p.VY += gravity
	p.Life -= decay
	if p.Life < 0 {
		p.Life = 0
	}
	return p.Life > 0
}

// ParticleSource is the capability fruit and slashes use to obtain particles.
// The world injects its pool; nothing reaches a pool through package state.
type ParticleSource interface {
	Acquire(x, y, vx, vy float64, c color.RGBA) components.ParticleHandle
	Get(h components.ParticleHandle) (*Particle, bool)
	Release(h components.ParticleHandle)
}

// ParticlePool is a fixed-capacity ring of particles.
//
// Acquire always succeeds: it overwrites the slot at the cursor whether or not
// that particle has finished, then advances the cursor. Release moves a slot
// to the cursor so it is the next one reused. The active count drives pressure
// relief; each particle's Life decides whether it is drawn.
type ParticlePool struct {
	slots  []Particle
	order  []int32 // Ring position -> slot index
	where  []int32 // Slot index -> ring position
	cursor int
	active int

	size float64
}

// NewParticlePool creates a pool with the given capacity (minimum 1).
func NewParticlePool(capacity int, size float64) *ParticlePool {
	if capacity < 1 {
		capacity = 1
	}
	p := &ParticlePool{
		slots: make([]Particle, capacity),
		order: make([]int32, capacity),
		where: make([]int32, capacity),
		size:  size,
	}
	for i := range p.order {
		p.order[i] = int32(i)
		p.where[i] = int32(i)
	}
	return p
}

// Acquire resets the slot at the cursor with fresh kinematics and returns its handle.
func (p *ParticlePool) Acquire(x, y, vx, vy float64, c color.RGBA) components.ParticleHandle {
	idx := p.order[p.cursor]
	p.cursor = (p.cursor + 1) % len(p.order)

	s := &p.slots[idx]
	if !s.counted {
		p.active++
	}
	gen := s.gen + 1
	*s = Particle{
		X: x, Y: y,
		VX: vx, VY: vy,
		Life:    1,
		Size:    p.size,
		Color:   c,
		gen:     gen,
		counted: true,
	}
	return components.ParticleHandle{Index: idx, Gen: gen}
}

// Get resolves a handle. Returns false if the slot was recycled since.
func (p *ParticlePool) Get(h components.ParticleHandle) (*Particle, bool) {
	if h.Index < 0 || int(h.Index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[h.Index]
	if s.gen != h.Gen {
		return nil, false
	}
	return s, true
}

// Release kills the particle and makes its slot the next one Acquire reuses.
// Stale handles are ignored.
func (p *ParticlePool) Release(h components.ParticleHandle) {
	s, ok := p.Get(h)
	if !ok {
		return
	}
	// Life may already be zero when Advance releases an expired particle.
	if s.counted {
		s.counted = false
		p.active--
	}
	s.Life = 0
	s.gen++

	// Swap the released slot into the cursor position.
	pos := p.where[h.Index]
	other := p.order[p.cursor]
	p.order[p.cursor], p.order[pos] = h.Index, other
	p.where[h.Index], p.where[other] = int32(p.cursor), pos
}

// ResetAll marks every particle dead. Outstanding handles become stale.
func (p *ParticlePool) ResetAll() {
	for i := range p.slots {
		p.slots[i].Life = 0
		p.slots[i].gen++
		p.slots[i].counted = false
	}
	p.active = 0
}

// ActiveCount returns the number of slots acquired and not yet released.
// Overwritten slots are counted once.
func (p *ParticlePool) ActiveCount() int {
	return p.active
}

// Capacity returns the number of slots.
func (p *ParticlePool) Capacity() int {
	return len(p.slots)
}

// Pressure returns ActiveCount as a fraction of capacity.
func (p *ParticlePool) Pressure() float64 {
	return float64(p.active) / float64(len(p.slots))
}

// Each calls fn for every live particle.
func (p *ParticlePool) Each(fn func(*Particle)) {
	for i := range p.slots {
		if p.slots[i].Life > 0 {
			fn(&p.slots[i])
		}
	}
}

// Advance updates owned particles and releases expired or recycled ones,
// compacting the handle slice in place.
func Advance(src ParticleSource, handles []components.ParticleHandle, gravity, decay float64) []components.ParticleHandle {
	alive := 0
	for _, h := range handles {
		pt, ok := src.Get(h)
		if !ok {
			continue
		}
		if !pt.Update(gravity, decay) {
			src.Release(h)
			continue
		}
		handles[alive] = h
		alive++
	}
	return handles[:alive]
}

// ReleaseAll returns every handle to the source.
func ReleaseAll(src ParticleSource, handles []components.ParticleHandle) {
	for _, h := range handles {
		src.Release(h)
	}
}
