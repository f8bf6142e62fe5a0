package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
)

// SlashEffect is the fading trail left by one gesture segment.
type SlashEffect struct {
	Start, End r2.Vec
	Path       []r2.Vec // Recent pointer samples, oldest first, ending at End
	Life       float64
	Particles  []components.ParticleHandle
}

// NewSlashEffect creates a full-life trail for a segment.
// The path is copied so the caller may keep appending to its own buffer.
func NewSlashEffect(seg Segment, path []r2.Vec) *SlashEffect {
	s := &SlashEffect{
		Start: seg.A,
		End:   seg.B,
		Life:  1,
	}
	if len(path) > 0 {
		s.Path = append([]r2.Vec(nil), path...)
	} else {
		s.Path = []r2.Vec{seg.A, seg.B}
	}
	return s
}

// Update decays the trail and its particles. Returns false once expired;
// expired trails have already released their particles.
func (s *SlashEffect) Update(decay float64, src ParticleSource, gravity, particleDecay float64) bool {
	s.Life -= decay
	s.Particles = Advance(src, s.Particles, gravity, particleDecay)
	if s.Life <= 0 {
		s.Life = 0
		ReleaseAll(src, s.Particles)
		s.Particles = s.Particles[:0]
		return false
	}
	return true
}
