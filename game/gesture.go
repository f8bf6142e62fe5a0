package game

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Gesture turns pointer samples in viewport units into world slices.
// Each accepted move becomes one segment hit-tested immediately.
type Gesture struct {
	world      *World
	minSegment float64
	pathLen    int

	active bool
	last   r2.Vec
	path   []r2.Vec
	combo  int
}

// NewGesture creates a gesture tracker that slices w.
func NewGesture(w *World) *Gesture {
	pathLen := w.cfg.Slash.PathLength
	if pathLen < 2 {
		pathLen = 2
	}
	return &Gesture{
		world:      w,
		minSegment: w.cfg.Slash.MinSegment,
		pathLen:    pathLen,
		path:       make([]r2.Vec, 0, pathLen),
	}
}

// Active reports whether a gesture is in progress.
func (g *Gesture) Active() bool { return g.active }

// Combo returns the number of fruit sliced by the current gesture.
func (g *Gesture) Combo() int { return g.combo }

// Begin starts a gesture at p. An unfinished gesture is discarded.
func (g *Gesture) Begin(p r2.Vec) {
	g.active = true
	g.last = p
	g.combo = 0
	g.path = append(g.path[:0], p)
}

// Move extends the gesture to p and returns the number of fruit sliced.
// Moves shorter than the minimum segment are held until the pointer travels further.
func (g *Gesture) Move(p r2.Vec) int {
	if !g.active {
		return 0
	}
	if r2.Norm(r2.Sub(p, g.last)) < g.minSegment {
		return 0
	}

	if len(g.path) == g.pathLen {
		copy(g.path, g.path[1:])
		g.path = g.path[:len(g.path)-1]
	}
	g.path = append(g.path, p)

	hits := g.world.Slice(g.last, p, g.path)
	g.last = p
	g.combo += hits
	return hits
}

// End finishes the gesture at p and returns the number of fruit sliced by
// the final segment.
func (g *Gesture) End(p r2.Vec) int {
	if !g.active {
		return 0
	}
	hits := g.Move(p)
	g.world.collector.RecordCombo(g.combo)
	g.active = false
	g.path = g.path[:0]
	return hits
}

// Cancel drops the gesture without a final segment.
func (g *Gesture) Cancel() {
	g.active = false
	g.path = g.path[:0]
	g.combo = 0
}
