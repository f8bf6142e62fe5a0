package telemetry

// Collector accumulates events within time windows and produces WindowStats.
// All Record methods are safe on a nil Collector.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawned    int
	sliced     int
	splits     int
	faded      int
	offscreen  int
	segments   int
	misses     int
	points     int
	poolResets int
	bestCombo  int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records a fresh generation-0 fruit.
func (c *Collector) RecordSpawn() {
	if c == nil {
		return
	}
	c.spawned++
}

// RecordSlice records a successful slice and whether it produced pieces.
func (c *Collector) RecordSlice(split bool) {
	if c == nil {
		return
	}
	c.sliced++
	if split {
		c.splits++
	}
}

// RecordFaded records a fruit that finished fading.
func (c *Collector) RecordFaded() {
	if c == nil {
		return
	}
	c.faded++
}

// RecordOffscreen records a fruit reaped outside the viewport margin.
func (c *Collector) RecordOffscreen() {
	if c == nil {
		return
	}
	c.offscreen++
}

// RecordSegment records one gesture segment and how many fruit it sliced.
func (c *Collector) RecordSegment(hits int) {
	if c == nil {
		return
	}
	c.segments++
	if hits == 0 {
		c.misses++
	}
}

// RecordCombo records the number of fruit sliced by one gesture.
func (c *Collector) RecordCombo(n int) {
	if c == nil {
		return
	}
	if n > c.bestCombo {
		c.bestCombo = n
	}
}

// RecordScore records awarded points.
func (c *Collector) RecordScore(delta int) {
	if c == nil {
		return
	}
	c.points += delta
}

// RecordPoolReset records a particle pool pressure relief.
func (c *Collector) RecordPoolReset() {
	if c == nil {
		return
	}
	c.poolResets++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Snapshot holds world state sampled at window end.
type Snapshot struct {
	LiveFruit       int
	Score           int
	SpeedMul        float64
	Theme           int
	ActiveParticles int
	Sizes           []float64 // Sizes of Whole fruit
	Speeds          []float64 // Speeds of Whole fruit
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	var hitRate float64
	if c.segments > 0 {
		hitRate = float64(c.segments-c.misses) / float64(c.segments)
	}

	sizeMean, sizeP10, sizeP50, sizeP90 := ComputeDistribution(snap.Sizes)
	speedMean, speedStd := ComputeMeanStd(snap.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		LiveFruit: snap.LiveFruit,

		Spawned:   c.spawned,
		Sliced:    c.sliced,
		Splits:    c.splits,
		Faded:     c.faded,
		Offscreen: c.offscreen,

		Segments:  c.segments,
		Misses:    c.misses,
		HitRate:   hitRate,
		BestCombo: c.bestCombo,
		Points:    c.points,
		Score:     snap.Score,

		SpeedMul: snap.SpeedMul,
		Theme:    snap.Theme,

		ActiveParticles: snap.ActiveParticles,
		PoolResets:      c.poolResets,

		SizeMean: sizeMean,
		SizeP10:  sizeP10,
		SizeP50:  sizeP50,
		SizeP90:  sizeP90,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.sliced = 0
	c.splits = 0
	c.faded = 0
	c.offscreen = 0
	c.segments = 0
	c.misses = 0
	c.points = 0
	c.poolResets = 0
	c.bestCombo = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

// Reset restarts the current window at tick.
func (c *Collector) Reset(tick int32) {
	if c == nil {
		return
	}
	*c = Collector{
		windowDurationSec:   c.windowDurationSec,
		windowDurationTicks: c.windowDurationTicks,
		dt:                  c.dt,
		windowStartTick:     tick,
	}
}
