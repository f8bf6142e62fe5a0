package systems

import (
	"math/rand"

	"github.com/pthm-cable/fruitslice/config"
)

// SpawnScheduler decides when the world spawns a fresh fruit.
type SpawnScheduler interface {
	// Due advances the schedule by dt seconds and reports whether to spawn now.
	Due(dt float64, rng *rand.Rand) bool
	Reset(rng *rand.Rand)
}

// NewSpawnScheduler builds the configured policy.
func NewSpawnScheduler(cfg config.SpawnConfig, rng *rand.Rand) SpawnScheduler {
	if cfg.Policy == config.SpawnTimer {
		t := &TimerScheduler{Min: cfg.MinInterval, Max: cfg.MaxInterval}
		t.Reset(rng)
		return t
	}
	return &ChanceScheduler{Chance: cfg.Chance}
}

// ChanceScheduler spawns with a fixed probability per tick.
type ChanceScheduler struct {
	Chance float64
}

// Due ignores dt; a tick with no elapsed time still rolls, matching frame-driven spawning.
func (c *ChanceScheduler) Due(_ float64, rng *rand.Rand) bool {
	return rng.Float64() < c.Chance
}

func (c *ChanceScheduler) Reset(*rand.Rand) {}

// TimerScheduler spawns after a randomized interval in [Min, Max] seconds.
// The next interval is drawn again after every spawn.
type TimerScheduler struct {
	Min, Max float64
	next     float64
	elapsed  float64
}

func (t *TimerScheduler) Due(dt float64, rng *rand.Rand) bool {
	t.elapsed += dt
	if t.elapsed < t.next {
		return false
	}
	t.elapsed = 0
	t.roll(rng)
	return true
}

func (t *TimerScheduler) Reset(rng *rand.Rand) {
	t.elapsed = 0
	t.roll(rng)
}

// Next returns the current interval.
func (t *TimerScheduler) Next() float64 {
	return t.next
}

func (t *TimerScheduler) roll(rng *rand.Rand) {
	t.next = t.Min + rng.Float64()*(t.Max-t.Min)
}

// Interval fires every Period seconds of accumulated simulation time.
// Zero elapsed time never fires, so repeated steps at one instant are idempotent.
type Interval struct {
	Period  float64
	elapsed float64
}

// Tick accumulates dt and reports whether the period elapsed.
// At most one firing per call; leftover time carries over.
func (iv *Interval) Tick(dt float64) bool {
	if dt <= 0 || iv.Period <= 0 {
		return false
	}
	iv.elapsed += dt
	if iv.elapsed < iv.Period {
		return false
	}
	iv.elapsed -= iv.Period
	if iv.elapsed >= iv.Period {
		iv.elapsed = 0
	}
	return true
}

// Reset clears accumulated time.
func (iv *Interval) Reset() {
	iv.elapsed = 0
}
