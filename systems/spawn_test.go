package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/fruitslice/config"
)

func TestTimerSchedulerRerollsInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := config.SpawnConfig{Policy: config.SpawnTimer, MinInterval: 3, MaxInterval: 5}
	sched, ok := NewSpawnScheduler(cfg, rng).(*TimerScheduler)
	if !ok {
		t.Fatal("timer policy should build a TimerScheduler")
	}

	const dt = 1.0 / 60
	seen := map[float64]bool{}
	spawns := 0
	for i := 0; i < 60*60; i++ {
		if sched.Next() < 3 || sched.Next() > 5 {
			t.Fatalf("interval %v outside [3, 5]", sched.Next())
		}
		seen[sched.Next()] = true
		if sched.Due(dt, rng) {
			spawns++
		}
	}

	// One minute at 3-5 s per spawn.
	if spawns < 12 || spawns > 20 {
		t.Errorf("spawns = %d, want 12..20", spawns)
	}
	if len(seen) < 2 {
		t.Error("interval never re-randomized")
	}
}

func TestTimerSchedulerZeroDt(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	sched := NewSpawnScheduler(config.SpawnConfig{Policy: config.SpawnTimer, MinInterval: 1, MaxInterval: 2}, rng)
	for i := 0; i < 100; i++ {
		if sched.Due(0, rng) {
			t.Fatal("timer fired without elapsed time")
		}
	}
}

func TestChanceSchedulerRate(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	sched := NewSpawnScheduler(config.SpawnConfig{Policy: config.SpawnChance, Chance: 0.02}, rng)
	n := 0
	for i := 0; i < 10000; i++ {
		if sched.Due(1.0/60, rng) {
			n++
		}
	}
	if n < 140 || n > 260 {
		t.Errorf("spawns = %d over 10000 ticks, want about 200", n)
	}
}

func TestIntervalIdempotentAtZeroDt(t *testing.T) {
	iv := Interval{Period: 1}
	if iv.Tick(0.5) {
		t.Fatal("fired early")
	}
	if !iv.Tick(0.5) {
		t.Fatal("did not fire at period")
	}
	for i := 0; i < 5; i++ {
		if iv.Tick(0) {
			t.Fatal("fired again with no elapsed time")
		}
	}

	// A huge step fires once, not repeatedly.
	iv.Reset()
	fired := 0
	if iv.Tick(10) {
		fired++
	}
	if iv.Tick(0) {
		fired++
	}
	if fired != 1 {
		t.Errorf("fired %d times for one long step, want 1", fired)
	}
}
