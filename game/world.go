// Package game runs the fruit simulation: spawning, gesture hit tests,
// the fixed-step update, and difficulty progression.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/systems"
	"github.com/pthm-cable/fruitslice/telemetry"
)

// Options configures optional world collaborators.
type Options struct {
	Seed      int64
	Audio     AudioCue                 // nil = silent
	Scores    ScoreSink                // nil = discard
	Collector *telemetry.Collector     // nil = no window stats
	Perf      *telemetry.PerfCollector // nil = no phase timing

	// OnWindow receives each flushed stats window. Requires Collector.
	OnWindow func(telemetry.WindowStats)
}

// World owns the fruit collection, the slash trails and the particle pool.
// All methods run on the simulation goroutine.
type World struct {
	cfg *config.Config
	rng *rand.Rand

	ecs *ecs.World

	fruitMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Motion,
		components.Fruit,
	]
	fruitFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Motion,
		components.Fruit,
	]
	fruitMap *ecs.Map[components.Fruit]

	pool      *systems.ParticlePool
	motion    systems.MotionModel
	spawner   systems.SpawnScheduler
	lifecycle systems.Lifecycle
	split     systems.Split

	difficulty systems.Interval
	relocation systems.Interval

	slashes []*systems.SlashEffect

	audio     AudioCue
	scores    ScoreSink
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	onWindow  func(telemetry.WindowStats)

	// State
	width, height float64
	attractor     r2.Vec
	speedMul      float64
	theme         int
	score         int
	tick          int32
	fruitCount    int

	// Scratch buffers reused across ticks
	pieces []systems.Piece
	dead   []ecs.Entity
}

// NewWorld creates a world sized to the configured screen.
func NewWorld(cfg *config.Config, opts Options) (*World, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	store := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	w := &World{
		cfg: cfg,
		rng: rng,
		ecs: store,
		fruitMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Motion,
			components.Fruit,
		](store),
		fruitFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Motion,
			components.Fruit,
		](store),
		fruitMap:   ecs.NewMap[components.Fruit](store),
		pool:       systems.NewParticlePool(cfg.Particles.Capacity, cfg.Particles.Size),
		motion:     systems.NewMotionModel(cfg.Motion),
		spawner:    systems.NewSpawnScheduler(cfg.Spawn, rng),
		lifecycle:  systems.NewLifecycle(cfg),
		split:      systems.NewSplit(cfg),
		difficulty: systems.Interval{Period: cfg.Difficulty.Interval},
		relocation: systems.Interval{Period: cfg.Attractor.Interval},
		audio:      opts.Audio,
		scores:     opts.Scores,
		collector:  opts.Collector,
		perf:       opts.Perf,
		onWindow:   opts.OnWindow,
		width:      float64(cfg.Screen.Width),
		height:     float64(cfg.Screen.Height),
		speedMul:   1,
	}
	if w.audio == nil {
		w.audio = nopAudio{}
	}
	if w.scores == nil {
		w.scores = nopScore{}
	}
	w.attractor = w.centre()

	slog.Debug("world created",
		"motion", w.motion.Name(),
		"spawn", cfg.Spawn.Policy,
		"hit", cfg.Hit.Policy,
		"width", w.width,
		"height", w.height,
	)
	return w, nil
}

func (w *World) centre() r2.Vec {
	return r2.Vec{X: w.width / 2, Y: w.height / 2}
}

// field returns the motion model's view of the world.
func (w *World) field() systems.Field {
	return systems.Field{
		Attractor: w.attractor,
		Width:     w.width,
		Height:    w.height,
		SpeedMul:  w.speedMul,
	}
}

// Resize updates the viewport bounds and re-derives the attractor.
// Non-positive sizes (minimized windows) are ignored.
func (w *World) Resize(width, height float64) {
	if width <= 0 || height <= 0 || (width == w.width && height == w.height) {
		return
	}
	w.width = width
	w.height = height
	w.attractor = w.centre()
	slog.Debug("world resized", "width", width, "height", height)
}

// Reset clears all fruit, trails and particles and restarts difficulty and score.
func (w *World) Reset() {
	w.dead = w.dead[:0]
	query := w.fruitFilter.Query()
	for query.Next() {
		w.dead = append(w.dead, query.Entity())
	}
	for _, e := range w.dead {
		w.ecs.RemoveEntity(e)
	}
	w.dead = w.dead[:0]

	w.slashes = w.slashes[:0]
	w.pool.ResetAll()
	w.spawner.Reset(w.rng)
	w.difficulty.Reset()
	w.relocation.Reset()
	w.attractor = w.centre()
	w.speedMul = 1
	w.theme = 0
	w.score = 0
	w.fruitCount = 0
	w.tick = 0
	w.collector.Reset(0)
}

// Score returns the session score.
func (w *World) Score() int { return w.score }

// SpeedMultiplier returns the current difficulty multiplier.
func (w *World) SpeedMultiplier() float64 { return w.speedMul }

// ThemeIndex returns the background theme index.
func (w *World) ThemeIndex() int { return w.theme }

// Attractor returns the current centre of attraction.
func (w *World) Attractor() r2.Vec { return w.attractor }

// FruitCount returns the number of live fruit, including sliced and fading ones.
func (w *World) FruitCount() int { return w.fruitCount }

// Tick returns the number of completed steps.
func (w *World) Tick() int32 { return w.tick }

// Bounds returns the viewport size.
func (w *World) Bounds() (width, height float64) { return w.width, w.height }

// Pool returns the particle pool.
func (w *World) Pool() *systems.ParticlePool { return w.pool }

// MotionModel returns the name of the active motion model.
func (w *World) MotionModel() string { return w.motion.Name() }

// Config returns the world's configuration.
func (w *World) Config() *config.Config { return w.cfg }

// FruitState returns the state of a fruit entity.
// Removed entities report false.
func (w *World) FruitState(e ecs.Entity) (components.State, bool) {
	if !w.ecs.Alive(e) {
		return components.StateDead, false
	}
	return w.fruitMap.Get(e).State, true
}
