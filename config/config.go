// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Motion model names.
const (
	MotionOrbital   = "orbital"
	MotionBallistic = "ballistic"
)

// Spawn policy names.
const (
	SpawnChance = "chance"
	SpawnTimer  = "timer"
)

// Hit-test policy names.
const (
	HitSegment = "segment"
	HitRadius  = "radius"
)

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Motion     MotionConfig     `yaml:"motion"`
	Fruit      FruitConfig      `yaml:"fruit"`
	Split      SplitConfig      `yaml:"split"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Slash      SlashConfig      `yaml:"slash"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Hit        HitConfig        `yaml:"hit"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Attractor  AttractorConfig  `yaml:"attractor"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Audio      AudioConfig      `yaml:"audio"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// WorldConfig holds viewport-space parameters.
type WorldConfig struct {
	Margin float64 `yaml:"margin"` // Offscreen reaping margin in viewport units
}

// PhysicsConfig holds simulation timing.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // Seconds per tick
}

// MotionConfig selects and tunes the fruit motion model.
type MotionConfig struct {
	Model     string          `yaml:"model"` // orbital | ballistic
	Orbital   OrbitalConfig   `yaml:"orbital"`
	Ballistic BallisticConfig `yaml:"ballistic"`
}

// OrbitalConfig holds attractor-driven motion parameters.
type OrbitalConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Base pull, scaled by speed multiplier at spawn
	DistanceK   float64 `yaml:"distance_k"`   // force = gravity / (distance * k)
	Epsilon     float64 `yaml:"epsilon"`      // Distances below this are treated as this
	Drag        float64 `yaml:"drag"`         // Multiplicative velocity damping per tick (< 1)
	SpawnRadius float64 `yaml:"spawn_radius"` // Spawn distance from the attractor
	MinSpeed    float64 `yaml:"min_speed"`    // Tangential launch speed floor
	SpeedRange  float64 `yaml:"speed_range"`  // Random launch speed added on top
	RadialBlend float64 `yaml:"radial_blend"` // 0 = purely tangential launch, 1 = purely radial
}

// BallisticConfig holds edge-toss motion parameters.
type BallisticConfig struct {
	Gravity    float64 `yaml:"gravity"`     // Downward acceleration per tick
	MinSpeed   float64 `yaml:"min_speed"`   // Launch speed floor
	SpeedRange float64 `yaml:"speed_range"` // Random launch speed added on top
	Lift       float64 `yaml:"lift"`        // Upward bias added to every toss
}

// FruitConfig holds per-fruit lifecycle parameters.
type FruitConfig struct {
	BaseExtent     float64 `yaml:"base_extent"`      // Box width/height at size 1.0
	MinSpawnSize   float64 `yaml:"min_spawn_size"`   // Smallest freshly spawned size
	SpawnSizeRange float64 `yaml:"spawn_size_range"` // Random size added on top
	MaxSpin        float64 `yaml:"max_spin"`         // Angular velocity range (+/- half)
	FadeStep       float64 `yaml:"fade_step"`        // Fade progress per tick
	BreakStep      float64 `yaml:"break_step"`       // Break progress per tick
	BreakSpin      float64 `yaml:"break_spin"`       // Rotation per tick while breaking
	SlicedGravity  float64 `yaml:"sliced_gravity"`   // Lighter gravity applied to sliced pieces
}

// SplitConfig holds slicing/splitting parameters.
type SplitConfig struct {
	ShrinkFactor   float64 `yaml:"shrink_factor"`   // Child size = parent size * this
	MinSize        float64 `yaml:"min_size"`        // Sizes at or below this never split
	MaxGenerations int     `yaml:"max_generations"` // Lineages at this generation never split
	Spread         float64 `yaml:"spread"`          // Spread speed added to each child
	Jitter         float64 `yaml:"jitter"`          // Random angle jitter range for spread
	ImmunityTicks  int     `yaml:"immunity_ticks"`  // Ticks a fresh child ignores hit tests
}

// ParticlesConfig holds particle pool parameters.
type ParticlesConfig struct {
	Capacity        int     `yaml:"capacity"`
	HighWater       float64 `yaml:"high_water"` // Fraction of capacity that triggers ResetAll
	Gravity         float64 `yaml:"gravity"`
	Decay           float64 `yaml:"decay"` // Life lost per tick
	Size            float64 `yaml:"size"`  // Starting radius
	SliceBurst      int     `yaml:"slice_burst"`
	SliceSpeedMin   float64 `yaml:"slice_speed_min"`
	SliceSpeedRange float64 `yaml:"slice_speed_range"`
}

// SlashConfig holds gesture trail parameters.
type SlashConfig struct {
	Decay      float64 `yaml:"decay"` // Life lost per tick
	Burst      int     `yaml:"burst"`
	SpeedMin   float64 `yaml:"speed_min"`
	SpeedRange float64 `yaml:"speed_range"`
	Spread     float64 `yaml:"spread"`      // Total burst cone angle in radians
	PathLength int     `yaml:"path_length"` // Recent pointer samples kept per trail
	MinSegment float64 `yaml:"min_segment"` // Shorter moves are accumulated, not tested
}

// SpawnConfig holds spawn scheduling parameters.
type SpawnConfig struct {
	Policy      string  `yaml:"policy"`       // chance | timer
	Chance      float64 `yaml:"chance"`       // Per-tick spawn probability (chance policy)
	MinInterval float64 `yaml:"min_interval"` // Seconds (timer policy)
	MaxInterval float64 `yaml:"max_interval"` // Seconds (timer policy)
	MaxFruit    int     `yaml:"max_fruit"`    // Spawning pauses at this many live fruit
}

// HitConfig holds hit-test policy parameters.
type HitConfig struct {
	Policy string  `yaml:"policy"` // segment | radius
	Radius float64 `yaml:"radius"` // Hit radius at size 1.0 (radius policy)
}

// DifficultyConfig holds difficulty progression parameters.
type DifficultyConfig struct {
	Interval  float64 `yaml:"interval"`  // Seconds between bumps
	Increment float64 `yaml:"increment"` // Added to the speed multiplier per bump
	Themes    int     `yaml:"themes"`    // Background theme count rotated on each bump
}

// AttractorConfig holds attractor relocation parameters.
type AttractorConfig struct {
	Interval float64 `yaml:"interval"` // Seconds between relocations
	Region   float64 `yaml:"region"`   // Fraction of each axis the attractor may occupy, centred
}

// ScoringConfig holds score parameters.
type ScoringConfig struct {
	SlicePoints int `yaml:"slice_points"`
}

// AudioConfig holds sound cue parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	BufferMs   int     `yaml:"buffer_ms"`
	Volume     float64 `yaml:"volume"`
	SwishGain  float64 `yaml:"swish_gain"`
	SquishGain float64 `yaml:"squish_gain"`
	SwishPan   float64 `yaml:"swish_pan"`  // Random pan range for swish
	SquishPan  float64 `yaml:"squish_pan"` // Random pan range for squish
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW        float64 // Screen.Width as float64
	ScreenH        float64 // Screen.Height as float64
	TicksPerSecond float64 // 1 / Physics.DT
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks values the simulation relies on as invariants.
func (c *Config) Validate() error {
	switch c.Motion.Model {
	case MotionOrbital, MotionBallistic:
	default:
		return fmt.Errorf("motion.model: unknown model %q", c.Motion.Model)
	}
	switch c.Spawn.Policy {
	case SpawnChance, SpawnTimer:
	default:
		return fmt.Errorf("spawn.policy: unknown policy %q", c.Spawn.Policy)
	}
	switch c.Hit.Policy {
	case HitSegment, HitRadius:
	default:
		return fmt.Errorf("hit.policy: unknown policy %q", c.Hit.Policy)
	}

	if c.Split.ShrinkFactor < 0.5 || c.Split.ShrinkFactor > 0.7 {
		return fmt.Errorf("split.shrink_factor: %v outside [0.5, 0.7]", c.Split.ShrinkFactor)
	}
	if c.Split.MaxGenerations < 0 {
		return fmt.Errorf("split.max_generations: must not be negative, got %d", c.Split.MaxGenerations)
	}
	if c.Particles.Capacity < 1 {
		return fmt.Errorf("particles.capacity: must be positive, got %d", c.Particles.Capacity)
	}
	if c.Particles.HighWater <= 0 || c.Particles.HighWater > 1 {
		return fmt.Errorf("particles.high_water: %v outside (0, 1]", c.Particles.HighWater)
	}
	if c.Motion.Orbital.Drag <= 0 || c.Motion.Orbital.Drag >= 1 {
		return fmt.Errorf("motion.orbital.drag: %v outside (0, 1)", c.Motion.Orbital.Drag)
	}
	if c.Motion.Orbital.Epsilon <= 0 {
		return fmt.Errorf("motion.orbital.epsilon: must be positive, got %v", c.Motion.Orbital.Epsilon)
	}
	if c.Spawn.Policy == SpawnTimer && (c.Spawn.MinInterval <= 0 || c.Spawn.MaxInterval < c.Spawn.MinInterval) {
		return fmt.Errorf("spawn: timer interval [%v, %v] is invalid", c.Spawn.MinInterval, c.Spawn.MaxInterval)
	}
	if c.Difficulty.Interval <= 0 || c.Attractor.Interval <= 0 {
		return fmt.Errorf("difficulty/attractor intervals must be positive")
	}
	if c.Difficulty.Themes < 1 {
		return fmt.Errorf("difficulty.themes: must be at least 1, got %d", c.Difficulty.Themes)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt: must be positive, got %v", c.Physics.DT)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.TicksPerSecond = 1 / c.Physics.DT
}

// Clone returns a deep copy suitable for per-run mutation.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
