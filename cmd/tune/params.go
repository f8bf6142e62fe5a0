package main

import (
	"github.com/pthm-cable/fruitslice/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Spawning
			{Name: "spawn_chance", Path: "spawn.chance", Min: 0.005, Max: 0.08, Default: 0.02},
			{Name: "max_fruit", Path: "spawn.max_fruit", Min: 10, Max: 150, Default: 120},
			// Progression
			{Name: "difficulty_interval", Path: "difficulty.interval", Min: 15, Max: 120, Default: 60},
			{Name: "difficulty_increment", Path: "difficulty.increment", Min: 0.05, Max: 0.5, Default: 0.2},
			// Orbital motion
			{Name: "orbital_gravity", Path: "motion.orbital.gravity", Min: 0.05, Max: 0.5, Default: 0.2},
			{Name: "orbital_min_speed", Path: "motion.orbital.min_speed", Min: 1, Max: 6, Default: 3},
			// Ballistic motion
			{Name: "ballistic_min_speed", Path: "motion.ballistic.min_speed", Min: 6, Max: 14, Default: 9},
			// Splitting
			{Name: "shrink_factor", Path: "split.shrink_factor", Min: 0.5, Max: 0.7, Default: 0.7},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Spawn.Chance = v[0]
	cfg.Spawn.MaxFruit = int(v[1])

	cfg.Difficulty.Interval = v[2]
	cfg.Difficulty.Increment = v[3]

	cfg.Motion.Orbital.Gravity = v[4]
	cfg.Motion.Orbital.MinSpeed = v[5]

	cfg.Motion.Ballistic.MinSpeed = v[6]

	cfg.Split.ShrinkFactor = v[7]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Spawn.Chance,
		float64(cfg.Spawn.MaxFruit),
		cfg.Difficulty.Interval,
		cfg.Difficulty.Increment,
		cfg.Motion.Orbital.Gravity,
		cfg.Motion.Orbital.MinSpeed,
		cfg.Motion.Ballistic.MinSpeed,
		cfg.Split.ShrinkFactor,
	}
}
