package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/game"
	"github.com/pthm-cable/fruitslice/telemetry"
)

// Targets describes the play the tuner steers towards.
type Targets struct {
	HitRate   float64 // Fraction of bot segments that slice something
	LiveFruit float64 // Fruit on screen at window end
	BotEvery  int     // Ticks between bot swipes
}

// FitnessEvaluator runs headless bot sessions and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int32
	seeds       []int64
	baseConfig  *config.Config
	targets     Targets
	statsWindow float64

	mu          sync.Mutex
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, targets Targets) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		targets:     targets,
		statsWindow: 5.0,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative mean quality across seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	qualities := make([]float64, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				// Invalid configs score zero quality
				return
			}
			qualities[idx] = computeQuality(windows, fe.targets)
		}(i, seed)
	}
	wg.Wait()

	quality := stat.Mean(qualities, nil)

	fe.mu.Lock()
	fe.lastQuality = quality
	fe.mu.Unlock()

	return -quality
}

// runSimulation plays one seeded session with the bot and returns its windows.
// Each goroutine owns its config copy and world.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) ([]telemetry.WindowStats, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	var windows []telemetry.WindowStats
	w, err := game.NewWorld(cfg, game.Options{
		Seed:      seed,
		Collector: telemetry.NewCollector(fe.statsWindow, cfg.Physics.DT),
		OnWindow: func(stats telemetry.WindowStats) {
			windows = append(windows, stats)
		},
	})
	if err != nil {
		return nil, err
	}

	bot := game.NewAutoSlicer(w, seed+1, fe.targets.BotEvery)
	for w.Tick() < fe.maxTicks {
		bot.Update(w)
		w.Step(cfg.Physics.DT)
	}
	return windows, nil
}

// Quality component weights.
const (
	qualityWeightHit       = 0.45
	qualityWeightDensity   = 0.35
	qualityWeightStability = 0.20

	qualityWarmupWindows = 2 // skip first N windows while fruit accumulate
)

// computeQuality scores a run's windows in [0, 1].
func computeQuality(windows []telemetry.WindowStats, t Targets) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	hits := make([]float64, 0, len(valid))
	live := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.Segments > 0 {
			hits = append(hits, w.HitRate)
		}
		live = append(live, float64(w.LiveFruit))
	}

	// 1. Bot hit rate near target: too high is boring, too low is unfair
	hitScore := 0.0
	if len(hits) > 0 {
		d := (stat.Mean(hits, nil) - t.HitRate) / 0.15
		hitScore = math.Exp(-d * d)
	}

	// 2. Screen density near target (log error so over and under weigh alike)
	densityScore := 0.0
	meanLive, stdLive := stat.MeanStdDev(live, nil)
	if meanLive > 0 && t.LiveFruit > 0 {
		logErr := math.Log(meanLive / t.LiveFruit)
		densityScore = math.Exp(-logErr * logErr)
	}

	// 3. Density stability (coefficient of variation)
	stabilityScore := 0.0
	if len(live) >= 2 && meanLive > 0 {
		cv := stdLive / meanLive
		stabilityScore = math.Exp(-cv * cv)
	}

	return clamp01(qualityWeightHit*hitScore +
		qualityWeightDensity*densityScore +
		qualityWeightStability*stabilityScore)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
