package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	LiveFruit int `csv:"live_fruit"`

	// Lifecycle events during window
	Spawned   int `csv:"spawned"`
	Sliced    int `csv:"sliced"`
	Splits    int `csv:"splits"`
	Faded     int `csv:"faded"`
	Offscreen int `csv:"offscreen"`

	// Gestures
	Segments  int     `csv:"segments"`
	Misses    int     `csv:"misses"`
	HitRate   float64 `csv:"hit_rate"` // Fraction of segments that sliced something
	BestCombo int     `csv:"best_combo"`
	Points    int     `csv:"points"`
	Score     int     `csv:"score"`

	// Difficulty
	SpeedMul float64 `csv:"speed_mul"`
	Theme    int     `csv:"theme"`

	// Particle pool
	ActiveParticles int `csv:"active_particles"`
	PoolResets      int `csv:"pool_resets"`

	// Whole fruit distribution (sampled at window end)
	SizeMean  float64 `csv:"size_mean"`
	SizeP10   float64 `csv:"size_p10"`
	SizeP50   float64 `csv:"size_p50"`
	SizeP90   float64 `csv:"size_p90"`
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// ComputeMeanStd returns the mean and sample standard deviation.
// Fewer than two values give a zero deviation.
func ComputeMeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live_fruit", s.LiveFruit),
		slog.Int("spawned", s.Spawned),
		slog.Int("sliced", s.Sliced),
		slog.Int("splits", s.Splits),
		slog.Int("faded", s.Faded),
		slog.Int("offscreen", s.Offscreen),
		slog.Int("segments", s.Segments),
		slog.Int("misses", s.Misses),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("best_combo", s.BestCombo),
		slog.Int("points", s.Points),
		slog.Int("score", s.Score),
		slog.Float64("speed_mul", s.SpeedMul),
		slog.Int("theme", s.Theme),
		slog.Int("active_particles", s.ActiveParticles),
		slog.Int("pool_resets", s.PoolResets),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("speed_mean", s.SpeedMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
