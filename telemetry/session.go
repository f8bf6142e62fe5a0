package telemetry

import (
	"log/slog"
	"time"
)

// SessionStats summarizes one play session, written on exit or restart.
type SessionStats struct {
	Seed      int64   `csv:"seed"`
	StartedAt string  `csv:"started_at"`
	Ticks     int32   `csv:"ticks"`
	SimTime   float64 `csv:"sim_time"`
	Score     int     `csv:"score"`
	Spawned   int     `csv:"spawned"`
	Sliced    int     `csv:"sliced"`
	Segments  int     `csv:"segments"`
	BestCombo int     `csv:"best_combo"`
	SpeedMul  float64 `csv:"speed_mul"`
}

// SessionTracker accumulates totals across stats windows.
type SessionTracker struct {
	stats SessionStats
}

// NewSessionTracker starts a session.
func NewSessionTracker(seed int64, start time.Time) *SessionTracker {
	return &SessionTracker{stats: SessionStats{
		Seed:      seed,
		StartedAt: start.UTC().Format(time.RFC3339),
	}}
}

// Add folds a flushed window into the running totals.
func (s *SessionTracker) Add(w WindowStats) {
	if s == nil {
		return
	}
	s.stats.Ticks = w.WindowEndTick
	s.stats.SimTime = w.SimTimeSec
	s.stats.Score = w.Score
	s.stats.Spawned += w.Spawned
	s.stats.Sliced += w.Sliced
	s.stats.Segments += w.Segments
	s.stats.SpeedMul = w.SpeedMul
	if w.BestCombo > s.stats.BestCombo {
		s.stats.BestCombo = w.BestCombo
	}
}

// Stats returns the current totals.
func (s *SessionTracker) Stats() SessionStats {
	if s == nil {
		return SessionStats{}
	}
	return s.stats
}

// LogStats logs the session summary.
func (s SessionStats) LogStats() {
	slog.Info("session",
		"seed", s.Seed,
		"ticks", s.Ticks,
		"sim_time", s.SimTime,
		"score", s.Score,
		"sliced", s.Sliced,
		"segments", s.Segments,
		"best_combo", s.BestCombo,
		"speed_mul", s.SpeedMul,
	)
}
