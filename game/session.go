package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/telemetry"
)

// SessionOptions configures a play or soak session.
type SessionOptions struct {
	Seed           int64
	LogStats       bool    // Log each stats window via slog
	StatsWindowSec float64 // 0 = config value
	OutputDir      string  // Empty = no CSV output
	AutoSlice      int     // Ticks between bot swipes; 0 = no bot
	StepsPerUpdate int     // Ticks per Update call

	Audio  AudioCue
	Scores ScoreSink
}

// Session wraps a World with telemetry output, bookmarks and per-session
// summaries. Graphical and headless runs share it.
type Session struct {
	cfg  *config.Config
	opts SessionOptions

	world   *World
	gesture *Gesture
	bot     *AutoSlicer

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	bookmarks *telemetry.BookmarkDetector
	tracker   *telemetry.SessionTracker

	paused         bool
	stepsPerUpdate int
	lastWindow     telemetry.WindowStats
	windows        int
}

// NewSession builds the world and its telemetry.
func NewSession(cfg *config.Config, opts SessionOptions) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session: nil config")
	}
	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		cfg:            cfg,
		opts:           opts,
		collector:      telemetry.NewCollector(windowSec, cfg.Physics.DT),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:         output,
		bookmarks:      telemetry.NewBookmarkDetector(10),
		tracker:        telemetry.NewSessionTracker(opts.Seed, time.Now()),
		stepsPerUpdate: opts.StepsPerUpdate,
	}

	s.world, err = NewWorld(cfg, Options{
		Seed:      opts.Seed,
		Audio:     opts.Audio,
		Scores:    opts.Scores,
		Collector: s.collector,
		Perf:      s.perf,
		OnWindow:  s.handleWindow,
	})
	if err != nil {
		output.Close()
		return nil, fmt.Errorf("session: %w", err)
	}
	s.gesture = NewGesture(s.world)
	if opts.AutoSlice > 0 {
		s.bot = NewAutoSlicer(s.world, opts.Seed+1, opts.AutoSlice)
	}

	if dir := output.Dir(); dir != "" {
		slog.Info("writing output", "dir", dir)
	}
	return s, nil
}

// World returns the simulated world.
func (s *Session) World() *World { return s.world }

// Gesture returns the pointer gesture tracker.
func (s *Session) Gesture() *Gesture { return s.gesture }

// Perf returns the phase timing collector.
func (s *Session) Perf() *telemetry.PerfCollector { return s.perf }

// LastWindow returns the most recently flushed stats window.
func (s *Session) LastWindow() telemetry.WindowStats { return s.lastWindow }

// Windows returns the number of stats windows flushed.
func (s *Session) Windows() int { return s.windows }

// AutoSlicing reports whether a bot is swiping.
func (s *Session) AutoSlicing() bool { return s.bot != nil }

// Paused reports whether Update is suspended.
func (s *Session) Paused() bool { return s.paused }

// SetPaused suspends or resumes Update.
func (s *Session) SetPaused(p bool) { s.paused = p }

// StepsPerUpdate returns the number of ticks run per Update.
func (s *Session) StepsPerUpdate() int { return s.stepsPerUpdate }

// SetStepsPerUpdate changes the ticks per Update, clamped to [1, 10].
func (s *Session) SetStepsPerUpdate(n int) {
	s.stepsPerUpdate = min(max(n, 1), 10)
}

// Update runs StepsPerUpdate ticks unless paused.
func (s *Session) Update() {
	if s.paused {
		return
	}
	for i := 0; i < s.stepsPerUpdate; i++ {
		s.Step()
	}
}

// Step runs the bot, if any, then one world tick.
func (s *Session) Step() {
	if s.bot != nil {
		s.bot.Update(s.world)
	}
	s.world.Step(s.cfg.Physics.DT)
}

// Restart records the finished session and starts a fresh one on the same world.
func (s *Session) Restart() {
	s.writeSummary()
	s.world.Reset()
	s.gesture.Cancel()
	s.tracker = telemetry.NewSessionTracker(s.opts.Seed, time.Now())
	slog.Info("session restarted")
}

// Close records the session summary and closes output files.
func (s *Session) Close() error {
	s.writeSummary()
	return s.output.Close()
}

// Summary returns the running session totals with the world's live score and tick.
func (s *Session) Summary() telemetry.SessionStats {
	st := s.tracker.Stats()
	st.Ticks = s.world.Tick()
	st.SimTime = float64(st.Ticks) * s.cfg.Physics.DT
	st.Score = s.world.Score()
	st.SpeedMul = s.world.SpeedMultiplier()
	return st
}

func (s *Session) writeSummary() {
	st := s.Summary()
	st.LogStats()
	if err := s.output.WriteSession(st); err != nil {
		slog.Error("failed to write session", "error", err)
	}
}

// handleWindow receives each flushed window from the world.
func (s *Session) handleWindow(stats telemetry.WindowStats) {
	s.lastWindow = stats
	s.windows++
	s.tracker.Add(stats)
	perfStats := s.perf.Stats()

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.opts.LogStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
