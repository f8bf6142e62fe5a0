package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fruitslice/app"
	"github.com/pthm-cable/fruitslice/audio"
	"github.com/pthm-cable/fruitslice/config"
	"github.com/pthm-cable/fruitslice/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	autoSlice := flag.Int("autoslice", 0, "Bot swipe interval in ticks (0 = off)")
	mute := flag.Bool("mute", false, "Start with audio muted")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logText := flag.Bool("log-text", false, "Log as text instead of JSON")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, handlerOpts)
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, handlerOpts)
	}
	slog.SetDefault(slog.New(handler))

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.SessionOptions{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		AutoSlice:      *autoSlice,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		os.Exit(runHeadless(cfg, opts, *maxTicks))
	}
	os.Exit(runWindow(cfg, opts, *maxTicks, *mute))
}

// runHeadless steps the simulation without raylib or audio until max ticks
// or an interrupt.
func runHeadless(cfg *config.Config, opts game.SessionOptions, maxTicks int) int {
	s, err := game.NewSession(cfg, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"motion", cfg.Motion.Model,
		"autoslice", opts.AutoSlice,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	for ctx.Err() == nil {
		s.Update()

		if maxTicks > 0 && int(s.World().Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", s.World().Tick(), "score", s.World().Score())
			break
		}
	}
	return 0
}

// runWindow opens the window and audio device and runs the frame loop.
func runWindow(cfg *config.Config, opts game.SessionOptions, maxTicks int, mute bool) int {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	var cues *audio.Cues
	if cfg.Audio.Enabled {
		cues = audio.New(cfg.Audio, opts.Seed)
		if err := cues.Start(); err != nil {
			slog.Warn("audio unavailable", "error", err)
		}
		cues.SetMuted(mute)
		opts.Audio = cues
	}

	s, err := game.NewSession(cfg, opts)
	if err != nil {
		slog.Error("failed to start session", "error", err)
		return 1
	}
	defer s.Close()

	a := app.New(cfg, s, cues)
	defer a.Unload()

	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()

		if maxTicks > 0 && int(s.World().Tick()) >= maxTicks {
			break
		}
	}
	return 0
}
