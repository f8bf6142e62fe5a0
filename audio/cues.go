// Package audio synthesizes the slice sound cues with beep.
package audio

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/fruitslice/config"
)

// Cues plays a swish per gesture segment and a squish per sliced fruit.
// Trigger methods are called from the simulation goroutine; the speaker
// streams from its own goroutine through a locked mixer.
type Cues struct {
	mu      sync.Mutex
	cfg     config.AudioConfig
	rate    beep.SampleRate
	mixer   *beep.Mixer
	rng     *rand.Rand
	muted   bool
	started bool
}

// New creates cues from config. Nothing plays until Start succeeds.
func New(cfg config.AudioConfig, seed int64) *Cues {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &Cues{
		cfg:   cfg,
		rate:  rate,
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Start opens the audio device. Cues stay silent if it fails.
func (c *Cues) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}
	buffer := time.Duration(max(c.cfg.BufferMs, 10)) * time.Millisecond
	if err := speaker.Init(c.rate, c.rate.N(buffer)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(lockedStreamer{mu: &c.mu, s: c.mixer})
	c.started = true
	slog.Debug("audio started", "sample_rate", int(c.rate), "buffer", buffer)
	return nil
}

// Close stops playback.
func (c *Cues) Close() {
	c.mu.Lock()
	started := c.started
	c.mixer.Clear()
	c.started = false
	c.mu.Unlock()

	if started {
		speaker.Close()
	}
}

// SetMuted silences new cues. Cues already playing finish.
func (c *Cues) SetMuted(m bool) {
	c.mu.Lock()
	c.muted = m
	c.mu.Unlock()
}

// Muted reports whether cues are silenced.
func (c *Cues) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// OnSliceMotion plays the swish.
func (c *Cues) OnSliceMotion() {
	c.trigger(func() beep.Streamer {
		pan := (c.rng.Float64() - 0.5) * c.cfg.SwishPan
		return shape(NewSwish(c.rate), c.cfg.SwishGain*c.cfg.Volume, pan)
	})
}

// OnEntityHit plays the squish.
func (c *Cues) OnEntityHit() {
	c.trigger(func() beep.Streamer {
		pan := (c.rng.Float64() - 0.5) * c.cfg.SquishPan
		return shape(NewSquish(c.rate, c.rng), c.cfg.SquishGain*c.cfg.Volume, pan)
	})
}

func (c *Cues) trigger(build func() beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.muted {
		return
	}
	c.mixer.Add(build())
}

// Playing returns the number of cues still sounding.
func (c *Cues) Playing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixer.Len()
}

// lockedStreamer guards a mixer shared with the trigger methods. It never
// drains: gaps between cues are filled with silence.
type lockedStreamer struct {
	mu *sync.Mutex
	s  beep.Streamer
}

func (l lockedStreamer) Stream(samples [][2]float64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n, _ := l.s.Stream(samples)
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (l lockedStreamer) Err() error { return nil }
