package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue durations.
const (
	SwishDuration  = 200 * time.Millisecond
	SquishDuration = 150 * time.Millisecond
)

// swish is a falling chirp: 2000 Hz sweeping to 500 Hz under an exponential decay.
type swish struct {
	rate  beep.SampleRate
	phase float64
	pos   int
	total int
}

// NewSwish creates the slice-motion chirp.
func NewSwish(rate beep.SampleRate) beep.Streamer {
	return &swish{rate: rate, total: rate.N(SwishDuration)}
}

func (s *swish) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		u := float64(s.pos) / float64(s.total)
		freq := 2000 - 1500*u
		val := math.Sin(2*math.Pi*s.phase) * math.Exp(-3*u)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *swish) Err() error { return nil }

// squish mixes noise with a wobbling 800 Hz sine under a fast decay.
type squish struct {
	rate  beep.SampleRate
	rng   *rand.Rand
	phase float64
	pos   int
	total int
}

// NewSquish creates the hit sound. rng supplies the noise component.
func NewSquish(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &squish{rate: rate, rng: rng, total: rate.N(SquishDuration)}
}

func (s *squish) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.pos >= s.total {
			return i, true
		}
		u := float64(s.pos) / float64(s.total)
		freq := 800 + math.Sin(4*math.Pi*u)*400
		noise := s.rng.Float64()*2 - 1
		val := (noise*0.3 + math.Sin(2*math.Pi*s.phase)*0.7) * math.Exp(-5*u)

		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *squish) Err() error { return nil }

// newVolume scales a stream by a linear gain; zero or negative gain is silent.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// shape applies gain and stereo pan in [-1, 1].
func shape(s beep.Streamer, gain, pan float64) beep.Streamer {
	return &effects.Pan{Streamer: newVolume(s, gain), Pan: pan}
}
