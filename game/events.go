package game

// AudioCue receives the two sound triggers the simulation emits.
type AudioCue interface {
	// OnSliceMotion fires once per gesture segment, hit or not.
	OnSliceMotion()
	// OnEntityHit fires once per sliced fruit.
	OnEntityHit()
}

// ScoreSink receives score changes.
type ScoreSink interface {
	OnScoreDelta(delta int)
}

type nopAudio struct{}

func (nopAudio) OnSliceMotion() {}
func (nopAudio) OnEntityHit()   {}

type nopScore struct{}

func (nopScore) OnScoreDelta(int) {}

// ScoreFunc adapts a function to ScoreSink.
type ScoreFunc func(delta int)

func (f ScoreFunc) OnScoreDelta(delta int) { f(delta) }
