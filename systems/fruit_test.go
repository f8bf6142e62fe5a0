package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/fruitslice/components"
	"github.com/pthm-cable/fruitslice/config"
)

type testFruit struct {
	pos    components.Position
	vel    components.Velocity
	rot    components.Rotation
	motion components.Motion
	fruit  components.Fruit
}

func (f *testFruit) body() Body {
	return Body{Pos: &f.pos, Vel: &f.vel, Rot: &f.rot, Motion: &f.motion, Fruit: &f.fruit}
}

func newTestFruit(x, y, size float64, gen int) *testFruit {
	return &testFruit{
		pos:    components.Position{X: x, Y: y},
		vel:    components.Velocity{X: 1, Y: -2},
		motion: components.Motion{Gravity: 0.2},
		fruit:  components.Fruit{Kind: components.KindKiwi, Size: size, Generation: gen},
	}
}

func testField() Field {
	return Field{Attractor: v(640, 360), Width: 1280, Height: 720, SpeedMul: 1}
}

func TestSliceFruitSplitsIntoTwoSmallerPieces(t *testing.T) {
	cfg := config.Default()
	split := NewSplit(cfg)
	rng := rand.New(rand.NewSource(1))

	parent := newTestFruit(100, 100, 1.0, 0)
	pieces, ok := SliceFruit(parent.body(), rng, &split)
	if !ok {
		t.Fatal("Whole fruit should slice")
	}
	if parent.fruit.State != components.StateSliced {
		t.Errorf("parent state = %v, want sliced", parent.fruit.State)
	}
	if d := parent.fruit.BreakDir; d != 1 && d != -1 {
		t.Errorf("BreakDir = %v, want +/-1", d)
	}
	if len(pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(pieces))
	}

	for i, p := range pieces {
		if p.Fruit.Size >= parent.fruit.Size {
			t.Errorf("piece %d size %v not smaller than parent %v", i, p.Fruit.Size, parent.fruit.Size)
		}
		if math.Abs(p.Fruit.Size-cfg.Split.ShrinkFactor) > 1e-12 {
			t.Errorf("piece %d size = %v, want %v", i, p.Fruit.Size, cfg.Split.ShrinkFactor)
		}
		if p.Fruit.Generation != 1 {
			t.Errorf("piece %d generation = %d, want 1", i, p.Fruit.Generation)
		}
		if p.Fruit.Kind != parent.fruit.Kind {
			t.Errorf("piece %d kind = %v, want %v", i, p.Fruit.Kind, parent.fruit.Kind)
		}
		if p.Fruit.State != components.StateWhole {
			t.Errorf("piece %d state = %v, want whole", i, p.Fruit.State)
		}
	}

	// Pieces fly apart: spread offsets point in roughly opposite directions.
	dx0 := pieces[0].Vel.X - parent.vel.X
	dx1 := pieces[1].Vel.X - parent.vel.X
	if dx0*dx1 >= 0 {
		t.Errorf("spread offsets not opposed: %v, %v", dx0, dx1)
	}
}

func TestSliceFruitTerminalFade(t *testing.T) {
	cfg := config.Default()
	split := NewSplit(cfg)
	rng := rand.New(rand.NewSource(2))

	tests := []struct {
		name string
		size float64
		gen  int
	}{
		{"at min size", cfg.Split.MinSize, 0},
		{"below min size", cfg.Split.MinSize / 2, 0},
		{"at max generation", 1.0, cfg.Split.MaxGenerations},
		{"past max generation", 1.0, cfg.Split.MaxGenerations + 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newTestFruit(100, 100, tc.size, tc.gen)
			pieces, ok := SliceFruit(f.body(), rng, &split)
			if !ok {
				t.Fatal("Whole fruit should accept the slice")
			}
			if len(pieces) != 0 {
				t.Errorf("got %d pieces, want none", len(pieces))
			}
			if f.fruit.State != components.StateFading {
				t.Errorf("state = %v, want fading", f.fruit.State)
			}
		})
	}
}

func TestSliceFruitRejectsNonWhole(t *testing.T) {
	split := NewSplit(config.Default())
	rng := rand.New(rand.NewSource(3))

	for _, st := range []components.State{components.StateSliced, components.StateFading, components.StateDead} {
		f := newTestFruit(100, 100, 1, 0)
		f.fruit.State = st
		if pieces, ok := SliceFruit(f.body(), rng, &split); ok || pieces != nil {
			t.Errorf("%v fruit was sliced again", st)
		}
		if f.fruit.State != st {
			t.Errorf("state changed from %v to %v", st, f.fruit.State)
		}
	}
}

func TestSplitLineageNeverExceedsThreshold(t *testing.T) {
	cfg := config.Default()
	split := NewSplit(cfg)
	rng := rand.New(rand.NewSource(4))

	queue := []*testFruit{newTestFruit(100, 100, 1.25, 0)}
	total := 0
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		total++
		canSplit := split.CanSplit(&f.fruit)
		pieces, _ := SliceFruit(f.body(), rng, &split)
		if !canSplit && len(pieces) > 0 {
			t.Fatalf("fruit size=%v gen=%d split past threshold", f.fruit.Size, f.fruit.Generation)
		}
		for _, p := range pieces {
			if p.Fruit.Size >= f.fruit.Size || p.Fruit.Generation != f.fruit.Generation+1 {
				t.Fatalf("bad child: size %v -> %v, gen %d -> %d", f.fruit.Size, p.Fruit.Size, f.fruit.Generation, p.Fruit.Generation)
			}
			c := &testFruit{pos: p.Pos, vel: p.Vel, rot: p.Rot, motion: p.Motion, fruit: p.Fruit}
			queue = append(queue, c)
		}
	}
	// 1 + 2 + 4 with two generations allowed.
	if total != 7 {
		t.Errorf("lineage size = %d, want 7", total)
	}
}

func TestUpdateFruitStateMonotonic(t *testing.T) {
	cfg := config.Default()
	lc := NewLifecycle(cfg)
	split := NewSplit(cfg)
	model := NewMotionModel(cfg.Motion)
	pool := NewParticlePool(64, 3)
	rng := rand.New(rand.NewSource(5))
	field := testField()

	f := newTestFruit(640, 200, 1, 0)
	f.vel = components.Velocity{}
	SliceFruit(f.body(), rng, &split)

	prev := f.fruit.State
	var events []FruitEvent
	for i := 0; i < 200 && f.fruit.State != components.StateDead; i++ {
		ev := UpdateFruit(f.body(), model, field, &lc, pool)
		if ev != FruitNone {
			events = append(events, ev)
		}
		if f.fruit.State < prev {
			t.Fatalf("tick %d: state went backward %v -> %v", i, prev, f.fruit.State)
		}
		prev = f.fruit.State
	}

	if f.fruit.State != components.StateDead {
		t.Fatalf("fruit never died, state = %v", f.fruit.State)
	}
	if len(events) != 2 || events[0] != FruitBroken || events[1] != FruitFaded {
		t.Errorf("events = %v, want [broken faded]", events)
	}
	if f.fruit.FadeProgress != 1 {
		t.Errorf("FadeProgress = %v, want clamped to 1", f.fruit.FadeProgress)
	}

	// Dead is absorbing.
	before := *f
	if ev := UpdateFruit(f.body(), model, field, &lc, pool); ev != FruitNone {
		t.Errorf("dead fruit produced event %v", ev)
	}
	if f.pos != before.pos || f.fruit.State != components.StateDead {
		t.Error("dead fruit was modified")
	}
}

func TestUpdateFruitOffscreenWins(t *testing.T) {
	cfg := config.Default()
	lc := NewLifecycle(cfg)
	model := NewMotionModel(cfg.Motion)
	pool := NewParticlePool(8, 3)
	field := testField()

	states := []components.State{components.StateWhole, components.StateSliced, components.StateFading}
	positions := []components.Position{
		{X: -cfg.World.Margin - 1, Y: 100},
		{X: field.Width + cfg.World.Margin + 1, Y: 100},
		{X: 100, Y: -cfg.World.Margin - 1},
		{X: 100, Y: field.Height + cfg.World.Margin + 1},
	}
	for _, st := range states {
		for _, p := range positions {
			f := newTestFruit(p.X, p.Y, 1, 0)
			f.fruit.State = st
			if ev := UpdateFruit(f.body(), model, field, &lc, pool); ev != FruitOffscreen {
				t.Errorf("%v at %+v: event = %v, want offscreen", st, p, ev)
			}
			if f.fruit.State != components.StateDead {
				t.Errorf("%v at %+v: state = %v, want dead", st, p, f.fruit.State)
			}
		}
	}

	// Inside the margin band stays alive.
	f := newTestFruit(-cfg.World.Margin+1, 100, 1, 0)
	f.vel = components.Velocity{}
	UpdateFruit(f.body(), model, field, &lc, pool)
	if f.fruit.State == components.StateDead {
		t.Error("fruit inside the margin band was reaped")
	}
}

func TestUpdateFruitReleasesExpiredParticles(t *testing.T) {
	cfg := config.Default()
	lc := NewLifecycle(cfg)
	model := NewMotionModel(cfg.Motion)
	pool := NewParticlePool(32, 3)
	rng := rand.New(rand.NewSource(6))

	f := newTestFruit(640, 300, 1, 0)
	burst := Burst{Count: 10, SpeedMin: 0, SpeedRange: 0.1, Spread: 2 * math.Pi, Color: white}
	f.fruit.Particles = burst.Emit(pool, rng, f.body().Center(), nil)
	if pool.ActiveCount() != 10 {
		t.Fatalf("ActiveCount = %d, want 10", pool.ActiveCount())
	}

	for i := 0; i < 60; i++ {
		UpdateFruit(f.body(), model, testField(), &lc, pool)
	}
	if len(f.fruit.Particles) != 0 {
		t.Errorf("fruit still owns %d particles", len(f.fruit.Particles))
	}
	if pool.ActiveCount() != 0 {
		t.Errorf("ActiveCount = %d, want 0", pool.ActiveCount())
	}
}

func TestWholeFruitImmunityCountsDown(t *testing.T) {
	cfg := config.Default()
	lc := NewLifecycle(cfg)
	model := NewMotionModel(cfg.Motion)
	pool := NewParticlePool(8, 3)

	f := newTestFruit(640, 300, 1, 1)
	f.fruit.Immune = 2
	if f.fruit.Sliceable() {
		t.Fatal("immune fruit should not be sliceable")
	}
	UpdateFruit(f.body(), model, testField(), &lc, pool)
	UpdateFruit(f.body(), model, testField(), &lc, pool)
	if !f.fruit.Sliceable() {
		t.Errorf("fruit still immune after countdown: %d", f.fruit.Immune)
	}
}
