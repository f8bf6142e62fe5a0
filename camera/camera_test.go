package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestNew(t *testing.T) {
	v := New(1280, 720, 0)
	if v.Scale != 1 {
		t.Errorf("expected scale 1 for non-positive input, got %f", v.Scale)
	}
	w, h := v.Size()
	if w != 1280 || h != 720 {
		t.Errorf("expected size 1280x720, got %vx%v", w, h)
	}
}

func TestHighDPISize(t *testing.T) {
	v := New(2560, 1440, 2)
	w, h := v.Size()
	if w != 1280 || h != 720 {
		t.Errorf("expected logical size 1280x720, got %vx%v", w, h)
	}
}

func TestToWorldRoundtrip(t *testing.T) {
	v := New(2560, 1440, 2)

	testCases := []struct{ px, py float32 }{
		{1280, 720}, // center
		{100, 100},  // top-left
		{2400, 1200},
	}

	for _, tc := range testCases {
		p := v.ToWorld(tc.px, tc.py)
		px, py := v.ToScreen(p)
		if math.Abs(float64(px-tc.px)) > 0.01 || math.Abs(float64(py-tc.py)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %v -> (%f,%f)", tc.px, tc.py, p, px, py)
		}
	}

	if got := v.ToWorld(1280, 720); got != (r2.Vec{X: 640, Y: 360}) {
		t.Errorf("expected (640, 360), got %v", got)
	}
}

func TestLength(t *testing.T) {
	v := New(2560, 1440, 2)
	if got := v.Length(20); got != 40 {
		t.Errorf("expected 40 pixels, got %f", got)
	}
}

func TestResize(t *testing.T) {
	v := New(1280, 720, 1)

	if v.Resize(1280, 720, 1) {
		t.Error("same size should report no change")
	}
	if v.Resize(0, 720, 1) {
		t.Error("zero width should be ignored")
	}
	if !v.Resize(1920, 1080, 1.5) {
		t.Fatal("expected change")
	}
	w, h := v.Size()
	if w != 1280 || h != 720 {
		t.Errorf("expected logical size 1280x720, got %vx%v", w, h)
	}
}

func TestIsVisible(t *testing.T) {
	v := New(1280, 720, 1)

	tests := []struct {
		name string
		p    r2.Vec
		r    float64
		want bool
	}{
		{"centre", r2.Vec{X: 640, Y: 360}, 10, true},
		{"overlapping left edge", r2.Vec{X: -5, Y: 360}, 10, true},
		{"far left", r2.Vec{X: -50, Y: 360}, 10, false},
		{"below", r2.Vec{X: 640, Y: 800}, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsVisible(tt.p, tt.r); got != tt.want {
				t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.p, tt.r, got, tt.want)
			}
		})
	}
}
