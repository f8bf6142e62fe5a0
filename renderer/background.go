package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Themes are the background colours rotated on each difficulty bump.
var Themes = []rl.Color{
	{R: 0xff, G: 0xb6, B: 0xc1, A: 255},
	{R: 0xff, G: 0xc0, B: 0xcb, A: 255},
	{R: 0xff, G: 0x69, B: 0xb4, A: 255},
	{R: 0xff, G: 0x14, B: 0x93, A: 255},
	{R: 0xdb, G: 0x70, B: 0x93, A: 255},
	{R: 0xff, G: 0x69, B: 0xb4, A: 255},
	{R: 0xff, G: 0xb6, B: 0xc1, A: 255},
	{R: 0xff, G: 0xc0, B: 0xcb, A: 255},
}

// BackgroundRenderer fills the window with a vertical gradient of the current theme.
type BackgroundRenderer struct {
	width  int32
	height int32

	// Blend between the previous and current theme
	from, to rl.Color
	index    int
	blend    float32
}

// NewBackgroundRenderer creates a background renderer for the given window size.
func NewBackgroundRenderer(width, height int32) *BackgroundRenderer {
	return &BackgroundRenderer{
		width:  width,
		height: height,
		from:   Themes[0],
		to:     Themes[0],
		blend:  1,
	}
}

// Resize updates the fill area.
func (b *BackgroundRenderer) Resize(width, height int32) {
	b.width = width
	b.height = height
}

// Draw renders the gradient for theme index. A theme change cross-fades over
// roughly half a second at 60 FPS.
func (b *BackgroundRenderer) Draw(index int) {
	index %= len(Themes)
	if index < 0 {
		index += len(Themes)
	}
	if index != b.index {
		b.from = b.current()
		b.to = Themes[index]
		b.index = index
		b.blend = 0
	}
	if b.blend < 1 {
		b.blend = min(b.blend+1.0/30, 1)
	}

	top := b.current()
	bottom := lerp(top, rl.White, 0.35)
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, top, bottom)
}

func (b *BackgroundRenderer) current() rl.Color {
	return lerp(b.from, b.to, b.blend)
}

func lerp(a, b rl.Color, t float32) rl.Color {
	mix := func(x, y uint8) uint8 { return uint8(float32(x) + (float32(y)-float32(x))*t) }
	return rl.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
