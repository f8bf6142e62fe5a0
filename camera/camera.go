// Package camera translates between window pixels and the simulation's
// viewport units.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Viewport maps window pixels to viewport units.
//
// The simulation works in one canonical space: logical pixels with the origin
// at the top-left of the window. High-DPI windows report a framebuffer larger
// than the logical size; Scale is the ratio between the two.
type Viewport struct {
	// Window size in physical pixels
	PixelW, PixelH float32

	// Physical pixels per viewport unit (DPI scale)
	Scale float32
}

// New creates a viewport for a window of the given pixel size and DPI scale.
// Non-positive scales are treated as 1.
func New(pixelW, pixelH, scale float32) *Viewport {
	if scale <= 0 {
		scale = 1
	}
	return &Viewport{PixelW: pixelW, PixelH: pixelH, Scale: scale}
}

// Size returns the viewport dimensions in viewport units.
func (v *Viewport) Size() (w, h float64) {
	return float64(v.PixelW / v.Scale), float64(v.PixelH / v.Scale)
}

// ToWorld converts a window pixel position to viewport units.
func (v *Viewport) ToWorld(px, py float32) r2.Vec {
	return r2.Vec{X: float64(px / v.Scale), Y: float64(py / v.Scale)}
}

// ToScreen converts a viewport position to window pixels.
func (v *Viewport) ToScreen(p r2.Vec) (px, py float32) {
	return float32(p.X) * v.Scale, float32(p.Y) * v.Scale
}

// Length converts a viewport distance to pixels.
func (v *Viewport) Length(d float64) float32 {
	return float32(d) * v.Scale
}

// Resize updates the window size and scale. Returns true if anything changed.
// Zero-sized windows (minimized) are ignored.
func (v *Viewport) Resize(pixelW, pixelH, scale float32) bool {
	if pixelW <= 0 || pixelH <= 0 {
		return false
	}
	if scale <= 0 {
		scale = 1
	}
	if pixelW == v.PixelW && pixelH == v.PixelH && scale == v.Scale {
		return false
	}
	v.PixelW = pixelW
	v.PixelH = pixelH
	v.Scale = scale
	return true
}

// IsVisible returns true if a circle at p with the given radius (viewport
// units) could be visible (conservative check for culling).
func (v *Viewport) IsVisible(p r2.Vec, radius float64) bool {
	w, h := v.Size()
	return p.X+radius >= 0 && p.X-radius <= w && p.Y+radius >= 0 && p.Y-radius <= h
}
