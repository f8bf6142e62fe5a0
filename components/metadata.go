package components

import (
	"image/color"
	"math"
)

// Kind identifies a fruit's visual category.
// It never affects motion; it selects palette, shape and particle tint.
type Kind uint8

const (
	KindApple Kind = iota
	KindBanana
	KindOrange
	KindGrape
	KindPineapple
	KindStarfruit
	KindDragonfruit
	KindWatermelon
	KindPomegranate
	KindPassionfruit
	KindLychee
	KindPapaya
	KindMangosteen
	KindKiwi
	KindPersimmon

	KindCount
)

// Shape selects the body outline a renderer draws for a kind.
type Shape uint8

const (
	ShapeRound Shape = iota
	ShapeOval
	ShapeCrescent
	ShapeCluster
	ShapeStar
	ShapeTall
)

// DetailKind selects the decorative marks drawn over a body.
type DetailKind uint8

const (
	DetailNone     DetailKind = iota
	DetailSeeds               // Small filled dots
	DetailSegments            // Radial segment lines
	DetailBumps               // Ring of outline bumps
	DetailHatch               // Crosshatch lines
	DetailCap                 // Lobed cap at the top
)

// DetailSpec describes how decorative points are laid out in body-local polar
// coordinates. Distances are in units of the base extent at size 1.0.
type DetailSpec struct {
	Kind       DetailKind
	Count      int
	Ring       bool    // Evenly spaced around MinDist instead of seeded
	MinAngle   float64 // Seeded angle range start (radians)
	AngleRange float64 // Seeded angle range width (radians)
	MinDist    float64
	DistRange  float64
	Color      color.RGBA
}

// KindInfo is the data-driven description of a fruit kind.
type KindInfo struct {
	Name   string
	Main   color.RGBA
	Stem   color.RGBA
	Leaf   color.RGBA
	Accent color.RGBA // Rind, skin, tip or cap depending on kind
	Shape  Shape
	Detail DetailSpec
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255}
}

var (
	stemBrown = rgb(0x4a2810)
	leafGreen = rgb(0x00ff00)
)

// KindTable maps every kind to its palette and shape parameters.
var KindTable = [KindCount]KindInfo{
	KindApple: {Name: "apple", Main: rgb(0xff0000), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xff0000), Shape: ShapeRound},
	KindBanana: {Name: "banana", Main: rgb(0xffff00), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xffa500), Shape: ShapeCrescent},
	KindOrange: {Name: "orange", Main: rgb(0xffa500), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xffc04d), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailSegments, Count: 6, Ring: true, MinDist: 0.45, Color: rgb(0xffc04d)}},
	KindGrape: {Name: "grape", Main: rgb(0x800080), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x800080), Shape: ShapeCluster},
	KindPineapple: {Name: "pineapple", Main: rgb(0xffff00), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xa9743a), Shape: ShapeTall,
		Detail: DetailSpec{Kind: DetailHatch, Count: 5, Color: rgb(0xa9743a)}},
	KindStarfruit: {Name: "starfruit", Main: rgb(0xffff00), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xe0e000), Shape: ShapeStar},
	KindDragonfruit: {Name: "dragonfruit", Main: rgb(0xff0000), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x000000), Shape: ShapeOval,
		Detail: DetailSpec{Kind: DetailSeeds, Count: 12, AngleRange: 2 * math.Pi, DistRange: 0.5, Color: rgb(0x000000)}},
	KindWatermelon: {Name: "watermelon", Main: rgb(0xff0000), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x188835), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailSeeds, Count: 7, AngleRange: 2 * math.Pi, DistRange: 0.25, Color: rgb(0x222222)}},
	KindPomegranate: {Name: "pomegranate", Main: rgb(0xff0000), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xb00000), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailCap, Count: 5, Ring: true, MinDist: 0.5, Color: rgb(0xb00000)}},
	KindPassionfruit: {Name: "passionfruit", Main: rgb(0x800080), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x5a005a), Shape: ShapeRound},
	KindLychee: {Name: "lychee", Main: rgb(0xff0000), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xf8a4a4), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailBumps, Count: 18, Ring: true, MinDist: 0.45, Color: rgb(0xf8a4a4)}},
	KindPapaya: {Name: "papaya", Main: rgb(0xffa500), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x262200), Shape: ShapeTall,
		Detail: DetailSpec{Kind: DetailSeeds, Count: 9, MinAngle: math.Pi/2 - 0.5, AngleRange: 1, MinDist: 0.175, DistRange: 0.125, Color: rgb(0x262200)}},
	KindMangosteen: {Name: "mangosteen", Main: rgb(0x800080), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x94fa7c), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailCap, Count: 4, Ring: true, MinDist: 0.5, Color: rgb(0x94fa7c)}},
	KindKiwi: {Name: "kiwi", Main: rgb(0x90ee90), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0x8b5a2b), Shape: ShapeOval,
		Detail: DetailSpec{Kind: DetailSeeds, Count: 18, Ring: true, MinDist: 0.25, Color: rgb(0x222222)}},
	KindPersimmon: {Name: "persimmon", Main: rgb(0xffa500), Stem: stemBrown, Leaf: leafGreen, Accent: rgb(0xa1ce58), Shape: ShapeRound,
		Detail: DetailSpec{Kind: DetailCap, Count: 4, Ring: true, MinDist: 0.5, Color: rgb(0xa1ce58)}},
}

// GrapeCluster holds the fixed berry offsets of a grape bunch, in base-extent units.
var GrapeCluster = [...][2]float64{
	{-0.175, 0.175}, {0, 0}, {0.175, 0.175}, {-0.1, -0.1}, {0.1, -0.1},
}

// Info returns the table entry for k. Out-of-range kinds fall back to apple.
func (k Kind) Info() *KindInfo {
	if k >= KindCount {
		return &KindTable[KindApple]
	}
	return &KindTable[k]
}

// String returns the display name for a Kind.
func (k Kind) String() string {
	if k >= KindCount {
		return "unknown"
	}
	return KindTable[k].Name
}

// DetailPoint returns the i-th decorative point for a fruit in polar form
// (angle in radians, distance in base-extent units). Seeded points depend only
// on the fruit's seed and i, so every frame draws the same layout.
func (d *DetailSpec) DetailPoint(seed uint64, i int) (angle, dist float64) {
	if d.Ring {
		return float64(i) * 2 * math.Pi / float64(max(d.Count, 1)), d.MinDist
	}
	h := splitmix(seed + uint64(i)*0x9e3779b97f4a7c15)
	a := float64(h>>40) / float64(1<<24)
	r := float64(h&0xffffff) / float64(1<<24)
	return d.MinAngle + a*d.AngleRange, d.MinDist + r*d.DistRange
}

// splitmix is the SplitMix64 finaliser.
func splitmix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
