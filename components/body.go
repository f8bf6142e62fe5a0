package components

// Motion holds motion parameters fixed when a fruit is launched.
// Difficulty scaling is baked in at spawn time and inherited by split children.
type Motion struct {
	Gravity float64 // Attractor pull (orbital) or downward acceleration (ballistic)
}
