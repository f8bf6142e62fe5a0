package components

// Position represents a fruit's viewport position.
type Position struct {
	X, Y float64
}

// Velocity represents a fruit's velocity in viewport units per tick.
type Velocity struct {
	X, Y float64
}

// Rotation represents a fruit's orientation and angular velocity.
type Rotation struct {
	Angle  float64 // radians
	AngVel float64 // radians per tick
}
