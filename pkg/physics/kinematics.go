package physics

// Bounds is the playfield rectangle anchored at the origin.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the field.
func (b Bounds) Center() Vector2D {
	return Vector2D{X: b.Width / 2, Y: b.Height / 2}
}

// Integrate applies viscous damping to the velocity and then advances the
// position by the damped velocity. One call is one tick.
func Integrate(position, velocity Vector2D, damping float64) (Vector2D, Vector2D) {
	velocity = velocity.Scale(damping)
	return position.Add(velocity), velocity
}

// Wrap maps a position that has left the field (extended by radius on every side)
// onto the opposite edge. The field is a torus: leaving past Width+radius re-enters
// at -radius, leaving past -radius re-enters at Width+radius, and likewise for y.
func Wrap(pos Vector2D, bounds Bounds, radius float64) Vector2D {
	pos.X = wrapAxis(pos.X, bounds.Width, radius)
	pos.Y = wrapAxis(pos.Y, bounds.Height, radius)
	return pos
}

func wrapAxis(v, size, radius float64) float64 {
	if v > size+radius {
		return -radius
	}
	if v < -radius {
		return size + radius
	}
	return v
}
