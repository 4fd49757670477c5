package physics

import "math"

// Attractor is a fixed point mass pulling on the ship.
type Attractor struct {
	Position Vector2D
	Mass     float64
}

// GravityLaw describes the softened attraction used by the game:
// force = G * mass / distance^Exponent. Exponent 1.5 gives a stronger long-range
// pull than inverse-square.
type GravityLaw struct {
	G        float64
	Exponent float64
}

// Magnitude returns the force a mass exerts at the given distance. Zero distance
// yields zero so callers never see an infinity.
func (law GravityLaw) Magnitude(mass, distance float64) float64 {
	if distance == 0 {
		return 0
	}
	return law.G * mass / math.Pow(distance, law.Exponent)
}

// Impulse returns the velocity change a single attractor applies to a body at
// target for one tick. ok is false when the body sits exactly on the attractor.
func (law GravityLaw) Impulse(target Vector2D, a Attractor) (impulse Vector2D, ok bool) {
	d := a.Position.Sub(target)
	distance := d.Length()
	if distance == 0 {
		return Vector2D{}, false
	}
	return FromAngle(d.Angle(), law.Magnitude(a.Mass, distance)), true
}

// NetImpulse sums the contributions of every attractor on a body at target.
func (law GravityLaw) NetImpulse(target Vector2D, attractors []Attractor) Vector2D {
	var total Vector2D
	for _, a := range attractors {
		if impulse, ok := law.Impulse(target, a); ok {
			total = total.Add(impulse)
		}
	}
	return total
}
