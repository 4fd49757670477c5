// pkg/entity/ship.go
package entity

import (
	"math"

	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// ShipStats contains the handling characteristics of the ship
type ShipStats struct {
	RotationSpeed   float64 // degrees per tick
	Thrust          float64
	ReverseThrust   float64
	BoostMultiplier float64
	BoostFuelCost   float64
	FuelConsumption float64
	MaxFuel         float64
	InertiaDamping  float64
	Radius          float64
	HullLength      float64 // apex ahead of center, base the same distance behind
	HullHalfWidth   float64
}

// DefaultShipStats returns the reference handling
func DefaultShipStats() ShipStats {
	return ShipStats{
		RotationSpeed:   5,
		Thrust:          0.3,
		ReverseThrust:   0.15,
		BoostMultiplier: 2.0,
		BoostFuelCost:   1.0,
		FuelConsumption: 0.2,
		MaxFuel:         1000,
		InertiaDamping:  0.98,
		Radius:          15,
		HullLength:      20,
		HullHalfWidth:   15,
	}
}

// Ship is the player's craft
type Ship struct {
	Body
	Velocity physics.Vector2D
	Heading  float64 // degrees, counter-clockwise from +x on screen, unbounded
	Fuel     float64
	Stats    ShipStats
}

// NewShip creates a ship at rest with a full tank
func NewShip(id ID, position physics.Vector2D, stats ShipStats) *Ship {
	return &Ship{
		Body: Body{
			ID:       id,
			Position: position,
			Radius:   stats.Radius,
		},
		Fuel:  stats.MaxFuel,
		Stats: stats,
	}
}

// Rotate turns the ship by one tick's worth of rotation. direction is +1 for
// counter-clockwise on screen, -1 for clockwise.
func (s *Ship) Rotate(direction int) {
	s.Heading += float64(direction) * s.Stats.RotationSpeed
}

// Thrust fires the engine for one tick. It reports whether any thrust was
// applied; an empty tank makes it a no-op.
func (s *Ship) Thrust(reverse, boost bool) bool {
	if s.Fuel <= 0 {
		return false
	}

	power := s.Stats.Thrust
	if reverse {
		power = s.Stats.ReverseThrust
	}
	if boost {
		power *= s.Stats.BoostMultiplier
		s.Fuel -= s.Stats.BoostFuelCost
	}

	dir := physics.HeadingVector(s.Heading)
	if reverse {
		dir = dir.Scale(-1)
	}
	s.Velocity = s.Velocity.Add(dir.Scale(power))

	s.Fuel -= s.Stats.FuelConsumption
	if s.Fuel < 0 {
		s.Fuel = 0
	}
	return true
}

// ApplyImpulse adds a velocity change, e.g. from gravity
func (s *Ship) ApplyImpulse(impulse physics.Vector2D) {
	s.Velocity = s.Velocity.Add(impulse)
}

// Integrate damps the velocity, moves the ship and wraps it around the field.
func (s *Ship) Integrate(bounds physics.Bounds) {
	s.Position, s.Velocity = physics.Integrate(s.Position, s.Velocity, s.Stats.InertiaDamping)
	s.Position = physics.Wrap(s.Position, bounds, s.Radius)
}

// Speed returns the magnitude of the ship's velocity
func (s *Ship) Speed() float64 {
	return s.Velocity.Length()
}

// Refuel adds fuel up to the tank capacity and returns the amount actually added.
func (s *Ship) Refuel(amount float64) float64 {
	before := s.Fuel
	s.Fuel = math.Min(s.Fuel+amount, s.Stats.MaxFuel)
	return s.Fuel - before
}

// OutOfFuel reports whether the tank is empty
func (s *Ship) OutOfFuel() bool {
	return s.Fuel <= 0
}

// Hull returns the ship's triangular hull in world space, apex pointing along
// the heading.
func (s *Ship) Hull() physics.Triangle {
	forward := physics.HeadingVector(s.Heading)
	side := forward.Perp().Scale(s.Stats.HullHalfWidth)
	apex := s.Position.Add(forward.Scale(s.Stats.HullLength))
	base := s.Position.Sub(forward.Scale(s.Stats.HullLength))
	return physics.Triangle{
		A: apex,
		B: base.Add(side),
		C: base.Sub(side),
	}
}

// HitsCircle reports whether the hull overlaps a circular body
func (s *Ship) HitsCircle(c physics.Circle) bool {
	return s.Hull().IntersectsCircle(c)
}
