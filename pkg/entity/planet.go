// pkg/entity/planet.go
package entity

import (
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// Planet is a static gravitating body. Touching one destroys the ship.
type Planet struct {
	Body
	Mass float64
}

// NewPlanet creates a planet whose mass scales linearly with its radius
func NewPlanet(id ID, position physics.Vector2D, radius, massPerRadius float64) *Planet {
	return &Planet{
		Body: Body{
			ID:       id,
			Position: position,
			Radius:   radius,
		},
		Mass: massPerRadius * radius,
	}
}

// Attractor returns the planet as a point mass for the gravity law.
func (p *Planet) Attractor() physics.Attractor {
	return physics.Attractor{Position: p.Position, Mass: p.Mass}
}
