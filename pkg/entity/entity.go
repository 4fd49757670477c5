// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// ID is a unique identifier for an entity within a session
type ID uint64

// Entity is the common interface for everything drawn on the field
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	GetCollider() physics.Circle
	Render(r Renderer)
}

// IDSource hands out entity IDs. Each session owns its own source, so IDs are
// only unique within that session.
type IDSource struct {
	next ID
}

// Next returns a fresh ID. The first ID issued is 1.
func (s *IDSource) Next() ID {
	s.next++
	return s.next
}

// Body is the circular physical representation shared by ships, planets and
// pickups.
type Body struct {
	ID       ID
	Position physics.Vector2D
	Radius   float64
}

// GetID returns the entity's unique identifier
func (b *Body) GetID() ID {
	return b.ID
}

// GetPosition returns the entity's position
func (b *Body) GetPosition() physics.Vector2D {
	return b.Position
}

// GetCollider returns the entity's collision circle
func (b *Body) GetCollider() physics.Circle {
	return physics.Circle{
		Center: b.Position,
		Radius: b.Radius,
	}
}

func (s *Ship) Render(r Renderer) {
	r.RenderShip(*s)
}

func (p *Planet) Render(r Renderer) {
	r.RenderPlanet(*p)
}

func (p *Pickup) Render(r Renderer) {
	r.RenderPickup(*p)
}
