package entity

import (
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// PickupKind identifies what a pickup does when collected
type PickupKind int

const (
	EnergyCore PickupKind = iota
	FuelPod
)

func (k PickupKind) String() string {
	switch k {
	case EnergyCore:
		return "energy_core"
	case FuelPod:
		return "fuel_pod"
	default:
		return "unknown"
	}
}

// Pickup is an ephemeral collectible. It never moves; on collection it is
// replaced by a fresh pickup of the same kind.
type Pickup struct {
	Body
	Kind PickupKind
}

// NewPickup creates a pickup of the given kind
func NewPickup(id ID, kind PickupKind, position physics.Vector2D, radius float64) *Pickup {
	return &Pickup{
		Body: Body{
			ID:       id,
			Position: position,
			Radius:   radius,
		},
		Kind: kind,
	}
}
