// pkg/engine/pickups.go
package engine

import (
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// SpawnFunc creates a fresh pickup of the given kind and radius.
type SpawnFunc func(kind entity.PickupKind, radius float64) *entity.Pickup

// PickupPool is a fixed-size set of pickups of one kind. Collected pickups are
// replaced in the same slot, so the pool never shrinks.
type PickupPool struct {
	Kind   entity.PickupKind
	Radius float64
	items  []*entity.Pickup
}

// NewPickupPool fills a pool with size pickups
func NewPickupPool(kind entity.PickupKind, radius float64, size int, spawn SpawnFunc) *PickupPool {
	pool := &PickupPool{
		Kind:   kind,
		Radius: radius,
		items:  make([]*entity.Pickup, 0, size),
	}
	for i := 0; i < size; i++ {
		pool.items = append(pool.items, spawn(kind, radius))
	}
	return pool
}

// Len returns the number of live pickups
func (p *PickupPool) Len() int {
	return len(p.items)
}

// Items returns the live pickups. The slice is a copy; the pickups are not.
func (p *PickupPool) Items() []*entity.Pickup {
	out := make([]*entity.Pickup, len(p.items))
	copy(out, p.items)
	return out
}

// Collect removes every pickup for which hit reports true and spawns a
// replacement for each one. Replacements are not tested in the same call.
// The removed pickups are returned in pool order.
func (p *PickupPool) Collect(hit func(physics.Circle) bool, spawn SpawnFunc) []entity.Pickup {
	var collected []entity.Pickup
	for i, item := range p.items {
		if !hit(item.GetCollider()) {
			continue
		}
		collected = append(collected, *item)
		p.items[i] = spawn(p.Kind, p.Radius)
	}
	return collected
}
