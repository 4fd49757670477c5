// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Game event types
const (
	SessionStarted  Type = "session_started"
	SessionEnded    Type = "session_ended"
	PickupCollected Type = "pickup_collected"
	PlanetCollision Type = "planet_collision"
	FuelDepleted    Type = "fuel_depleted"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe. Cancel removes the handler.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			// copy so a Publish iterating the old slice is unaffected
			next := make([]subscriber, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			b.handlers[eventType] = append(next, subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// SessionEvent marks the start or end of a session
type SessionEvent struct {
	BaseEvent
	SessionID string
	Score     int
	Elapsed   float64 // seconds
	Ticks     uint64
	Reason    string // empty for SessionStarted
}

// NewSessionEvent creates a new session event
func NewSessionEvent(eventType Type, source interface{}, sessionID string, score int, elapsed float64, ticks uint64, reason string) *SessionEvent {
	return &SessionEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		SessionID: sessionID,
		Score:     score,
		Elapsed:   elapsed,
		Ticks:     ticks,
		Reason:    reason,
	}
}

// PickupEvent is published for every collected pickup
type PickupEvent struct {
	BaseEvent
	SessionID string
	PickupID  uint64
	Kind      string
	Score     int     // score after collection
	Fuel      float64 // fuel after collection
}

// NewPickupEvent creates a new pickup event
func NewPickupEvent(source interface{}, sessionID string, pickupID uint64, kind string, score int, fuel float64) *PickupEvent {
	return &PickupEvent{
		BaseEvent: BaseEvent{
			EventType: PickupCollected,
			Source:    source,
		},
		SessionID: sessionID,
		PickupID:  pickupID,
		Kind:      kind,
		Score:     score,
		Fuel:      fuel,
	}
}

// CollisionEvent records the ship hitting a planet
type CollisionEvent struct {
	BaseEvent
	SessionID string
	ShipID    uint64
	PlanetID  uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, sessionID string, shipID, planetID uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: PlanetCollision,
			Source:    source,
		},
		SessionID: sessionID,
		ShipID:    shipID,
		PlanetID:  planetID,
	}
}

// ShipEvent carries a snapshot of the ship, e.g. when its tank runs dry
type ShipEvent struct {
	BaseEvent
	SessionID string
	ShipID    uint64
	Fuel      float64
	Speed     float64
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, sessionID string, shipID uint64, fuel, speed float64) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		SessionID: sessionID,
		ShipID:    shipID,
		Fuel:      fuel,
		Speed:     speed,
	}
}
