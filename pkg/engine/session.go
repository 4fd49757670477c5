// pkg/engine/session.go
package engine

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/event"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// Status is the lifecycle state of a session
type Status int

const (
	StatusRunning Status = iota
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// EndReason records why a session ended
type EndReason int

const (
	ReasonNone EndReason = iota
	ReasonPlanetCollision
	ReasonFuelExhausted
	ReasonQuit
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonPlanetCollision:
		return "planet_collision"
	case ReasonFuelExhausted:
		return "fuel_exhausted"
	case ReasonQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Result is the final outcome of a session
type Result struct {
	SessionID string
	Score     int
	Elapsed   float64 // seconds, derived from ticks
	Ticks     uint64
	Reason    EndReason
}

// Session owns every piece of mutable game state: the ship, the planets, both
// pickup pools, the score and the tick counter. Only Step mutates it.
type Session struct {
	ID          string
	Config      *config.GameConfig
	Ship        *entity.Ship
	Planets     []*entity.Planet
	Cores       *PickupPool
	Pods        *PickupPool
	Score       int
	CurrentTick uint64
	Status      Status
	Reason      EndReason
	EventBus    *event.Bus
	StateLock   sync.RWMutex

	bounds   physics.Bounds
	law      physics.GravityLaw
	ids      entity.IDSource
	place    *placer
	logger   *logging.Logger
	ctx      context.Context
	pending  []event.Event
	wasEmpty bool
}

// Option customizes a new session
type Option func(*sessionOptions)

type sessionOptions struct {
	rng    *rand.Rand
	bus    *event.Bus
	logger *logging.Logger
	id     string
}

// WithRand supplies the random source used for placement. It overrides
// Session.Seed from the configuration.
func WithRand(rng *rand.Rand) Option {
	return func(o *sessionOptions) { o.rng = rng }
}

// WithEventBus publishes session events on an existing bus
func WithEventBus(bus *event.Bus) Option {
	return func(o *sessionOptions) { o.bus = bus }
}

// WithLogger sets the session logger
func WithLogger(logger *logging.Logger) Option {
	return func(o *sessionOptions) { o.logger = logger }
}

// WithSessionID fixes the session ID instead of generating one
func WithSessionID(id string) Option {
	return func(o *sessionOptions) { o.id = id }
}

// NewSession builds a ready-to-run session: the ship at the field center with a
// full tank, the planets, and both pickup pools. A nil cfg uses the defaults.
func NewSession(cfg *config.GameConfig, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := sessionOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = newRand(cfg.Session.Seed)
	}
	if o.bus == nil {
		o.bus = event.NewEventBus()
	}
	if o.logger == nil {
		o.logger = logging.NewDiscardLogger()
	}
	if o.id == "" {
		o.id = logging.GenerateCorrelationID()
	}

	s := &Session{
		ID:       o.id,
		Config:   cfg,
		Status:   StatusRunning,
		EventBus: o.bus,
		bounds:   cfg.Bounds(),
		law:      cfg.GravityLaw(),
		logger:   o.logger.With("session_id", o.id),
		ctx:      logging.WithCorrelationID(context.Background(), o.id),
	}

	spawn := s.bounds.Center()
	s.place = &placer{
		rng:      o.rng,
		bounds:   s.bounds,
		safeZone: physics.Circle{Center: spawn, Radius: cfg.Field.SafeSpawnRadius},
		logger:   s.logger,
		ctx:      s.ctx,
	}

	s.initShip(spawn)
	s.initPlanets()
	s.initPickups()

	s.logger.Info(s.ctx, "session started",
		"planets", len(s.Planets),
		"energy_cores", s.Cores.Len(),
		"fuel_pods", s.Pods.Len(),
	)
	s.EventBus.Publish(event.NewSessionEvent(event.SessionStarted, s, s.ID, 0, 0, 0, ""))

	return s
}

// newRand returns a PCG source for seed. Seed 0 picks a time-based seed.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// initShip places the ship at the spawn point.
func (s *Session) initShip(spawn physics.Vector2D) {
	s.Ship = entity.NewShip(s.ids.Next(), spawn, s.Config.ShipStats())
}

// initPlanets generates the fixed planet set.
func (s *Session) initPlanets() {
	s.Planets = s.place.placePlanets(s.Config.Planets, &s.ids)
}

// initPickups fills both pickup pools.
func (s *Session) initPickups() {
	p := s.Config.Pickups
	s.Cores = NewPickupPool(entity.EnergyCore, p.EnergyCoreRadius, p.EnergyCoreCount, s.spawnPickup)
	s.Pods = NewPickupPool(entity.FuelPod, p.FuelPodRadius, p.FuelPodCount, s.spawnPickup)
}

// spawnPickup creates a pickup outside the safe zone.
func (s *Session) spawnPickup(kind entity.PickupKind, radius float64) *entity.Pickup {
	pos := s.place.pickupPosition(s.Config.Pickups.PlacementAttempts)
	return entity.NewPickup(s.ids.Next(), kind, pos, radius)
}

// Step advances the session by one tick: rotation and thrust from the input,
// gravity, integration and wrap, planet collisions, pickups, then the fuel
// check. It returns the status after the tick. Calling Step on an ended
// session does nothing.
func (s *Session) Step(in Input) Status {
	s.StateLock.Lock()
	status := s.step(in)
	pending := s.pending
	s.pending = nil
	s.StateLock.Unlock()

	for _, e := range pending {
		s.EventBus.Publish(e)
	}
	return status
}

func (s *Session) step(in Input) Status {
	if s.Status == StatusEnded {
		return s.Status
	}
	if in.Quit {
		s.endInternal(ReasonQuit)
		return s.Status
	}

	s.CurrentTick++

	s.applyInput(in)
	s.applyGravity()
	s.Ship.Integrate(s.bounds)

	if s.processPlanetCollisions() {
		return s.Status
	}
	s.processPickups()
	s.checkFuel()

	return s.Status
}

// applyInput turns the ship and fires the engines.
func (s *Session) applyInput(in Input) {
	if in.RotateLeft {
		s.Ship.Rotate(1)
	}
	if in.RotateRight {
		s.Ship.Rotate(-1)
	}
	if in.ThrustForward {
		s.Ship.Thrust(false, in.Boost)
	}
	if in.ThrustReverse {
		s.Ship.Thrust(true, false)
	}
}

// applyGravity sums the pull of every planet before the ship moves.
func (s *Session) applyGravity() {
	attractors := make([]physics.Attractor, len(s.Planets))
	for i, planet := range s.Planets {
		attractors[i] = planet.Attractor()
	}
	s.Ship.ApplyImpulse(s.law.NetImpulse(s.Ship.Position, attractors))
}

// processPlanetCollisions ends the session if the hull touches any planet.
func (s *Session) processPlanetCollisions() bool {
	for _, planet := range s.Planets {
		if s.Ship.HitsCircle(planet.GetCollider()) {
			s.pending = append(s.pending, event.NewCollisionEvent(s, s.ID, uint64(s.Ship.ID), uint64(planet.ID)))
			s.endInternal(ReasonPlanetCollision)
			return true
		}
	}
	return false
}

// processPickups collects energy cores, then fuel pods. Each collected pickup
// applies its own effect and gets its own replacement.
func (s *Session) processPickups() {
	for _, core := range s.Cores.Collect(s.Ship.HitsCircle, s.spawnPickup) {
		s.Score += s.Config.Pickups.EnergyCoreScore
		s.pending = append(s.pending, event.NewPickupEvent(s, s.ID, uint64(core.ID), core.Kind.String(), s.Score, s.Ship.Fuel))
	}
	for _, pod := range s.Pods.Collect(s.Ship.HitsCircle, s.spawnPickup) {
		s.Ship.Refuel(s.Config.Pickups.FuelPodAmount)
		s.pending = append(s.pending, event.NewPickupEvent(s, s.ID, uint64(pod.ID), pod.Kind.String(), s.Score, s.Ship.Fuel))
	}
}

// checkFuel ends the session once the tank is empty and the ship has all but
// stopped. A dry ship keeps coasting, and collecting, until then.
func (s *Session) checkFuel() {
	if !s.Ship.OutOfFuel() {
		s.wasEmpty = false
		return
	}

	s.Ship.Fuel = 0
	if !s.wasEmpty {
		s.wasEmpty = true
		s.pending = append(s.pending, event.NewShipEvent(event.FuelDepleted, s, s.ID, uint64(s.Ship.ID), 0, s.Ship.Speed()))
	}
	if s.Ship.Speed() < s.Config.Ship.StopSpeed {
		s.endInternal(ReasonFuelExhausted)
	}
}

// Quit ends a running session with ReasonQuit.
func (s *Session) Quit() {
	s.Step(Input{Quit: true})
}

// endInternal ends the session (must be called with lock held)
func (s *Session) endInternal(reason EndReason) {
	if s.Status == StatusEnded {
		return
	}
	s.Status = StatusEnded
	s.Reason = reason

	elapsed := s.elapsed()
	s.logger.Info(s.ctx, "session ended",
		"reason", reason.String(),
		"score", s.Score,
		"elapsed_seconds", elapsed,
		"ticks", s.CurrentTick,
	)
	s.pending = append(s.pending, event.NewSessionEvent(event.SessionEnded, s, s.ID, s.Score, elapsed, s.CurrentTick, reason.String()))
}

func (s *Session) elapsed() float64 {
	return float64(s.CurrentTick) / float64(s.Config.Session.TickRate)
}

// Elapsed returns the simulated time in seconds
func (s *Session) Elapsed() float64 {
	s.StateLock.RLock()
	defer s.StateLock.RUnlock()
	return s.elapsed()
}

// Ended reports whether the session is over
func (s *Session) Ended() bool {
	s.StateLock.RLock()
	defer s.StateLock.RUnlock()
	return s.Status == StatusEnded
}

// Result returns the outcome so far. Reason is ReasonNone while running.
func (s *Session) Result() Result {
	s.StateLock.RLock()
	defer s.StateLock.RUnlock()
	return Result{
		SessionID: s.ID,
		Score:     s.Score,
		Elapsed:   s.elapsed(),
		Ticks:     s.CurrentTick,
		Reason:    s.Reason,
	}
}

// Context returns a context carrying the session ID as correlation ID.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Render draws the current state: planets, pickups, the ship, then the HUD.
func (s *Session) Render(r entity.Renderer) {
	s.StateLock.RLock()
	defer s.StateLock.RUnlock()

	r.Clear()
	for _, planet := range s.Planets {
		planet.Render(r)
	}
	for _, pool := range []*PickupPool{s.Cores, s.Pods} {
		for _, pickup := range pool.items {
			pickup.Render(r)
		}
	}
	s.Ship.Render(r)
	r.RenderHUD(s.hud())
	r.Present()
}

func (s *Session) hud() entity.HUD {
	return entity.HUD{
		Fuel:    s.Ship.Fuel,
		MaxFuel: s.Ship.Stats.MaxFuel,
		Score:   s.Score,
		Elapsed: s.elapsed(),
	}
}

// State is a read-only copy of a session at one tick
type State struct {
	SessionID string
	Tick      uint64
	Status    Status
	Reason    EndReason
	Bounds    physics.Bounds
	Ship      entity.Ship
	Planets   []entity.Planet
	Pickups   []entity.Pickup
	HUD       entity.HUD
}

// Snapshot returns a copy of the current state, safe to read from any goroutine
func (s *Session) Snapshot() State {
	s.StateLock.RLock()
	defer s.StateLock.RUnlock()

	state := State{
		SessionID: s.ID,
		Tick:      s.CurrentTick,
		Status:    s.Status,
		Reason:    s.Reason,
		Bounds:    s.bounds,
		Ship:      *s.Ship,
		Planets:   make([]entity.Planet, 0, len(s.Planets)),
		Pickups:   make([]entity.Pickup, 0, s.Cores.Len()+s.Pods.Len()),
		HUD:       s.hud(),
	}
	for _, planet := range s.Planets {
		state.Planets = append(state.Planets, *planet)
	}
	for _, pool := range []*PickupPool{s.Cores, s.Pods} {
		for _, pickup := range pool.items {
			state.Pickups = append(state.Pickups, *pickup)
		}
	}
	return state
}
