// Package autopilot flies the ship without a human at the keyboard. It is
// used by the headless simulator and for attract-mode demos.
package autopilot

import (
	"math"
	"math/rand/v2"

	"github.com/opd-ai/gravity-vortex/pkg/engine"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// Behavior selects how the pilot chooses where to go
type Behavior int

const (
	BehaviorCollector Behavior = iota // chases pickups, fuel first when low
	BehaviorDrifter                   // wanders with random course changes
)

func (b Behavior) String() string {
	switch b {
	case BehaviorCollector:
		return "collector"
	case BehaviorDrifter:
		return "drifter"
	default:
		return "unknown"
	}
}

// ParseBehavior maps a behavior name to its value
func ParseBehavior(name string) (Behavior, bool) {
	switch name {
	case "collector":
		return BehaviorCollector, true
	case "drifter":
		return BehaviorDrifter, true
	default:
		return 0, false
	}
}

// Pilot is an engine.InputSource that reads the session through snapshots
// and steers toward a desired velocity.
type Pilot struct {
	snapshot func() engine.State
	behavior Behavior
	random   *rand.Rand

	// DangerMargin is the clearance to a planet surface below which the
	// pilot flies straight away from it.
	DangerMargin float64
	// CruiseSpeed is the speed the pilot tries to hold toward its target.
	CruiseSpeed float64
	// AlignTolerance is the largest heading error, in degrees, at which the
	// engine is fired.
	AlignTolerance float64
	// LowFuelRatio is the tank fraction below which fuel pods come first.
	LowFuelRatio float64
	// MaxTicks makes the pilot quit once the session reaches it. 0 never quits.
	MaxTicks uint64

	wander float64 // drifter course, degrees
}

// Option configures a Pilot
type Option func(*Pilot)

// WithBehavior sets the behavior
func WithBehavior(b Behavior) Option {
	return func(p *Pilot) { p.behavior = b }
}

// WithRand sets the random source used by the drifter
func WithRand(r *rand.Rand) Option {
	return func(p *Pilot) { p.random = r }
}

// WithMaxTicks makes the pilot quit after n ticks
func WithMaxTicks(n uint64) Option {
	return func(p *Pilot) { p.MaxTicks = n }
}

// New creates a pilot reading state from snapshot, usually Session.Snapshot.
func New(snapshot func() engine.State, opts ...Option) *Pilot {
	p := &Pilot{
		snapshot:       snapshot,
		behavior:       BehaviorCollector,
		random:         rand.New(rand.NewPCG(1, 2)),
		DangerMargin:   90,
		CruiseSpeed:    4,
		AlignTolerance: 12,
		LowFuelRatio:   0.35,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll implements engine.InputSource.
func (p *Pilot) Poll() engine.Input {
	state := p.snapshot()
	if p.MaxTicks > 0 && state.Tick >= p.MaxTicks {
		return engine.Input{Quit: true}
	}

	ship := state.Ship
	var desired physics.Vector2D
	if planet, ok := p.threat(ship, state.Planets); ok {
		desired = ship.Position.Sub(planet.Position).Normalize().Scale(p.CruiseSpeed)
	} else {
		desired = p.cruise(state)
	}

	return p.steer(ship, desired.Sub(ship.Velocity))
}

// threat returns the planet the ship is closest to entering, if any is
// within the danger margin.
func (p *Pilot) threat(ship entity.Ship, planets []entity.Planet) (entity.Planet, bool) {
	var closest entity.Planet
	best := math.Inf(1)
	for _, planet := range planets {
		clearance := ship.Position.Distance(planet.Position) - planet.Radius - ship.Radius
		if clearance < p.DangerMargin && clearance < best {
			closest, best = planet, clearance
		}
	}
	return closest, !math.IsInf(best, 1)
}

// cruise returns the velocity the behavior wants when no planet is near.
func (p *Pilot) cruise(state engine.State) physics.Vector2D {
	if p.behavior == BehaviorDrifter {
		if p.random.Float64() < 0.02 {
			p.wander += float64(p.random.IntN(181) - 90)
		}
		return physics.HeadingVector(p.wander).Scale(p.CruiseSpeed * 0.6)
	}

	target, ok := p.target(state.Ship, state.Pickups)
	if !ok {
		return physics.Vector2D{}
	}
	to := target.Position.Sub(state.Ship.Position)
	speed := p.CruiseSpeed
	// ease off when close so the ship does not overshoot small pickups
	if d := to.Length(); d < 60 {
		speed *= math.Max(d/60, 0.3)
	}
	return to.Normalize().Scale(speed)
}

// target picks the nearest pickup, looking only at fuel pods when the tank
// is low and any are present.
func (p *Pilot) target(ship entity.Ship, pickups []entity.Pickup) (entity.Pickup, bool) {
	wantFuel := ship.Fuel < ship.Stats.MaxFuel*p.LowFuelRatio

	var best entity.Pickup
	bestDist := math.Inf(1)
	for pass := 0; pass < 2; pass++ {
		for _, pk := range pickups {
			if pass == 0 && wantFuel && pk.Kind != entity.FuelPod {
				continue
			}
			if d := ship.Position.Distance(pk.Position); d < bestDist {
				best, bestDist = pk, d
			}
		}
		if !math.IsInf(bestDist, 1) || !wantFuel {
			break
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// steer turns toward the correction vector and fires when lined up. Small
// corrections are left to coasting to save fuel.
func (p *Pilot) steer(ship entity.Ship, correction physics.Vector2D) engine.Input {
	if correction.Length() < ship.Stats.Thrust {
		return engine.Input{}
	}

	delta := physics.AngleDelta(ship.Heading, physics.HeadingOf(correction))
	in := engine.Input{}
	half := ship.Stats.RotationSpeed / 2
	switch {
	case delta > half:
		in.RotateLeft = true
	case delta < -half:
		in.RotateRight = true
	}

	if math.Abs(delta) <= p.AlignTolerance {
		in.ThrustForward = true
	} else if math.Abs(delta) >= 180-p.AlignTolerance && ship.Fuel > 0 {
		// pointing the wrong way: brake with the reverse engine while turning
		in.ThrustReverse = true
	}
	return in
}
