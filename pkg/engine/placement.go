// pkg/engine/placement.go
package engine

import (
	"context"
	"math/rand/v2"

	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// placer samples positions on the field. Coordinates are whole numbers in
// [0, Width] x [0, Height], both ends inclusive.
type placer struct {
	rng      *rand.Rand
	bounds   physics.Bounds
	safeZone physics.Circle
	logger   *logging.Logger
	ctx      context.Context
}

// randomPoint returns a uniformly random lattice point on the field.
func (p *placer) randomPoint() physics.Vector2D {
	return physics.Vector2D{
		X: float64(p.rng.IntN(int(p.bounds.Width) + 1)),
		Y: float64(p.rng.IntN(int(p.bounds.Height) + 1)),
	}
}

// intBetween returns a uniform integer in [lo, hi].
func (p *placer) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// placePlanets creates the planet set by rejection sampling. A candidate is
// rejected when its center is inside the safe zone or when it overlaps a planet
// already placed. After cfg.PlacementAttempts rejections the last candidate is
// kept anyway.
func (p *placer) placePlanets(cfg config.PlanetConfig, ids *entity.IDSource) []*entity.Planet {
	count := p.intBetween(cfg.MinCount, cfg.MaxCount)
	planets := make([]*entity.Planet, 0, count)

	for i := 0; i < count; i++ {
		radius := float64(p.intBetween(cfg.MinRadius, cfg.MaxRadius))
		pos := p.planetPosition(radius, planets, cfg.PlacementAttempts)
		planets = append(planets, entity.NewPlanet(ids.Next(), pos, radius, cfg.MassPerRadius))
	}
	return planets
}

func (p *placer) planetPosition(radius float64, placed []*entity.Planet, attempts int) physics.Vector2D {
	var candidate physics.Vector2D
	for attempt := 0; attempt < attempts; attempt++ {
		candidate = p.randomPoint()
		if p.planetFits(candidate, radius, placed) {
			return candidate
		}
	}
	p.logger.Debug(p.ctx, "planet placement exhausted attempts",
		"attempts", attempts,
		"x", candidate.X,
		"y", candidate.Y,
		"radius", radius,
	)
	return candidate
}

func (p *placer) planetFits(center physics.Vector2D, radius float64, placed []*entity.Planet) bool {
	if p.safeZone.Contains(center) {
		return false
	}
	c := physics.Circle{Center: center, Radius: radius}
	for _, other := range placed {
		if c.Collides(other.GetCollider()) {
			return false
		}
	}
	return true
}

// pickupPosition re-rolls while the point lands inside the safe zone, up to
// attempts times.
func (p *placer) pickupPosition(attempts int) physics.Vector2D {
	candidate := p.randomPoint()
	for attempt := 1; attempt < attempts && p.safeZone.Contains(candidate); attempt++ {
		candidate = p.randomPoint()
	}
	if p.safeZone.Contains(candidate) {
		p.logger.Debug(p.ctx, "pickup placement exhausted attempts",
			"attempts", attempts,
			"x", candidate.X,
			"y", candidate.Y,
		)
	}
	return candidate
}
