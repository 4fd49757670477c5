// pkg/engine/placement_test.go
package engine

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/opd-ai/gravity-vortex/pkg/config"
	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

func testPlacer(seed uint64, safeRadius float64) *placer {
	bounds := physics.Bounds{Width: 1200, Height: 800}
	return &placer{
		rng:      rand.New(rand.NewPCG(seed, seed)),
		bounds:   bounds,
		safeZone: physics.Circle{Center: bounds.Center(), Radius: safeRadius},
		logger:   logging.NewDiscardLogger(),
		ctx:      context.Background(),
	}
}

func TestPlacer_RandomPointIsInclusiveLattice(t *testing.T) {
	p := testPlacer(1, 0)
	p.bounds = physics.Bounds{Width: 2, Height: 1}

	seen := make(map[physics.Vector2D]bool)
	for i := 0; i < 2000; i++ {
		pt := p.randomPoint()
		if pt.X < 0 || pt.X > 2 || pt.Y < 0 || pt.Y > 1 {
			t.Fatalf("point %v outside field", pt)
		}
		seen[pt] = true
	}
	if len(seen) != 6 {
		t.Errorf("saw %d distinct lattice points, want 6 (both ends inclusive)", len(seen))
	}
}

func TestPlacer_IntBetween(t *testing.T) {
	p := testPlacer(2, 0)
	tests := []struct {
		name   string
		lo, hi int
	}{
		{"planet_count", 4, 6},
		{"planet_radius", 50, 80},
		{"degenerate", 5, 5},
		{"inverted", 7, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				got := p.intBetween(tt.lo, tt.hi)
				hi := tt.hi
				if hi < tt.lo {
					hi = tt.lo
				}
				if got < tt.lo || got > hi {
					t.Fatalf("intBetween(%d, %d) = %d", tt.lo, tt.hi, got)
				}
			}
		})
	}
}

func TestPlacer_PickupPositionAvoidsSafeZone(t *testing.T) {
	p := testPlacer(3, 200)
	for i := 0; i < 5000; i++ {
		if pos := p.pickupPosition(100); p.safeZone.Contains(pos) {
			t.Fatalf("pickup placed in safe zone at %v", pos)
		}
	}
}

func TestPlacer_PickupPositionGivesUpAfterAttempts(t *testing.T) {
	// the safe zone covers the whole field, so every candidate is rejected
	p := testPlacer(4, 5000)
	pos := p.pickupPosition(100)
	if pos.X < 0 || pos.X > 1200 || pos.Y < 0 || pos.Y > 800 {
		t.Errorf("fallback position %v outside field", pos)
	}
}

func TestPlacer_PlanetsAcceptLastCandidateWhenCrowded(t *testing.T) {
	p := testPlacer(5, 5000)
	var ids entity.IDSource
	cfg := config.PlanetConfig{
		MinCount:          3,
		MaxCount:          3,
		MinRadius:         50,
		MaxRadius:         50,
		MassPerRadius:     6,
		PlacementAttempts: 100,
	}

	planets := p.placePlanets(cfg, &ids)

	if len(planets) != 3 {
		t.Fatalf("placed %d planets, want 3 even when every candidate is rejected", len(planets))
	}
	for i, planet := range planets {
		if planet.ID != entity.ID(i+1) {
			t.Errorf("planet %d has ID %d", i, planet.ID)
		}
	}
}

func TestPlacer_PlanetsDoNotOverlap(t *testing.T) {
	cfg := config.DefaultConfig().Planets
	cfg.MinCount, cfg.MaxCount = 8, 8

	for seed := uint64(1); seed <= 20; seed++ {
		p := testPlacer(seed, 200)
		var ids entity.IDSource
		planets := p.placePlanets(cfg, &ids)

		for i, a := range planets {
			if p.safeZone.Contains(a.Position) {
				t.Errorf("seed %d: planet in safe zone at %v", seed, a.Position)
			}
			for _, b := range planets[i+1:] {
				if a.GetCollider().Collides(b.GetCollider()) {
					t.Errorf("seed %d: planets at %v and %v overlap", seed, a.Position, b.Position)
				}
			}
		}
	}
}

func TestPlacer_RandomPointAtLargestValidField(t *testing.T) {
	p := testPlacer(4, 0)
	p.bounds = physics.Bounds{Width: config.MaxFieldSize, Height: config.MaxFieldSize}

	for i := 0; i < 100; i++ {
		pt := p.randomPoint()
		if pt.X < 0 || pt.X > config.MaxFieldSize || pt.Y < 0 || pt.Y > config.MaxFieldSize {
			t.Fatalf("point %v outside field", pt)
		}
	}
}
