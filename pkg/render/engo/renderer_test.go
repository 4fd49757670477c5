// pkg/render/engo/renderer_test.go
package engo

import (
	"math"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// fakeSprites records what the renderer adds and removes
type fakeSprites struct {
	added   map[uint64]*common.SpaceComponent
	renders map[uint64]*common.RenderComponent
	removed []uint64
}

func newFakeSprites() *fakeSprites {
	return &fakeSprites{
		added:   make(map[uint64]*common.SpaceComponent),
		renders: make(map[uint64]*common.RenderComponent),
	}
}

func (f *fakeSprites) Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent) {
	f.added[basic.ID()] = space
	f.renders[basic.ID()] = render
}

func (f *fakeSprites) Remove(basic ecs.BasicEntity) {
	f.removed = append(f.removed, basic.ID())
	delete(f.added, basic.ID())
	delete(f.renders, basic.ID())
}

func near32(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func TestEngoRenderer_PlacesCircles(t *testing.T) {
	sys := newFakeSprites()
	r := NewEngoRenderer(sys, DefaultPalette(), nil)

	planet := entity.NewPlanet(1, physics.Vector2D{X: 300, Y: 200}, 60, 6)
	pod := entity.NewPickup(2, entity.FuelPod, physics.Vector2D{X: 50, Y: 70}, 5)

	r.Clear()
	r.RenderPlanet(*planet)
	r.RenderPickup(*pod)
	r.Present()

	if len(sys.added) != 2 {
		t.Fatalf("sprites = %d, want 2", len(sys.added))
	}

	ps := r.sprites[planet.ID]
	if ps.Position.X != 240 || ps.Position.Y != 140 || ps.Width != 120 || ps.Height != 120 {
		t.Errorf("planet sprite at %v size %vx%v", ps.Position, ps.Width, ps.Height)
	}
	if _, ok := ps.Drawable.(common.Circle); !ok {
		t.Errorf("planet drawable = %T, want common.Circle", ps.Drawable)
	}

	pp := r.sprites[pod.ID]
	if pp.Position.X != 45 || pp.Position.Y != 65 || pp.Width != 10 {
		t.Errorf("pod sprite at %v size %v", pp.Position, pp.Width)
	}
	if pp.Color != DefaultPalette().Pod {
		t.Errorf("pod color = %v", pp.Color)
	}
}

func TestEngoRenderer_RemovesUndrawnSprites(t *testing.T) {
	sys := newFakeSprites()
	r := NewEngoRenderer(sys, DefaultPalette(), nil)

	core := entity.NewPickup(5, entity.EnergyCore, physics.Vector2D{X: 10, Y: 10}, 8)
	replacement := entity.NewPickup(6, entity.EnergyCore, physics.Vector2D{X: 90, Y: 90}, 8)

	r.Clear()
	r.RenderPickup(*core)
	r.Present()
	first := r.sprites[core.ID].BasicEntity.ID()

	r.Clear()
	r.RenderPickup(*replacement)
	r.Present()

	if _, ok := r.sprites[core.ID]; ok {
		t.Error("collected pickup still has a sprite")
	}
	if len(sys.removed) != 1 || sys.removed[0] != first {
		t.Errorf("removed = %v, want [%d]", sys.removed, first)
	}
	if len(sys.added) != 1 {
		t.Errorf("live sprites = %d, want 1", len(sys.added))
	}
}

func TestEngoRenderer_ReusesSprites(t *testing.T) {
	sys := newFakeSprites()
	r := NewEngoRenderer(sys, DefaultPalette(), nil)
	ship := entity.NewShip(1, physics.Vector2D{X: 600, Y: 400}, entity.DefaultShipStats())

	for i := 0; i < 5; i++ {
		r.Clear()
		ship.Position.X += 10
		r.RenderShip(*ship)
		r.Present()
	}

	if len(sys.added) != 1 || len(sys.removed) != 0 {
		t.Errorf("added %d removed %d, want one persistent sprite", len(sys.added), len(sys.removed))
	}
}

func TestEngoRenderer_ShipOrientation(t *testing.T) {
	tests := []struct {
		name     string
		heading  float64
		rotation float32
	}{
		{"facing_up", 90, 0},
		{"facing_right", 0, 90},
		{"facing_left", 180, -90},
		{"facing_down", 270, -180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEngoRenderer(newFakeSprites(), DefaultPalette(), nil)
			ship := entity.NewShip(1, physics.Vector2D{X: 600, Y: 400}, entity.DefaultShipStats())
			ship.Heading = tt.heading

			r.RenderShip(*ship)
			s := r.sprites[ship.ID]

			if !near32(s.Rotation, tt.rotation) {
				t.Errorf("Rotation = %v, want %v", s.Rotation, tt.rotation)
			}
			if s.Width != 30 || s.Height != 40 {
				t.Errorf("size = %vx%v, want 30x40", s.Width, s.Height)
			}
			if _, ok := s.Drawable.(common.Triangle); !ok {
				t.Errorf("ship drawable = %T, want common.Triangle", s.Drawable)
			}
		})
	}
}

func TestRotatedTopLeft(t *testing.T) {
	center := physics.Vector2D{X: 100, Y: 100}
	tests := []struct {
		rotation float32
		wantX    float32
		wantY    float32
	}{
		{0, 85, 80},
		{180, 115, 120},
		// a quarter turn clockwise swings the half extents (15, 20) to (-20, 15)
		{90, 120, 85},
	}
	for _, tt := range tests {
		got := rotatedTopLeft(center, 30, 40, tt.rotation)
		if !near32(got.X, tt.wantX) || !near32(got.Y, tt.wantY) {
			t.Errorf("rotatedTopLeft(rotation %v) = %v, want (%v, %v)", tt.rotation, got, tt.wantX, tt.wantY)
		}
	}
}

func TestEngoRenderer_TextNeedsFont(t *testing.T) {
	sys := newFakeSprites()
	r := NewEngoRenderer(sys, DefaultPalette(), nil)

	r.RenderHUD(entity.HUD{Fuel: 10, MaxFuel: 1000})
	r.RenderGameOver(100, 3)

	if r.hud != nil || r.banner != nil || len(sys.added) != 0 {
		t.Error("text sprites created without a font")
	}
}

func TestEngoRenderer_GameOverHidesField(t *testing.T) {
	r := NewEngoRenderer(newFakeSprites(), DefaultPalette(), nil)
	planet := entity.NewPlanet(1, physics.Vector2D{X: 300, Y: 200}, 60, 6)

	r.Clear()
	r.RenderPlanet(*planet)
	r.Present()
	r.RenderGameOver(0, 0)

	if !r.sprites[planet.ID].Hidden {
		t.Error("planet still visible on the game over screen")
	}
}
