// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// z layers, back to front
const (
	zBackground float32 = iota
	zPlanet
	zPickup
	zShip
	zText
)

// SpriteSystem is the part of common.RenderSystem the renderer uses
type SpriteSystem interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer implements entity.Renderer on top of engo's render system.
// Game coordinates are used directly as pixels: the window is the field.
type EngoRenderer struct {
	system  SpriteSystem
	palette Palette
	font    *common.Font

	sprites map[entity.ID]*sprite
	hud     *sprite
	banner  *sprite
}

// NewEngoRenderer creates a renderer adding sprites to system. font may be
// nil, in which case no text is drawn.
func NewEngoRenderer(system SpriteSystem, palette Palette, font *common.Font) *EngoRenderer {
	return &EngoRenderer{
		system:  system,
		palette: palette,
		font:    font,
		sprites: make(map[entity.ID]*sprite),
	}
}

// Clear starts a frame. Sprites not drawn again before Present are removed.
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present removes the sprites of entities that left the field this frame.
func (r *EngoRenderer) Present() {
	for id, s := range r.sprites {
		if !s.seen {
			r.system.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}
}

// RenderShip draws the hull triangle rotated to the ship's heading.
func (r *EngoRenderer) RenderShip(ship entity.Ship) {
	s := r.getOrCreate(ship.ID, common.Triangle{}, r.palette.Ship, zShip)

	w := float32(2 * ship.Stats.HullHalfWidth)
	h := float32(2 * ship.Stats.HullLength)
	rotation := float32(90 - ship.Heading)
	s.Width, s.Height = w, h
	s.Rotation = rotation
	s.Position = rotatedTopLeft(ship.Position, w, h, rotation)
}

// RenderPlanet implements entity.Renderer
func (r *EngoRenderer) RenderPlanet(planet entity.Planet) {
	s := r.getOrCreate(planet.ID, common.Circle{}, r.palette.Planet, zPlanet)
	placeCircle(s, planet.Position, planet.Radius)
}

// RenderPickup implements entity.Renderer
func (r *EngoRenderer) RenderPickup(pickup entity.Pickup) {
	c := r.palette.Core
	if pickup.Kind == entity.FuelPod {
		c = r.palette.Pod
	}
	s := r.getOrCreate(pickup.ID, common.Circle{}, c, zPickup)
	placeCircle(s, pickup.Position, pickup.Radius)
}

// RenderHUD writes the HUD line in the top-left corner.
func (r *EngoRenderer) RenderHUD(hud entity.HUD) {
	c := r.palette.Text
	if lowFuel(hud) {
		c = r.palette.Warning
	}
	r.hud = r.setText(r.hud, FormatHUD(hud), c, engo.Point{X: hudMargin, Y: hudMargin})
}

// RenderGameOver hides the field and shows the final score.
func (r *EngoRenderer) RenderGameOver(score int, elapsed float64) {
	for _, s := range r.sprites {
		s.Hidden = true
	}
	if r.hud != nil {
		r.hud.Hidden = true
	}
	r.banner = r.setText(r.banner, FormatGameOver(score, elapsed), r.palette.Text, bannerPosition())
}

func (r *EngoRenderer) getOrCreate(id entity.ID, shape common.Drawable, c color.Color, z float32) *sprite {
	s, ok := r.sprites[id]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.Drawable = shape
		s.Color = c
		s.SetZIndex(z)
		r.sprites[id] = s
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.seen = true
	return s
}

// setText updates or creates a text sprite. Without a font it does nothing.
func (r *EngoRenderer) setText(s *sprite, text string, c color.Color, at engo.Point) *sprite {
	if r.font == nil {
		return s
	}
	if s == nil {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.SetZIndex(zText)
		r.system.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	s.Drawable = common.Text{Font: r.font, Text: text}
	s.Color = c
	s.Hidden = false
	s.Position = at
	return s
}

func placeCircle(s *sprite, center physics.Vector2D, radius float64) {
	d := float32(2 * radius)
	s.Width, s.Height = d, d
	s.Position = engo.Point{X: float32(center.X - radius), Y: float32(center.Y - radius)}
}

// rotatedTopLeft returns the position for a w x h box rotated clockwise by
// rotation degrees about its top-left corner so that its center lands on
// center.
func rotatedTopLeft(center physics.Vector2D, w, h, rotation float32) engo.Point {
	sin, cos := math.Sincos(float64(rotation) * math.Pi / 180)
	hw, hh := float64(w)/2, float64(h)/2
	return engo.Point{
		X: float32(center.X - (hw*cos - hh*sin)),
		Y: float32(center.Y - (hw*sin + hh*cos)),
	}
}
