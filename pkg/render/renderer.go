// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/logging"
)

// NullRenderer draws nothing. It logs each call at debug level, which makes
// it the renderer of choice for headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger discards everything.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship entity.Ship) {
	d.logger.Debug(context.Background(), "RenderShip called",
		"ship_id", ship.ID,
		"x", ship.Position.X,
		"y", ship.Position.Y,
		"heading", ship.Heading,
		"fuel", ship.Fuel,
	)
}

// RenderPlanet implements entity.Renderer.
func (d *NullRenderer) RenderPlanet(planet entity.Planet) {
	d.logger.Debug(context.Background(), "RenderPlanet called",
		"planet_id", planet.ID,
		"radius", planet.Radius,
	)
}

// RenderPickup implements entity.Renderer.
func (d *NullRenderer) RenderPickup(pickup entity.Pickup) {
	d.logger.Debug(context.Background(), "RenderPickup called",
		"pickup_id", pickup.ID,
		"kind", pickup.Kind.String(),
	)
}

// RenderHUD implements entity.Renderer.
func (d *NullRenderer) RenderHUD(hud entity.HUD) {
	d.logger.Debug(context.Background(), "RenderHUD called",
		"fuel", hud.Fuel,
		"score", hud.Score,
		"elapsed_seconds", hud.Elapsed,
	)
}

// RenderGameOver implements entity.Renderer.
func (d *NullRenderer) RenderGameOver(score int, elapsed float64) {
	d.logger.Debug(context.Background(), "RenderGameOver called",
		"score", score,
		"elapsed_seconds", elapsed,
	)
}
