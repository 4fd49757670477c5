package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// hudRows is the number of screen rows below the field reserved for the HUD
const hudRows = 1

var (
	stylePlanet  = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue)
	styleCore    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePod     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShip    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleLowFuel = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// TerminalRenderer draws the whole field scaled onto a tcell screen, with
// the HUD on the bottom row.
type TerminalRenderer struct {
	screen tcell.Screen
	bounds physics.Bounds
}

// NewTerminalScreen opens and initializes the process terminal.
func NewTerminalScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	screen.HideCursor()
	return screen, nil
}

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen, bounds physics.Bounds) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		bounds: bounds,
	}
}

// fieldSize returns the number of columns and rows available to the field
func (r *TerminalRenderer) fieldSize() (int, int) {
	w, h := r.screen.Size()
	return w, max(h-hudRows, 1)
}

// scale returns world units per cell on each axis
func (r *TerminalRenderer) scale() (float64, float64) {
	cols, rows := r.fieldSize()
	return r.bounds.Width / float64(cols), r.bounds.Height / float64(rows)
}

// worldToScreen converts world coordinates to a cell, clamped to the field
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	cols, rows := r.fieldSize()
	sx, sy := r.scale()
	x := int(math.Floor(pos.X / sx))
	y := int(math.Floor(pos.Y / sy))
	return clamp(x, 0, cols-1), clamp(y, 0, rows-1)
}

// cellCenter is the world position at the middle of a cell
func (r *TerminalRenderer) cellCenter(x, y int) physics.Vector2D {
	sx, sy := r.scale()
	return physics.Vector2D{X: (float64(x) + 0.5) * sx, Y: (float64(y) + 0.5) * sy}
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

// RenderPlanet fills every cell whose center lies inside the planet.
func (r *TerminalRenderer) RenderPlanet(planet entity.Planet) {
	r.fillCircle(planet.GetCollider(), 'O', stylePlanet)
}

// RenderPickup implements entity.Renderer
func (r *TerminalRenderer) RenderPickup(pickup entity.Pickup) {
	x, y := r.worldToScreen(pickup.Position)
	switch pickup.Kind {
	case entity.EnergyCore:
		r.screen.SetContent(x, y, '*', nil, styleCore)
	case entity.FuelPod:
		r.screen.SetContent(x, y, '+', nil, stylePod)
	}
}

// RenderShip draws the ship as an arrow pointing along its heading.
func (r *TerminalRenderer) RenderShip(ship entity.Ship) {
	x, y := r.worldToScreen(ship.Position)
	r.screen.SetContent(x, y, headingGlyph(ship.Heading), nil, styleShip)
}

// RenderHUD implements entity.Renderer
func (r *TerminalRenderer) RenderHUD(hud entity.HUD) {
	_, h := r.screen.Size()
	row := h - 1

	style := styleHUD
	if hud.MaxFuel > 0 && hud.Fuel < hud.MaxFuel*0.2 {
		style = styleLowFuel
	}
	x := r.drawText(0, row, fmt.Sprintf("FUEL %4.0f/%-4.0f ", hud.Fuel, hud.MaxFuel), style)
	x = r.drawText(x, row, fuelBar(hud.Fuel, hud.MaxFuel, 10), style)
	r.drawText(x, row, fmt.Sprintf("  SCORE %d  TIME %.1fs", hud.Score, hud.Elapsed), styleHUD)
}

// RenderGameOver draws the final score and time in the middle of the screen.
func (r *TerminalRenderer) RenderGameOver(score int, elapsed float64) {
	w, h := r.screen.Size()
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("Score: %d", score),
		fmt.Sprintf("Time: %.1fs", elapsed),
	}
	top := h/2 - len(lines)/2
	for i, line := range lines {
		r.drawText((w-len(line))/2, top+i, line, styleShip)
	}
}

func (r *TerminalRenderer) fillCircle(c physics.Circle, glyph rune, style tcell.Style) {
	sx, sy := r.scale()
	cols, rows := r.fieldSize()
	x0, y0 := int(math.Floor((c.Center.X-c.Radius)/sx)), int(math.Floor((c.Center.Y-c.Radius)/sy))
	x1, y1 := int(math.Floor((c.Center.X+c.Radius)/sx)), int(math.Floor((c.Center.Y+c.Radius)/sy))

	drawn := false
	for y := max(y0, 0); y <= min(y1, rows-1); y++ {
		for x := max(x0, 0); x <= min(x1, cols-1); x++ {
			if c.Contains(r.cellCenter(x, y)) {
				r.screen.SetContent(x, y, glyph, nil, style)
				drawn = true
			}
		}
	}
	if !drawn {
		x, y := r.worldToScreen(c.Center)
		r.screen.SetContent(x, y, glyph, nil, style)
	}
}

// drawText writes s from (x, y) and returns the column after it
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// headingGlyph picks one of eight arrows for a heading in degrees. Heading 0
// points right and 90 points up the screen.
func headingGlyph(heading float64) rune {
	glyphs := []rune{'>', '/', '^', '\\', '<', '/', 'v', '\\'}
	h := math.Mod(heading, 360)
	if h < 0 {
		h += 360
	}
	return glyphs[int(math.Round(h/45))%len(glyphs)]
}

func fuelBar(fuel, maxFuel float64, width int) string {
	filled := 0
	if maxFuel > 0 {
		filled = clamp(int(math.Ceil(fuel/maxFuel*float64(width))), 0, width)
	}
	bar := make([]rune, width+2)
	bar[0], bar[width+1] = '[', ']'
	for i := 0; i < width; i++ {
		bar[i+1] = ' '
		if i < filled {
			bar[i+1] = '='
		}
	}
	return string(bar)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
