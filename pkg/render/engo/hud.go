// pkg/render/engo/hud.go
package engo

import (
	"fmt"

	"github.com/EngoEngine/engo"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
)

const (
	hudMargin    = 10
	hudFontSize  = 20
	bannerWidth  = 260
	bannerHeight = 90
)

// FormatHUD renders the fuel, score and time line
func FormatHUD(hud entity.HUD) string {
	return fmt.Sprintf("Fuel %.0f/%.0f   Score %d   Time %.1fs", hud.Fuel, hud.MaxFuel, hud.Score, hud.Elapsed)
}

// FormatGameOver renders the final screen text
func FormatGameOver(score int, elapsed float64) string {
	return fmt.Sprintf("GAME OVER\nScore: %d\nTime: %.1fs", score, elapsed)
}

// lowFuel reports whether the tank is below a fifth of its capacity.
func lowFuel(hud entity.HUD) bool {
	return hud.MaxFuel > 0 && hud.Fuel < hud.MaxFuel*0.2
}

func bannerPosition() engo.Point {
	return engo.Point{
		X: (engo.GameWidth() - bannerWidth) / 2,
		Y: (engo.GameHeight() - bannerHeight) / 2,
	}
}
