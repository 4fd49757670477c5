package entity

// HUD is the scalar state shown alongside the field
type HUD struct {
	Fuel    float64
	MaxFuel float64
	Score   int
	Elapsed float64 // seconds
}

// Renderer draws one frame of the game. Entities are passed by value so a
// renderer can never mutate simulation state.
type Renderer interface {
	Clear()
	RenderShip(ship Ship)
	RenderPlanet(planet Planet)
	RenderPickup(pickup Pickup)
	RenderHUD(hud HUD)
	RenderGameOver(score int, elapsed float64)
	Present()
}
