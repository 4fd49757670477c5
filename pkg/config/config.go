// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/opd-ai/gravity-vortex/pkg/entity"
	"github.com/opd-ai/gravity-vortex/pkg/physics"
)

// GameConfig contains the tuning for a Gravity Vortex session. Values are read
// once when a session starts.
type GameConfig struct {
	Field   FieldConfig   `json:"field"`
	Physics PhysicsConfig `json:"physics"`
	Ship    ShipConfig    `json:"ship"`
	Planets PlanetConfig  `json:"planets"`
	Pickups PickupConfig  `json:"pickups"`
	Session SessionConfig `json:"session"`
}

// FieldConfig describes the playfield
type FieldConfig struct {
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	SafeSpawnRadius float64 `json:"safeSpawnRadius"`
}

// PhysicsConfig contains the gravity law parameters
type PhysicsConfig struct {
	Gravity         float64 `json:"gravity"`
	GravityExponent float64 `json:"gravityExponent"`
}

// ShipConfig contains ship handling
type ShipConfig struct {
	RotationSpeed   float64 `json:"rotationSpeed"`
	Thrust          float64 `json:"thrust"`
	ReverseThrust   float64 `json:"reverseThrust"`
	BoostMultiplier float64 `json:"boostMultiplier"`
	BoostFuelCost   float64 `json:"boostFuelCost"`
	FuelConsumption float64 `json:"fuelConsumption"`
	MaxFuel         float64 `json:"maxFuel"`
	InertiaDamping  float64 `json:"inertiaDamping"`
	Radius          float64 `json:"radius"`
	HullLength      float64 `json:"hullLength"`
	HullHalfWidth   float64 `json:"hullHalfWidth"`
	StopSpeed       float64 `json:"stopSpeed"`
}

// PlanetConfig controls planet generation
type PlanetConfig struct {
	MinCount          int     `json:"minCount"`
	MaxCount          int     `json:"maxCount"`
	MinRadius         int     `json:"minRadius"`
	MaxRadius         int     `json:"maxRadius"`
	MassPerRadius     float64 `json:"massPerRadius"`
	PlacementAttempts int     `json:"placementAttempts"`
}

// PickupConfig controls the two pickup pools
type PickupConfig struct {
	EnergyCoreCount   int     `json:"energyCoreCount"`
	EnergyCoreRadius  float64 `json:"energyCoreRadius"`
	EnergyCoreScore   int     `json:"energyCoreScore"`
	FuelPodCount      int     `json:"fuelPodCount"`
	FuelPodRadius     float64 `json:"fuelPodRadius"`
	FuelPodAmount     float64 `json:"fuelPodAmount"`
	PlacementAttempts int     `json:"placementAttempts"`
}

// SessionConfig contains loop timing and seeding
type SessionConfig struct {
	TickRate        int    `json:"tickRate"`
	GameOverDelayMs int    `json:"gameOverDelayMs"`
	Seed            uint64 `json:"seed"` // 0 picks a time-based seed
}

// ErrInvalidConfig is matched by every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError reports the first field that failed validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return errors.New("cannot save nil config")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the reference tuning
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Field: FieldConfig{
			Width:           1200,
			Height:          800,
			SafeSpawnRadius: 200,
		},
		Physics: PhysicsConfig{
			Gravity:         0.2,
			GravityExponent: 1.5,
		},
		Ship: ShipConfig{
			RotationSpeed:   5,
			Thrust:          0.3,
			ReverseThrust:   0.15,
			BoostMultiplier: 2.0,
			BoostFuelCost:   1.0,
			FuelConsumption: 0.2,
			MaxFuel:         1000,
			InertiaDamping:  0.98,
			Radius:          15,
			HullLength:      20,
			HullHalfWidth:   15,
			StopSpeed:       0.1,
		},
		Planets: PlanetConfig{
			MinCount:          4,
			MaxCount:          6,
			MinRadius:         50,
			MaxRadius:         80,
			MassPerRadius:     6,
			PlacementAttempts: 100,
		},
		Pickups: PickupConfig{
			EnergyCoreCount:   10,
			EnergyCoreRadius:  8,
			EnergyCoreScore:   100,
			FuelPodCount:      5,
			FuelPodRadius:     5,
			FuelPodAmount:     200,
			PlacementAttempts: 100,
		},
		Session: SessionConfig{
			TickRate:        60,
			GameOverDelayMs: 3000,
		},
	}
}

// MaxFieldSize bounds each playfield dimension so placement can draw integer
// coordinates across it.
const MaxFieldSize = math.MaxInt32

// positive and nonNegative reject NaN and infinities along with out-of-range
// values.
func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 1) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }

// Validate checks that the configuration describes a playable session
func (c *GameConfig) Validate() error {
	checks := []struct {
		ok    bool
		field string
		msg   string
	}{
		{positive(c.Field.Width) && c.Field.Width <= MaxFieldSize, "Field.Width", "must be positive and at most MaxFieldSize"},
		{positive(c.Field.Height) && c.Field.Height <= MaxFieldSize, "Field.Height", "must be positive and at most MaxFieldSize"},
		{nonNegative(c.Field.SafeSpawnRadius), "Field.SafeSpawnRadius", "must be finite and not negative"},
		{nonNegative(c.Physics.Gravity), "Physics.Gravity", "must be finite and not negative"},
		{positive(c.Physics.GravityExponent), "Physics.GravityExponent", "must be finite and positive"},
		{positive(c.Ship.MaxFuel), "Ship.MaxFuel", "must be finite and positive"},
		{nonNegative(c.Ship.RotationSpeed), "Ship.RotationSpeed", "must be finite and not negative"},
		{nonNegative(c.Ship.Thrust), "Ship.Thrust", "must be finite and not negative"},
		{nonNegative(c.Ship.ReverseThrust), "Ship.ReverseThrust", "must be finite and not negative"},
		{nonNegative(c.Ship.BoostMultiplier), "Ship.BoostMultiplier", "must be finite and not negative"},
		{c.Ship.InertiaDamping > 0 && c.Ship.InertiaDamping <= 1, "Ship.InertiaDamping", "must be in (0, 1]"},
		{positive(c.Ship.Radius), "Ship.Radius", "must be finite and positive"},
		{nonNegative(c.Ship.HullLength), "Ship.HullLength", "must be finite and not negative"},
		{nonNegative(c.Ship.HullHalfWidth), "Ship.HullHalfWidth", "must be finite and not negative"},
		{nonNegative(c.Ship.FuelConsumption), "Ship.FuelConsumption", "must be finite and not negative"},
		{nonNegative(c.Ship.BoostFuelCost), "Ship.BoostFuelCost", "must be finite and not negative"},
		{nonNegative(c.Ship.StopSpeed), "Ship.StopSpeed", "must be finite and not negative"},
		{c.Planets.MinCount >= 0, "Planets.MinCount", "must not be negative"},
		{c.Planets.MaxCount >= c.Planets.MinCount, "Planets.MaxCount", "must be at least MinCount"},
		{c.Planets.MinRadius > 0, "Planets.MinRadius", "must be positive"},
		{c.Planets.MaxRadius >= c.Planets.MinRadius, "Planets.MaxRadius", "must be at least MinRadius"},
		{nonNegative(c.Planets.MassPerRadius), "Planets.MassPerRadius", "must be finite and not negative"},
		{c.Planets.PlacementAttempts >= 1, "Planets.PlacementAttempts", "must be at least 1"},
		{c.Pickups.EnergyCoreCount >= 0, "Pickups.EnergyCoreCount", "must not be negative"},
		{positive(c.Pickups.EnergyCoreRadius), "Pickups.EnergyCoreRadius", "must be finite and positive"},
		{c.Pickups.FuelPodCount >= 0, "Pickups.FuelPodCount", "must not be negative"},
		{positive(c.Pickups.FuelPodRadius), "Pickups.FuelPodRadius", "must be finite and positive"},
		{nonNegative(c.Pickups.FuelPodAmount), "Pickups.FuelPodAmount", "must be finite and not negative"},
		{c.Pickups.PlacementAttempts >= 1, "Pickups.PlacementAttempts", "must be at least 1"},
		{c.Session.TickRate > 0, "Session.TickRate", "must be positive"},
		{c.Session.GameOverDelayMs >= 0, "Session.GameOverDelayMs", "must not be negative"},
	}

	for _, check := range checks {
		if !check.ok {
			return &ValidationError{Field: check.field, Message: check.msg}
		}
	}
	return nil
}

// Bounds returns the playfield size
func (c *GameConfig) Bounds() physics.Bounds {
	return physics.Bounds{Width: c.Field.Width, Height: c.Field.Height}
}

// GravityLaw returns the configured force law
func (c *GameConfig) GravityLaw() physics.GravityLaw {
	return physics.GravityLaw{G: c.Physics.Gravity, Exponent: c.Physics.GravityExponent}
}

// ShipStats converts the ship section into entity stats
func (c *GameConfig) ShipStats() entity.ShipStats {
	return entity.ShipStats{
		RotationSpeed:   c.Ship.RotationSpeed,
		Thrust:          c.Ship.Thrust,
		ReverseThrust:   c.Ship.ReverseThrust,
		BoostMultiplier: c.Ship.BoostMultiplier,
		BoostFuelCost:   c.Ship.BoostFuelCost,
		FuelConsumption: c.Ship.FuelConsumption,
		MaxFuel:         c.Ship.MaxFuel,
		InertiaDamping:  c.Ship.InertiaDamping,
		Radius:          c.Ship.Radius,
		HullLength:      c.Ship.HullLength,
		HullHalfWidth:   c.Ship.HullHalfWidth,
	}
}

// GameOverDelay returns how long the final screen is held
func (c *GameConfig) GameOverDelay() time.Duration {
	return time.Duration(c.Session.GameOverDelayMs) * time.Millisecond
}

// TickInterval returns the duration of one simulation tick
func (c *GameConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Session.TickRate)
}
