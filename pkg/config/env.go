// pkg/config/env.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable the game reads
const EnvPrefix = "GRAVITY_"

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Missing files are ignored and variables
// already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnvironmentOverrides overrides configuration values from GRAVITY_*
// environment variables. A malformed value is reported as a ValidationError.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	overrides := []struct {
		key string
		dst any
	}{
		{"SEED", &config.Session.Seed},
		{"TICK_RATE", &config.Session.TickRate},
		{"GAME_OVER_DELAY_MS", &config.Session.GameOverDelayMs},
		{"FIELD_WIDTH", &config.Field.Width},
		{"FIELD_HEIGHT", &config.Field.Height},
		{"SAFE_SPAWN_RADIUS", &config.Field.SafeSpawnRadius},
		{"GRAVITY", &config.Physics.Gravity},
		{"GRAVITY_EXPONENT", &config.Physics.GravityExponent},
		{"MAX_FUEL", &config.Ship.MaxFuel},
		{"PLANET_MIN_COUNT", &config.Planets.MinCount},
		{"PLANET_MAX_COUNT", &config.Planets.MaxCount},
		{"ENERGY_CORE_COUNT", &config.Pickups.EnergyCoreCount},
		{"FUEL_POD_COUNT", &config.Pickups.FuelPodCount},
	}

	for _, o := range overrides {
		if err := applyEnv(EnvPrefix+o.key, o.dst); err != nil {
			return err
		}
	}
	return nil
}

// Load builds the configuration the binaries run with: .env, then the JSON
// file at path (defaults when path is empty), then environment overrides, then
// validation.
func Load(path string) (*GameConfig, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if err := ApplyEnvironmentOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(key string, dst any) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}

	var err error
	switch p := dst.(type) {
	case *float64:
		var v float64
		if v, err = strconv.ParseFloat(raw, 64); err == nil {
			*p = v
		}
	case *int:
		var v int
		if v, err = strconv.Atoi(raw); err == nil {
			*p = v
		}
	case *uint64:
		var v uint64
		if v, err = strconv.ParseUint(raw, 10, 64); err == nil {
			*p = v
		}
	default:
		return fmt.Errorf("unsupported override type %T for %s", dst, key)
	}

	if err != nil {
		return &ValidationError{Field: key, Message: fmt.Sprintf("cannot parse %q", raw)}
	}
	return nil
}
