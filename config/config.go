// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
// A Config is immutable once a model has been built from it.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Sheep      BreedConfig      `yaml:"sheep"`
	Wolf       BreedConfig      `yaml:"wolf"`
	Grass      GrassConfig      `yaml:"grass"`
	Walker     WalkerConfig     `yaml:"walker"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Screen     ScreenConfig     `yaml:"screen"`
}

// WorldConfig holds the grid dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds the initial animal counts.
type PopulationConfig struct {
	InitialSheep  int `yaml:"initial_sheep"`
	InitialWolves int `yaml:"initial_wolves"`
}

// BreedConfig holds the per-breed reproduction and feeding parameters.
type BreedConfig struct {
	Reproduce    float64 `yaml:"reproduce"`      // Probability of asexual reproduction per step
	GainFromFood int     `yaml:"gain_from_food"` // Energy gained per meal; also the founder energy
}

// GrassConfig holds grass patch parameters.
type GrassConfig struct {
	Enabled      bool    `yaml:"enabled"`       // Whether sheep need (and can eat) grass
	RegrowthTime int     `yaml:"regrowth_time"` // Steps for an eaten patch to regrow
	InitialGrown float64 `yaml:"initial_grown"` // Fraction of patches seeded fully grown
}

// WalkerConfig holds movement parameters shared by sheep and wolves.
type WalkerConfig struct {
	Moore bool `yaml:"moore"` // 8-neighbor movement when true, 4-neighbor otherwise
}

// ScheduleConfig holds activation order parameters.
type ScheduleConfig struct {
	ShuffleBreeds bool `yaml:"shuffle_breeds"` // Randomize breed order every step
}

// TelemetryConfig holds metric collection parameters.
type TelemetryConfig struct {
	Window int `yaml:"window"` // Steps per summary window
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	CellSize  int `yaml:"cell_size"`
	TargetFPS int `yaml:"target_fps"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range parameter.
func (c *Config) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world must be at least 1x1, got %dx%d", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.Population.InitialSheep < 0:
		return fmt.Errorf("%w: population.initial_sheep is negative (%d)", ErrInvalidConfig, c.Population.InitialSheep)
	case c.Population.InitialWolves < 0:
		return fmt.Errorf("%w: population.initial_wolves is negative (%d)", ErrInvalidConfig, c.Population.InitialWolves)
	case !isProbability(c.Sheep.Reproduce):
		return fmt.Errorf("%w: sheep.reproduce must be in [0,1], got %v", ErrInvalidConfig, c.Sheep.Reproduce)
	case !isProbability(c.Wolf.Reproduce):
		return fmt.Errorf("%w: wolf.reproduce must be in [0,1], got %v", ErrInvalidConfig, c.Wolf.Reproduce)
	case c.Sheep.GainFromFood < 1:
		return fmt.Errorf("%w: sheep.gain_from_food must be >= 1, got %d", ErrInvalidConfig, c.Sheep.GainFromFood)
	case c.Wolf.GainFromFood < 1:
		return fmt.Errorf("%w: wolf.gain_from_food must be >= 1, got %d", ErrInvalidConfig, c.Wolf.GainFromFood)
	case c.Grass.RegrowthTime < 1:
		return fmt.Errorf("%w: grass.regrowth_time must be >= 1, got %d", ErrInvalidConfig, c.Grass.RegrowthTime)
	case !isProbability(c.Grass.InitialGrown):
		return fmt.Errorf("%w: grass.initial_grown must be in [0,1], got %v", ErrInvalidConfig, c.Grass.InitialGrown)
	case c.Telemetry.Window < 1:
		return fmt.Errorf("%w: telemetry.window must be >= 1, got %d", ErrInvalidConfig, c.Telemetry.Window)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// Clone returns a deep copy so callers can tweak parameters without
// touching a config that a running model already holds.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
