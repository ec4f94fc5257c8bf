package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.World.Width != 20 || cfg.World.Height != 20 {
		t.Errorf("world = %dx%d, want 20x20", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.InitialSheep != 100 || cfg.Population.InitialWolves != 50 {
		t.Errorf("population = %+v, want 100 sheep / 50 wolves", cfg.Population)
	}
	if cfg.Sheep.GainFromFood != 4 || cfg.Wolf.GainFromFood != 20 {
		t.Errorf("gains = %d/%d, want 4/20", cfg.Sheep.GainFromFood, cfg.Wolf.GainFromFood)
	}
	if cfg.Grass.Enabled {
		t.Error("grass should be disabled by default")
	}
	if cfg.Grass.RegrowthTime != 30 {
		t.Errorf("regrowth_time = %d, want 30", cfg.Grass.RegrowthTime)
	}
	if !cfg.Walker.Moore {
		t.Error("walkers should default to Moore movement")
	}
}

func TestLoadOverridesOnlyNamedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("grass:\n  enabled: true\nwolf:\n  reproduce: 0.1\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Grass.Enabled {
		t.Error("grass.enabled override not applied")
	}
	if cfg.Wolf.Reproduce != 0.1 {
		t.Errorf("wolf.reproduce = %v, want 0.1", cfg.Wolf.Reproduce)
	}
	// Untouched keys keep their defaults.
	if cfg.Grass.RegrowthTime != 30 {
		t.Errorf("regrowth_time = %d, want default 30", cfg.Grass.RegrowthTime)
	}
	if cfg.Wolf.GainFromFood != 20 {
		t.Errorf("wolf.gain_from_food = %d, want default 20", cfg.Wolf.GainFromFood)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -3 }},
		{"negative sheep", func(c *Config) { c.Population.InitialSheep = -1 }},
		{"negative wolves", func(c *Config) { c.Population.InitialWolves = -1 }},
		{"sheep probability above one", func(c *Config) { c.Sheep.Reproduce = 1.5 }},
		{"wolf probability below zero", func(c *Config) { c.Wolf.Reproduce = -0.01 }},
		{"zero sheep gain", func(c *Config) { c.Sheep.GainFromFood = 0 }},
		{"zero wolf gain", func(c *Config) { c.Wolf.GainFromFood = 0 }},
		{"zero regrowth", func(c *Config) { c.Grass.RegrowthTime = 0 }},
		{"initial grown above one", func(c *Config) { c.Grass.InitialGrown = 2 }},
		{"zero window", func(c *Config) { c.Telemetry.Window = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestValidateAcceptsBoundaries(t *testing.T) {
	cfg := Default()
	cfg.World.Width, cfg.World.Height = 1, 1
	cfg.Population.InitialSheep, cfg.Population.InitialWolves = 0, 0
	cfg.Sheep.Reproduce, cfg.Wolf.Reproduce = 0, 1
	cfg.Grass.InitialGrown = 1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("boundary config rejected: %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Grass.Enabled = true
	cfg.World.Width = 33

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot error: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("snapshot mismatch:\n got %+v\nwant %+v", *loaded, *cfg)
	}
}
