// Package game drives the wolf-sheep model: it seeds the population, runs
// global steps and exposes counts and entity views to outer layers.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
	"github.com/pthm-cable/wolfsheep/systems"
	"github.com/pthm-cable/wolfsheep/telemetry"
)

// Options configures a model run beyond the simulation parameters.
type Options struct {
	Seed     int64                             // RNG seed; equal seeds and configs replay the same run
	Recorder telemetry.Recorder                // receives per-step metrics (nil = discard)
	Output   *telemetry.OutputManager          // CSV window output (nil = disabled)
	LogStats bool                              // log every telemetry window via slog
	Logger   *slog.Logger                      // nil = slog.Default()
	OnWindow func(stats telemetry.WindowStats) // called after each telemetry window
}

// StepStats describes what happened during one global step.
type StepStats struct {
	Step   int
	Start  [components.NumBreeds]int // live counts before the step
	End    [components.NumBreeds]int // live counts after the step
	Births [components.NumBreeds]int
	Deaths [components.NumBreeds]int
	Meals  [components.NumBreeds]int
}

// Model holds the complete simulation state for one run.
type Model struct {
	cfg  *config.Config
	seed int64
	ctx  *systems.Context

	// Telemetry
	collector *telemetry.Collector
	recorder  telemetry.Recorder
	output    *telemetry.OutputManager
	logStats  bool
	onWindow  func(stats telemetry.WindowStats)
	logger    *slog.Logger

	// State
	tick    int
	current StepStats
	last    StepStats
	extinct [components.NumBreeds]bool
}

// NewModel validates cfg, seeds the initial population and returns a model
// ready to step. cfg is copied; later changes to it do not affect the run.
func NewModel(cfg *config.Config, opts Options) (*Model, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	recorder := opts.Recorder
	if recorder == nil {
		recorder = telemetry.Tee()
	}

	m := &Model{
		cfg:       cfg.Clone(),
		seed:      opts.Seed,
		collector: telemetry.NewCollector(cfg.Telemetry.Window),
		recorder:  recorder,
		output:    opts.Output,
		logStats:  opts.LogStats,
		onWindow:  opts.OnWindow,
		logger:    logger,
	}
	m.output.BeginRun(m.seed)
	m.ctx = systems.NewContext(m.cfg, rand.New(rand.NewSource(opts.Seed)), m)

	m.spawnInitialPopulation()

	m.logger.Info("model_initialized",
		"seed", m.seed,
		"width", m.cfg.World.Width,
		"height", m.cfg.World.Height,
		"sheep", m.Count(components.BreedSheep),
		"wolves", m.Count(components.BreedWolf),
		"grass_patches", m.Count(components.BreedGrass),
		"grass_enabled", m.cfg.Grass.Enabled,
		"telemetry_window", m.collector.WindowSteps(),
	)
	return m, nil
}

// Config returns a copy of the configuration the model runs with.
func (m *Model) Config() *config.Config {
	return m.cfg.Clone()
}

// Seed returns the RNG seed of the run.
func (m *Model) Seed() int64 {
	return m.seed
}

// Tick returns the number of completed steps.
func (m *Model) Tick() int {
	return m.tick
}

// Count returns the number of live agents of breed b.
func (m *Model) Count(b components.Breed) int {
	return m.ctx.Schedule.Count(b)
}

// Populations returns the live count of every breed.
func (m *Model) Populations() [components.NumBreeds]int {
	var out [components.NumBreeds]int
	for _, b := range components.Breeds() {
		out[b] = m.Count(b)
	}
	return out
}

// GrownGrass returns the number of fully grown grass patches.
func (m *Model) GrownGrass() int {
	return m.ctx.GrownGrass()
}

// LastStep returns the bookkeeping of the most recent step.
func (m *Model) LastStep() StepStats {
	return m.last
}

// Extinct reports whether breed b died out during the run.
func (m *Model) Extinct(b components.Breed) bool {
	return b.Valid() && m.extinct[b]
}
