package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
	"github.com/pthm-cable/wolfsheep/game"
	"github.com/pthm-cable/wolfsheep/telemetry"
	"github.com/pthm-cable/wolfsheep/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stopOnExtinction := flag.Bool("stop-on-extinction", false, "Stop a headless run once sheep and wolves are both extinct")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := game.Options{
		Seed:     rngSeed,
		Output:   output,
		LogStats: *logStats,
		Logger:   logger,
	}
	if output != nil {
		opts.Recorder = output
	}

	if *headless {
		err = runHeadless(cfg, opts, *maxTicks, *stopOnExtinction)
	} else {
		err = runWindowed(cfg, opts, *maxTicks)
	}

	if cerr := output.Close(); cerr != nil {
		slog.Error("failed to close output", "dir", output.Dir(), "error", cerr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the model without raylib until maxTicks, extinction or
// an interrupt.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int, stopOnExtinction bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, err := game.NewModel(cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"output_dir", opts.Output.Dir(),
	)

	for maxTicks <= 0 || m.Tick() < maxTicks {
		if err := m.Run(ctx, 1); err != nil {
			return err
		}
		if stopOnExtinction && m.Count(components.BreedSheep) == 0 && m.Count(components.BreedWolf) == 0 {
			slog.Info("all animals extinct", "tick", m.Tick())
			return nil
		}
	}

	slog.Info("max ticks reached",
		"tick", m.Tick(),
		"sheep", m.Count(components.BreedSheep),
		"wolves", m.Count(components.BreedWolf),
	)
	return nil
}

// runWindowed opens a raylib window and drives the viewer until it closes.
func runWindowed(cfg *config.Config, opts game.Options, maxTicks int) error {
	w, h := viewer.ScreenSize(cfg)
	rl.InitWindow(w, h, "Wolf Sheep Predation")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	v, err := viewer.New(cfg, opts)
	if err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()

		if maxTicks > 0 && v.Tick() >= maxTicks {
			break
		}
	}
	return nil
}
