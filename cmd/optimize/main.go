// Package main provides CMA-ES optimization for finding wolf-sheep parameters
// under which both breeds keep coexisting.
package main

import (
	"flag"
	"log/slog"
	"os"
)

func main() {
	var opts runOptions
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&opts.maxTicks, "max-ticks", 2000, "Maximum simulation duration in ticks (cap)")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if opts.outputDir == "" {
		logger.Error("--output is required")
		os.Exit(2)
	}

	if _, err := run(opts, logger); err != nil {
		logger.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}
