package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/wolfsheep/config"
)

// runOptions configures one optimization run.
type runOptions struct {
	configPath string
	maxTicks   int
	seeds      int
	maxEvals   int
	population int // 0 = auto
	outputDir  string
}

// runSummary is the outcome of an optimization run.
type runSummary struct {
	evals       int
	bestFitness float64
	bestParams  []float64 // clamped raw values, ParamVector order
	configPath  string    // where the best config was written
}

// Each evaluation is seeded from this sequence so runs are comparable.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// defaultPopulation is the standard CMA-ES lambda, 4 + floor(3 ln n).
func defaultPopulation(dim int) int {
	return 4 + int(3*math.Log(float64(dim)))
}

// run drives CMA-ES over the ParamVector, logging every evaluation to
// evals.csv and params.csv and saving the best config as best_config.yaml.
func run(opts runOptions, logger *slog.Logger) (*runSummary, error) {
	if opts.seeds < 1 {
		return nil, fmt.Errorf("seeds must be at least 1, got %d", opts.seeds)
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	names := make([]string, params.Dim())
	for i, spec := range params.Specs {
		names[i] = spec.Name
	}
	evaluator := NewFitnessEvaluator(params, opts.maxTicks, evalSeeds(opts.seeds), baseCfg)

	evalLog, err := newEvalLog(opts.outputDir)
	if err != nil {
		return nil, err
	}
	defer evalLog.Close()

	popSize := opts.population
	if popSize == 0 {
		popSize = defaultPopulation(params.Dim())
	}

	summary := &runSummary{bestFitness: math.Inf(1)}
	var logErr error
	start := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Values actually used after the config clamps them.
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			survival, quality := evaluator.Last()
			summary.evals++

			if fitness < summary.bestFitness {
				summary.bestFitness = fitness
				summary.bestParams = clamped
			}

			row := evalRow{Eval: summary.evals, Fitness: fitness, Survival: survival, Quality: quality}
			if err := evalLog.Write(row, names, clamped); err != nil && logErr == nil {
				logErr = err
			}

			elapsed := time.Since(start)
			remaining := time.Duration(opts.maxEvals-summary.evals) * (elapsed / time.Duration(summary.evals))
			logger.Info("evaluation",
				"eval", summary.evals,
				"max_evals", opts.maxEvals,
				"survival_ticks", survival,
				"quality", quality,
				"best_fitness", summary.bestFitness,
				"elapsed", elapsed.Round(time.Second).String(),
				"eta", remaining.Round(time.Second).String(),
			)
			return fitness
		},
	}

	logger.Info("optimization_started",
		"params", params.Dim(),
		"population", popSize,
		"max_evals", opts.maxEvals,
		"seeds", opts.seeds,
		"max_ticks", opts.maxTicks,
	)

	initX := params.Normalize(params.Clamp(params.ExtractFromConfig(baseCfg)))
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}

	// Hitting the evaluation limit also ends Minimize with an error, so a
	// non-nil err is only fatal when nothing was evaluated.
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Info("optimization_ended", "reason", err.Error())
	}
	if summary.bestParams == nil {
		if result == nil {
			return nil, fmt.Errorf("optimization produced no result: %w", err)
		}
		summary.bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if logErr != nil {
		return nil, logErr
	}

	bestCfg := baseCfg.Clone()
	params.ApplyToConfig(bestCfg, summary.bestParams)
	summary.configPath = filepath.Join(opts.outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(summary.configPath); err != nil {
		return nil, fmt.Errorf("writing best config: %w", err)
	}

	best := make([]any, 0, len(names))
	for i, name := range names {
		best = append(best, slog.Float64(name, summary.bestParams[i]))
	}
	logger.Info("optimization_complete",
		"evals", summary.evals,
		"duration", time.Since(start).Round(time.Second).String(),
		"best_fitness", summary.bestFitness,
		slog.Group("best_params", best...),
		"config", summary.configPath,
	)
	return summary, nil
}
