package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
	"github.com/pthm-cable/wolfsheep/game"
	"github.com/pthm-cable/wolfsheep/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
	logger     *slog.Logger

	mu          sync.Mutex
	bestFitness float64
	last        evalSummary // seed averages from the most recent Evaluate call
}

// evalSummary is the seed-averaged outcome of one evaluation.
type evalSummary struct {
	survival float64
	quality  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg.Clone(),
		logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		bestFitness: math.Inf(1),
	}
}

// Last returns the mean survival ticks and quality of the most recent evaluation.
func (fe *FitnessEvaluator) Last() (survival, quality float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.survival, fe.last.quality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before either breed died out (or maxTicks)
	windowStats   []telemetry.WindowStats // collected via OnWindow each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	survival int
	quality  float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Models share nothing, so every seed runs in its own goroutine.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			r := fe.runSimulation(cfg, s)
			results[idx] = seedResult{
				fitness:  computeFitness(r),
				survival: r.survivalTicks,
				quality:  computeQuality(r.windowStats),
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalSurvival, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalSurvival += float64(r.survival)
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.last = evalSummary{survival: totalSurvival / n, quality: totalQuality / n}
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless run until either animal breed
// dies out or maxTicks is reached.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{survivalTicks: fe.maxTicks}

	m, err := game.NewModel(cfg, game.Options{
		Seed:     seed,
		Logger:   fe.logger,
		OnWindow: func(stats telemetry.WindowStats) { result.windowStats = append(result.windowStats, stats) },
	})
	if err != nil {
		result.survivalTicks = 0
		return result
	}

	for m.Tick() < fe.maxTicks {
		if err := m.Run(context.Background(), 1); err != nil {
			break
		}
		if m.Count(components.BreedSheep) == 0 || m.Count(components.BreedWolf) == 0 {
			result.survivalTicks = m.Tick()
			break
		}
	}
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate configs that
// survive equally long.
func computeFitness(r *runResult) float64 {
	survival := float64(r.survivalTicks)
	return -(survival * (1.0 + 0.2*computeQuality(r.windowStats)))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.35
	qualityWeightStability = 0.25
	qualityWeightHunting   = 0.20
	qualityWeightCoupling  = 0.20

	qualityWarmupWindows = 1 // skip first N windows
	qualityMinPop        = 3 // exclude windows where either breed < this
	targetSheepPerWolf   = 4.0
	maxCouplingLag       = 3 // windows
)

// computeQuality scores an ecosystem in [0, 1] from its window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	var ratioSum, huntSum float64
	var count int
	sheep := make([]float64, 0, len(windows))
	wolves := make([]float64, 0, len(windows))

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Sheep < qualityMinPop || w.Wolves < qualityMinPop {
			continue
		}
		sheep = append(sheep, w.SheepMean)
		wolves = append(wolves, w.WolfMean)

		// Population ratio score
		logErr := math.Log(float64(w.Sheep) / float64(w.Wolves) / targetSheepPerWolf)
		ratioSum += math.Exp(-logErr * logErr)

		// Hunting activity: meals per wolf over the window
		mealsPerWolf := float64(w.WolfMeals) / float64(w.Wolves)
		huntSum += 1.0 - math.Exp(-mealsPerWolf)
		count++
	}
	if count == 0 {
		return 0
	}

	stabilityScore := 0.0
	if len(sheep) >= 2 {
		cvSheep := telemetry.ComputeOscillation(sheep).CV
		cvWolves := telemetry.ComputeOscillation(wolves).CV
		stabilityScore = math.Exp(-(cvSheep*cvSheep + cvWolves*cvWolves))
	}

	quality := qualityWeightRatio*ratioSum/float64(count) +
		qualityWeightStability*stabilityScore +
		qualityWeightHunting*huntSum/float64(count) +
		qualityWeightCoupling*predatorPreyCoupling(sheep, wolves)

	return clamp01(quality)
}

// predatorPreyCoupling is the strongest positive correlation between the
// sheep series and the wolf series delayed by 1..maxCouplingLag windows.
// Wolves tracking sheep with a delay marks a real predator-prey cycle.
func predatorPreyCoupling(sheep, wolves []float64) float64 {
	best := 0.0
	for lag := 1; lag <= maxCouplingLag; lag++ {
		best = max(best, telemetry.LagCorrelation(sheep, wolves, lag))
	}
	return best
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
