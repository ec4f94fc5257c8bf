package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a step window.
type WindowStats struct {
	Seed        int64 `csv:"seed"`
	WindowStart int   `csv:"-"`
	WindowEnd   int   `csv:"window_end"`

	// Population counts at window end
	Sheep      int `csv:"sheep"`
	Wolves     int `csv:"wolves"`
	GrownGrass int `csv:"grass_grown"`

	// Events during window
	SheepBirths int `csv:"sheep_births"`
	WolfBirths  int `csv:"wolf_births"`
	SheepDeaths int `csv:"sheep_deaths"`
	WolfDeaths  int `csv:"wolf_deaths"`
	SheepMeals  int `csv:"sheep_meals"`
	WolfMeals   int `csv:"wolf_meals"`

	// Population over the window
	SheepMean float64 `csv:"sheep_mean"`
	SheepStd  float64 `csv:"sheep_std"`
	WolfMean  float64 `csv:"wolf_mean"`
	WolfStd   float64 `csv:"wolf_std"`

	// Energy distribution (sampled at window end)
	SheepEnergyMean float64 `csv:"sheep_energy_mean"`
	SheepEnergyP50  float64 `csv:"sheep_energy_p50"`
	WolfEnergyMean  float64 `csv:"wolf_energy_mean"`
	WolfEnergyP50   float64 `csv:"wolf_energy_p50"`
}

// LogValue implements slog.LogValuer.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEnd),
		slog.Int("sheep", s.Sheep),
		slog.Int("wolves", s.Wolves),
		slog.Int("grass_grown", s.GrownGrass),
		slog.Int("sheep_births", s.SheepBirths),
		slog.Int("wolf_births", s.WolfBirths),
		slog.Int("sheep_deaths", s.SheepDeaths),
		slog.Int("wolf_deaths", s.WolfDeaths),
		slog.Float64("sheep_std", s.SheepStd),
		slog.Float64("wolf_std", s.WolfStd),
	)
}

// EnergyStats summarizes a set of energy values.
type EnergyStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// MeanStd returns the mean and sample standard deviation of values.
// Fewer than two values have zero spread.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

// ComputeEnergyStats calculates mean, spread and percentiles from energy values.
func ComputeEnergyStats(values []float64) EnergyStats {
	if len(values) == 0 {
		return EnergyStats{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var es EnergyStats
	es.Mean, es.Std = MeanStd(sorted)
	es.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	es.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	es.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return es
}

// Oscillation describes the swing of a population series.
type Oscillation struct {
	Min, Max  float64
	Amplitude float64 // (Max - Min) / 2
	CV        float64 // coefficient of variation, 0 for a zero mean
}

// ComputeOscillation summarizes how strongly a population series swings.
func ComputeOscillation(series []float64) Oscillation {
	if len(series) == 0 {
		return Oscillation{}
	}
	o := Oscillation{Min: series[0], Max: series[0]}
	for _, v := range series[1:] {
		o.Min = math.Min(o.Min, v)
		o.Max = math.Max(o.Max, v)
	}
	o.Amplitude = (o.Max - o.Min) / 2
	if mean, std := MeanStd(series); mean > 0 {
		o.CV = std / mean
	}
	return o
}

// LagCorrelation returns the Pearson correlation between a and b shifted
// forward by lag steps (a[i] against b[i+lag]). Predator counts lag prey
// counts in a healthy cycle, so this peaks at a positive lag.
func LagCorrelation(a, b []float64, lag int) float64 {
	if lag < 0 {
		a, b, lag = b, a, -lag
	}
	n := min(len(a), len(b)-lag)
	if n < 2 {
		return 0
	}
	x, y := a[:n], b[lag:lag+n]
	if _, sx := MeanStd(x); sx == 0 {
		return 0
	}
	if _, sy := MeanStd(y); sy == 0 {
		return 0
	}
	return stat.Correlation(x, y, nil)
}
