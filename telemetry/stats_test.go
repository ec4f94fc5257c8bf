package telemetry

import (
	"math"
	"testing"
)

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{7}, 7, 0},
		{"constant", []float64{3, 3, 3}, 3, 0},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, 2.138},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := MeanStd(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	es := ComputeEnergyStats(values)

	if math.Abs(es.Mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", es.Mean)
	}
	if es.P10 > es.P50 || es.P50 > es.P90 {
		t.Errorf("percentiles not ordered: %+v", es)
	}
	if es.P50 < 5 || es.P50 > 6 {
		t.Errorf("p50 = %v, want within [5,6]", es.P50)
	}
	// Input must not be reordered.
	if values[0] != 10 || values[1] != 1 {
		t.Error("ComputeEnergyStats sorted its input in place")
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	if es := ComputeEnergyStats(nil); es != (EnergyStats{}) {
		t.Errorf("empty input should give zero stats, got %+v", es)
	}
}

func TestComputeOscillation(t *testing.T) {
	o := ComputeOscillation([]float64{10, 30, 20, 40, 10})
	if o.Min != 10 || o.Max != 40 || o.Amplitude != 15 {
		t.Errorf("oscillation = %+v", o)
	}
	if o.CV <= 0 {
		t.Errorf("CV = %v, want positive", o.CV)
	}

	flat := ComputeOscillation([]float64{0, 0, 0})
	if flat.CV != 0 || flat.Amplitude != 0 {
		t.Errorf("flat series = %+v, want zeros", flat)
	}
}

func TestLagCorrelation(t *testing.T) {
	prey := []float64{1, 3, 5, 3, 1, 3, 5, 3, 1, 3, 5, 3}
	// Predators follow prey two steps later.
	pred := []float64{0, 0, 1, 3, 5, 3, 1, 3, 5, 3, 1, 3}

	if r := LagCorrelation(prey, pred, 2); math.Abs(r-1) > 1e-9 {
		t.Errorf("lag 2 correlation = %v, want 1", r)
	}
	if r := LagCorrelation(prey, pred, 0); r > 0.5 {
		t.Errorf("lag 0 correlation = %v, want weak", r)
	}
	if r := LagCorrelation([]float64{1, 1, 1}, []float64{1, 2, 3}, 0); r != 0 {
		t.Errorf("constant series correlation = %v, want 0", r)
	}
	if r := LagCorrelation(prey, pred, 20); r != 0 {
		t.Errorf("lag beyond series = %v, want 0", r)
	}
}
