// Package main provides CMA-ES optimization for wolf-sheep model parameters.
package main

import (
	"math"

	"github.com/pthm-cable/wolfsheep/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before it reaches the config
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "sheep_reproduce", Path: "sheep.reproduce", Min: 0.01, Max: 0.5, Default: 0.04},
			{Name: "sheep_gain_from_food", Path: "sheep.gain_from_food", Min: 1, Max: 10, Default: 4, Integer: true},
			{Name: "wolf_reproduce", Path: "wolf.reproduce", Min: 0.01, Max: 0.5, Default: 0.05},
			{Name: "wolf_gain_from_food", Path: "wolf.gain_from_food", Min: 1, Max: 50, Default: 20, Integer: true},
			{Name: "grass_regrowth_time", Path: "grass.regrowth_time", Min: 1, Max: 50, Default: 30, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds and integer parameters are whole.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := math.Max(spec.Min, math.Min(spec.Max, v[i]))
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Sheep.Reproduce = clamped[0]
	cfg.Sheep.GainFromFood = int(clamped[1])
	cfg.Wolf.Reproduce = clamped[2]
	cfg.Wolf.GainFromFood = int(clamped[3])
	cfg.Grass.RegrowthTime = int(clamped[4])
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Sheep.Reproduce,
		float64(cfg.Sheep.GainFromFood),
		cfg.Wolf.Reproduce,
		float64(cfg.Wolf.GainFromFood),
		float64(cfg.Grass.RegrowthTime),
	}
}
