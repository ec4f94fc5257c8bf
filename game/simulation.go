package game

import (
	"context"
	"fmt"

	"github.com/pthm-cable/wolfsheep/components"
)

// Step advances the model by one global step and records its metrics.
func (m *Model) Step() {
	m.current = StepStats{Step: m.tick + 1, Start: m.Populations()}

	m.ctx.Step()
	m.tick++

	m.current.End = m.Populations()
	m.checkConservation()
	m.last = m.current

	m.recordMetrics()
	m.checkExtinction()
	m.flushTelemetry()
}

// Run executes n sequential steps. It stops early, returning the context's
// error, when ctx is cancelled between steps.
func (m *Model) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			m.logger.Info("run_stopped", "tick", m.tick, "completed", i, "requested", n, "reason", err.Error())
			return err
		}
		m.Step()
	}
	return nil
}

// checkConservation asserts end = start - deaths + births for every breed.
func (m *Model) checkConservation() {
	s := &m.current
	for _, b := range components.Breeds() {
		if want := s.Start[b] - s.Deaths[b] + s.Births[b]; s.End[b] != want {
			panic(fmt.Sprintf("game: step %d %s count %d, expected %d (start %d, births %d, deaths %d)",
				s.Step, b, s.End[b], want, s.Start[b], s.Births[b], s.Deaths[b]))
		}
	}
}

// recordMetrics publishes the per-step metrics.
func (m *Model) recordMetrics() {
	m.recorder.Record(m.tick, components.BreedWolf.String(), float64(m.Count(components.BreedWolf)))
	m.recorder.Record(m.tick, components.BreedSheep.String(), float64(m.Count(components.BreedSheep)))
	if m.cfg.Grass.Enabled {
		m.recorder.Record(m.tick, components.BreedGrass.String(), float64(m.GrownGrass()))
	}
	m.collector.ObservePopulation(m.Count(components.BreedSheep), m.Count(components.BreedWolf))
}

// checkExtinction logs the step at which an animal breed dies out.
func (m *Model) checkExtinction() {
	for _, b := range []components.Breed{components.BreedSheep, components.BreedWolf} {
		if m.extinct[b] || m.current.Start[b] == 0 || m.current.End[b] != 0 {
			continue
		}
		m.extinct[b] = true
		m.logger.Info("breed_extinct", "breed", b.String(), "tick", m.tick)
	}
}
