package game

import (
	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and publishes it.
func (m *Model) flushTelemetry() {
	if !m.collector.ShouldFlush(m.tick) {
		return
	}

	stats := m.collector.Flush(m.tick, m.sampleSnapshot())

	// Call stats callback if provided
	if m.onWindow != nil {
		m.onWindow(stats)
	}

	// Log stats if enabled
	if m.logStats {
		m.logger.Info("window_stats", "stats", stats)
	}

	// Write to CSV if output manager is enabled
	if m.output != nil {
		if err := m.output.WriteWindow(stats); err != nil {
			m.logger.Error("failed to write window stats", "error", err)
		}
	}
}

// sampleSnapshot gathers the end-of-window state from the ECS world.
func (m *Model) sampleSnapshot() telemetry.Snapshot {
	return telemetry.Snapshot{
		Sheep:       m.Count(components.BreedSheep),
		Wolves:      m.Count(components.BreedWolf),
		GrownGrass:  m.GrownGrass(),
		SheepEnergy: m.ctx.EnergySamples(components.BreedSheep),
		WolfEnergy:  m.ctx.EnergySamples(components.BreedWolf),
	}
}
