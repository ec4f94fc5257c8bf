package game

import (
	"github.com/pthm-cable/wolfsheep/components"
)

// spawnInitialPopulation creates the starting entities: sheep and wolves at
// uniform random cells with one meal's worth of energy, then one grass
// patch on every cell.
func (m *Model) spawnInitialPopulation() {
	cfg := m.cfg
	ctx := m.ctx

	for i := 0; i < cfg.Population.InitialSheep; i++ {
		ctx.SpawnAnimal(components.BreedSheep, m.randomCell(), cfg.Sheep.GainFromFood)
	}
	for i := 0; i < cfg.Population.InitialWolves; i++ {
		ctx.SpawnAnimal(components.BreedWolf, m.randomCell(), cfg.Wolf.GainFromFood)
	}

	period := cfg.Grass.RegrowthTime
	for y := 0; y < cfg.World.Height; y++ {
		for x := 0; x < cfg.World.Width; x++ {
			grown := ctx.RNG.Float64() < cfg.Grass.InitialGrown
			countdown := period
			if !grown {
				countdown = 1 + ctx.RNG.Intn(period)
			}
			ctx.SpawnGrass(components.Position{X: x, Y: y}, grown, countdown)
		}
	}
}

func (m *Model) randomCell() components.Position {
	return components.Position{
		X: m.ctx.RNG.Intn(m.cfg.World.Width),
		Y: m.ctx.RNG.Intn(m.cfg.World.Height),
	}
}

// RecordBirth implements systems.Events.
func (m *Model) RecordBirth(b components.Breed) {
	m.current.Births[b]++
	m.collector.RecordBirth(b)
}

// RecordDeath implements systems.Events.
func (m *Model) RecordDeath(b components.Breed) {
	m.current.Deaths[b]++
	m.collector.RecordDeath(b)
}

// RecordMeal implements systems.Events.
func (m *Model) RecordMeal(b components.Breed) {
	m.current.Meals[b]++
	m.collector.RecordMeal(b)
}
