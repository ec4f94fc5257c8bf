package systems

import (
	"github.com/pthm-cable/wolfsheep/components"
)

// firstInCell returns the lowest-id live agent in a's cell that matches
// keep. Using the identifier makes the pick independent of insertion order.
func (c *Context) firstInCell(a *Agent, keep func(*Agent) bool) *Agent {
	var best *Agent
	c.Grid.EachInCell(c.Position(a), func(other *Agent) {
		if other == a || !c.Alive(other) || !keep(other) {
			return
		}
		if best == nil || other.ID < best.ID {
			best = other
		}
	})
	return best
}

// eatGrass eats at most one grown patch in the sheep's cell.
func (c *Context) eatGrass(a *Agent) bool {
	patch := c.firstInCell(a, func(o *Agent) bool {
		return o.Breed == components.BreedGrass && c.Grass(o).FullyGrown
	})
	if patch == nil {
		return false
	}
	c.Grass(patch).Eat()
	c.Energy(a).Value += c.Config.Sheep.GainFromFood
	c.Events.RecordMeal(components.BreedSheep)
	return true
}

// eatSheep kills at most one sheep in the wolf's cell. The prey leaves the
// grid and the registry immediately, so it is skipped for the rest of the step.
func (c *Context) eatSheep(a *Agent) bool {
	prey := c.firstInCell(a, func(o *Agent) bool {
		return o.Breed == components.BreedSheep
	})
	if prey == nil {
		return false
	}
	c.Kill(prey)
	c.Events.RecordDeath(components.BreedSheep)
	c.Energy(a).Value += c.Config.Wolf.GainFromFood
	c.Events.RecordMeal(components.BreedWolf)
	return true
}
