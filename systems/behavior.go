package systems

// stepSheep moves, grazes, reproduces and metabolizes one sheep.
func stepSheep(c *Context, a *Agent) {
	c.walk(a)
	if c.Config.Grass.Enabled {
		c.eatGrass(a)
	}
	c.reproduce(a, c.Config.Sheep.Reproduce, 2*c.Config.Sheep.GainFromFood)
	c.metabolize(a)
}

// stepWolf moves, hunts, reproduces and metabolizes one wolf.
func stepWolf(c *Context, a *Agent) {
	c.walk(a)
	c.eatSheep(a)
	c.reproduce(a, c.Config.Wolf.Reproduce, 2*c.Config.Wolf.GainFromFood)
	c.metabolize(a)
}

// stepGrass advances a patch's regrowth. Grown patches only change when eaten.
func stepGrass(c *Context, a *Agent) {
	c.Grass(a).Grow()
}

func (c *Context) walk(a *Agent) {
	c.Grid.RandomMove(a, c.Walker(a).Moore, c.RNG)
}

// reproduce spawns one offspring at the parent's cell with probability p.
// The parent's energy is not reduced.
func (c *Context) reproduce(a *Agent, p float64, offspringEnergy int) {
	if c.RNG.Float64() >= p {
		return
	}
	child := c.SpawnAnimal(a.Breed, c.Position(a), offspringEnergy)
	// Offspring inherit the parent's neighborhood mode.
	*c.walkerMap.Get(child.Entity) = c.Walker(a)
	c.Events.RecordBirth(a.Breed)
}

// metabolize burns one unit of energy and kills the animal when it runs out.
func (c *Context) metabolize(a *Agent) {
	en := c.Energy(a)
	en.Value--
	if en.Value <= 0 {
		c.Kill(a)
		c.Events.RecordDeath(a.Breed)
	}
}
