package systems

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
)

// Events receives lifecycle notifications from the behaviors.
type Events interface {
	RecordBirth(b components.Breed)
	RecordDeath(b components.Breed)
	RecordMeal(b components.Breed)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) RecordBirth(components.Breed) {}
func (NopEvents) RecordDeath(components.Breed) {}
func (NopEvents) RecordMeal(components.Breed)  {}

// Context is the simulation-wide state shared by every system: the
// configuration, the RNG, the ECS world, the grid, the scheduler and the
// identifier counter. One Context exists per model run.
type Context struct {
	Config   *config.Config
	RNG      *rand.Rand
	World    *ecs.World
	Grid     *Grid
	Schedule *Scheduler
	Events   Events

	nextID    uint64
	behaviors *BehaviorRegistry

	// Entity mappers
	walkerMapper *ecs.Map4[components.Identity, components.Position, components.Energy, components.Walker]
	grassMapper  *ecs.Map3[components.Identity, components.Position, components.Grass]

	// Individual component mappers for lookups
	posMap    *ecs.Map[components.Position]
	energyMap *ecs.Map[components.Energy]
	walkerMap *ecs.Map[components.Walker]
	grassMap  *ecs.Map[components.Grass]

	// Read-only filters for telemetry passes
	energyFilter *ecs.Filter2[components.Identity, components.Energy]
	grassFilter  *ecs.Filter1[components.Grass]
}

// NewContext builds an empty simulation context for cfg. events may be nil.
func NewContext(cfg *config.Config, rng *rand.Rand, events Events) *Context {
	if events == nil {
		events = NopEvents{}
	}
	world := ecs.NewWorld()

	c := &Context{
		Config:    cfg,
		RNG:       rng,
		World:     world,
		Events:    events,
		nextID:    1,
		behaviors: NewBehaviorRegistry(),

		walkerMapper: ecs.NewMap4[components.Identity, components.Position, components.Energy, components.Walker](world),
		grassMapper:  ecs.NewMap3[components.Identity, components.Position, components.Grass](world),

		posMap:    ecs.NewMap[components.Position](world),
		energyMap: ecs.NewMap[components.Energy](world),
		walkerMap: ecs.NewMap[components.Walker](world),
		grassMap:  ecs.NewMap[components.Grass](world),

		energyFilter: ecs.NewFilter2[components.Identity, components.Energy](world),
		grassFilter:  ecs.NewFilter1[components.Grass](world),
	}
	c.Grid = NewGrid(cfg.World.Width, cfg.World.Height, c.posMap)
	c.Schedule = NewScheduler(rng, cfg.Schedule.ShuffleBreeds)
	return c
}

// NextID hands out the next agent identifier. Identifiers are never reused.
func (c *Context) NextID() uint64 {
	id := c.nextID
	c.nextID++
	return id
}

// SpawnAnimal creates a sheep or wolf at pos with the given energy, places
// it on the grid and registers it.
func (c *Context) SpawnAnimal(breed components.Breed, pos components.Position, energy int) *Agent {
	if !breed.Animal() {
		panic(fmt.Sprintf("systems: SpawnAnimal called with breed %s", breed))
	}
	id := components.Identity{ID: c.NextID(), Breed: breed}
	p := c.Grid.Wrap(pos.X, pos.Y)
	en := components.Energy{Value: energy}
	walk := components.Walker{Moore: c.Config.Walker.Moore}

	entity := c.walkerMapper.NewEntity(&id, &p, &en, &walk)
	a := newAgent(id.ID, breed, entity)
	c.Grid.Place(a, p)
	c.Schedule.Register(a)
	return a
}

// SpawnGrass creates a grass patch at pos, places it and registers it.
func (c *Context) SpawnGrass(pos components.Position, fullyGrown bool, countdown int) *Agent {
	period := c.Config.Grass.RegrowthTime
	if countdown < 0 || countdown > period {
		panic(fmt.Sprintf("systems: grass countdown %d outside [0,%d]", countdown, period))
	}
	id := components.Identity{ID: c.NextID(), Breed: components.BreedGrass}
	p := c.Grid.Wrap(pos.X, pos.Y)
	g := components.Grass{FullyGrown: fullyGrown, Countdown: countdown, Period: period}

	entity := c.grassMapper.NewEntity(&id, &p, &g)
	a := newAgent(id.ID, components.BreedGrass, entity)
	c.Grid.Place(a, p)
	c.Schedule.Register(a)
	return a
}

// Kill removes a from the grid, the registry and the ECS world. Killing an
// agent twice is a no-op.
func (c *Context) Kill(a *Agent) {
	c.Grid.Remove(a)
	c.Schedule.Unregister(a)
	if c.World.Alive(a.Entity) {
		c.World.RemoveEntity(a.Entity)
	}
}

// Alive reports whether a is registered and its entity exists.
func (c *Context) Alive(a *Agent) bool {
	return c.Schedule.Contains(a) && a.Placed() && c.World.Alive(a.Entity)
}

func (c *Context) mustAlive(a *Agent) {
	if !c.Alive(a) {
		panic(fmt.Sprintf("systems: agent %d (%s) used after death", a.ID, a.Breed))
	}
}

// Position returns a's current cell.
func (c *Context) Position(a *Agent) components.Position {
	c.mustAlive(a)
	return *c.posMap.Get(a.Entity)
}

// Energy returns the energy component of a live sheep or wolf.
func (c *Context) Energy(a *Agent) *components.Energy {
	c.mustAlive(a)
	en := c.energyMap.Get(a.Entity)
	if en == nil {
		panic(fmt.Sprintf("systems: agent %d (%s) has no energy", a.ID, a.Breed))
	}
	return en
}

// Grass returns the grass component of a live patch.
func (c *Context) Grass(a *Agent) *components.Grass {
	c.mustAlive(a)
	g := c.grassMap.Get(a.Entity)
	if g == nil {
		panic(fmt.Sprintf("systems: agent %d (%s) is not a grass patch", a.ID, a.Breed))
	}
	return g
}

// Walker returns the movement component of a live sheep or wolf.
func (c *Context) Walker(a *Agent) components.Walker {
	c.mustAlive(a)
	return *c.walkerMap.Get(a.Entity)
}

// Step runs one scheduler step, dispatching each agent to its breed's behavior.
func (c *Context) Step() {
	c.Schedule.Step(c.activate)
}

func (c *Context) activate(a *Agent) {
	c.mustAlive(a)
	c.behaviors.Get(a.Breed).Step(c, a)
}

// EnergySamples returns the energy of every live animal of breed b.
func (c *Context) EnergySamples(b components.Breed) []float64 {
	var out []float64
	query := c.energyFilter.Query()
	for query.Next() {
		id, en := query.Get()
		if id.Breed == b {
			out = append(out, float64(en.Value))
		}
	}
	return out
}

// GrownGrass returns the number of fully grown grass patches.
func (c *Context) GrownGrass() int {
	n := 0
	query := c.grassFilter.Query()
	for query.Next() {
		if query.Get().FullyGrown {
			n++
		}
	}
	return n
}
