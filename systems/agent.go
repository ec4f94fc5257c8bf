package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wolfsheep/components"
)

// Agent is the handle the grid and scheduler hold for one ECS entity.
// Its state lives in components; the handle only carries identity and
// the bookkeeping indices owned by Grid and Scheduler.
type Agent struct {
	ID     uint64
	Breed  components.Breed
	Entity ecs.Entity

	cell     int // flat grid index, -1 when not placed (owned by Grid)
	cellSlot int // index within the cell's agent list (owned by Grid)
	slot     int // index in the scheduler's breed list, -1 when unregistered

	bornStep   int // scheduler step during which the agent was registered
	lastActive int // last scheduler step the agent was activated in
}

func newAgent(id uint64, breed components.Breed, e ecs.Entity) *Agent {
	return &Agent{ID: id, Breed: breed, Entity: e, cell: -1, cellSlot: -1, slot: -1, lastActive: -1}
}

// Placed reports whether the agent currently occupies a grid cell.
func (a *Agent) Placed() bool { return a.cell >= 0 }

// Registered reports whether the agent is in the scheduler's live registry.
func (a *Agent) Registered() bool { return a.slot >= 0 }
