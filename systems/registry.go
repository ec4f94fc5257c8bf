package systems

import (
	"fmt"

	"github.com/pthm-cable/wolfsheep/components"
)

// Behavior is the per-step transition of one breed's agents.
type Behavior func(c *Context, a *Agent)

// BehaviorInfo binds one breed to its behavior.
type BehaviorInfo struct {
	Breed components.Breed
	Step  Behavior
}

// BehaviorRegistry is the closed dispatch table from breed to behavior.
// Every breed has exactly one entry.
type BehaviorRegistry struct {
	byBreed [components.NumBreeds]BehaviorInfo
}

// NewBehaviorRegistry creates a registry with the built-in behaviors.
func NewBehaviorRegistry() *BehaviorRegistry {
	r := &BehaviorRegistry{}
	r.register(BehaviorInfo{Breed: components.BreedSheep, Step: stepSheep}) // move, graze, reproduce, metabolize
	r.register(BehaviorInfo{Breed: components.BreedWolf, Step: stepWolf})   // move, hunt, reproduce, metabolize
	r.register(BehaviorInfo{Breed: components.BreedGrass, Step: stepGrass}) // count down regrowth
	for _, b := range components.Breeds() {
		if r.byBreed[b].Step == nil {
			panic(fmt.Sprintf("systems: no behavior registered for %s", b))
		}
	}
	return r
}

func (r *BehaviorRegistry) register(info BehaviorInfo) {
	r.byBreed[info.Breed] = info
}

// Get returns the behavior for breed b.
func (r *BehaviorRegistry) Get(b components.Breed) BehaviorInfo {
	if !b.Valid() {
		panic(fmt.Sprintf("systems: no behavior for breed %d", b))
	}
	return r.byBreed[b]
}
