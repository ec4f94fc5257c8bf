package systems

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/wolfsheep/components"
)

// Scheduler activates every live agent once per step, one breed at a time,
// in a fresh random order. It owns the authoritative registry of live agents.
type Scheduler struct {
	rng           *rand.Rand
	shuffleBreeds bool

	byBreed [components.NumBreeds][]*Agent
	byID    map[uint64]*Agent

	step      int // number of the step in progress, or of the last completed step
	snapshot  []*Agent
	breedBuf  []components.Breed
	lastOrder []components.Breed
}

// NewScheduler creates an empty scheduler. When shuffleBreeds is false,
// breeds are processed in declaration order (Sheep, Wolf, Grass).
func NewScheduler(rng *rand.Rand, shuffleBreeds bool) *Scheduler {
	return &Scheduler{
		rng:           rng,
		shuffleBreeds: shuffleBreeds,
		byID:          make(map[uint64]*Agent),
		breedBuf:      components.Breeds(),
	}
}

// Register adds a to the live registry. Agents registered while a step is
// running are first activated on the next step.
func (s *Scheduler) Register(a *Agent) {
	if !a.Breed.Valid() {
		panic(fmt.Sprintf("systems: registering agent %d with invalid breed %d", a.ID, a.Breed))
	}
	if a.slot >= 0 {
		panic(fmt.Sprintf("systems: agent %d registered twice", a.ID))
	}
	if _, dup := s.byID[a.ID]; dup {
		panic(fmt.Sprintf("systems: duplicate agent id %d", a.ID))
	}
	list := s.byBreed[a.Breed]
	a.slot = len(list)
	a.bornStep = s.step
	s.byBreed[a.Breed] = append(list, a)
	s.byID[a.ID] = a
}

// Unregister removes a from the live registry. Unregistering an agent that
// is not registered is a no-op; the return value reports whether anything
// was removed. A step in progress skips the agent from then on.
func (s *Scheduler) Unregister(a *Agent) bool {
	if a.slot < 0 {
		return false
	}
	list := s.byBreed[a.Breed]
	last := len(list) - 1
	if list[a.slot] != a {
		panic(fmt.Sprintf("systems: registry slot %d does not hold agent %d", a.slot, a.ID))
	}
	// Swap-remove keeps removal O(1) and deterministic.
	list[a.slot] = list[last]
	list[a.slot].slot = a.slot
	list[last] = nil
	s.byBreed[a.Breed] = list[:last]
	delete(s.byID, a.ID)
	a.slot = -1
	return true
}

// Contains reports whether a is live.
func (s *Scheduler) Contains(a *Agent) bool {
	return a.slot >= 0
}

// Lookup returns the live agent with the given id.
func (s *Scheduler) Lookup(id uint64) (*Agent, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Count returns the number of live agents of breed b.
func (s *Scheduler) Count(b components.Breed) int {
	if !b.Valid() {
		return 0
	}
	return len(s.byBreed[b])
}

// Total returns the number of live agents of all breeds.
func (s *Scheduler) Total() int {
	return len(s.byID)
}

// Agents returns a copy of the live agents of breed b in registry order.
func (s *Scheduler) Agents(b components.Breed) []*Agent {
	if !b.Valid() {
		return nil
	}
	out := make([]*Agent, len(s.byBreed[b]))
	copy(out, s.byBreed[b])
	return out
}

// Each calls fn for every live agent of breed b in registry order without
// copying the list. fn must not register or unregister agents.
func (s *Scheduler) Each(b components.Breed, fn func(a *Agent)) {
	if !b.Valid() {
		return
	}
	for _, a := range s.byBreed[b] {
		fn(a)
	}
}

// Steps returns the number of steps started so far.
func (s *Scheduler) Steps() int {
	return s.step
}

// LastBreedOrder returns the breed order used by the most recent step.
func (s *Scheduler) LastBreedOrder() []components.Breed {
	out := make([]components.Breed, len(s.lastOrder))
	copy(out, s.lastOrder)
	return out
}

// Step runs one global step, calling activate once for every agent that was
// live when its breed's turn began and is still live when its turn comes.
func (s *Scheduler) Step(activate func(a *Agent)) {
	s.step++
	step := s.step

	order := s.breedBuf
	for i := range order {
		order[i] = components.Breed(i)
	}
	if s.shuffleBreeds {
		s.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	s.lastOrder = append(s.lastOrder[:0], order...)

	for _, b := range order {
		// Snapshot before any agent acts: births append to the live list, deaths
		// tombstone through slot = -1, neither disturbs this iteration.
		s.snapshot = append(s.snapshot[:0], s.byBreed[b]...)
		snap := s.snapshot
		s.rng.Shuffle(len(snap), func(i, j int) { snap[i], snap[j] = snap[j], snap[i] })

		for i, a := range snap {
			snap[i] = nil
			if a.slot < 0 || a.bornStep == step {
				continue
			}
			if a.lastActive == step {
				panic(fmt.Sprintf("systems: agent %d activated twice in step %d", a.ID, step))
			}
			a.lastActive = step
			activate(a)
		}
	}
}
