package game

import (
	"sort"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/systems"
)

// EntityView is a read-only description of one live agent for rendering.
type EntityView struct {
	ID         uint64
	Breed      components.Breed
	X, Y       int
	Energy     int  // sheep and wolves only
	FullyGrown bool // grass only
}

// Entities returns every live agent, grass first so animals draw on top.
func (m *Model) Entities() []EntityView {
	out := make([]EntityView, 0, m.ctx.Schedule.Total())
	m.EachEntity(func(v EntityView) { out = append(out, v) })
	return out
}

// drawOrder lists breeds bottom layer first.
var drawOrder = [...]components.Breed{components.BreedGrass, components.BreedSheep, components.BreedWolf}

// EachEntity calls fn for every live agent, grass first, then sheep, then
// wolves. It walks the registry in place without copying it, so fn must
// not step the model.
func (m *Model) EachEntity(fn func(v EntityView)) {
	for _, b := range drawOrder {
		m.ctx.Schedule.Each(b, func(a *systems.Agent) {
			fn(m.view(a))
		})
	}
}

// ContentsAt returns the live agents on cell (x, y) ordered by identifier.
// Out-of-range coordinates return nil.
func (m *Model) ContentsAt(x, y int) []EntityView {
	p := components.Position{X: x, Y: y}
	if !m.ctx.Grid.InBounds(p) {
		return nil
	}
	cell := m.ctx.Grid.ContentsOf(p)
	out := make([]EntityView, 0, len(cell))
	for _, a := range cell {
		if !m.ctx.Alive(a) {
			continue
		}
		out = append(out, m.view(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Model) view(a *systems.Agent) EntityView {
	pos := m.ctx.Position(a)
	v := EntityView{ID: a.ID, Breed: a.Breed, X: pos.X, Y: pos.Y}
	if a.Breed.Animal() {
		v.Energy = m.ctx.Energy(a).Value
	} else {
		v.FullyGrown = m.ctx.Grass(a).FullyGrown
	}
	return v
}
