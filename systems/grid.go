// Package systems provides the grid, scheduler and per-breed behaviors
// that make up the simulation engine.
package systems

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wolfsheep/components"
)

// Neighborhood offsets in a fixed order so random picks are reproducible.
var (
	mooreOffsets = [8][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	vonNeumannOffsets = [4][2]int{
		{0, -1}, {-1, 0}, {1, 0}, {0, 1},
	}
)

// Grid is a toroidal multigrid: every cell holds any number of agents.
// An agent's Position component always matches the cell holding it.
type Grid struct {
	width  int
	height int
	cells  [][]*Agent // flat grid of agent lists, row-major
	pos    *ecs.Map[components.Position]
	count  int
}

// NewGrid creates a width x height toroidal grid. posMap is used to keep
// each agent's Position component in sync with its cell.
func NewGrid(width, height int, posMap *ecs.Map[components.Position]) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("systems: grid dimensions must be positive, got %dx%d", width, height))
	}
	cells := make([][]*Agent, width*height)
	for i := range cells {
		cells[i] = make([]*Agent, 0, 4)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		pos:    posMap,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of placed agents.
func (g *Grid) Len() int { return g.count }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) components.Position {
	x = (x%g.width + g.width) % g.width
	y = (y%g.height + g.height) % g.height
	return components.Position{X: x, Y: y}
}

// InBounds reports whether p is a valid cell coordinate without wrapping.
func (g *Grid) InBounds(p components.Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p components.Position) int {
	return p.Y*g.width + p.X
}

// Place inserts a into the cell at p (wrapped). The agent must not already
// be placed; move it with Move instead.
func (g *Grid) Place(a *Agent, p components.Position) {
	if a.cell >= 0 {
		panic(fmt.Sprintf("systems: agent %d placed twice", a.ID))
	}
	p = g.Wrap(p.X, p.Y)
	g.insert(a, g.index(p))
	*g.pos.Get(a.Entity) = p
	g.count++
}

// insert appends a to cell idx and records its slot there.
func (g *Grid) insert(a *Agent, idx int) {
	a.cell = idx
	a.cellSlot = len(g.cells[idx])
	g.cells[idx] = append(g.cells[idx], a)
}

// detach swap-removes a from its cell in O(1). Order within a cell is not
// meaningful; feeding picks by identifier.
func (g *Grid) detach(a *Agent) {
	cell := g.cells[a.cell]
	i := a.cellSlot
	if i < 0 || i >= len(cell) || cell[i] != a {
		panic(fmt.Sprintf("systems: agent %d missing from its cell %d", a.ID, a.cell))
	}
	last := len(cell) - 1
	cell[i] = cell[last]
	cell[i].cellSlot = i
	cell[last] = nil
	g.cells[a.cell] = cell[:last]
	a.cell = -1
	a.cellSlot = -1
}

// Remove takes a out of its cell. Removing an agent that is not placed is
// a no-op; the return value reports whether anything was removed.
func (g *Grid) Remove(a *Agent) bool {
	if a.cell < 0 {
		return false
	}
	g.detach(a)
	g.count--
	return true
}

// Move relocates a placed agent to p. The agent is never observable in
// both cells or in neither.
func (g *Grid) Move(a *Agent, p components.Position) {
	if a.cell < 0 {
		panic(fmt.Sprintf("systems: moving agent %d that is not on the grid", a.ID))
	}
	p = g.Wrap(p.X, p.Y)
	dst := g.index(p)
	if dst != a.cell {
		g.detach(a)
		g.insert(a, dst)
	}
	*g.pos.Get(a.Entity) = p
}

// NeighborsOf returns the distinct cells adjacent to p, wrapped, excluding
// p itself. Moore yields up to 8 cells and von Neumann up to 4; grids
// narrower than 3 cells collapse duplicates.
func (g *Grid) NeighborsOf(p components.Position, moore bool) []components.Position {
	p = g.Wrap(p.X, p.Y)
	var offsets [][2]int
	if moore {
		offsets = mooreOffsets[:]
	} else {
		offsets = vonNeumannOffsets[:]
	}

	out := make([]components.Position, 0, len(offsets))
	for _, off := range offsets {
		n := g.Wrap(p.X+off[0], p.Y+off[1])
		if n == p || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ContentsOf returns a copy of the agents at p. Callers may mutate the
// grid while walking the result.
func (g *Grid) ContentsOf(p components.Position) []*Agent {
	p = g.Wrap(p.X, p.Y)
	return slices.Clone(g.cells[g.index(p)])
}

// EachInCell calls fn for every agent at p without copying the cell.
// fn must not place, move or remove agents.
func (g *Grid) EachInCell(p components.Position, fn func(a *Agent)) {
	p = g.Wrap(p.X, p.Y)
	for _, a := range g.cells[g.index(p)] {
		fn(a)
	}
}

// PositionOf returns the cell holding a.
func (g *Grid) PositionOf(a *Agent) (components.Position, bool) {
	if a.cell < 0 {
		return components.Position{}, false
	}
	return components.Position{X: a.cell % g.width, Y: a.cell / g.width}, true
}

// RandomMove relocates a to a uniformly chosen neighboring cell. On a 1x1
// grid there is no neighbor and the agent stays put.
func (g *Grid) RandomMove(a *Agent, moore bool, rng *rand.Rand) components.Position {
	cur, ok := g.PositionOf(a)
	if !ok {
		panic(fmt.Sprintf("systems: random move of agent %d that is not on the grid", a.ID))
	}
	neighbors := g.NeighborsOf(cur, moore)
	if len(neighbors) == 0 {
		return cur
	}
	next := neighbors[rng.Intn(len(neighbors))]
	g.Move(a, next)
	if !g.InBounds(next) {
		panic(fmt.Sprintf("systems: agent %d moved out of bounds to %+v", a.ID, next))
	}
	return next
}
