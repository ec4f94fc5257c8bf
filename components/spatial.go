package components

// Position is an agent's cell on the grid. Always within [0,W)x[0,H).
type Position struct {
	X, Y int
}

// Walker marks agents that random-walk every step.
type Walker struct {
	Moore bool // 8-neighbor when true, 4-neighbor von Neumann otherwise
}
