package components

// Identity is the stable, never reused identifier of an agent.
type Identity struct {
	ID    uint64
	Breed Breed
}

// Energy tracks an animal's remaining energy in whole units.
// The animal dies when Value reaches zero.
type Energy struct {
	Value int
}

// Grass holds the regrowth state of a grass patch.
// Countdown stays within [0, Period].
type Grass struct {
	FullyGrown bool
	Countdown  int
	Period     int
}

// Eat marks the patch as eaten and restarts its regrowth.
func (g *Grass) Eat() {
	g.FullyGrown = false
	g.Countdown = g.Period
}

// Grow advances a regrowing patch by one step.
func (g *Grass) Grow() {
	if g.FullyGrown {
		return
	}
	g.Countdown--
	if g.Countdown <= 0 {
		g.FullyGrown = true
		g.Countdown = g.Period
	}
}
