// Package components defines ECS components for the simulation.
package components

// Breed identifies one of the closed set of agent kinds.
type Breed uint8

const (
	BreedSheep Breed = iota
	BreedWolf
	BreedGrass

	// NumBreeds is the number of breeds; valid breeds are [0, NumBreeds).
	NumBreeds
)

// Animal reports whether the breed walks, eats and can die.
func (b Breed) Animal() bool {
	return b == BreedSheep || b == BreedWolf
}

// Valid reports whether b is one of the defined breeds.
func (b Breed) Valid() bool {
	return b < NumBreeds
}
