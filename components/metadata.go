package components

// String returns the display name for a Breed.
func (b Breed) String() string {
	names := BreedNames()
	if int(b) < len(names) {
		return names[b]
	}
	return "Unknown"
}

// BreedNames returns the display names for all breeds.
// The order matches the Breed constants.
func BreedNames() []string {
	return []string{"Sheep", "Wolves", "Grass"}
}

// Breeds returns every breed in declaration order.
func Breeds() []Breed {
	out := make([]Breed, NumBreeds)
	for i := range out {
		out[i] = Breed(i)
	}
	return out
}

// ParseBreed returns the breed with the given display name.
func ParseBreed(name string) (Breed, bool) {
	for i, n := range BreedNames() {
		if n == name {
			return Breed(i), true
		}
	}
	return 0, false
}
