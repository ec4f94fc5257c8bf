package telemetry

import "github.com/pthm-cable/wolfsheep/components"

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps int

	// Current window tracking
	windowStart int

	// Event counters for current window
	births [components.NumBreeds]int
	deaths [components.NumBreeds]int
	meals  [components.NumBreeds]int

	// Population samples for current window
	sheepSeries []float64
	wolfSeries  []float64
}

// NewCollector creates a collector that flushes every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{windowSteps: windowSteps}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(b components.Breed) {
	c.births[b]++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(b components.Breed) {
	c.deaths[b]++
}

// RecordMeal records a successful feed.
func (c *Collector) RecordMeal(b components.Breed) {
	c.meals[b]++
}

// ObservePopulation records the end-of-step animal counts.
func (c *Collector) ObservePopulation(sheep, wolves int) {
	c.sheepSeries = append(c.sheepSeries, float64(sheep))
	c.wolfSeries = append(c.wolfSeries, float64(wolves))
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(step int) bool {
	return step-c.windowStart >= c.windowSteps
}

// Snapshot holds the end-of-window state the caller samples from the model.
type Snapshot struct {
	Sheep       int
	Wolves      int
	GrownGrass  int
	SheepEnergy []float64
	WolfEnergy  []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(step int, snap Snapshot) WindowStats {
	sheepMean, sheepStd := MeanStd(c.sheepSeries)
	wolfMean, wolfStd := MeanStd(c.wolfSeries)
	sheepEnergy := ComputeEnergyStats(snap.SheepEnergy)
	wolfEnergy := ComputeEnergyStats(snap.WolfEnergy)

	stats := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   step,

		Sheep:      snap.Sheep,
		Wolves:     snap.Wolves,
		GrownGrass: snap.GrownGrass,

		SheepBirths: c.births[components.BreedSheep],
		WolfBirths:  c.births[components.BreedWolf],
		SheepDeaths: c.deaths[components.BreedSheep],
		WolfDeaths:  c.deaths[components.BreedWolf],
		SheepMeals:  c.meals[components.BreedSheep],
		WolfMeals:   c.meals[components.BreedWolf],

		SheepMean: sheepMean,
		SheepStd:  sheepStd,
		WolfMean:  wolfMean,
		WolfStd:   wolfStd,

		SheepEnergyMean: sheepEnergy.Mean,
		SheepEnergyP50:  sheepEnergy.P50,
		WolfEnergyMean:  wolfEnergy.Mean,
		WolfEnergyP50:   wolfEnergy.P50,
	}

	// Reset for next window
	c.windowStart = step
	c.births = [components.NumBreeds]int{}
	c.deaths = [components.NumBreeds]int{}
	c.meals = [components.NumBreeds]int{}
	c.sheepSeries = c.sheepSeries[:0]
	c.wolfSeries = c.wolfSeries[:0]

	return stats
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int {
	return c.windowSteps
}
