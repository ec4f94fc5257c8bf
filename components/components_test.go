package components

import "testing"

func TestGrassGrow(t *testing.T) {
	tests := []struct {
		name          string
		start         Grass
		steps         int
		wantGrown     bool
		wantCountdown int
	}{
		{"regrows at zero", Grass{FullyGrown: false, Countdown: 1, Period: 10}, 1, true, 10},
		{"still regrowing", Grass{FullyGrown: false, Countdown: 5, Period: 10}, 3, false, 2},
		{"full period", Grass{FullyGrown: false, Countdown: 10, Period: 10}, 10, true, 10},
		{"grown is stable", Grass{FullyGrown: true, Countdown: 10, Period: 10}, 7, true, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.start
			for i := 0; i < tt.steps; i++ {
				g.Grow()
				if g.Countdown < 0 || g.Countdown > g.Period {
					t.Fatalf("countdown %d out of [0,%d]", g.Countdown, g.Period)
				}
			}
			if g.FullyGrown != tt.wantGrown || g.Countdown != tt.wantCountdown {
				t.Errorf("got grown=%v countdown=%d, want grown=%v countdown=%d",
					g.FullyGrown, g.Countdown, tt.wantGrown, tt.wantCountdown)
			}
		})
	}
}

func TestGrassEat(t *testing.T) {
	g := Grass{FullyGrown: true, Countdown: 3, Period: 30}
	g.Eat()
	if g.FullyGrown {
		t.Error("eaten patch should not be fully grown")
	}
	if g.Countdown != 30 {
		t.Errorf("countdown = %d, want reset to 30", g.Countdown)
	}
}

func TestBreedNames(t *testing.T) {
	for _, b := range Breeds() {
		got, ok := ParseBreed(b.String())
		if !ok || got != b {
			t.Errorf("ParseBreed(%q) = %v, %v", b.String(), got, ok)
		}
	}
	if Breed(99).String() != "Unknown" {
		t.Error("out-of-range breed should be Unknown")
	}
	if !BreedSheep.Animal() || !BreedWolf.Animal() || BreedGrass.Animal() {
		t.Error("Animal() classification wrong")
	}
}
