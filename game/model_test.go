package game

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
	"github.com/pthm-cable/wolfsheep/telemetry"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// newTestModel builds a model from the defaults with mutate applied.
func newTestModel(t *testing.T, seed int64, rec telemetry.Recorder, mutate func(cfg *config.Config)) *Model {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	m, err := NewModel(cfg, Options{Seed: seed, Recorder: rec, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func TestNewModelSeedsPopulation(t *testing.T) {
	m := newTestModel(t, 1, nil, func(cfg *config.Config) {
		cfg.World.Width = 12
		cfg.World.Height = 8
		cfg.Population.InitialSheep = 30
		cfg.Population.InitialWolves = 10
	})

	if got := m.Count(components.BreedSheep); got != 30 {
		t.Errorf("sheep = %d, want 30", got)
	}
	if got := m.Count(components.BreedWolf); got != 10 {
		t.Errorf("wolves = %d, want 10", got)
	}
	if got := m.Count(components.BreedGrass); got != 12*8 {
		t.Errorf("grass patches = %d, want %d", got, 12*8)
	}

	cfg := m.Config()
	cells := make(map[components.Position]bool)
	for _, v := range m.Entities() {
		switch v.Breed {
		case components.BreedSheep:
			if v.Energy != cfg.Sheep.GainFromFood {
				t.Errorf("sheep %d energy = %d, want %d", v.ID, v.Energy, cfg.Sheep.GainFromFood)
			}
		case components.BreedWolf:
			if v.Energy != cfg.Wolf.GainFromFood {
				t.Errorf("wolf %d energy = %d, want %d", v.ID, v.Energy, cfg.Wolf.GainFromFood)
			}
		case components.BreedGrass:
			p := components.Position{X: v.X, Y: v.Y}
			if cells[p] {
				t.Errorf("two grass patches at %v", p)
			}
			cells[p] = true
		}
	}
	if m.Tick() != 0 {
		t.Errorf("tick = %d, want 0", m.Tick())
	}
}

func TestNewModelRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"zero width", func(cfg *config.Config) { cfg.World.Width = 0 }},
		{"negative sheep", func(cfg *config.Config) { cfg.Population.InitialSheep = -1 }},
		{"probability above one", func(cfg *config.Config) { cfg.Wolf.Reproduce = 1.5 }},
		{"zero regrowth", func(cfg *config.Config) { cfg.Grass.RegrowthTime = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			if _, err := NewModel(cfg, Options{Logger: quietLogger()}); !errors.Is(err, config.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}

	if _, err := NewModel(nil, Options{Logger: quietLogger()}); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("nil config: err = %v, want ErrInvalidConfig", err)
	}
}

func TestModelConfigIsCopied(t *testing.T) {
	cfg := config.Default()
	m, err := NewModel(cfg, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	cfg.Sheep.GainFromFood = 99
	if m.Config().Sheep.GainFromFood == 99 {
		t.Error("model config changed with caller's copy")
	}
}

func TestSingleSheepStarves(t *testing.T) {
	var logs bytes.Buffer
	cfg := config.Default()
	cfg.Population.InitialSheep = 1
	cfg.Population.InitialWolves = 0
	cfg.Sheep.GainFromFood = 1
	cfg.Sheep.Reproduce = 0
	cfg.Grass.Enabled = false

	m, err := NewModel(cfg, Options{Logger: slog.New(slog.NewJSONHandler(&logs, nil))})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m.Step()
	m.Step()

	if got := m.Count(components.BreedSheep); got != 0 {
		t.Fatalf("sheep = %d, want 0", got)
	}
	if !m.Extinct(components.BreedSheep) {
		t.Error("sheep not reported extinct")
	}
	if m.Extinct(components.BreedWolf) {
		t.Error("wolves reported extinct without ever existing")
	}
	if got := strings.Count(logs.String(), `"msg":"breed_extinct"`); got != 1 {
		t.Errorf("breed_extinct logged %d times, want 1", got)
	}
}

func TestWolfEatsSheepOnSharedCell(t *testing.T) {
	m := newTestModel(t, 3, nil, func(cfg *config.Config) {
		cfg.World.Width = 1
		cfg.World.Height = 1
		cfg.Population.InitialSheep = 1
		cfg.Population.InitialWolves = 1
		cfg.Sheep.Reproduce = 0
		cfg.Wolf.Reproduce = 0
		cfg.Wolf.GainFromFood = 20
		cfg.Grass.Enabled = false
	})
	m.Step()

	if got := m.Count(components.BreedSheep); got != 0 {
		t.Errorf("sheep = %d, want 0", got)
	}
	if got := m.Count(components.BreedWolf); got != 1 {
		t.Fatalf("wolves = %d, want 1", got)
	}
	last := m.LastStep()
	if last.Deaths[components.BreedSheep] != 1 || last.Meals[components.BreedWolf] != 1 {
		t.Errorf("last step = %+v, want one sheep death and one wolf meal", last)
	}
	for _, v := range m.Entities() {
		if v.Breed == components.BreedWolf && v.Energy != 20+20-1 {
			t.Errorf("wolf energy = %d, want %d", v.Energy, 20+20-1)
		}
	}
}

func TestEmptyAnimalsWithGrass(t *testing.T) {
	log := telemetry.NewMetricLog()
	m := newTestModel(t, 5, log, func(cfg *config.Config) {
		cfg.Population.InitialSheep = 0
		cfg.Population.InitialWolves = 0
		cfg.Grass.Enabled = true
	})
	if err := m.Run(context.Background(), 100); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, name := range []string{"Sheep", "Wolves"} {
		series := log.Series(name)
		if len(series) != 100 {
			t.Fatalf("%s: %d samples, want 100", name, len(series))
		}
		for i, v := range series {
			if v != 0 {
				t.Fatalf("%s[%d] = %v, want 0", name, i, v)
			}
		}
	}
	grass := log.Series("Grass")
	if len(grass) != 100 {
		t.Fatalf("grass: %d samples, want 100", len(grass))
	}
	area := float64(m.Config().World.Width * m.Config().World.Height)
	if last := grass[len(grass)-1]; last != area {
		t.Errorf("grown grass after a full regrowth cycle = %v, want %v", last, area)
	}
}

func TestStepConservation(t *testing.T) {
	m := newTestModel(t, 11, nil, func(cfg *config.Config) {
		cfg.Grass.Enabled = true
	})
	width, height := m.Config().World.Width, m.Config().World.Height

	for step := 1; step <= 200; step++ {
		before := m.Populations()
		m.Step()
		last := m.LastStep()

		if last.Step != step {
			t.Fatalf("last.Step = %d, want %d", last.Step, step)
		}
		if last.Start != before {
			t.Fatalf("step %d: start %v, want %v", step, last.Start, before)
		}
		for _, b := range components.Breeds() {
			if want := before[b] - last.Deaths[b] + last.Births[b]; m.Count(b) != want {
				t.Fatalf("step %d: %s count %d, want %d", step, b, m.Count(b), want)
			}
		}

		seen := make(map[uint64]bool)
		for _, v := range m.Entities() {
			if seen[v.ID] {
				t.Fatalf("step %d: duplicate id %d", step, v.ID)
			}
			seen[v.ID] = true
			if v.X < 0 || v.X >= width || v.Y < 0 || v.Y >= height {
				t.Fatalf("step %d: entity %d out of bounds at (%d,%d)", step, v.ID, v.X, v.Y)
			}
			if v.Breed.Animal() && v.Energy <= 0 {
				t.Fatalf("step %d: live %s %d with energy %d", step, v.Breed, v.ID, v.Energy)
			}
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (*telemetry.MetricLog, []EntityView) {
		log := telemetry.NewMetricLog()
		m := newTestModel(t, 42, log, func(cfg *config.Config) {
			cfg.Grass.Enabled = true
		})
		if err := m.Run(context.Background(), 150); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return log, m.Entities()
	}

	logA, entsA := run()
	logB, entsB := run()
	for _, name := range []string{"Sheep", "Wolves", "Grass"} {
		if !reflect.DeepEqual(logA.Series(name), logB.Series(name)) {
			t.Errorf("%s series differ between runs with the same seed", name)
		}
	}
	if !reflect.DeepEqual(entsA, entsB) {
		t.Error("final entities differ between runs with the same seed")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	m := newTestModel(t, 1, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Run(ctx, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if m.Tick() != 0 {
		t.Errorf("tick = %d, want 0", m.Tick())
	}

	if err := m.Run(context.Background(), 5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if m.Tick() != 5 {
		t.Errorf("tick = %d, want 5", m.Tick())
	}
}

func TestTelemetryWindows(t *testing.T) {
	cfg := config.Default()
	cfg.Telemetry.Window = 10
	cfg.Grass.Enabled = true

	var windows []telemetry.WindowStats
	m, err := NewModel(cfg, Options{
		Seed:     9,
		Logger:   quietLogger(),
		OnWindow: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	if err := m.Run(context.Background(), 35); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(windows) != 3 {
		t.Fatalf("windows = %d, want 3", len(windows))
	}
	for i, w := range windows {
		if want := (i + 1) * 10; w.WindowEnd != want {
			t.Errorf("window %d ends at %d, want %d", i, w.WindowEnd, want)
		}
	}
	last := windows[len(windows)-1]
	if last.Sheep < 0 || last.Wolves < 0 || last.GrownGrass > cfg.World.Width*cfg.World.Height {
		t.Errorf("implausible window %+v", last)
	}
}

func TestEachEntityWalksRegistryInPlace(t *testing.T) {
	m := newTestModel(t, 4, nil, func(cfg *config.Config) {
		cfg.Grass.Enabled = true
	})
	if err := m.Run(context.Background(), 20); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var walked []EntityView
	m.EachEntity(func(v EntityView) { walked = append(walked, v) })
	if !reflect.DeepEqual(walked, m.Entities()) {
		t.Fatal("EachEntity and Entities disagree")
	}

	// Layers: grass, then sheep, then wolves.
	last := components.BreedGrass
	rank := func(b components.Breed) int {
		for i, d := range drawOrder {
			if d == b {
				return i
			}
		}
		return -1
	}
	for _, v := range walked {
		if rank(v.Breed) < rank(last) {
			t.Fatalf("%s drawn after %s", v.Breed, last)
		}
		last = v.Breed
	}

	n := 0
	count := func(EntityView) { n++ }
	allocs := testing.AllocsPerRun(10, func() { m.EachEntity(count) })
	if allocs != 0 {
		t.Errorf("EachEntity allocated %v times per call, want 0", allocs)
	}
}

func TestContentsAtSortedByID(t *testing.T) {
	m := newTestModel(t, 2, nil, func(cfg *config.Config) {
		cfg.World.Width = 1
		cfg.World.Height = 1
		cfg.Population.InitialSheep = 5
		cfg.Population.InitialWolves = 0
		cfg.Sheep.Reproduce = 0
	})
	m.Step()

	got := m.ContentsAt(0, 0)
	if len(got) != m.Count(components.BreedSheep)+m.Count(components.BreedGrass) {
		t.Fatalf("ContentsAt returned %d agents", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID >= got[i].ID {
			t.Fatalf("ContentsAt not ordered by id: %d before %d", got[i-1].ID, got[i].ID)
		}
	}
	if m.ContentsAt(1, 0) != nil || m.ContentsAt(-1, 0) != nil {
		t.Error("out-of-range cell should return nil")
	}
}
