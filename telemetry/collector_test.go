package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wolfsheep/components"
	"github.com/pthm-cable/wolfsheep/config"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(3)
	c.RecordBirth(components.BreedSheep)
	c.RecordBirth(components.BreedSheep)
	c.RecordBirth(components.BreedWolf)
	c.RecordDeath(components.BreedSheep)
	c.RecordMeal(components.BreedWolf)
	for _, n := range []int{10, 20, 30} {
		c.ObservePopulation(n, n/10)
	}

	if c.ShouldFlush(2) {
		t.Fatal("flush requested before the window ended")
	}
	if !c.ShouldFlush(3) {
		t.Fatal("flush not requested at window end")
	}

	stats := c.Flush(3, Snapshot{Sheep: 30, Wolves: 3, GrownGrass: 7, SheepEnergy: []float64{2, 4}})
	if stats.WindowStart != 0 || stats.WindowEnd != 3 {
		t.Errorf("window = [%d,%d], want [0,3]", stats.WindowStart, stats.WindowEnd)
	}
	if stats.SheepBirths != 2 || stats.WolfBirths != 1 || stats.SheepDeaths != 1 || stats.WolfMeals != 1 {
		t.Errorf("event counts wrong: %+v", stats)
	}
	if stats.SheepMean != 20 || stats.WolfMean != 2 {
		t.Errorf("population means = %v/%v, want 20/2", stats.SheepMean, stats.WolfMean)
	}
	if stats.SheepEnergyMean != 3 || stats.WolfEnergyMean != 0 {
		t.Errorf("energy means = %v/%v", stats.SheepEnergyMean, stats.WolfEnergyMean)
	}

	// Counters reset for the next window.
	next := c.Flush(6, Snapshot{})
	if next.WindowStart != 3 || next.SheepBirths != 0 || next.SheepMean != 0 {
		t.Errorf("collector not reset: %+v", next)
	}
}

func TestMetricLog(t *testing.T) {
	log := NewMetricLog()
	rec := Tee(log, nil)
	rec.Record(1, "Sheep", 10)
	rec.Record(1, "Wolves", 4)
	rec.Record(2, "Sheep", 12)

	if got := log.Series("Sheep"); len(got) != 2 || got[0] != 10 || got[1] != 12 {
		t.Errorf("Sheep series = %v", got)
	}
	if names := log.Names(); len(names) != 2 || names[0] != "Sheep" || names[1] != "Wolves" {
		t.Errorf("Names = %v", names)
	}
	if s := log.Samples("Wolves"); len(s) != 1 || s[0].Step != 1 {
		t.Errorf("Wolves samples = %+v", s)
	}
	if len(log.Series("missing")) != 0 {
		t.Error("unknown metric should be empty")
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager is a valid no-op sink.
	om.Record(1, "Sheep", 1)
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager error: %v", err)
	}

	om.BeginRun(7)
	om.Record(1, "Sheep", 100)
	om.Record(1, "Wolves", 50)
	om.Record(2, "Sheep", 98)
	if err := om.WriteWindow(WindowStats{WindowEnd: 2, Sheep: 98, Wolves: 50}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteWindow(WindowStats{WindowEnd: 4, Sheep: 90, Wolves: 51}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var samples []Sample
	if err := gocsv.UnmarshalBytes(data, &samples); err != nil {
		t.Fatalf("parsing metrics.csv: %v", err)
	}
	if len(samples) != 3 || samples[2] != (Sample{Seed: 7, Step: 2, Name: "Sheep", Value: 98}) {
		t.Errorf("metrics rows = %+v", samples)
	}

	data, err = os.ReadFile(filepath.Join(dir, "windows.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var windows []WindowStats
	if err := gocsv.UnmarshalBytes(data, &windows); err != nil {
		t.Fatalf("parsing windows.csv: %v", err)
	}
	if len(windows) != 2 || windows[1].Seed != 7 || windows[1].WindowEnd != 4 || windows[1].Sheep != 90 {
		t.Errorf("window rows = %+v", windows)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot not loadable: %v", err)
	}
}

func TestOutputManagerSeparatesRuns(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	runs := []struct {
		seed  int64
		steps []int
	}{
		{seed: 1, steps: []int{1, 2}},
		{seed: 2, steps: []int{1}},
	}
	for _, r := range runs {
		om.BeginRun(r.seed)
		for _, step := range r.steps {
			om.Record(step, "Sheep", float64(step))
		}
		if err := om.WriteWindow(WindowStats{WindowEnd: len(r.steps)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var samples []Sample
	if err := gocsv.UnmarshalBytes(data, &samples); err != nil {
		t.Fatal(err)
	}
	wantSeeds := []int64{1, 1, 2}
	if len(samples) != len(wantSeeds) {
		t.Fatalf("got %d metric rows, want %d", len(samples), len(wantSeeds))
	}
	for i, want := range wantSeeds {
		if samples[i].Seed != want {
			t.Errorf("metric row %d seed = %d, want %d", i, samples[i].Seed, want)
		}
	}

	data, err = os.ReadFile(filepath.Join(dir, "windows.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var windows []WindowStats
	if err := gocsv.UnmarshalBytes(data, &windows); err != nil {
		t.Fatal(err)
	}
	if len(windows) != 2 || windows[0].Seed != 1 || windows[1].Seed != 2 {
		t.Errorf("window rows = %+v", windows)
	}
}
