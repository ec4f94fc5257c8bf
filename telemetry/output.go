package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/wolfsheep/config"
)

// OutputManager handles structured experiment output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir         string
	metricsFile *os.File
	windowFile  *os.File

	// Track if headers have been written
	metricsHeaderWritten bool
	windowHeaderWritten  bool

	seed int64 // stamped on every row of the current run

	err error // first write error seen by Record
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "metrics.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating metrics.csv: %w", err)
	}
	om.metricsFile = f

	f, err = os.Create(filepath.Join(dir, "windows.csv"))
	if err != nil {
		om.metricsFile.Close()
		return nil, fmt.Errorf("creating windows.csv: %w", err)
	}
	om.windowFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// BeginRun tags every row written from now on with seed, so several runs
// sharing one output directory stay distinguishable.
func (om *OutputManager) BeginRun(seed int64) {
	if om == nil {
		return
	}
	om.seed = seed
}

// Record implements Recorder by appending a row to metrics.csv. The first
// failure is kept and reported by Err and Close.
func (om *OutputManager) Record(step int, name string, value float64) {
	if om == nil || om.err != nil {
		return
	}
	if err := om.WriteSamples([]Sample{{Step: step, Name: name, Value: value}}); err != nil {
		om.err = err
	}
}

// WriteSamples stamps the current run seed on samples and appends them to
// metrics.csv.
func (om *OutputManager) WriteSamples(samples []Sample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}
	for i := range samples {
		samples[i].Seed = om.seed
	}

	if !om.metricsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(samples, om.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		om.metricsHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(samples, om.metricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}

// WriteWindow writes a window stats record to windows.csv.
func (om *OutputManager) WriteWindow(stats WindowStats) error {
	if om == nil {
		return nil
	}

	stats.Seed = om.seed
	records := []WindowStats{stats}

	if !om.windowHeaderWritten {
		if err := gocsv.Marshal(records, om.windowFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
		om.windowHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.windowFile); err != nil {
			return fmt.Errorf("writing window stats: %w", err)
		}
	}
	return nil
}

// Err returns the first error hit while recording metrics.
func (om *OutputManager) Err() error {
	if om == nil {
		return nil
	}
	return om.err
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	firstErr := om.err

	if om.metricsFile != nil {
		if err := om.metricsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.windowFile != nil {
		if err := om.windowFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
