package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/channelflow/config"
)

// OutputManager writes run artefacts into one directory.
type OutputManager struct {
	dir             string
	diagnosticsFile *os.File
	perfFile        *os.File

	diagnosticsHeaderWritten bool
	perfHeaderWritten        bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); every method is nil-safe.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "diagnostics.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating diagnostics.csv: %w", err)
	}
	om.diagnosticsFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.diagnosticsFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the run configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// appendCSV writes records, emitting the header only on the first call.
func appendCSV(f *os.File, headerWritten *bool, records any) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// WriteDiagnostics appends a window record to diagnostics.csv.
func (om *OutputManager) WriteDiagnostics(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.diagnosticsFile, &om.diagnosticsHeaderWritten, []WindowStats{stats}); err != nil {
		return fmt.Errorf("writing diagnostics: %w", err)
	}
	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.perfFile, &om.perfHeaderWritten, []PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteHistoryPlot renders the diagnostics history to history.png.
func (om *OutputManager) WriteHistoryPlot(history []WindowStats) error {
	if om == nil || len(history) == 0 {
		return nil
	}
	return SaveHistoryPlot(history, filepath.Join(om.dir, "history.png"))
}

// Path joins name onto the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
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

	var firstErr error
	for _, f := range []*os.File{om.diagnosticsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
