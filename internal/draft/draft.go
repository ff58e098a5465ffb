// Package draft persists the weekly grid between CLI invocations as
// human-readable JSON files under ~/.dqts/.
package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// BaseDir returns the root data directory (~/.dqts).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".dqts"), nil
}

// weekFilePath returns the path for the given week's draft file, e.g.
// <base>/2024/W23.json.
func weekFilePath(base string, weekStart time.Time) string {
	label := timecalc.WeekLabel(weekStart)
	return filepath.Join(base, label[:4], label[5:]+".json")
}

// Load reads the draft grid for the week containing t. The second return is
// false when no draft exists for that week.
func Load(base string, t time.Time) (*grid.Grid, bool, error) {
	path := weekFilePath(base, timecalc.WeekStart(t))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("draft error reading %s: %w", path, err)
	}

	var g grid.Grid
	if err := json.Unmarshal(data, &g); err != nil {
		// Back up corrupt file and abort.
		backupPath := path + ".corrupt"
		_ = os.Rename(path, backupPath)
		return nil, false, fmt.Errorf("corrupt draft in %s (backed up to %s): %w", path, backupPath, err)
	}
	return &g, true, nil
}

// Save atomically writes the draft for the grid's week.
func Save(base string, g *grid.Grid) error {
	path := weekFilePath(base, g.WeekStart)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("draft error creating directories: %w", err)
	}

	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("draft error marshalling JSON: %w", err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("draft error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("draft error renaming temp file: %w", err)
	}
	return nil
}
