package draft_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/draft"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
)

var monday = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

func TestSaveLoadRoundtrip(t *testing.T) {
	base := t.TempDir()

	g := grid.New(monday)
	g.SetTaskName(0, "Dev")
	g.SetHours(0, "2024-06-03", 6)
	g.Drain()

	if err := draft.Save(base, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := draft.Load(base, monday)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("saved draft not found")
	}
	if got.WeekStart != g.WeekStart {
		t.Errorf("week start = %v, want %v", got.WeekStart, g.WeekStart)
	}
	row := got.Rows[0]
	if row.TaskName != "Dev" || row.Hours["2024-06-03"] != 6 {
		t.Errorf("row = %+v", row)
	}
	if !row.DirtyDates["2024-06-03"] || !row.NameDirty {
		t.Error("dirty state must survive the roundtrip")
	}
}

func TestLoadResolvesAnyDayOfWeek(t *testing.T) {
	base := t.TempDir()
	g := grid.New(monday)
	if err := draft.Save(base, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A Thursday in the same week resolves to the same draft file.
	thursday := time.Date(2024, 6, 6, 15, 30, 0, 0, time.UTC)
	_, ok, err := draft.Load(base, thursday)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Error("mid-week date must resolve to the Monday draft")
	}
}

func TestLoadMissing(t *testing.T) {
	base := t.TempDir()

	g, ok, err := draft.Load(base, monday)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || g != nil {
		t.Error("missing draft must report not-found without error")
	}
}

func TestLoadCorruptBacksUp(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "2024", "W23.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := draft.Load(base, monday)
	if err == nil {
		t.Fatal("corrupt draft must be an error")
	}
	if _, statErr := os.Stat(path + ".corrupt"); statErr != nil {
		t.Errorf("corrupt file not backed up: %v", statErr)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("corrupt file must be moved aside")
	}
}
