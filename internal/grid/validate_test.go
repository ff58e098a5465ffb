package grid_test

import (
	"strings"
	"testing"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
)

func problemsContain(rep grid.Report, substr string) bool {
	for _, p := range rep.Problems {
		if strings.Contains(p, substr) {
			return true
		}
	}
	return false
}

func TestValidateForSaveScopesToDirtyAndRemote(t *testing.T) {
	g := testGrid(t, "Dev", "Ops")
	g.SetHours(0, "2024-06-03", 4) // dirty cell on D1
	// Clean row with only a remote identifier on D2, no hours, no dirty flag.
	g.Rows[1].TimesheetIDs = map[string]string{"2024-06-04": "ts-9"}
	g.Rows[1].NameDirty = false
	g.Rows[1].DirtyDates = nil
	g.Rows[0].NameDirty = false
	g.Drain()

	rep := g.ValidateForSave()
	if !rep.OK {
		t.Fatalf("save validation failed: %v", rep.Problems)
	}
	if problemsContain(rep, "no hours") {
		t.Error("save validation must never require workday coverage")
	}

	// The submit gate, by contrast, flags every uncovered weekday.
	sub := g.ValidateForSubmit()
	if sub.OK {
		t.Fatal("submit validation must fail on an incomplete week")
	}
	for _, date := range []string{"2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"} {
		if !problemsContain(sub, date) {
			t.Errorf("submit validation missing workday-coverage problem for %s", date)
		}
	}
	if problemsContain(sub, "2024-06-08") || problemsContain(sub, "2024-06-09") {
		t.Error("weekends must not require coverage")
	}
}

func TestValidateForSaveTaskNameRequired(t *testing.T) {
	g := testGrid(t, "Dev")
	g.SetTaskName(0, "")
	g.SetHours(0, "2024-06-03", 4)
	g.Drain()

	rep := g.ValidateForSave()
	if rep.OK || !problemsContain(rep, "task name is required") {
		t.Errorf("expected a task-name problem, got %v", rep.Problems)
	}
}

func TestValidateForSaveHourBounds(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Rows[0].Hours["2024-06-03"] = 25 // bypass the editor's clamp
	g.Rows[0].MarkDirty("2024-06-03")

	rep := g.ValidateForSave()
	if rep.OK || !problemsContain(rep, "not a valid hour count") {
		t.Errorf("expected an hour-bounds problem, got %v", rep.Problems)
	}
}

func TestValidateForSubmitMissingWorkday(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Holidays = map[string]model.HolidayEntry{
		"2024-06-05": {Date: "2024-06-05", Name: "Independence Day", Active: true},
	}
	g.Leaves = map[string]model.LeaveDayEntry{
		"2024-06-06": {Date: "2024-06-06", LeaveCategory: "Casual", Duration: 1},
	}
	// Monday, Tuesday covered; Friday left at zero.
	g.SetHours(0, "2024-06-03", 8)
	g.SetHours(0, "2024-06-04", 8)
	g.Drain()

	rep := g.ValidateForSubmit()
	if rep.OK {
		t.Fatal("expected validation failure for the uncovered Friday")
	}
	if !problemsContain(rep, "2024-06-07") {
		t.Errorf("expected a problem naming 2024-06-07, got %v", rep.Problems)
	}
	if problemsContain(rep, "2024-06-05") || problemsContain(rep, "2024-06-06") {
		t.Errorf("holiday and leave days must not require coverage, got %v", rep.Problems)
	}
}

func TestValidateForSubmitHalfDayOverage(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Leaves = map[string]model.LeaveDayEntry{
		"2024-06-06": {Date: "2024-06-06", LeaveCategory: "Sick", Duration: 0.5},
	}
	for _, date := range []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-07"} {
		g.SetHours(0, date, 8)
	}
	g.Rows[0].Hours["2024-06-06"] = 6 // bypass the editor's cap
	g.Rows[0].MarkDirty("2024-06-06")
	g.Drain()

	rep := g.ValidateForSubmit()
	if rep.OK || !problemsContain(rep, "half-day leave allows at most 4") {
		t.Errorf("expected a half-day overage problem, got %v", rep.Problems)
	}
}

// The end-to-end scenario from the register's acceptance checklist: a full
// week around one holiday passes, and any hours leaking onto the holiday
// fail with a message naming it.
func TestValidateForSubmitHolidayScenario(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Holidays = map[string]model.HolidayEntry{
		"2024-06-05": {Date: "2024-06-05", Name: "Independence Day", Active: true},
	}
	for _, date := range []string{"2024-06-03", "2024-06-04", "2024-06-06", "2024-06-07"} {
		g.SetHours(0, date, 8)
	}
	g.Drain()

	if rep := g.ValidateForSubmit(); !rep.OK {
		t.Fatalf("expected a clean week, got %v", rep.Problems)
	}

	g.Rows[0].Hours["2024-06-05"] = 2
	g.Rows[0].MarkDirty("2024-06-05")

	rep := g.ValidateForSubmit()
	if rep.OK {
		t.Fatal("hours on a holiday must fail the submit gate")
	}
	if !problemsContain(rep, "Independence Day") || !problemsContain(rep, "2024-06-05") {
		t.Errorf("expected a problem naming the holiday and date, got %v", rep.Problems)
	}
}

func TestValidateForSubmitIgnoresEmptyRows(t *testing.T) {
	g := testGrid(t, "Dev")
	g.AddRow() // semantically empty: no name, no hours
	for _, date := range []string{"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06", "2024-06-07"} {
		g.SetHours(0, date, 8)
	}
	g.Drain()

	if rep := g.ValidateForSubmit(); !rep.OK {
		t.Errorf("empty rows must not fail validation: %v", rep.Problems)
	}
}
