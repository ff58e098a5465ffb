package grid_test

import (
	"testing"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
)

// testGrid builds an unlocked grid for the 2024-06-03 week with the given
// number of named rows and no calendars.
func testGrid(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g := grid.New(monday)
	for i, name := range rows {
		if i > 0 {
			g.AddRow()
		}
		g.SetTaskName(i, name)
	}
	for _, m := range g.Drain() {
		t.Fatalf("unexpected message while building grid: %s", m.Text)
	}
	return g
}

func TestSetHoursPerDayCapAcrossRows(t *testing.T) {
	g := testGrid(t, "Dev", "Review")

	g.SetHours(0, "2024-06-03", 5)
	g.SetHours(1, "2024-06-03", 6)

	if got := g.Rows[1].Hours["2024-06-03"]; got != 3 {
		t.Errorf("second row hours = %v, want 3 (capped)", got)
	}
	if total := g.DayTotal("2024-06-03"); total > grid.MaxDayHours {
		t.Errorf("day total = %v, exceeds %v", total, grid.MaxDayHours)
	}
	if !hasText(g.Drain(), grid.LevelWarn, "only 3 hours available") {
		t.Error("expected a reduced-value warning")
	}
}

func TestSetHoursDayAlreadyFull(t *testing.T) {
	g := testGrid(t, "Dev", "Review")

	g.SetHours(0, "2024-06-03", 8)
	g.Drain()
	g.SetHours(1, "2024-06-03", 2)

	if got := g.Rows[1].Hours["2024-06-03"]; got != 0 {
		t.Errorf("hours = %v, want 0", got)
	}
	if !hasText(g.Drain(), grid.LevelWarn, "no hours available") {
		t.Error("expected a no-hours-available warning")
	}
}

func TestSetHoursHolidayForcedZero(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Holidays = map[string]model.HolidayEntry{
		"2024-06-05": {Date: "2024-06-05", Name: "Independence Day", Active: true},
	}

	g.SetHours(0, "2024-06-05", 5)

	if got := g.Rows[0].Hours["2024-06-05"]; got != 0 {
		t.Errorf("holiday hours = %v, want 0", got)
	}
	if !hasText(g.Drain(), grid.LevelWarn, "Independence Day") {
		t.Error("expected a holiday warning naming the holiday")
	}
}

func TestSetHoursFullDayLeaveForcedZero(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Leaves = map[string]model.LeaveDayEntry{
		"2024-06-04": {Date: "2024-06-04", LeaveCategory: "Casual", Duration: 1},
	}

	g.SetHours(0, "2024-06-04", 8)

	if got := g.Rows[0].Hours["2024-06-04"]; got != 0 {
		t.Errorf("leave-day hours = %v, want 0", got)
	}
	if !hasText(g.Drain(), grid.LevelWarn, "Casual") {
		t.Error("expected a leave warning naming the category")
	}
}

func TestSetHoursHalfDayLeaveCap(t *testing.T) {
	g := testGrid(t, "Dev")
	g.Leaves = map[string]model.LeaveDayEntry{
		"2024-06-06": {Date: "2024-06-06", LeaveCategory: "Sick", Duration: 0.5},
	}

	g.SetHours(0, "2024-06-06", 6)

	if got := g.Rows[0].Hours["2024-06-06"]; got != 4 {
		t.Errorf("half-day hours = %v, want 4 (capped)", got)
	}
	if !hasText(g.Drain(), grid.LevelWarn, "only 4 hours available") {
		t.Error("expected a capped-value warning")
	}
}

func TestSetHoursClampsNegative(t *testing.T) {
	g := testGrid(t, "Dev")

	g.SetHours(0, "2024-06-03", -3)

	if got := g.Rows[0].Hours["2024-06-03"]; got != 0 {
		t.Errorf("hours = %v, want 0", got)
	}
}

func TestSetHoursMarksCellDirty(t *testing.T) {
	g := testGrid(t, "Dev")

	g.SetHours(0, "2024-06-03", 4)

	row := g.Rows[0]
	if !row.DirtyDates["2024-06-03"] {
		t.Error("edited cell must be marked dirty")
	}
	if row.DirtyDates["2024-06-04"] {
		t.Error("untouched cell must not be dirty")
	}
}

func TestSetHoursRejectsOutsideWeek(t *testing.T) {
	g := testGrid(t, "Dev")

	g.SetHours(0, "2024-06-10", 4)

	if g.Rows[0].Hours["2024-06-10"] != 0 {
		t.Error("out-of-week date must not be written")
	}
	if !hasText(g.Drain(), grid.LevelError, "not in the displayed week") {
		t.Error("expected an out-of-week error")
	}
}

func TestLockedGridRejectsEdits(t *testing.T) {
	g := testGrid(t, "Dev")
	g.SetHours(0, "2024-06-03", 4)
	g.Drain()
	g.Locked = true

	g.SetHours(0, "2024-06-03", 8)
	g.SetTaskName(0, "Other")
	added := g.AddRow()

	if got := g.Rows[0].Hours["2024-06-03"]; got != 4 {
		t.Errorf("locked edit changed hours to %v", got)
	}
	if g.Rows[0].TaskName != "Dev" {
		t.Errorf("locked rename changed name to %q", g.Rows[0].TaskName)
	}
	if added != nil || len(g.Rows) != 1 {
		t.Error("locked grid must not accept new rows")
	}
	msgs := g.Drain()
	if !hasText(msgs, grid.LevelInfo, "locked") {
		t.Errorf("expected informational lock messages, got %v", msgs)
	}
}
