package grid

import (
	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// mutable reports whether the grid accepts edits right now, queueing an
// informational message when it does not. Rejections are advisory, never
// errors: the caller simply sees no state change.
func (g *Grid) mutable() bool {
	if g.Locked {
		g.say(LevelInfo, "week %s is locked; no changes accepted", g.WeekStart.Format(timecalc.ISODate))
		return false
	}
	if g.phase != PhaseIdle {
		g.say(LevelInfo, "another operation is in progress (%s); try again", g.phase)
		return false
	}
	return true
}

// SetHours applies one hour-value edit to the cell (rowIdx, date), enforcing
// the per-cell and per-day caps before accepting the value. Purely in-memory.
func (g *Grid) SetHours(rowIdx int, date string, value float64) {
	if !g.mutable() {
		return
	}
	if rowIdx < 0 || rowIdx >= len(g.Rows) {
		g.say(LevelError, "no such row %d", rowIdx)
		return
	}
	if !g.inWeek(date) {
		g.say(LevelError, "%s is not in the displayed week", date)
		return
	}
	row := g.Rows[rowIdx]

	// Holidays and full-day leaves admit no hours at all; force the cell to
	// zero before any cap arithmetic.
	if hol, ok := g.holiday(date); ok {
		if value != 0 {
			g.say(LevelWarn, "%s is a holiday (%s); hours set to 0", date, hol.Name)
		}
		row.Hours[date] = 0
		row.MarkDirty(date)
		return
	}
	if g.fullDayLeave(date) {
		l := g.Leaves[date]
		if value != 0 {
			g.say(LevelWarn, "%s is an approved %s leave day; hours set to 0", date, l.LeaveCategory)
		}
		row.Hours[date] = 0
		row.MarkDirty(date)
		return
	}

	var otherRowsTotal float64
	for i, r := range g.Rows {
		if i != rowIdx {
			otherRowsTotal += r.Hours[date]
		}
	}

	allowed := MaxDayHours - otherRowsTotal
	if g.halfDayLeave(date) && allowed > HalfDayHours {
		allowed = HalfDayHours
	}
	if allowed < 0 {
		allowed = 0
	}

	if value > allowed {
		if allowed <= 0 {
			g.say(LevelWarn, "no hours available on %s; other tasks already fill the day", date)
		} else {
			g.say(LevelWarn, "only %s hours available on %s; value reduced", timecalc.FormatHours(allowed), date)
		}
		value = allowed
	}

	// Safety bounds regardless of the cap arithmetic above.
	if value < 0 {
		value = 0
	}
	if value > MaxDayHours {
		value = MaxDayHours
	}

	row.Hours[date] = value
	row.MarkDirty(date)
}

// SetTaskName renames a row. Cells already saved remotely are re-sent on the
// next save so the backend picks up the new name.
func (g *Grid) SetTaskName(rowIdx int, name string) {
	if !g.mutable() {
		return
	}
	if rowIdx < 0 || rowIdx >= len(g.Rows) {
		g.say(LevelError, "no such row %d", rowIdx)
		return
	}
	row := g.Rows[rowIdx]
	if row.TaskName == name {
		return
	}
	row.TaskName = name
	row.NameDirty = true
}

// AddRow appends a blank row and returns it, or nil if the grid is locked or
// busy.
func (g *Grid) AddRow() *model.TaskRow {
	if !g.mutable() {
		return nil
	}
	row := g.blankRow()
	g.Rows = append(g.Rows, row)
	return row
}

func (g *Grid) inWeek(date string) bool {
	for _, d := range g.Dates() {
		if d == date {
			return true
		}
	}
	return false
}
