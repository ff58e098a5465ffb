package grid

import (
	"fmt"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// Report collects validation findings. OK is true iff no problem was found;
// problems are human-readable and never returned as Go errors.
type Report struct {
	OK       bool
	Problems []string
}

func (r *Report) add(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// rowLabel names a row in validation messages.
func rowLabel(i int, row *model.TaskRow) string {
	if row.TaskName != "" {
		return fmt.Sprintf("task %q", row.TaskName)
	}
	return fmt.Sprintf("row %d", i+1)
}

// saveRelevant reports whether a row participates in an incremental save:
// it has unsaved edits or at least one cell already saved remotely.
func saveRelevant(row *model.TaskRow) bool {
	return row.Dirty() || row.HasRemote()
}

// saveRelevantCell reports whether one cell participates in an incremental
// save. Tracking is per cell, so untouched cells of an edited row are left
// alone.
func saveRelevantCell(row *model.TaskRow, date string) bool {
	return row.DirtyDates[date] || row.TimesheetIDs[date] != ""
}

// ValidateForSave checks only the rows and cells relevant to an incremental
// save. It is intentionally narrower than ValidateForSubmit: partial,
// in-progress weeks must remain saveable.
func (g *Grid) ValidateForSave() Report {
	rep := Report{}
	totals := map[string]float64{}

	for i, row := range g.Rows {
		if !saveRelevant(row) {
			continue
		}
		if row.HasHours() && row.TaskName == "" {
			rep.add("%s: task name is required when hours are entered", rowLabel(i, row))
		}
		for _, date := range g.Dates() {
			if !saveRelevantCell(row, date) {
				continue
			}
			h := row.Hours[date]
			g.checkCell(&rep, i, row, date, h)
			totals[date] += h
		}
	}

	for _, date := range g.Dates() {
		if total, touched := totals[date]; touched && total > MaxDayHours {
			rep.add("%s: %s hours entered; at most %s per day",
				date, timecalc.FormatHours(total), timecalc.FormatHours(MaxDayHours))
		}
	}

	rep.OK = len(rep.Problems) == 0
	return rep
}

// ValidateForSubmit is the exhaustive full-week gate run before submission
// for approval. Every row and every date of the window is checked,
// including weekday coverage.
func (g *Grid) ValidateForSubmit() Report {
	rep := Report{}
	totals := map[string]float64{}

	for i, row := range g.Rows {
		if row.Empty() {
			continue
		}
		if row.HasHours() && row.TaskName == "" {
			rep.add("%s: task name is required when hours are entered", rowLabel(i, row))
		}
		for _, date := range g.Dates() {
			h := row.Hours[date]
			g.checkCell(&rep, i, row, date, h)
			totals[date] += h
		}
	}

	for _, date := range g.Dates() {
		total := totals[date]
		_, isHoliday := g.holiday(date)
		_, onLeave := g.leave(date)

		if !timecalc.IsWeekend(date) && !isHoliday && !onLeave && total == 0 {
			rep.add("%s (%s): no hours entered for workday", date, timecalc.Weekday(date))
		}
		if g.halfDayLeave(date) && total > HalfDayHours {
			rep.add("%s: %s hours entered; half-day leave allows at most %s",
				date, timecalc.FormatHours(total), timecalc.FormatHours(HalfDayHours))
		}
		if total > MaxDayHours {
			rep.add("%s: %s hours entered; at most %s per day",
				date, timecalc.FormatHours(total), timecalc.FormatHours(MaxDayHours))
		}
	}

	rep.OK = len(rep.Problems) == 0
	return rep
}

// checkCell applies the per-cell bounds and calendar-conflict checks shared
// by both validators.
func (g *Grid) checkCell(rep *Report, i int, row *model.TaskRow, date string, h float64) {
	if h < 0 || h > MaxEntryHours {
		rep.add("%s, %s: %s is not a valid hour count", rowLabel(i, row), date, timecalc.FormatHours(h))
	}
	if h <= 0 {
		return
	}
	if hol, ok := g.holiday(date); ok {
		rep.add("%s is a holiday (%s); hours must be 0", date, hol.Name)
	}
	if g.fullDayLeave(date) {
		l := g.Leaves[date]
		rep.add("%s is an approved %s leave day; hours must be 0", date, l.LeaveCategory)
	}
}
