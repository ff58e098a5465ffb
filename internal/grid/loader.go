package grid

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// LoadWeek fetches the three collaborator datasets for the week containing t
// and materializes the row grid. Fetch failures degrade rather than abort:
// a missing holiday or leave calendar relaxes validation (never tightens it),
// and a failed timesheet list yields an empty unlocked grid. All failures are
// reported through the message queue.
func LoadWeek(ctx context.Context, t time.Time, src Sources) *Grid {
	g := &Grid{WeekStart: timecalc.WeekStart(t)}
	g.phase = PhaseLoading
	g.reload(ctx, src)
	g.phase = PhaseIdle
	return g
}

// Reload re-fetches the week in place. Invoked after save, submit and delete
// to resynchronize with the backend; the latest response wins.
func (g *Grid) Reload(ctx context.Context, src Sources) {
	g.reload(ctx, src)
}

func (g *Grid) reload(ctx context.Context, src Sources) {
	startDate := g.WeekStart.Format(timecalc.ISODate)
	endDate := timecalc.WeekEnd(g.WeekStart)
	year := timecalc.Year(startDate)

	var (
		wg       sync.WaitGroup
		holidays []model.HolidayEntry
		leaves   []model.LeaveDayEntry
		entries  []model.TimesheetEntry
		holErr   error
		leaveErr error
		listErr  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		holidays, holErr = src.Holidays.ListActiveHolidays(ctx)
	}()
	go func() {
		defer wg.Done()
		leaves, leaveErr = src.Leaves.ListApprovedLeaves(ctx, year)
	}()
	go func() {
		defer wg.Done()
		entries, listErr = src.Timesheets.ListTimesheets(ctx, startDate, endDate)
	}()
	wg.Wait()

	g.Holidays = map[string]model.HolidayEntry{}
	if holErr != nil {
		g.say(LevelWarn, "holiday calendar unavailable (%v); holiday checks disabled", holErr)
	} else {
		for _, h := range holidays {
			if h.Active {
				g.Holidays[h.Date] = h
			}
		}
	}

	g.Leaves = map[string]model.LeaveDayEntry{}
	if leaveErr != nil {
		g.say(LevelWarn, "leave calendar unavailable (%v); leave checks disabled", leaveErr)
	} else {
		for _, l := range leaves {
			g.Leaves[l.Date] = l
		}
	}

	if listErr != nil {
		g.say(LevelError, "loading timesheets failed: %v", listErr)
		g.Rows = []*model.TaskRow{g.blankRow()}
		g.Locked = false
		return
	}

	g.Rows, g.Locked = g.groupEntries(entries)
	if len(g.Rows) == 0 {
		g.Rows = []*model.TaskRow{g.blankRow()}
	}
	if g.Locked {
		g.say(LevelInfo, "week %s has been submitted for approval and is locked", startDate)
	}
}

// groupEntries folds remote entries into one row per distinct task name,
// preserving first-seen order, and reports whether any entry is already
// submitted. Entries outside the week window, or whose work date does not
// share the week start's year and month, are dropped: backends have been
// seen returning boundary entries shifted by timezone drift.
func (g *Grid) groupEntries(entries []model.TimesheetEntry) ([]*model.TaskRow, bool) {
	start := g.WeekStart
	end := start.AddDate(0, 0, 6)
	dates := g.Dates()

	var rows []*model.TaskRow
	byName := map[string]*model.TaskRow{}
	locked := false

	for _, e := range entries {
		d, err := timecalc.ParseDate(e.WorkDate)
		if err != nil {
			g.say(LevelWarn, "ignoring entry %s with malformed work date %q", e.TimesheetID, e.WorkDate)
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		if d.Year() != start.Year() || d.Month() != start.Month() {
			continue
		}

		if e.Status == model.StatusSubmitted {
			locked = true
		}

		name := e.TaskName
		if name == "" {
			name = model.UntitledTask
		}
		row, ok := byName[name]
		if !ok {
			row = &model.TaskRow{
				ID:           uuid.NewString(),
				TaskName:     name,
				Hours:        map[string]float64{},
				TimesheetIDs: map[string]string{},
			}
			for _, date := range dates {
				row.Hours[date] = 0
			}
			byName[name] = row
			rows = append(rows, row)
		}
		row.Hours[e.WorkDate] = e.WorkedHours
		row.TimesheetIDs[e.WorkDate] = e.TimesheetID
	}
	return rows, locked
}
