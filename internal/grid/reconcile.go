package grid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
)

// ErrNotSaveable is returned when validation blocks a save or submit.
var ErrNotSaveable = errors.New("validation failed")

type updateOp struct {
	row  *model.TaskRow
	date string
	req  model.TimesheetCreate
}

// savePlan is the minimal set of remote calls implied by the grid's dirty
// state: one batched create for cells never saved, one update per cell whose
// remote entry is stale. Updates are keyed by remote id, last write wins.
type savePlan struct {
	creates []model.TimesheetCreate
	updates map[string]updateOp
	order   []string
}

func (g *Grid) buildPlan(description string) savePlan {
	plan := savePlan{updates: map[string]updateOp{}}
	for _, row := range g.Rows {
		if !saveRelevant(row) || row.TaskName == "" {
			continue
		}
		for _, date := range g.Dates() {
			h, present := row.Hours[date]
			if !present || h < 0 {
				continue
			}
			req := model.TimesheetCreate{
				WorkDate:        date,
				HoursWorked:     h,
				TaskName:        row.TaskName,
				TaskDescription: description,
			}
			id := row.TimesheetIDs[date]
			switch {
			case id == "" && row.DirtyDates[date]:
				plan.creates = append(plan.creates, req)
			case id != "" && (row.DirtyDates[date] || row.NameDirty):
				if _, seen := plan.updates[id]; !seen {
					plan.order = append(plan.order, id)
				}
				plan.updates[id] = updateOp{row: row, date: date, req: req}
			}
		}
	}
	return plan
}

// SaveAll translates the grid's dirty state into remote create/update calls
// and reconciles the returned identifiers back into the rows. The week is
// reloaded afterwards so local state mirrors the backend.
func (g *Grid) SaveAll(ctx context.Context, src Sources, description string) error {
	if !g.mutable() {
		return nil
	}

	if rep := g.ValidateForSave(); !rep.OK {
		for _, p := range rep.Problems {
			g.say(LevelError, "%s", p)
		}
		return ErrNotSaveable
	}

	g.phase = PhaseSaving
	defer func() { g.phase = PhaseIdle }()
	return g.saveLocked(ctx, src, description)
}

// saveLocked performs the actual save. The caller holds the phase.
func (g *Grid) saveLocked(ctx context.Context, src Sources, description string) error {
	plan := g.buildPlan(description)
	if len(plan.creates) == 0 && len(plan.updates) == 0 {
		g.say(LevelInfo, "nothing to save")
		return nil
	}

	if len(plan.creates) > 0 {
		created, err := src.Timesheets.CreateTimesheets(ctx, plan.creates)
		if err != nil {
			g.say(LevelError, "saving new entries failed: %v", err)
			return fmt.Errorf("creating %d entries: %w", len(plan.creates), err)
		}
		g.adoptCreated(created)
	}

	// Clear the dirty marks up front; failed updates re-mark their cells
	// below so a failed update never silently reads as saved.
	for _, row := range g.Rows {
		row.NameDirty = false
		row.DirtyDates = nil
	}

	failed := 0
	for _, id := range plan.order {
		op := plan.updates[id]
		if err := src.Timesheets.UpdateTimesheet(ctx, id, op.req); err != nil {
			op.row.MarkDirty(op.date)
			g.say(LevelWarn, "updating %q on %s failed: %v", op.row.TaskName, op.date, err)
			failed++
		}
	}

	if failed > 0 {
		g.say(LevelWarn, "%d update(s) failed and remain pending; run save again", failed)
		// Skip the reload: it would discard the re-marked dirty cells.
		return nil
	}

	g.reload(ctx, src)
	g.say(LevelSuccess, "timesheet saved")
	return nil
}

// adoptCreated records the identifiers the backend assigned, matching each
// created record back to its originating row by task name.
func (g *Grid) adoptCreated(created []model.TimesheetCreated) {
	for _, c := range created {
		for _, row := range g.Rows {
			if row.TaskName != c.TaskName {
				continue
			}
			if row.TimesheetIDs == nil {
				row.TimesheetIDs = map[string]string{}
			}
			row.TimesheetIDs[c.WorkDate] = c.TimesheetID
			break
		}
	}
}

// Submit runs the two-phase submit workflow: re-validate, flush pending
// edits, wait out backend settle lag, then submit every saved entry with
// hours and lock the week. The confirmation step lives with the caller.
func (g *Grid) Submit(ctx context.Context, src Sources, description string, settle time.Duration) error {
	if !g.mutable() {
		return nil
	}

	// The grid may have changed since the caller's confirmation prompt.
	if rep := g.ValidateForSubmit(); !rep.OK {
		for _, p := range rep.Problems {
			g.say(LevelError, "%s", p)
		}
		return ErrNotSaveable
	}

	g.phase = PhaseSubmitting
	defer func() { g.phase = PhaseIdle }()

	if err := g.saveLocked(ctx, src, description); err != nil {
		return fmt.Errorf("saving before submit: %w", err)
	}

	// The backend lists entries eventually-consistently after a batch create.
	if settle > 0 {
		timer := time.NewTimer(settle)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	g.reload(ctx, src)

	var ids []string
	for _, row := range g.Rows {
		for date, id := range row.TimesheetIDs {
			if id != "" && row.Hours[date] > 0 {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		g.say(LevelError, "no valid entries to submit")
		return errors.New("no valid entries to submit")
	}

	if err := src.Timesheets.SubmitForApproval(ctx, ids); err != nil {
		g.say(LevelError, "submit failed: %v", err)
		return fmt.Errorf("submitting %d entries: %w", len(ids), err)
	}

	g.say(LevelSuccess, "week submitted for approval (%d entries)", len(ids))
	g.reload(ctx, src)
	// The reload recomputes the lock from remote statuses, which can lag the
	// submit we just made. We know the week is submitted; stay locked.
	g.Locked = true
	return nil
}

// DeleteRow removes a row and cascades the deletion to every remote entry it
// references. The removal is staged: local state changes only after all
// remote deletes succeed, so a failed cascade leaves the grid untouched.
func (g *Grid) DeleteRow(ctx context.Context, src Sources, rowIdx int) error {
	if !g.mutable() {
		return nil
	}
	if rowIdx < 0 || rowIdx >= len(g.Rows) {
		g.say(LevelError, "no such row %d", rowIdx)
		return fmt.Errorf("no such row %d", rowIdx)
	}
	row := g.Rows[rowIdx]

	g.phase = PhaseSaving
	defer func() { g.phase = PhaseIdle }()

	deleted := 0
	for _, date := range g.Dates() {
		id := row.TimesheetIDs[date]
		if id == "" {
			continue
		}
		if err := src.Timesheets.DeleteTimesheet(ctx, id); err != nil {
			g.say(LevelError, "deleting %q failed: %v", row.TaskName, err)
			if deleted > 0 {
				// Some entries are already gone; resync rather than guess.
				g.reload(ctx, src)
			}
			return fmt.Errorf("deleting entry %s: %w", id, err)
		}
		deleted++
	}

	g.Rows = append(g.Rows[:rowIdx], g.Rows[rowIdx+1:]...)
	if len(g.Rows) == 0 {
		g.Rows = []*model.TaskRow{g.blankRow()}
	}

	if deleted > 0 {
		// Only resync when remote state actually changed; a reload would
		// otherwise discard unsaved edits in the surviving rows.
		g.reload(ctx, src)
		g.say(LevelSuccess, "removed %q and %d saved entr%s", row.TaskName, deleted, plural(deleted, "y", "ies"))
	} else {
		g.say(LevelSuccess, "removed %q", row.TaskName)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
