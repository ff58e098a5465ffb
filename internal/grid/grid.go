// Package grid implements the weekly timesheet register: an in-memory grid of
// task rows by week dates, validated against holiday and leave calendars and
// reconciled against the remote timesheet list.
package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/model"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// Per-day hour limits enforced by the cell editor and the validators.
const (
	MaxDayHours   = 8.0
	HalfDayHours  = 4.0
	MaxEntryHours = 24.0
	FullDayLeave  = 1.0
	HalfDayLeave  = 0.5
)

// Phase is the grid's operation state. Mutations are accepted only in
// PhaseIdle; a locked week stays in PhaseLocked until the backend clears the
// submitted status (manager rejection, outside this tool).
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSaving
	PhaseSubmitting
	PhaseLocked
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSaving:
		return "saving"
	case PhaseSubmitting:
		return "submitting"
	case PhaseLocked:
		return "locked"
	}
	return "unknown"
}

// Level classifies a user-facing message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "ok"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "info"
}

// Message is one entry in the grid's outbound feedback queue.
type Message struct {
	Level Level
	Text  string
}

// HolidaySource lists calendar holidays. Only active entries are used.
type HolidaySource interface {
	ListActiveHolidays(ctx context.Context) ([]model.HolidayEntry, error)
}

// LeaveSource lists approved leave days for a calendar year.
type LeaveSource interface {
	ListApprovedLeaves(ctx context.Context, year string) ([]model.LeaveDayEntry, error)
}

// TimesheetService persists timesheet entries for a date range.
type TimesheetService interface {
	ListTimesheets(ctx context.Context, startDate, endDate string) ([]model.TimesheetEntry, error)
	CreateTimesheets(ctx context.Context, entries []model.TimesheetCreate) ([]model.TimesheetCreated, error)
	UpdateTimesheet(ctx context.Context, timesheetID string, entry model.TimesheetCreate) error
	DeleteTimesheet(ctx context.Context, timesheetID string) error
	SubmitForApproval(ctx context.Context, timesheetIDs []string) error
}

// Sources bundles the three collaborators the grid depends on.
type Sources struct {
	Holidays   HolidaySource
	Leaves     LeaveSource
	Timesheets TimesheetService
}

// Grid is the weekly register state. Exported fields are what the draft file
// persists between CLI invocations; the phase and message queue are transient.
type Grid struct {
	WeekStart time.Time                      `json:"week_start"`
	Rows      []*model.TaskRow               `json:"rows"`
	Holidays  map[string]model.HolidayEntry  `json:"holidays,omitempty"`
	Leaves    map[string]model.LeaveDayEntry `json:"leaves,omitempty"`
	Locked    bool                           `json:"locked"`

	phase Phase
	msgs  []Message
}

// New returns an empty unlocked grid for the week containing t, with a single
// blank row.
func New(t time.Time) *Grid {
	g := &Grid{WeekStart: timecalc.WeekStart(t)}
	g.Rows = []*model.TaskRow{g.blankRow()}
	return g
}

// Dates returns the seven ISO dates of the displayed week.
func (g *Grid) Dates() []string {
	return timecalc.WeekDates(g.WeekStart)
}

// Phase returns the grid's current operation state.
func (g *Grid) Phase() Phase {
	if g.Locked {
		return PhaseLocked
	}
	return g.phase
}

// Drain returns and clears the queued feedback messages.
func (g *Grid) Drain() []Message {
	msgs := g.msgs
	g.msgs = nil
	return msgs
}

func (g *Grid) say(level Level, format string, args ...any) {
	g.msgs = append(g.msgs, Message{Level: level, Text: fmt.Sprintf(format, args...)})
}

// DayTotal sums hours across all rows for one date.
func (g *Grid) DayTotal(date string) float64 {
	var total float64
	for _, row := range g.Rows {
		total += row.Hours[date]
	}
	return total
}

// RowTotal sums one row's hours across the week.
func (g *Grid) RowTotal(row *model.TaskRow) float64 {
	var total float64
	for _, h := range row.Hours {
		total += h
	}
	return total
}

// RowByTask returns the index of the first row with the given task name,
// or -1 if none matches. Matching is case-sensitive, like the grouping.
func (g *Grid) RowByTask(name string) int {
	for i, row := range g.Rows {
		if row.TaskName == name {
			return i
		}
	}
	return -1
}

// holiday returns the active holiday on date, if any.
func (g *Grid) holiday(date string) (model.HolidayEntry, bool) {
	h, ok := g.Holidays[date]
	return h, ok
}

// leave returns the approved leave on date, if any.
func (g *Grid) leave(date string) (model.LeaveDayEntry, bool) {
	l, ok := g.Leaves[date]
	return l, ok
}

// fullDayLeave reports whether date carries a leave that blocks all hours.
// Durations of 1 or more block the whole day; anything below 1 does not.
func (g *Grid) fullDayLeave(date string) bool {
	l, ok := g.Leaves[date]
	return ok && l.Duration >= FullDayLeave
}

// halfDayLeave reports whether date carries a half-day leave.
func (g *Grid) halfDayLeave(date string) bool {
	l, ok := g.Leaves[date]
	return ok && l.Duration == HalfDayLeave
}

func (g *Grid) blankRow() *model.TaskRow {
	row := &model.TaskRow{
		ID:    uuid.NewString(),
		Hours: map[string]float64{},
	}
	for _, date := range g.Dates() {
		row.Hours[date] = 0
	}
	return row
}
