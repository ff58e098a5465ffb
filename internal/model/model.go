package model

// Timesheet entry statuses as reported by the DQ backend.
const (
	StatusPending   = "Pending"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
)

// UntitledTask is the label assigned to remote entries that arrive without
// a task name, so they can still be grouped into a row.
const UntitledTask = "Untitled"

// TaskRow is one task's hours across the displayed week. Hours and
// TimesheetIDs are keyed by ISO date (YYYY-MM-DD). DirtyDates records which
// cells have been edited locally since the last successful save.
type TaskRow struct {
	ID           string             `json:"id"`
	TaskName     string             `json:"task_name"`
	Hours        map[string]float64 `json:"hours"`
	TimesheetIDs map[string]string  `json:"timesheet_ids,omitempty"`
	DirtyDates   map[string]bool    `json:"dirty_dates,omitempty"`
	NameDirty    bool               `json:"name_dirty,omitempty"`
}

// MarkDirty records a local edit to the given date's cell.
func (r *TaskRow) MarkDirty(date string) {
	if r.DirtyDates == nil {
		r.DirtyDates = map[string]bool{}
	}
	r.DirtyDates[date] = true
}

// Dirty reports whether any cell or the task name has unsaved edits.
func (r *TaskRow) Dirty() bool {
	return r.NameDirty || len(r.DirtyDates) > 0
}

// HasRemote reports whether any cell of the row has been saved remotely.
func (r *TaskRow) HasRemote() bool {
	return len(r.TimesheetIDs) > 0
}

// HasHours reports whether any cell in the row holds a positive value.
func (r *TaskRow) HasHours() bool {
	for _, h := range r.Hours {
		if h > 0 {
			return true
		}
	}
	return false
}

// Empty reports whether the row carries neither a task name nor any positive
// hour. Empty rows are ignored by validation and save.
func (r *TaskRow) Empty() bool {
	return r.TaskName == "" && !r.HasHours()
}

// HolidayEntry is one calendar holiday from the holiday source.
type HolidayEntry struct {
	Date   string `json:"date"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// LeaveDayEntry is one approved leave day. Duration is 1 for a full day and
// 0.5 for a half day.
type LeaveDayEntry struct {
	Date          string  `json:"date"`
	LeaveCategory string  `json:"leave_category"`
	Duration      float64 `json:"duration"`
}

// TimesheetEntry is a persisted remote timesheet record.
type TimesheetEntry struct {
	TimesheetID     string  `json:"timesheet_id"`
	WorkDate        string  `json:"work_date"`
	WorkedHours     float64 `json:"worked_hours"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description,omitempty"`
	Status          string  `json:"status"`
	ClientID        string  `json:"client_id,omitempty"`
}

// TimesheetCreate is the request shape for creating or updating one entry.
// The backend names the hours field differently on write than on read.
type TimesheetCreate struct {
	WorkDate        string  `json:"work_date"`
	HoursWorked     float64 `json:"hours_worked"`
	TaskName        string  `json:"task_name"`
	TaskDescription string  `json:"task_description,omitempty"`
}

// TimesheetCreated is the backend's acknowledgement for one created entry.
type TimesheetCreated struct {
	TimesheetID string `json:"timesheet_id"`
	WorkDate    string `json:"work_date"`
	TaskName    string `json:"task_name"`
}
