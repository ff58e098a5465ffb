package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/config"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/dqapi"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/draft"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

// resolveWeek parses a --date value (empty means today) and returns the
// Monday of its week.
func resolveWeek(dateFlag string) time.Time {
	if dateFlag == "" {
		return timecalc.WeekStart(time.Now())
	}
	d, err := timecalc.ParseDate(dateFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return timecalc.WeekStart(d)
}

// backendSources authenticates and wires the API client into the grid's
// collaborator set.
func backendSources(ctx context.Context) (grid.Sources, config.Config) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	tok, ocfg, err := dqapi.Authenticate(ctx, cfg.Auth.IssuerURL, cfg.Auth.ClientID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}
	client := dqapi.NewClient(ctx, cfg.Backend.BaseURL, tok, ocfg)
	return grid.Sources{Holidays: client, Leaves: client, Timesheets: client}, cfg
}

// draftBase returns ~/.dqts, exiting on failure.
func draftBase() string {
	base, err := draft.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return base
}

// requireDraft loads the draft for the given week, telling the user to run
// `dqts week` first if there is none.
func requireDraft(base string, weekStart time.Time) *grid.Grid {
	g, ok, err := draft.Load(base, weekStart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "No local draft for the week of %s. Run `dqts week --date %s` first.\n",
			weekStart.Format(timecalc.ISODate), weekStart.Format(timecalc.ISODate))
		os.Exit(1)
	}
	return g
}

// saveDraft persists the grid, exiting on failure.
func saveDraft(base string, g *grid.Grid) {
	if err := draft.Save(base, g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// printMessages drains the grid's feedback queue to the terminal. Warnings
// and errors go to stderr. Returns true if any error-level message appeared.
func printMessages(g *grid.Grid) bool {
	hadError := false
	for _, m := range g.Drain() {
		switch m.Level {
		case grid.LevelError:
			hadError = true
			fmt.Fprintf(os.Stderr, "error: %s\n", m.Text)
		case grid.LevelWarn:
			fmt.Fprintf(os.Stderr, "warning: %s\n", m.Text)
		default:
			fmt.Println(m.Text)
		}
	}
	return hadError
}

// printGrid renders the weekly register as a plain-text table.
func printGrid(g *grid.Grid) {
	dates := g.Dates()

	fmt.Printf("Week %s (%s – %s)", timecalc.WeekLabel(g.WeekStart),
		dates[0], dates[6])
	if g.Locked {
		fmt.Print("  [submitted – locked]")
	}
	fmt.Println()

	// Header: weekday and day-of-month, with holiday/leave markers.
	fmt.Printf("%-24s", "Task")
	for _, date := range dates {
		fmt.Printf("%8s", timecalc.Weekday(date)+" "+date[8:]+dayMarker(g, date))
	}
	fmt.Printf("%8s\n", "Total")

	for _, row := range g.Rows {
		name := row.TaskName
		if name == "" {
			name = "(unnamed)"
		}
		if row.Dirty() {
			name += " *"
		}
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("%-24s", name)
		for _, date := range dates {
			fmt.Printf("%8s", timecalc.FormatHours(row.Hours[date]))
		}
		fmt.Printf("%8s\n", timecalc.FormatHours(g.RowTotal(row)))
	}

	fmt.Printf("%-24s", "Day total")
	var weekTotal float64
	for _, date := range dates {
		t := g.DayTotal(date)
		weekTotal += t
		fmt.Printf("%8s", timecalc.FormatHours(t))
	}
	fmt.Printf("%8s\n", timecalc.FormatHours(weekTotal))

	for _, date := range dates {
		if h, ok := g.Holidays[date]; ok {
			fmt.Printf("  H %s: %s\n", date, h.Name)
		}
		if l, ok := g.Leaves[date]; ok {
			fmt.Printf("  L %s: %s (%s day)\n", date, l.LeaveCategory, timecalc.FormatHours(l.Duration))
		}
	}
	if anyDirty(g) {
		fmt.Println("* unsaved changes – run `dqts save`")
	}
}

func anyDirty(g *grid.Grid) bool {
	for _, row := range g.Rows {
		if row.Dirty() {
			return true
		}
	}
	return false
}

// dayMarker flags holiday and leave dates in the grid header.
func dayMarker(g *grid.Grid, date string) string {
	if _, ok := g.Holidays[date]; ok {
		return "H"
	}
	if l, ok := g.Leaves[date]; ok {
		if l.Duration == grid.HalfDayLeave {
			return "h"
		}
		return "L"
	}
	return ""
}

// confirm prompts on stdout and reads a yes/no answer from stdin.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// resolveDate accepts either an ISO date inside the grid's week or a weekday
// name ("mon", "tuesday") resolved against it.
func resolveDate(g *grid.Grid, arg string) (string, error) {
	if _, err := timecalc.ParseDate(arg); err == nil {
		for _, d := range g.Dates() {
			if d == arg {
				return arg, nil
			}
		}
		return "", fmt.Errorf("%s is not in the week of %s", arg, g.WeekStart.Format(timecalc.ISODate))
	}
	want := strings.ToLower(arg)
	for _, d := range g.Dates() {
		t, _ := timecalc.ParseDate(d)
		name := strings.ToLower(t.Weekday().String())
		if want == name || want == name[:3] {
			return d, nil
		}
	}
	return "", fmt.Errorf("cannot interpret %q as a date or weekday", arg)
}
