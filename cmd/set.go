package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/timecalc"
)

var setDate string

var setCmd = &cobra.Command{
	Use:   "set <task> <date|weekday> <hours>",
	Short: "Set the hours for one task on one day",
	Args:  cobra.ExactArgs(3),
	RunE:  runSet,
}

func init() {
	setCmd.Flags().StringVar(&setDate, "date", "", "Any date in the week to edit (YYYY-MM-DD); defaults to today's week")
}

func runSet(cmd *cobra.Command, args []string) error {
	taskName := args[0]

	hours, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid hour value %q\n", args[2])
		os.Exit(1)
	}

	base := draftBase()
	g := requireDraft(base, resolveWeek(setDate))

	date, err := resolveDate(g, args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	idx := g.RowByTask(taskName)
	if idx < 0 {
		fmt.Fprintf(os.Stderr, "no task %q in this week; run `dqts task add %q` first\n", taskName, taskName)
		os.Exit(1)
	}

	g.SetHours(idx, date, hours)
	hadError := printMessages(g)
	saveDraft(base, g)

	row := g.Rows[idx]
	fmt.Printf("%s %s: %s hours (day total %s)\n",
		taskName, date, timecalc.FormatHours(row.Hours[date]), timecalc.FormatHours(g.DayTotal(date)))
	if hadError {
		os.Exit(1)
	}
	return nil
}
