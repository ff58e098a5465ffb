package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
)

var (
	weekDate string
	weekPrev bool
	weekNext bool
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Fetch and show the weekly timesheet register",
	Args:  cobra.NoArgs,
	RunE:  runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekDate, "date", "", "Any date in the week to load (YYYY-MM-DD); defaults to today")
	weekCmd.Flags().BoolVar(&weekPrev, "prev", false, "Load the previous week")
	weekCmd.Flags().BoolVar(&weekNext, "next", false, "Load the next week")
}

func runWeek(cmd *cobra.Command, args []string) error {
	weekStart := resolveWeek(weekDate)
	if weekPrev {
		weekStart = weekStart.AddDate(0, 0, -7)
	}
	if weekNext {
		weekStart = weekStart.AddDate(0, 0, 7)
	}

	ctx := context.Background()
	src, _ := backendSources(ctx)

	g := grid.LoadWeek(ctx, weekStart, src)
	printMessages(g)

	base := draftBase()
	saveDraft(base, g)

	printGrid(g)
	return nil
}
