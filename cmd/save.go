package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var saveDate string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the week's local edits to the backend",
	Args:  cobra.NoArgs,
	RunE:  runSave,
}

func init() {
	saveCmd.Flags().StringVar(&saveDate, "date", "", "Any date in the week to save (YYYY-MM-DD); defaults to today's week")
}

func runSave(cmd *cobra.Command, args []string) error {
	base := draftBase()
	g := requireDraft(base, resolveWeek(saveDate))

	ctx := context.Background()
	src, cfg := backendSources(ctx)

	err := g.SaveAll(ctx, src, cfg.Backend.TaskDescription)
	hadError := printMessages(g)
	saveDraft(base, g)

	if err != nil || hadError {
		os.Exit(1)
	}
	printGrid(g)
	return nil
}
