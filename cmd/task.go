package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
)

var (
	taskDate      string
	taskRemoveYes bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the week's task rows",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task row to the week",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskAdd,
}

var taskRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a task row",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskRename,
}

var taskRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a task row and delete its saved entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRemove,
}

func init() {
	taskCmd.PersistentFlags().StringVar(&taskDate, "date", "", "Any date in the week to edit (YYYY-MM-DD); defaults to today's week")
	taskRemoveCmd.Flags().BoolVar(&taskRemoveYes, "yes", false, "Skip the confirmation prompt")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskRenameCmd)
	taskCmd.AddCommand(taskRemoveCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	base := draftBase()
	g := requireDraft(base, resolveWeek(taskDate))

	if g.RowByTask(name) >= 0 {
		fmt.Fprintf(os.Stderr, "task %q already exists in this week\n", name)
		os.Exit(1)
	}

	// Reuse the synthesized blank row instead of stacking empty rows.
	if idx := blankRowIndex(g); idx >= 0 {
		g.SetTaskName(idx, name)
	} else if g.AddRow() != nil {
		g.SetTaskName(len(g.Rows)-1, name)
	}
	hadError := printMessages(g)
	saveDraft(base, g)

	if g.RowByTask(name) >= 0 {
		fmt.Printf("Added task %q.\n", name)
	}
	if hadError {
		os.Exit(1)
	}
	return nil
}

func runTaskRename(cmd *cobra.Command, args []string) error {
	oldName, newName := args[0], args[1]

	base := draftBase()
	g := requireDraft(base, resolveWeek(taskDate))

	idx := g.RowByTask(oldName)
	if idx < 0 {
		fmt.Fprintf(os.Stderr, "no task %q in this week\n", oldName)
		os.Exit(1)
	}
	if g.RowByTask(newName) >= 0 {
		fmt.Fprintf(os.Stderr, "task %q already exists in this week\n", newName)
		os.Exit(1)
	}

	g.SetTaskName(idx, newName)
	hadError := printMessages(g)
	saveDraft(base, g)

	if g.Rows[idx].TaskName == newName {
		fmt.Printf("Renamed %q to %q.\n", oldName, newName)
	}
	if hadError {
		os.Exit(1)
	}
	return nil
}

func runTaskRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	base := draftBase()
	g := requireDraft(base, resolveWeek(taskDate))

	idx := g.RowByTask(name)
	if idx < 0 {
		fmt.Fprintf(os.Stderr, "no task %q in this week\n", name)
		os.Exit(1)
	}

	saved := len(g.Rows[idx].TimesheetIDs)
	if !taskRemoveYes {
		prompt := fmt.Sprintf("Remove task %q", name)
		if saved > 0 {
			prompt = fmt.Sprintf("%s and delete %d saved entries from the backend", prompt, saved)
		}
		if !confirm(prompt + "? [y/N] ") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx := context.Background()
	var err error
	if saved > 0 {
		src, _ := backendSources(ctx)
		err = g.DeleteRow(ctx, src, idx)
	} else {
		// Purely local row: no backend round-trip needed.
		err = g.DeleteRow(ctx, grid.Sources{}, idx)
	}
	hadError := printMessages(g)
	saveDraft(base, g)

	if err != nil || hadError {
		os.Exit(1)
	}
	return nil
}

// blankRowIndex finds a row with no name and no hours (the synthesized blank
// row), or -1.
func blankRowIndex(g *grid.Grid) int {
	for i, row := range g.Rows {
		if row.Empty() && !row.HasRemote() {
			return i
		}
	}
	return -1
}
