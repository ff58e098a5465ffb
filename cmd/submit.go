package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	submitDate string
	submitYes  bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the week for manager approval",
	Long: `submit validates the full week, flushes any unsaved edits, and submits
every saved entry for manager approval. Once submitted, the week is locked
until a manager rejects it.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitDate, "date", "", "Any date in the week to submit (YYYY-MM-DD); defaults to today's week")
	submitCmd.Flags().BoolVar(&submitYes, "yes", false, "Skip the confirmation prompt")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	base := draftBase()
	g := requireDraft(base, resolveWeek(submitDate))

	// Gate the confirmation on a passing validation so the user is not asked
	// to confirm a submission that cannot succeed.
	rep := g.ValidateForSubmit()
	if !rep.OK {
		fmt.Fprintf(os.Stderr, "%d problem(s) must be fixed before submitting:\n", len(rep.Problems))
		for _, p := range rep.Problems {
			fmt.Fprintf(os.Stderr, "  - %s\n", p)
		}
		os.Exit(1)
	}

	if !submitYes {
		if !confirm("Submit this week for approval? Entries cannot be edited afterwards. [y/N] ") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	ctx := context.Background()
	src, cfg := backendSources(ctx)
	settle := time.Duration(cfg.Submit.SettleDelaySeconds) * time.Second

	err := g.Submit(ctx, src, cfg.Backend.TaskDescription, settle)
	hadError := printMessages(g)
	saveDraft(base, g)

	if err != nil || hadError {
		os.Exit(1)
	}
	printGrid(g)
	return nil
}
