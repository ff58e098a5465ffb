package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkDate string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the week against the submission rules",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkDate, "date", "", "Any date in the week to check (YYYY-MM-DD); defaults to today's week")
}

func runCheck(cmd *cobra.Command, args []string) error {
	base := draftBase()
	g := requireDraft(base, resolveWeek(checkDate))

	rep := g.ValidateForSubmit()
	if rep.OK {
		fmt.Println("Week is complete and ready to submit.")
		return nil
	}

	fmt.Fprintf(os.Stderr, "%d problem(s) found:\n", len(rep.Problems))
	for _, p := range rep.Problems {
		fmt.Fprintf(os.Stderr, "  - %s\n", p)
	}
	os.Exit(1)
	return nil
}
