package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dqts",
	Short: "DQ timesheet – weekly timesheet entry from the command line",
	Long: `dqts maintains your weekly DQ timesheet: edit hours per task and day,
validate them against the holiday and leave calendars, save drafts to the
DQ backend, and submit the week for manager approval.
Local working state is stored as human-readable JSON files in ~/.dqts/.`,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(loginCmd)
}
