package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/config"
	"github.com/dq-aem-sibaram/dq-timesheet/internal/dqapi"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the DQ backend",
	Args:  cobra.NoArgs,
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if _, _, err := dqapi.Authenticate(context.Background(), cfg.Auth.IssuerURL, cfg.Auth.ClientID); err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Signed in.")
	return nil
}
