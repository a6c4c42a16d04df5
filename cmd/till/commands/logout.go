package commands

import (
	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and erase the stored credential",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	client, store, _, err := newClient()
	if err != nil {
		return err
	}

	// Sign-out is purely local and available from any state; no request
	// is issued.
	guard := session.NewGuard(store, client)
	if err := guard.SignOut(); err != nil {
		return err
	}

	printer.Success("Signed out\n")
	return nil
}
