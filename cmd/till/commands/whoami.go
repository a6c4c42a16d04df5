package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
	"github.com/tillworks/till/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in principal and available screens",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, store, _, err := newClient()
	if err != nil {
		return err
	}

	principal, err := requireSession(ctx, client, store)
	if err != nil {
		return err
	}

	printer.Printf("Email:  %s\n", principal.Email)
	printer.Printf("Role:   %s\n", principal.Role)
	printer.Printf("Active: %v\n", principal.IsActive)

	if cred, err := store.Get(); err == nil && cred != nil && cred.ExpiresAt != "" {
		printer.Printf("Token expires: %s\n", cred.ExpiresAt)
	}

	printer.Println()
	printer.Println("Available screens:")
	visible := session.FilterMenu(session.Menu(), principal.Role)
	render.Menu(os.Stdout, visible, "")
	return nil
}
