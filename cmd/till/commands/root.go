package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

var (
	// configPath overrides the default till.yml location.
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "till",
	Short: "Till - terminal client for the Codex POS service",
	Long: `Till is a point-of-sale terminal client. It signs a staff member in,
gates role-specific screens behind a session check, and lets a cashier
compose an order from the product catalog and submit it.

All business logic (pricing, inventory deduction, reporting) lives on the
POS service; till is the counter-side view of it.`,
	Version: version,
	// If no subcommand is specified, show help instead of silently succeeding
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to till.yml (default: user config dir)")
}
