package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
)

var reportDate string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the daily sales report (admin)",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Report date as YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if reportDate != "" {
		if _, err := time.Parse("2006-01-02", reportDate); err != nil {
			return printer.Error(
				"invalid date",
				fmt.Sprintf("%q is not a YYYY-MM-DD date.", reportDate),
				[]string{"till report --date 2026-08-30"},
			)
		}
	}

	client, store, _, err := newClient()
	if err != nil {
		return err
	}
	principal, err := requireSession(ctx, client, store)
	if err != nil {
		return err
	}
	if err := requireRole(principal, api.RoleAdmin); err != nil {
		return err
	}

	report, err := client.DailyReport(ctx, reportDate)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}
	return render.Report(os.Stdout, report)
}
