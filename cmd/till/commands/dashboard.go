package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
	"github.com/tillworks/till/internal/session"
)

const dashboardOrderLimit = 5

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a summary of the store",
	Long: `Show the signed-in user, the catalog size, and the most recent orders.

The product and order fetches run concurrently; the dashboard is rendered
only once both have completed.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, store, _, err := newClient()
	if err != nil {
		return err
	}

	// Guard resolution completes before any screen content is fetched.
	principal, err := requireSession(ctx, client, store)
	if err != nil {
		return err
	}

	type productsResult struct {
		products []api.Product
		err      error
	}
	type ordersResult struct {
		orders []api.Order
		err    error
	}
	prodCh := make(chan productsResult, 1)
	ordCh := make(chan ordersResult, 1)

	go func() {
		products, err := client.Products(ctx, "")
		prodCh <- productsResult{products: products, err: err}
	}()
	go func() {
		orders, err := client.Orders(ctx, dashboardOrderLimit)
		ordCh <- ordersResult{orders: orders, err: err}
	}()

	prodRes := <-prodCh
	ordRes := <-ordCh
	if prodRes.err != nil {
		return fmt.Errorf("failed to load products: %w", prodRes.err)
	}
	if ordRes.err != nil {
		return fmt.Errorf("failed to load orders: %w", ordRes.err)
	}

	printer.Printf("Signed in as %s (%s)\n", principal.Email, principal.Role)
	printer.Printf("Products:      %d\n", len(prodRes.products))
	printer.Printf("Recent orders: %d\n\n", len(ordRes.orders))

	if err := render.Orders(os.Stdout, ordRes.orders); err != nil {
		return err
	}

	printer.Println()
	visible := session.FilterMenu(session.Menu(), principal.Role)
	render.Menu(os.Stdout, visible, "/dashboard")
	return nil
}
