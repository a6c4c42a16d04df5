package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/catalog"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "View and adjust stock levels (admin)",
	RunE:  runInventoryList,
}

var inventorySetCmd = &cobra.Command{
	Use:   "set PRODUCT_ID QUANTITY",
	Short: "Set the stock level for a product (admin)",
	Args:  cobra.ExactArgs(2),
	RunE:  runInventorySet,
}

func init() {
	inventoryCmd.AddCommand(inventorySetCmd)
	rootCmd.AddCommand(inventoryCmd)
}

func runInventoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	// Stock levels and the catalog load concurrently; names come from the
	// catalog snapshot.
	type inventoryResult struct {
		levels []api.Inventory
		err    error
	}
	type productsResult struct {
		products []api.Product
		err      error
	}
	invCh := make(chan inventoryResult, 1)
	prodCh := make(chan productsResult, 1)

	go func() {
		levels, err := client.Inventory(ctx)
		invCh <- inventoryResult{levels: levels, err: err}
	}()
	go func() {
		products, err := client.Products(ctx, "")
		prodCh <- productsResult{products: products, err: err}
	}()

	invRes := <-invCh
	prodRes := <-prodCh
	if invRes.err != nil {
		return fmt.Errorf("failed to load inventory: %w", invRes.err)
	}

	var snapshot *catalog.Snapshot
	if prodRes.err == nil {
		snapshot = catalog.NewSnapshot(prodRes.products)
	}
	return render.InventoryLevels(os.Stdout, invRes.levels, snapshot)
}

func runInventorySet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product ID %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	if quantity < 0 {
		return printer.Error(
			"invalid quantity",
			"Stock levels cannot be negative.",
			nil,
		)
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

	level, err := client.SetInventory(ctx, productID, quantity)
	if err != nil {
		return fmt.Errorf("failed to set inventory: %w", err)
	}

	printer.Success("Product #%d stock is now %d\n", level.ProductID, level.Quantity)
	return nil
}
