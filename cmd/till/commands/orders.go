package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/render"
)

var ordersLimit int

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show recent orders",
	RunE:  runOrdersList,
}

var ordersGetCmd = &cobra.Command{
	Use:   "get ORDER_ID",
	Short: "Show one order with its lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runOrdersGet,
}

func init() {
	ordersCmd.Flags().IntVarP(&ordersLimit, "limit", "l", 0, "Number of orders to show (default from config)")
	ordersCmd.AddCommand(ordersGetCmd)
	rootCmd.AddCommand(ordersCmd)
}

func runOrdersList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, store, cfg, err := newClient()
	if err != nil {
		return err
	}
	if _, err := requireSession(ctx, client, store); err != nil {
		return err
	}

	limit := ordersLimit
	if limit <= 0 {
		limit = cfg.OrderLimit
	}

	orders, err := client.Orders(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list orders: %w", err)
	}
	return render.Orders(os.Stdout, orders)
}

func runOrdersGet(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	orderID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid order ID %q", args[0])
	}

	client, store, _, err := newClient()
	if err != nil {
		return err
	}
	if _, err := requireSession(ctx, client, store); err != nil {
		return err
	}

	order, err := client.Order(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}
	return render.OrderDetail(os.Stdout, order)
}
