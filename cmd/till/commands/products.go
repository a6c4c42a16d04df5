package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
)

var (
	productsQuery string

	productCreateSKU      string
	productCreateName     string
	productCreateCategory int
	productCreatePrice    string

	productUpdateName     string
	productUpdateCategory int
	productUpdatePrice    string
	productUpdateActive   bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Browse and manage the product catalog",
	RunE:  runProductsList,
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a product to the catalog (admin)",
	RunE:  runProductsCreate,
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update PRODUCT_ID",
	Short: "Update a product (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsUpdate,
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete PRODUCT_ID",
	Short: "Remove a product from the catalog (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsDelete,
}

func init() {
	productsCmd.Flags().StringVarP(&productsQuery, "query", "q", "", "Filter products by search query")

	productsCreateCmd.Flags().StringVar(&productCreateSKU, "sku", "", "Product SKU (required)")
	productsCreateCmd.Flags().StringVar(&productCreateName, "name", "", "Product name (required)")
	productsCreateCmd.Flags().IntVar(&productCreateCategory, "category", 0, "Category ID (required)")
	productsCreateCmd.Flags().StringVar(&productCreatePrice, "price", "", "Unit price, e.g. 4.50 (required)")

	productsUpdateCmd.Flags().StringVar(&productUpdateName, "name", "", "New product name")
	productsUpdateCmd.Flags().IntVar(&productUpdateCategory, "category", 0, "New category ID")
	productsUpdateCmd.Flags().StringVar(&productUpdatePrice, "price", "", "New unit price")
	productsUpdateCmd.Flags().BoolVar(&productUpdateActive, "active", true, "Whether the product is active")

	productsCmd.AddCommand(productsCreateCmd)
	productsCmd.AddCommand(productsUpdateCmd)
	productsCmd.AddCommand(productsDeleteCmd)
	rootCmd.AddCommand(productsCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	client, store, _, err := newClient()
	if err != nil {
		return err
	}
	if _, err := requireSession(ctx, client, store); err != nil {
		return err
	}

	products, err := client.Products(ctx, productsQuery)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	_, err = render.Products(os.Stdout, products)
	return err
}

func runProductsCreate(cmd *cobra.Command, args []string) error {
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

	// Required-field validation happens before any request is sent.
	if productCreateSKU == "" || productCreateName == "" || productCreateCategory == 0 || productCreatePrice == "" {
		return printer.Error(
			"missing product fields",
			"--sku, --name, --category, and --price are all required.",
			[]string{`till products create --sku ESP-01 --name "Espresso" --category 1 --price 2.50`},
		)
	}
	if _, err := decimal.NewFromString(productCreatePrice); err != nil {
		return printer.Error(
			"invalid price",
			fmt.Sprintf("%q is not a decimal amount.", productCreatePrice),
			[]string{"Use a plain decimal like 2.50"},
		)
	}

	product, err := client.CreateProduct(ctx, api.ProductCreate{
		SKU:        productCreateSKU,
		Name:       productCreateName,
		CategoryID: productCreateCategory,
		Price:      productCreatePrice,
		IsActive:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	printer.Success("Created product #%d %s (%s)\n", product.ID, product.Name, product.Price)
	return nil
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product ID %q", args[0])
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

	// Only flags the user actually set become part of the PATCH.
	var update api.ProductUpdate
	changed := false
	if cmd.Flags().Changed("name") {
		update.Name = &productUpdateName
		changed = true
	}
	if cmd.Flags().Changed("category") {
		update.CategoryID = &productUpdateCategory
		changed = true
	}
	if cmd.Flags().Changed("price") {
		if _, err := decimal.NewFromString(productUpdatePrice); err != nil {
			return printer.Error(
				"invalid price",
				fmt.Sprintf("%q is not a decimal amount.", productUpdatePrice),
				[]string{"Use a plain decimal like 2.50"},
			)
		}
		update.Price = &productUpdatePrice
		changed = true
	}
	if cmd.Flags().Changed("active") {
		update.IsActive = &productUpdateActive
		changed = true
	}
	if !changed {
		return printer.Error(
			"nothing to update",
			"Pass at least one of --name, --category, --price, --active.",
			nil,
		)
	}

	product, err := client.UpdateProduct(ctx, productID, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	printer.Success("Updated product #%d %s\n", product.ID, product.Name)
	return nil
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	productID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product ID %q", args[0])
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

	if err := client.DeleteProduct(ctx, productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	printer.Success("Deleted product #%d\n", productID)
	return nil
}
