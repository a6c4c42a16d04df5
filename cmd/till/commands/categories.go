package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
)

var (
	categoryCreateName string

	categoryUpdateName   string
	categoryUpdateActive bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Browse and manage product categories (admin)",
	RunE:  runCategoriesList,
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a category (admin)",
	RunE:  runCategoriesCreate,
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update CATEGORY_ID",
	Short: "Rename or toggle a category (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesUpdate,
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete CATEGORY_ID",
	Short: "Remove a category (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoriesDelete,
}

func init() {
	categoriesCreateCmd.Flags().StringVar(&categoryCreateName, "name", "", "Category name (required)")

	categoriesUpdateCmd.Flags().StringVar(&categoryUpdateName, "name", "", "New category name")
	categoriesUpdateCmd.Flags().BoolVar(&categoryUpdateActive, "active", true, "Whether the category is active")

	categoriesCmd.AddCommand(categoriesCreateCmd)
	categoriesCmd.AddCommand(categoriesUpdateCmd)
	categoriesCmd.AddCommand(categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
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

	categories, err := client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	return render.Categories(os.Stdout, categories)
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
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

	if categoryCreateName == "" {
		return printer.Error(
			"missing category name",
			"--name is required.",
			[]string{`till categories create --name "Hot drinks"`},
		)
	}

	category, err := client.CreateCategory(ctx, api.CategoryCreate{
		Name:     categoryCreateName,
		IsActive: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	printer.Success("Created category #%d %s\n", category.ID, category.Name)
	return nil
}

func runCategoriesUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	categoryID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category ID %q", args[0])
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

	var update api.CategoryUpdate
	changed := false
	if cmd.Flags().Changed("name") {
		update.Name = &categoryUpdateName
		changed = true
	}
	if cmd.Flags().Changed("active") {
		update.IsActive = &categoryUpdateActive
		changed = true
	}
	if !changed {
		return printer.Error(
			"nothing to update",
			"Pass at least one of --name, --active.",
			nil,
		)
	}

	category, err := client.UpdateCategory(ctx, categoryID, update)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	printer.Success("Updated category #%d %s\n", category.ID, category.Name)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	categoryID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category ID %q", args[0])
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

	if err := client.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	printer.Success("Deleted category #%d\n", categoryID)
	return nil
}
