// Package render formats POS data for terminal display. Every function
// writes to an io.Writer so command output can be captured in tests.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/cart"
	"github.com/tillworks/till/internal/catalog"
	"github.com/tillworks/till/internal/session"
)

// Products writes the catalog as a table. Returns the number of rows.
func Products(w io.Writer, products []api.Product) (int, error) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products found")
		return 0, nil
	}

	table := tablewriter.NewTable(w)
	table.Header("ID", "SKU", "NAME", "CATEGORY", "PRICE", "ACTIVE")
	for _, p := range products {
		table.Append([]string{
			strconv.Itoa(p.ID),
			p.SKU,
			p.Name,
			strconv.Itoa(p.CategoryID),
			p.Price,
			formatBool(p.IsActive),
		})
	}
	if err := table.Render(); err != nil {
		return 0, fmt.Errorf("failed to render product table: %w", err)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(products), plural(len(products), "product", "products"))
	return len(products), nil
}

// Categories writes the category list as a table.
func Categories(w io.Writer, categories []api.Category) error {
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories found")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("ID", "NAME", "ACTIVE", "CREATED")
	for _, c := range categories {
		table.Append([]string{
			strconv.Itoa(c.ID),
			c.Name,
			formatBool(c.IsActive),
			formatTimestamp(c.CreatedAt),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render category table: %w", err)
	}
	return nil
}

// InventoryLevels writes stock levels as a table. Product names are
// resolved from the snapshot when available.
func InventoryLevels(w io.Writer, levels []api.Inventory, snapshot *catalog.Snapshot) error {
	if len(levels) == 0 {
		fmt.Fprintln(w, "No inventory records found")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("PRODUCT", "NAME", "QUANTITY", "UPDATED")
	for _, inv := range levels {
		name := "-"
		if snapshot != nil {
			if p, ok := snapshot.Product(inv.ProductID); ok {
				name = p.Name
			}
		}
		table.Append([]string{
			strconv.Itoa(inv.ProductID),
			name,
			strconv.Itoa(inv.Quantity),
			formatTimestamp(inv.UpdatedAt),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render inventory table: %w", err)
	}
	return nil
}

// Orders writes order history as a table, newest first as returned by the
// service.
func Orders(w io.Writer, orders []api.Order) error {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("ORDER", "ITEMS", "TOTAL", "CREATED")
	for _, o := range orders {
		table.Append([]string{
			fmt.Sprintf("#%d", o.ID),
			strconv.Itoa(len(o.Items)),
			o.TotalAmount,
			formatTimestamp(o.CreatedAt),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render order table: %w", err)
	}
	return nil
}

// OrderDetail writes one order with its lines.
func OrderDetail(w io.Writer, order *api.Order) error {
	fmt.Fprintf(w, "Order #%d\n", order.ID)
	fmt.Fprintf(w, "Created: %s\n", formatTimestamp(order.CreatedAt))
	fmt.Fprintf(w, "Total:   %s\n\n", order.TotalAmount)

	table := tablewriter.NewTable(w)
	table.Header("PRODUCT", "QTY", "UNIT PRICE", "LINE TOTAL")
	for _, item := range order.Items {
		table.Append([]string{
			strconv.Itoa(item.ProductID),
			strconv.Itoa(item.Quantity),
			item.UnitPrice,
			item.LineTotal,
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render order detail: %w", err)
	}
	return nil
}

// Report writes a daily sales report.
func Report(w io.Writer, report *api.DailyReport) error {
	fmt.Fprintf(w, "Daily report for %s\n", report.Date)
	fmt.Fprintf(w, "Orders: %d\n", report.OrderCount)
	fmt.Fprintf(w, "Total:  %s\n", report.TotalAmount)

	if len(report.TopProducts) == 0 {
		fmt.Fprintln(w, "\nNo sales recorded")
		return nil
	}

	fmt.Fprintln(w)
	table := tablewriter.NewTable(w)
	table.Header("PRODUCT", "NAME", "QTY SOLD", "TOTAL")
	for _, tp := range report.TopProducts {
		table.Append([]string{
			strconv.Itoa(tp.ProductID),
			tp.Name,
			strconv.Itoa(tp.Quantity),
			tp.Total,
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render report table: %w", err)
	}
	return nil
}

// Cart writes the current order draft with per-line and running totals.
// The total is recomputed here from the snapshot on every render; it is an
// estimate only, since pricing authority is server-side.
func Cart(w io.Writer, draft *cart.Cart, snapshot *catalog.Snapshot) error {
	if draft.IsEmpty() {
		fmt.Fprintln(w, "Cart is empty")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("PRODUCT", "NAME", "QTY", "UNIT PRICE", "LINE TOTAL")
	for _, line := range draft.Lines() {
		name := "(no longer in catalog)"
		if p, ok := snapshot.Product(line.ProductID); ok {
			name = p.Name
		}
		price := snapshot.Price(line.ProductID)
		lineTotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		table.Append([]string{
			strconv.Itoa(line.ProductID),
			name,
			strconv.Itoa(line.Quantity),
			price.StringFixed(2),
			lineTotal.StringFixed(2),
		})
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render cart: %w", err)
	}

	fmt.Fprintf(w, "\nEstimated total: %s\n", draft.Total(snapshot).StringFixed(2))
	return nil
}

// Menu writes the role-filtered navigation, marking the active entry.
func Menu(w io.Writer, links []session.Link, activePath string) {
	for _, link := range links {
		marker := " "
		if link.Path == activePath {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-12s %s\n", marker, link.Label, link.Path)
	}
}

// formatBool renders a boolean as yes/no for table cells.
func formatBool(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// formatTimestamp renders an RFC3339 timestamp as relative age ("2m ago").
// Unparseable values are shown as-is.
func formatTimestamp(value string) string {
	if value == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
