package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tillworks/till/internal/checkout"
	"github.com/tillworks/till/internal/printer"
	"github.com/tillworks/till/internal/render"
)

var (
	checkoutItems  []string
	checkoutSubmit bool
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Compose and submit an order",
	Long: `Open the cashier checkout screen. The catalog and recent order history
are loaded first (concurrently); then an interactive prompt accepts cart
commands: add, qty, rm, cart, submit, quit.

The cart can be pre-filled (or fully scripted with --yes) using --item:

  till checkout --item 3 --item 7:2          # pre-fill, then prompt
  till checkout --item 3 --item 7:2 --yes    # submit without prompting

The cart exists only for this session: it is cleared after a successful
submit and discarded on quit.`,
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().StringArrayVar(&checkoutItems, "item", nil, "Cart entry as PRODUCT_ID or PRODUCT_ID:QTY (repeatable)")
	checkoutCmd.Flags().BoolVarP(&checkoutSubmit, "yes", "y", false, "Submit the pre-filled cart without prompting")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	// The session context ends with the command; a request still in flight
	// at teardown has its result discarded, not applied.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, store, cfg, err := newClient()
	if err != nil {
		return err
	}

	// The guard resolves before the checkout screen loads anything.
	if _, err := requireSession(ctx, client, store); err != nil {
		return err
	}

	if checkoutSubmit && len(checkoutItems) == 0 {
		return printer.Error(
			"nothing to submit",
			"--yes requires at least one --item.",
			[]string{"till checkout --item 3:2 --yes"},
		)
	}

	sess := checkout.NewSession(client, cfg.OrderLimit, os.Stdout)

	printer.Step("Loading catalog and order history...\n")
	if err := sess.Load(ctx); err != nil {
		return err
	}

	for _, spec := range checkoutItems {
		productID, quantity, err := checkout.ParseItemSpec(spec)
		if err != nil {
			return printer.Error("invalid --item", err.Error(), []string{"Use PRODUCT_ID or PRODUCT_ID:QTY, e.g. --item 3:2"})
		}
		sess.Cart().AddItem(productID)
		if quantity > 1 {
			if err := sess.Cart().SetQuantity(productID, quantity); err != nil {
				return fmt.Errorf("failed to set quantity for product %d: %w", productID, err)
			}
		}
	}

	if checkoutSubmit {
		if err := render.Cart(os.Stdout, sess.Cart(), sess.Snapshot()); err != nil {
			return err
		}
		order, err := sess.Submit(ctx)
		if err != nil {
			// The cart would have been kept for a retry, but a scripted
			// checkout has no interactive retry: surface and exit.
			return err
		}
		printer.Success("Order #%d created (total %s)\n", order.ID, order.TotalAmount)
		return nil
	}

	if len(checkoutItems) > 0 {
		if err := render.Cart(os.Stdout, sess.Cart(), sess.Snapshot()); err != nil {
			return err
		}
	}
	return sess.Run(ctx, os.Stdin)
}
