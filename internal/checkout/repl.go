package checkout

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tillworks/till/internal/cart"
	"github.com/tillworks/till/internal/render"
)

const prompt = "till> "

// Run reads checkout commands from in until "quit" or end of input. Every
// failure is turned into a message on the screen; nothing escapes the loop
// except input errors and context cancellation.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintf(s.out, "Checkout ready: %d products in catalog. Type 'help' for commands.\n", s.snapshot.Len())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if s.dispatch(ctx, line) {
			break
		}
	}
	return scanner.Err()
}

// dispatch executes one checkout command. Returns true when the session
// should end.
func (s *Session) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "help":
		s.printHelp()
	case "products":
		if _, err := render.Products(s.out, s.snapshot.Products()); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	case "add":
		s.handleAdd(args)
	case "qty":
		s.handleQuantity(args)
	case "rm":
		s.handleRemove(args)
	case "cart":
		if err := render.Cart(s.out, s.draft, s.snapshot); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	case "orders":
		if err := render.Orders(s.out, s.orders); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	case "reload":
		if err := s.ReloadCatalog(ctx); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		} else {
			fmt.Fprintf(s.out, "Catalog reloaded: %d products\n", s.snapshot.Len())
		}
	case "submit":
		s.handleSubmit(ctx)
	case "quit", "q", "exit":
		if !s.draft.IsEmpty() {
			fmt.Fprintf(s.out, "Discarding cart with %d line(s)\n", s.draft.Len())
		}
		return true
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type 'help' for commands.\n", command)
	}
	return false
}

func (s *Session) handleAdd(args []string) {
	productID, ok := s.parseProductID(args, "add PRODUCT_ID")
	if !ok {
		return
	}

	s.draft.AddItem(productID)

	if p, found := s.snapshot.Product(productID); found {
		fmt.Fprintf(s.out, "Added %s (x%d)\n", p.Name, s.draft.Quantity(productID))
	} else {
		fmt.Fprintf(s.out, "Added product %d (x%d) - not in catalog, priced at 0.00\n",
			productID, s.draft.Quantity(productID))
	}
}

func (s *Session) handleQuantity(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: qty PRODUCT_ID QUANTITY")
		return
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid product ID %q\n", args[0])
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid quantity %q\n", args[1])
		return
	}

	if err := s.draft.SetQuantity(productID, quantity); err != nil {
		fmt.Fprintf(s.out, "Product %d is not in the cart. Use 'add %d' first.\n", productID, productID)
		return
	}
	fmt.Fprintf(s.out, "Quantity for product %d is now %d\n", productID, s.draft.Quantity(productID))
}

func (s *Session) handleRemove(args []string) {
	productID, ok := s.parseProductID(args, "rm PRODUCT_ID")
	if !ok {
		return
	}
	if err := s.draft.Remove(productID); err != nil {
		fmt.Fprintf(s.out, "Product %d is not in the cart\n", productID)
		return
	}
	fmt.Fprintf(s.out, "Removed product %d\n", productID)
}

func (s *Session) handleSubmit(ctx context.Context) {
	order, err := s.Submit(ctx)
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			fmt.Fprintln(s.out, "Cart is empty - nothing to submit")
			return
		}
		// Cart is untouched; the cashier can edit and resubmit.
		fmt.Fprintf(s.out, "Submit failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Order #%d created (total %s)\n", order.ID, order.TotalAmount)
}

func (s *Session) parseProductID(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintf(s.out, "Usage: %s\n", usage)
		return 0, false
	}
	productID, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Invalid product ID %q\n", args[0])
		return 0, false
	}
	return productID, true
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out, `Commands:
  products            show the catalog
  add PRODUCT_ID      add one unit of a product to the cart
  qty PRODUCT_ID N    set a line's quantity (minimum 1)
  rm PRODUCT_ID       remove a line from the cart
  cart                show the cart and estimated total
  orders              show recent orders
  reload              refetch the catalog snapshot
  submit              submit the cart as one order
  quit                leave checkout (discards the cart)
`)
}

// ParseItemSpec parses a scripted cart entry of the form "ID" or "ID:QTY".
// Quantity defaults to 1 and is clamped to a floor of 1 like any other
// quantity edit.
func ParseItemSpec(spec string) (productID, quantity int, err error) {
	idPart, qtyPart, hasQty := strings.Cut(spec, ":")

	productID, err = strconv.Atoi(strings.TrimSpace(idPart))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item spec %q: product ID must be a number", spec)
	}

	quantity = 1
	if hasQty {
		quantity, err = strconv.Atoi(strings.TrimSpace(qtyPart))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid item spec %q: quantity must be a number", spec)
		}
		if quantity < 1 {
			quantity = 1
		}
	}
	return productID, quantity, nil
}
