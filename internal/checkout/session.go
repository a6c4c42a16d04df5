// Package checkout drives the cashier's order-composition screen: it loads
// the catalog and recent order history, holds the cart for one checkout
// session, and submits the draft as a single order. The cart lives only as
// long as the session and is discarded on exit.
package checkout

import (
	"context"
	"fmt"
	"io"

	"github.com/tillworks/till/internal/api"
	"github.com/tillworks/till/internal/cart"
	"github.com/tillworks/till/internal/catalog"
)

// Service is the slice of the API client the checkout screen uses.
type Service interface {
	Products(ctx context.Context, query string) ([]api.Product, error)
	Orders(ctx context.Context, limit int) ([]api.Order, error)
	CreateOrder(ctx context.Context, items []api.OrderItemInput) (*api.Order, error)
}

// Session is one checkout screen. Not safe for concurrent use: the screen
// is single-threaded and the only suspension points are the remote calls.
type Session struct {
	svc        Service
	draft      *cart.Cart
	snapshot   *catalog.Snapshot
	orders     []api.Order
	orderLimit int
	out        io.Writer
}

// NewSession creates a checkout session writing its output to out.
func NewSession(svc Service, orderLimit int, out io.Writer) *Session {
	return &Session{
		svc:        svc,
		draft:      cart.New(),
		snapshot:   catalog.NewSnapshot(nil),
		orderLimit: orderLimit,
		out:        out,
	}
}

// Load fetches the catalog and recent orders concurrently. Both fetches
// complete (or fail) before Load returns, so the screen never shows
// partially loaded state. A catalog failure is fatal to the screen; an
// order-history failure is tolerated since history is display-only.
func (s *Session) Load(ctx context.Context) error {
	type productsResult struct {
		products []api.Product
		err      error
	}
	type ordersResult struct {
		orders []api.Order
		err    error
	}

	// Buffered so a late result is dropped, never applied to a torn-down
	// screen.
	prodCh := make(chan productsResult, 1)
	ordCh := make(chan ordersResult, 1)

	go func() {
		products, err := s.svc.Products(ctx, "")
		prodCh <- productsResult{products: products, err: err}
	}()
	go func() {
		orders, err := s.svc.Orders(ctx, s.orderLimit)
		ordCh <- ordersResult{orders: orders, err: err}
	}()

	prodRes := <-prodCh
	ordRes := <-ordCh

	if err := ctx.Err(); err != nil {
		return err
	}
	if prodRes.err != nil {
		return fmt.Errorf("failed to load catalog: %w", prodRes.err)
	}

	s.snapshot = catalog.NewSnapshot(prodRes.products)
	if ordRes.err == nil {
		s.orders = ordRes.orders
	} else {
		fmt.Fprintf(s.out, "note: order history unavailable: %v\n", ordRes.err)
	}
	return nil
}

// ReloadCatalog replaces the catalog snapshot with a fresh fetch. Cart
// lines referencing products that left the catalog stay in the cart and
// price at zero.
func (s *Session) ReloadCatalog(ctx context.Context) error {
	products, err := s.svc.Products(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to reload catalog: %w", err)
	}
	s.snapshot = catalog.NewSnapshot(products)
	return nil
}

// RefreshOrders refetches order history. Failures are returned but leave
// the previous history in place.
func (s *Session) RefreshOrders(ctx context.Context) error {
	orders, err := s.svc.Orders(ctx, s.orderLimit)
	if err != nil {
		return fmt.Errorf("failed to refresh orders: %w", err)
	}
	s.orders = orders
	return nil
}

// Cart returns the order draft for this session.
func (s *Session) Cart() *cart.Cart {
	return s.draft
}

// Snapshot returns the current catalog snapshot.
func (s *Session) Snapshot() *catalog.Snapshot {
	return s.snapshot
}

// RecentOrders returns the last fetched order history.
func (s *Session) RecentOrders() []api.Order {
	return s.orders
}

// Submit sends the draft as one order. On success the cart is cleared and
// the order history refreshed (best-effort); on failure the cart is left
// intact for editing and manual retry.
func (s *Session) Submit(ctx context.Context) (*api.Order, error) {
	order, err := s.draft.Submit(ctx, s.svc)
	if err != nil {
		return nil, err
	}

	// History refresh is cosmetic; the submit already succeeded.
	if err := s.RefreshOrders(ctx); err != nil {
		fmt.Fprintf(s.out, "note: %v\n", err)
	}
	return order, nil
}
