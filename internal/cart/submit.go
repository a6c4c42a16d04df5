package cart

import (
	"context"
	"fmt"

	"github.com/tillworks/till/internal/api"
)

// OrderService is the one remote call a cart submission depends on.
type OrderService interface {
	CreateOrder(ctx context.Context, items []api.OrderItemInput) (*api.Order, error)
}

// Submit sends the current line sequence as one atomic order-creation
// request. On success the cart is cleared unconditionally and the persisted
// order is returned. On failure the cart is left exactly as it was, so the
// cashier can edit and retry; nothing is retried automatically.
func (c *Cart) Submit(ctx context.Context, svc OrderService) (*api.Order, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]api.OrderItemInput, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, api.OrderItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	order, err := svc.CreateOrder(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("order submission failed: %w", err)
	}

	c.Clear()
	return order, nil
}
