package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillworks/till/internal/api"
)

// fakeOrderService records the submitted items and returns a canned result.
type fakeOrderService struct {
	items []api.OrderItemInput
	order *api.Order
	err   error
}

func (f *fakeOrderService) CreateOrder(ctx context.Context, items []api.OrderItemInput) (*api.Order, error) {
	f.items = items
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func TestSubmit(t *testing.T) {
	t.Run("refuses an empty cart before any request", func(t *testing.T) {
		svc := &fakeOrderService{}
		c := New()

		_, err := c.Submit(context.Background(), svc)
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Nil(t, svc.items, "no request should have been sent")
	})

	t.Run("sends the line sequence verbatim and clears on success", func(t *testing.T) {
		svc := &fakeOrderService{order: &api.Order{ID: 17, TotalAmount: "25.50"}}

		c := New()
		c.AddItem(1)
		c.AddItem(2)
		c.AddItem(1)

		order, err := c.Submit(context.Background(), svc)
		require.NoError(t, err)
		assert.Equal(t, 17, order.ID)

		assert.Equal(t, []api.OrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		}, svc.items)
		assert.True(t, c.IsEmpty(), "cart must be cleared after a successful submit")
	})

	t.Run("leaves the cart intact on failure", func(t *testing.T) {
		svc := &fakeOrderService{err: errors.New("service unavailable")}

		c := New()
		c.AddItem(1)
		c.AddItem(2)
		before := c.Lines()

		_, err := c.Submit(context.Background(), svc)
		require.Error(t, err)
		assert.Equal(t, before, c.Lines(), "cart must be untouched so the cashier can retry")
	})
}
