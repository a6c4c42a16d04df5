// Package cart implements the in-memory order draft for one checkout
// session. A cart is an ordered sequence of lines in first-added order,
// with at most one line per product. It is never persisted: it is discarded
// when the screen is torn down and cleared only after a successful submit.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tillworks/till/internal/catalog"
)

// ErrEmptyCart is returned when submitting a cart with no lines. The
// refusal happens at the interface level, before any request is sent.
var ErrEmptyCart = errors.New("cart is empty")

// ErrNotInCart is returned when updating or removing a product that has no
// line in the cart.
var ErrNotInCart = errors.New("product is not in the cart")

// Line is one draft order line. Quantity is always at least 1.
type Line struct {
	ProductID int
	Quantity  int
}

// Cart is the order draft. The zero value is not usable; call New.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of a product. An existing line for the product has
// its quantity incremented; otherwise a new line is appended, preserving
// the order of existing lines. AddItem never fails.
func (c *Cart) AddItem(productID int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{ProductID: productID, Quantity: 1})
}

// SetQuantity sets the quantity of an existing line. Values below 1 are
// clamped to 1: dropping a line is always the explicit Remove operation,
// never a side effect of a quantity edit.
func (c *Cart) SetQuantity(productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrNotInCart
}

// Remove deletes a product's line entirely. The order of the remaining
// lines is preserved.
func (c *Cart) Remove(productID int) error {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrNotInCart
}

// Lines returns a copy of the cart's lines in first-added order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len returns the number of lines in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear removes every line.
func (c *Cart) Clear() {
	c.lines = nil
}

// Quantity returns the quantity for a product, or 0 when it has no line.
func (c *Cart) Quantity(productID int) int {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Total computes the running total against the given catalog snapshot.
// It is a pure derived value, recomputed on every call rather than cached,
// so it always reflects the live snapshot. A line whose product is no
// longer in the snapshot contributes exactly zero.
func (c *Cart) Total(snapshot *catalog.Snapshot) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		price := snapshot.Price(line.ProductID)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
