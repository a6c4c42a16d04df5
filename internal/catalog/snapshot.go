// Package catalog holds the most recently fetched set of purchasable
// products. A snapshot is used only for display and total estimation; the
// server's computed prices on a persisted order are always authoritative.
package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/tillworks/till/internal/api"
)

// Snapshot is an immutable view of the catalog at fetch time.
type Snapshot struct {
	products []api.Product
	byID     map[int]api.Product
	prices   map[int]decimal.Decimal
}

// NewSnapshot builds a snapshot from a fetched product list. Prices are
// parsed once here; a product with an unparseable price contributes zero,
// the same as a product missing from the snapshot entirely.
func NewSnapshot(products []api.Product) *Snapshot {
	s := &Snapshot{
		products: products,
		byID:     make(map[int]api.Product, len(products)),
		prices:   make(map[int]decimal.Decimal, len(products)),
	}
	for _, p := range products {
		s.byID[p.ID] = p
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			price = decimal.Zero
		}
		s.prices[p.ID] = price
	}
	return s
}

// Price returns the snapshot price for a product, or zero when the product
// is not in the snapshot. Never fails: a cart line referencing a product
// that has since left the catalog is tolerated, not an error.
func (s *Snapshot) Price(productID int) decimal.Decimal {
	if price, ok := s.prices[productID]; ok {
		return price
	}
	return decimal.Zero
}

// Product looks up a product by ID.
func (s *Snapshot) Product(productID int) (api.Product, bool) {
	p, ok := s.byID[productID]
	return p, ok
}

// Products returns all products in fetch order.
func (s *Snapshot) Products() []api.Product {
	return s.products
}

// Len returns the number of products in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.products)
}
