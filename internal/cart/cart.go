// Package cart implements the session-scoped shopping cart: an ordered
// list of sale positions, at most one per distinct product, with the
// item count and total price maintained incrementally so the cart badge
// rendered on every page is O(1) to read.
package cart

import (
	"github.com/romich96/AlexCoffee/internal/models"
)

// ShoppingCart holds the live sale positions for one browsing session.
// It is not safe for concurrent use; each instance belongs to exactly
// one session and is mutated by synchronous form posts only.
type ShoppingCart struct {
	// Exported so the cart survives gob encoding into the session cookie.
	Items      []models.SalePosition
	TotalQty   int     // sum of quantities, cached across mutations
	TotalPrice float64 // sum of quantity × snapshot price, cached
}

// New returns an empty cart.
func New() *ShoppingCart {
	return &ShoppingCart{}
}

// Add puts quantity units of the product into the cart. If a position
// for the product already exists its quantity is increased and the
// price snapshot is left as it was taken at the first add; re-adding
// never re-prices. Otherwise a new position is appended with the price
// snapshotted from the product's current price.
func (c *ShoppingCart) Add(product *models.Product, quantity int) error {
	if product == nil || product.ID == 0 {
		return &models.ValidationError{Field: "product", Reason: "product is required"}
	}
	if quantity < 1 {
		return &models.ValidationError{Field: "quantity", Reason: "quantity must be at least 1"}
	}

	for i := range c.Items {
		if c.Items[i].ProductID == product.ID {
			c.Items[i].Quantity += quantity
			c.TotalQty += quantity
			c.TotalPrice += float64(quantity) * c.Items[i].Price
			return nil
		}
	}

	c.Items = append(c.Items, models.SalePosition{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductURL:   product.URL,
		Quantity:     quantity,
		Price:        product.Price,
	})
	c.TotalQty += quantity
	c.TotalPrice += float64(quantity) * product.Price
	return nil
}

// Remove drops the position for the given product. Removing a product
// that is not in the cart is a no-op, not an error.
func (c *ShoppingCart) Remove(productID int64) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute()
			return
		}
	}
}

// recompute rebuilds the cached totals from the remaining positions.
// Subtracting incrementally accumulated float64 sums can leave an ulp
// residual after split adds of the same product, so removal resums.
func (c *ShoppingCart) recompute() {
	c.TotalQty = 0
	c.TotalPrice = 0
	for i := range c.Items {
		c.TotalQty += c.Items[i].Quantity
		c.TotalPrice += c.Items[i].Sum()
	}
}

// Clear empties the cart.
func (c *ShoppingCart) Clear() {
	c.Items = nil
	c.TotalQty = 0
	c.TotalPrice = 0
}

// Size returns the total item count (sum of quantities, not the number
// of distinct positions). O(1): maintained on every mutation.
func (c *ShoppingCart) Size() int {
	return c.TotalQty
}

// Total returns the cart price. Zero for an empty cart.
func (c *ShoppingCart) Total() float64 {
	return c.TotalPrice
}

// Positions returns a copy of the cart's positions in insertion order.
// Callers may not mutate the cart through the returned slice.
func (c *ShoppingCart) Positions() []models.SalePosition {
	out := make([]models.SalePosition, len(c.Items))
	copy(out, c.Items)
	return out
}

// Snapshot copies the current positions into a fresh slice for an order.
// The returned slice is independent of the cart: later cart mutations
// must not leak into a persisted order.
func (c *ShoppingCart) Snapshot() []models.SalePosition {
	return c.Positions()
}
