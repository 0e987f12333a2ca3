package domain

import "github.com/shopspring/decimal"

// Cart holds the line items for one active session. All items share a
// single seller, or the cart is empty. Items keep insertion order for
// display; order is irrelevant for totals.
type Cart struct {
	Items        []LineItem `json:"items"`
	AppliedPromo string     `json:"applied_promo,omitempty"`
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{Items: []LineItem{}}
}

// IsEmpty reports whether the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SellerID returns the seller all items belong to, or "" for an empty cart
func (c *Cart) SellerID() string {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].SellerID
}

// ConflictsWith reports whether adding item would violate the
// single-seller invariant
func (c *Cart) ConflictsWith(item LineItem) bool {
	return !c.IsEmpty() && c.SellerID() != item.SellerID
}

// Upsert sets the quantity for item's product. Quantity 0 removes the
// line item; an existing item has its quantity replaced in place, never
// duplicated. Callers must have checked quantity and seller first.
func (c *Cart) Upsert(item LineItem, quantity int) {
	if quantity == 0 {
		c.Remove(item.ProductID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity = quantity
			return
		}
	}
	item.Quantity = quantity
	c.Items = append(c.Items, item)
}

// Remove deletes the line item for productID, a no-op when absent
func (c *Cart) Remove(productID string) {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// ReplaceWith clears the cart and inserts a single new line item. This is
// the only path that changes a non-empty cart's seller.
func (c *Cart) ReplaceWith(item LineItem, quantity int) {
	c.Clear()
	c.Upsert(item, quantity)
}

// Clear empties the cart and drops any applied promo
func (c *Cart) Clear() {
	c.Items = []LineItem{}
	c.AppliedPromo = ""
}

// Subtotal sums unit price times quantity over all line items
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Snapshot returns a deep copy of the line items, safe to hold after the
// live cart mutates
func (c *Cart) Snapshot() []LineItem {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return items
}
