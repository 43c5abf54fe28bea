package entity

import "time"

// Cart is the per-user collection of line items pending checkout, keyed by
// the owning user's email; at most one cart exists per email.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string     `bson:"email" json:"email"`
	CartItems []CartItem `bson:"cart_items" json:"cart_items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem is one (product snapshot, quantity) pair. The embedded product is
// a denormalized copy: price changes after add-to-cart do not retroactively
// affect the cart.
type CartItem struct {
	Product  Product   `bson:"product" json:"product"`
	Quantity int       `bson:"quantity" json:"quantity"`
	AddedAt  time.Time `bson:"added_at" json:"added_at"`
}

// Clone returns a deep copy of the cart; the line item slice is not shared,
// so callers can mutate the copy freely.
func (c *Cart) Clone() *Cart {
	cp := *c
	cp.CartItems = append([]CartItem(nil), c.CartItems...)
	return &cp
}

// ItemIndex returns the index of the line item holding productID, or -1.
func (c *Cart) ItemIndex(productID string) int {
	for i := range c.CartItems {
		if c.CartItems[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// HasItem reports whether the cart already contains a line item for productID.
func (c *Cart) HasItem(productID string) bool {
	return c.ItemIndex(productID) >= 0
}

// AddItem appends a new line item with a product snapshot.
func (c *Cart) AddItem(p Product, quantity int) {
	c.CartItems = append(c.CartItems, CartItem{
		Product:  p,
		Quantity: quantity,
		AddedAt:  time.Now(),
	})
}

// SetQuantity overwrites the quantity of the line item holding productID.
// Returns false when the product is not in the cart.
func (c *Cart) SetQuantity(productID string, quantity int) bool {
	i := c.ItemIndex(productID)
	if i < 0 {
		return false
	}
	c.CartItems[i].Quantity = quantity
	return true
}

// RemoveItem drops every line item holding productID. Returns false when no
// item matched.
func (c *Cart) RemoveItem(productID string) bool {
	kept := c.CartItems[:0]
	removed := false
	for _, it := range c.CartItems {
		if it.Product.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	c.CartItems = kept
	return removed
}

// Clear empties the line item collection.
func (c *Cart) Clear() {
	c.CartItems = []CartItem{}
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.CartItems) == 0
}

// Total computes the sum over line items of quantity x snapshot cost.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.CartItems {
		total += float64(it.Quantity) * it.Product.Cost
	}
	return total
}
