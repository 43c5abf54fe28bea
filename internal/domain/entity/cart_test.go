package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cartWith(items ...CartItem) *Cart {
	return &Cart{Email: "a@example.com", CartItems: items}
}

func item(id string, cost float64, qty int) CartItem {
	return CartItem{Product: Product{ID: id, Cost: cost}, Quantity: qty}
}

func TestCartHasItem(t *testing.T) {
	c := cartWith(item("p1", 10, 1))

	assert.True(t, c.HasItem("p1"))
	assert.False(t, c.HasItem("p2"))
	assert.False(t, cartWith().HasItem("p1"))
}

func TestCartAddItemSnapshotsProduct(t *testing.T) {
	c := cartWith()
	p := Product{ID: "p1", Name: "Keyboard", Cost: 80}
	c.AddItem(p, 2)

	// mutate the catalog copy after the add
	p.Cost = 999

	assert.Len(t, c.CartItems, 1)
	assert.Equal(t, float64(80), c.CartItems[0].Product.Cost)
	assert.Equal(t, 2, c.CartItems[0].Quantity)
	assert.False(t, c.CartItems[0].AddedAt.IsZero())
}

func TestCartSetQuantity(t *testing.T) {
	c := cartWith(item("p1", 10, 1))

	assert.True(t, c.SetQuantity("p1", 7))
	assert.Equal(t, 7, c.CartItems[0].Quantity)
	assert.False(t, c.SetQuantity("p2", 3))
}

func TestCartRemoveItem(t *testing.T) {
	c := cartWith(item("p1", 10, 1), item("p2", 20, 2))

	assert.True(t, c.RemoveItem("p1"))
	assert.Len(t, c.CartItems, 1)
	assert.Equal(t, "p2", c.CartItems[0].Product.ID)

	assert.False(t, c.RemoveItem("p1"))
	assert.Len(t, c.CartItems, 1)
}

func TestCartClearAndIsEmpty(t *testing.T) {
	c := cartWith(item("p1", 10, 1))
	assert.False(t, c.IsEmpty())

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.NotNil(t, c.CartItems)
}

func TestCartTotal(t *testing.T) {
	assert.Equal(t, float64(0), cartWith().Total())
	assert.Equal(t, float64(200), cartWith(item("p1", 100, 2)).Total())
	assert.Equal(t, float64(250), cartWith(item("p1", 100, 2), item("p2", 25, 2)).Total())
}

func TestUserHasSetNonDefaultAddress(t *testing.T) {
	const def = "Address not set"

	u := &User{Address: def}
	assert.False(t, u.HasSetNonDefaultAddress(def))

	u.Address = "123 Main St"
	assert.True(t, u.HasSetNonDefaultAddress(def))
}
