package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"legacy-peptides/models"
)

var (
	// ErrInvalidQuantity is returned when adding fewer than one unit
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInvalidPrice is returned when a line carries a negative unit price
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrSoldOut is returned when adding a product marked sold out
	ErrSoldOut = errors.New("this product is sold out")
)

// Cart is the ordered list of line items chosen in one session.
// Line IDs are unique and every stored line has Quantity >= 1.
type Cart struct {
	mu    sync.Mutex
	items []models.LineItem
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the line with the same ID, or appends a new line
func (c *Cart) AddItem(item models.LineItem, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if item.UnitPrice.IsNegative() {
		return ErrInvalidPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity += quantity
			return nil
		}
	}

	item.Quantity = quantity
	c.items = append(c.items, item)
	return nil
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less removes it.
// Unknown IDs are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the line with the given ID if present
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Deduct removes the given quantities from the matching lines, dropping lines
// that reach zero. Lines not in submitted are left untouched.
func (c *Cart) Deduct(submitted []models.LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sub := range submitted {
		for i := range c.items {
			if c.items[i].ID != sub.ID {
				continue
			}
			c.items[i].Quantity -= sub.Quantity
			if c.items[i].Quantity <= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			break
		}
	}
}

// Items returns a copy of the lines in insertion order
func (c *Cart) Items() []models.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Count returns the total number of units in the cart
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

// Subtotal returns the sum of unit price times quantity over all lines
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := decimal.Zero
	for _, it := range c.items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return subtotal
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
