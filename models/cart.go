package models

import "github.com/shopspring/decimal"

// LineItem represents a product+variant selected into a session cart
type LineItem struct {
	ID         string            `json:"id"` // Unique per product+variant
	OriginalID string            `json:"originalId,omitempty"`
	Name       string            `json:"name"`
	UnitPrice  decimal.Decimal   `json:"price"`
	Quantity   int               `json:"quantity"`
	Image      string            `json:"image,omitempty"`
	Category   string            `json:"category"`
	SafeCode   string            `json:"safeCode,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// LineTotal returns unit price times quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// FreeGift is appended to every non-empty cart for display and order payload purposes.
// It never takes part in subtotal or discount math.
var FreeGift = LineItem{
	ID:        "free-gift-bac-water-3ml",
	Name:      "BACTERIOSTATIC WATER 3ML",
	UnitPrice: decimal.Zero,
	Quantity:  1,
	Image:     "BACTERIOSTATIC WATER 3ML.png",
	Category:  "Free Gift",
	SafeCode:  "FREE-GIFT",
}

// FreeGiftOrderItem is the order payload entry for FreeGift
var FreeGiftOrderItem = OrderItem{
	Product:  "BACTERIOSTATIC WATER",
	Strength: "3ml",
	SafeCode: "FREE-GIFT",
	Quantity: 1,
	Price:    decimal.Zero,
}

// AddCartItemRequest represents the request body for adding an item to the cart.
// Name, price and safecode are resolved from the catalog by variant id.
// Example: {"id": "ghk-cu-100mg", "quantity": 2}
type AddCartItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// UpdateCartItemRequest represents the request body for changing a line quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents the cart as shown to the shopper
// Example response:
// {
//   "items": [
//     {"id": "bpc-157-10mg", "name": "BPC-157", "price": 49.95, "quantity": 2, "category": "Recovery"},
//     {"id": "free-gift-bac-water-3ml", "name": "BACTERIOSTATIC WATER 3ML", "price": 0, "quantity": 1, "category": "Free Gift"}
//   ],
//   "count": 2,
//   "subtotal": 99.9
// }
type CartResponse struct {
	Items    []LineItem      `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
