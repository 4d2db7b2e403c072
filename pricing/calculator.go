package pricing

import (
	"github.com/shopspring/decimal"

	"legacy-peptides/models"
)

// FlatShipping is charged on every order
var FlatShipping = decimal.Zero

// ComputeTotals returns max(0, subtotal + shipping + tax - discount)
func ComputeTotals(subtotal, shipping, tax, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Add(shipping).Add(tax).Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Subtotal sums unit price times quantity over the lines
func Subtotal(items []models.LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	return subtotal
}

// Quote prices a list of lines. The reported discount is capped at what was
// actually taken, so Subtotal + Shipping + Tax - Discount == Total always holds.
func Quote(items []models.LineItem, shipping, tax, discount decimal.Decimal) models.Totals {
	subtotal := Subtotal(items).Round(2)
	shipping = shipping.Round(2)
	tax = tax.Round(2)
	discount = discount.Round(2)

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	gross := subtotal.Add(shipping).Add(tax)
	if discount.GreaterThan(gross) {
		discount = gross
	}

	return models.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Discount: discount,
		Total:    ComputeTotals(subtotal, shipping, tax, discount),
	}
}

// DisplayItems returns the lines as shown to the shopper, with the free gift
// appended when the cart is not empty
func DisplayItems(items []models.LineItem) []models.LineItem {
	out := make([]models.LineItem, 0, len(items)+1)
	out = append(out, items...)
	if len(items) > 0 {
		out = append(out, models.FreeGift)
	}
	return out
}

// OrderItems maps cart lines to the normalized order item list, with the free
// gift appended when the cart is not empty
func OrderItems(items []models.LineItem, table *StrengthTable) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items)+1)
	for _, it := range items {
		safeCode := it.SafeCode
		if safeCode == "" {
			safeCode = "N/A"
		}
		out = append(out, models.OrderItem{
			Product:  it.Name,
			Strength: table.Resolve(it.Name, it.UnitPrice),
			SafeCode: safeCode,
			Quantity: it.Quantity,
			Price:    it.UnitPrice.Round(2),
		})
	}
	if len(items) > 0 {
		out = append(out, models.FreeGiftOrderItem)
	}
	return out
}
