package models

// SelectPaymentRequest represents the request body for choosing a payment method
// Example: {"paymentMethod": "zelle"}
type SelectPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CheckoutResponse represents the checkout wizard as shown to the shopper
// Example response:
// {
//   "step": "payment",
//   "customer": {"email": "ada@lab.org", "firstName": "Ada", ...},
//   "paymentMethod": "ach_invoice",
//   "promo": {"record": {"code": "SPRING10", ...}, "discount": 9.99},
//   "items": [...],
//   "totals": {"subtotal": 99.9, "shipping": 0, "tax": 0, "discount": 9.99, "total": 89.91}
// }
type CheckoutResponse struct {
	Step          string        `json:"step"`
	Customer      CustomerInfo  `json:"customer"`
	PaymentMethod string        `json:"paymentMethod"`
	Promo         *AppliedPromo `json:"promo,omitempty"`
	Items         []LineItem    `json:"items"`
	Totals        Totals        `json:"totals"`
	Confirmation  *Confirmation `json:"confirmation,omitempty"`
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}
