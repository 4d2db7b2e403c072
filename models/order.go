package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods offered at checkout. Payment happens out of band.
const (
	PaymentACHInvoice = "ach_invoice"
	PaymentCashApp    = "cashapp"
	PaymentZelle      = "zelle"
)

// Order statuses used by the admin console
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// IsValidPaymentMethod reports whether method is one of the manual payment methods
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentACHInvoice, PaymentCashApp, PaymentZelle:
		return true
	}
	return false
}

// IsValidOrderStatus reports whether status is a known order status
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CustomerInfo is the shipping form filled in the first checkout step
type CustomerInfo struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Street    string `json:"street" validate:"required"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`
}

// FullName joins first and last name
func (c CustomerInfo) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Address is stored as jsonb in orders.shipping_address and orders.billing_address
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// AddressFromCustomer builds the stored address from the checkout form
func AddressFromCustomer(c CustomerInfo) Address {
	return Address{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Street:    c.Street,
		Apartment: c.Apartment,
		City:      c.City,
		State:     c.State,
		Zip:       c.ZipCode,
		Country:   c.Country,
	}
}

// OrderItem is one normalized line of an order, as stored in metadata and sent to the webhook.
// Downstream fulfillment parses strength and safecode, so the keys are fixed.
type OrderItem struct {
	Product  string          `json:"product"`
	Strength string          `json:"strength"`
	SafeCode string          `json:"safecode"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderMetadata is stored as jsonb in orders.metadata
type OrderMetadata struct {
	PaymentMethod string      `json:"payment_method"`
	PromoCode     *string     `json:"promo_code"`
	Items         []OrderItem `json:"items"`
}

// Order represents a row in orders
type Order struct {
	ID                int64           `json:"id"`
	OrderNumber       string          `json:"orderNumber"`
	Email             string          `json:"email"`
	Status            string          `json:"status"`
	FinancialStatus   string          `json:"financialStatus"`
	FulfillmentStatus string          `json:"fulfillmentStatus"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	Shipping          decimal.Decimal `json:"shipping"`
	Tax               decimal.Decimal `json:"tax"`
	Discount          decimal.Decimal `json:"discount"`
	Total             decimal.Decimal `json:"total"`
	Currency          string          `json:"currency"`
	ShippingAddress   Address         `json:"shippingAddress"`
	BillingAddress    Address         `json:"billingAddress"`
	Metadata          OrderMetadata   `json:"metadata"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// CustomerName returns the name on the shipping address
func (o Order) CustomerName() string {
	if o.ShippingAddress.LastName == "" {
		return o.ShippingAddress.FirstName
	}
	return o.ShippingAddress.FirstName + " " + o.ShippingAddress.LastName
}

// OrderFilter narrows the admin order list
type OrderFilter struct {
	Status string // empty means all
	Search string // matched against order number, customer name and email
	SortBy string // date, total or status
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []Order `json:"orders"`
}

// UpdateOrderStatusRequest represents the request body for changing an order status
// Example: {"status": "shipped"}
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderCSVRow is one line of the admin CSV export
type OrderCSVRow struct {
	OrderNumber   string `csv:"Order Number"`
	Date          string `csv:"Date"`
	CustomerName  string `csv:"Customer"`
	Email         string `csv:"Email"`
	Status        string `csv:"Status"`
	PaymentMethod string `csv:"Payment Method"`
	PromoCode     string `csv:"Promo Code"`
	Items         int    `csv:"Items"`
	Subtotal      string `csv:"Subtotal"`
	Discount      string `csv:"Discount"`
	Tax           string `csv:"Tax"`
	Total         string `csv:"Total"`
}

// Totals is the priced summary of a cart
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// Confirmation is what the shopper sees after a successful submission
// Example response:
// {
//   "orderNumber": "LP-2026-014",
//   "paymentMethod": "zelle",
//   "email": "researcher@university.edu",
//   "total": 89.91,
//   "instructions": {"title": "Zelle", "steps": ["..."]}
// }
type Confirmation struct {
	OrderNumber   string              `json:"orderNumber"`
	PaymentMethod string              `json:"paymentMethod"`
	Email         string              `json:"email"`
	Total         decimal.Decimal     `json:"total"`
	Instructions  PaymentInstructions `json:"instructions"`
}

// PaymentInstructions holds the static manual-payment copy for one method
type PaymentInstructions struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

// OrderWebhookPayload is posted to the automation webhook after an order is stored
type OrderWebhookPayload struct {
	OrderNumber   string          `json:"order_number"`
	OrderDate     string          `json:"order_date"`
	PaymentMethod string          `json:"payment_method"`
	Customer      WebhookCustomer `json:"customer"`
	Items         []OrderItem     `json:"items"`
	OrderTotal    decimal.Decimal `json:"order_total"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Shipping      decimal.Decimal `json:"shipping"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	PromoCode     *string         `json:"promo_code"`
}

// WebhookCustomer is the customer block of OrderWebhookPayload
type WebhookCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}
