package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderTracking is the shipment attached to an order
type OrderTracking struct {
	OrderNumber    string    `json:"orderNumber"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"trackingNumber"`
	TrackingURL    string    `json:"trackingUrl"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AddTrackingRequest represents the request body for POST /admin/orders/{orderNumber}/tracking
// Example: {"carrier": "USPS", "trackingNumber": "9400111899223856928499"}
type AddTrackingRequest struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

// TaxRate is the result of a tax lookup for a destination
type TaxRate struct {
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}
