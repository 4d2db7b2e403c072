package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discount types for promo codes
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// PromoCode represents a row in promo_codes
type PromoCode struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"` // percentage or fixed
	DiscountValue decimal.Decimal `json:"discountValue"`
	MinPurchase   decimal.Decimal `json:"minPurchase"`
	MaxUses       *int            `json:"maxUses"`
	CurrentUses   int             `json:"currentUses"`
	ValidFrom     time.Time       `json:"validFrom"`
	ValidUntil    *time.Time      `json:"validUntil"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AppliedPromo is a promo that passed evaluation for a given subtotal
type AppliedPromo struct {
	Record   PromoCode       `json:"record"`
	Discount decimal.Decimal `json:"discount"`
}

// PromoCodeRequest represents the request body for creating or updating a promo code
// Example: {"code": "SPRING10", "discountType": "percentage", "discountValue": 10, "minPurchase": 0, "maxUses": 100, "validFrom": "2026-03-01T00:00:00Z", "isActive": true}
type PromoCodeRequest struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MinPurchase   decimal.Decimal `json:"minPurchase"`
	MaxUses       *int            `json:"maxUses,omitempty"`
	ValidFrom     *time.Time      `json:"validFrom,omitempty"`
	ValidUntil    *time.Time      `json:"validUntil,omitempty"`
	IsActive      bool            `json:"isActive"`
}

// ApplyPromoRequest represents the request body for applying a promo at checkout
type ApplyPromoRequest struct {
	Code string `json:"code"`
}

// PromoCodeListResponse represents the response for listing promo codes
type PromoCodeListResponse struct {
	PromoCodes []PromoCode `json:"promoCodes"`
}
