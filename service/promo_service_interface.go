package service

import (
	"context"

	"github.com/shopspring/decimal"

	"legacy-peptides/models"
)

// PromoServiceInterface defines the contract for promo code evaluation
type PromoServiceInterface interface {
	// Evaluate checks code against the current subtotal and returns the discount it grants
	Evaluate(ctx context.Context, code string, subtotal decimal.Decimal) (*models.AppliedPromo, error)
	// Discount recomputes the discount of an applied promo for a changed subtotal
	Discount(promo models.PromoCode, subtotal decimal.Decimal) decimal.Decimal
	// RecordRedemption counts one use of the promo
	RecordRedemption(ctx context.Context, promoID int64) error
}
