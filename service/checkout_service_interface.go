package service

import (
	"context"

	"legacy-peptides/cart"
	"legacy-peptides/models"
)

// CheckoutServiceInterface defines the contract for the checkout wizard
type CheckoutServiceInterface interface {
	SaveCustomer(session *cart.Session, info models.CustomerInfo) error
	ApplyPromo(ctx context.Context, session *cart.Session, code string) (*models.AppliedPromo, error)
	Quote(ctx context.Context, session *cart.Session) models.Totals
	Submit(ctx context.Context, session *cart.Session) (*models.Confirmation, error)
}
