package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// Promo rejections, in evaluation order. Messages are shown to the shopper as is.
var (
	ErrEmptyCode            = errors.New("Please enter a promo code")
	ErrInvalidCode          = errors.New("Invalid promo code")
	ErrNotYetValid          = errors.New("This promo code is not yet valid")
	ErrExpired              = errors.New("This promo code has expired")
	ErrUsageLimitReached    = errors.New("This promo code has reached its usage limit")
	ErrBelowMinimumPurchase = errors.New("minimum purchase not met")
)

// BelowMinimumPurchaseError carries the minimum the subtotal failed to reach
type BelowMinimumPurchaseError struct {
	Minimum decimal.Decimal
}

func (e *BelowMinimumPurchaseError) Error() string {
	return fmt.Sprintf("Minimum purchase of $%s required", e.Minimum.StringFixed(2))
}

// Is lets errors.Is match ErrBelowMinimumPurchase
func (e *BelowMinimumPurchaseError) Is(target error) bool {
	return target == ErrBelowMinimumPurchase
}

// IsPromoRejection reports whether err is one of the shopper-facing promo rejections
func IsPromoRejection(err error) bool {
	for _, target := range []error{ErrEmptyCode, ErrInvalidCode, ErrNotYetValid, ErrExpired, ErrUsageLimitReached, ErrBelowMinimumPurchase} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var hundred = decimal.NewFromInt(100)

// PromoService evaluates promo codes against a subtotal
// Implements PromoServiceInterface
type PromoService struct {
	repository repository.PromoRepositoryInterface
	now        func() time.Time
}

// NewPromoService creates a new PromoService. A nil clock uses time.Now.
func NewPromoService(repo repository.PromoRepositoryInterface, now func() time.Time) *PromoService {
	if now == nil {
		now = time.Now
	}
	return &PromoService{
		repository: repo,
		now:        now,
	}
}

// Ensure PromoService implements PromoServiceInterface
var _ PromoServiceInterface = (*PromoService)(nil)

// Evaluate runs the promo checks in order and stops at the first failure
func (s *PromoService) Evaluate(ctx context.Context, code string, subtotal decimal.Decimal) (*models.AppliedPromo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	zap.S().Infof("🎟️ Evaluate: Checking promo code %s against subtotal %s", code, subtotal.StringFixed(2))

	promo, err := s.repository.GetActiveByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			zap.S().Errorf("❌ Evaluate: Error looking up promo code %s: %v", code, err)
		}
		return nil, ErrInvalidCode
	}

	now := s.now()
	if now.Before(promo.ValidFrom) {
		return nil, ErrNotYetValid
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return nil, ErrExpired
	}
	if promo.MaxUses != nil && promo.CurrentUses >= *promo.MaxUses {
		return nil, ErrUsageLimitReached
	}
	if promo.MinPurchase.IsPositive() && subtotal.LessThan(promo.MinPurchase) {
		return nil, &BelowMinimumPurchaseError{Minimum: promo.MinPurchase}
	}

	applied := &models.AppliedPromo{
		Record:   *promo,
		Discount: s.Discount(*promo, subtotal),
	}
	zap.S().Infof("✅ Evaluate: Promo %s grants %s", code, applied.Discount.StringFixed(2))
	return applied, nil
}

// Discount returns subtotal * value / 100 for percentage promos and value for fixed ones.
// Clamping against the order total happens when totals are computed.
func (s *PromoService) Discount(promo models.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	switch promo.DiscountType {
	case models.DiscountPercentage:
		return subtotal.Mul(promo.DiscountValue).Div(hundred).Round(2)
	case models.DiscountFixed:
		return promo.DiscountValue.Round(2)
	}
	return decimal.Zero
}

// RecordRedemption increments the usage counter of a promo
func (s *PromoService) RecordRedemption(ctx context.Context, promoID int64) error {
	if err := s.repository.IncrementUses(ctx, promoID); err != nil {
		return fmt.Errorf("failed to record promo redemption: %w", err)
	}
	return nil
}
