package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// DefaultTaxRate is applied when the destination lookup fails
var DefaultTaxRate = decimal.RequireFromString("0.08")

// TaxServiceInterface defines the contract for destination tax calculation
type TaxServiceInterface interface {
	Calculate(ctx context.Context, subtotal decimal.Decimal, customer models.CustomerInfo) (decimal.Decimal, models.TaxRate)
}

// TaxService computes tax from the destination rate
// Implements TaxServiceInterface
type TaxService struct {
	repository repository.TaxRepositoryInterface
}

// NewTaxService creates a new TaxService
func NewTaxService(repo repository.TaxRepositoryInterface) *TaxService {
	return &TaxService{repository: repo}
}

// Ensure TaxService implements TaxServiceInterface
var _ TaxServiceInterface = (*TaxService)(nil)

// Calculate returns subtotal * rate rounded to cents. Lookup errors fall back to DefaultTaxRate.
func (s *TaxService) Calculate(ctx context.Context, subtotal decimal.Decimal, customer models.CustomerInfo) (decimal.Decimal, models.TaxRate) {
	rate, err := s.repository.RateFor(ctx, customer.Country, customer.State, customer.City, customer.ZipCode)
	if err != nil {
		zap.S().Warnf("⚠️ Calculate: Tax lookup failed for %s/%s, using default: %v", customer.Country, customer.State, err)
		rate = &models.TaxRate{Rate: DefaultTaxRate, Description: "Default Tax"}
	}
	return subtotal.Mul(rate.Rate).Round(2), *rate
}
