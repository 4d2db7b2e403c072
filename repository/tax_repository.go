package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"legacy-peptides/models"
)

// TaxRepository looks up destination tax rates
type TaxRepository struct {
	db *sql.DB
}

// NewTaxRepository creates a new TaxRepository
func NewTaxRepository(db *sql.DB) *TaxRepository {
	return &TaxRepository{db: db}
}

// Ensure TaxRepository implements TaxRepositoryInterface
var _ TaxRepositoryInterface = (*TaxRepository)(nil)

// RateFor calls calculate_tax_rate and names the rate from the highest priority active tax_rates row
func (r *TaxRepository) RateFor(ctx context.Context, country, state, city, zip string) (*models.TaxRate, error) {
	var rate decimal.NullDecimal
	err := r.db.QueryRowContext(ctx, `SELECT calculate_tax_rate($1, $2, $3, $4)`, country, state, city, zip).Scan(&rate)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate tax rate: %w", err)
	}

	if !rate.Valid {
		return nil, fmt.Errorf("tax rate for %s/%s: %w", country, state, ErrNotFound)
	}
	result := &models.TaxRate{Rate: rate.Decimal, Description: "Sales Tax"}

	var name string
	query := `
		SELECT tax_name FROM tax_rates
		WHERE country = $1 AND state = $2 AND is_active = true
		ORDER BY priority DESC
		LIMIT 1
	`
	err = r.db.QueryRowContext(ctx, query, country, state).Scan(&name)
	switch {
	case err == nil && name != "":
		result.Description = name
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("failed to fetch tax name: %w", err)
	}
	return result, nil
}
