package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"legacy-peptides/models"
)

// PromoRepository handles database operations for promo codes
type PromoRepository struct {
	db *sql.DB
}

// NewPromoRepository creates a new PromoRepository
func NewPromoRepository(db *sql.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

// Ensure PromoRepository implements PromoRepositoryInterface
var _ PromoRepositoryInterface = (*PromoRepository)(nil)

const promoColumns = `
	id, code, discount_type, discount_value, COALESCE(min_purchase, 0),
	max_uses, COALESCE(current_uses, 0), valid_from, valid_until, is_active, created_at
`

func scanPromo(row rowScanner) (*models.PromoCode, error) {
	var p models.PromoCode
	var maxUses sql.NullInt64
	var validUntil sql.NullTime

	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.MinPurchase,
		&maxUses, &p.CurrentUses, &p.ValidFrom, &validUntil, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if maxUses.Valid {
		m := int(maxUses.Int64)
		p.MaxUses = &m
	}
	if validUntil.Valid {
		t := validUntil.Time
		p.ValidUntil = &t
	}
	return &p, nil
}

// GetActiveByCode looks up an active promo by its exact upper-case code
func (r *PromoRepository) GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1 AND is_active = true`

	p, err := scanPromo(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("promo code %s: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch promo code: %w", err)
	}
	return p, nil
}

// IncrementUses bumps current_uses with a single atomic UPDATE
func (r *PromoRepository) IncrementUses(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE promo_codes SET current_uses = COALESCE(current_uses, 0) + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("promo code id=%d: %w", id, ErrNotFound)
	}
	return nil
}

// List returns every promo code, newest first
func (r *PromoRepository) List(ctx context.Context) ([]models.PromoCode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at DESC`)
	if err != nil {
		zap.S().Errorf("❌ List: Error querying promo codes: %v", err)
		return nil, fmt.Errorf("failed to query promo codes: %w", err)
	}
	defer rows.Close()

	promos := []models.PromoCode{}
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate promo codes: %w", err)
	}
	return promos, nil
}

func promoArgs(req *models.PromoCodeRequest) []interface{} {
	validFrom := time.Now()
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}

	var maxUses sql.NullInt64
	if req.MaxUses != nil {
		maxUses = sql.NullInt64{Int64: int64(*req.MaxUses), Valid: true}
	}
	var validUntil sql.NullTime
	if req.ValidUntil != nil {
		validUntil = sql.NullTime{Time: *req.ValidUntil, Valid: true}
	}

	return []interface{}{
		strings.ToUpper(strings.TrimSpace(req.Code)),
		req.DiscountType,
		req.DiscountValue,
		req.MinPurchase,
		maxUses,
		validFrom,
		validUntil,
		req.IsActive,
	}
}

// Create inserts a promo code
func (r *PromoRepository) Create(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	zap.S().Infof("📦 Create: Creating promo code %s", req.Code)

	query := `
		INSERT INTO promo_codes (code, discount_type, discount_value, min_purchase, max_uses, valid_from, valid_until, is_active, current_uses)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0)
		RETURNING ` + promoColumns

	p, err := scanPromo(r.db.QueryRowContext(ctx, query, promoArgs(req)...))
	if err != nil {
		zap.S().Errorf("❌ Create: Error inserting promo code: %v", err)
		return nil, fmt.Errorf("failed to create promo code: %w", err)
	}
	return p, nil
}

// Update replaces the editable fields of a promo code
func (r *PromoRepository) Update(ctx context.Context, id int64, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	zap.S().Infof("📦 Update: Updating promo code id=%d", id)

	query := `
		UPDATE promo_codes
		SET code = $1, discount_type = $2, discount_value = $3, min_purchase = $4,
		    max_uses = $5, valid_from = $6, valid_until = $7, is_active = $8
		WHERE id = $9
		RETURNING ` + promoColumns

	args := append(promoArgs(req), id)
	p, err := scanPromo(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("promo code id=%d: %w", id, ErrNotFound)
		}
		zap.S().Errorf("❌ Update: Error updating promo code: %v", err)
		return nil, fmt.Errorf("failed to update promo code: %w", err)
	}
	return p, nil
}

// Delete removes a promo code
func (r *PromoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("promo code id=%d: %w", id, ErrNotFound)
	}
	return nil
}
