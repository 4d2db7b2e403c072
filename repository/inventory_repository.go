package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"legacy-peptides/models"
)

// InventoryRepository handles the sold-out flags in product_inventory
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Ensure InventoryRepository implements InventoryRepositoryInterface
var _ InventoryRepositoryInterface = (*InventoryRepository)(nil)

// List returns the sold-out flag of every product. Products without a row are available.
func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryRecord, error) {
	query := `
		SELECT p.product_id, p.name, COALESCE(pi.is_sold_out, false), COALESCE(pi.updated_at, p.updated_at)
		FROM products p
		LEFT JOIN product_inventory pi ON pi.product_id = p.product_id
		ORDER BY p.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		zap.S().Errorf("❌ List: Error querying inventory: %v", err)
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	records := []models.InventoryRecord{}
	for rows.Next() {
		var rec models.InventoryRecord
		if err := rows.Scan(&rec.ProductID, &rec.Name, &rec.IsSoldOut, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}
	return records, nil
}

// Toggle flips the sold-out flag of one product, creating its row on first use
func (r *InventoryRepository) Toggle(ctx context.Context, productID string) (*models.InventoryRecord, error) {
	zap.S().Infof("📦 Toggle: Toggling sold-out for product %s", productID)

	query := `
		INSERT INTO product_inventory (product_id, product_name, is_sold_out, updated_at)
		SELECT p.product_id, p.name, true, NOW()
		FROM products p
		WHERE p.product_id = $1
		ON CONFLICT (product_id) DO UPDATE
		SET is_sold_out = NOT product_inventory.is_sold_out, updated_at = NOW()
		RETURNING product_id, product_name, is_sold_out, updated_at
	`

	var rec models.InventoryRecord
	err := r.db.QueryRowContext(ctx, query, productID).Scan(&rec.ProductID, &rec.Name, &rec.IsSoldOut, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		zap.S().Errorf("❌ Toggle: Error toggling product %s: %v", productID, err)
		return nil, fmt.Errorf("failed to toggle inventory: %w", err)
	}

	zap.S().Infof("✅ Toggle: Product %s sold out=%t", productID, rec.IsSoldOut)
	return &rec, nil
}

// SetAll sets the same sold-out flag on every product and returns how many rows changed
func (r *InventoryRepository) SetAll(ctx context.Context, soldOut bool) (int, error) {
	zap.S().Infof("📦 SetAll: Setting every product sold out=%t", soldOut)

	query := `
		INSERT INTO product_inventory (product_id, product_name, is_sold_out, updated_at)
		SELECT p.product_id, p.name, $1, NOW()
		FROM products p
		ON CONFLICT (product_id) DO UPDATE
		SET is_sold_out = EXCLUDED.is_sold_out, updated_at = NOW()
	`

	res, err := r.db.ExecContext(ctx, query, soldOut)
	if err != nil {
		zap.S().Errorf("❌ SetAll: Error updating inventory: %v", err)
		return 0, fmt.Errorf("failed to update inventory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to update inventory: %w", err)
	}
	return int(n), nil
}
