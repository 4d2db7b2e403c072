package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	id, product_id, name, COALESCE(slug, ''), COALESCE(category, ''), COALESCE(safe_code, ''), price,
	COALESCE(image, ''), COALESCE(description, ''), COALESCE(concentration, ''),
	COALESCE(detailed_description, ''), created_at, updated_at
`

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.ProductID, &p.Name, &p.Slug, &p.Category, &p.SafeCode, &p.Price,
		&p.Image, &p.Description, &p.Concentration, &p.DetailedDescription, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY name ASC`)
	if err != nil {
		zap.S().Errorf("❌ List: Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// Create inserts a product. ProductID and Slug must already be set.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	zap.S().Infof("📦 Create: Creating product %s (%s)", product.Name, product.ProductID)

	query := `
		INSERT INTO products (product_id, name, slug, category, safe_code, price, image, description, concentration, detailed_description, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query,
		product.ProductID,
		product.Name,
		product.Slug,
		product.Category,
		product.SafeCode,
		product.Price,
		product.Image,
		product.Description,
		product.Concentration,
		product.DetailedDescription,
	))
	if err != nil {
		zap.S().Errorf("❌ Create: Error inserting product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// Update replaces the editable fields of a product; product_id and slug are kept
func (r *ProductRepository) Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.Product, error) {
	zap.S().Infof("📦 Update: Updating product id=%d", id)

	query := `
		UPDATE products
		SET name = $1, category = $2, safe_code = $3, price = $4, image = $5,
		    description = $6, concentration = $7, detailed_description = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query,
		req.Name, req.Category, req.SafeCode, req.Price, req.Image,
		req.Description, req.Concentration, req.DetailedDescription, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product id=%d: %w", id, ErrNotFound)
		}
		zap.S().Errorf("❌ Update: Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// UpdatePrice changes only the price of a product
func (r *ProductRepository) UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*models.Product, error) {
	zap.S().Infof("💰 UpdatePrice: Setting product id=%d price=%s", id, price.StringFixed(2))

	query := `UPDATE products SET price = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + productColumns

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, price, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product id=%d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update product price: %w", err)
	}
	return p, nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product id=%d: %w", id, ErrNotFound)
	}
	return nil
}
