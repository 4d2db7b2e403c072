package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
)

// CatalogRepository reads the grouped product catalog
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// ListGrouped returns one entry per product root ordered by name, with variants
// sorted by strength and the sold-out flag from product_inventory
func (r *CatalogRepository) ListGrouped(ctx context.Context) ([]models.ProductGroup, error) {
	zap.S().Infof("🔍 ListGrouped: Fetching grouped catalog")

	query := `
		SELECT
			pg.product_id_root,
			pg.name,
			COALESCE(pg.description, ''),
			COALESCE(pg.image_url, ''),
			COALESCE(pg.variants::text, '[]'),
			COALESCE(pi.is_sold_out, false)
		FROM products_grouped pg
		LEFT JOIN product_inventory pi ON pi.product_id = pg.product_id_root
		ORDER BY pg.name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		zap.S().Errorf("❌ ListGrouped: Error querying catalog: %v", err)
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	groups := []models.ProductGroup{}
	for rows.Next() {
		var g models.ProductGroup
		var variantsJSON string
		if err := rows.Scan(&g.ProductIDRoot, &g.Name, &g.Description, &g.ImageURL, &variantsJSON, &g.SoldOut); err != nil {
			zap.S().Errorf("❌ ListGrouped: Error scanning row: %v", err)
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}

		if err := json.Unmarshal([]byte(variantsJSON), &g.Variants); err != nil {
			zap.S().Warnf("⚠️ ListGrouped: Invalid variants for %s: %v", g.ProductIDRoot, err)
			g.Variants = nil
		}
		if g.Variants == nil {
			g.Variants = []models.Variant{}
		}
		SortVariants(g.Variants)
		g.MinPrice = minPrice(g.Variants)

		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		zap.S().Errorf("❌ ListGrouped: Error iterating rows: %v", err)
		return nil, fmt.Errorf("failed to iterate catalog: %w", err)
	}

	zap.S().Infof("✅ ListGrouped: Found %d products", len(groups))
	return groups, nil
}

// GetVariant resolves a variant id to its product, strength and current price.
// Unknown ids return ErrNotFound.
func (r *CatalogRepository) GetVariant(ctx context.Context, variantID string) (*models.CatalogVariant, error) {
	query := `
		SELECT
			v->>'variant_id',
			pg.product_id_root,
			pg.name,
			COALESCE(v->>'strength', ''),
			v->>'price',
			COALESCE(pg.image_url, ''),
			COALESCE(p.category, ''),
			COALESCE(p.safe_code, ''),
			COALESCE(pi.is_sold_out, false)
		FROM products_grouped pg
		CROSS JOIN LATERAL jsonb_array_elements(pg.variants) AS v
		LEFT JOIN products p ON p.product_id = v->>'variant_id'
		LEFT JOIN product_inventory pi ON pi.product_id = pg.product_id_root
		WHERE v->>'variant_id' = $1
		LIMIT 1
	`

	var cv models.CatalogVariant
	err := r.db.QueryRowContext(ctx, query, variantID).Scan(
		&cv.VariantID, &cv.ProductIDRoot, &cv.Name, &cv.Strength, &cv.Price,
		&cv.ImageURL, &cv.Category, &cv.SafeCode, &cv.SoldOut,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("variant %s: %w", variantID, ErrNotFound)
		}
		zap.S().Errorf("❌ GetVariant: Error fetching variant %s: %v", variantID, err)
		return nil, fmt.Errorf("failed to fetch variant: %w", err)
	}
	return &cv, nil
}

// SortVariants orders variants by the leading number of their strength label.
// Labels without a number sort last, keeping their relative order.
func SortVariants(variants []models.Variant) {
	sort.SliceStable(variants, func(i, j int) bool {
		return strengthValue(variants[i].Strength) < strengthValue(variants[j].Strength)
	})
}

// strengthValue parses "10mg" or "5mg / 5mg" to its first number
func strengthValue(label string) float64 {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && (unicode.IsDigit(rune(label[end])) || label[end] == '.') {
		end++
	}
	if end == 0 {
		return math.MaxFloat64
	}
	v, err := strconv.ParseFloat(label[:end], 64)
	if err != nil {
		return math.MaxFloat64
	}
	return v
}

func minPrice(variants []models.Variant) decimal.Decimal {
	if len(variants) == 0 {
		return decimal.Zero
	}
	min := variants[0].Price
	for _, v := range variants[1:] {
		if v.Price.LessThan(min) {
			min = v.Price
		}
	}
	return min
}
