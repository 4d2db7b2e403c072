package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"legacy-peptides/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

const orderColumns = `
	id, order_number, email, status, financial_status, fulfillment_status,
	subtotal, shipping, tax, discount, total, currency,
	shipping_address::text, billing_address::text, metadata::text, created_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var shippingJSON, billingJSON, metadataJSON sql.NullString

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.Email, &o.Status, &o.FinancialStatus, &o.FulfillmentStatus,
		&o.Subtotal, &o.Shipping, &o.Tax, &o.Discount, &o.Total, &o.Currency,
		&shippingJSON, &billingJSON, &metadataJSON, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if shippingJSON.Valid {
		if err := json.Unmarshal([]byte(shippingJSON.String), &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipping address: %w", err)
		}
	}
	if billingJSON.Valid {
		if err := json.Unmarshal([]byte(billingJSON.String), &o.BillingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode billing address: %w", err)
		}
	}
	if metadataJSON.Valid {
		if err := json.Unmarshal([]byte(metadataJSON.String), &o.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode order metadata: %w", err)
		}
	}
	if o.Metadata.Items == nil {
		o.Metadata.Items = []models.OrderItem{}
	}
	return &o, nil
}

// NextOrderNumber asks the database for the next human-readable order number
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var orderNumber sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT generate_order_number()`).Scan(&orderNumber)
	if err != nil {
		zap.S().Errorf("❌ NextOrderNumber: Error generating order number: %v", err)
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	if !orderNumber.Valid || orderNumber.String == "" {
		return "", fmt.Errorf("failed to generate order number: empty result")
	}
	return orderNumber.String, nil
}

// Create inserts an order and returns it with its id and creation time
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	zap.S().Infof("📦 Create: Creating order %s for %s", order.OrderNumber, order.Email)

	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shipping address: %w", err)
	}
	billingJSON, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to encode billing address: %w", err)
	}
	metadataJSON, err := json.Marshal(order.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order metadata: %w", err)
	}

	query := `
		INSERT INTO orders (
			order_number, email, status, financial_status, fulfillment_status,
			subtotal, shipping, tax, discount, total, currency,
			shipping_address, billing_address, metadata
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13::jsonb, $14::jsonb)
		RETURNING id, created_at
	`

	created := *order
	err = r.db.QueryRowContext(ctx, query,
		order.OrderNumber,
		order.Email,
		order.Status,
		order.FinancialStatus,
		order.FulfillmentStatus,
		order.Subtotal.Round(2),
		order.Shipping.Round(2),
		order.Tax.Round(2),
		order.Discount.Round(2),
		order.Total.Round(2),
		order.Currency,
		string(shippingJSON),
		string(billingJSON),
		string(metadataJSON),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		zap.S().Errorf("❌ Create: Error inserting order %s: %v", order.OrderNumber, err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	zap.S().Infof("✅ Create: Created order %s with id=%d", created.OrderNumber, created.ID)
	return &created, nil
}

// List returns orders matching the filter.
// Search matches order number, customer name and email, case-insensitively.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	zap.S().Infof("🔍 List: Fetching orders status=%q search=%q sort=%q", filter.Status, filter.Search, filter.SortBy)

	orderBy := "created_at DESC"
	switch filter.SortBy {
	case "total":
		orderBy = "total DESC"
	case "status":
		orderBy = "status ASC, created_at DESC"
	}

	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND (
			$2 = ''
			OR order_number ILIKE '%' || $2 || '%'
			OR email ILIKE '%' || $2 || '%'
			OR (COALESCE(shipping_address->>'first_name', '') || ' ' || COALESCE(shipping_address->>'last_name', '')) ILIKE '%' || $2 || '%'
		  )
		ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, query, filter.Status, filter.Search)
	if err != nil {
		zap.S().Errorf("❌ List: Error querying orders: %v", err)
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			zap.S().Errorf("❌ List: Error scanning order: %v", err)
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}

	zap.S().Infof("✅ List: Found %d orders", len(orders))
	return orders, nil
}

// GetByNumber returns a single order
func (r *OrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, orderNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
		}
		zap.S().Errorf("❌ GetByNumber: Error fetching order %s: %v", orderNumber, err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return o, nil
}

// UpdateStatus changes the admin status of an order
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status string) (*models.Order, error) {
	zap.S().Infof("📦 UpdateStatus: Setting order %s to %s", orderNumber, status)

	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE order_number = $2
		RETURNING ` + orderColumns

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, status, orderNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
		}
		zap.S().Errorf("❌ UpdateStatus: Error updating order %s: %v", orderNumber, err)
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return o, nil
}

// AddTracking stores a shipment for an order and marks the order fulfilled
func (r *OrderRepository) AddTracking(ctx context.Context, tracking *models.OrderTracking) (*models.OrderTracking, error) {
	zap.S().Infof("📦 AddTracking: Adding %s tracking %s to order %s", tracking.Carrier, tracking.TrackingNumber, tracking.OrderNumber)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE order_number = $1`, tracking.OrderNumber).Scan(&orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", tracking.OrderNumber, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	created := *tracking
	query := `
		INSERT INTO order_tracking (order_id, tracking_number, carrier, tracking_url, status, shipped_at)
		VALUES ($1, $2, $3, $4, 'pre_transit', NOW())
		RETURNING created_at
	`
	err = tx.QueryRowContext(ctx, query, orderID, tracking.TrackingNumber, tracking.Carrier, tracking.TrackingURL).Scan(&created.CreatedAt)
	if err != nil {
		zap.S().Errorf("❌ AddTracking: Error inserting tracking: %v", err)
		return nil, fmt.Errorf("failed to create tracking: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE orders SET fulfillment_status = 'fulfilled', updated_at = NOW() WHERE id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark order fulfilled: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.S().Infof("✅ AddTracking: Order %s marked fulfilled", tracking.OrderNumber)
	return &created, nil
}

// CancelUnpaidBefore cancels unfulfilled orders still awaiting payment that were placed before cutoff
func (r *OrderRepository) CancelUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE orders
		SET status = 'cancelled', updated_at = NOW()
		WHERE financial_status = 'pending'
		  AND fulfillment_status = 'unfulfilled'
		  AND status = 'pending'
		  AND created_at < $1
	`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		zap.S().Errorf("❌ CancelUnpaidBefore: Error cancelling unpaid orders: %v", err)
		return 0, fmt.Errorf("failed to cancel unpaid orders: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cancelled orders: %w", err)
	}
	return n, nil
}
