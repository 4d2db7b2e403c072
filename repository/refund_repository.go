package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"legacy-peptides/models"
)

// RefundRepository handles database operations for refunds and returns
type RefundRepository struct {
	db *sql.DB
}

// NewRefundRepository creates a new RefundRepository
func NewRefundRepository(db *sql.DB) *RefundRepository {
	return &RefundRepository{db: db}
}

// Ensure RefundRepository implements RefundRepositoryInterface
var _ RefundRepositoryInterface = (*RefundRepository)(nil)

const refundSelect = `
	SELECT rf.id, rf.refund_number, o.order_number, rf.amount, COALESCE(rf.reason, ''), rf.status, rf.processed_at, rf.created_at
	FROM refunds rf
	INNER JOIN orders o ON o.id = rf.order_id
`

const returnSelect = `
	SELECT rt.id, rt.return_number, o.order_number, COALESCE(rt.reason, ''), rt.status, rt.approved_at, rt.received_at, rt.created_at
	FROM returns rt
	INNER JOIN orders o ON o.id = rt.order_id
`

func scanRefund(row rowScanner) (*models.Refund, error) {
	var rf models.Refund
	var processedAt sql.NullTime
	if err := row.Scan(&rf.ID, &rf.RefundNumber, &rf.OrderNumber, &rf.Amount, &rf.Reason, &rf.Status, &processedAt, &rf.CreatedAt); err != nil {
		return nil, err
	}
	if processedAt.Valid {
		t := processedAt.Time
		rf.ProcessedAt = &t
	}
	return &rf, nil
}

func scanReturn(row rowScanner) (*models.Return, error) {
	var rt models.Return
	var approvedAt, receivedAt sql.NullTime
	if err := row.Scan(&rt.ID, &rt.ReturnNumber, &rt.OrderNumber, &rt.Reason, &rt.Status, &approvedAt, &receivedAt, &rt.CreatedAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		rt.ApprovedAt = &t
	}
	if receivedAt.Valid {
		t := receivedAt.Time
		rt.ReceivedAt = &t
	}
	return &rt, nil
}

func (r *RefundRepository) orderID(ctx context.Context, tx *sql.Tx, orderNumber string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE order_number = $1`, orderNumber).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("order %s: %w", orderNumber, ErrNotFound)
		}
		return 0, fmt.Errorf("failed to fetch order: %w", err)
	}
	return id, nil
}

// CreateRefund numbers and inserts a pending refund
func (r *RefundRepository) CreateRefund(ctx context.Context, req *models.CreateRefundRequest) (*models.Refund, error) {
	zap.S().Infof("💰 CreateRefund: Creating refund for order %s amount=%s", req.OrderNumber, req.Amount.StringFixed(2))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	orderID, err := r.orderID(ctx, tx, req.OrderNumber)
	if err != nil {
		return nil, err
	}

	var refundNumber string
	if err := tx.QueryRowContext(ctx, `SELECT generate_refund_number()`).Scan(&refundNumber); err != nil {
		zap.S().Errorf("❌ CreateRefund: Error generating refund number: %v", err)
		return nil, fmt.Errorf("failed to generate refund number: %w", err)
	}

	rf := models.Refund{
		RefundNumber: refundNumber,
		OrderNumber:  req.OrderNumber,
		Amount:       req.Amount.Round(2),
		Reason:       req.Reason,
		Status:       models.RefundStatusPending,
	}
	query := `
		INSERT INTO refunds (order_id, refund_number, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query, orderID, refundNumber, rf.Amount, rf.Reason, rf.Status).Scan(&rf.ID, &rf.CreatedAt)
	if err != nil {
		zap.S().Errorf("❌ CreateRefund: Error inserting refund: %v", err)
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.S().Infof("✅ CreateRefund: Created refund %s", rf.RefundNumber)
	return &rf, nil
}

// ListRefunds returns refunds, newest first, optionally for one order
func (r *RefundRepository) ListRefunds(ctx context.Context, orderNumber string) ([]models.Refund, error) {
	query := refundSelect + ` WHERE ($1 = '' OR o.order_number = $1) ORDER BY rf.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query refunds: %w", err)
	}
	defer rows.Close()

	refunds := []models.Refund{}
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refund: %w", err)
		}
		refunds = append(refunds, *rf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate refunds: %w", err)
	}
	return refunds, nil
}

// UpdateRefundStatus sets the status, stamping processed_at when processed
func (r *RefundRepository) UpdateRefundStatus(ctx context.Context, id int64, status string) (*models.Refund, error) {
	zap.S().Infof("💰 UpdateRefundStatus: Setting refund id=%d to %s", id, status)

	query := `
		UPDATE refunds
		SET status = $1,
		    processed_at = CASE WHEN $1 = 'processed' THEN NOW() ELSE processed_at END,
		    updated_at = NOW()
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update refund: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("refund id=%d: %w", id, ErrNotFound)
	}

	rf, err := scanRefund(r.db.QueryRowContext(ctx, refundSelect+` WHERE rf.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch refund: %w", err)
	}
	return rf, nil
}

// CreateReturn numbers and inserts a requested return
func (r *RefundRepository) CreateReturn(ctx context.Context, req *models.CreateReturnRequest) (*models.Return, error) {
	zap.S().Infof("📦 CreateReturn: Creating return for order %s", req.OrderNumber)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	orderID, err := r.orderID(ctx, tx, req.OrderNumber)
	if err != nil {
		return nil, err
	}

	var returnNumber string
	if err := tx.QueryRowContext(ctx, `SELECT generate_return_number()`).Scan(&returnNumber); err != nil {
		zap.S().Errorf("❌ CreateReturn: Error generating return number: %v", err)
		return nil, fmt.Errorf("failed to generate return number: %w", err)
	}

	rt := models.Return{
		ReturnNumber: returnNumber,
		OrderNumber:  req.OrderNumber,
		Reason:       req.Reason,
		Status:       models.ReturnStatusRequested,
	}
	query := `
		INSERT INTO returns (order_id, return_number, status, reason, requested_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, query, orderID, returnNumber, rt.Status, rt.Reason).Scan(&rt.ID, &rt.CreatedAt)
	if err != nil {
		zap.S().Errorf("❌ CreateReturn: Error inserting return: %v", err)
		return nil, fmt.Errorf("failed to create return: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	zap.S().Infof("✅ CreateReturn: Created return %s", rt.ReturnNumber)
	return &rt, nil
}

// ListReturns returns returns, newest first, optionally for one order
func (r *RefundRepository) ListReturns(ctx context.Context, orderNumber string) ([]models.Return, error) {
	query := returnSelect + ` WHERE ($1 = '' OR o.order_number = $1) ORDER BY rt.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query returns: %w", err)
	}
	defer rows.Close()

	returns := []models.Return{}
	for rows.Next() {
		rt, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan return: %w", err)
		}
		returns = append(returns, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate returns: %w", err)
	}
	return returns, nil
}

// UpdateReturnStatus sets the status, stamping approved_at or received_at
func (r *RefundRepository) UpdateReturnStatus(ctx context.Context, id int64, status string) (*models.Return, error) {
	zap.S().Infof("📦 UpdateReturnStatus: Setting return id=%d to %s", id, status)

	query := `
		UPDATE returns
		SET status = $1,
		    approved_at = CASE WHEN $1 = 'approved' THEN NOW() ELSE approved_at END,
		    received_at = CASE WHEN $1 = 'received' THEN NOW() ELSE received_at END,
		    updated_at = NOW()
		WHERE id = $2
	`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update return: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("return id=%d: %w", id, ErrNotFound)
	}

	rt, err := scanReturn(r.db.QueryRowContext(ctx, returnSelect+` WHERE rt.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch return: %w", err)
	}
	return rt, nil
}
