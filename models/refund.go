package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Refund statuses
const (
	RefundStatusPending   = "pending"
	RefundStatusApproved  = "approved"
	RefundStatusProcessed = "processed"
	RefundStatusRejected  = "rejected"
)

// Return statuses
const (
	ReturnStatusRequested = "requested"
	ReturnStatusApproved  = "approved"
	ReturnStatusReceived  = "received"
	ReturnStatusRefunded  = "refunded"
	ReturnStatusRejected  = "rejected"
)

// IsValidRefundStatus reports whether status is a known refund status
func IsValidRefundStatus(status string) bool {
	switch status {
	case RefundStatusPending, RefundStatusApproved, RefundStatusProcessed, RefundStatusRejected:
		return true
	}
	return false
}

// IsValidReturnStatus reports whether status is a known return status
func IsValidReturnStatus(status string) bool {
	switch status {
	case ReturnStatusRequested, ReturnStatusApproved, ReturnStatusReceived, ReturnStatusRefunded, ReturnStatusRejected:
		return true
	}
	return false
}

// Refund represents a row in refunds
type Refund struct {
	ID           int64           `json:"id"`
	RefundNumber string          `json:"refundNumber"`
	OrderNumber  string          `json:"orderNumber"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	Status       string          `json:"status"`
	ProcessedAt  *time.Time      `json:"processedAt,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateRefundRequest represents the request body for POST /admin/refunds
// Example: {"orderNumber": "LP-2026-014", "amount": 49.95, "reason": "Damaged vial"}
type CreateRefundRequest struct {
	OrderNumber string          `json:"orderNumber"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
}

// RefundListResponse represents the response for listing refunds
type RefundListResponse struct {
	Refunds []Refund `json:"refunds"`
}

// Return represents a row in returns
type Return struct {
	ID           int64      `json:"id"`
	ReturnNumber string     `json:"returnNumber"`
	OrderNumber  string     `json:"orderNumber"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`
	ReceivedAt   *time.Time `json:"receivedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CreateReturnRequest represents the request body for POST /admin/returns
type CreateReturnRequest struct {
	OrderNumber string `json:"orderNumber"`
	Reason      string `json:"reason"`
}

// ReturnListResponse represents the response for listing returns
type ReturnListResponse struct {
	Returns []Return `json:"returns"`
}

// UpdateStatusRequest represents a generic status change body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
