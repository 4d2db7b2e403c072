package controller

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// RefundController handles HTTP requests for refunds and returns
type RefundController struct {
	repository repository.RefundRepositoryInterface
}

// NewRefundController creates a new RefundController
func NewRefundController(repo repository.RefundRepositoryInterface) *RefundController {
	return &RefundController{
		repository: repo,
	}
}

// Refunds handles GET /admin/refunds?order=LP-2026-014 and POST /admin/refunds
// Example request: {"orderNumber": "LP-2026-014", "amount": 49.95, "reason": "Damaged vial"}
func (c *RefundController) Refunds(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Refunds: Received %s request to %s", r.Method, r.URL.Path)

	ctx := context.Background()
	switch r.Method {
	case http.MethodGet:
		refunds, err := c.repository.ListRefunds(ctx, strings.TrimSpace(r.URL.Query().Get("order")))
		if err != nil {
			writeError(w, "ListRefunds", err)
			return
		}
		writeJSON(w, "ListRefunds", http.StatusOK, models.RefundListResponse{Refunds: refunds})
	case http.MethodPost:
		var req models.CreateRefundRequest
		if !decodeBody(w, r, "CreateRefund", &req) {
			return
		}
		if strings.TrimSpace(req.OrderNumber) == "" {
			badRequest(w, "CreateRefund", "orderNumber is required")
			return
		}
		if !req.Amount.IsPositive() {
			badRequest(w, "CreateRefund", "amount must be greater than zero")
			return
		}
		refund, err := c.repository.CreateRefund(ctx, &req)
		if err != nil {
			writeError(w, "CreateRefund", err)
			return
		}
		zap.S().Infof("✅ CreateRefund: Created refund %s for order %s", refund.RefundNumber, refund.OrderNumber)
		writeJSON(w, "CreateRefund", http.StatusOK, refund)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// RefundStatus handles PATCH /admin/refunds/{id}/status
// Example request: {"status": "processed"}
func (c *RefundController) RefundStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "RefundStatus", http.MethodPatch) {
		return
	}
	id, ok := pathID(w, r, "RefundStatus", "/admin/refunds/")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if !decodeBody(w, r, "RefundStatus", &req) {
		return
	}
	if !models.IsValidRefundStatus(req.Status) {
		badRequest(w, "RefundStatus", "Invalid status: "+req.Status)
		return
	}

	ctx := context.Background()
	refund, err := c.repository.UpdateRefundStatus(ctx, id, req.Status)
	if err != nil {
		writeError(w, "RefundStatus", err)
		return
	}
	writeJSON(w, "RefundStatus", http.StatusOK, refund)
}

// Returns handles GET /admin/returns?order=LP-2026-014 and POST /admin/returns
// Example request: {"orderNumber": "LP-2026-014", "reason": "Wrong strength"}
func (c *RefundController) Returns(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Returns: Received %s request to %s", r.Method, r.URL.Path)

	ctx := context.Background()
	switch r.Method {
	case http.MethodGet:
		returns, err := c.repository.ListReturns(ctx, strings.TrimSpace(r.URL.Query().Get("order")))
		if err != nil {
			writeError(w, "ListReturns", err)
			return
		}
		writeJSON(w, "ListReturns", http.StatusOK, models.ReturnListResponse{Returns: returns})
	case http.MethodPost:
		var req models.CreateReturnRequest
		if !decodeBody(w, r, "CreateReturn", &req) {
			return
		}
		if strings.TrimSpace(req.OrderNumber) == "" {
			badRequest(w, "CreateReturn", "orderNumber is required")
			return
		}
		ret, err := c.repository.CreateReturn(ctx, &req)
		if err != nil {
			writeError(w, "CreateReturn", err)
			return
		}
		zap.S().Infof("✅ CreateReturn: Created return %s for order %s", ret.ReturnNumber, ret.OrderNumber)
		writeJSON(w, "CreateReturn", http.StatusOK, ret)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ReturnStatus handles PATCH /admin/returns/{id}/status
// Example request: {"status": "received"}
func (c *RefundController) ReturnStatus(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ReturnStatus", http.MethodPatch) {
		return
	}
	id, ok := pathID(w, r, "ReturnStatus", "/admin/returns/")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if !decodeBody(w, r, "ReturnStatus", &req) {
		return
	}
	if !models.IsValidReturnStatus(req.Status) {
		badRequest(w, "ReturnStatus", "Invalid status: "+req.Status)
		return
	}

	ctx := context.Background()
	ret, err := c.repository.UpdateReturnStatus(ctx, id, req.Status)
	if err != nil {
		writeError(w, "ReturnStatus", err)
		return
	}
	writeJSON(w, "ReturnStatus", http.StatusOK, ret)
}
