package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// PromoController handles HTTP requests for admin promo code management
type PromoController struct {
	repository repository.PromoRepositoryInterface
}

// NewPromoController creates a new PromoController
func NewPromoController(repo repository.PromoRepositoryInterface) *PromoController {
	return &PromoController{
		repository: repo,
	}
}

var hundredPercent = decimal.NewFromInt(100)

func validatePromo(req *models.PromoCodeRequest) string {
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	if req.Code == "" {
		return "code is required"
	}
	if req.DiscountType != models.DiscountPercentage && req.DiscountType != models.DiscountFixed {
		return "discountType must be percentage or fixed"
	}
	if !req.DiscountValue.IsPositive() {
		return "discountValue must be greater than zero"
	}
	if req.DiscountType == models.DiscountPercentage && req.DiscountValue.GreaterThan(hundredPercent) {
		return "percentage discount cannot exceed 100"
	}
	if req.MinPurchase.IsNegative() {
		return "minPurchase must not be negative"
	}
	if req.MaxUses != nil && *req.MaxUses < 1 {
		return "maxUses must be at least 1"
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		return "validUntil must be after validFrom"
	}
	return ""
}

// Promos handles GET (list) and POST (create) on /admin/promo-codes
// Example request:
// POST /admin/promo-codes
// {"code": "spring10", "discountType": "percentage", "discountValue": 10, "maxUses": 100, "isActive": true}
func (c *PromoController) Promos(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Promos: Received %s request to %s", r.Method, r.URL.Path)

	ctx := context.Background()
	switch r.Method {
	case http.MethodGet:
		promos, err := c.repository.List(ctx)
		if err != nil {
			writeError(w, "ListPromos", err)
			return
		}
		writeJSON(w, "ListPromos", http.StatusOK, models.PromoCodeListResponse{PromoCodes: promos})
	case http.MethodPost:
		var req models.PromoCodeRequest
		if !decodeBody(w, r, "CreatePromo", &req) {
			return
		}
		if msg := validatePromo(&req); msg != "" {
			badRequest(w, "CreatePromo", msg)
			return
		}
		promo, err := c.repository.Create(ctx, &req)
		if err != nil {
			writeError(w, "CreatePromo", err)
			return
		}
		zap.S().Infof("✅ CreatePromo: Created promo code %s", promo.Code)
		writeJSON(w, "CreatePromo", http.StatusOK, promo)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Promo handles PUT (update) and DELETE on /admin/promo-codes/{id}
func (c *PromoController) Promo(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Promo: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := pathID(w, r, "Promo", "/admin/promo-codes/")
	if !ok {
		return
	}

	ctx := context.Background()
	switch r.Method {
	case http.MethodPut:
		var req models.PromoCodeRequest
		if !decodeBody(w, r, "UpdatePromo", &req) {
			return
		}
		if msg := validatePromo(&req); msg != "" {
			badRequest(w, "UpdatePromo", msg)
			return
		}
		promo, err := c.repository.Update(ctx, id, &req)
		if err != nil {
			writeError(w, "UpdatePromo", err)
			return
		}
		writeJSON(w, "UpdatePromo", http.StatusOK, promo)
	case http.MethodDelete:
		if err := c.repository.Delete(ctx, id); err != nil {
			writeError(w, "DeletePromo", err)
			return
		}
		zap.S().Infof("✅ DeletePromo: Deleted promo code id=%d", id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
