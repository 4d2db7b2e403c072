package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

// ProductController handles HTTP requests for admin product management
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

func validateProduct(req *models.ProductRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if req.Price.IsNegative() {
		return "price must not be negative"
	}
	return ""
}

// ListProducts handles GET /admin/products
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListProducts", http.MethodGet) {
		return
	}

	ctx := context.Background()
	products, err := c.repository.List(ctx)
	if err != nil {
		writeError(w, "ListProducts", err)
		return
	}

	writeJSON(w, "ListProducts", http.StatusOK, models.ProductListResponse{Products: products})
}

// CreateProduct handles POST /admin/products
// Example request:
// {"name": "BPC-157", "category": "Recovery", "safeCode": "LP-BPC-10", "price": 49.95, "concentration": "10mg"}
func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "CreateProduct", http.MethodPost) {
		return
	}

	var req models.ProductRequest
	if !decodeBody(w, r, "CreateProduct", &req) {
		return
	}
	if msg := validateProduct(&req); msg != "" {
		badRequest(w, "CreateProduct", msg)
		return
	}

	ctx := context.Background()
	product, err := c.repository.Create(ctx, service.NewProduct(&req, time.Now()))
	if err != nil {
		writeError(w, "CreateProduct", err)
		return
	}

	zap.S().Infof("✅ CreateProduct: Created product id=%d slug=%s", product.ID, product.Slug)
	writeJSON(w, "CreateProduct", http.StatusOK, product)
}

// Product handles /admin/products/{id}: PUT updates, DELETE removes,
// PATCH /admin/products/{id}/price changes the price only
func (c *ProductController) Product(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Product: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := pathID(w, r, "Product", "/admin/products/")
	if !ok {
		return
	}
	parts := pathParts(r, "/admin/products/")
	ctx := context.Background()

	if len(parts) == 2 && parts[1] == "price" {
		if !allowMethod(w, r, "UpdatePrice", http.MethodPatch) {
			return
		}
		var req models.UpdatePriceRequest
		if !decodeBody(w, r, "UpdatePrice", &req) {
			return
		}
		if req.Price.IsNegative() {
			badRequest(w, "UpdatePrice", "price must not be negative")
			return
		}
		product, err := c.repository.UpdatePrice(ctx, id, req.Price)
		if err != nil {
			writeError(w, "UpdatePrice", err)
			return
		}
		writeJSON(w, "UpdatePrice", http.StatusOK, product)
		return
	}

	if len(parts) != 1 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req models.ProductRequest
		if !decodeBody(w, r, "UpdateProduct", &req) {
			return
		}
		if msg := validateProduct(&req); msg != "" {
			badRequest(w, "UpdateProduct", msg)
			return
		}
		product, err := c.repository.Update(ctx, id, &req)
		if err != nil {
			writeError(w, "UpdateProduct", err)
			return
		}
		writeJSON(w, "UpdateProduct", http.StatusOK, product)
	case http.MethodDelete:
		if err := c.repository.Delete(ctx, id); err != nil {
			writeError(w, "DeleteProduct", err)
			return
		}
		zap.S().Infof("✅ DeleteProduct: Deleted product id=%d", id)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
