package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// CatalogController handles HTTP requests for the storefront catalog
type CatalogController struct {
	repository repository.CatalogRepositoryInterface
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(repo repository.CatalogRepositoryInterface) *CatalogController {
	return &CatalogController{
		repository: repo,
	}
}

// ListProducts handles GET /api/products
// Example response:
// {
//   "products": [
//     {
//       "productIdRoot": "ghk-cu",
//       "name": "GHK-CU",
//       "variants": [{"variant_id": "ghk-cu-50mg", "strength": "50mg", "price": 49.95}],
//       "minPrice": 49.95,
//       "soldOut": false
//     }
//   ]
// }
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 ListProducts: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "ListProducts", http.MethodGet) {
		return
	}

	ctx := context.Background()
	groups, err := c.repository.ListGrouped(ctx)
	if err != nil {
		writeError(w, "ListProducts", err)
		return
	}

	zap.S().Infof("✅ ListProducts: Returning %d products", len(groups))
	writeJSON(w, "ListProducts", http.StatusOK, models.CatalogResponse{Products: groups})
}
