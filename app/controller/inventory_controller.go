package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

// InventoryController handles HTTP requests for sold-out toggles
type InventoryController struct {
	repository repository.InventoryRepositoryInterface
}

// NewInventoryController creates a new InventoryController
func NewInventoryController(repo repository.InventoryRepositoryInterface) *InventoryController {
	return &InventoryController{
		repository: repo,
	}
}

// ListInventory handles GET /admin/inventory
func (c *InventoryController) ListInventory(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListInventory", http.MethodGet) {
		return
	}

	ctx := context.Background()
	records, err := c.repository.List(ctx)
	if err != nil {
		writeError(w, "ListInventory", err)
		return
	}

	writeJSON(w, "ListInventory", http.StatusOK, models.InventoryListResponse{Inventory: records})
}

// Toggle handles POST /admin/inventory/{productId}/toggle
func (c *InventoryController) Toggle(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Toggle: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "Toggle", http.MethodPost) {
		return
	}

	parts := pathParts(r, "/admin/inventory/")
	if len(parts) != 2 || parts[1] != "toggle" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	ctx := context.Background()
	record, err := c.repository.Toggle(ctx, parts[0])
	if err != nil {
		writeError(w, "Toggle", err)
		return
	}

	zap.S().Infof("✅ Toggle: %s sold out=%t", record.ProductID, record.IsSoldOut)
	writeJSON(w, "Toggle", http.StatusOK, record)
}

// ToggleAll handles POST /admin/inventory/toggle-all
// Example response: {"isSoldOut": true, "updated": 42}
func (c *InventoryController) ToggleAll(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 ToggleAll: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "ToggleAll", http.MethodPost) {
		return
	}

	ctx := context.Background()
	resp, err := service.ToggleAllInventory(ctx, c.repository)
	if err != nil {
		writeError(w, "ToggleAll", err)
		return
	}

	writeJSON(w, "ToggleAll", http.StatusOK, resp)
}
