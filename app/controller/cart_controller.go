package controller

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/pricing"
	"legacy-peptides/repository"
)

// CartController handles HTTP requests for the shopper's cart
type CartController struct {
	sessions *SessionManager
	catalog  repository.CatalogRepositoryInterface
}

// NewCartController creates a new CartController
func NewCartController(sessions *SessionManager, catalog repository.CatalogRepositoryInterface) *CartController {
	return &CartController{
		sessions: sessions,
		catalog:  catalog,
	}
}

// mutableSession resolves the session for a cart change. The cart is frozen
// while its order is being submitted.
func (c *CartController) mutableSession(w http.ResponseWriter, r *http.Request, handler string) (*cart.Session, bool) {
	session, err := c.sessions.Session(w, r)
	if err != nil {
		writeError(w, handler, err)
		return nil, false
	}
	if session.Checkout.Submitting() {
		writeError(w, handler, cart.ErrSubmissionInProgress)
		return nil, false
	}
	return session, true
}

func cartResponse(c *cart.Cart) models.CartResponse {
	return models.CartResponse{
		Items:    pricing.DisplayItems(c.Items()),
		Count:    c.Count(),
		Subtotal: c.Subtotal(),
	}
}

// GetCart handles GET /api/cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "GetCart", http.MethodGet) {
		return
	}

	session, err := c.sessions.Session(w, r)
	if err != nil {
		writeError(w, "GetCart", err)
		return
	}

	writeJSON(w, "GetCart", http.StatusOK, cartResponse(session.Cart))
}

// AddItem handles POST /api/cart/items. The line is priced from the catalog.
// Example request:
// POST /api/cart/items
// {"id": "ghk-cu-100mg", "quantity": 1}
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 AddItem: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "AddItem", http.MethodPost) {
		return
	}

	session, ok := c.mutableSession(w, r, "AddItem")
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if !decodeBody(w, r, "AddItem", &req) {
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	if req.ID == "" {
		badRequest(w, "AddItem", "id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	variant, err := c.catalog.GetVariant(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			badRequest(w, "AddItem", "Unknown product: "+req.ID)
			return
		}
		writeError(w, "AddItem", err)
		return
	}
	if variant.SoldOut {
		writeError(w, "AddItem", cart.ErrSoldOut)
		return
	}

	item := models.LineItem{
		ID:         variant.VariantID,
		OriginalID: variant.ProductIDRoot,
		Name:       variant.Name,
		UnitPrice:  variant.Price,
		Image:      variant.ImageURL,
		Category:   variant.Category,
		SafeCode:   variant.SafeCode,
	}
	if err := session.Cart.AddItem(item, req.Quantity); err != nil {
		writeError(w, "AddItem", err)
		return
	}

	zap.S().Infof("✅ AddItem: Added %d x %s at %s to session %s", req.Quantity, req.ID, variant.Price.StringFixed(2), session.ID)
	writeJSON(w, "AddItem", http.StatusOK, cartResponse(session.Cart))
}

// UpdateItem handles PATCH /api/cart/items/{id}. A quantity of zero or less removes the line.
// Example request: {"quantity": 3}
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "UpdateItem", http.MethodPatch) {
		return
	}

	parts := pathParts(r, "/api/cart/items/")
	if len(parts) != 1 {
		badRequest(w, "UpdateItem", "item id is required in path")
		return
	}

	session, ok := c.mutableSession(w, r, "UpdateItem")
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if !decodeBody(w, r, "UpdateItem", &req) {
		return
	}

	session.Cart.UpdateQuantity(parts[0], req.Quantity)
	writeJSON(w, "UpdateItem", http.StatusOK, cartResponse(session.Cart))
}

// RemoveItem handles DELETE /api/cart/items/{id}
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "RemoveItem", http.MethodDelete) {
		return
	}

	parts := pathParts(r, "/api/cart/items/")
	if len(parts) != 1 {
		badRequest(w, "RemoveItem", "item id is required in path")
		return
	}

	session, ok := c.mutableSession(w, r, "RemoveItem")
	if !ok {
		return
	}

	session.Cart.RemoveItem(parts[0])
	writeJSON(w, "RemoveItem", http.StatusOK, cartResponse(session.Cart))
}

// ClearCart handles DELETE /api/cart
func (c *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ClearCart", http.MethodDelete) {
		return
	}

	session, ok := c.mutableSession(w, r, "ClearCart")
	if !ok {
		return
	}

	session.Cart.Clear()
	writeJSON(w, "ClearCart", http.StatusOK, cartResponse(session.Cart))
}
