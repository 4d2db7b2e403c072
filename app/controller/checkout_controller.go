package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/pricing"
	"legacy-peptides/service"
)

// CheckoutController handles HTTP requests for the checkout wizard
type CheckoutController struct {
	sessions *SessionManager
	checkout service.CheckoutServiceInterface
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(sessions *SessionManager, checkout service.CheckoutServiceInterface) *CheckoutController {
	return &CheckoutController{
		sessions: sessions,
		checkout: checkout,
	}
}

func (c *CheckoutController) view(ctx context.Context, session *cart.Session) models.CheckoutResponse {
	state := session.Checkout.State()
	return models.CheckoutResponse{
		Step:          string(state.Step),
		Customer:      state.Customer,
		PaymentMethod: state.PaymentMethod,
		Promo:         state.Promo,
		Items:         pricing.DisplayItems(session.Cart.Items()),
		Totals:        c.checkout.Quote(ctx, session),
		Confirmation:  state.Confirmation,
	}
}

// session resolves the session after the method check, writing the error itself
func (c *CheckoutController) session(w http.ResponseWriter, r *http.Request, handler string, method string) (*cart.Session, bool) {
	if !allowMethod(w, r, handler, method) {
		return nil, false
	}
	session, err := c.sessions.Session(w, r)
	if err != nil {
		writeError(w, handler, err)
		return nil, false
	}
	return session, true
}

// GetCheckout handles GET /api/checkout
func (c *CheckoutController) GetCheckout(w http.ResponseWriter, r *http.Request) {
	session, ok := c.session(w, r, "GetCheckout", http.MethodGet)
	if !ok {
		return
	}
	writeJSON(w, "GetCheckout", http.StatusOK, c.view(r.Context(), session))
}

// SaveInfo handles POST /api/checkout/info
// Example request:
// {"email": "ada@lab.org", "firstName": "Ada", "lastName": "Lovelace", "phone": "555-0100",
//  "street": "1 Lab Way", "city": "Austin", "state": "TX", "zipCode": "78701", "country": "US"}
func (c *CheckoutController) SaveInfo(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 SaveInfo: Received %s request to %s", r.Method, r.URL.Path)

	session, ok := c.session(w, r, "SaveInfo", http.MethodPost)
	if !ok {
		return
	}

	var req models.CustomerInfo
	if !decodeBody(w, r, "SaveInfo", &req) {
		return
	}

	if err := c.checkout.SaveCustomer(session, req); err != nil {
		writeError(w, "SaveInfo", err)
		return
	}
	writeJSON(w, "SaveInfo", http.StatusOK, c.view(r.Context(), session))
}

// Back handles POST /api/checkout/back
func (c *CheckoutController) Back(w http.ResponseWriter, r *http.Request) {
	session, ok := c.session(w, r, "Back", http.MethodPost)
	if !ok {
		return
	}

	if err := session.Checkout.Back(); err != nil {
		writeError(w, "Back", err)
		return
	}
	writeJSON(w, "Back", http.StatusOK, c.view(r.Context(), session))
}

// ApplyPromo handles POST /api/checkout/promo
// Example request: {"code": "SPRING10"}
func (c *CheckoutController) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 ApplyPromo: Received %s request to %s", r.Method, r.URL.Path)

	session, ok := c.session(w, r, "ApplyPromo", http.MethodPost)
	if !ok {
		return
	}

	var req models.ApplyPromoRequest
	if !decodeBody(w, r, "ApplyPromo", &req) {
		return
	}

	ctx := r.Context()
	if _, err := c.checkout.ApplyPromo(ctx, session, req.Code); err != nil {
		writeError(w, "ApplyPromo", err)
		return
	}
	writeJSON(w, "ApplyPromo", http.StatusOK, c.view(ctx, session))
}

// RemovePromo handles DELETE /api/checkout/promo
func (c *CheckoutController) RemovePromo(w http.ResponseWriter, r *http.Request) {
	session, ok := c.session(w, r, "RemovePromo", http.MethodDelete)
	if !ok {
		return
	}

	session.Checkout.RemovePromo()
	writeJSON(w, "RemovePromo", http.StatusOK, c.view(r.Context(), session))
}

// SelectPayment handles POST /api/checkout/payment
// Example request: {"paymentMethod": "zelle"}
func (c *CheckoutController) SelectPayment(w http.ResponseWriter, r *http.Request) {
	session, ok := c.session(w, r, "SelectPayment", http.MethodPost)
	if !ok {
		return
	}

	var req models.SelectPaymentRequest
	if !decodeBody(w, r, "SelectPayment", &req) {
		return
	}

	if err := session.Checkout.SelectPayment(req.PaymentMethod); err != nil {
		writeError(w, "SelectPayment", err)
		return
	}
	writeJSON(w, "SelectPayment", http.StatusOK, c.view(r.Context(), session))
}

// Submit handles POST /api/checkout/submit
// Example response:
// {
//   "orderNumber": "LP-2026-001",
//   "paymentMethod": "zelle",
//   "email": "ada@lab.org",
//   "total": 89.91,
//   "instructions": {"title": "Zelle", "steps": ["..."]}
// }
func (c *CheckoutController) Submit(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Submit: Received %s request to %s", r.Method, r.URL.Path)

	session, ok := c.session(w, r, "Submit", http.MethodPost)
	if !ok {
		return
	}

	// Detached from the request so a dropped connection cannot abandon a half-stored order
	confirmation, err := c.checkout.Submit(context.Background(), session)
	if err != nil {
		writeError(w, "Submit", err)
		return
	}
	writeJSON(w, "Submit", http.StatusOK, confirmation)
}

// Reset handles POST /api/checkout/reset
func (c *CheckoutController) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := c.session(w, r, "Reset", http.MethodPost)
	if !ok {
		return
	}

	session.Checkout.Reset()
	writeJSON(w, "Reset", http.StatusOK, c.view(r.Context(), session))
}
