package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/models"
	"legacy-peptides/service"
)

type checkoutFixture struct {
	orders   *fakeOrderRepo
	promos   *fakePromoRepo
	checkout *CheckoutController
	client   *client
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	orders := &fakeOrderRepo{}
	promos := &fakePromoRepo{promos: map[string]models.PromoCode{
		"SPRING10": {ID: 1, Code: "SPRING10", DiscountType: models.DiscountPercentage, DiscountValue: d("10"), IsActive: true},
	}}
	svc := service.NewCheckoutService(orders, service.NewPromoService(promos, nil), nopNotifier{}, nil, nil, service.CheckoutOptions{})

	sessions := newTestSessions(t)
	carts := NewCartController(sessions, newFakeCatalog())
	checkout := NewCheckoutController(sessions, svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cart/items", carts.AddItem)
	mux.HandleFunc("/api/checkout", checkout.GetCheckout)
	mux.HandleFunc("/api/checkout/info", checkout.SaveInfo)
	mux.HandleFunc("/api/checkout/back", checkout.Back)
	mux.HandleFunc("/api/checkout/promo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			checkout.RemovePromo(w, r)
			return
		}
		checkout.ApplyPromo(w, r)
	})
	mux.HandleFunc("/api/checkout/payment", checkout.SelectPayment)
	mux.HandleFunc("/api/checkout/submit", checkout.Submit)
	mux.HandleFunc("/api/checkout/reset", checkout.Reset)

	return &checkoutFixture{orders: orders, promos: promos, checkout: checkout, client: &client{t: t, handler: mux}}
}

func shopper() models.CustomerInfo {
	return models.CustomerInfo{
		Email: "ada@lab.org", FirstName: "Ada", LastName: "Lovelace", Phone: "555-0100",
		Street: "1 Lab Way", City: "Austin", State: "TX", ZipCode: "78701", Country: "US",
	}
}

func TestCheckout_FullFlow(t *testing.T) {
	f := newCheckoutFixture(t)
	cl := f.client

	require.Equal(t, http.StatusOK, cl.do(http.MethodPost, "/api/cart/items", bpcRequest()).Code)

	rec := cl.do(http.MethodPost, "/api/checkout/promo", models.ApplyPromoRequest{Code: "spring10"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view models.CheckoutResponse
	decodeJSON(t, rec, &view)
	assert.True(t, view.Totals.Total.Equal(d("89.91")))

	rec = cl.do(http.MethodPost, "/api/checkout/info", shopper())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeJSON(t, rec, &view)
	assert.Equal(t, "payment", view.Step)
	assert.Equal(t, models.PaymentACHInvoice, view.PaymentMethod)

	rec = cl.do(http.MethodPost, "/api/checkout/payment", models.SelectPaymentRequest{PaymentMethod: models.PaymentZelle})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = cl.do(http.MethodPost, "/api/checkout/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var confirmation models.Confirmation
	decodeJSON(t, rec, &confirmation)
	assert.Equal(t, "LP-2026-001", confirmation.OrderNumber)
	assert.True(t, confirmation.Total.Equal(d("89.91")))
	assert.Equal(t, "Zelle", confirmation.Instructions.Title)
	require.Len(t, f.orders.orders, 1)

	decodeJSON(t, cl.do(http.MethodGet, "/api/checkout", nil), &view)
	assert.Equal(t, "confirmation", view.Step)
	assert.Empty(t, view.Items)

	rec = cl.do(http.MethodPost, "/api/checkout/reset", nil)
	decodeJSON(t, rec, &view)
	assert.Equal(t, "info", view.Step)
}

func TestCheckout_ValidationFieldsReturned(t *testing.T) {
	f := newCheckoutFixture(t)

	info := shopper()
	info.Email = "nope"
	info.City = ""
	rec := f.client.do(http.MethodPost, "/api/checkout/info", info)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Please enter a valid email address", resp.Fields["email"])
	assert.Equal(t, "City is required", resp.Fields["city"])
}

func TestCheckout_PromoRejectionAndConflict(t *testing.T) {
	f := newCheckoutFixture(t)
	cl := f.client
	cl.do(http.MethodPost, "/api/cart/items", bpcRequest())

	rec := cl.do(http.MethodPost, "/api/checkout/promo", models.ApplyPromoRequest{Code: "BOGUS"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Invalid promo code", resp.Error)

	require.Equal(t, http.StatusOK, cl.do(http.MethodPost, "/api/checkout/promo", models.ApplyPromoRequest{Code: "SPRING10"}).Code)
	assert.Equal(t, http.StatusConflict, cl.do(http.MethodPost, "/api/checkout/promo", models.ApplyPromoRequest{Code: "SPRING10"}).Code)
	assert.Equal(t, http.StatusOK, cl.do(http.MethodDelete, "/api/checkout/promo", nil).Code)
}

func TestCheckout_SubmitFailures(t *testing.T) {
	f := newCheckoutFixture(t)
	cl := f.client

	cl.do(http.MethodPost, "/api/checkout/info", shopper())
	rec := cl.do(http.MethodPost, "/api/checkout/submit", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp models.ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "Your cart is empty", resp.Error)

	cl.do(http.MethodPost, "/api/cart/items", bpcRequest())
	f.orders.numberErr = errors.New("rpc down")
	rec = cl.do(http.MethodPost, "/api/checkout/submit", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	decodeJSON(t, rec, &resp)
	assert.Equal(t, service.ErrOrderSubmission.Error(), resp.Error)
}

func TestCheckout_StepGuards(t *testing.T) {
	f := newCheckoutFixture(t)

	rec := f.client.do(http.MethodPost, "/api/checkout/payment", models.SelectPaymentRequest{PaymentMethod: models.PaymentZelle})
	assert.Equal(t, http.StatusConflict, rec.Code)

	f.client.do(http.MethodPost, "/api/checkout/info", shopper())
	rec = f.client.do(http.MethodPost, "/api/checkout/payment", models.SelectPaymentRequest{PaymentMethod: "paypal"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusOK, f.client.do(http.MethodPost, "/api/checkout/back", nil).Code)
}

func TestCheckout_ApplyPromoStopsWithAbandonedRequest(t *testing.T) {
	f := newCheckoutFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/promo", strings.NewReader(`{"code":"SPRING10"}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.checkout.ApplyPromo(rec, req)

	assert.ErrorIs(t, f.promos.lookupErr, context.Canceled)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
