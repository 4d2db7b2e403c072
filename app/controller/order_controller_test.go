package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

func storedOrder() models.Order {
	code := "SPRING10"
	return models.Order{
		OrderNumber: "LP-2026-001",
		Email:       "ada@lab.org",
		Status:      models.OrderStatusPending,
		Subtotal:    d("1099.90"),
		Discount:    d("109.99"),
		Total:       d("989.91"),
		ShippingAddress: models.Address{
			FirstName: "Ada",
			LastName:  "Lovelace",
		},
		Metadata: models.OrderMetadata{
			PaymentMethod: models.PaymentZelle,
			PromoCode:     &code,
			Items: []models.OrderItem{
				{Product: "BPC-157", Strength: "10mg", Quantity: 2, Price: d("49.95")},
				models.FreeGiftOrderItem,
			},
		},
		CreatedAt: time.Date(2026, 3, 1, 15, 4, 0, 0, time.UTC),
	}
}

func TestOrders_ExportCSV(t *testing.T) {
	c := NewOrderController(&fakeOrderRepo{orders: []models.Order{storedOrder()}})

	rec := httptest.NewRecorder()
	c.ExportCSV(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/export.csv", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Order Number,Date,Customer,Email,Status,Payment Method,Promo Code,Items,Subtotal,Discount,Tax,Total", lines[0])
	assert.Equal(t, `LP-2026-001,2026-03-01 15:04,Ada Lovelace,ada@lab.org,pending,zelle,SPRING10,3,"$1,099.90",$109.99,$0.00,$989.91`, lines[1])
}

func TestOrders_UpdateStatus(t *testing.T) {
	repo := &fakeOrderRepo{orders: []models.Order{storedOrder()}}
	cl := &client{t: t, handler: http.HandlerFunc(NewOrderController(repo).UpdateStatus)}

	rec := cl.do(http.MethodPatch, "/admin/orders/LP-2026-001/status", models.UpdateOrderStatusRequest{Status: "shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, models.OrderStatusShipped, repo.orders[0].Status)

	rec = cl.do(http.MethodPatch, "/admin/orders/LP-2026-001/status", models.UpdateOrderStatusRequest{Status: "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = cl.do(http.MethodPatch, "/admin/orders/LP-404/status", models.UpdateOrderStatusRequest{Status: "shipped"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrders_GetAndTracking(t *testing.T) {
	c := NewOrderController(&fakeOrderRepo{orders: []models.Order{storedOrder()}})

	rec := httptest.NewRecorder()
	c.GetOrder(rec, httptest.NewRequest(http.MethodGet, "/admin/orders/LP-404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cl := &client{t: t, handler: http.HandlerFunc(c.AddTracking)}
	rec = cl.do(http.MethodPost, "/admin/orders/LP-2026-001/tracking", models.AddTrackingRequest{Carrier: "UPS", TrackingNumber: "1Z999"})
	require.Equal(t, http.StatusOK, rec.Code)
	var tracking models.OrderTracking
	decodeJSON(t, rec, &tracking)
	assert.Equal(t, "LP-2026-001", tracking.OrderNumber)
	assert.Equal(t, "https://www.ups.com/track?tracknum=1Z999", tracking.TrackingURL)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&service.ValidationError{Fields: map[string]string{"email": "x"}}, http.StatusBadRequest},
		{service.ErrExpired, http.StatusBadRequest},
		{service.ErrEmptyCart, http.StatusBadRequest},
		{service.ErrEmptyNote, http.StatusBadRequest},
		{cart.ErrSoldOut, http.StatusConflict},
		{cart.ErrInvalidQuantity, http.StatusBadRequest},
		{repository.ErrNotFound, http.StatusNotFound},
		{cart.ErrSubmissionInProgress, http.StatusConflict},
		{cart.ErrInvalidTransition, http.StatusConflict},
		{errors.Join(service.ErrOrderSubmission, errors.New("rpc")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
