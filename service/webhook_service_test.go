package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/models"
)

func TestWebhookNotifier_PostsPayload(t *testing.T) {
	bodies := make(chan map[string]interface{}, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(server.URL, time.Second, 1)
	require.NoError(t, err)

	code := "SPRING10"
	order := &models.Order{
		OrderNumber: "LP-2026-007",
		Subtotal:    d("99.9"),
		Discount:    d("9.99"),
		Total:       d("89.91"),
		CreatedAt:   time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
		Metadata: models.OrderMetadata{
			PaymentMethod: models.PaymentCashApp,
			PromoCode:     &code,
			Items:         []models.OrderItem{models.FreeGiftOrderItem},
		},
	}
	require.NoError(t, notifier.Notify(BuildWebhookPayload(order, validCustomer())))
	require.NoError(t, notifier.Close())

	body := <-bodies
	assert.Equal(t, "LP-2026-007", body["order_number"])
	assert.Equal(t, "2026-03-01T15:00:00Z", body["order_date"])
	assert.Equal(t, "CASHAPP", body["payment_method"])
	assert.Equal(t, "SPRING10", body["promo_code"])
	customer, ok := body["customer"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "researcher@university.edu", customer["email"])
	assert.Len(t, body["items"], 1)
}

func TestWebhookNotifier_DisabledWithoutURL(t *testing.T) {
	notifier, err := NewWebhookNotifier("", time.Second, 4)
	require.NoError(t, err)

	assert.NoError(t, notifier.Notify(models.OrderWebhookPayload{OrderNumber: "LP-1"}))
	assert.NoError(t, notifier.Close())
}

func TestWebhookNotifier_UnreachableEndpointIsLoggedOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	notifier, err := NewWebhookNotifier(url, 200*time.Millisecond, 1)
	require.NoError(t, err)

	assert.NoError(t, notifier.Notify(models.OrderWebhookPayload{OrderNumber: "LP-2"}))
	assert.NoError(t, notifier.Close())
}

func TestWebhookNotifier_SaturatedPoolDoesNotBlockCaller(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started <- struct{}{}
		<-release
	}))
	defer server.Close()

	notifier, err := NewWebhookNotifier(server.URL, 5*time.Second, 1)
	require.NoError(t, err)

	require.NoError(t, notifier.Notify(models.OrderWebhookPayload{OrderNumber: "LP-1"}))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first webhook never reached the endpoint")
	}

	begin := time.Now()
	err = notifier.Notify(models.OrderWebhookPayload{OrderNumber: "LP-2"})
	elapsed := time.Since(begin)

	assert.True(t, errors.Is(err, ants.ErrPoolOverload), "got %v", err)
	assert.Less(t, elapsed, 200*time.Millisecond)

	close(release)
	assert.NoError(t, notifier.Close())
}
