package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"legacy-peptides/models"
)

// WebhookNotifier posts new orders to the automation webhook on a bounded worker pool.
// Failures are logged and never retried.
// Implements OrderNotifier
type WebhookNotifier struct {
	url     string
	client  *http.Client
	timeout time.Duration
	pool    *ants.Pool
	wg      sync.WaitGroup
}

// NewWebhookNotifier creates a notifier with the given number of workers.
// An empty url returns a notifier that only logs.
func NewWebhookNotifier(url string, timeout time.Duration, workers int) (*WebhookNotifier, error) {
	if workers <= 0 {
		workers = 1
	}

	n := &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}

	if url == "" {
		zap.S().Warnf("⚠️ WebhookNotifier: ORDER_WEBHOOK_URL is not set, order notifications are disabled")
		return n, nil
	}

	// Submit never waits: a saturated pool rejects with ants.ErrPoolOverload
	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			zap.S().Errorf("❌ WebhookNotifier: Worker panic: %v", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook pool: %w", err)
	}
	n.pool = pool
	return n, nil
}

// Ensure WebhookNotifier implements OrderNotifier
var _ OrderNotifier = (*WebhookNotifier)(nil)

// Notify hands the payload to a free worker and returns immediately.
// When every worker is busy the notification is dropped and an error wrapping
// ants.ErrPoolOverload is returned.
func (n *WebhookNotifier) Notify(payload models.OrderWebhookPayload) error {
	if n.pool == nil {
		zap.S().Infof("📨 Notify: Webhook disabled, skipping order %s", payload.OrderNumber)
		return nil
	}

	n.wg.Add(1)
	err := n.pool.Submit(func() {
		defer n.wg.Done()
		if err := n.send(payload); err != nil {
			zap.S().Errorf("❌ Notify: Webhook failed for order %s: %v", payload.OrderNumber, err)
			return
		}
		zap.S().Infof("✅ Notify: Webhook delivered for order %s", payload.OrderNumber)
	})
	if err != nil {
		n.wg.Done()
		return fmt.Errorf("failed to queue webhook for order %s: %w", payload.OrderNumber, err)
	}
	return nil
}

func (n *WebhookNotifier) send(payload models.OrderWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// Wait blocks until every queued notification has finished
func (n *WebhookNotifier) Wait() {
	n.wg.Wait()
}

// Close waits for in-flight notifications and releases the pool
func (n *WebhookNotifier) Close() error {
	if n.pool == nil {
		return nil
	}
	n.wg.Wait()
	n.pool.Release()
	return nil
}

// BuildWebhookPayload assembles the automation payload for a stored order
func BuildWebhookPayload(order *models.Order, customer models.CustomerInfo) models.OrderWebhookPayload {
	return models.OrderWebhookPayload{
		OrderNumber:   order.OrderNumber,
		OrderDate:     order.CreatedAt.UTC().Format(time.RFC3339),
		PaymentMethod: upperPaymentMethod(order.Metadata.PaymentMethod),
		Customer: models.WebhookCustomer{
			Email:     customer.Email,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Phone:     customer.Phone,
			Street:    customer.Street,
			Apartment: customer.Apartment,
			City:      customer.City,
			State:     customer.State,
			Zip:       customer.ZipCode,
			Country:   customer.Country,
		},
		Items:      order.Metadata.Items,
		OrderTotal: order.Total.Round(2),
		Subtotal:   order.Subtotal.Round(2),
		Shipping:   order.Shipping.Round(2),
		Tax:        order.Tax.Round(2),
		Discount:   order.Discount.Round(2),
		PromoCode:  order.Metadata.PromoCode,
	}
}
