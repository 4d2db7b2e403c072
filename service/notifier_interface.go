package service

import "legacy-peptides/models"

// OrderNotifier hands a stored order to the external automation.
// Notify must not block on the remote call.
type OrderNotifier interface {
	Notify(payload models.OrderWebhookPayload) error
	Close() error
}
