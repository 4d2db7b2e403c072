package service

import (
	"strings"

	"legacy-peptides/models"
)

const supportEmail = "orders@healthylegacypeptides.com"

var paymentInstructions = map[string]models.PaymentInstructions{
	models.PaymentACHInvoice: {
		Title: "ACH Invoice via Relay",
		Steps: []string{
			"Your official business invoice will be emailed at 6:00 PM EST (Monday–Saturday).",
			"You can pay directly through your bank account using ACH transfer or debit account.",
			"Once payment is received and confirmed, your order status will update to Paid and move into processing.",
			"Please complete payment within 24 hours to secure your order.",
			"Unpaid orders after 24 hours will be automatically canceled.",
			"If you don't see the invoice by 6:30 PM EST, please check your spam or promotions folder or contact " + supportEmail + ".",
		},
	},
	models.PaymentZelle: {
		Title: "Zelle",
		Steps: []string{
			"Open your Zelle app or your bank's Zelle transfer option.",
			"Send the exact total amount shown on this page.",
			"In the description box, enter your Order Number only. Do not add any additional notes or emojis.",
			"Once payment is received, your order will be updated to Paid and move into fulfillment.",
			"Please complete payment within 24 hours to hold your order. Orders not paid within that timeframe will be automatically canceled.",
			"Zelle and Chase users: first-time payments may fail.",
			"If you have any issues, contact us at " + supportEmail + ".",
		},
	},
	models.PaymentCashApp: {
		Title: "Cash App",
		Steps: []string{
			"Open your Cash App.",
			"Send the exact total amount shown on this page.",
			"In the \"For\" or \"Notes\" field, enter your Order Number only.",
			"Once payment is received, you'll receive a confirmation email and your order will move into processing.",
			"Payments must be made within 24 hours of placing your order. Orders not paid in time will be canceled automatically.",
			"If you don't receive a confirmation within 24–48 hours after paying, please email " + supportEmail + ".",
		},
	},
}

// PaymentInstructions returns the static manual-payment copy for a method
func PaymentInstructions(method string) models.PaymentInstructions {
	instructions, ok := paymentInstructions[method]
	if !ok {
		return models.PaymentInstructions{Title: method, Steps: []string{}}
	}
	steps := make([]string, len(instructions.Steps))
	copy(steps, instructions.Steps)
	return models.PaymentInstructions{Title: instructions.Title, Steps: steps}
}

func upperPaymentMethod(method string) string {
	return strings.ToUpper(method)
}
