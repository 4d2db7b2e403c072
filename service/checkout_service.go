package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/pricing"
	"legacy-peptides/repository"
)

var (
	// ErrEmptyCart is returned when submitting a checkout with no lines
	ErrEmptyCart = errors.New("Your cart is empty")
	// ErrOrderSubmission is returned when the order could not be numbered or stored
	ErrOrderSubmission = errors.New("There was an error submitting your order. Please try again.")
)

// ValidationError lists the customer form fields that failed, keyed by field name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid checkout information: " + strings.Join(names, ", ")
}

var fieldLabels = map[string]string{
	"email":     "Email",
	"firstName": "First name",
	"lastName":  "Last name",
	"phone":     "Phone",
	"street":    "Street address",
	"city":      "City",
	"state":     "State",
	"zipCode":   "ZIP code",
}

// CheckoutOptions tunes how orders are priced and stored
type CheckoutOptions struct {
	ApplyTax bool
	Currency string
}

// CheckoutService drives the checkout wizard and submits orders
// Implements CheckoutServiceInterface
type CheckoutService struct {
	orders    repository.OrderRepositoryInterface
	promos    PromoServiceInterface
	notifier  OrderNotifier
	taxes     TaxServiceInterface
	strengths *pricing.StrengthTable
	validate  *validator.Validate
	options   CheckoutOptions
}

// NewCheckoutService creates a new CheckoutService. taxes may be nil when tax is not applied.
func NewCheckoutService(
	orders repository.OrderRepositoryInterface,
	promos PromoServiceInterface,
	notifier OrderNotifier,
	taxes TaxServiceInterface,
	strengths *pricing.StrengthTable,
	options CheckoutOptions,
) *CheckoutService {
	if options.Currency == "" {
		options.Currency = "USD"
	}
	if strengths == nil {
		strengths = pricing.DefaultStrengthTable()
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &CheckoutService{
		orders:    orders,
		promos:    promos,
		notifier:  notifier,
		taxes:     taxes,
		strengths: strengths,
		validate:  validate,
		options:   options,
	}
}

// Ensure CheckoutService implements CheckoutServiceInterface
var _ CheckoutServiceInterface = (*CheckoutService)(nil)

// ValidateCustomer checks the shipping form and returns a *ValidationError listing every bad field
func (s *CheckoutService) ValidateCustomer(info models.CustomerInfo) error {
	err := s.validate.Struct(info)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate customer: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		switch fe.Tag() {
		case "email":
			fields[name] = "Please enter a valid email address"
		default:
			label, ok := fieldLabels[name]
			if !ok {
				label = name
			}
			fields[name] = label + " is required"
		}
	}
	return &ValidationError{Fields: fields}
}

// SaveCustomer validates the shipping form and advances the wizard to payment
func (s *CheckoutService) SaveCustomer(session *cart.Session, info models.CustomerInfo) error {
	info.Email = strings.TrimSpace(info.Email)
	if err := s.ValidateCustomer(info); err != nil {
		return err
	}
	return session.Checkout.SetCustomer(info)
}

// ApplyPromo evaluates code against the cart subtotal and attaches it to the checkout
func (s *CheckoutService) ApplyPromo(ctx context.Context, session *cart.Session, code string) (*models.AppliedPromo, error) {
	if session.Checkout.Promo() != nil {
		return nil, cart.ErrPromoAlreadyApplied
	}

	applied, err := s.promos.Evaluate(ctx, code, session.Cart.Subtotal())
	if err != nil {
		return nil, err
	}

	if err := session.Checkout.ApplyPromo(applied.Record.Code, *applied); err != nil {
		return nil, err
	}
	return applied, nil
}

// Quote prices the session cart with the applied promo recomputed against the current subtotal
func (s *CheckoutService) Quote(ctx context.Context, session *cart.Session) models.Totals {
	return s.quoteItems(ctx, session.Cart.Items(), session.Checkout.Promo(), session.Checkout.State().Customer)
}

// quoteItems prices exactly the given lines
func (s *CheckoutService) quoteItems(ctx context.Context, items []models.LineItem, promo *models.AppliedPromo, customer models.CustomerInfo) models.Totals {
	subtotal := pricing.Subtotal(items)

	discount := decimal.Zero
	if promo != nil {
		discount = s.promos.Discount(promo.Record, subtotal)
	}

	tax := decimal.Zero
	if s.options.ApplyTax && s.taxes != nil && len(items) > 0 {
		tax, _ = s.taxes.Calculate(ctx, subtotal, customer)
	}

	return pricing.Quote(items, pricing.FlatShipping, tax, discount)
}

// Submit stores the order, notifies the automation webhook, counts the promo
// redemption and moves the checkout to confirmation
func (s *CheckoutService) Submit(ctx context.Context, session *cart.Session) (*models.Confirmation, error) {
	if err := session.Checkout.BeginSubmit(); err != nil {
		return nil, err
	}
	defer session.Checkout.EndSubmit()

	items := session.Cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	state := session.Checkout.State()
	customer := state.Customer

	var fields map[string]string
	if err := s.ValidateCustomer(customer); err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		fields = verr.Fields
	}
	if !models.IsValidPaymentMethod(state.PaymentMethod) {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["paymentMethod"] = "Please select a payment method"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	zap.S().Infof("📦 Submit: Submitting order for %s with %d lines", customer.Email, len(items))

	orderNumber, err := s.orders.NextOrderNumber(ctx)
	if err != nil {
		zap.S().Errorf("❌ Submit: Error generating order number: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrOrderSubmission, err)
	}

	promo := state.Promo
	totals := s.quoteItems(ctx, items, promo, customer)

	var promoCode *string
	if promo != nil {
		code := promo.Record.Code
		promoCode = &code
	}

	address := models.AddressFromCustomer(customer)
	order := &models.Order{
		OrderNumber:       orderNumber,
		Email:             customer.Email,
		Status:            models.OrderStatusPending,
		FinancialStatus:   "pending",
		FulfillmentStatus: "unfulfilled",
		Subtotal:          totals.Subtotal,
		Shipping:          totals.Shipping,
		Tax:               totals.Tax,
		Discount:          totals.Discount,
		Total:             totals.Total,
		Currency:          s.options.Currency,
		ShippingAddress:   address,
		BillingAddress:    address,
		Metadata: models.OrderMetadata{
			PaymentMethod: state.PaymentMethod,
			PromoCode:     promoCode,
			Items:         pricing.OrderItems(items, s.strengths),
		},
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		zap.S().Errorf("❌ Submit: Error storing order %s: %v", orderNumber, err)
		return nil, fmt.Errorf("%w: %w", ErrOrderSubmission, err)
	}

	if err := s.notifier.Notify(BuildWebhookPayload(created, customer)); err != nil {
		zap.S().Warnf("⚠️ Submit: Order %s stored but webhook was not queued: %v", orderNumber, err)
	}

	if promo != nil {
		if err := s.promos.RecordRedemption(ctx, promo.Record.ID); err != nil {
			zap.S().Warnf("⚠️ Submit: Order %s stored but promo %s usage was not counted: %v", orderNumber, promo.Record.Code, err)
		}
	}

	confirmation := models.Confirmation{
		OrderNumber:   orderNumber,
		PaymentMethod: state.PaymentMethod,
		Email:         customer.Email,
		Total:         totals.Total,
		Instructions:  PaymentInstructions(state.PaymentMethod),
	}

	session.Cart.Deduct(items)
	if err := session.Checkout.Complete(confirmation); err != nil {
		zap.S().Warnf("⚠️ Submit: Order %s stored but checkout could not move to confirmation: %v", orderNumber, err)
	}

	zap.S().Infof("✅ Submit: Order %s submitted, total=%s, payment=%s", orderNumber, totals.Total.StringFixed(2), state.PaymentMethod)
	return &confirmation, nil
}
