package cart

import (
	"errors"
	"sync"

	"legacy-peptides/models"
)

// Step is a position in the checkout wizard
type Step string

const (
	StepInfo         Step = "info"
	StepPayment      Step = "payment"
	StepConfirmation Step = "confirmation"
)

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current step
	ErrInvalidTransition = errors.New("action not allowed in current checkout step")
	// ErrPromoAlreadyApplied is returned when a second promo is applied to the same checkout
	ErrPromoAlreadyApplied = errors.New("a promo code is already applied")
	// ErrSubmissionInProgress is returned while an order submission is running for the session
	ErrSubmissionInProgress = errors.New("order submission already in progress")
	// ErrUnknownPaymentMethod is returned for a payment method outside the supported set
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// Checkout holds the wizard state of one session: info -> payment -> confirmation
type Checkout struct {
	mu            sync.Mutex
	step          Step
	customer      models.CustomerInfo
	paymentMethod string
	promoInput    string
	promo         *models.AppliedPromo
	confirmation  *models.Confirmation
	submitting    bool
}

// State is a read-only snapshot of a Checkout
type State struct {
	Step          Step                 `json:"step"`
	Customer      models.CustomerInfo  `json:"customer"`
	PaymentMethod string               `json:"paymentMethod"`
	PromoCode     string               `json:"promoCode"`
	Promo         *models.AppliedPromo `json:"promo,omitempty"`
	Confirmation  *models.Confirmation `json:"confirmation,omitempty"`
}

// NewCheckout starts a checkout in the info step with the default country and payment method
func NewCheckout() *Checkout {
	return &Checkout{
		step:          StepInfo,
		customer:      models.CustomerInfo{Country: "US"},
		paymentMethod: models.PaymentACHInvoice,
	}
}

// State returns a snapshot of the wizard
func (c *Checkout) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var promo *models.AppliedPromo
	if c.promo != nil {
		p := *c.promo
		promo = &p
	}
	return State{
		Step:          c.step,
		Customer:      c.customer,
		PaymentMethod: c.paymentMethod,
		PromoCode:     c.promoInput,
		Promo:         promo,
		Confirmation:  c.confirmation,
	}
}

// SetCustomer stores a validated shipping form and moves to the payment step
func (c *Checkout) SetCustomer(info models.CustomerInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepInfo {
		return ErrInvalidTransition
	}
	if info.Country == "" {
		info.Country = "US"
	}
	c.customer = info
	c.step = StepPayment
	return nil
}

// Back returns from payment to info, keeping the form
func (c *Checkout) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepPayment {
		return ErrInvalidTransition
	}
	c.step = StepInfo
	return nil
}

// SelectPayment records the chosen manual payment method
func (c *Checkout) SelectPayment(method string) error {
	if !models.IsValidPaymentMethod(method) {
		return ErrUnknownPaymentMethod
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepPayment {
		return ErrInvalidTransition
	}
	c.paymentMethod = method
	return nil
}

// ApplyPromo attaches an evaluated promo. Only one promo may be applied at a time.
func (c *Checkout) ApplyPromo(code string, applied models.AppliedPromo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.promo != nil {
		return ErrPromoAlreadyApplied
	}
	c.promoInput = code
	c.promo = &applied
	return nil
}

// RemovePromo clears the applied promo and the code input
func (c *Checkout) RemovePromo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promoInput = ""
	c.promo = nil
}

// Promo returns a copy of the applied promo, or nil
func (c *Checkout) Promo() *models.AppliedPromo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.promo == nil {
		return nil
	}
	p := *c.promo
	return &p
}

// BeginSubmit marks a submission as running. It must be paired with EndSubmit.
func (c *Checkout) BeginSubmit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmissionInProgress
	}
	if c.step != StepPayment {
		return ErrInvalidTransition
	}
	c.submitting = true
	return nil
}

// EndSubmit clears the running submission flag
func (c *Checkout) EndSubmit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
}

// Submitting reports whether an order submission is running
func (c *Checkout) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Complete moves to the confirmation step and drops the applied promo
func (c *Checkout) Complete(confirmation models.Confirmation) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.step != StepPayment {
		return ErrInvalidTransition
	}
	c.confirmation = &confirmation
	c.promo = nil
	c.promoInput = ""
	c.step = StepConfirmation
	return nil
}

// Reset returns to an empty info step, as when the checkout is closed
func (c *Checkout) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.step = StepInfo
	c.customer = models.CustomerInfo{Country: "US"}
	c.paymentMethod = models.PaymentACHInvoice
	c.promoInput = ""
	c.promo = nil
	c.confirmation = nil
}
