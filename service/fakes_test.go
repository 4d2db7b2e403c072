package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

type fakePromoRepo struct {
	mu        sync.Mutex
	promos    map[string]*models.PromoCode
	lookupErr error
	incErr    error
}

func newFakePromoRepo(promos ...models.PromoCode) *fakePromoRepo {
	r := &fakePromoRepo{promos: map[string]*models.PromoCode{}}
	for i := range promos {
		p := promos[i]
		r.promos[p.Code] = &p
	}
	return r
}

func (r *fakePromoRepo) GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	p, ok := r.promos[code]
	if !ok || !p.IsActive {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *fakePromoRepo) IncrementUses(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incErr != nil {
		return r.incErr
	}
	for _, p := range r.promos {
		if p.ID == id {
			p.CurrentUses++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakePromoRepo) uses(code string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.promos[code].CurrentUses
}

func (r *fakePromoRepo) List(ctx context.Context) ([]models.PromoCode, error) { return nil, nil }
func (r *fakePromoRepo) Create(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	return nil, nil
}
func (r *fakePromoRepo) Update(ctx context.Context, id int64, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	return nil, nil
}
func (r *fakePromoRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeOrderRepo struct {
	mu        sync.Mutex
	next      int
	numberErr error
	createErr error
	created   []models.Order
	listed    []models.Order
	cutoff    time.Time
	onNumber  func()
}

func (r *fakeOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	if r.onNumber != nil {
		r.onNumber()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.numberErr != nil {
		return "", r.numberErr
	}
	r.next++
	return fmt.Sprintf("LP-2026-%03d", r.next), nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	out := *order
	out.ID = int64(len(r.created) + 1)
	out.CreatedAt = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	r.created = append(r.created, out)
	return &out, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return r.listed, nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderNumber string, status string) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) AddTracking(ctx context.Context, tracking *models.OrderTracking) (*models.OrderTracking, error) {
	return tracking, nil
}

func (r *fakeOrderRepo) CancelUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return 2, nil
}

type fakeCustomerRepo struct {
	byID map[string]*models.Customer
}

func newFakeCustomerRepo(customers ...models.Customer) *fakeCustomerRepo {
	r := &fakeCustomerRepo{byID: map[string]*models.Customer{}}
	for i := range customers {
		c := customers[i]
		r.byID[c.ID] = &c
	}
	return r
}

func (r *fakeCustomerRepo) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	out := []models.Customer{}
	for _, c := range r.byID {
		if filter.Stage != "" && c.Stage != filter.Stage {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	out.Notes = append([]string{}, c.Notes...)
	return &out, nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	for _, c := range r.byID {
		if strings.EqualFold(c.Email, email) {
			return r.GetByID(ctx, c.ID)
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	out := *c
	r.byID[c.ID] = &out
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *models.Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return repository.ErrNotFound
	}
	out := *c
	r.byID[c.ID] = &out
	return nil
}

type fakeTaxRepo struct {
	rate *models.TaxRate
	err  error
}

func (r *fakeTaxRepo) RateFor(ctx context.Context, country, state, city, zip string) (*models.TaxRate, error) {
	return r.rate, r.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []models.OrderWebhookPayload
}

func (n *recordingNotifier) Notify(payload models.OrderWebhookPayload) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, payload)
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(i int) *int {
	return &i
}

func timePtr(t time.Time) *time.Time {
	return &t
}
