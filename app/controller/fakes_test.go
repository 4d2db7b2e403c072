package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"legacy-peptides/cart"
	"legacy-peptides/models"
	"legacy-peptides/repository"
)

type fakeOrderRepo struct {
	orders    []models.Order
	numberErr error
	next      int
}

func (r *fakeOrderRepo) NextOrderNumber(ctx context.Context) (string, error) {
	if r.numberErr != nil {
		return "", r.numberErr
	}
	r.next++
	return fmt.Sprintf("LP-2026-%03d", r.next), nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	out := *order
	out.ID = int64(len(r.orders) + 1)
	out.CreatedAt = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	r.orders = append(r.orders, out)
	return &out, nil
}

func (r *fakeOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	for i := range r.orders {
		if r.orders[i].OrderNumber == orderNumber {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %s: %w", orderNumber, repository.ErrNotFound)
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderNumber string, status string) (*models.Order, error) {
	for i := range r.orders {
		if r.orders[i].OrderNumber == orderNumber {
			r.orders[i].Status = status
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeOrderRepo) AddTracking(ctx context.Context, tracking *models.OrderTracking) (*models.OrderTracking, error) {
	out := *tracking
	return &out, nil
}

func (r *fakeOrderRepo) CancelUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

type fakePromoRepo struct {
	promos map[string]models.PromoCode
	// lookupErr is the context error seen by the last lookup
	lookupErr error
}

func (r *fakePromoRepo) GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	r.lookupErr = ctx.Err()
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	p, ok := r.promos[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePromoRepo) IncrementUses(ctx context.Context, id int64) error { return nil }
func (r *fakePromoRepo) List(ctx context.Context) ([]models.PromoCode, error) {
	out := []models.PromoCode{}
	for _, p := range r.promos {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakePromoRepo) Create(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	p := models.PromoCode{ID: int64(len(r.promos) + 1), Code: req.Code, DiscountType: req.DiscountType, DiscountValue: req.DiscountValue, IsActive: req.IsActive}
	r.promos[p.Code] = p
	return &p, nil
}
func (r *fakePromoRepo) Update(ctx context.Context, id int64, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	return nil, repository.ErrNotFound
}
func (r *fakePromoRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeCatalogRepo struct {
	variants map[string]models.CatalogVariant
}

func newFakeCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{variants: map[string]models.CatalogVariant{
		"bpc-157-10mg": {VariantID: "bpc-157-10mg", ProductIDRoot: "bpc-157", Name: "BPC-157", Strength: "10mg", Price: d("49.95"), Category: "Recovery", SafeCode: "LP-BPC-10"},
		"ghk-cu-100mg": {VariantID: "ghk-cu-100mg", ProductIDRoot: "ghk-cu", Name: "GHK-CU", Strength: "100mg", Price: d("69.95"), Category: "Anti-Aging"},
		"selank-10mg":  {VariantID: "selank-10mg", ProductIDRoot: "selank", Name: "SELANK", Strength: "10mg", Price: d("39.95"), SoldOut: true},
	}}
}

func (r *fakeCatalogRepo) ListGrouped(ctx context.Context) ([]models.ProductGroup, error) {
	return []models.ProductGroup{}, nil
}

func (r *fakeCatalogRepo) GetVariant(ctx context.Context, variantID string) (*models.CatalogVariant, error) {
	v, ok := r.variants[variantID]
	if !ok {
		return nil, fmt.Errorf("variant %s: %w", variantID, repository.ErrNotFound)
	}
	return &v, nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(payload models.OrderWebhookPayload) error { return nil }
func (nopNotifier) Close() error                                   { return nil }

func newTestSessions(t *testing.T) *SessionManager {
	t.Helper()
	registry, err := cart.NewRegistry(16)
	require.NoError(t, err)
	return NewSessionManager("test-secret-test-secret-test-secret", false, registry)
}

// client replays the session cookie across requests like a browser
type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		c.cookies = cookies
	}
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
