package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/models"
)

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://tools.usps.com/go/TrackConfirmAction?tLabels=9400", TrackingURL("USPS", "9400"))
	assert.Equal(t, "https://www.ups.com/track?tracknum=1Z9", TrackingURL("ups", "1Z9"))
	assert.Equal(t, "https://www.fedex.com/fedextrack/?tracknumbers=77", TrackingURL("FedEx", "77"))
	assert.Equal(t, "https://www.dhl.com/en/express/tracking.html?AWB=12", TrackingURL("DHL", "12"))
	assert.Equal(t, "#tracking-ABC", TrackingURL("Pigeon", "ABC"))
}

func TestNewProduct_DerivesSlugAndID(t *testing.T) {
	now := time.UnixMilli(1767225600000)
	p := NewProduct(&models.ProductRequest{Name: "CJC-1295 / Ipamorelin", Price: d("89.95")}, now)

	assert.Equal(t, "cjc-1295-ipamorelin", p.Slug)
	assert.Equal(t, "product-1767225600000", p.ProductID)
	assert.Equal(t, "", Slugify("--"))
}

func TestPaymentInstructions(t *testing.T) {
	ach := PaymentInstructions(models.PaymentACHInvoice)
	require.NotEmpty(t, ach.Steps)
	assert.Contains(t, ach.Steps[0], "6:00 PM EST")

	assert.Equal(t, "Cash App", PaymentInstructions(models.PaymentCashApp).Title)
	assert.Empty(t, PaymentInstructions("paypal").Steps)
}

func TestTaxService_FallsBackToDefault(t *testing.T) {
	svc := NewTaxService(&fakeTaxRepo{rate: &models.TaxRate{Rate: d("0.0825"), Description: "Texas"}})
	tax, rate := svc.Calculate(context.Background(), d("100"), validCustomer())
	assert.True(t, tax.Equal(d("8.25")))
	assert.Equal(t, "Texas", rate.Description)

	svc = NewTaxService(&fakeTaxRepo{err: assert.AnError})
	tax, rate = svc.Calculate(context.Background(), d("100"), validCustomer())
	assert.True(t, tax.Equal(d("8")))
	assert.Equal(t, "Default Tax", rate.Description)
}

func TestExpireUnpaidOrders_UsesTTL(t *testing.T) {
	repo := &fakeOrderRepo{}
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	n, err := ExpireUnpaidOrders(context.Background(), repo, 24*time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, now.Add(-24*time.Hour), repo.cutoff)
}

type fakeInventoryRepo struct {
	records []models.InventoryRecord
	setTo   *bool
}

func (r *fakeInventoryRepo) List(ctx context.Context) ([]models.InventoryRecord, error) {
	return r.records, nil
}

func (r *fakeInventoryRepo) Toggle(ctx context.Context, productID string) (*models.InventoryRecord, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) SetAll(ctx context.Context, soldOut bool) (int, error) {
	r.setTo = &soldOut
	return len(r.records), nil
}

func TestToggleAllInventory(t *testing.T) {
	mixed := &fakeInventoryRepo{records: []models.InventoryRecord{{IsSoldOut: true}, {IsSoldOut: false}}}
	resp, err := ToggleAllInventory(context.Background(), mixed)
	require.NoError(t, err)
	assert.True(t, resp.IsSoldOut)
	assert.True(t, *mixed.setTo)

	allOut := &fakeInventoryRepo{records: []models.InventoryRecord{{IsSoldOut: true}, {IsSoldOut: true}}}
	resp, err = ToggleAllInventory(context.Background(), allOut)
	require.NoError(t, err)
	assert.False(t, resp.IsSoldOut)
	assert.Equal(t, 2, resp.Updated)
}
