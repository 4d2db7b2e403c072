package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"legacy-peptides/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the contract for reading the storefront catalog
type CatalogRepositoryInterface interface {
	ListGrouped(ctx context.Context) ([]models.ProductGroup, error)
	GetVariant(ctx context.Context, variantID string) (*models.CatalogVariant, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	NextOrderNumber(ctx context.Context) (string, error)
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status string) (*models.Order, error)
	AddTracking(ctx context.Context, tracking *models.OrderTracking) (*models.OrderTracking, error)
	CancelUnpaidBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// PromoRepositoryInterface defines the contract for promo code repository operations
type PromoRepositoryInterface interface {
	GetActiveByCode(ctx context.Context, code string) (*models.PromoCode, error)
	IncrementUses(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.PromoCode, error)
	Create(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error)
	Update(ctx context.Context, id int64, req *models.PromoCodeRequest) (*models.PromoCode, error)
	Delete(ctx context.Context, id int64) error
}

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.Product, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

// InventoryRepositoryInterface defines the contract for sold-out flags
type InventoryRepositoryInterface interface {
	List(ctx context.Context) ([]models.InventoryRecord, error)
	Toggle(ctx context.Context, productID string) (*models.InventoryRecord, error)
	SetAll(ctx context.Context, soldOut bool) (int, error)
}

// CustomerRepositoryInterface defines the contract for CRM customer storage
type CustomerRepositoryInterface interface {
	List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
}

// RefundRepositoryInterface defines the contract for refunds and returns
type RefundRepositoryInterface interface {
	CreateRefund(ctx context.Context, req *models.CreateRefundRequest) (*models.Refund, error)
	ListRefunds(ctx context.Context, orderNumber string) ([]models.Refund, error)
	UpdateRefundStatus(ctx context.Context, id int64, status string) (*models.Refund, error)
	CreateReturn(ctx context.Context, req *models.CreateReturnRequest) (*models.Return, error)
	ListReturns(ctx context.Context, orderNumber string) ([]models.Return, error)
	UpdateReturnStatus(ctx context.Context, id int64, status string) (*models.Return, error)
}

// TaxRepositoryInterface defines the contract for destination tax lookups
type TaxRepositoryInterface interface {
	RateFor(ctx context.Context, country, state, city, zip string) (*models.TaxRate, error)
}
