package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant is one strength of a catalog product
type Variant struct {
	VariantID string          `json:"variant_id"`
	Strength  string          `json:"strength"`
	Price     decimal.Decimal `json:"price"`
}

// ProductGroup is a row of the products_grouped view, one per product root
// Example response:
// {
//   "productIdRoot": "ghk-cu",
//   "name": "GHK-CU",
//   "description": "Copper peptide",
//   "imageUrl": "GHK-CU.png",
//   "variants": [
//     {"variant_id": "ghk-cu-50mg", "strength": "50mg", "price": 49.95},
//     {"variant_id": "ghk-cu-100mg", "strength": "100mg", "price": 69.95}
//   ],
//   "minPrice": 49.95,
//   "soldOut": false
// }
type ProductGroup struct {
	ProductIDRoot string          `json:"productIdRoot"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	Variants      []Variant       `json:"variants"`
	MinPrice      decimal.Decimal `json:"minPrice"`
	SoldOut       bool            `json:"soldOut"`
}

// CatalogVariant is one purchasable variant resolved from the catalog, with the
// server-side price a cart line is charged at
type CatalogVariant struct {
	VariantID     string          `json:"variantId"`
	ProductIDRoot string          `json:"productIdRoot"`
	Name          string          `json:"name"`
	Strength      string          `json:"strength"`
	Price         decimal.Decimal `json:"price"`
	ImageURL      string          `json:"imageUrl"`
	Category      string          `json:"category"`
	SafeCode      string          `json:"safeCode"`
	SoldOut       bool            `json:"soldOut"`
}

// CatalogResponse represents the response for GET /api/products
type CatalogResponse struct {
	Products []ProductGroup `json:"products"`
}

// Product represents a row in products as managed from the admin console
type Product struct {
	ID                  int64           `json:"id"`
	ProductID           string          `json:"productId"`
	Name                string          `json:"name"`
	Slug                string          `json:"slug"`
	Category            string          `json:"category"`
	SafeCode            string          `json:"safeCode"`
	Price               decimal.Decimal `json:"price"`
	Image               string          `json:"image"`
	Description         string          `json:"description"`
	Concentration       string          `json:"concentration"`
	DetailedDescription string          `json:"detailedDescription"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// ProductRequest represents the request body for creating or updating a product
// Example: {"name": "BPC-157", "category": "Recovery", "safeCode": "LP-BPC-10", "price": 49.95, "concentration": "10mg"}
type ProductRequest struct {
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	SafeCode            string          `json:"safeCode"`
	Price               decimal.Decimal `json:"price"`
	Image               string          `json:"image"`
	Description         string          `json:"description"`
	Concentration       string          `json:"concentration"`
	DetailedDescription string          `json:"detailedDescription"`
}

// UpdatePriceRequest represents the request body for PATCH /admin/products/{id}/price
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// ProductListResponse represents the response for listing products
type ProductListResponse struct {
	Products []Product `json:"products"`
}

// InventoryRecord represents a row in product_inventory
type InventoryRecord struct {
	ProductID string    `json:"productId"`
	Name      string    `json:"name"`
	IsSoldOut bool      `json:"isSoldOut"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryListResponse represents the response for GET /admin/inventory
type InventoryListResponse struct {
	Inventory []InventoryRecord `json:"inventory"`
}

// ToggleAllResponse reports the state every product was set to
type ToggleAllResponse struct {
	IsSoldOut bool `json:"isSoldOut"`
	Updated   int  `json:"updated"`
}
