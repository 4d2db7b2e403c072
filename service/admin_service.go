package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

// TrackingURL builds the carrier tracking link for a shipment
func TrackingURL(carrier, trackingNumber string) string {
	n := url.QueryEscape(trackingNumber)
	switch strings.ToUpper(strings.TrimSpace(carrier)) {
	case "USPS":
		return "https://tools.usps.com/go/TrackConfirmAction?tLabels=" + n
	case "UPS":
		return "https://www.ups.com/track?tracknum=" + n
	case "FEDEX":
		return "https://www.fedex.com/fedextrack/?tracknumbers=" + n
	case "DHL":
		return "https://www.dhl.com/en/express/tracking.html?AWB=" + n
	}
	return "#tracking-" + trackingNumber
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases name and joins its alphanumeric runs with dashes
func Slugify(name string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// NewProduct builds a product for insertion, deriving its slug and product id
func NewProduct(req *models.ProductRequest, now time.Time) *models.Product {
	return &models.Product{
		ProductID:           fmt.Sprintf("product-%d", now.UnixMilli()),
		Name:                strings.TrimSpace(req.Name),
		Slug:                Slugify(req.Name),
		Category:            req.Category,
		SafeCode:            req.SafeCode,
		Price:               req.Price,
		Image:               req.Image,
		Description:         req.Description,
		Concentration:       req.Concentration,
		DetailedDescription: req.DetailedDescription,
	}
}

// ToggleAllInventory marks every product available when all are sold out, otherwise marks all sold out
func ToggleAllInventory(ctx context.Context, repo repository.InventoryRepositoryInterface) (*models.ToggleAllResponse, error) {
	records, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	allSoldOut := len(records) > 0
	for _, rec := range records {
		if !rec.IsSoldOut {
			allSoldOut = false
			break
		}
	}

	soldOut := !allSoldOut
	updated, err := repo.SetAll(ctx, soldOut)
	if err != nil {
		return nil, err
	}

	zap.S().Infof("✅ ToggleAllInventory: %d products set sold out=%t", updated, soldOut)
	return &models.ToggleAllResponse{IsSoldOut: soldOut, Updated: updated}, nil
}

// ExpireUnpaidOrders cancels unpaid orders older than ttl
func ExpireUnpaidOrders(ctx context.Context, repo repository.OrderRepositoryInterface, ttl time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-ttl)
	n, err := repo.CancelUnpaidBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		zap.S().Infof("⏰ ExpireUnpaidOrders: Cancelled %d unpaid orders placed before %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}
