package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/app/controller"
	"legacy-peptides/app/router"
	"legacy-peptides/cart"
	"legacy-peptides/db"
	"legacy-peptides/pricing"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

// Application owns the long-lived resources of the server
type Application struct {
	Config  *Config
	Handler http.Handler

	db       *sql.DB
	notifier service.OrderNotifier
	sched    *cron.Cron
}

// Initialize initializes the application
func Initialize(cfg *Config) (*Application, error) {
	// Money is encoded as JSON numbers, matching the automation webhook contract
	decimal.MarshalJSONWithoutQuotes = true

	// Initialize database connection
	conn, err := db.Open(context.Background(), cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	strengths, err := pricing.LoadStrengthTable(cfg.StrengthTablePath)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to load strength table: %w", err)
	}

	registry, err := cart.NewRegistry(cfg.SessionCacheSize)
	if err != nil {
		conn.Close()
		return nil, err
	}

	notifier, err := service.NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookTimeout, cfg.WebhookWorkers)
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(conn)
	orderRepo := repository.NewOrderRepository(conn)
	promoRepo := repository.NewPromoRepository(conn)
	productRepo := repository.NewProductRepository(conn)
	inventoryRepo := repository.NewInventoryRepository(conn)
	customerRepo := repository.NewCustomerRepository(conn)
	refundRepo := repository.NewRefundRepository(conn)
	taxRepo := repository.NewTaxRepository(conn)

	// Initialize services
	promoService := service.NewPromoService(promoRepo, nil)
	checkoutService := service.NewCheckoutService(
		orderRepo,
		promoService,
		notifier,
		service.NewTaxService(taxRepo),
		strengths,
		service.CheckoutOptions{ApplyTax: cfg.ApplyTax, Currency: cfg.Currency},
	)
	crmService := service.NewCRMService(orderRepo, customerRepo, nil)

	sessions := controller.NewSessionManager(cfg.SessionSecret, cfg.SecureCookies, registry)

	// Create controllers
	controllers := &router.Controllers{
		Catalog:   controller.NewCatalogController(catalogRepo),
		Cart:      controller.NewCartController(sessions, catalogRepo),
		Checkout:  controller.NewCheckoutController(sessions, checkoutService),
		Order:     controller.NewOrderController(orderRepo),
		CRM:       controller.NewCRMController(crmService),
		Inventory: controller.NewInventoryController(inventoryRepo),
		Product:   controller.NewProductController(productRepo),
		Promo:     controller.NewPromoController(promoRepo),
		Refund:    controller.NewRefundController(refundRepo),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers, cfg.AdminEnabled)
	if cfg.AdminEnabled {
		zap.S().Warnf("⚠️ Initialize: Admin routes are enabled without authentication")
	}

	sched, err := startJobs(cfg, orderRepo)
	if err != nil {
		notifier.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to schedule jobs: %w", err)
	}

	return &Application{
		Config:   cfg,
		Handler:  mux,
		db:       conn,
		notifier: notifier,
		sched:    sched,
	}, nil
}

// Close stops the jobs, drains pending webhooks and closes the database
func (a *Application) Close() {
	ctx := a.sched.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(time.Minute):
		zap.S().Warnf("⚠️ Close: Timed out waiting for running jobs")
	}

	if err := a.notifier.Close(); err != nil {
		zap.S().Errorf("❌ Close: Error closing webhook notifier: %v", err)
	}
	if err := a.db.Close(); err != nil {
		zap.S().Errorf("❌ Close: Error closing database: %v", err)
	}
}
