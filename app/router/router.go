package router

import (
	"net/http"
	"strings"

	"legacy-peptides/app/controller"
)

type Controllers struct {
	Catalog   *controller.CatalogController
	Cart      *controller.CartController
	Checkout  *controller.CheckoutController
	Order     *controller.OrderController
	CRM       *controller.CRMController
	Inventory *controller.InventoryController
	Product   *controller.ProductController
	Promo     *controller.PromoController
	Refund    *controller.RefundController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers the storefront routes and, when adminEnabled, the admin console routes
func SetupRoutes(mux *http.ServeMux, controllers *Controllers, adminEnabled bool) {
	mux.HandleFunc("/ping", pingHandler)

	// Catalog
	mux.HandleFunc("/api/products", controllers.Catalog.ListProducts)

	// Cart
	mux.HandleFunc("/api/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Cart.ClearCart(w, r)
			return
		}
		controllers.Cart.GetCart(w, r)
	})
	mux.HandleFunc("/api/cart/items", controllers.Cart.AddItem)
	mux.HandleFunc("/api/cart/items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Cart.RemoveItem(w, r)
			return
		}
		controllers.Cart.UpdateItem(w, r)
	})

	// Checkout wizard
	mux.HandleFunc("/api/checkout", controllers.Checkout.GetCheckout)
	mux.HandleFunc("/api/checkout/info", controllers.Checkout.SaveInfo)
	mux.HandleFunc("/api/checkout/back", controllers.Checkout.Back)
	mux.HandleFunc("/api/checkout/promo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			controllers.Checkout.RemovePromo(w, r)
			return
		}
		controllers.Checkout.ApplyPromo(w, r)
	})
	mux.HandleFunc("/api/checkout/payment", controllers.Checkout.SelectPayment)
	mux.HandleFunc("/api/checkout/submit", controllers.Checkout.Submit)
	mux.HandleFunc("/api/checkout/reset", controllers.Checkout.Reset)

	if !adminEnabled {
		return
	}

	// Orders
	mux.HandleFunc("/admin/orders", controllers.Order.ListOrders)
	mux.HandleFunc("/admin/orders/export.csv", controllers.Order.ExportCSV)
	mux.HandleFunc("/admin/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/orders/")

		if strings.HasSuffix(path, "/status") {
			controllers.Order.UpdateStatus(w, r)
			return
		}
		if strings.HasSuffix(path, "/tracking") {
			controllers.Order.AddTracking(w, r)
			return
		}
		controllers.Order.GetOrder(w, r)
	})

	// CRM pipeline
	mux.HandleFunc("/admin/crm/customers", controllers.CRM.ListCustomers)
	mux.HandleFunc("/admin/crm/customers/", controllers.CRM.Customer)
	mux.HandleFunc("/admin/crm/sync", controllers.CRM.Sync)
	mux.HandleFunc("/admin/crm/stages", controllers.CRM.StageCounts)

	// Inventory (toggle-all must be before the generic /:productId/toggle route)
	mux.HandleFunc("/admin/inventory", controllers.Inventory.ListInventory)
	mux.HandleFunc("/admin/inventory/toggle-all", controllers.Inventory.ToggleAll)
	mux.HandleFunc("/admin/inventory/", controllers.Inventory.Toggle)

	// Products
	mux.HandleFunc("/admin/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Product.CreateProduct(w, r)
			return
		}
		controllers.Product.ListProducts(w, r)
	})
	mux.HandleFunc("/admin/products/", controllers.Product.Product)

	// Promo codes
	mux.HandleFunc("/admin/promo-codes", controllers.Promo.Promos)
	mux.HandleFunc("/admin/promo-codes/", controllers.Promo.Promo)

	// Refunds and returns
	mux.HandleFunc("/admin/refunds", controllers.Refund.Refunds)
	mux.HandleFunc("/admin/refunds/", controllers.Refund.RefundStatus)
	mux.HandleFunc("/admin/returns", controllers.Refund.Returns)
	mux.HandleFunc("/admin/returns/", controllers.Refund.ReturnStatus)
}
