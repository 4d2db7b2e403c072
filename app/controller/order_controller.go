package controller

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
	"legacy-peptides/utils"
)

// OrderController handles HTTP requests for the admin order views
type OrderController struct {
	repository repository.OrderRepositoryInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface) *OrderController {
	return &OrderController{
		repository: repo,
	}
}

func orderFilter(r *http.Request) models.OrderFilter {
	q := r.URL.Query()
	return models.OrderFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Search: strings.TrimSpace(q.Get("q")),
		SortBy: strings.TrimSpace(q.Get("sort")),
	}
}

// ListOrders handles GET /admin/orders?status=pending&q=ada&sort=total
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 ListOrders: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "ListOrders", http.MethodGet) {
		return
	}

	filter := orderFilter(r)
	if filter.Status != "" && !models.IsValidOrderStatus(filter.Status) {
		badRequest(w, "ListOrders", "Invalid status: "+filter.Status)
		return
	}

	ctx := context.Background()
	orders, err := c.repository.List(ctx, filter)
	if err != nil {
		writeError(w, "ListOrders", err)
		return
	}

	writeJSON(w, "ListOrders", http.StatusOK, models.OrderListResponse{Orders: orders})
}

// GetOrder handles GET /admin/orders/{orderNumber}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "GetOrder", http.MethodGet) {
		return
	}

	parts := pathParts(r, "/admin/orders/")
	if len(parts) != 1 {
		badRequest(w, "GetOrder", "order number is required in path")
		return
	}

	ctx := context.Background()
	order, err := c.repository.GetByNumber(ctx, parts[0])
	if err != nil {
		writeError(w, "GetOrder", err)
		return
	}

	writeJSON(w, "GetOrder", http.StatusOK, order)
}

// UpdateStatus handles PATCH /admin/orders/{orderNumber}/status
// Example request: {"status": "shipped"}
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 UpdateStatus: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "UpdateStatus", http.MethodPatch) {
		return
	}

	parts := pathParts(r, "/admin/orders/")
	if len(parts) != 2 {
		badRequest(w, "UpdateStatus", "order number is required in path")
		return
	}

	var req models.UpdateOrderStatusRequest
	if !decodeBody(w, r, "UpdateStatus", &req) {
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		badRequest(w, "UpdateStatus", "Invalid status: "+req.Status)
		return
	}

	ctx := context.Background()
	order, err := c.repository.UpdateStatus(ctx, parts[0], req.Status)
	if err != nil {
		writeError(w, "UpdateStatus", err)
		return
	}

	zap.S().Infof("✅ UpdateStatus: Order %s is now %s", order.OrderNumber, order.Status)
	writeJSON(w, "UpdateStatus", http.StatusOK, order)
}

// AddTracking handles POST /admin/orders/{orderNumber}/tracking
// Example request: {"carrier": "USPS", "trackingNumber": "9400111899223856928499"}
func (c *OrderController) AddTracking(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 AddTracking: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "AddTracking", http.MethodPost) {
		return
	}

	parts := pathParts(r, "/admin/orders/")
	if len(parts) != 2 {
		badRequest(w, "AddTracking", "order number is required in path")
		return
	}

	var req models.AddTrackingRequest
	if !decodeBody(w, r, "AddTracking", &req) {
		return
	}
	req.Carrier = strings.TrimSpace(req.Carrier)
	req.TrackingNumber = strings.TrimSpace(req.TrackingNumber)
	if req.Carrier == "" || req.TrackingNumber == "" {
		badRequest(w, "AddTracking", "carrier and trackingNumber are required")
		return
	}

	ctx := context.Background()
	tracking, err := c.repository.AddTracking(ctx, &models.OrderTracking{
		OrderNumber:    parts[0],
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
		TrackingURL:    service.TrackingURL(req.Carrier, req.TrackingNumber),
	})
	if err != nil {
		writeError(w, "AddTracking", err)
		return
	}

	writeJSON(w, "AddTracking", http.StatusOK, tracking)
}

func csvRow(o models.Order) models.OrderCSVRow {
	promo := ""
	if o.Metadata.PromoCode != nil {
		promo = *o.Metadata.PromoCode
	}
	items := 0
	for _, it := range o.Metadata.Items {
		items += it.Quantity
	}
	return models.OrderCSVRow{
		OrderNumber:   o.OrderNumber,
		Date:          o.CreatedAt.Format("2006-01-02 15:04"),
		CustomerName:  o.CustomerName(),
		Email:         o.Email,
		Status:        o.Status,
		PaymentMethod: o.Metadata.PaymentMethod,
		PromoCode:     promo,
		Items:         items,
		Subtotal:      utils.FormatUSD(o.Subtotal),
		Discount:      utils.FormatUSD(o.Discount),
		Tax:           utils.FormatUSD(o.Tax),
		Total:         utils.FormatUSD(o.Total),
	}
}

// ExportCSV handles GET /admin/orders/export.csv with the same filters as ListOrders
func (c *OrderController) ExportCSV(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 ExportCSV: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "ExportCSV", http.MethodGet) {
		return
	}

	ctx := context.Background()
	orders, err := c.repository.List(ctx, orderFilter(r))
	if err != nil {
		writeError(w, "ExportCSV", err)
		return
	}

	rows := make([]models.OrderCSVRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, csvRow(o))
	}

	filename := "orders-" + time.Now().Format("2006-01-02") + ".csv"
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := gocsv.Marshal(rows, w); err != nil {
		zap.S().Errorf("❌ ExportCSV: Error writing csv: %v", err)
		return
	}

	zap.S().Infof("✅ ExportCSV: Exported %d orders", len(rows))
}
