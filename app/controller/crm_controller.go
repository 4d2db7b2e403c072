package controller

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/service"
)

// CRMController handles HTTP requests for the customer pipeline
type CRMController struct {
	service service.CRMServiceInterface
}

// NewCRMController creates a new CRMController
func NewCRMController(svc service.CRMServiceInterface) *CRMController {
	return &CRMController{
		service: svc,
	}
}

// ListCustomers handles GET /admin/crm/customers?stage=quoted&assignee=Dana&q=ada
func (c *CRMController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "ListCustomers", http.MethodGet) {
		return
	}

	q := r.URL.Query()
	filter := models.CustomerFilter{
		Stage:      strings.TrimSpace(q.Get("stage")),
		AssignedTo: strings.TrimSpace(q.Get("assignee")),
		Search:     strings.TrimSpace(q.Get("q")),
	}

	ctx := context.Background()
	customers, err := c.service.List(ctx, filter)
	if err != nil {
		writeError(w, "ListCustomers", err)
		return
	}

	writeJSON(w, "ListCustomers", http.StatusOK, models.CustomerListResponse{Customers: customers})
}

// Sync handles POST /admin/crm/sync
// Example response: {"created": 3, "updated": 12}
func (c *CRMController) Sync(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Sync: Received %s request to %s", r.Method, r.URL.Path)

	if !allowMethod(w, r, "Sync", http.MethodPost) {
		return
	}

	ctx := context.Background()
	result, err := c.service.Sync(ctx)
	if err != nil {
		writeError(w, "Sync", err)
		return
	}

	writeJSON(w, "Sync", http.StatusOK, result)
}

// StageCounts handles GET /admin/crm/stages
func (c *CRMController) StageCounts(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, "StageCounts", http.MethodGet) {
		return
	}

	ctx := context.Background()
	counts, err := c.service.StageCounts(ctx)
	if err != nil {
		writeError(w, "StageCounts", err)
		return
	}

	writeJSON(w, "StageCounts", http.StatusOK, models.StageCountResponse{Stages: counts})
}

// Customer handles the /admin/crm/customers/{id}/... actions:
// PATCH .../stage, POST .../notes, PATCH .../assignee
func (c *CRMController) Customer(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 Customer: Received %s request to %s", r.Method, r.URL.Path)

	parts := pathParts(r, "/admin/crm/customers/")
	if len(parts) != 2 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	id, action := parts[0], parts[1]

	ctx := context.Background()
	var (
		customer *models.Customer
		err      error
	)

	switch action {
	case "stage":
		if !allowMethod(w, r, "MoveStage", http.MethodPatch) {
			return
		}
		var req models.MoveStageRequest
		if !decodeBody(w, r, "MoveStage", &req) {
			return
		}
		customer, err = c.service.MoveStage(ctx, id, req.Stage)
	case "notes":
		if !allowMethod(w, r, "AddNote", http.MethodPost) {
			return
		}
		var req models.AddNoteRequest
		if !decodeBody(w, r, "AddNote", &req) {
			return
		}
		customer, err = c.service.AddNote(ctx, id, req.Note)
	case "assignee":
		if !allowMethod(w, r, "Assign", http.MethodPatch) {
			return
		}
		var req models.AssignRequest
		if !decodeBody(w, r, "Assign", &req) {
			return
		}
		customer, err = c.service.Assign(ctx, id, req.AssignedTo)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	if err != nil {
		writeError(w, "Customer", err)
		return
	}
	writeJSON(w, "Customer", http.StatusOK, customer)
}
