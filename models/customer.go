package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CRM pipeline stages, in board order
const (
	StageNewLead        = "new-lead"
	StageContacted      = "contacted"
	StageQuoted         = "quoted"
	StageOrderPlaced    = "order-placed"
	StageProcessing     = "processing"
	StageShipped        = "shipped"
	StageDelivered      = "delivered"
	StageFollowUp       = "follow-up"
	StageRepeatCustomer = "repeat-customer"
)

// PipelineStages lists every CRM stage in board order
var PipelineStages = []string{
	StageNewLead,
	StageContacted,
	StageQuoted,
	StageOrderPlaced,
	StageProcessing,
	StageShipped,
	StageDelivered,
	StageFollowUp,
	StageRepeatCustomer,
}

// IsValidStage reports whether stage is a known pipeline stage
func IsValidStage(stage string) bool {
	for _, s := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Customer is a CRM record folded from orders by email
type Customer struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Stage          string          `json:"stage"`
	AssignedTo     string          `json:"assignedTo"`
	Notes          []string        `json:"notes"`
	TotalOrders    int             `json:"totalOrders"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
	LastOrderDate  *time.Time      `json:"lastOrderDate,omitempty"`
	LastOrderTotal decimal.Decimal `json:"lastOrderTotal"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CustomerFilter narrows the CRM board
type CustomerFilter struct {
	Stage      string
	AssignedTo string
	Search     string
}

// CustomerListResponse represents the response for listing CRM customers
type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
}

// StageCount is the number of customers sitting in a stage
type StageCount struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

// StageCountResponse represents the response for GET /admin/crm/stages
type StageCountResponse struct {
	Stages []StageCount `json:"stages"`
}

// MoveStageRequest represents the request body for moving a customer along the pipeline
// Example: {"stage": "quoted"}
type MoveStageRequest struct {
	Stage string `json:"stage"`
}

// AddNoteRequest represents the request body for adding a CRM note
type AddNoteRequest struct {
	Note string `json:"note"`
}

// AssignRequest represents the request body for assigning a customer to a team member
// Example: {"assignedTo": "Dana"}
type AssignRequest struct {
	AssignedTo string `json:"assignedTo"`
}

// SyncResult summarizes a CRM sync run
type SyncResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
