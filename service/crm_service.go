package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

var (
	// ErrInvalidStage is returned for a stage outside the pipeline
	ErrInvalidStage = errors.New("invalid pipeline stage")
	// ErrEmptyNote is returned when a note has no text
	ErrEmptyNote = errors.New("note is required")
)

// CRMServiceInterface defines the contract for the customer pipeline
type CRMServiceInterface interface {
	Sync(ctx context.Context) (*models.SyncResult, error)
	List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error)
	StageCounts(ctx context.Context) ([]models.StageCount, error)
	MoveStage(ctx context.Context, id string, stage string) (*models.Customer, error)
	AddNote(ctx context.Context, id string, note string) (*models.Customer, error)
	Assign(ctx context.Context, id string, assignee string) (*models.Customer, error)
}

// CRMService folds orders into customers and manages their pipeline stage
// Implements CRMServiceInterface
type CRMService struct {
	orders    repository.OrderRepositoryInterface
	customers repository.CustomerRepositoryInterface
	now       func() time.Time
}

// NewCRMService creates a new CRMService. A nil clock uses time.Now.
func NewCRMService(orders repository.OrderRepositoryInterface, customers repository.CustomerRepositoryInterface, now func() time.Time) *CRMService {
	if now == nil {
		now = time.Now
	}
	return &CRMService{
		orders:    orders,
		customers: customers,
		now:       now,
	}
}

// Ensure CRMService implements CRMServiceInterface
var _ CRMServiceInterface = (*CRMService)(nil)

// stageForNewCustomer maps the status of a customer's latest order to a starting stage
func stageForNewCustomer(orderStatus string) string {
	switch orderStatus {
	case models.OrderStatusPending:
		return models.StageOrderPlaced
	case models.OrderStatusProcessing:
		return models.StageProcessing
	case models.OrderStatusShipped:
		return models.StageShipped
	case models.OrderStatusDelivered:
		return models.StageDelivered
	}
	return models.StageNewLead
}

// advanceStage moves a customer forward only along the order-driven transitions
func advanceStage(current, orderStatus string) string {
	switch {
	case orderStatus == models.OrderStatusPending && current == models.StageNewLead:
		return models.StageOrderPlaced
	case orderStatus == models.OrderStatusProcessing && current == models.StageOrderPlaced:
		return models.StageProcessing
	case orderStatus == models.OrderStatusShipped && current == models.StageProcessing:
		return models.StageShipped
	case orderStatus == models.OrderStatusDelivered && current == models.StageShipped:
		return models.StageDelivered
	}
	return current
}

type orderSummary struct {
	email     string
	name      string
	phone     string
	count     int
	spent     decimal.Decimal
	last      models.Order
	lastFound bool
}

// Sync folds every order into one customer per email and returns how many were created and updated
func (s *CRMService) Sync(ctx context.Context) (*models.SyncResult, error) {
	zap.S().Infof("🔄 Sync: Starting CRM sync from orders")

	orders, err := s.orders.List(ctx, models.OrderFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := map[string]*orderSummary{}
	var emails []string
	for _, o := range orders {
		email := strings.ToLower(strings.TrimSpace(o.Email))
		if email == "" {
			continue
		}
		sum, ok := summaries[email]
		if !ok {
			sum = &orderSummary{email: email, spent: decimal.Zero}
			summaries[email] = sum
			emails = append(emails, email)
		}
		sum.count++
		sum.spent = sum.spent.Add(o.Total)
		if !sum.lastFound || o.CreatedAt.After(sum.last.CreatedAt) {
			sum.last = o
			sum.lastFound = true
			sum.name = o.CustomerName()
			sum.phone = o.ShippingAddress.Phone
		}
	}

	result := &models.SyncResult{}
	now := s.now()
	for _, email := range emails {
		sum := summaries[email]
		lastDate := sum.last.CreatedAt

		existing, err := s.customers.GetByEmail(ctx, email)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			zap.S().Errorf("❌ Sync: Error fetching customer %s: %v", email, err)
			continue
		}

		if existing == nil {
			c := &models.Customer{
				ID:             uuid.NewString(),
				Email:          email,
				Name:           sum.name,
				Phone:          sum.phone,
				Stage:          stageForNewCustomer(sum.last.Status),
				Notes:          []string{},
				TotalOrders:    sum.count,
				TotalSpent:     sum.spent,
				LastOrderDate:  &lastDate,
				LastOrderTotal: sum.last.Total,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := s.customers.Create(ctx, c); err != nil {
				zap.S().Errorf("❌ Sync: Error creating customer %s: %v", email, err)
				continue
			}
			zap.S().Infof("🆕 Sync: New customer %s at stage %s", email, c.Stage)
			result.Created++
			continue
		}

		existing.TotalOrders = sum.count
		existing.TotalSpent = sum.spent
		existing.LastOrderDate = &lastDate
		existing.LastOrderTotal = sum.last.Total
		if existing.Name == "" {
			existing.Name = sum.name
		}
		if existing.Phone == "" {
			existing.Phone = sum.phone
		}
		existing.Stage = advanceStage(existing.Stage, sum.last.Status)
		existing.UpdatedAt = now

		if err := s.customers.Update(ctx, existing); err != nil {
			zap.S().Errorf("❌ Sync: Error updating customer %s: %v", email, err)
			continue
		}
		result.Updated++
	}

	zap.S().Infof("✅ Sync: CRM sync complete, created=%d updated=%d", result.Created, result.Updated)
	return result, nil
}

// List returns customers matching the filter
func (s *CRMService) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	return s.customers.List(ctx, filter)
}

// StageCounts returns how many customers sit in each stage, in board order
func (s *CRMService) StageCounts(ctx context.Context) ([]models.StageCount, error) {
	customers, err := s.customers.List(ctx, models.CustomerFilter{})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, c := range customers {
		counts[c.Stage]++
	}

	out := make([]models.StageCount, 0, len(models.PipelineStages))
	for _, stage := range models.PipelineStages {
		out = append(out, models.StageCount{Stage: stage, Count: counts[stage]})
	}
	return out, nil
}

func (s *CRMService) noteDate() string {
	return s.now().Format("1/2/2006")
}

// MoveStage places a customer in a stage and records it in the notes
func (s *CRMService) MoveStage(ctx context.Context, id string, stage string) (*models.Customer, error) {
	if !models.IsValidStage(stage) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStage, stage)
	}

	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Stage = stage
	c.Notes = append(c.Notes, fmt.Sprintf("Stage changed to %s on %s", stage, s.noteDate()))
	c.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddNote appends a free-text note
func (s *CRMService) AddNote(ctx context.Context, id string, note string) (*models.Customer, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrEmptyNote
	}

	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Notes = append(c.Notes, note)
	c.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign sets the team member responsible for a customer and records it in the notes
func (s *CRMService) Assign(ctx context.Context, id string, assignee string) (*models.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.AssignedTo = strings.TrimSpace(assignee)
	c.Notes = append(c.Notes, fmt.Sprintf("Assigned to %s on %s", c.AssignedTo, s.noteDate()))
	c.UpdatedAt = s.now()
	if err := s.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
