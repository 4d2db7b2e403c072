package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/models"
	"legacy-peptides/repository"
)

var crmNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func crmClock() time.Time { return crmNow }

func order(email, status string, total string, at time.Time) models.Order {
	return models.Order{
		OrderNumber:     "LP-" + at.Format("150405"),
		Email:           email,
		Status:          status,
		Total:           d(total),
		ShippingAddress: models.Address{FirstName: "Ada", LastName: "Lovelace", Phone: "555-0100"},
		CreatedAt:       at,
	}
}

func TestSync_CreatesCustomersFromOrders(t *testing.T) {
	orders := &fakeOrderRepo{listed: []models.Order{
		order("ada@lab.org", models.OrderStatusPending, "50", crmNow.Add(-2*time.Hour)),
		order("ADA@lab.org", models.OrderStatusShipped, "25", crmNow.Add(-time.Hour)),
		order("bob@lab.org", models.OrderStatusCancelled, "10", crmNow.Add(-time.Hour)),
	}}
	customers := newFakeCustomerRepo()
	svc := NewCRMService(orders, customers, crmClock)

	result, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)

	ada, err := customers.GetByEmail(context.Background(), "ada@lab.org")
	require.NoError(t, err)
	assert.Equal(t, models.StageShipped, ada.Stage)
	assert.Equal(t, 2, ada.TotalOrders)
	assert.True(t, ada.TotalSpent.Equal(d("75")))
	assert.Equal(t, "Ada Lovelace", ada.Name)
	assert.NotEmpty(t, ada.ID)

	bob, err := customers.GetByEmail(context.Background(), "bob@lab.org")
	require.NoError(t, err)
	assert.Equal(t, models.StageNewLead, bob.Stage)
}

func TestSync_AdvancesOnlyAlongOrderFlow(t *testing.T) {
	tests := []struct {
		current, status, want string
	}{
		{models.StageNewLead, models.OrderStatusPending, models.StageOrderPlaced},
		{models.StageOrderPlaced, models.OrderStatusProcessing, models.StageProcessing},
		{models.StageProcessing, models.OrderStatusShipped, models.StageShipped},
		{models.StageShipped, models.OrderStatusDelivered, models.StageDelivered},
		{models.StageQuoted, models.OrderStatusDelivered, models.StageQuoted},
		{models.StageFollowUp, models.OrderStatusPending, models.StageFollowUp},
		{models.StageNewLead, models.OrderStatusShipped, models.StageNewLead},
	}
	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.status, func(t *testing.T) {
			orders := &fakeOrderRepo{listed: []models.Order{order("ada@lab.org", tt.status, "10", crmNow)}}
			customers := newFakeCustomerRepo(models.Customer{ID: "c1", Email: "ada@lab.org", Stage: tt.current})
			svc := NewCRMService(orders, customers, crmClock)

			result, err := svc.Sync(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, result.Updated)

			c, err := customers.GetByID(context.Background(), "c1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Stage)
			assert.Equal(t, 1, c.TotalOrders)
		})
	}
}

func TestMoveStage_AppendsDatedNote(t *testing.T) {
	customers := newFakeCustomerRepo(models.Customer{ID: "c1", Email: "ada@lab.org", Stage: models.StageNewLead})
	svc := NewCRMService(&fakeOrderRepo{}, customers, crmClock)

	c, err := svc.MoveStage(context.Background(), "c1", models.StageQuoted)
	require.NoError(t, err)
	assert.Equal(t, models.StageQuoted, c.Stage)
	assert.Equal(t, []string{"Stage changed to quoted on 3/1/2026"}, c.Notes)

	_, err = svc.MoveStage(context.Background(), "c1", "won")
	assert.ErrorIs(t, err, ErrInvalidStage)

	_, err = svc.MoveStage(context.Background(), "missing", models.StageQuoted)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAssignAndNotes(t *testing.T) {
	customers := newFakeCustomerRepo(models.Customer{ID: "c1", Email: "ada@lab.org", Stage: models.StageNewLead})
	svc := NewCRMService(&fakeOrderRepo{}, customers, crmClock)

	_, err := svc.Assign(context.Background(), "c1", " Dana ")
	require.NoError(t, err)
	c, err := svc.AddNote(context.Background(), "c1", "Asked for COA")
	require.NoError(t, err)

	assert.Equal(t, "Dana", c.AssignedTo)
	assert.Equal(t, []string{"Assigned to Dana on 3/1/2026", "Asked for COA"}, c.Notes)

	_, err = svc.AddNote(context.Background(), "c1", "  ")
	assert.ErrorIs(t, err, ErrEmptyNote)
	assert.Len(t, customers.byID["c1"].Notes, 2)
}

func TestStageCounts_BoardOrder(t *testing.T) {
	customers := newFakeCustomerRepo(
		models.Customer{ID: "a", Stage: models.StageShipped},
		models.Customer{ID: "b", Stage: models.StageShipped},
		models.Customer{ID: "c", Stage: models.StageNewLead},
	)
	svc := NewCRMService(&fakeOrderRepo{}, customers, crmClock)

	counts, err := svc.StageCounts(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, len(models.PipelineStages))
	assert.Equal(t, models.StageCount{Stage: models.StageNewLead, Count: 1}, counts[0])
	assert.Equal(t, models.StageCount{Stage: models.StageShipped, Count: 2}, counts[5])
}
