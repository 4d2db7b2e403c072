package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legacy-peptides/models"
	"legacy-peptides/repository"
	"legacy-peptides/service"
)

type fakeCustomerRepo struct {
	byID map[string]models.Customer
}

func (r *fakeCustomerRepo) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	out := []models.Customer{}
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCustomerRepo) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	r.byID[c.ID] = *c
	return nil
}

func (r *fakeCustomerRepo) Update(ctx context.Context, c *models.Customer) error {
	r.byID[c.ID] = *c
	return nil
}

func TestCRM_AddNote(t *testing.T) {
	customers := &fakeCustomerRepo{byID: map[string]models.Customer{
		"c1": {ID: "c1", Email: "ada@lab.org", Stage: models.StageNewLead},
	}}
	clock := func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	ctrl := NewCRMController(service.NewCRMService(&fakeOrderRepo{}, customers, clock))
	cl := &client{t: t, handler: http.HandlerFunc(ctrl.Customer)}

	rec := cl.do(http.MethodPost, "/admin/crm/customers/c1/notes", models.AddNoteRequest{Note: "   "})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var resp models.ErrorResponse
	decodeJSON(t, rec, &resp)
	assert.Equal(t, "note is required", resp.Error)
	assert.Empty(t, customers.byID["c1"].Notes)

	rec = cl.do(http.MethodPost, "/admin/crm/customers/c1/notes", models.AddNoteRequest{Note: "Asked for COA"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"Asked for COA"}, customers.byID["c1"].Notes)

	rec = cl.do(http.MethodPost, "/admin/crm/customers/nobody/notes", models.AddNoteRequest{Note: "hi"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
