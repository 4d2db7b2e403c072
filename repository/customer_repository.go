package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"legacy-peptides/models"
)

// CustomerRepository stores CRM customers in crm_customers
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

const customerColumns = `
	id, email, COALESCE(name, ''), COALESCE(phone, ''), stage, COALESCE(assigned_to, ''),
	COALESCE(notes::text, '[]'), total_orders, total_spent, last_order_date, last_order_total,
	created_at, updated_at
`

func scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	var notesJSON string
	var lastOrderDate sql.NullTime

	err := row.Scan(
		&c.ID, &c.Email, &c.Name, &c.Phone, &c.Stage, &c.AssignedTo,
		&notesJSON, &c.TotalOrders, &c.TotalSpent, &lastOrderDate, &c.LastOrderTotal,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(notesJSON), &c.Notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}
	if c.Notes == nil {
		c.Notes = []string{}
	}
	if lastOrderDate.Valid {
		t := lastOrderDate.Time
		c.LastOrderDate = &t
	}
	return &c, nil
}

// List returns customers matching the filter, most recently updated first
func (r *CustomerRepository) List(ctx context.Context, filter models.CustomerFilter) ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM crm_customers
		WHERE ($1 = '' OR stage = $1)
		  AND ($2 = '' OR assigned_to = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR email ILIKE '%' || $3 || '%' OR phone ILIKE '%' || $3 || '%')
		ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, filter.Stage, filter.AssignedTo, filter.Search)
	if err != nil {
		zap.S().Errorf("❌ List: Error querying customers: %v", err)
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customers: %w", err)
	}
	return customers, nil
}

// GetByID returns a single customer
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM crm_customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return c, nil
}

// GetByEmail returns the customer with the given email
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM crm_customers WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return c, nil
}

func customerArgs(c *models.Customer) ([]interface{}, error) {
	notes := c.Notes
	if notes == nil {
		notes = []string{}
	}
	notesJSON, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}

	var lastOrderDate sql.NullTime
	if c.LastOrderDate != nil {
		lastOrderDate = sql.NullTime{Time: *c.LastOrderDate, Valid: true}
	}

	return []interface{}{
		c.ID, c.Email, c.Name, c.Phone, c.Stage, c.AssignedTo, string(notesJSON),
		c.TotalOrders, c.TotalSpent, lastOrderDate, c.LastOrderTotal, c.CreatedAt, c.UpdatedAt,
	}, nil
}

// Create inserts a customer; the caller assigns the id
func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	args, err := customerArgs(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO crm_customers (
			id, email, name, phone, stage, assigned_to, notes,
			total_orders, total_spent, last_order_date, last_order_total, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12, $13)
	`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		zap.S().Errorf("❌ Create: Error inserting customer %s: %v", c.Email, err)
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update writes every field of a customer
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	args, err := customerArgs(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE crm_customers
		SET email = $2, name = $3, phone = $4, stage = $5, assigned_to = $6, notes = $7::jsonb,
		    total_orders = $8, total_spent = $9, last_order_date = $10, last_order_total = $11,
		    created_at = $12, updated_at = $13
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		zap.S().Errorf("❌ Update: Error updating customer %s: %v", c.ID, err)
		return fmt.Errorf("failed to update customer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("customer %s: %w", c.ID, ErrNotFound)
	}
	return nil
}
