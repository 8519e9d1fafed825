package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxCustomerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCustomerRepository creates a new repository for customer data.
func NewPgxCustomerRepository(pool *pgxpool.Pool) ports.CustomerRepository {
	return &PgxCustomerRepository{pool: pool}
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer models.Customer) error {
	query := `
		INSERT INTO customers (customer_id, name, company, address, city, country, pib, mb, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Company,
		customer.Address,
		customer.City,
		customer.Country,
		customer.PIB,
		customer.MB,
		customer.Email,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// UpdateCustomer updates an existing customer.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer models.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, company = $3, address = $4, city = $5, country = $6, pib = $7, mb = $8, email = $9, updated_at = $10
		WHERE customer_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Company,
		customer.Address,
		customer.City,
		customer.Country,
		customer.PIB,
		customer.MB,
		customer.Email,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	query := `
		SELECT customer_id, name, company, address, city, country, pib, mb, email, created_at, updated_at
		FROM customers
		WHERE customer_id = $1;
	`
	var customer models.Customer
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Company,
		&customer.Address,
		&customer.City,
		&customer.Country,
		&customer.PIB,
		&customer.MB,
		&customer.Email,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by id %s: %w", customerID, err)
	}
	return &customer, nil
}

// ListCustomers retrieves all customers ordered by name.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT customer_id, name, company, address, city, country, pib, mb, email, created_at, updated_at
		FROM customers
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Customer, error) {
		var customer models.Customer
		err := row.Scan(
			&customer.CustomerID,
			&customer.Name,
			&customer.Company,
			&customer.Address,
			&customer.City,
			&customer.Country,
			&customer.PIB,
			&customer.MB,
			&customer.Email,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		return customer, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}
	return customers, nil
}

// DeleteCustomer removes a customer.
func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer %s: %w", customerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
