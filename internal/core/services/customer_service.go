package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/models"
)

const defaultCountry = "Serbia"

// CustomerService provides business logic for customers.
type CustomerService struct {
	customerRepo ports.CustomerRepository
	invoiceRepo  ports.InvoiceRepository
}

// NewCustomerService creates a new CustomerService. The invoice repository is
// needed to refuse deleting customers that still have invoices.
func NewCustomerService(customerRepo ports.CustomerRepository, invoiceRepo ports.InvoiceRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateCustomer creates a new customer.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*models.Customer, error) {
	now := time.Now()
	customer := models.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Company:    req.Company,
		Address:    req.Address,
		City:       req.City,
		Country:    countryOrDefault(req.Country),
		PIB:        req.PIB,
		MB:         req.MB,
		Email:      req.Email,
		AuditFields: models.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer updates an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.SaveCustomerRequest) (*models.Customer, error) {
	existing, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer for update: %w", err)
	}

	customer := models.Customer{
		CustomerID: existing.CustomerID,
		Name:       req.Name,
		Company:    req.Company,
		Address:    req.Address,
		City:       req.City,
		Country:    countryOrDefault(req.Country),
		PIB:        req.PIB,
		MB:         req.MB,
		Email:      req.Email,
		AuditFields: models.AuditFields{
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
	}

	if err := s.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return &customer, nil
}

// GetCustomerByID returns one customer.
func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// ListCustomers returns all customers ordered by name.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []models.Customer{}, nil
	}
	return customers, nil
}

// DeleteCustomer deletes a customer, refusing when invoices still reference it.
func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if _, err := s.customerRepo.FindCustomerByID(ctx, customerID); err != nil {
		return fmt.Errorf("failed to load customer for delete: %w", err)
	}

	count, err := s.invoiceRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("failed to count customer invoices: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete customer with %d existing invoice(s)", apperrors.ErrValidation, count)
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

func countryOrDefault(country string) string {
	if country == "" {
		return defaultCountry
	}
	return country
}
