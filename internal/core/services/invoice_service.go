package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/pausalko/pausal-backend/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

const (
	dateLayout             = "2006-01-02"
	defaultUnitOfMeasure   = "kom"
	defaultPaymentDeadline = 30
)

var invoiceNumberPattern = regexp.MustCompile(`^(\d+)/(\d{4})$`)

// InvoiceService provides business logic for invoices and their line items.
type InvoiceService struct {
	invoiceRepo  ports.InvoiceRepository
	customerRepo ports.CustomerRepository
	now          func() time.Time
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(invoiceRepo ports.InvoiceRepository, customerRepo ports.CustomerRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		now:          time.Now,
	}
}

// CreateInvoice creates an invoice together with its line items. The exchange
// rate from the request is snapshotted on the invoice and TotalRSD is derived
// from it; new invoices always start as drafts.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req dto.SaveInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error) {
	invoice, items, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	invoice.InvoiceID = uuid.NewString()
	invoice.Status = models.StatusDraft
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	for i := range items {
		items[i].InvoiceID = invoice.InvoiceID
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, *invoice, items); err != nil {
		return nil, nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, items, nil
}

// UpdateInvoice replaces an invoice and all of its line items. Totals are
// recomputed from the submitted items and exchange rate; between edits they
// stay frozen regardless of later rate changes.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.SaveInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error) {
	existing, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load invoice for update: %w", err)
	}

	invoice, items, err := s.buildInvoice(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	invoice.InvoiceID = existing.InvoiceID
	invoice.CreatedAt = existing.CreatedAt
	invoice.UpdatedAt = s.now()
	invoice.Status = existing.Status
	if req.Status != "" {
		invoice.Status = models.InvoiceStatus(req.Status)
	}
	for i := range items {
		items[i].InvoiceID = invoice.InvoiceID
	}

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, items); err != nil {
		return nil, nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, items, nil
}

// buildInvoice validates and converts a save request into an invoice and its
// items, computing totals from the snapshotted exchange rate.
func (s *InvoiceService) buildInvoice(ctx context.Context, req dto.SaveInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error) {
	invoiceDate, err := time.Parse(dateLayout, req.InvoiceDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid invoice date %q", apperrors.ErrValidation, req.InvoiceDate)
	}
	tradingDate, err := time.Parse(dateLayout, req.TradingDate)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid trading date %q", apperrors.ErrValidation, req.TradingDate)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: customer %q not found", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, nil, fmt.Errorf("failed to validate customer: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = CurrencyRSD
	}

	exchangeRate := one
	if req.ExchangeRate != nil {
		exchangeRate = *req.ExchangeRate
	}
	if exchangeRate.LessThanOrEqual(decimal.Zero) {
		return nil, nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	paymentDeadline := defaultPaymentDeadline
	if req.PaymentDeadline != nil {
		paymentDeadline = *req.PaymentDeadline
	}

	items := make([]models.InvoiceItem, len(req.Items))
	for i, it := range req.Items {
		unit := it.Unit
		if unit == "" {
			unit = defaultUnitOfMeasure
		}
		if it.Discount.IsNegative() || it.Discount.GreaterThan(decimal.NewFromInt(100)) {
			return nil, nil, fmt.Errorf("%w: discount must be between 0 and 100", apperrors.ErrValidation)
		}
		items[i] = models.InvoiceItem{
			ItemID:      uuid.NewString(),
			Description: it.Description,
			Unit:        unit,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Discount:    it.Discount,
		}
	}

	totals := invoicing.TotalInvoice(items, exchangeRate)

	return &models.Invoice{
		InvoiceNumber:   req.InvoiceNumber,
		InvoiceDate:     invoiceDate,
		TradingDate:     tradingDate,
		CustomerID:      req.CustomerID,
		BankAccountID:   req.BankAccountID,
		Currency:        currency,
		ExchangeRate:    exchangeRate,
		PaymentDeadline: paymentDeadline,
		Notes:           req.Notes,
		TotalRSD:        totals.TotalRSD.Round(2),
	}, items, nil
}

// GetInvoiceByID returns an invoice and its line items.
func (s *InvoiceService) GetInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, []models.InvoiceItem, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	items, err := s.invoiceRepo.FindItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get invoice items: %w", err)
	}
	return invoice, items, nil
}

// ListInvoices returns all invoices, newest first, without items.
func (s *InvoiceService) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []models.Invoice{}, nil
	}
	return invoices, nil
}

// DeleteInvoice deletes an invoice and, via cascade, its line items.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// ListInvoiceItems returns the line items of one invoice.
func (s *InvoiceService) ListInvoiceItems(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error) {
	items, err := s.invoiceRepo.FindItemsByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	if items == nil {
		return []models.InvoiceItem{}, nil
	}
	return items, nil
}

// GenerateInvoiceNumber proposes the next free "NNN/YYYY" number for the
// current year.
func (s *InvoiceService) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	year := s.now().Year()

	next := 1
	last, err := s.invoiceRepo.FindLastInvoiceNumber(ctx, year)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return "", fmt.Errorf("failed to find last invoice number: %w", err)
	}
	if err == nil {
		if m := invoiceNumberPattern.FindStringSubmatch(last); m != nil {
			n, convErr := strconv.Atoi(m[1])
			if convErr == nil {
				next = n + 1
			}
		}
	}

	return fmt.Sprintf("%03d/%d", next, year), nil
}
