package ports

import (
	"context"
	"errors"
	"time"

	"github.com/pausalko/pausal-backend/internal/models"
)

// CustomerRepository defines persistence operations for Customers.
type CustomerRepository interface {
	SaveCustomer(ctx context.Context, customer models.Customer) error
	UpdateCustomer(ctx context.Context, customer models.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// InvoiceRepository defines persistence operations for Invoices and their line
// items. Saving or updating an invoice persists its items atomically; on update
// the existing items are fully replaced, not merged.
type InvoiceRepository interface {
	SaveInvoice(ctx context.Context, invoice models.Invoice, items []models.InvoiceItem) error
	UpdateInvoice(ctx context.Context, invoice models.Invoice, items []models.InvoiceItem) error
	FindInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error)
	FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
	CountByCustomer(ctx context.Context, customerID string) (int, error)
	// FindLastInvoiceNumber returns the highest invoice number issued in the
	// given year, or ErrNotFound when the year has no invoices yet.
	FindLastInvoiceNumber(ctx context.Context, year int) (string, error)
}

// SettingsRepository defines persistence operations for the company settings
// singleton.
type SettingsRepository interface {
	FindSettings(ctx context.Context) (*models.CompanySettings, error)
	SaveSettings(ctx context.Context, settings models.CompanySettings) (*models.CompanySettings, error)
}

// BankAccountRepository defines persistence operations for bank accounts.
type BankAccountRepository interface {
	SaveBankAccount(ctx context.Context, account models.BankAccount) error
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, bankAccountID string) error
}

// ExchangeRateRepository defines persistence operations for NBS daily rates.
// Rows are keyed by (currency_code, rate_date); SaveRates upserts the whole
// batch atomically so a partial currency set is never visible.
type ExchangeRateRepository interface {
	SaveRates(ctx context.Context, rates []models.ExchangeRate) error
	FindByDate(ctx context.Context, date time.Time) ([]models.ExchangeRate, error)
	FindByCodeAndDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error)
	FindLatestByCode(ctx context.Context, currencyCode string) (*models.ExchangeRate, error)
	FindLatestDateRates(ctx context.Context) ([]models.ExchangeRate, error)
	FindHistory(ctx context.Context, currencyCode string, from, to time.Time) ([]models.ExchangeRate, error)
}

// ReportingRepository defines read operations for the KPO income book.
type ReportingRepository interface {
	FindKPOEntries(ctx context.Context, year int) ([]models.KPOEntry, error)
}

// ErrNoRatesForDate indicates the external source has no rate list for the
// requested date (weekend or public holiday). Callers retry with an earlier day.
var ErrNoRatesForDate = errors.New("no exchange rate data for date")

// NBSClient fetches the daily rate list from the external source.
type NBSClient interface {
	FetchDaily(ctx context.Context, date time.Time) ([]models.ExchangeRate, error)
}
