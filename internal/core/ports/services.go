package ports

import (
	"context"
	"time"

	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CustomerSvcFacade exposes customer business operations to the handlers.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.SaveCustomerRequest) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// InvoiceSvcFacade exposes invoice business operations to the handlers.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.SaveInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error)
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.SaveInvoiceRequest) (*models.Invoice, []models.InvoiceItem, error)
	GetInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, []models.InvoiceItem, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID string) error
	ListInvoiceItems(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error)
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}

// SettingsSvcFacade exposes company settings and bank account operations.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*models.CompanySettings, error)
	SaveSettings(ctx context.Context, req dto.SaveSettingsRequest) (*models.CompanySettings, error)
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*models.BankAccount, error)
	DeleteBankAccount(ctx context.Context, bankAccountID string) error
}

// ExchangeRateSvcFacade exposes the rate fetch/resolve/convert core.
// A nil date means "today" throughout.
type ExchangeRateSvcFacade interface {
	FetchRates(ctx context.Context, date *time.Time) ([]models.ExchangeRate, error)
	ResolveRate(ctx context.Context, currencyCode string, date *time.Time) (models.ResolvedRate, error)
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, date *time.Time) (decimal.Decimal, error)
	LatestRates(ctx context.Context) ([]models.ExchangeRate, error)
	RateHistory(ctx context.Context, currencyCode string, from, to time.Time) ([]models.ExchangeRate, error)
}

// ReportingSvcFacade exposes the KPO income book.
type ReportingSvcFacade interface {
	KPOBook(ctx context.Context, year int) ([]models.KPOEntry, error)
}

// ServiceContainer holds instances of all the application services. It is the
// main entry point for accessing service functionality from the handlers.
type ServiceContainer struct {
	Customer     CustomerSvcFacade
	Invoice      InvoiceSvcFacade
	Settings     SettingsSvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Reporting    ReportingSvcFacade
}
