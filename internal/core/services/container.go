package services

import (
	"github.com/pausalko/pausal-backend/internal/core/ports"
)

// Repositories bundles the persistence dependencies the services need.
type Repositories struct {
	Customer     ports.CustomerRepository
	Invoice      ports.InvoiceRepository
	Settings     ports.SettingsRepository
	BankAccount  ports.BankAccountRepository
	ExchangeRate ports.ExchangeRateRepository
	Reporting    ports.ReportingRepository
}

// NewServiceContainer creates a service container with all dependencies wired.
func NewServiceContainer(repos Repositories, nbsClient ports.NBSClient) *ports.ServiceContainer {
	return &ports.ServiceContainer{
		Customer:     NewCustomerService(repos.Customer, repos.Invoice),
		Invoice:      NewInvoiceService(repos.Invoice, repos.Customer),
		Settings:     NewSettingsService(repos.Settings, repos.BankAccount),
		ExchangeRate: NewExchangeRateService(repos.ExchangeRate, nbsClient),
		Reporting:    NewReportingService(repos.Reporting),
	}
}

// Compile-time checks that the services satisfy their facades.
var (
	_ ports.CustomerSvcFacade     = (*CustomerService)(nil)
	_ ports.InvoiceSvcFacade      = (*InvoiceService)(nil)
	_ ports.SettingsSvcFacade     = (*SettingsService)(nil)
	_ ports.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ ports.ReportingSvcFacade    = (*ReportingService)(nil)
)
