package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/core/services"
)

// NewRepositories wires every pgsql repository onto one pool.
func NewRepositories(pool *pgxpool.Pool) services.Repositories {
	return services.Repositories{
		Customer:     NewPgxCustomerRepository(pool),
		Invoice:      NewPgxInvoiceRepository(pool),
		Settings:     NewPgxSettingsRepository(pool),
		BankAccount:  NewPgxBankAccountRepository(pool),
		ExchangeRate: NewPgxExchangeRateRepository(pool),
		Reporting:    NewPgxReportingRepository(pool),
	}
}
