package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgxExchangeRateRepository creates a new repository for daily exchange
// rates.
func NewPgxExchangeRateRepository(pool *pgxpool.Pool) ports.ExchangeRateRepository {
	return &PgxExchangeRateRepository{pool: pool}
}

// SaveRates upserts a batch of rates keyed by (currency_code, rate_date) in a
// single transaction, so a partially stored day is never visible.
func (r *PgxExchangeRateRepository) SaveRates(ctx context.Context, rates []models.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, currency_code, currency_name, buy_rate, middle_rate, sell_rate,
			rate_date, unit, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (currency_code, rate_date) DO UPDATE SET
			currency_name = EXCLUDED.currency_name,
			buy_rate = EXCLUDED.buy_rate,
			middle_rate = EXCLUDED.middle_rate,
			sell_rate = EXCLUDED.sell_rate,
			unit = EXCLUDED.unit,
			updated_at = EXCLUDED.updated_at;
	`
	for _, rate := range rates {
		if _, err := tx.Exec(ctx, query,
			rate.ExchangeRateID,
			rate.CurrencyCode,
			rate.CurrencyName,
			rate.BuyRate,
			rate.MiddleRate,
			rate.SellRate,
			rate.RateDate,
			rate.Unit,
			rate.CreatedAt,
			rate.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to upsert rate %s@%s: %w", rate.CurrencyCode, rate.RateDate.Format("2006-01-02"), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rate batch: %w", err)
	}
	return nil
}

const selectRateColumns = `
	exchange_rate_id, currency_code, currency_name, buy_rate, middle_rate, sell_rate,
	rate_date, unit, created_at, updated_at
`

func scanRate(row pgx.Row) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.CurrencyCode,
		&rate.CurrencyName,
		&rate.BuyRate,
		&rate.MiddleRate,
		&rate.SellRate,
		&rate.RateDate,
		&rate.Unit,
		&rate.CreatedAt,
		&rate.UpdatedAt,
	)
	return rate, err
}

func (r *PgxExchangeRateRepository) queryRates(ctx context.Context, query string, args ...any) ([]models.ExchangeRate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	rates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return rates, nil
}

// FindByDate retrieves all rates stored for one calendar date.
func (r *PgxExchangeRateRepository) FindByDate(ctx context.Context, date time.Time) ([]models.ExchangeRate, error) {
	query := `
		SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE rate_date = $1
		ORDER BY currency_code;
	`
	return r.queryRates(ctx, query, date)
}

// FindByCodeAndDate retrieves one currency's rate on an exact date.
func (r *PgxExchangeRateRepository) FindByCodeAndDate(ctx context.Context, currencyCode string, date time.Time) (*models.ExchangeRate, error) {
	query := `
		SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date = $2;
	`
	rate, err := scanRate(r.pool.QueryRow(ctx, query, currencyCode, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate for %s: %w", currencyCode, err)
	}
	return &rate, nil
}

// FindLatestByCode retrieves the most recent stored rate for a currency.
func (r *PgxExchangeRateRepository) FindLatestByCode(ctx context.Context, currencyCode string) (*models.ExchangeRate, error) {
	query := `
		SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1
		ORDER BY rate_date DESC
		LIMIT 1;
	`
	rate, err := scanRate(r.pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest rate for %s: %w", currencyCode, err)
	}
	return &rate, nil
}

// FindLatestDateRates retrieves all rates belonging to the most recent stored
// date.
func (r *PgxExchangeRateRepository) FindLatestDateRates(ctx context.Context) ([]models.ExchangeRate, error) {
	query := `
		SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE rate_date = (SELECT MAX(rate_date) FROM exchange_rates)
		ORDER BY currency_code;
	`
	return r.queryRates(ctx, query)
}

// FindHistory retrieves one currency's rates over an inclusive date range,
// newest first.
func (r *PgxExchangeRateRepository) FindHistory(ctx context.Context, currencyCode string, from, to time.Time) ([]models.ExchangeRate, error) {
	query := `
		SELECT ` + selectRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND rate_date BETWEEN $2 AND $3
		ORDER BY rate_date DESC;
	`
	return r.queryRates(ctx, query, currencyCode, from, to)
}
